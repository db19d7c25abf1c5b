package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment    string // ENV: production, development, etc.
	Port           string
	Host           string
	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	LogLevel       string

	StoreBackend string // postgres or memory
	PostgresURI  string
	RedisURI     string
	MongoURI     string

	AIProvider     string // gemini, openai or none
	GeminiAPIKey   string
	GeminiModel    string
	GeminiTTSModel string
	GeminiVoice    string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAITTSModel string
	AICallTimeout  time.Duration
	AIAudioTimeout time.Duration

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SubmissionsPerMinute int
	InsightsCacheTTL     time.Duration
}

func Load() (*Config, error) {
	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	cfg := &Config{
		Environment:    strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		Port:           getEnv("PORT", "8080"),
		Host:           getEnv("HOST", "http://localhost:8080"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", "postgres")),
		PostgresURI:  getEnv("POSTGRES_URI", "postgres://localhost:5432/evolve?sslmode=disable"),
		RedisURI:     getEnv("REDIS_URI", "redis://localhost:6379/0"),
		MongoURI:     getEnv("MONGODB_URI", getEnv("MONGO_URI", "")),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiTTSModel: getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
		GeminiVoice:    getEnv("GEMINI_VOICE", "Algenib"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITTSModel: getEnv("OPENAI_TTS_MODEL", "tts-1"),
		AICallTimeout:  getEnvDuration("AI_CALL_TIMEOUT", 20*time.Second),
		AIAudioTimeout: getEnvDuration("AI_AUDIO_TIMEOUT", 60*time.Second),

		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		SubmissionsPerMinute: getEnvInt("SUBMISSION_RATE_PER_MIN", 6),
		InsightsCacheTTL:     getEnvDuration("INSIGHTS_CACHE_TTL", time.Hour),
	}
	cfg.AIProvider = strings.ToLower(getEnv("AI_PROVIDER", cfg.defaultProvider()))

	return cfg, cfg.Validate()
}

// defaultProvider picks whichever provider has a key, preferring Gemini.
func (c *Config) defaultProvider() string {
	switch {
	case c.GeminiAPIKey != "":
		return "gemini"
	case c.OpenAIAPIKey != "":
		return "openai"
	default:
		return "none"
	}
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORE_BACKEND must be postgres or memory, got %q", c.StoreBackend)
	}
	switch c.AIProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("AI_PROVIDER=gemini requires GEMINI_API_KEY")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("AI_PROVIDER=openai requires OPENAI_API_KEY")
		}
	case "none":
	default:
		return fmt.Errorf("AI_PROVIDER must be gemini, openai or none, got %q", c.AIProvider)
	}
	if c.AICallTimeout <= 0 || c.AIAudioTimeout <= 0 {
		return fmt.Errorf("AI timeouts must be positive")
	}
	if c.SubmissionsPerMinute < 1 {
		return fmt.Errorf("SUBMISSION_RATE_PER_MIN must be at least 1, got %d", c.SubmissionsPerMinute)
	}
	return nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
