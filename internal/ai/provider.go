package ai

import (
	"context"
	"fmt"
)

// Request is one structured completion.
type Request struct {
	// Op names the calling component in errors and logs.
	Op     string
	System string
	Prompt string
	Schema *Schema
}

// TextGenerator returns a JSON document shaped by req.Schema.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, req Request) ([]byte, error)
}

// Speech is raw little-endian PCM plus its format.
type Speech struct {
	PCM        []byte
	SampleRate int
	Channels   int
	BitDepth   int
}

// SpeechSynthesizer turns text into audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (*Speech, error)
}

// Provider is a backend offering both capabilities.
type Provider interface {
	Name() string
	TextGenerator
	SpeechSynthesizer
}

// Complete runs req against gen and decodes the answer into T through the
// request schema. A response that does not match the schema is a KindSchema
// error.
func Complete[T any](ctx context.Context, gen TextGenerator, req Request) (T, error) {
	var out T
	if gen == nil {
		return out, &Error{Kind: KindUnavailable, Op: req.Op, Err: ErrNoProvider}
	}
	raw, err := gen.GenerateJSON(ctx, req)
	if err != nil {
		return out, err
	}
	if err := req.Schema.Decode(raw, &out); err != nil {
		return out, &Error{Kind: KindSchema, Op: req.Op, Err: err}
	}
	return out, nil
}

// Config selects and configures a provider.
type Config struct {
	Provider string // gemini, openai or none

	GeminiAPIKey   string
	GeminiModel    string
	GeminiTTSModel string
	GeminiVoice    string

	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAITTSModel string
}

// New builds the configured provider. It returns (nil, nil) when AI is
// disabled; callers then run on fallbacks only.
func New(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTTSModel, cfg.GeminiVoice)
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITTSModel)
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
