package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
	"github.com/AnshRaj112/evolve-backend/internal/config"
	"github.com/AnshRaj112/evolve-backend/internal/database"
	"github.com/AnshRaj112/evolve-backend/internal/handlers"
	"github.com/AnshRaj112/evolve-backend/internal/logging"
	"github.com/AnshRaj112/evolve-backend/internal/middleware"
	"github.com/AnshRaj112/evolve-backend/internal/routes"
	"github.com/AnshRaj112/evolve-backend/internal/services"
	"github.com/AnshRaj112/evolve-backend/internal/store"
	"github.com/AnshRaj112/evolve-backend/internal/store/memory"
	"github.com/AnshRaj112/evolve-backend/internal/store/postgres"
	"github.com/AnshRaj112/evolve-backend/internal/wellbeing"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "evolve-server",
		Short:         "Journaling and well-being API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return serve(cmd.Context(), cfg, logger)
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create Postgres tables and MongoDB indexes, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return migrate(cmd.Context(), cfg, logger)
		},
	})
	return root
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if envErr != nil {
		logger.Debug("no .env file found")
	}
	return cfg, logger, nil
}

func migrate(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.StoreBackend == "postgres" {
		if err := database.ConnectPostgres(cfg.PostgresURI, logger); err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer database.DisconnectPostgres()
		if err := database.InitPostgresTables(ctx, database.PostgresDB, logger); err != nil {
			return err
		}
	}
	if cfg.MongoURI != "" {
		if err := database.Connect(cfg.MongoURI, logger); err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		defer database.Disconnect()
		if err := database.EnsureMongoIndexes(ctx, database.DB); err != nil {
			return err
		}
	}
	logger.Info("migrations complete")
	return nil
}

// backend is what the chosen STORE_BACKEND provides.
type backend struct {
	store    store.Store
	sessions services.Sessions
	insights services.InsightsCache
	limiter  middleware.SubmissionLimiter
	hub      *services.NotificationHub
	cleanup  func()
}

func connectBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*backend, error) {
	if cfg.StoreBackend == "memory" {
		logger.Warn("using in-memory store; data is lost on restart")
		limiter := middleware.NewKeyedLimiter(rate.Every(time.Minute/time.Duration(cfg.SubmissionsPerMinute)), cfg.SubmissionsPerMinute, 10*time.Minute)
		go limiter.Run(ctx, time.Minute)
		return &backend{
			store:    memory.New(),
			sessions: services.NewMemorySessions(),
			insights: services.NewMemoryInsightsCache(cfg.InsightsCacheTTL),
			limiter:  limiter,
			hub:      services.NewNotificationHub(nil, logger),
			cleanup:  func() {},
		}, nil
	}

	if err := database.ConnectPostgres(cfg.PostgresURI, logger); err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := database.InitPostgresTables(ctx, database.PostgresDB, logger); err != nil {
		database.DisconnectPostgres()
		return nil, err
	}
	if err := database.ConnectRedis(cfg.RedisURI, logger); err != nil {
		database.DisconnectPostgres()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &backend{
		store:    postgres.New(database.PostgresDB),
		sessions: services.NewRedisSessions(database.RedisClient),
		insights: services.NewRedisInsightsCache(database.RedisClient, cfg.InsightsCacheTTL),
		limiter:  middleware.NewRedisWindowLimiter(database.RedisClient, cfg.SubmissionsPerMinute, middleware.SubmissionWindow),
		hub:      services.NewNotificationHub(database.RedisClient, logger),
		cleanup: func() {
			database.DisconnectRedis()
			database.DisconnectPostgres()
		},
	}, nil
}

func connectNotifications(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.NotificationStore, func()) {
	if cfg.MongoURI == "" {
		logger.Info("MONGODB_URI not set; notifications are kept in memory")
		return services.NewMemoryNotifications(), func() {}
	}
	if err := database.Connect(cfg.MongoURI, logger); err != nil {
		logger.Error("mongodb unavailable; notifications are kept in memory", zap.Error(err))
		return services.NewMemoryNotifications(), func() {}
	}
	if err := database.EnsureMongoIndexes(ctx, database.DB); err != nil {
		logger.Warn("failed to create notification indexes", zap.Error(err))
	}
	return services.NewMongoNotifications(database.DB, database.NotificationsCollection), func() { database.Disconnect() }
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := connectBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer be.cleanup()

	notes, closeNotes := connectNotifications(ctx, cfg, logger)
	defer closeNotes()

	provider, err := ai.New(ctx, ai.Config{
		Provider:       cfg.AIProvider,
		GeminiAPIKey:   cfg.GeminiAPIKey,
		GeminiModel:    cfg.GeminiModel,
		GeminiTTSModel: cfg.GeminiTTSModel,
		GeminiVoice:    cfg.GeminiVoice,
		OpenAIAPIKey:   cfg.OpenAIAPIKey,
		OpenAIModel:    cfg.OpenAIModel,
		OpenAITTSModel: cfg.OpenAITTSModel,
	})
	if err != nil {
		return fmt.Errorf("init AI provider: %w", err)
	}
	if provider == nil {
		logger.Warn("AI provider disabled; every component runs on fallbacks")
	} else {
		logger.Info("AI provider ready", zap.String("provider", provider.Name()))
	}

	suite := wellbeing.NewSuite(provider, wellbeing.Options{
		Timeout:      cfg.AICallTimeout,
		AudioTimeout: cfg.AIAudioTimeout,
		Logger:       logger,
	})

	var archive services.AudioArchive
	if cfg.CloudinaryEnabled() {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Warn("cloudinary unavailable; meditation audio will not be archived", zap.Error(err))
		} else {
			archive = cld
		}
	}

	alerts := services.NewSupportAlerts(be.store, notes, be.hub, logger)
	pipeline := services.NewJournalPipeline(services.JournalPipelineDeps{
		Store:    be.store,
		Suite:    suite,
		Notifier: alerts,
		Archive:  archive,
		Insights: be.insights,
		Logger:   logger,
	})

	handlers.Init(handlers.Dependencies{
		Store:          be.store,
		Sessions:       be.sessions,
		Pipeline:       pipeline,
		Weekly:         suite.Weekly,
		Insights:       be.insights,
		Notifications:  notes,
		Hub:            be.hub,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})
	be.hub.Start(ctx)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	opts := routes.Options{
		Sessions:          be.sessions,
		SubmissionLimiter: be.limiter,
		Logger:            logger,
	}
	if cfg.IsProduction() {
		security := middleware.NewSecurity()
		security.Start(ctx)
		r.Use(security.Middlewares()...)
		opts.AuthLimit = security.AuthLimit()
	}
	routes.SetupRoutes(r, opts)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	pipeline.Wait()
	return nil
}
