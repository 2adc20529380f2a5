package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloo-solutions/docsum/internal/api/handlers"
	"github.com/cloo-solutions/docsum/internal/cli"
	"github.com/cloo-solutions/docsum/internal/config"
	"github.com/cloo-solutions/docsum/internal/database"
	"github.com/cloo-solutions/docsum/internal/llm"
	"github.com/cloo-solutions/docsum/internal/logging"
	"github.com/cloo-solutions/docsum/internal/repository"
	"github.com/cloo-solutions/docsum/internal/server"
	"github.com/cloo-solutions/docsum/internal/service"
	"github.com/cloo-solutions/docsum/internal/storage"
	"github.com/cloo-solutions/docsum/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultPort = "3000"

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the docsum API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", defaultPort, "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cli.Annotate(cmd, []string{
		"DOCSUM_PORT", "DOCSUM_STORAGE", "DOCSUM_OUTPUT_DIR", "DOCSUM_DATABASE_URL",
		"DOCSUM_S3_ENDPOINT", "DOCSUM_S3_BUCKET", "DOCSUM_PROVIDER", "DOCSUM_OPENAI_API_KEY",
		"DOCSUM_GEMINI_API_KEY", "DOCSUM_CHUNK_SIZE", "DOCSUM_MAX_UPLOAD_MB", "DOCSUM_SENTRY_DSN",
	}, nil)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(logging.Config{Debug: cfg.Debug, FilePath: cfg.LogFile})
	defer logger.Sync()

	// Default to 10% sampling in production, 100% in development
	sampleRate := 0.1
	if cfg.Environment == "development" {
		sampleRate = 1.0
	}
	shutdownTelemetry, err := telemetry.Init(telemetry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		TracesSampleRate: sampleRate,
		Debug:            cfg.Debug,
	}, logger)
	if err != nil {
		logger.Warn("telemetry init failed (continuing without tracing)", zap.Error(err))
	} else {
		defer shutdownTelemetry()
	}

	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetString("port")
	}
	noMigrate, _ := cmd.Flags().GetBool("no-migrate")

	store, closeStore, err := newStore(ctx, cfg, !noMigrate, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	generator, closeGenerator, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeGenerator()

	segmenter, err := service.NewSegmenter()
	if err != nil {
		return err
	}

	summarySvc := service.NewSummaryService(store, generator, segmenter, service.SummaryServiceConfig{
		ChunkSize:  cfg.ChunkSize,
		Latin1Only: cfg.Latin1Only,
	})

	router := server.NewRouter(server.RouterConfig{
		SummaryHandler: handlers.NewSummaryHandler(summarySvc, logger),
		Logger:         logger,
		MaxBodyBytes:   cfg.MaxUploadBytes(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.Port),
			zap.String("storage", cfg.Storage),
			zap.String("provider", cfg.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// newStore builds the summary store selected by cfg.Storage.
func newStore(ctx context.Context, cfg *config.Config, migrate bool, logger *zap.Logger) (service.SummaryStore, func(), error) {
	switch cfg.Storage {
	case config.StorageS3:
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			UsePathStyle:    true,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create S3 store: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		logger.Info("S3 bucket ready", zap.String("bucket", cfg.S3Bucket))
		return store, func() {}, nil

	case config.StoragePostgres:
		if migrate {
			if err := database.Migrate(cfg.DatabaseURL, logger); err != nil {
				return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}
		pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Info("connected to database")
		return repository.NewSummaryRepository(pool), pool.Close, nil

	default:
		logger.Info("writing summaries to directory", zap.String("dir", cfg.OutputDir))
		return storage.NewFileStore(cfg.OutputDir), func() {}, nil
	}
}

// newGenerator builds the inference client selected by cfg.Provider.
func newGenerator(ctx context.Context, cfg *config.Config) (llm.Generator, func(), error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		gen, err := llm.NewGeminiGenerator(ctx, llm.GeminiConfig{
			APIKey:    cfg.GeminiAPIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.SummaryMaxTokens,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gemini generator: %w", err)
		}
		return gen, func() { _ = gen.Close() }, nil

	default:
		if !cfg.HasOpenAI() {
			return nil, nil, fmt.Errorf("openai provider requires DOCSUM_OPENAI_API_KEY or DOCSUM_OPENAI_BASE_URL: %w", llm.ErrNoAPIKey)
		}
		return llm.NewOpenAIGenerator(llm.OpenAIConfig{
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			Model:     cfg.Model,
			MaxTokens: cfg.SummaryMaxTokens,
		}), func() {}, nil
	}
}
