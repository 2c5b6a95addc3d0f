package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"studymesh-backend/infrastructure/config"
	"studymesh-backend/infrastructure/di"
	"studymesh-backend/interfaces/http/rest"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	restoreState(ctx, container)

	if cfg.RuntimeConfigPath != "" {
		watcher, err := config.NewWatcher(cfg.RuntimeConfigPath, logger)
		if err != nil {
			logger.Warn("runtime config watcher disabled", zap.Error(err))
		} else {
			defer watcher.Stop()
			watcher.OnChange(func(rc *config.RuntimeConfig) {
				logger.Info("runtime config updated",
					zap.Strings("corsAllowedOrigins", rc.CORSAllowedOrigins),
					zap.String("logLevel", rc.LogLevel),
				)
			})
		}
	}

	router := rest.NewRouter(
		cfg,
		container.MaterialService,
		container.GraphService,
		container.Tables,
		container.Blobs,
		container.Extractor,
		container.Validator,
		string(container.FilesDir),
		logger,
	)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.Bool("supabase", cfg.HasSupabase()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}

// restoreState reloads the persisted collection into memory so a restart
// keeps the user's materials and graph. Bad entries are skipped, never
// fatal.
func restoreState(ctx context.Context, container *di.Container) {
	logger := container.Logger

	bundle, err := container.State.Load(ctx)
	if err != nil {
		logger.Warn("could not load persisted state, starting empty", zap.Error(err))
		return
	}
	container.MaterialService.SetSettings(bundle.Settings)
	if len(bundle.Materials) == 0 && len(bundle.Flashcards) == 0 {
		return
	}

	restored := bundle.Materials[:0:0]
	for i := range bundle.Materials {
		m := bundle.Materials[i]
		if err := m.Validate(); err != nil {
			logger.Warn("skipping invalid persisted material",
				zap.String("materialID", m.ID),
				zap.Error(err),
			)
			continue
		}
		if err := container.Materials.Save(ctx, &m); err != nil {
			logger.Warn("could not restore material",
				zap.String("materialID", m.ID),
				zap.Error(err),
			)
			continue
		}
		restored = append(restored, m)
	}
	if len(bundle.Flashcards) > 0 {
		if err := container.Flashcards.SaveBatch(ctx, bundle.Flashcards); err != nil {
			logger.Warn("could not restore flashcards", zap.Error(err))
		}
	}

	container.GraphService.Rebuild(restored)
	logger.Info("state restored",
		zap.Int("materials", len(restored)),
		zap.Int("flashcards", len(bundle.Flashcards)),
	)
}
