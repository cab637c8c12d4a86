package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/katsunaka/court-booking/config"
	"github.com/katsunaka/court-booking/db"
	"github.com/katsunaka/court-booking/handlers"
	"github.com/katsunaka/court-booking/live"
	"github.com/katsunaka/court-booking/repositories"
	api "github.com/katsunaka/court-booking/routes"
	"github.com/katsunaka/court-booking/services"
	"github.com/katsunaka/court-booking/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Открытие файлового хранилища таблиц
	store, err := db.Open(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open data store", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("data store opened", slog.String("dir", cfg.DataDir))

	// Инициализация WebSocket Hub
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("live event hub started")

	// Инициализация репозиториев
	bookingRepo := repositories.NewCSVBookingRepository(store)
	participantRepo := repositories.NewCSVParticipantRepository(store)
	sessionRepo := repositories.NewFileSessionRepository(cfg.SessionFile)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(cfg.AuthUsername, cfg.AuthPassword, sessionRepo)
	bookingService := services.NewBookingService(bookingRepo, participantRepo, wsHub)
	participantService := services.NewParticipantService(participantRepo, wsHub)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	participantHandler := handlers.NewParticipantHandler(participantService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authService,
		authHandler,
		bookingHandler,
		participantHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	// Планировщик снапшотов таблиц в R2, если бэкап настроен.
	if cfg.BackupEnabled() {
		uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		backupService := services.NewBackupService(store, uploader, "backups", logger)
		logger.Info("backup scheduler started", slog.Duration("interval", cfg.BackupInterval))

		group.Go(func() error {
			ticker := time.NewTicker(cfg.BackupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := backupService.RunOnce(ctx); err != nil {
						logger.Error("table snapshot failed", slog.Any("error", err))
					}
				}
			}
		})
	}

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	group.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}
