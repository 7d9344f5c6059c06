package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/fingerguard/server/internal/config"
	"github.com/fingerguard/server/internal/db"
	"github.com/fingerguard/server/internal/fingerguard/service"
	"github.com/fingerguard/server/internal/fingerguard/store"
	"github.com/fingerguard/server/internal/fingerguard/store/memory"
	"github.com/fingerguard/server/internal/fingerguard/store/sqlite"
	"github.com/fingerguard/server/internal/httpapi"
	"github.com/fingerguard/server/internal/notifier"
)

// Revision is stamped at build time via -ldflags.
var Revision string

func main() {
	cfg := config.FromEnv()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "fingerguard-server").Logger()
	if cfg.Env == "dev" {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	notify, err := notifier.New(cfg.SentryDSN, cfg.Env, Revision)
	if err != nil {
		logger.Fatal().Err(err).Msg("creating sentry client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional SQLite archive behind the in-memory stores.
	var archive store.LogArchive
	var pruner *service.ArchivePruner
	if cfg.DBPath != "" {
		conn, err := db.Open(ctx, cfg.DBPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("opening archive db")
		}
		defer conn.Close()

		writer := db.NewWorker(conn)
		defer writer.Close()

		sqlArchive := sqlite.NewLogArchive(conn, writer, logger)
		archive = sqlArchive

		pruner = service.NewArchivePruner(sqlArchive, service.PrunerConfig{
			RetentionDays: cfg.RetentionDays,
			IntervalHours: cfg.PruneIntervalHours,
		}, logger)
		pruner.Start(ctx)
		defer pruner.Stop()

		logger.Info().Str("path", cfg.DBPath).Msg("log archival enabled")
	}

	// Stores
	deviceStore := memory.NewDeviceStore()
	commandQueue := memory.NewCommandQueue()
	accessLogs := memory.NewLogStore(cfg.LogCapacity)
	eventLogs := memory.NewLogStore(cfg.LogCapacity)

	// Services
	registry := service.NewDeviceRegistry(deviceStore)
	commands := service.NewCommandService(commandQueue)
	heartbeat := service.NewHeartbeatService(registry, commands)
	logs := service.NewLogService(accessLogs, eventLogs, registry, archive)

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:    logger,
		Addr:      cfg.HTTPAddr,
		Notifier:  notify,
		Heartbeat: heartbeat,
		Registry:  registry,
		Commands:  commands,
		Logs:      logs,
	})

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
