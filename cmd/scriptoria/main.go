package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/scriptoria-lab/project-scriptoria/internal/core/config"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage/postgres"
	"github.com/scriptoria-lab/project-scriptoria/internal/holiday"
	"github.com/scriptoria-lab/project-scriptoria/internal/ingestion"
	"github.com/scriptoria-lab/project-scriptoria/internal/migrations"
	"github.com/scriptoria-lab/project-scriptoria/internal/projection"
	"github.com/scriptoria-lab/project-scriptoria/internal/server"
	"github.com/scriptoria-lab/project-scriptoria/internal/streak"
)

func main() {
	configPath := flag.String("config", "scriptoria.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	writeTimeout, err := cfg.Streak.ParsedWriteTimeout()
	if err != nil {
		slog.Error("Invalid streak write timeout", "value", cfg.Streak.WriteTimeout, "error", err)
		os.Exit(1)
	}
	holidayTTL, err := cfg.Holidays.ParsedCacheTTL()
	if err != nil {
		slog.Error("Invalid holiday cache TTL", "value", cfg.Holidays.CacheTTL, "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	projectionCache := postgres.NewProjectionAdapter(dbAdapter.DB())
	profiles := postgres.NewProfileAdapter(dbAdapter.DB())

	// 3. Initialize Holiday Calendar
	var holidaySource storage.HolidayCalendar
	switch cfg.Holidays.SourceType {
	case "file":
		holidaySource, err = holiday.NewFileCalendar(cfg.Holidays.Path)
		if err != nil {
			slog.Error("Failed to load holiday calendar file", "path", cfg.Holidays.Path, "error", err)
			os.Exit(1)
		}
	case "postgres":
		holidaySource = postgres.NewHolidayAdapter(dbAdapter.DB())
	default:
		slog.Error("Unsupported holiday source type", "type", cfg.Holidays.SourceType)
		os.Exit(1)
	}
	holidayCalendar := holiday.NewCachingCalendar(holidaySource, holidayTTL)

	// 4. Initialize Projection (streak read path)
	projectionSvc := projection.NewService(
		dbAdapter,
		projectionCache,
		profiles,
		holidayCalendar,
		projection.Options{
			Policy:            streak.Policy{GracePostsRequired: cfg.Streak.GracePostsRequired},
			DefaultTimezone:   cfg.Streak.DefaultTimezone,
			HolidayWindowDays: cfg.Streak.HolidayWindowDays,
			WriteTimeout:      writeTimeout,
		},
	)

	// 5. Initialize Ingestion (append side of the log)
	ingestionSvc := ingestion.NewService(dbAdapter, profiles, cfg.Streak.DefaultTimezone, cfg.Server.MaxBodySizeMB)

	// 6. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 7. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler → triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
