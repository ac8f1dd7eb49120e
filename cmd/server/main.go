package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"nexus/backend/internal/config"
	"nexus/backend/internal/database"
	"nexus/backend/internal/handler"
	"nexus/backend/internal/logging"
	"nexus/backend/internal/metrics"
	"nexus/backend/internal/server"
	"nexus/backend/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// @title           Nexus API
// @version         1.0
// @description     Companies and simulation games over a relational store.
// @host            localhost:3000
// @BasePath        /api
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "nexus",
		Short:         "Nexus companies and games API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			logging.Setup(logging.Options{
				Level:      cfg.LogLevel,
				Format:     cfg.LogFormat,
				File:       cfg.LogFile,
				MaxSizeMB:  cfg.LogMaxSize,
				MaxBackups: cfg.LogMaxBackups,
				MaxAgeDays: cfg.LogMaxAge,
				Compress:   cfg.LogCompress,
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := serve(cmd.Context(), cfg); err != nil {
				slog.Error("server stopped", "error", err)
				return err
			}
			return nil
		},
	}

	root.AddCommand(newMigrateCmd(func() *config.Config { return cfg }))
	return root
}

func newMigrateCmd(cfg func() *config.Config) *cobra.Command {
	var schemaFile string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the SQL schema to DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrate(cmd.Context(), cfg(), schemaFile); err != nil {
				fmt.Fprintln(os.Stderr, "Migration failed:", err)
				return err
			}
			fmt.Println("Migration completed successfully.")
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaFile, "file", "", "schema file to apply instead of the embedded schema")
	return cmd
}

func migrate(ctx context.Context, cfg *config.Config, schemaFile string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	script := database.Schema
	if schemaFile != "" {
		raw, err := os.ReadFile(schemaFile)
		if err != nil {
			return fmt.Errorf("read schema: %w", err)
		}
		script = string(raw)
	}

	db, err := database.Open(database.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	defer database.Close(db)

	return database.ApplySchema(ctx, db, script)
}

func serve(parent context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.OTelServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRatio: cfg.OTelSampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("tracing shutdown", "error", err)
		}
	}()

	db, err := database.Open(database.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	defer database.Close(db)
	slog.Info("database connection established", "driver", cfg.DBDriver)

	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		slog.Info("database migrated successfully")
	}

	gin.SetMode(cfg.GinMode)

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
	}

	engine := server.NewEngine(server.Deps{
		Handler:   handler.New(db),
		Logger:    slog.Default(),
		Metrics:   recorder,
		BodyLimit: cfg.BodyLimitBytes,
		Swagger:   true,
	})

	return server.Run(ctx, cfg.Addr(), telemetry.Wrap(engine, "nexus-http"), slog.Default())
}
