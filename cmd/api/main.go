// Package main is the entry point for the Controle Financeiro API server.
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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/controle-financeiro/api/config"
	"github.com/controle-financeiro/api/internal/infra/db"
	"github.com/controle-financeiro/api/internal/infra/dependency"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/validation"
	"github.com/controle-financeiro/api/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "controle-financeiro-api",
		Short:         "Personal finance bookkeeping HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), v, cfgFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().Int("port", 0, "HTTP port (overrides SERVER_PORT/PORT)")
	_ = v.BindPFlag("server.port", rootCmd.PersistentFlags().Lookup("port"))

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), v, cfgFile)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(v, cfgFile)
			if err != nil {
				return err
			}
			database, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return database.Close()
		},
	})

	return rootCmd
}

// setup loads the configuration and installs the default logger.
func setup(v *viper.Viper, cfgFile string) (*config.Config, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return cfg, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*db.Database, error) {
	database, err := db.NewConnection(ctx, &cfg.Database, cfg.Server.Environment)
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(model.All()...); err != nil {
		_ = database.Close()
		return nil, err
	}
	slog.Info("Database migrations completed successfully")

	return database, nil
}

func serve(ctx context.Context, v *viper.Viper, cfgFile string) error {
	cfg, err := setup(v, cfgFile)
	if err != nil {
		return err
	}

	slog.Info("Starting Controle Financeiro API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	if err := validation.Setup(); err != nil {
		return fmt.Errorf("failed to configure request validation: %w", err)
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(cfg, database.DB(), slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := injector.Close(); err != nil {
			slog.Error("Failed to release dependencies", "error", err)
		}
	}()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      injector.Router.Setup(cfg.Server.Environment),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Server exited properly")
	return nil
}
