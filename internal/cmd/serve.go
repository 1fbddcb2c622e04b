package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"minishop/internal/config"
	"minishop/internal/database"
	"minishop/internal/server"
	"minishop/internal/services"
	"minishop/internal/tokenstore"
	"minishop/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. The schema is migrated on startup.

Optional integrations:
- REDIS_ADDR shares revoked tokens between instances
- RABBITMQ_URL publishes order and shipment events
- ADMIN_EMAIL and ADMIN_PASSWORD ensure an admin account exists`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	deps := server.Deps{
		DB:        db,
		Log:       log,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
	}

	if cfg.RedisAddr != "" {
		store, err := tokenstore.NewRedis(cmd.Context(), tokenstore.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Tokens = store
		log.Info("revoked tokens are stored in Redis", zap.String("addr", cfg.RedisAddr))
	}

	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		deps.Events = mqClient
	} else {
		log.Info("RABBITMQ_URL not set, domain events are disabled")
	}

	if err := ensureAdmin(cmd.Context(), cfg, deps, log); err != nil {
		return err
	}

	app := server.New(deps)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.AppPort), zap.String("env", cfg.AppEnv))
		serverErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Error("error during Fiber shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
	return nil
}

// ensureAdmin creates or promotes the configured admin account.
func ensureAdmin(ctx context.Context, cfg *config.Config, deps server.Deps, log *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	users := server.NewServices(deps).Users
	admin, err := users.EnsureAdmin(ctx, services.RegisterInput{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}
	log.Info("admin account ready", zap.String("user_id", admin.ID), zap.String("email", admin.Email))
	return nil
}
