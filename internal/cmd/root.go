// Package cmd holds the minishop command line.
package cmd

import (
	"fmt"
	"os"

	"minishop/internal/config"
	"minishop/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "minishop",
	Short: "minishop - a small e-commerce REST API",
	Long: `minishop serves a REST API for users, addresses, categories, products,
carts, orders, wishlists, reviews and shipments.

Run "minishop serve" to start the API. Settings are read from the
environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the logger every command runs with.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return cfg, log, nil
}
