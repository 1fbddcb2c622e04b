package cmd

import (
	"fmt"

	"minishop/internal/database"
	"minishop/internal/server"
	"minishop/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var adminFlags struct {
	email    string
	password string
	name     string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account, or promote an existing user to admin",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.email, "email", "", "email of the admin account")
	createAdminCmd.Flags().StringVar(&adminFlags.password, "password", "", "password of the admin account")
	createAdminCmd.Flags().StringVar(&adminFlags.name, "name", "Administrator", "display name of the admin account")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
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

	users := server.NewServices(server.Deps{DB: db, Log: log, JWTSecret: cfg.JWTSecret}).Users
	admin, err := users.EnsureAdmin(cmd.Context(), services.RegisterInput{
		Name:     adminFlags.name,
		Email:    adminFlags.email,
		Password: adminFlags.password,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	log.Info("admin account ready", zap.String("user_id", admin.ID), zap.String("email", admin.Email))
	return nil
}
