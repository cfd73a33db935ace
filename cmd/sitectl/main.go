package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/gis-site-service/internal/config"
	"github.com/spec-kit/gis-site-service/internal/observability"
	"github.com/spec-kit/gis-site-service/internal/persistence"
	"github.com/spec-kit/gis-site-service/internal/repository"
	"github.com/spec-kit/gis-site-service/internal/service"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	migrationsDir string

	adminName     string
	adminEmail    string
	adminPassword string
)

var rootCmd = &cobra.Command{
	Use:          "sitectl",
	Short:        "Maintenance commands for the GIS site back-office",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		logger, err = observability.NewLogger(cfg.Logger)
		return err
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := migrationsDir
		if dir == "" {
			dir = cfg.Postgres.MigrationsDir
		}
		return withPostgres(cmd.Context(), func(ctx context.Context, pg *persistence.Postgres) error {
			return pg.Migrate(ctx, dir, logger)
		})
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a back-office admin account if the email is not taken",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminPassword == "" {
			adminPassword = os.Getenv("ADMIN_PASSWORD")
		}
		return withPostgres(cmd.Context(), func(ctx context.Context, pg *persistence.Postgres) error {
			authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
				AdminRepo: repository.NewAdminRepository(pg.PoolHandle()),
				Logger:    logger,
			})
			admin, created, err := authService.EnsureAdmin(ctx, adminName, adminEmail, adminPassword)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", admin.Email)
			}
			return nil
		})
	},
}

func withPostgres(ctx context.Context, fn func(context.Context, *persistence.Postgres) error) error {
	defer logger.Sync() //nolint:errcheck
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()
	return fn(ctx, pg)
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "", "migrations directory (defaults to POSTGRES_MIGRATIONS_DIR)")

	createAdminCmd.Flags().StringVar(&adminName, "name", "Site Administrator", "display name used to sign replies")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password (or ADMIN_PASSWORD)")
	_ = createAdminCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(migrateCmd, createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
