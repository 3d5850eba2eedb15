package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/nursingassoc/website/internal/app/migrations"
	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/bootstrap"
	"github.com/nursingassoc/website/internal/config"
	"github.com/nursingassoc/website/internal/db"
)

// withDatabase loads config, opens and migrates the database, then runs fn
func withDatabase(ctx context.Context, fn func(cfg *config.Config, gormDB *gorm.DB, lgr zerolog.Logger) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	gormDB, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			lgr.Error().Err(err).Msg("Failed to close database")
		}
	}()

	return fn(cfg, gormDB, lgr)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and list applied versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(_ *config.Config, gormDB *gorm.DB, _ zerolog.Logger) error {
				applied, err := migrations.NewMigrator(gormDB).Applied(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to read applied migrations: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d migrations applied:\n", len(applied))
				for _, version := range applied {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", version)
				}
				return nil
			})
		},
	}
}

func createAdminCmd() *cobra.Command {
	var req dto.CreateUserRequest
	var role string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a staff account, or reset the password of an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.RoleType = models.RoleType(strings.ToUpper(role))
			if !req.RoleType.IsValid() {
				return fmt.Errorf("role must be ADMIN or EDITOR, got %q", role)
			}

			return withDatabase(cmd.Context(), func(cfg *config.Config, gormDB *gorm.DB, lgr zerolog.Logger) error {
				authService := services.NewAuthService(
					repositories.NewUserRepository(gormDB),
					bootstrap.NewJWTService(cfg),
					lgr.With().Str("component", "auth").Logger(),
				)

				user, created, err := authService.EnsureUser(cmd.Context(), &req)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "Created %s account %s (id %d)\n", user.RoleType, user.Email, user.ID)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Password reset for %s (id %d)\n", user.Email, user.ID)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password (min 8 characters)")
	cmd.Flags().StringVar(&req.Name, "name", "Administrator", "Display name")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "ADMIN or EDITOR")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List staff accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(_ *config.Config, gormDB *gorm.DB, _ zerolog.Logger) error {
				users, err := repositories.NewUserRepository(gormDB).List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list users: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Found %d staff accounts:\n", len(users))
				for _, u := range users {
					status := "active"
					if !u.IsActive {
						status = "disabled"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "- %s <%s> %s (id %d) %s\n", u.Name, u.Email, u.RoleType, u.ID, status)
				}
				return nil
			})
		},
	}
}
