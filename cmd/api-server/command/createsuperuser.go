package command

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"yamdb/database"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/middleware/auth"
)

var (
	superuserName  string
	superuserEmail string
	printToken     bool
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an administrator account",
	Long: `Create an account with the superuser flag. Superusers always hold the
admin role. Sign-in works like for any account, through /auth/email/ and
/auth/token/; --print-token skips the mail round trip.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := database.ConnectDB(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		user := newSuperuser(superuserName, superuserEmail)
		if err := repository.NewUserRepository(db).Create(ctx, user); err != nil {
			return fmt.Errorf("create superuser: %w", err)
		}
		logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("superuser created")

		if printToken {
			tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
			if err != nil {
				return err
			}
			token, err := tokens.Issue(user)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
		}
		return nil
	},
}

func newSuperuser(username, email string) *models.User {
	if username == "" {
		username = email
	}
	return &models.User{
		Username:    username,
		Email:       email,
		IsSuperuser: true,
	}
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserName, "username", "", "username (default: the email)")
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "email address")
	createSuperuserCmd.Flags().BoolVar(&printToken, "print-token", false, "print a bearer token for the new account")
	_ = createSuperuserCmd.MarkFlagRequired("email")
}
