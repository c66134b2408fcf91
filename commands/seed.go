package commands

import (
	"github.com/eventpilot/backend/database"
	"github.com/eventpilot/backend/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Seed flags
	adminEmail string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin user row and the starter service catalogue",
	Long: `Upsert the user record for the configured admin and insert the default
services when the services table is empty. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		db, err := openDatabase(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer db.Close()

		admin := models.User{ID: database.AdminUserID(cfg.Auth.AdminUsername)}
		if adminEmail != "" {
			admin.Email = &adminEmail
		}

		result, err := db.Seed(ctx, admin, database.DefaultServices())
		if err != nil {
			return err
		}
		log.Info().
			Str("adminUserID", result.AdminUserID.String()).
			Int("servicesCreated", result.ServicesCreated).
			Msg("seed complete")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&adminEmail, "admin-email", "", "Email stored on the admin user row")
}
