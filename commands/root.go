package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/eventpilot/backend/config"
	"github.com/eventpilot/backend/database"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "eventpilot",
	Short: "EventPilot - marketing site and booking backend for an event planning business",
	Long: `EventPilot serves the public site API (quotes, contact, blog, gallery, venues,
services) and the admin console API behind a single admin login.

Configuration is read from the environment, an optional .env file and, when
SSM_PARAMETER_PREFIX is set, AWS Systems Manager Parameter Store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before reading configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

// setupLogging configures the global zerolog logger. Development gets the
// console writer; everything else logs JSON.
func setupLogging(cfg config.Config) {
	level := cfg.LogLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "eventpilot").Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// loadConfig reads the environment once, pulls secrets from SSM when asked to
// and validates the result.
func loadConfig(ctx context.Context) (config.Config, error) {
	env := config.New()

	if prefix := config.GetString(env, "SSM_PARAMETER_PREFIX", ""); prefix != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return config.Config{}, fmt.Errorf("load aws config: %w", err)
		}
		if err := config.HydrateFromSSM(ctx, ssm.NewFromConfig(awsCfg), prefix, env); err != nil {
			return config.Config{}, err
		}
	}

	cfg, err := config.Load(env)
	if err != nil {
		return config.Config{}, err
	}
	setupLogging(cfg)
	return cfg, nil
}

// openDatabase connects, checks the connection and migrates.
func openDatabase(ctx context.Context, cfg config.Config, migrate bool) (database.Database, error) {
	gdb, err := database.Open(cfg.Database)
	if err != nil {
		return database.Database{}, err
	}
	db := database.New(gdb)

	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return database.Database{}, err
	}
	if migrate {
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return database.Database{}, err
		}
	}
	return db, nil
}
