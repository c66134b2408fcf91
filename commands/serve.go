package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventpilot/backend/api"
	"github.com/eventpilot/backend/assets"
	"github.com/eventpilot/backend/auth"
	"github.com/eventpilot/backend/metrics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

var (
	// Serve flags
	sweepInterval time.Duration
	skipMigrate   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Open the database, apply migrations and serve the HTTP API until SIGINT or
SIGTERM. Expired admin sessions are removed in the background.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().DurationVar(&sweepInterval, "sweep-interval", 15*time.Minute, "How often expired sessions are deleted")
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not run AutoMigrate on startup")
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("environment", cfg.Environment).Msg("Initializing app...")

	db, err := openDatabase(ctx, cfg, !skipMigrate)
	if err != nil {
		return err
	}
	defer db.Close()

	if sqlDB, err := db.SQLDB(); err == nil {
		if err := metrics.RegisterDBStats(sqlDB); err != nil {
			log.Warn().Err(err).Msg("database stats collector not registered")
		}
	}

	authenticator := auth.New(cfg.Auth, db.SessionRepo(), auth.WithSecureCookies(cfg.IsProduction()))

	var uploader assets.Uploader
	if cfg.Upload.Enabled() {
		s3Uploader, err := assets.NewS3Uploader(ctx, cfg.Upload)
		if err != nil {
			return fmt.Errorf("init uploader: %w", err)
		}
		uploader = s3Uploader
		log.Info().Str("bucket", cfg.Upload.Bucket).Msg("image uploads enabled")
	} else {
		log.Warn().Msg("S3_BUCKET not set, image uploads disabled")
	}

	server := api.NewServer(cfg, db, authenticator, uploader)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		errChannel := make(chan error, 1)
		go server.Start(errChannel)

		select {
		case err := <-errChannel:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("http server: %w", err)
		case <-gctx.Done():
			server.ShutdownGracefully(shutdownTimeout)
			log.Info().Dur("uptime", server.Uptime()).Msg("server stopped")
			return nil
		}
	})

	g.Go(func() error {
		sweepSessions(gctx, db.SessionRepo(), sweepInterval, time.Now)
		return nil
	})

	return g.Wait()
}

type expiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// sweepSessions deletes expired sessions every interval until ctx is done.
func sweepSessions(ctx context.Context, store expiredSessionDeleter, interval time.Duration, now func() time.Time) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(ctx, now().UTC())
			if err != nil {
				log.Error().Err(err).Msg("session sweep failed")
				continue
			}
			metrics.RecordSessionsSwept(n)
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("expired sessions removed")
			}
		}
	}
}
