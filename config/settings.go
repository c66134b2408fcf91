package config

import (
	"strings"
	"time"

	"github.com/eventpilot/backend/errs"
	"github.com/rs/zerolog"
)

const minProductionSecretLength = 32

type DatabaseSettings struct {
	URL         string
	ReplicaURLs []string
}

// IsPostgres reports whether URL points at PostgreSQL rather than a SQLite file.
func (d DatabaseSettings) IsPostgres() bool {
	return strings.HasPrefix(d.URL, "postgres://") ||
		strings.HasPrefix(d.URL, "postgresql://") ||
		strings.Contains(d.URL, "host=")
}

// SQLitePath strips the sqlite:// scheme if present.
func (d DatabaseSettings) SQLitePath() string {
	return strings.TrimPrefix(d.URL, "sqlite://")
}

type AuthSettings struct {
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	SessionSecret     string
	SessionTTL        time.Duration
}

type ServerSettings struct {
	Port           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

type UploadSettings struct {
	Bucket       string
	Region       string
	Endpoint     string
	AssetBaseURL string
	MaxBytes     int64
}

// Enabled reports whether an upload provider is configured.
func (u UploadSettings) Enabled() bool {
	return u.Bucket != ""
}

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	Database    DatabaseSettings
	Auth        AuthSettings
	Server      ServerSettings
	Upload      UploadSettings
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load builds the configuration once from an environment map, usually New().
func Load(env map[string]string) (Config, error) {
	environment := strings.ToLower(GetString(env, "APP_ENV", GetString(env, "NODE_ENV", "development")))

	level, err := zerolog.ParseLevel(strings.ToLower(GetString(env, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	cfg := Config{
		Environment: environment,
		LogLevel:    level,
		Database: DatabaseSettings{
			URL:         GetString(env, "DATABASE_URL", "sqlite://eventpilot.db"),
			ReplicaURLs: GetStrings(env, "DATABASE_REPLICA_URLS"),
		},
		Auth: AuthSettings{
			AdminUsername:     GetString(env, "ADMIN_USERNAME", "admin"),
			AdminPassword:     GetString(env, "ADMIN_PASSWORD", ""),
			AdminPasswordHash: GetString(env, "ADMIN_PASSWORD_HASH", ""),
			JWTSecret:         GetString(env, "JWT_SECRET", ""),
			SessionSecret:     GetString(env, "SESSION_SECRET", ""),
			SessionTTL:        time.Duration(GetInt(env, "SESSION_TTL_HOURS", 24)) * time.Hour,
		},
		Server: ServerSettings{
			Port:           GetString(env, "PORT", "5000"),
			AllowedOrigins: GetStrings(env, "ALLOWED_ORIGIN"),
			ReadTimeout:    GetSeconds(env, "READ_TIMEOUT_SECONDS", 15),
			WriteTimeout:   GetSeconds(env, "WRITE_TIMEOUT_SECONDS", 15),
			IdleTimeout:    GetSeconds(env, "IDLE_TIMEOUT_SECONDS", 60),
		},
		Upload: UploadSettings{
			Bucket:       GetString(env, "S3_BUCKET", ""),
			Region:       GetString(env, "S3_REGION", "us-east-1"),
			Endpoint:     GetString(env, "S3_ENDPOINT", ""),
			AssetBaseURL: strings.TrimRight(GetString(env, "ASSET_BASE_URL", ""), "/"),
			MaxBytes:     int64(GetInt(env, "UPLOAD_MAX_BYTES", 1<<20)),
		},
	}

	if cfg.Server.AllowedOrigins == nil {
		cfg.Server.AllowedOrigins = GetStrings(env, "ALLOWED_ORIGINS")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Auth.AdminPassword == "" && c.Auth.AdminPasswordHash == "" {
		return errs.NewEnvironmentVariableError("ADMIN_PASSWORD")
	}
	if c.Auth.JWTSecret == "" {
		return errs.NewEnvironmentVariableError("JWT_SECRET")
	}
	if c.Auth.SessionTTL <= 0 {
		return errs.NewConfigError("SESSION_TTL_HOURS", "must be positive")
	}
	if c.IsProduction() {
		if len(c.Auth.JWTSecret) < minProductionSecretLength {
			return errs.NewConfigError("JWT_SECRET", "must be at least 32 characters in production")
		}
		if c.Auth.SessionSecret == "" {
			return errs.NewEnvironmentVariableError("SESSION_SECRET")
		}
	}
	if c.Upload.Enabled() && c.Upload.AssetBaseURL == "" {
		return errs.NewEnvironmentVariableError("ASSET_BASE_URL")
	}
	return nil
}

// CookieSecret is the key signing session cookies. Development falls back to
// the token secret so a single variable is enough locally.
func (a AuthSettings) CookieSecret() string {
	if a.SessionSecret != "" {
		return a.SessionSecret
	}
	return a.JWTSecret
}
