// Package auth guards the admin console. There is a single admin identity
// taken from configuration; each login opens a server side session that both
// the bearer token and the session cookie point at.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/eventpilot/backend/config"
	"github.com/eventpilot/backend/database"
	"github.com/eventpilot/backend/errs"
	"github.com/eventpilot/backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const RoleAdmin = "admin"

// SessionStore persists login sessions. *database.SessionRepo satisfies it.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, sid string, now time.Time) (*models.Session, error)
	Delete(ctx context.Context, sid string) error
}

// Identity is an authenticated caller.
type Identity struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	SessionID string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Session is the result of a successful login.
type Session struct {
	Token    string
	Identity Identity
}

type Authenticator struct {
	username      string
	password      string
	passwordHash  []byte
	tokenSecret   []byte
	cookieSecret  []byte
	ttl           time.Duration
	secureCookies bool
	store         SessionStore
	now           func() time.Time
	logger        zerolog.Logger
}

type Option func(*Authenticator)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		a.now = now
	}
}

// WithSecureCookies marks session cookies Secure.
func WithSecureCookies(secure bool) Option {
	return func(a *Authenticator) {
		a.secureCookies = secure
	}
}

func New(settings config.AuthSettings, store SessionStore, opts ...Option) *Authenticator {
	a := &Authenticator{
		username:     settings.AdminUsername,
		password:     settings.AdminPassword,
		tokenSecret:  []byte(settings.JWTSecret),
		cookieSecret: []byte(settings.CookieSecret()),
		ttl:          settings.SessionTTL,
		store:        store,
		now:          time.Now,
		logger:       log.With().Str("component", "auth").Logger(),
	}
	if settings.AdminPasswordHash != "" {
		a.passwordHash = []byte(settings.AdminPasswordHash)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HashPassword produces a value suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (a *Authenticator) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	var passOK bool
	if a.passwordHash != nil {
		passOK = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	}
	return userOK && passOK
}

// Login exchanges the admin credentials for a session and a signed token.
func (a *Authenticator) Login(ctx context.Context, username, password string) (Session, error) {
	if !a.checkCredentials(username, password) {
		a.logger.Warn().Msg("rejected admin login")
		return Session{}, errs.NewInvalidCredentialsError()
	}

	issuedAt := a.now().UTC()
	identity := Identity{
		Username:  a.username,
		Role:      RoleAdmin,
		SessionID: uuid.NewString(),
		ExpiresAt: issuedAt.Add(a.ttl),
	}

	token, err := signToken(a.tokenSecret, identity.Username, identity.Role, identity.SessionID, issuedAt, identity.ExpiresAt)
	if err != nil {
		return Session{}, errs.NewInternalErrorWithCause("sign token", err)
	}

	row := &models.Session{
		SID: identity.SessionID,
		Sess: datatypes.NewJSONType(models.SessionData{
			Username: identity.Username,
			Role:     identity.Role,
			IssuedAt: issuedAt,
		}),
		Expire: identity.ExpiresAt,
	}
	if err := a.store.Create(ctx, row); err != nil {
		return Session{}, errs.NewDatabaseError("create", "session", err)
	}

	a.logger.Info().Str("sid", identity.SessionID).Msg("admin logged in")
	return Session{Token: token, Identity: identity}, nil
}

// Authenticate verifies a bearer token and that its session is still open.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, errs.NewMissingTokenError()
	}

	claims, err := parseToken(a.tokenSecret, token, a.now)
	switch {
	case errors.Is(err, ErrExpiredToken):
		return Identity{}, errs.NewExpiredTokenError()
	case err != nil:
		return Identity{}, errs.NewInvalidTokenError()
	}

	return a.resolveSession(ctx, claims.ID)
}

// AuthenticateCookie verifies a signed session cookie value.
func (a *Authenticator) AuthenticateCookie(ctx context.Context, value string) (Identity, error) {
	if value == "" {
		return Identity{}, errs.NewMissingTokenError()
	}
	sid, ok := unsignSID(a.cookieSecret, value)
	if !ok {
		return Identity{}, errs.NewInvalidTokenError()
	}
	return a.resolveSession(ctx, sid)
}

func (a *Authenticator) resolveSession(ctx context.Context, sid string) (Identity, error) {
	session, err := a.store.Get(ctx, sid, a.now().UTC())
	if errors.Is(err, database.ErrSessionNotFound) {
		return Identity{}, errs.NewInvalidTokenError()
	}
	if err != nil {
		return Identity{}, errs.NewDatabaseError("find", "session", err)
	}

	data := session.Sess.Data()
	return Identity{
		Username:  data.Username,
		Role:      data.Role,
		SessionID: session.SID,
		ExpiresAt: session.Expire,
	}, nil
}

// Logout closes the session so its token and cookie stop working.
func (a *Authenticator) Logout(ctx context.Context, identity Identity) error {
	if err := a.store.Delete(ctx, identity.SessionID); err != nil {
		return errs.NewDatabaseError("delete", "session", err)
	}
	a.logger.Info().Str("sid", identity.SessionID).Msg("admin logged out")
	return nil
}
