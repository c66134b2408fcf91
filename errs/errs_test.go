package errs

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		is     error
	}{
		{name: "record not found", cause: gorm.ErrRecordNotFound, status: http.StatusNotFound, is: ErrNotFound},
		{name: "gorm duplicate", cause: gorm.ErrDuplicatedKey, status: http.StatusConflict, is: ErrConflict},
		{name: "pg unique", cause: &pgconn.PgError{Code: "23505"}, status: http.StatusConflict, is: ErrAlreadyExists},
		{name: "sqlite unique", cause: errors.New("constraint failed: UNIQUE constraint failed: blog_posts.slug (2067)"), status: http.StatusConflict, is: ErrConflict},
		{name: "pg foreign key", cause: &pgconn.PgError{Code: "23503"}, status: http.StatusBadRequest, is: ErrForeignKeyConstraint},
		{name: "deadline", cause: fmt.Errorf("query: %w", context.DeadlineExceeded), status: http.StatusServiceUnavailable, is: ErrDatabaseTimeout},
		{name: "bad conn", cause: fmt.Errorf("exec: %w", driver.ErrBadConn), status: http.StatusServiceUnavailable, is: ErrDatabaseConnection},
		{name: "conn done", cause: sql.ErrConnDone, status: http.StatusServiceUnavailable, is: ErrDatabaseConnection},
		{name: "dial", cause: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, status: http.StatusServiceUnavailable, is: ErrDatabaseConnection},
		{name: "message mentioning connection", cause: errors.New(`column "connection" does not exist`), status: http.StatusInternalServerError, is: ErrDatabaseQuery},
		{name: "other", cause: errors.New("syntax error"), status: http.StatusInternalServerError, is: ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "Blog post", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err, tt.is)
			assert.Equal(t, tt.is == ErrDatabaseConnection, IsDatabaseConnectionError(err))
		})
	}
}

func TestPgxConnectFailureIsConnectionError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, cause := pgconn.Connect(ctx, "postgres://eventpilot@127.0.0.1:1/eventpilot?sslmode=disable&connect_timeout=2")
	require.Error(t, cause)
	var connectErr *pgconn.ConnectError
	require.ErrorAs(t, cause, &connectErr)

	err := NewDatabaseError("find", "session", cause)
	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
	assert.True(t, IsDatabaseConnectionError(err))
}

func TestUniqueViolationIsConflict(t *testing.T) {
	err := NewDatabaseError("create", "Blog post", gorm.ErrDuplicatedKey)
	assert.True(t, IsConflict(err))
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, "Blog post already exists: resource conflict", err.Message())
	assert.ErrorIs(t, err.Cause, gorm.ErrDuplicatedKey)

	assert.True(t, IsConflict(NewAlreadyExists("Venue")))
	assert.False(t, IsConflict(NewNotFound("Venue")))
}

func TestMaxBodySizeExceeded(t *testing.T) {
	err := NewMaxBodySizeExceededError(1024)
	assert.Equal(t, http.StatusRequestEntityTooLarge, err.StatusCode)
	assert.True(t, IsMaxBodySizeExceededError(err))
	assert.True(t, IsMaxBodySizeExceededError(fmt.Errorf("read image: %w", err)))
	assert.False(t, IsMaxBodySizeExceededError(NewBadRequestError("No image provided")))
}

func TestNewDatabaseErrorPassesApiErrThrough(t *testing.T) {
	notFound := NewNotFound("Venue")
	assert.Same(t, notFound, NewDatabaseError("get", "Venue", notFound))
	assert.Equal(t, "Venue not found", notFound.Message())
}

func TestMessageHidesServerDetails(t *testing.T) {
	err := NewDatabaseError("list", "venues", errors.New("pq: relation does not exist"))
	assert.Equal(t, "Internal server error", err.Message())
	assert.Contains(t, err.GetFullError(), "relation does not exist")

	validation := NewValidationError([]FieldIssue{{Field: "email", Message: "Invalid email"}})
	assert.Equal(t, "Validation error", validation.Message())
	assert.Equal(t, "email", validation.Field)
	assert.True(t, IsValidationError(validation))
}

func TestAuthErrors(t *testing.T) {
	assert.True(t, IsUnauthorized(NewMissingTokenError()))
	assert.True(t, IsMissingTokenError(NewMissingTokenError()))
	assert.True(t, IsExpiredTokenError(NewExpiredTokenError()))
	assert.True(t, IsInvalidTokenError(NewInvalidTokenError()))

	creds := NewInvalidCredentialsError()
	assert.Equal(t, http.StatusUnauthorized, creds.StatusCode)
	assert.Equal(t, "Invalid credentials", creds.Message())
}
