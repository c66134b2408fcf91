package database

import (
	"context"
	"errors"
	"time"

	"github.com/eventpilot/backend/models"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db}
}

func (r *SessionRepo) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// Get returns the session only while it is unexpired.
func (r *SessionRepo) Get(ctx context.Context, sid string, now time.Time) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("sid = ? AND expire > ?", sid, now).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepo) Delete(ctx context.Context, sid string) error {
	return r.db.WithContext(ctx).Where("sid = ?", sid).Delete(&models.Session{}).Error
}

// DeleteExpired removes sessions past their expiry and reports how many went.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expire <= ?", now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
