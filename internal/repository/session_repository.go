package repository

import (
	"errors"
	"time"

	"chat-powered-ecommerce/backend/internal/models"

	"gorm.io/gorm"
)

// ErrNoOpenSession is returned when a user has no session with a nil end time
var ErrNoOpenSession = errors.New("no open session for user")

// SessionRepository provides access to persisted login sessions
type SessionRepository interface {
	Create(session *models.Session) error
	// OpenByUser returns the most recently started session for the user
	// whose ended_at is null, or ErrNoOpenSession.
	OpenByUser(userID uint) (*models.Session, error)
	// CloseOpen sets ended_at on the newest open session for the user and
	// reports how many rows were updated (zero when none was open).
	CloseOpen(userID uint, endedAt time.Time) (int64, error)
	// OpenCount reports how many sessions for the user are still open
	OpenCount(userID uint) (int64, error)
}

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *GormSessionRepository) OpenByUser(userID uint) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("user_id = ? AND ended_at IS NULL", userID).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenSession
		}
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepository) CloseOpen(userID uint, endedAt time.Time) (int64, error) {
	session, err := r.OpenByUser(userID)
	if err != nil {
		if errors.Is(err, ErrNoOpenSession) {
			return 0, nil
		}
		return 0, err
	}

	result := r.db.Model(&models.Session{}).
		Where("id = ? AND ended_at IS NULL", session.ID).
		Update("ended_at", endedAt)
	return result.RowsAffected, result.Error
}

func (r *GormSessionRepository) OpenCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Session{}).
		Where("user_id = ? AND ended_at IS NULL", userID).
		Count(&count).Error
	return count, err
}
