package repository

import (
	"errors"

	"chat-powered-ecommerce/backend/internal/models"

	"gorm.io/gorm"
)

// ErrNoMessages is returned when a user has no persisted chat history
var ErrNoMessages = errors.New("no messages for user")

// MessageRepository provides access to persisted chat messages
type MessageRepository interface {
	Create(message *models.ChatMessage) error
	// RecentByUser returns up to limit of the user's newest messages,
	// ordered newest first.
	RecentByUser(userID uint, limit int) ([]models.ChatMessage, error)
	// LatestByUser returns the user's single most recent message, or
	// ErrNoMessages.
	LatestByUser(userID uint) (*models.ChatMessage, error)
	// BySession returns the user's messages belonging to the given session
	// (nil means the orphaned, session-less group), oldest first.
	BySession(userID uint, sessionID *uint) ([]models.ChatMessage, error)
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *GormMessageRepository) RecentByUser(userID uint, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *GormMessageRepository) LatestByUser(userID uint) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoMessages
		}
		return nil, err
	}
	return &message, nil
}

func (r *GormMessageRepository) BySession(userID uint, sessionID *uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	query := r.db.Where("user_id = ?", userID)
	if sessionID == nil {
		query = query.Where("session_id IS NULL")
	} else {
		query = query.Where("session_id = ?", *sessionID)
	}
	err := query.Order("timestamp ASC").Find(&messages).Error
	return messages, err
}
