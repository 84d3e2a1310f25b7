package repository

import (
	"context"

	"medialit/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserMessageCount is the number of stored chat messages for one user.
type UserMessageCount struct {
	Username string
	Count    int64
}

type ChatHistoryRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	ListByUser(ctx context.Context, userID string) ([]models.ChatMessage, error)
	CountsByUser(ctx context.Context) ([]UserMessageCount, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type chatHistoryRepository struct {
	db *gorm.DB
}

func NewChatHistoryRepository(db *gorm.DB) ChatHistoryRepository {
	return &chatHistoryRepository{db: db}
}

func (r *chatHistoryRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListByUser returns a user's messages oldest first, the order they were asked in.
func (r *chatHistoryRepository) ListByUser(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *chatHistoryRepository) CountsByUser(ctx context.Context) ([]UserMessageCount, error) {
	var counts []UserMessageCount
	err := r.db.WithContext(ctx).
		Table("chat_messages AS m").
		Select("u.username AS username, COUNT(*) AS count").
		Joins("JOIN users AS u ON u.id = m.user_id").
		Group("u.username").
		Order("u.username ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *chatHistoryRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.ChatMessage{})
	return result.RowsAffected, result.Error
}
