package models

import "time"

const (
	ChatTypeHint = "hint"
	ChatTypeInfo = "info"
)

// ChatMessage is one assistant exchange kept in a user's chat history.
type ChatMessage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string    `gorm:"size:10;not null" json:"type"`
	Question  string    `gorm:"not null" json:"question"`
	Answer    string    `gorm:"not null" json:"answer"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"timestamp"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
