package models

import "time"

type Mood struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Mood      string    `gorm:"size:10;not null;index" json:"mood"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Mood) TableName() string {
	return "moods"
}
