package models

import "time"

// MediaPerson is a player name registered for the media bias game.
type MediaPerson struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (MediaPerson) TableName() string {
	return "media_persons"
}

// GameScore is one completed run of the media bias game.
type GameScore struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PlayerID  int64     `json:"player_id" gorm:"not null;index"`
	UserID    *string   `json:"user_id" gorm:"type:uuid;index"`
	Seconds   int       `json:"time" gorm:"not null;check:seconds >= 1 AND seconds <= 3600"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Player *MediaPerson `json:"player,omitempty" gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE;"`
	User   *User        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL;"`
}

func (GameScore) TableName() string {
	return "game_scores"
}
