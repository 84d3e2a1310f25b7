package models

import "time"

// Rating is a single 1-5 self-assessment. UserID is a weak reference: deleting the user
// keeps the rating and clears the reference.
type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    *string   `json:"user_id" gorm:"type:uuid;index"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL;"`
}

func (Rating) TableName() string {
	return "ratings"
}
