package models

import "time"

// MultiRating holds one answer to the five-question survey.
type MultiRating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    *string   `json:"user_id" gorm:"type:uuid;index"`
	Q1        int       `json:"q1" gorm:"not null;check:q1 >= 1 AND q1 <= 5"`
	Q2        int       `json:"q2" gorm:"not null;check:q2 >= 1 AND q2 <= 5"`
	Q3        int       `json:"q3" gorm:"not null;check:q3 >= 1 AND q3 <= 5"`
	Q4        int       `json:"q4" gorm:"not null;check:q4 >= 1 AND q4 <= 5"`
	Q5        int       `json:"q5" gorm:"not null;check:q5 >= 1 AND q5 <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL;"`
}

// Answers returns q1..q5 in order.
func (m *MultiRating) Answers() [5]int {
	return [5]int{m.Q1, m.Q2, m.Q3, m.Q4, m.Q5}
}

func (MultiRating) TableName() string {
	return "multirating_responses"
}
