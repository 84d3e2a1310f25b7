package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User mirrors an account of the identity service. Rows are created the first time a
// valid token for the account is seen; Role is owned by this database.
type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Role      string    `gorm:"size:20;default:'User';not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (User) TableName() string {
	return "users"
}
