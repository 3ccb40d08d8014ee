package model

import (
	"time"
)

// User is a registered account. The reset-token pair lives on the user row
// so a new forgot-password request overwrites the prior token in place;
// both fields are null or both are set.
type User struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"` // stored lower-cased
	PasswordHash     string     `gorm:"not null" json:"-"`
	Name             string     `gorm:"not null" json:"name"`
	ResetToken       *string    `gorm:"index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
