package model

import (
	"time"
)

// Note is a private text note. UserID is the owner and never changes after
// creation; every query conjoins it with the note id.
type Note struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `json:"content"`
	IsPinned   bool      `gorm:"default:false" json:"is_pinned"`
	IsFavorite bool      `gorm:"default:false" json:"is_favorite"`
	IsArchived bool      `gorm:"default:false" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Note) TableName() string {
	return "notes"
}
