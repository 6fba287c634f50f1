package model

import (
	"time"
)

type DiaryEntry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Emotion   string    `gorm:"size:30" json:"emotion,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DiaryEntry) TableName() string {
	return "diary_entries"
}
