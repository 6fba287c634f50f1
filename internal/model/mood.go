package model

import (
	"time"
)

// MoodEntry is a single mood check-in. Score is 1 (worst) to 5 (best).
type MoodEntry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Score     int       `gorm:"not null" json:"score"`
	Note      string    `gorm:"size:500" json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}
