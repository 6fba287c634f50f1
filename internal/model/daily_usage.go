package model

import (
	"time"
)

// DailyUsage holds the free-tier counters for one user on one civil date
// (YYYY-MM-DD in America/Sao_Paulo). At most one row per (user, date);
// counters never decrease within a day. Rows are created lazily on first
// touch and never deleted here.
type DailyUsage struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex:idx_user_date" json:"user_id"`
	Date        string    `gorm:"size:10;not null;uniqueIndex:idx_user_date" json:"date"`
	ChatUsed    int       `gorm:"default:0" json:"chat_used"`
	JournalUsed int       `gorm:"default:0" json:"journal_used"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (DailyUsage) TableName() string {
	return "daily_usage"
}
