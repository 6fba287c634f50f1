package model

import (
	"time"
)

// Crisis tool identifiers.
const (
	CrisisToolBreathe   = "breathe"
	CrisisToolGrounding = "grounding"
	CrisisToolPlan      = "plan"
)

type CrisisSession struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	ToolUsed  string    `gorm:"size:20;not null" json:"tool_used"`
	StartedAt time.Time `gorm:"not null" json:"started_at"`
	Completed bool      `gorm:"default:true" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func (CrisisSession) TableName() string {
	return "crisis_sessions"
}
