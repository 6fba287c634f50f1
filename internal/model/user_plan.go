package model

import (
	"time"
)

// UserPlan is the manual plan override, independent from Subscription. A
// user is premium if either source grants it. PremiumUntil in the past
// disables the grant even while IsPremium stays true in storage.
type UserPlan struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	UserID       int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	IsPremium    bool       `gorm:"default:false" json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (UserPlan) TableName() string {
	return "user_plans"
}
