package model

import (
	"time"
)

// Subscription status values. A stored status is only a hint: reads must
// recompute expiry against the deadline fields (see EntitlementService).
const (
	SubStatusTrial    = "trial"
	SubStatusActive   = "active"
	SubStatusPremium  = "premium"
	SubStatusCanceled = "canceled"
	SubStatusExpired  = "expired"
)

const (
	PlanFree    = "free"
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// Subscription is one logically-active billing record per user, upserted
// keyed by user_id. The billing webhook is its sole writer apart from the
// lazy expiry correction.
type Subscription struct {
	ID                 int64      `gorm:"primaryKey" json:"id"`
	UserID             int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	Status             string     `gorm:"size:20;default:trial;index" json:"status"`
	Plan               string     `gorm:"size:20;default:free" json:"plan"`
	Provider           string     `gorm:"size:20;default:stripe" json:"provider"` // stripe, apple, google
	ProviderCustomerID *string    `gorm:"size:100" json:"provider_customer_id,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	TrialEnd           *time.Time `json:"trial_end,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
