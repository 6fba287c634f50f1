package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serenity-ai/serenity-server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

// GetByUserID returns the most recent subscription for the user, or nil
// when none exists. A missing record is not an error for callers.
func (r *SubscriptionRepository) GetByUserID(userID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// Upsert writes the billing-driven state keyed by user_id, superseding any
// previous record. Only the webhook path calls this.
func (r *SubscriptionRepository) Upsert(sub *model.Subscription) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "plan", "provider", "provider_customer_id",
			"current_period_end", "trial_end", "updated_at",
		}),
	}).Create(sub).Error
}

func (r *SubscriptionRepository) UpdateStatus(userID int64, status string) error {
	return r.db.Model(&model.Subscription{}).Where("user_id = ?", userID).
		Update("status", status).Error
}
