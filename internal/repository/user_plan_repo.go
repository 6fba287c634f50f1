package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serenity-ai/serenity-server/internal/model"
)

type UserPlanRepository struct {
	db *gorm.DB
}

func NewUserPlanRepository(db *gorm.DB) *UserPlanRepository {
	return &UserPlanRepository{db: db}
}

// GetByUserID returns the plan override for the user, or nil when none
// exists.
func (r *UserPlanRepository) GetByUserID(userID int64) (*model.UserPlan, error) {
	var plan model.UserPlan
	err := r.db.Where("user_id = ?", userID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// Upsert writes the admin-granted override keyed by user_id.
func (r *UserPlanRepository) Upsert(plan *model.UserPlan) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_premium", "premium_until", "updated_at",
		}),
	}).Create(plan).Error
}
