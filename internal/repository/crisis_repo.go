package repository

import (
	"gorm.io/gorm"

	"github.com/serenity-ai/serenity-server/internal/model"
)

type CrisisRepository struct {
	db *gorm.DB
}

func NewCrisisRepository(db *gorm.DB) *CrisisRepository {
	return &CrisisRepository{db: db}
}

func (r *CrisisRepository) Create(session *model.CrisisSession) error {
	return r.db.Create(session).Error
}

func (r *CrisisRepository) ListByUser(userID int64, limit int) ([]model.CrisisSession, error) {
	var sessions []model.CrisisSession
	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
