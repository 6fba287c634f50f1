package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/serenity-ai/serenity-server/internal/model"
)

type MoodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

func (r *MoodRepository) Create(entry *model.MoodEntry) error {
	return r.db.Create(entry).Error
}

func (r *MoodRepository) ListByUserSince(userID int64, since time.Time) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	err := r.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
