package repository

import (
	"gorm.io/gorm"

	"github.com/serenity-ai/serenity-server/internal/model"
)

type DiaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

func (r *DiaryRepository) Create(entry *model.DiaryEntry) error {
	return r.db.Create(entry).Error
}

func (r *DiaryRepository) ListByUser(userID int64, page, pageSize int) ([]model.DiaryEntry, int64, error) {
	var entries []model.DiaryEntry
	var total int64

	query := r.db.Model(&model.DiaryEntry{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	return entries, total, err
}

func (r *DiaryRepository) GetByID(id int64) (*model.DiaryEntry, error) {
	var entry model.DiaryEntry
	err := r.db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
