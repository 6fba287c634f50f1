package service

import (
	"github.com/serenity-ai/serenity-server/internal/model"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/repository"
)

type DiaryService struct {
	diaryRepo *repository.DiaryRepository
}

func NewDiaryService(diaryRepo *repository.DiaryRepository) *DiaryService {
	return &DiaryService{diaryRepo: diaryRepo}
}

// CreateEntry persists a diary entry. Allowance is consumed by the caller
// before this runs; a save that fails here has still consumed allowance,
// matching the original app.
func (s *DiaryService) CreateEntry(userID int64, req *dto.CreateDiaryEntryRequest) (*model.DiaryEntry, error) {
	entry := &model.DiaryEntry{
		UserID:  userID,
		Content: req.Content,
		Emotion: req.Emotion,
	}
	if err := s.diaryRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *DiaryService) ListEntries(userID int64, page, pageSize int) ([]model.DiaryEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.diaryRepo.ListByUser(userID, page, pageSize)
}
