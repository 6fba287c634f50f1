package service

import (
	"time"

	"github.com/serenity-ai/serenity-server/internal/model"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/repository"
)

type MoodService struct {
	moodRepo *repository.MoodRepository
}

func NewMoodService(moodRepo *repository.MoodRepository) *MoodService {
	return &MoodService{moodRepo: moodRepo}
}

func (s *MoodService) Record(userID int64, req *dto.CreateMoodRequest) (*model.MoodEntry, error) {
	entry := &model.MoodEntry{
		UserID: userID,
		Score:  req.Score,
		Note:   req.Note,
	}
	if err := s.moodRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// History returns mood check-ins from the last `days` days, newest first.
func (s *MoodService) History(userID int64, days int) ([]model.MoodEntry, error) {
	if days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.moodRepo.ListByUserSince(userID, since)
}
