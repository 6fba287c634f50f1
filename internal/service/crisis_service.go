package service

import (
	"time"

	"github.com/serenity-ai/serenity-server/internal/model"
	"github.com/serenity-ai/serenity-server/internal/repository"
)

// CrisisService records completed uses of the crisis tools. It is never
// gated: safety features stay available regardless of plan or allowance.
type CrisisService struct {
	crisisRepo *repository.CrisisRepository
}

func NewCrisisService(crisisRepo *repository.CrisisRepository) *CrisisService {
	return &CrisisService{crisisRepo: crisisRepo}
}

func (s *CrisisService) RecordSession(userID int64, tool string) (*model.CrisisSession, error) {
	session := &model.CrisisSession{
		UserID:    userID,
		ToolUsed:  tool,
		StartedAt: time.Now(),
		Completed: true,
	}
	if err := s.crisisRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CrisisService) RecentSessions(userID int64, limit int) ([]model.CrisisSession, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.crisisRepo.ListByUser(userID, limit)
}
