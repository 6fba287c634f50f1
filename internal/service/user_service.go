package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/serenity-ai/serenity-server/config"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/repository"
)

type UserService struct {
	userRepo    *repository.UserRepository
	entitlement *EntitlementService
	cfg         *config.Config
}

func NewUserService(
	userRepo *repository.UserRepository,
	entitlement *EntitlementService,
	cfg *config.Config,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		entitlement: entitlement,
		cfg:         cfg,
	}
}

func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &dto.UserInfo{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Language:         user.Language,
		HasAcceptedTerms: user.HasAcceptedTerms,
		EmailVerified:    user.EmailVerified,
		IsPremium:        s.entitlement.IsPremium(user.ID),
		CreatedAt:        user.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(userID)
}

// AcceptTerms records terms acceptance with its timestamp. Idempotent.
func (s *UserService) AcceptTerms(userID int64) error {
	return s.userRepo.AcceptTerms(userID, time.Now())
}
