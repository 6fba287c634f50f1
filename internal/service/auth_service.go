package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/serenity-ai/serenity-server/config"
	"github.com/serenity-ai/serenity-server/internal/model"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/pkg/jwt"
	"github.com/serenity-ai/serenity-server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidVerifyCode  = errors.New("verification code invalid or expired")
	ErrUserNotFound       = errors.New("user not found")
)

// VerificationSender delivers the signup verification code.
type VerificationSender interface {
	SendVerificationCode(to, code string) error
}

type AuthService struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	subRepo     *repository.SubscriptionRepository
	entitlement *EntitlementService
	emailSvc    VerificationSender
	cfg         *config.Config
}

func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	subRepo *repository.SubscriptionRepository,
	entitlement *EntitlementService,
	emailSvc VerificationSender,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		db:          db,
		userRepo:    userRepo,
		subRepo:     subRepo,
		entitlement: entitlement,
		emailSvc:    emailSvc,
		cfg:         cfg,
	}
}

// Register creates the account and its trial subscription.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	verifyCode, err := generateRandomCode(32)
	if err != nil {
		return nil, err
	}

	passwordStr := string(hashedPassword)
	expiresAt := time.Now().Add(24 * time.Hour)
	language := req.Language
	if language == "" {
		language = "pt"
	}

	user := &model.User{
		Email:                 req.Email,
		PasswordHash:          &passwordStr,
		Name:                  req.Name,
		Language:              language,
		VerificationCode:      &verifyCode,
		VerificationExpiresAt: &expiresAt,
	}
	if s.cfg.Server.Mode == "debug" {
		// dev convenience: skip the email round trip
		user.EmailVerified = true
	}

	// User, trial subscription and verification email commit together: a
	// failed send must not leave behind an account that can never verify.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewUserRepository(tx).Create(user); err != nil {
			return err
		}

		// Every new account starts on a free trial so the companion is
		// unlimited for the first days.
		trialEnd := time.Now().AddDate(0, 0, s.cfg.Limits.TrialDays)
		sub := &model.Subscription{
			UserID:   user.ID,
			Status:   model.SubStatusTrial,
			Plan:     model.PlanFree,
			Provider: "stripe",
			TrialEnd: &trialEnd,
		}
		if err := repository.NewSubscriptionRepository(tx).Create(sub); err != nil {
			return err
		}

		if !user.EmailVerified && s.emailSvc != nil {
			return s.emailSvc.SendVerificationCode(req.Email, verifyCode)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		UserID: user.ID,
	}, nil
}

// Login checks credentials and issues a token.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.EmailVerified && s.cfg.Server.Mode != "debug" {
		return nil, ErrEmailNotVerified
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  s.buildUserInfo(user),
	}, nil
}

// VerifyEmail confirms the signup code and logs the user in.
func (s *AuthService) VerifyEmail(code string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByVerificationCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerifyCode
		}
		return nil, err
	}

	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return nil, ErrInvalidVerifyCode
	}

	user.EmailVerified = true
	user.VerificationCode = nil
	user.VerificationExpiresAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  s.buildUserInfo(user),
	}, nil
}

func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *AuthService) buildUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Language:         user.Language,
		HasAcceptedTerms: user.HasAcceptedTerms,
		EmailVerified:    user.EmailVerified,
		IsPremium:        s.entitlement.IsPremium(user.ID),
		CreatedAt:        user.CreatedAt.Format(time.RFC3339),
	}
}

func generateRandomCode(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
