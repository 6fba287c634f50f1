package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/serenity-ai/serenity-server/internal/model"
)

// TestUser creates a verified user with default settings.
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Email:         fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		PasswordHash:  &passwordHash,
		Name:          "Test User",
		Language:      "pt",
		EmailVerified: true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail sets the email.
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithName sets the display name.
func WithName(name string) func(*model.User) {
	return func(u *model.User) {
		u.Name = name
	}
}

// TestSubscription creates a subscription for the user.
func TestSubscription(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	sub := &model.Subscription{
		UserID:   userID,
		Status:   model.SubStatusTrial,
		Plan:     model.PlanFree,
		Provider: "stripe",
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithStatus sets the subscription status.
func WithStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

// WithPlan sets the subscription plan.
func WithPlan(plan string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Plan = plan
	}
}

// WithTrialEnd sets the trial deadline.
func WithTrialEnd(at time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.TrialEnd = &at
	}
}

// WithPeriodEnd sets the paid-period deadline.
func WithPeriodEnd(at time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.CurrentPeriodEnd = &at
	}
}

// TestUserPlan creates a plan override for the user.
func TestUserPlan(t *testing.T, db *gorm.DB, userID int64, isPremium bool, premiumUntil *time.Time) *model.UserPlan {
	t.Helper()

	plan := &model.UserPlan{
		UserID:       userID,
		IsPremium:    isPremium,
		PremiumUntil: premiumUntil,
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test user plan: %v", err)
	}

	return plan
}

// TestDailyUsage creates a usage row with the given counters.
func TestDailyUsage(t *testing.T, db *gorm.DB, userID int64, date string, chatUsed, journalUsed int) *model.DailyUsage {
	t.Helper()

	usage := &model.DailyUsage{
		UserID:      userID,
		Date:        date,
		ChatUsed:    chatUsed,
		JournalUsed: journalUsed,
	}

	if err := db.Create(usage).Error; err != nil {
		t.Fatalf("Failed to create test daily usage: %v", err)
	}

	return usage
}

// TestDiaryEntry creates a diary entry.
func TestDiaryEntry(t *testing.T, db *gorm.DB, userID int64, content string) *model.DiaryEntry {
	t.Helper()

	entry := &model.DiaryEntry{
		UserID:  userID,
		Content: content,
	}

	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("Failed to create test diary entry: %v", err)
	}

	return entry
}
