package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serenity-ai/serenity-server/internal/model"
)

// DailyUsageRepository owns the per-(user, civil date) counter rows. Rows
// are created lazily and never deleted. Increments go through a single
// UPDATE ... SET x = x + 1 so concurrent requests for the same user cannot
// under-count.
type DailyUsageRepository struct {
	db *gorm.DB
}

func NewDailyUsageRepository(db *gorm.DB) *DailyUsageRepository {
	return &DailyUsageRepository{db: db}
}

// GetUsage returns the counters for the given day, zeros when no row
// exists yet. It never creates a row.
func (r *DailyUsageRepository) GetUsage(userID int64, date string) (*model.DailyUsage, error) {
	var usage model.DailyUsage
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&usage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.DailyUsage{UserID: userID, Date: date}, nil
		}
		return nil, err
	}
	return &usage, nil
}

// EnsureRecord creates the row with both counters at zero if it does not
// exist. Existing rows are left untouched.
func (r *DailyUsageRepository) EnsureRecord(userID int64, date string) error {
	usage := &model.DailyUsage{
		UserID:    userID,
		Date:      date,
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(usage).Error
}

// IncrementChatUsed atomically bumps chat_used and returns the counter
// before and after the bump.
func (r *DailyUsageRepository) IncrementChatUsed(userID int64, date string) (before, after int, err error) {
	return r.increment(userID, date, "chat_used")
}

// IncrementJournalUsed atomically bumps journal_used and returns the
// counter before and after the bump.
func (r *DailyUsageRepository) IncrementJournalUsed(userID int64, date string) (before, after int, err error) {
	return r.increment(userID, date, "journal_used")
}

func (r *DailyUsageRepository) increment(userID int64, date, column string) (int, int, error) {
	if err := r.EnsureRecord(userID, date); err != nil {
		return 0, 0, err
	}

	err := r.db.Model(&model.DailyUsage{}).
		Where("user_id = ? AND date = ?", userID, date).
		Updates(map[string]interface{}{
			column:       gorm.Expr(column + " + 1"),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return 0, 0, err
	}

	usage, err := r.GetUsage(userID, date)
	if err != nil {
		return 0, 0, err
	}

	after := usage.ChatUsed
	if column == "journal_used" {
		after = usage.JournalUsed
	}
	return after - 1, after, nil
}
