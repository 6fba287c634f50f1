package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/serenity-ai/serenity-server/config"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/repository"
)

// Feature is a meterable app feature.
type Feature string

const (
	FeatureChat    Feature = "chat"
	FeatureJournal Feature = "journal"
)

var (
	// ErrUsageUnavailable means the usage store could not answer. Callers
	// must deny consumption and tell the client to retry, never conflate
	// this with the limit being reached.
	ErrUsageUnavailable = errors.New("usage store unavailable")
	ErrUnknownFeature   = errors.New("unknown feature")
)

// Daily caps reset at midnight São Paulo time for the target user
// population, not at UTC or server-local midnight.
var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}()

// TodayCivilDate returns the current calendar date (YYYY-MM-DD) in the
// allowance reset timezone.
func TodayCivilDate() string {
	return time.Now().In(saoPaulo).Format("2006-01-02")
}

// AllowanceService is the single gate feature code goes through before
// doing metered work. It resolves entitlement, reads the day's counters
// and, on the accepting path only, records the consumption.
type AllowanceService struct {
	usageRepo   *repository.DailyUsageRepository
	entitlement *EntitlementService
	cfg         *config.Config
}

func NewAllowanceService(
	usageRepo *repository.DailyUsageRepository,
	entitlement *EntitlementService,
	cfg *config.Config,
) *AllowanceService {
	return &AllowanceService{
		usageRepo:   usageRepo,
		entitlement: entitlement,
		cfg:         cfg,
	}
}

func (s *AllowanceService) featureLimit(feature Feature) (int, error) {
	switch feature {
	case FeatureChat:
		return s.cfg.Limits.ChatDailyLimit, nil
	case FeatureJournal:
		return s.cfg.Limits.JournalDailyLimit, nil
	default:
		return 0, ErrUnknownFeature
	}
}

// Consume decides allow/deny for one unit of the feature today and, when
// allowed, records it. Premium users skip the ledger entirely. A denied
// request leaves the counters untouched, so retrying a denial never burns
// allowance.
func (s *AllowanceService) Consume(userID int64, feature Feature) (*dto.AllowanceResult, error) {
	return s.consumeOn(userID, feature, TodayCivilDate())
}

func (s *AllowanceService) consumeOn(userID int64, feature Feature, date string) (*dto.AllowanceResult, error) {
	if s.entitlement.IsPremium(userID) {
		return &dto.AllowanceResult{
			Allowed:   true,
			Used:      0,
			Limit:     -1,
			Remaining: -1,
			IsPremium: true,
		}, nil
	}

	limit, err := s.featureLimit(feature)
	if err != nil {
		return nil, err
	}

	usage, err := s.usageRepo.GetUsage(userID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsageUnavailable, err)
	}

	used := usage.ChatUsed
	if feature == FeatureJournal {
		used = usage.JournalUsed
	}

	if used >= limit {
		return &dto.AllowanceResult{
			Allowed:   false,
			Used:      used,
			Limit:     limit,
			Remaining: 0,
			IsPremium: false,
		}, nil
	}

	var after int
	switch feature {
	case FeatureChat:
		_, after, err = s.usageRepo.IncrementChatUsed(userID, date)
	case FeatureJournal:
		_, after, err = s.usageRepo.IncrementJournalUsed(userID, date)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsageUnavailable, err)
	}

	remaining := limit - after
	if remaining < 0 {
		remaining = 0
	}

	return &dto.AllowanceResult{
		Allowed:   true,
		Used:      after,
		Limit:     limit,
		Remaining: remaining,
		IsPremium: false,
	}, nil
}

// Snapshot is the read-only allowance overview. It never creates a usage
// row and never consumes.
func (s *AllowanceService) Snapshot(userID int64) (*dto.AllowanceSnapshot, error) {
	return s.snapshotOn(userID, TodayCivilDate())
}

func (s *AllowanceService) snapshotOn(userID int64, date string) (*dto.AllowanceSnapshot, error) {
	premium := s.entitlement.IsPremium(userID)

	snap := &dto.AllowanceSnapshot{
		Date:         date,
		ChatLimit:    s.cfg.Limits.ChatDailyLimit,
		JournalLimit: s.cfg.Limits.JournalDailyLimit,
		IsPremium:    premium,
	}
	if premium {
		snap.ChatLimit = -1
		snap.JournalLimit = -1
		return snap, nil
	}

	usage, err := s.usageRepo.GetUsage(userID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsageUnavailable, err)
	}
	snap.ChatUsed = usage.ChatUsed
	snap.JournalUsed = usage.JournalUsed
	return snap, nil
}
