package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/serenity-ai/serenity-server/config"
	"github.com/serenity-ai/serenity-server/internal/model"
	"github.com/serenity-ai/serenity-server/internal/repository"
	"github.com/serenity-ai/serenity-server/internal/testutil"
)

func setupAllowance(t *testing.T) (*AllowanceService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	subRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewUserPlanRepository(db)
	usageRepo := repository.NewDailyUsageRepository(db)

	cfg := &config.Config{
		Limits: config.LimitsConfig{
			ChatDailyLimit:    5,
			JournalDailyLimit: 2,
		},
	}

	entitlement := NewEntitlementService(subRepo, planRepo)
	service := NewAllowanceService(usageRepo, entitlement, cfg)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestAllowanceService_FreeChatScenario(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	date := "2026-03-10"

	// calls 1-5 allowed, remaining counts down 4..0
	for i := 1; i <= 5; i++ {
		result, err := service.consumeOn(user.ID, FeatureChat, date)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "call %d should be allowed", i)
		assert.Equal(t, i, result.Used)
		assert.Equal(t, 5, result.Limit)
		assert.Equal(t, 5-i, result.Remaining)
		assert.False(t, result.IsPremium)
	}

	// call 6 denied
	result, err := service.consumeOn(user.ID, FeatureChat, date)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 5, result.Used)
	assert.Equal(t, 0, result.Remaining)
}

func TestAllowanceService_FreeJournalScenario(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	date := "2026-03-10"

	result, err := service.consumeOn(user.ID, FeatureJournal, date)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Remaining)

	result, err = service.consumeOn(user.ID, FeatureJournal, date)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)

	result, err = service.consumeOn(user.ID, FeatureJournal, date)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 2, result.Used)
}

func TestAllowanceService_DenialLeavesCountersUnchanged(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	date := "2026-03-10"
	testutil.TestDailyUsage(t, db, user.ID, date, 0, 2)

	usageRepo := repository.NewDailyUsageRepository(db)

	for i := 0; i < 2; i++ {
		result, err := service.consumeOn(user.ID, FeatureJournal, date)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 2, result.Used)
	}

	usage, err := usageRepo.GetUsage(user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 2, usage.JournalUsed)
	assert.Equal(t, 0, usage.ChatUsed)
}

func TestAllowanceService_IndependentCounters(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	date := "2026-03-10"
	testutil.TestDailyUsage(t, db, user.ID, date, 5, 0)

	// chat exhausted, journal untouched
	result, err := service.consumeOn(user.ID, FeatureChat, date)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = service.consumeOn(user.ID, FeatureJournal, date)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestAllowanceService_PremiumBypassesLedger(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestUserPlan(t, db, user.ID, true, nil)
	date := "2026-03-10"
	testutil.TestDailyUsage(t, db, user.ID, date, 5, 2)

	usageRepo := repository.NewDailyUsageRepository(db)

	for i := 0; i < 3; i++ {
		result, err := service.consumeOn(user.ID, FeatureChat, date)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 0, result.Used)
		assert.Equal(t, -1, result.Limit)
		assert.Equal(t, -1, result.Remaining)
		assert.True(t, result.IsPremium)
	}

	// counters untouched
	usage, err := usageRepo.GetUsage(user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 5, usage.ChatUsed)
	assert.Equal(t, 2, usage.JournalUsed)
}

func TestAllowanceService_PremiumViaSubscription(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID,
		testutil.WithStatus(model.SubStatusPremium),
		testutil.WithPeriodEnd(time.Now().Add(24*time.Hour)),
	)

	result, err := service.consumeOn(user.ID, FeatureChat, "2026-03-10")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, -1, result.Limit)
	assert.True(t, result.IsPremium)
}

func TestAllowanceService_DateRollover(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestDailyUsage(t, db, user.ID, "2026-03-10", 5, 2)

	// a fresh date always starts at zero
	result, err := service.consumeOn(user.ID, FeatureChat, "2026-03-11")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Used)
	assert.Equal(t, 4, result.Remaining)

	usageRepo := repository.NewDailyUsageRepository(db)
	previous, err := usageRepo.GetUsage(user.ID, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 5, previous.ChatUsed)
}

func TestAllowanceService_UnknownFeature(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.consumeOn(user.ID, Feature("video"), "2026-03-10")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestAllowanceService_SnapshotDoesNotCreateRows(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	snap, err := service.snapshotOn(user.ID, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.ChatUsed)
	assert.Equal(t, 0, snap.JournalUsed)
	assert.Equal(t, 5, snap.ChatLimit)
	assert.Equal(t, 2, snap.JournalLimit)
	assert.False(t, snap.IsPremium)

	var count int64
	require.NoError(t, db.Model(&model.DailyUsage{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAllowanceService_SnapshotPremium(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestUserPlan(t, db, user.ID, true, nil)

	snap, err := service.snapshotOn(user.ID, "2026-03-10")
	require.NoError(t, err)
	assert.True(t, snap.IsPremium)
	assert.Equal(t, -1, snap.ChatLimit)
	assert.Equal(t, -1, snap.JournalLimit)
}

func TestAllowanceService_StoreFailureIsSystemError(t *testing.T) {
	service, db, cleanup := setupAllowance(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// a broken ledger denies with a system error, never a limit verdict
	result, err := service.consumeOn(user.ID, FeatureChat, "2026-03-10")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUsageUnavailable)

	snap, err := service.snapshotOn(user.ID, "2026-03-10")
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, ErrUsageUnavailable)
}

func TestTodayCivilDate_SaoPauloClock(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.FixedZone("-03", -3*60*60)
	}

	// bracket the call so a midnight rollover mid-test cannot flake
	before := time.Now().In(loc).Format("2006-01-02")
	got := TodayCivilDate()
	after := time.Now().In(loc).Format("2006-01-02")

	assert.Contains(t, []string{before, after}, got)
}
