package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/serenity-ai/serenity-server/internal/model"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/pkg/response"
	"github.com/serenity-ai/serenity-server/internal/repository"
	"github.com/serenity-ai/serenity-server/internal/service"
	"github.com/serenity-ai/serenity-server/internal/testutil"
)

func setupDiaryHandler(t *testing.T) (*DiaryHandler, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	subRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewUserPlanRepository(db)
	usageRepo := repository.NewDailyUsageRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)

	entitlement := service.NewEntitlementService(subRepo, planRepo)
	allowanceService := service.NewAllowanceService(usageRepo, entitlement, testLimitsConfig())
	diaryService := service.NewDiaryService(diaryRepo)

	handler := NewDiaryHandler(diaryService, allowanceService)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, db, cleanup
}

func TestDiaryHandler_CreateEntry_Success(t *testing.T) {
	handler, db, cleanup := setupDiaryHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	router := gin.New()
	router.POST("/diary/entries", asUser(user.ID), handler.CreateEntry)

	w := performRequest(router, "POST", "/diary/entries", dto.CreateDiaryEntryRequest{
		Content: "hoje foi um dia difícil, mas consegui respirar fundo",
		Emotion: "ansioso",
	})
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := resp.Data.(map[string]interface{})
	assert.NotZero(t, data["entry_id"])
	assert.Equal(t, float64(1), data["used"])
	assert.Equal(t, float64(2), data["limit"])
	assert.Equal(t, float64(1), data["remaining"])

	var count int64
	require.NoError(t, db.Model(&model.DiaryEntry{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDiaryHandler_CreateEntry_LimitReached(t *testing.T) {
	handler, db, cleanup := setupDiaryHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestDailyUsage(t, db, user.ID, service.TodayCivilDate(), 0, 2)

	router := gin.New()
	router.POST("/diary/entries", asUser(user.ID), handler.CreateEntry)

	w := performRequest(router, "POST", "/diary/entries", dto.CreateDiaryEntryRequest{
		Content: "terceira entrada do dia",
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeLimitReached, resp.Code)

	// no entry saved on denial
	var count int64
	require.NoError(t, db.Model(&model.DiaryEntry{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDiaryHandler_CreateEntry_MissingContent(t *testing.T) {
	handler, db, cleanup := setupDiaryHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	router := gin.New()
	router.POST("/diary/entries", asUser(user.ID), handler.CreateEntry)

	w := performRequest(router, "POST", "/diary/entries", map[string]string{"emotion": "calmo"})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestDiaryHandler_ListEntries(t *testing.T) {
	handler, db, cleanup := setupDiaryHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	for i := 0; i < 3; i++ {
		testutil.TestDiaryEntry(t, db, user.ID, fmt.Sprintf("entrada %d", i))
	}

	// another user's entries must not leak in
	other := testutil.TestUser(t, db)
	testutil.TestDiaryEntry(t, db, other.ID, "de outra pessoa")

	router := gin.New()
	router.GET("/diary/entries", asUser(user.ID), handler.ListEntries)

	w := performRequest(router, "GET", "/diary/entries", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])
	items := data["items"].([]interface{})
	assert.Len(t, items, 3)
}

func TestDiaryHandler_ListEntries_Paginated(t *testing.T) {
	handler, db, cleanup := setupDiaryHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	for i := 0; i < 5; i++ {
		testutil.TestDiaryEntry(t, db, user.ID, fmt.Sprintf("entrada %d", i))
	}

	router := gin.New()
	router.GET("/diary/entries", asUser(user.ID), handler.ListEntries)

	w := performRequest(router, "GET", "/diary/entries?page=2&page_size=2", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(5), data["total"])
	assert.Equal(t, float64(2), data["page"])
	items := data["items"].([]interface{})
	assert.Len(t, items, 2)
}
