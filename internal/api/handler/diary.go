package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/serenity-ai/serenity-server/internal/api/middleware"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/pkg/response"
	"github.com/serenity-ai/serenity-server/internal/service"
)

type DiaryHandler struct {
	diaryService     *service.DiaryService
	allowanceService *service.AllowanceService
}

func NewDiaryHandler(diaryService *service.DiaryService, allowanceService *service.AllowanceService) *DiaryHandler {
	return &DiaryHandler{
		diaryService:     diaryService,
		allowanceService: allowanceService,
	}
}

// CreateEntry POST /api/v1/diary/entries
func (h *DiaryHandler) CreateEntry(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateDiaryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	allowance, err := h.allowanceService.Consume(userID, service.FeatureJournal)
	if err != nil {
		response.ServerError(c, "could not check your daily allowance, please try again")
		return
	}
	if !allowance.Allowed {
		response.LimitError(c, "daily diary limit reached", allowance)
		return
	}

	entry, err := h.diaryService.CreateEntry(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.CreateDiaryEntryResponse{
		EntryID:   entry.ID,
		Used:      allowance.Used,
		Limit:     allowance.Limit,
		Remaining: allowance.Remaining,
		IsPremium: allowance.IsPremium,
	})
}

// ListEntries GET /api/v1/diary/entries
func (h *DiaryHandler) ListEntries(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	entries, total, err := h.diaryService.ListEntries(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, entries)
}
