package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/serenity-ai/serenity-server/internal/api/middleware"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/pkg/response"
	"github.com/serenity-ai/serenity-server/internal/service"
)

type MoodHandler struct {
	moodService *service.MoodService
}

func NewMoodHandler(moodService *service.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

// Create POST /api/v1/moods
func (h *MoodHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	entry, err := h.moodService.Record(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, entry)
}

// List GET /api/v1/moods
func (h *MoodHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	entries, err := h.moodService.History(userID, days)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, entries)
}
