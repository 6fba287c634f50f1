package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/serenity-ai/serenity-server/internal/api/middleware"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/pkg/response"
	"github.com/serenity-ai/serenity-server/internal/service"
)

type CrisisHandler struct {
	crisisService *service.CrisisService
}

func NewCrisisHandler(crisisService *service.CrisisService) *CrisisHandler {
	return &CrisisHandler{crisisService: crisisService}
}

// CreateSession POST /api/v1/crisis/sessions
func (h *CrisisHandler) CreateSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateCrisisSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	session, err := h.crisisService.RecordSession(userID, req.Tool)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.CreateCrisisSessionResponse{SessionID: session.ID})
}

// ListSessions GET /api/v1/crisis/sessions
func (h *CrisisHandler) ListSessions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	sessions, err := h.crisisService.RecentSessions(userID, 20)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, sessions)
}
