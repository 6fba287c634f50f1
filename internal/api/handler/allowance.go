package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/serenity-ai/serenity-server/internal/api/middleware"
	"github.com/serenity-ai/serenity-server/internal/pkg/response"
	"github.com/serenity-ai/serenity-server/internal/service"
)

type AllowanceHandler struct {
	allowanceService *service.AllowanceService
}

func NewAllowanceHandler(allowanceService *service.AllowanceService) *AllowanceHandler {
	return &AllowanceHandler{allowanceService: allowanceService}
}

// GetAllowance GET /api/v1/user/allowance
//
// Read-only: reports today's usage without consuming or creating a row.
func (h *AllowanceHandler) GetAllowance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	snap, err := h.allowanceService.Snapshot(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, snap)
}
