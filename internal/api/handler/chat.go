package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/serenity-ai/serenity-server/internal/api/middleware"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/pkg/response"
	"github.com/serenity-ai/serenity-server/internal/service"
)

type ChatHandler struct {
	chatService      *service.ChatService
	allowanceService *service.AllowanceService
}

func NewChatHandler(chatService *service.ChatService, allowanceService *service.AllowanceService) *ChatHandler {
	return &ChatHandler{
		chatService:      chatService,
		allowanceService: allowanceService,
	}
}

// SendMessage POST /api/v1/chat/messages
//
// The allowance check runs before anything reaches the model: a denied
// request never consumes and never leaves the building. Usage-store
// failures deny with a server error so the client offers a retry, not an
// upsell.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	allowance, err := h.allowanceService.Consume(userID, service.FeatureChat)
	if err != nil {
		response.ServerError(c, "could not check your daily allowance, please try again")
		return
	}
	if !allowance.Allowed {
		response.LimitError(c, "daily chat limit reached", allowance)
		return
	}

	reply, err := h.chatService.Reply(c.Request.Context(), userID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrModelUnavailable) || errors.Is(err, service.ErrEmptyReply) {
			response.ServerError(c, "the companion is unavailable right now, please try again")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.SendMessageResponse{
		Reply:     reply,
		Used:      allowance.Used,
		Limit:     allowance.Limit,
		Remaining: allowance.Remaining,
		IsPremium: allowance.IsPremium,
	})
}

// ClearHistory DELETE /api/v1/chat/history
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.chatService.ClearHistory(c.Request.Context(), userID); err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, nil)
}
