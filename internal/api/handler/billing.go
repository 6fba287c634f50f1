package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-ai/serenity-server/internal/api/middleware"
	"github.com/serenity-ai/serenity-server/internal/model/dto"
	"github.com/serenity-ai/serenity-server/internal/pkg/response"
	"github.com/serenity-ai/serenity-server/internal/service"
)

type BillingHandler struct {
	billingService *service.BillingService
	userService    *service.UserService
}

func NewBillingHandler(billingService *service.BillingService, userService *service.UserService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		userService:    userService,
	}
}

// CreateCheckout POST /api/v1/billing/checkout
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	url, err := h.billingService.CreateCheckoutSession(userID, profile.Email, req.Plan)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlan) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.CheckoutResponse{URL: url})
}

// CreatePortal POST /api/v1/billing/portal
func (h *BillingHandler) CreatePortal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	url, err := h.billingService.CreatePortalSession(userID)
	if err != nil {
		if errors.Is(err, service.ErrNoBillingAccount) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.PortalResponse{URL: url})
}

// Webhook POST /api/v1/billing/webhook
//
// Stripe talks raw HTTP here: plain status codes, no response envelope, no
// auth middleware. The signature header is the authentication.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if err := h.billingService.HandleWebhook(payload, sig); err != nil {
		if errors.Is(err, service.ErrBadWebhook) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "webhook error"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
