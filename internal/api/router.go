package api

import (
	"github.com/gin-gonic/gin"

	"github.com/serenity-ai/serenity-server/config"
	"github.com/serenity-ai/serenity-server/internal/api/handler"
	"github.com/serenity-ai/serenity-server/internal/api/middleware"
)

type Router struct {
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	chatHandler      *handler.ChatHandler
	diaryHandler     *handler.DiaryHandler
	moodHandler      *handler.MoodHandler
	crisisHandler    *handler.CrisisHandler
	allowanceHandler *handler.AllowanceHandler
	billingHandler   *handler.BillingHandler
	cfg              *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	chatHandler *handler.ChatHandler,
	diaryHandler *handler.DiaryHandler,
	moodHandler *handler.MoodHandler,
	crisisHandler *handler.CrisisHandler,
	allowanceHandler *handler.AllowanceHandler,
	billingHandler *handler.BillingHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      authHandler,
		userHandler:      userHandler,
		chatHandler:      chatHandler,
		diaryHandler:     diaryHandler,
		moodHandler:      moodHandler,
		crisisHandler:    crisisHandler,
		allowanceHandler: allowanceHandler,
		billingHandler:   billingHandler,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/verify-email", r.authHandler.VerifyEmail)
		}

		// Stripe calls this directly, signature header is the auth
		api.POST("/billing/webhook", r.billingHandler.Webhook)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/accept-terms", r.userHandler.AcceptTerms)
				user.GET("/allowance", r.allowanceHandler.GetAllowance)
			}

			chat := authenticated.Group("/chat")
			{
				chat.POST("/messages", r.chatHandler.SendMessage)
				chat.DELETE("/history", r.chatHandler.ClearHistory)
			}

			diary := authenticated.Group("/diary")
			{
				diary.POST("/entries", r.diaryHandler.CreateEntry)
				diary.GET("/entries", r.diaryHandler.ListEntries)
			}

			moods := authenticated.Group("/moods")
			{
				moods.POST("", r.moodHandler.Create)
				moods.GET("", r.moodHandler.List)
			}

			crisis := authenticated.Group("/crisis")
			{
				crisis.POST("/sessions", r.crisisHandler.CreateSession)
				crisis.GET("/sessions", r.crisisHandler.ListSessions)
			}

			billing := authenticated.Group("/billing")
			{
				billing.POST("/checkout", r.billingHandler.CreateCheckout)
				billing.POST("/portal", r.billingHandler.CreatePortal)
			}
		}
	}

	return engine
}
