package main

import (
	"fmt"
	"log"

	"github.com/serenity-ai/serenity-server/config"
	"github.com/serenity-ai/serenity-server/internal/api"
	"github.com/serenity-ai/serenity-server/internal/api/handler"
	"github.com/serenity-ai/serenity-server/internal/database"
	"github.com/serenity-ai/serenity-server/internal/pkg/email"
	"github.com/serenity-ai/serenity-server/internal/pkg/history"
	"github.com/serenity-ai/serenity-server/internal/repository"
	"github.com/serenity-ai/serenity-server/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewUserPlanRepository(db)
	usageRepo := repository.NewDailyUsageRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	crisisRepo := repository.NewCrisisRepository(db)

	emailSvc := email.NewService(&cfg.Email)
	historyStore := history.NewStore(rdb, cfg.Limits.HistoryWindow)

	entitlementService := service.NewEntitlementService(subRepo, planRepo)
	authService := service.NewAuthService(db, userRepo, subRepo, entitlementService, emailSvc, cfg)
	userService := service.NewUserService(userRepo, entitlementService, cfg)
	allowanceService := service.NewAllowanceService(usageRepo, entitlementService, cfg)
	chatService := service.NewChatService(service.NewOpenAIClient(cfg.OpenAI.APIKey), historyStore, &cfg.OpenAI)
	diaryService := service.NewDiaryService(diaryRepo)
	moodService := service.NewMoodService(moodRepo)
	crisisService := service.NewCrisisService(crisisRepo)
	billingService := service.NewBillingService(subRepo, &cfg.Stripe)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(chatService, allowanceService)
	diaryHandler := handler.NewDiaryHandler(diaryService, allowanceService)
	moodHandler := handler.NewMoodHandler(moodService)
	crisisHandler := handler.NewCrisisHandler(crisisService)
	allowanceHandler := handler.NewAllowanceHandler(allowanceService)
	billingHandler := handler.NewBillingHandler(billingService, userService)

	router := api.NewRouter(
		authHandler,
		userHandler,
		chatHandler,
		diaryHandler,
		moodHandler,
		crisisHandler,
		allowanceHandler,
		billingHandler,
		cfg,
	)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
