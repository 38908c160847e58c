package router

import (
	"log"
	"time"

	"fixly/config"
	"fixly/internal/domain"
	"fixly/internal/handler"
	"fixly/internal/middleware"
	"fixly/internal/repository"
	"fixly/internal/service"
	"fixly/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(rdb, cfg.Tracking.CurrentLocationTTL)
	historyRepo := repository.NewHistoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	locationHub := ws.NewLocationHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	var pusher service.Pusher
	if fcmSvc != nil {
		pusher = fcmSvc
	}
	notifSvc := service.NewNotificationService(deviceRepo, notificationRepo, pusher)
	locationSvc := service.NewLocationService(userRepo, locationRepo, historyRepo, settingsRepo)
	proximitySvc := service.NewProximityService(userRepo, locationRepo, cfg.Tracking.NearbyConcurrency, cfg.Tracking.NearbyStrictFetch)
	subSvc := service.NewSubscriptionService(subscriptionRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	locationHandler := handler.NewLocationHandler(locationSvc, subSvc, notifSvc, userRepo, locationHub)
	nearbyHandler := handler.NewNearbyHandler(proximitySvc)
	subscriptionHandler := handler.NewSubscriptionHandler(subSvc)
	notificationHandler := handler.NewNotificationHandler(notifSvc, notificationRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	professionalMw := middleware.RequireRole(domain.RoleProfessional)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		location := api.Group("/location")
		location.Use(authMw)
		{
			location.POST("/update", professionalMw, locationHandler.Update)
			location.POST("/status", professionalMw, locationHandler.SetStatus)
			location.POST("/tracking", professionalMw, locationHandler.SetTracking)
			location.PATCH("/settings", professionalMw, locationHandler.PatchSettings)
			location.GET("/settings", professionalMw, locationHandler.GetSettings)
			location.GET("/professional/:id", locationHandler.GetCurrent)
			location.GET("/professional/:id/history", locationHandler.GetHistory)
			location.GET("/nearby", nearbyHandler.Find)
			location.POST("/subscribe/:professionalId", subscriptionHandler.Subscribe)
			location.POST("/unsubscribe/:professionalId", subscriptionHandler.Unsubscribe)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.POST("/register-device", notificationHandler.RegisterDevice)
			notifications.POST("/deregister-device", notificationHandler.DeregisterDevice)
			notifications.POST("/send", middleware.RequireRole(domain.RoleAdmin), notificationHandler.Send)
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}
	}

	r.GET("/ws/locations", ws.UpgradeLocationWS(&cfg.JWT, locationHub, subscriptionRepo))

	return r
}
