package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"angoconnect/internal/config"
	"angoconnect/internal/database"
	"angoconnect/internal/middleware"
	"angoconnect/internal/modules/admin"
	"angoconnect/internal/modules/auth"
	"angoconnect/internal/modules/catalog"
	"angoconnect/internal/modules/notification"
	"angoconnect/internal/modules/proposal"
	"angoconnect/internal/modules/request"
	"angoconnect/internal/modules/review"
	"angoconnect/internal/modules/ws"
	jwtsvc "angoconnect/internal/pkg/jwt"
	"angoconnect/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	professionalRepo := repository.NewProfessionalRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := notification.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := ws.NewHub()
	defer hub.Close()

	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(userRepo, j, cfg.RefreshTokenPepper, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	requestService := request.NewService(requestRepo, proposalRepo, notificationService)
	requestHandler := request.NewHandler(requestService)

	proposalService := proposal.NewService(proposalRepo, requestRepo, userRepo, notificationService)
	proposalHandler := proposal.NewHandler(proposalService)

	catalogService := catalog.NewService(professionalRepo, userRepo, reviewRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reviewService := review.NewService(reviewRepo, requestRepo, professionalRepo, notificationService)
	reviewHandler := review.NewHandler(reviewService)

	adminService := admin.NewService(userRepo, professionalRepo, requestRepo, notificationService)
	adminHandler := admin.NewHandler(adminService)

	wsHandler := ws.NewHandler(hub, j, notificationService)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	r.GET("/ws/notifications", wsHandler.HandleNotifications)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			requestHandler.RegisterRoutes(protected)
			proposalHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	log.Printf("listening addr=%s env=%s", cfg.ListenAddr, cfg.AppEnv)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
