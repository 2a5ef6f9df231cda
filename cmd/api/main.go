package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"servistakip/internal/config"
	"servistakip/internal/database"
	"servistakip/internal/middleware"
	"servistakip/internal/modules/admin"
	"servistakip/internal/modules/auth"
	"servistakip/internal/modules/chat"
	"servistakip/internal/modules/customer"
	"servistakip/internal/modules/device"
	"servistakip/internal/modules/service"
	jwtsvc "servistakip/internal/pkg/jwt"
	"servistakip/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	devicePartRepo := repository.NewDevicePartRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	servicePartRepo := repository.NewServicePartRepository(db)
	messageRepo := repository.NewServiceMessageRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := chat.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	customerService := customer.NewService(customerRepo, serviceRepo)
	customerHandler := customer.NewHandler(customerService)

	deviceService := device.NewService(deviceRepo, devicePartRepo, serviceRepo)
	deviceHandler := device.NewHandler(deviceService)

	serviceService := service.NewService(
		serviceRepo,
		servicePartRepo,
		customerRepo,
		deviceRepo,
		devicePartRepo,
		userRepo,
	)
	serviceHandler := service.NewHandler(serviceService)

	chatService := chat.NewService(messageRepo, serviceRepo, userRepo, hub)
	chatHandler := chat.NewHandler(chatService, hub)

	adminService := admin.NewService(userRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public: login, register, status lookup, customer chat
		authHandler.RegisterRoutes(v1)

		public := v1.Group("/public")
		{
			serviceHandler.RegisterPublicRoutes(public)
			chatHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			customerHandler.RegisterRoutes(protected)
			deviceHandler.RegisterRoutes(protected)
			serviceHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
