package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vfxworks_backend/database"
	"vfxworks_backend/internal/auth"
	"vfxworks_backend/internal/config"
	"vfxworks_backend/internal/handlers"
	"vfxworks_backend/internal/logger"
	"vfxworks_backend/internal/media"
	"vfxworks_backend/internal/middleware"
	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/repositories"
	"vfxworks_backend/internal/routes"
	"vfxworks_backend/internal/services"
	"vfxworks_backend/internal/storage"
	"vfxworks_backend/internal/validator"
	"vfxworks_backend/internal/workers"
)

// Run wires the whole application together and blocks serving HTTP.
func Run() {
	cfg := config.GetConfig()

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewJobWorker(gormDB).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter builds the fully wired gin engine. Tests call it directly with
// their own database handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	logger.Info("storage initialized", "type", cfg.Storage.Type)

	resolver, err := media.NewResolver(storageInstance, cfg.Upload.MaxSize)
	if err != nil {
		logger.Fatal("failed to initialize media resolver", "error", err)
	}

	serviceContainer := initializeServices(resolver)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	if cfg.Storage.Type == "local" && cfg.Storage.BaseURL != "" && strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		ginRouter.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	return ginRouter
}

func initializeServices(resolver *media.Resolver) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	bidRepo := repositories.NewBidRepository()
	contractRepo := repositories.NewContractRepository()
	deliverableRepo := repositories.NewDeliverableRepository()
	reviewRepo := repositories.NewReviewRepository()
	notificationRepo := repositories.NewNotificationRepository()

	return &services.ServiceContainer{
		JobService:          services.NewJobService(jobRepo, userRepo, notificationRepo, resolver),
		BidService:          services.NewBidService(bidRepo, jobRepo, contractRepo, notificationRepo),
		ContractService:     services.NewContractService(contractRepo, jobRepo, notificationRepo),
		DeliverableService:  services.NewDeliverableService(deliverableRepo, contractRepo, notificationRepo, resolver),
		ReviewService:       services.NewReviewService(reviewRepo, contractRepo, userRepo),
		NotificationService: services.NewNotificationService(notificationRepo),
	}
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		JobHandler:          handlers.NewJobHandler(base, sc.JobService),
		BidHandler:          handlers.NewBidHandler(base, sc.BidService),
		ContractHandler:     handlers.NewContractHandler(base, sc.ContractService),
		DeliverableHandler:  handlers.NewDeliverableHandler(base, sc.DeliverableService),
		ReviewHandler:       handlers.NewReviewHandler(base, sc.ReviewService),
		NotificationHandler: handlers.NewNotificationHandler(base, sc.NotificationService),
	}
}

func initializeGinRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())
	ginRouter.Use(middleware.RateLimitMiddleware(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.PeriodS)*time.Second,
	))
	ginRouter.Use(middleware.DBMiddleware(gormDB))

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return ginRouter
}

// seedFirstAdmin creates the bootstrap admin account when the users table has
// no admin yet. Without one, nobody could moderate jobs or settle disputes.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("first admin credentials not configured, skipping admin seed")
		return nil
	}

	userRepo := repositories.NewUserRepository()
	count, err := userRepo.CountAdmins(db)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	// A non-admin account may already hold the configured address; creating
	// the admin over it would trip the unique email constraint.
	if _, err := userRepo.FindUserByEmail(db, cfg.FirstAdminEmail); err == nil {
		logger.Warn("first admin email already taken by an existing user, skipping admin seed",
			"email", cfg.FirstAdminEmail)
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to look up first admin email: %w", err)
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		admin := &models.User{
			Email:        cfg.FirstAdminEmail,
			PasswordHash: hash,
			Role:         models.UserRoleAdmin,
			Name:         "Administrator",
		}
		if err := userRepo.CreateUser(tx, admin); err != nil {
			return err
		}
		return userRepo.CreateProfile(tx, &models.Profile{
			UserID:      admin.ID,
			DisplayName: "Administrator",
		})
	})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("first admin user seeded", "email", cfg.FirstAdminEmail)
	return nil
}
