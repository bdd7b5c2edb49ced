package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"shop-service/controllers"
	"shop-service/database"
	"shop-service/logger"
	"shop-service/repository"
	"shop-service/routes"
	"shop-service/services"
	"shop-service/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("invalid configuration: " + err.Error())
	}

	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync()
	log := logger.Log

	db, err := database.Connect(cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cartStore := database.NewRedisCartStore(redisClient, cfg.CartTTL)

	var images storage.ImageStore
	var localStore *storage.LocalStore
	switch cfg.ImageStorage {
	case "s3":
		images, err = storage.NewS3Store(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal("Failed to initialize S3 image store", zap.Error(err))
		}
	default:
		localStore, err = storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local image store", zap.Error(err))
		}
		images = localStore
	}

	productRepo := repository.NewGormProductRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	ctrl := routes.Controllers{
		Auth:     controllers.NewAuthController(services.NewAuthService(userRepo, cfg.JWTSecret, log)),
		Cart:     controllers.NewCartController(services.NewCartService(cartStore, productRepo, log)),
		Order:    controllers.NewOrderController(services.NewOrderService(orderRepo, cartStore, log)),
		Product:  controllers.NewProductController(services.NewProductService(productRepo, categoryRepo, images, log)),
		Category: controllers.NewCategoryController(services.NewCategoryService(categoryRepo, log)),
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger())

	routes.Register(r, ctrl, []byte(cfg.JWTSecret))
	if localStore != nil {
		r.Static("/storage", localStore.Dir())
	}

	log.Info("Starting shop service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
