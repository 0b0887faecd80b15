package api

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orders-backend/internal/app/config"
	"orders-backend/internal/app/handler"
	"orders-backend/internal/app/middleware"
	redisclient "orders-backend/internal/app/redis"
	"orders-backend/internal/app/repository"
	"orders-backend/internal/app/sheets"
	"orders-backend/internal/app/storage"
	"orders-backend/internal/pkg"
)

func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	store, err := sheets.NewExcelStore(cfg.DataDir)
	if err != nil {
		logrus.Fatalf("ошибка инициализации хранилища: %v", err)
	}
	repo := repository.New(store, cfg.MasterSheetID)

	// Redis-кэш пользователей, без него каждый запрос сканирует мастер-книгу
	var redisClient *redisclient.Client
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = redisclient.New(ctx, cfg.Redis, cfg.UserCacheTTL)
		cancel()
		if err != nil {
			logrus.Warnf("Redis недоступен, кэш пользователей отключён: %v", err)
			redisClient = nil
		}
	}

	// MinIO хранит архивные копии выгрузок
	var minioClient *storage.MinIOClient
	if cfg.Minio.Enabled {
		minioClient, err = storage.NewMinIOClient(
			cfg.Minio.Endpoint,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.Bucket,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logrus.Warnf("MinIO недоступен, архив выгрузок отключён: %v", err)
			minioClient = nil
		}
	}

	identity := middleware.NewIdentity(repo, redisClient)
	h := handler.NewHandler(repo, redisClient, minioClient, cfg)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	app := pkg.NewApp(cfg, router, h, identity)
	app.RunApp()

	logrus.Info("Server down")
}
