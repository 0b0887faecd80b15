package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	// Идентификатор мастер-книги с учётными данными клиентов
	MasterSheetID string
	// Каталог с xlsx-книгами хранилища
	DataDir string

	// TTL кэша разрешённых пользователей; 0 отключает кэш
	UserCacheTTL time.Duration

	Redis RedisConfig
	Minio MinioConfig
}

type RedisConfig struct {
	Enabled     bool
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinioConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const (
	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinioEndpoint  = "MINIO_ENDPOINT"
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
	envMinioBucket    = "MINIO_BUCKET"

	envMasterSheetID = "MASTER_SHEET_ID"
	envDataDir       = "DATA_DIR"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.UserCacheTTL == 0 {
		cfg.UserCacheTTL = 5 * time.Minute
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	// переопределения из env
	if v := os.Getenv(envMasterSheetID); v != "" {
		cfg.MasterSheetID = v
	}
	if v := os.Getenv(envDataDir); v != "" {
		cfg.DataDir = v
	}
	if cfg.MasterSheetID == "" {
		return nil, fmt.Errorf("master sheet id is not configured")
	}

	// инициализация Redis конфигурации из env
	if os.Getenv(envRedisHost) != "" {
		cfg.Redis.Enabled = true
		cfg.Redis.Host = os.Getenv(envRedisHost)
		cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
		if err != nil {
			return nil, fmt.Errorf("redis port must be int value: %w", err)
		}
		cfg.Redis.Password = os.Getenv(envRedisPass)
		cfg.Redis.User = os.Getenv(envRedisUser)
		cfg.Redis.DialTimeout = 10 * time.Second
		cfg.Redis.ReadTimeout = 10 * time.Second
	}

	// инициализация MinIO конфигурации из env
	if os.Getenv(envMinioEndpoint) != "" {
		cfg.Minio.Enabled = true
		cfg.Minio.Endpoint = os.Getenv(envMinioEndpoint)
		cfg.Minio.AccessKey = os.Getenv(envMinioAccessKey)
		cfg.Minio.SecretKey = os.Getenv(envMinioSecretKey)
		cfg.Minio.Bucket = os.Getenv(envMinioBucket)
		if cfg.Minio.Bucket == "" {
			cfg.Minio.Bucket = "order-exports"
		}
	}

	log.Info("config parsed")

	return cfg, nil
}
