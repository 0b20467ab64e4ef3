package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/infra/setup"
)

// Config 结构体用于存储从环境变量或 .env 文件加载的配置
type Config struct {
	AppEnv     string // development/production
	ServerPort string
	LogLevel   string

	DB setup.DBOptions

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string // Redis Key 前缀

	JWTSecret      string
	JWTExpiryHours int

	RateLimitMax    int
	RateLimitWindow time.Duration
	CORSOrigin      string

	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
	PresignTTL      time.Duration

	WorkerConcurrency int
}

// LoadConfig 从环境变量加载配置
func LoadConfig() (*Config, error) {
	// 优先加载 .env 文件 (如果存在)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     envOr("APP_ENV", "development"),
		ServerPort: envOr("SERVER_PORT", "8080"),
		LogLevel:   envOr("LOG_LEVEL", "info"),
		DB: setup.DBOptions{
			Driver:   envOr("DB_DRIVER", setup.DriverMySQL),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			Name:     os.Getenv("DB_NAME"),
		},
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:       envOr("REDIS_KEY_PREFIX", "cl:"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigin:      envOr("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        envOr("S3_REGION", "us-east-1"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.JWTExpiryHours, err = envInt("JWT_EXPIRY_HOURS", 24); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = envInt("RATE_LIMIT_MAX", 100); err != nil {
		return nil, err
	}
	windowSeconds, err := envInt("RATE_LIMIT_WINDOW_SECONDS", 1)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow = time.Duration(windowSeconds) * time.Second
	presignMinutes, err := envInt("MEDIA_PRESIGN_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	cfg.PresignTTL = time.Duration(presignMinutes) * time.Minute
	if cfg.WorkerConcurrency, err = envInt("WORKER_CONCURRENCY", 5); err != nil {
		return nil, err
	}

	if cfg.DB.Driver != setup.DriverMySQL && cfg.DB.Driver != setup.DriverPostgres {
		return nil, fmt.Errorf("environment variable DB_DRIVER must be %q or %q", setup.DriverMySQL, setup.DriverPostgres)
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}
	if cfg.JWTExpiryHours <= 0 || cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 || cfg.PresignTTL <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRY_HOURS, RATE_LIMIT_MAX, RATE_LIMIT_WINDOW_SECONDS and MEDIA_PRESIGN_MINUTES must be positive")
	}
	cfg.DB.Debug = cfg.AppEnv != "production" && cfg.LogLevel == "debug"

	// 验证日志级别
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return n, nil
}
