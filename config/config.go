package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort   int
	DataDir      string
	SessionFile  string
	AuthUsername string
	AuthPassword string
	JWTSecretKey string

	// Необязательный бэкап таблиц в Cloudflare R2.
	BackupInterval    time.Duration
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	username := os.Getenv("AUTH_USERNAME")
	if username == "" {
		return nil, fmt.Errorf("AUTH_USERNAME environment variable is not set")
	}
	password := os.Getenv("AUTH_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("AUTH_PASSWORD environment variable is not set")
	}
	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	sessionFile := os.Getenv("SESSION_FILE")
	if sessionFile == "" {
		sessionFile = "session.json"
	}

	backupInterval := time.Duration(0)
	if intervalStr := os.Getenv("BACKUP_INTERVAL"); intervalStr != "" {
		backupInterval, err = time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKUP_INTERVAL environment variable: %w", err)
		}
		if backupInterval < time.Minute {
			return nil, fmt.Errorf("BACKUP_INTERVAL must be at least 1m, got %s", backupInterval)
		}
	}

	cfg := &Config{
		ServerPort:        port,
		DataDir:           dataDir,
		SessionFile:       sessionFile,
		AuthUsername:      username,
		AuthPassword:      password,
		JWTSecretKey:      jwtKey,
		BackupInterval:    backupInterval,
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
	}

	if cfg.BackupEnabled() && cfg.R2BucketName == "" {
		return nil, fmt.Errorf("BACKUP_INTERVAL is set but the R2_* variables are incomplete")
	}

	return cfg, nil
}

// BackupEnabled reports whether the snapshot scheduler should run.
func (c *Config) BackupEnabled() bool {
	return c.BackupInterval > 0
}
