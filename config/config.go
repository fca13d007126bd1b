package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Firebase    FirebaseConfig
	Upload      UploadConfig
	Images      ImagesConfig
	Redis       RedisConfig
	Maintenance MaintenanceConfig
	App         AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type FirebaseConfig struct {
	CredentialsPath string
}

type UploadConfig struct {
	// MaxBytes bounds the serialized upload body (base64 or data-URL text).
	MaxBytes int64
}

// ImagesConfig selects the image backend. "postgres" stores payloads in the
// images table and serves them from /api/image; "s3" writes content-addressed
// objects and hands back absolute URLs.
type ImagesConfig struct {
	Backend  string
	S3Bucket string
	S3Region string
}

type RedisConfig struct {
	// Addr enables the image fetch cache when non-empty.
	Addr string
}

type MaintenanceConfig struct {
	// OrphanRetention is how long an unreferenced upload survives before the
	// nightly purge removes it.
	OrphanRetention time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

const DefaultMaxUploadBytes = 10 << 20

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "tilemaker"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Upload: UploadConfig{
			MaxBytes: getEnvAsInt64("UPLOAD_MAX_BYTES", DefaultMaxUploadBytes),
		},
		Images: ImagesConfig{
			Backend:  getEnv("IMAGE_BACKEND", "postgres"),
			S3Bucket: getEnv("IMAGE_S3_BUCKET", ""),
			S3Region: getEnv("IMAGE_S3_REGION", "us-east-1"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Maintenance: MaintenanceConfig{
			OrphanRetention: time.Duration(getEnvAsInt("ORPHAN_RETENTION_HOURS", 72)) * time.Hour,
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports missing deployment configuration. These are operator
// errors, surfaced at startup, never conflated with request validation.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("configuration error: PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("configuration error: DB_HOST is required")
	}

	if c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("configuration error: FIREBASE_CREDENTIALS_PATH is required")
	}

	switch c.Images.Backend {
	case "postgres":
	case "s3":
		if c.Images.S3Bucket == "" {
			return fmt.Errorf("configuration error: IMAGE_S3_BUCKET is required when IMAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("configuration error: unknown IMAGE_BACKEND %q", c.Images.Backend)
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("configuration error: UPLOAD_MAX_BYTES must be positive")
	}

	if c.Maintenance.OrphanRetention <= 0 {
		return fmt.Errorf("configuration error: ORPHAN_RETENTION_HOURS must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
