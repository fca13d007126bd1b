package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:      ServerConfig{Port: "8080"},
		Database:    DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "tilemaker"},
		Firebase:    FirebaseConfig{CredentialsPath: "/etc/firebase/creds.json"},
		Upload:      UploadConfig{MaxBytes: DefaultMaxUploadBytes},
		Images:      ImagesConfig{Backend: "postgres"},
		Maintenance: MaintenanceConfig{OrphanRetention: 72 * time.Hour},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/etc/firebase/creds.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "tilemaker", cfg.Database.Name)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Upload.MaxBytes)
	assert.Equal(t, "postgres", cfg.Images.Backend)
	assert.Equal(t, "us-east-1", cfg.Images.S3Region)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 72*time.Hour, cfg.Maintenance.OrphanRetention)
	assert.Equal(t, "development", cfg.App.Environment)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/etc/firebase/creds.json")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")
	t.Setenv("IMAGE_BACKEND", "s3")
	t.Setenv("IMAGE_S3_BUCKET", "tilemaker-uploads")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ORPHAN_RETENTION_HOURS", "24")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, int64(1<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "s3", cfg.Images.Backend)
	assert.Equal(t, "tilemaker-uploads", cfg.Images.S3Bucket)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Maintenance.OrphanRetention)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/etc/firebase/creds.json")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "PORT is required"},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "DB_HOST is required"},
		{"missing firebase creds", func(c *Config) { c.Firebase.CredentialsPath = "" }, "FIREBASE_CREDENTIALS_PATH is required"},
		{"s3 without bucket", func(c *Config) { c.Images.Backend = "s3" }, "IMAGE_S3_BUCKET is required"},
		{"unknown backend", func(c *Config) { c.Images.Backend = "gcs" }, "unknown IMAGE_BACKEND"},
		{"zero upload limit", func(c *Config) { c.Upload.MaxBytes = 0 }, "UPLOAD_MAX_BYTES must be positive"},
		{"zero retention", func(c *Config) { c.Maintenance.OrphanRetention = 0 }, "ORPHAN_RETENTION_HOURS must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
