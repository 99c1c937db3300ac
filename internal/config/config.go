package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string        `envconfig:"PORT" default:"8080"`
	DBUrl       string        `envconfig:"DB_URL" required:"true"`
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL      time.Duration `envconfig:"JWT_TTL" default:"24h"`
	AppEnv      string        `envconfig:"APP_ENV" default:"production"`
	EnableDocs  bool          `envconfig:"ENABLE_API_DOCS" default:"false"`
	CORSOrigins string        `envconfig:"CORS_ORIGINS" default:"*"`

	// Optional. Revoked tokens live in process memory without it.
	RedisURL      string `envconfig:"REDIS_URL"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Optional. Coach image uploads answer 503 without a bucket.
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	DefaultAdminUsername string `envconfig:"DEFAULT_ADMIN_USERNAME" default:"admin"`
	DefaultAdminEmail    string `envconfig:"DEFAULT_ADMIN_EMAIL"`
	DefaultAdminPassword string `envconfig:"DEFAULT_ADMIN_PASSWORD"`
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	cfg.AppEnv = normalizeEnv(cfg.AppEnv)
	return &cfg, nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}

func (c *Config) StorageEnabled() bool {
	return c != nil && c.S3Bucket != ""
}

func (c *Config) AllowedOrigins() string {
	if c == nil || strings.TrimSpace(c.CORSOrigins) == "" {
		return "*"
	}
	return strings.TrimSpace(c.CORSOrigins)
}
