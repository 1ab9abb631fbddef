package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Firebase FirebaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Cleanup  CleanupConfig
	HTTP     HTTPConfig
	Webhook  WebhookConfig
	Sentry   SentryConfig
}

type ServerConfig struct {
	Port string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	StorageBucket   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig selects the document and blob store backends.
type StorageConfig struct {
	DocStoreBackend  string
	BlobStoreBackend string
	S3Bucket         string
	AWSRegion        string
}

type CleanupConfig struct {
	Secret          string
	Schedule        string
	EnableScheduler bool
}

type HTTPConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the client IP is always the socket peer.
	TrustedProxies []string
}

// WebhookConfig is echoed (minus the secret) by /api/webhook-info.
type WebhookConfig struct {
	URL    string
	Secret string
	Events []string
}

type SentryConfig struct {
	DSN string
}

const (
	DocStoreFirestore = "firestore"
	DocStoreRedis     = "redis"

	BlobStoreFirebase = "firebase"
	BlobStoreS3       = "s3"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			StorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			DocStoreBackend:  strings.ToLower(getEnv("DOCSTORE_BACKEND", DocStoreFirestore)),
			BlobStoreBackend: strings.ToLower(getEnv("BLOBSTORE_BACKEND", BlobStoreFirebase)),
			S3Bucket:         getEnv("S3_BUCKET", ""),
			AWSRegion:        getEnv("AWS_REGION", "eu-west-2"),
		},
		Cleanup: CleanupConfig{
			Secret:          getEnv("CRON_SECRET", ""),
			Schedule:        getEnv("CLEANUP_CRON", "0 0 3 * * *"),
			EnableScheduler: getEnvAsBool("ENABLE_SCHEDULER", false),
		},
		HTTP: HTTPConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES", nil),
		},
		Webhook: WebhookConfig{
			URL:    getEnv("STRIPE_WEBHOOK_URL", ""),
			Secret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			Events: getEnvAsList("STRIPE_WEBHOOK_EVENTS", []string{
				"checkout.session.completed",
				"customer.subscription.updated",
				"customer.subscription.deleted",
				"invoice.payment_failed",
			}),
		},
		Sentry: SentryConfig{
			DSN: getEnv("SENTRY_DSN", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Storage.DocStoreBackend {
	case DocStoreFirestore:
	case DocStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when DOCSTORE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("DOCSTORE_BACKEND must be %q or %q, got %q", DocStoreFirestore, DocStoreRedis, c.Storage.DocStoreBackend)
	}

	switch c.Storage.BlobStoreBackend {
	case BlobStoreFirebase:
	case BlobStoreS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when BLOBSTORE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("BLOBSTORE_BACKEND must be %q or %q, got %q", BlobStoreFirebase, BlobStoreS3, c.Storage.BlobStoreBackend)
	}

	for _, p := range c.HTTP.TrustedProxies {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", p)
		}
	}

	if c.IsProduction() && c.Cleanup.Secret == "" {
		return fmt.Errorf("CRON_SECRET is required in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma-separated value, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
