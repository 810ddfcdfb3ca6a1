package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Error sink backends selectable through ERROR_SINK_BACKEND.
const (
	ErrorSinkDynamo = "dynamo"
	ErrorSinkMongo  = "mongo"
)

// MinJWTSecretLen is the shortest HS256 secret accepted at startup.
const MinJWTSecretLen = 32

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	JWTSecret string

	DatabaseURL  string
	StoreTimeout time.Duration

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	ErrorSinkBackend      string
	ErrorSinkTimeout      time.Duration
	ErrorLogRetentionDays int
	MongoURI              string
	MongoDatabase         string
	MongoCollection       string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	MailTimeout  time.Duration

	RateLimitRPS      float64
	RateLimitBurst    int
	TrustProxyHeaders bool     // key the rate limiter on X-Forwarded-For / X-Real-Ip
	AllowedOrigins    []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	ErrorLogs string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 5*time.Second),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			ErrorLogs: getEnv("DYNAMO_TABLE_ERROR_LOGS", "error_logs"),
		},

		ErrorSinkBackend:      strings.ToLower(getEnv("ERROR_SINK_BACKEND", ErrorSinkDynamo)),
		ErrorSinkTimeout:      getEnvDuration("ERROR_SINK_TIMEOUT", 3*time.Second),
		ErrorLogRetentionDays: getEnvInt("ERROR_LOG_RETENTION_DAYS", 90),
		MongoURI:              getEnv("MONGODB_URI", ""),
		MongoDatabase:         getEnv("MONGODB_DATABASE", "errorLogs"),
		MongoCollection:       getEnv("MONGODB_COLLECTION", "errors"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailTimeout:  getEnvDuration("MAIL_TIMEOUT", 10*time.Second),

		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 10),
		TrustProxyHeaders: getEnvBool("TRUST_PROXY_HEADERS", false),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Validate reports every setting the API server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if len(c.JWTSecret) < MinJWTSecretLen {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLen))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	switch c.ErrorSinkBackend {
	case ErrorSinkDynamo:
	case ErrorSinkMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required when ERROR_SINK_BACKEND=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ERROR_SINK_BACKEND %q", c.ErrorSinkBackend))
	}
	return errors.Join(errs...)
}

// ErrorLogRetention is how long DynamoDB keeps error records before TTL expiry.
func (c *Config) ErrorLogRetention() time.Duration {
	return time.Duration(c.ErrorLogRetentionDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
