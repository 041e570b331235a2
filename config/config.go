package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	PublicBaseURL  string
	AllowedOrigins []string

	// Portfolio store: "postgres", "mongo" or "memory"
	DBDriver string
	DBUrl    string
	MongoURI string
	MongoDB  string

	// Identity provider (Clerk-style JWTs)
	AuthJWKSURL   string
	AuthJWTSecret string // HS256 secret, local development only
	AuthIssuer    string

	// Object storage: "s3", "gcs" or "memory"
	StorageProvider    string
	R2Endpoint         string
	R2AccessKeyID      string
	R2SecretAccessKey  string
	S3Region           string
	Bucket             string
	GCSBucket          string
	GCSCredentialsFile string

	// clamd address for upload scanning; empty disables it
	ClamAVAddress string

	// Résumé parsing: "openrouter" or "vertex"
	ResumeProvider    string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
	VertexProjectID   string
	VertexLocation    string
	VertexModel       string

	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string

	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitResumeThreshold int
	UploadsPerMinute         int
	UploadsPerDay            int

	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", getEnv("NEXT_PUBLIC_BASE_URL", "http://localhost:3000")), "/"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		DBDriver: strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBUrl:    getEnv("DATABASE_URL", ""),
		MongoURI: getEnv("MONGO_URI", ""),
		MongoDB:  getEnv("MONGO_DB", "link1t"),

		AuthJWKSURL:   getEnv("AUTH_JWKS_URL", ""),
		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		AuthIssuer:    strings.TrimRight(getEnv("AUTH_ISSUER", ""), "/"),

		StorageProvider:    strings.ToLower(getEnv("STORAGE_PROVIDER", "s3")),
		R2Endpoint:         r2Endpoint(),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		S3Region:           getEnv("S3_REGION", "auto"),
		Bucket:             getEnv("R2_IMAGE_BUCKET_NAME", getEnv("R2_BUCKET_NAME", "portfolio-assets")),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),

		ClamAVAddress: getEnv("CLAMAV_ADDRESS", ""),

		ResumeProvider:    strings.ToLower(getEnv("RESUME_PROVIDER", "openrouter")),
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: strings.TrimRight(getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"), "/"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "google/gemini-2.0-flash-001"),
		VertexProjectID:   getEnv("VERTEX_PROJECT_ID", ""),
		VertexLocation:    getEnv("VERTEX_LOCATION", "us-central1"),
		VertexModel:       getEnv("VERTEX_MODEL", "gemini-2.0-flash-001"),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitResumeThreshold: getEnvInt("RATE_LIMIT_RESUME_THRESHOLD", 5),
		UploadsPerMinute:         getEnvInt("UPLOADS_PER_MINUTE", 10),
		UploadsPerDay:            getEnvInt("UPLOADS_PER_DAY", 50),

		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", "noreply@link1t.com"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "hello@link1t.com"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.AuthJWKSURL == "" && cfg.AuthJWTSecret == "" {
		log.Println("WARNING: neither AUTH_JWKS_URL nor AUTH_JWT_SECRET is set. Every authenticated route will answer 401.")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.DBUrl == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	case "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when DB_DRIVER=mongo")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}

	switch c.StorageProvider {
	case "s3", "memory":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORAGE_PROVIDER=gcs")
		}
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider)
	}

	switch c.ResumeProvider {
	case "openrouter", "vertex":
	default:
		return fmt.Errorf("unknown RESUME_PROVIDER %q", c.ResumeProvider)
	}
	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// r2Endpoint prefers an explicit endpoint and falls back to the Cloudflare account URL.
func r2Endpoint() string {
	if endpoint := getEnv("R2_ENDPOINT", ""); endpoint != "" {
		return strings.TrimRight(endpoint, "/")
	}
	if account := getEnv("R2_ACCOUNT_ID", ""); account != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", account)
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			out = append(out, item)
		}
	}
	return out
}
