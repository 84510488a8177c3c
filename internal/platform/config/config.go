package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process level configuration so main stays lean.
type Config struct {
	// WebhookAddr serves the inbound chat webhook.
	WebhookAddr string
	// OpsAddr serves the operator API, health and metrics endpoints.
	OpsAddr string

	DatabaseURL string
	Redis       RedisConfig
	Blob        BlobConfig
	Chat        ChatConfig
	Providers   ProviderConfig

	// JWTSigningKey signs operator API tokens.
	JWTSigningKey string

	// VerifyWorkers is the size of the background verification pool.
	VerifyWorkers int
	// VerifyQueueDepth bounds the verification job queue.
	VerifyQueueDepth int
}

// RedisConfig configures the optional redis session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// SessionTTL bounds how long an abandoned conversation is retained.
	SessionTTL time.Duration
}

// BlobConfig configures document image storage.
type BlobConfig struct {
	Bucket   string
	Region   string
	Endpoint string
	// AccessKeyID/SecretAccessKey override the ambient AWS credential chain,
	// for S3 compatible stores like MinIO.
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL is the prefix under which uploaded objects are reachable.
	PublicBaseURL string
}

// ChatConfig configures the conversational transport.
type ChatConfig struct {
	// BotToken authenticates outbound calls to the chat platform.
	BotToken string
	// APIBaseURL is the chat platform API root, e.g. https://api.telegram.org.
	APIBaseURL string
}

// ProviderConfig holds outbound verification provider settings.
type ProviderConfig struct {
	EmailCheckURL    string
	EmailCheckAPIKey string

	VisionURL    string
	VisionAPIKey string
	VisionModel  string

	BrowseURL        string
	BrowseAPIKey     string
	BrowseEndpoint   string
	BrowseIterations int
}

// FromEnv builds a Config from environment variables with development defaults.
func FromEnv() Config {
	return Config{
		WebhookAddr: envOr("FASTKYC_WEBHOOK_ADDR", ":8080"),
		OpsAddr:     envOr("FASTKYC_OPS_ADDR", ":8081"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envOrInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envOrInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			SessionTTL:   24 * time.Hour,
		},
		Blob: BlobConfig{
			Bucket:          envOr("BLOB_BUCKET", "fastkyc-documents"),
			Region:          envOr("BLOB_REGION", "us-east-1"),
			Endpoint:        os.Getenv("BLOB_ENDPOINT"),
			AccessKeyID:     os.Getenv("BLOB_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("BLOB_SECRET_ACCESS_KEY"),
			PublicBaseURL:   os.Getenv("BLOB_PUBLIC_BASE_URL"),
		},
		Chat: ChatConfig{
			BotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
			APIBaseURL: envOr("CHAT_API_BASE_URL", "https://api.telegram.org"),
		},
		Providers: ProviderConfig{
			EmailCheckURL:    envOr("EMAIL_CHECK_URL", "https://emailvalidation.abstractapi.com/v1/"),
			EmailCheckAPIKey: os.Getenv("ABSTRACT_API_KEY"),
			VisionURL:        envOr("VISION_URL", "https://api.openai.com/v1/chat/completions"),
			VisionAPIKey:     os.Getenv("OPENAI_API_KEY"),
			VisionModel:      envOr("VISION_MODEL", "gpt-4o"),
			BrowseURL:        envOr("BROWSE_URL", "http://localhost:3000/browse"),
			BrowseAPIKey:     os.Getenv("HDR_API_KEY"),
			BrowseEndpoint:   envOr("BROWSE_ENDPOINT", "https://api.hdr.is"),
			BrowseIterations: envOrInt("BROWSE_MAX_ITERATIONS", 10),
		},
		JWTSigningKey:    envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		VerifyWorkers:    envOrInt("VERIFY_WORKERS", 4),
		VerifyQueueDepth: envOrInt("VERIFY_QUEUE_DEPTH", 64),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
