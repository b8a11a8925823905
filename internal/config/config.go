package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries read from the environment. Empty
// broker, database or Redis settings switch the matching integration off.
type Config struct {
	Port string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	FedaPayPublicKey     string
	FedaPayWebhookSecret string

	SMTPHost string
	SMTPPort string
	SMTPFrom string

	OTelStdout bool
	ToastTTL   time.Duration
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] Could not load .env file: %v", err)
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "afrimarket-events"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "afrimarket-notifier"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),

		FedaPayPublicKey:     os.Getenv("FEDAPAY_PUBLIC_KEY"),
		FedaPayWebhookSecret: os.Getenv("FEDAPAY_WEBHOOK_SECRET"),

		SMTPHost: getEnv("SMTP_HOST", "localhost"),
		SMTPPort: getEnv("SMTP_PORT", "1025"),
		SMTPFrom: getEnv("SMTP_FROM", "noreply@afrimarket.com"),

		OTelStdout: getEnvBool("OTEL_STDOUT", false),
		ToastTTL:   getEnvDuration("TOAST_TTL", 5*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] Invalid %s=%q, using %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[Config] Invalid %s=%q, using %t", key, v, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[Config] Invalid %s=%q, using %s", key, v, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
