package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server ServerConfig
	AWS    AWSConfig
	Tables TablesConfig
	Queue  QueueConfig
	Email  EmailConfig
	Redis  RedisConfig
	Audit  AuditConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// AWSConfig holds AWS credentials and region.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// TablesConfig holds DynamoDB table and index names.
type TablesConfig struct {
	Events                  string
	Registrations           string
	Evaluations             string
	EvaluationQuestionIndex string // LSI over (hashKey, question)
}

// QueueConfig holds the payment tracking queue settings.
type QueueConfig struct {
	PaymentQueueURL string
	WaitSeconds     int // long-poll wait per receive
	MaxMessages     int // batch size per receive
}

// EmailConfig holds the outbound notification sender identity.
type EmailConfig struct {
	Sender     string
	SenderName string
}

// RedisConfig holds Redis connection settings for the event lookup cache.
// An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuditConfig identifies the actor stamped on createdBy/updatedBy fields.
type AuditConfig struct {
	CurrentActor string
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	readTimeout, _ := strconv.Atoi(getEnv("READ_TIMEOUT_SEC", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT_SEC", "30"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        readTimeout,
			WriteTimeout:       writeTimeout,
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		AWS: AWSConfig{
			Region:          getEnv("REGION", "ap-southeast-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Tables: TablesConfig{
			Events:                  getEnv("EVENTS_TABLE", "events"),
			Registrations:           getEnv("REGISTRATIONS_TABLE", "registrations"),
			Evaluations:             getEnv("EVALUATIONS_TABLE", "evaluations"),
			EvaluationQuestionIndex: getEnv("EVALUATION_QUESTION_INDEX", "question-index"),
		},
		Queue: QueueConfig{
			PaymentQueueURL: getEnv("PAYMENT_QUEUE", ""),
			WaitSeconds:     getEnvInt("QUEUE_WAIT_SECONDS", 20),
			MaxMessages:     getEnvInt("QUEUE_MAX_MESSAGES", 10),
		},
		Email: EmailConfig{
			Sender:     getEnv("EMAIL_SENDER", "noreply@durianpy.org"),
			SenderName: getEnv("EMAIL_SENDER_NAME", "DurianPy Davao"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Audit: AuditConfig{
			CurrentActor: getEnv("CURRENT_USER", "system"),
		},
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
