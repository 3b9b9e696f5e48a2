package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerPort   string
	ServerHost   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Scoring
	ArtifactDir    string
	SchemaFile     string
	DefaultSchema  string
	ResultCacheTTL time.Duration
	CacheEnabled   bool

	// History
	HistoryEnabled bool
	HistoryBackend string // file or postgres
	HistoryFile    string

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
	EventSource  string
}

func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8086"),
		ServerHost:   getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:  getDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDuration("WRITE_TIMEOUT", 15*time.Second),

		ArtifactDir:    getEnv("ARTIFACT_DIR", "./artifacts"),
		SchemaFile:     getEnv("SCHEMA_FILE", ""),
		DefaultSchema:  getEnv("DEFAULT_SCHEMA", "cardio-lifestyle-v1"),
		ResultCacheTTL: getDuration("RESULT_CACHE_TTL", 10*time.Minute),
		CacheEnabled:   getBoolEnv("RESULT_CACHE_ENABLED", false),

		HistoryEnabled: getBoolEnv("HISTORY_ENABLED", true),
		HistoryBackend: getEnv("HISTORY_BACKEND", "file"),
		HistoryFile:    getEnv("HISTORY_FILE", "./data/risk_history.csv"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "riskscore"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "riskscore123"),
		PostgresDB:       getEnv("POSTGRES_DB", "riskscore"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "riskscore.predictions"),
		KafkaEnabled: getBoolEnv("KAFKA_ENABLED", false),
		EventSource:  getEnv("EVENT_SOURCE", "scoring-service"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		brokers := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				brokers = append(brokers, trimmed)
			}
		}
		if len(brokers) > 0 {
			return brokers
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
