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
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	UploadDir          string
	BodyLimitMB        int
	EventTopic         string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
}

// DSN prefers the full connection string and falls back to the discrete fields.
func (d DatabaseConfig) DSN() string {
	if d.Connection != "" {
		return d.Connection
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// StoreType selects the backend of a store.
type StoreType string

const (
	StoreMemory   StoreType = "memory"
	StoreObject   StoreType = "object"
	StorePostgres StoreType = "postgres"
	StoreRedis    StoreType = "redis"
)

type StorageConfig struct {
	DocumentStore StoreType
	VectorStore   StoreType
	HistoryStore  StoreType

	CosBucketURL string
	CosSecretID  string
	CosSecretKey string
	CosPrefix    string

	EmbeddingSize int
}

type AIConfig struct {
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string
	EmbeddingProvider string // "openai", "ollama" or "hash"
	EmbeddingModel    string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OllamaBaseURL     string
	RetrievalTopK     int
	ChunkSize         int
	ChunkOverlap      int
	EmbedParallelism  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			UploadDir:          getEnv("UPLOAD_DIR", "/tmp/pdf_chat_uploads"),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 20),
			EventTopic:         getEnv("EVENT_TOPIC_NAME", "PDF_CHAT_EVENTS"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "pdf_chat"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			DocumentStore: StoreType(getEnv("DOCUMENT_STORE_TYPE", string(StoreMemory))),
			VectorStore:   StoreType(getEnv("VECTOR_STORE_TYPE", string(StoreMemory))),
			HistoryStore:  StoreType(getEnv("HISTORY_STORE_TYPE", string(StoreMemory))),
			CosBucketURL:  getEnv("COS_BUCKET_URL", ""),
			CosSecretID:   getEnv("COS_SECRETID", ""),
			CosSecretKey:  getEnv("COS_SECRETKEY", ""),
			CosPrefix:     getEnv("COS_PREFIX", "chat_states"),
			EmbeddingSize: getEnvAsInt("EMBEDDING_SIZE", 1536),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-large"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			RetrievalTopK:     getEnvAsInt("RETRIEVAL_TOP_K", 4),
			ChunkSize:         getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:      getEnvAsInt("CHUNK_OVERLAP", 150),
			EmbedParallelism:  getEnvAsInt("EMBED_PARALLELISM", 4),
		},
	}
}

// Validate rejects store selections that no backend implements.
func (s StorageConfig) Validate() error {
	check := func(name string, value StoreType, allowed ...StoreType) error {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return fmt.Errorf("invalid %s %q (allowed: %s)", name, value, joinStoreTypes(allowed))
	}

	if err := check("DOCUMENT_STORE_TYPE", s.DocumentStore, StoreMemory, StoreObject, StorePostgres); err != nil {
		return err
	}
	if err := check("VECTOR_STORE_TYPE", s.VectorStore, StoreMemory, StoreObject, StorePostgres); err != nil {
		return err
	}
	if err := check("HISTORY_STORE_TYPE", s.HistoryStore, StoreMemory, StoreRedis, StorePostgres); err != nil {
		return err
	}
	if (s.DocumentStore == StoreObject || s.VectorStore == StoreObject) && s.CosBucketURL == "" {
		return fmt.Errorf("COS_BUCKET_URL is required for object storage")
	}
	return nil
}

// NeedsDatabase reports whether any store is backed by postgres.
func (s StorageConfig) NeedsDatabase() bool {
	return s.DocumentStore == StorePostgres || s.VectorStore == StorePostgres || s.HistoryStore == StorePostgres
}

func joinStoreTypes(types []StoreType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
