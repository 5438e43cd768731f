package bootstrap

import (
	"fmt"

	"pdf-chat-be/internal/config"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/internal/repository/implementation"
	"pdf-chat-be/internal/repository/memory"
	"pdf-chat-be/internal/repository/objectstore"
	"pdf-chat-be/internal/repository/redisstore"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Backends are the connections a store may be built on. Unused ones may be nil.
type Backends struct {
	DB     *gorm.DB
	Redis  redis.UniversalClient
	Object objectstore.Client
}

type Stores struct {
	Documents contract.DocumentRepository
	Chunks    contract.ChunkEmbeddingRepository
	Turns     contract.ChatTurnRepository
}

// NewStores maps each configured StoreType to its repository implementation.
func NewStores(cfg config.StorageConfig, b Backends) (*Stores, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stores := &Stores{}

	switch cfg.DocumentStore {
	case config.StoreMemory:
		stores.Documents = memory.NewDocumentRepository()
	case config.StoreObject:
		if b.Object == nil {
			return nil, missingBackend("document", cfg.DocumentStore)
		}
		stores.Documents = objectstore.NewDocumentRepository(b.Object, cfg.CosPrefix)
	case config.StorePostgres:
		if b.DB == nil {
			return nil, missingBackend("document", cfg.DocumentStore)
		}
		stores.Documents = implementation.NewDocumentRepository(b.DB)
	}

	switch cfg.VectorStore {
	case config.StoreMemory:
		stores.Chunks = memory.NewChunkEmbeddingRepository()
	case config.StoreObject:
		if b.Object == nil {
			return nil, missingBackend("vector", cfg.VectorStore)
		}
		stores.Chunks = objectstore.NewChunkEmbeddingRepository(b.Object, cfg.CosPrefix)
	case config.StorePostgres:
		if b.DB == nil {
			return nil, missingBackend("vector", cfg.VectorStore)
		}
		stores.Chunks = implementation.NewChunkEmbeddingRepository(b.DB)
	}

	switch cfg.HistoryStore {
	case config.StoreMemory:
		stores.Turns = memory.NewChatTurnRepository()
	case config.StoreRedis:
		if b.Redis == nil {
			return nil, missingBackend("history", cfg.HistoryStore)
		}
		stores.Turns = redisstore.NewChatTurnRepository(b.Redis)
	case config.StorePostgres:
		if b.DB == nil {
			return nil, missingBackend("history", cfg.HistoryStore)
		}
		stores.Turns = implementation.NewChatTurnRepository(b.DB)
	}

	return stores, nil
}

func missingBackend(store string, t config.StoreType) error {
	return fmt.Errorf("%s store %q selected but no %s backend is connected", store, t, t)
}
