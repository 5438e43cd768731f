package bootstrap

import (
	"context"
	"fmt"

	"pdf-chat-be/internal/config"
	"pdf-chat-be/internal/controller"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/repository/objectstore"
	"pdf-chat-be/internal/service"
	"pdf-chat-be/pkg/ai/router"
	"pdf-chat-be/pkg/database"
	"pdf-chat-be/pkg/document"
	"pdf-chat-be/pkg/embedding"
	"pdf-chat-be/pkg/events"
	"pdf-chat-be/pkg/llm/factory"
	pktNats "pdf-chat-be/pkg/nats"
	"pdf-chat-be/pkg/rag/index"
	"pdf-chat-be/pkg/rag/response"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AppController  controller.IAppController
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every component. db may be nil when no store uses postgres.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (_ *Container, err error) {
	c := &Container{Logger: sysLogger}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	// 1. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var forwarder events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("EVENTS", "Failed to connect to NATS, events stay in-process", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.EventTopic, auditLogger, forwarder, sysLogger)

	// 2. Storage
	backends := Backends{DB: db}
	if cfg.Storage.HistoryStore == config.StoreRedis {
		backends.Redis = newRedisClient(cfg.App.RedisURL, sysLogger)
		c.closers = append(c.closers, func() { _ = backends.Redis.Close() })
	}
	if cfg.Storage.DocumentStore == config.StoreObject || cfg.Storage.VectorStore == config.StoreObject {
		client, err := objectstore.NewClient(cfg.Storage.CosBucketURL, cfg.Storage.CosSecretID, cfg.Storage.CosSecretKey)
		if err != nil {
			return nil, fmt.Errorf("object storage: %w", err)
		}
		backends.Object = client
	}

	stores, err := NewStores(cfg.Storage, backends)
	if err != nil {
		return nil, err
	}

	// 3. AI Providers
	embeddingBaseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingBaseURL = cfg.Ai.OllamaBaseURL
	}
	embeddingProvider, err := embedding.NewEmbeddingProvider(embedding.Config{
		Provider:   cfg.Ai.EmbeddingProvider,
		Model:      cfg.Ai.EmbeddingModel,
		APIKey:     cfg.Ai.OpenAIAPIKey,
		BaseURL:    embeddingBaseURL,
		Dimensions: cfg.Storage.EmbeddingSize,
	})
	if err != nil {
		return nil, err
	}

	llmBaseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, llmBaseURL, cfg.Ai.OpenAIAPIKey)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("BOOTSTRAP", "AI providers ready", map[string]interface{}{
		"llm":       cfg.Ai.LLMProvider + "/" + cfg.Ai.LLMModel,
		"embedding": cfg.Ai.EmbeddingProvider + "/" + cfg.Ai.EmbeddingModel,
		"documents": string(cfg.Storage.DocumentStore),
		"vectors":   string(cfg.Storage.VectorStore),
		"history":   string(cfg.Storage.HistoryStore),
	})

	// 4. Services
	vectorIndex := index.NewVectorIndex(embeddingProvider, stores.Chunks, cfg.Ai.EmbedParallelism, sysLogger)
	chatService := service.NewChatService(
		document.NewPDFSplitter(cfg.Ai.ChunkSize, cfg.Ai.ChunkOverlap),
		stores.Documents,
		vectorIndex,
		stores.Turns,
		router.NewRouter(llmProvider, sysLogger),
		response.NewGenerator(llmProvider, sysLogger),
		publisherService,
		cfg.Ai.RetrievalTopK,
		sysLogger,
	)

	// 5. Controllers
	var pinger controller.DatabasePinger
	if db != nil {
		dsn := cfg.Database.DSN()
		pinger = func(ctx context.Context) database.WakeUpResult {
			return database.WakeUp(ctx, dsn)
		}
	}
	c.AppController = controller.NewAppController(pinger)
	c.ChatController = controller.NewChatController(chatService, cfg.App.UploadDir, sysLogger)

	return c, nil
}

// Close releases event bus and broker connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newRedisClient(url string, log logger.ILogger) redis.UniversalClient {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("HISTORY_STORE", "Failed to parse Redis URL, using it as address", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("HISTORY_STORE", "Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return rdb
}
