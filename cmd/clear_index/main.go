package main

import (
	"context"
	"log"

	"pdf-chat-be/internal/bootstrap"
	"pdf-chat-be/internal/config"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/repository/objectstore"
	"pdf-chat-be/pkg/database"
	"pdf-chat-be/pkg/rag/index"
)

// clear_index wipes every chunk of the configured vector store, across all sessions.
func main() {
	cfg := config.Load()

	backends := bootstrap.Backends{}
	switch cfg.Storage.VectorStore {
	case config.StorePostgres:
		db, err := database.NewGormDBFromDSN(cfg.Database.DSN(), false)
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		backends.DB = db
	case config.StoreObject:
		client, err := objectstore.NewClient(cfg.Storage.CosBucketURL, cfg.Storage.CosSecretID, cfg.Storage.CosSecretKey)
		if err != nil {
			log.Fatalf("Object storage client failed: %v", err)
		}
		backends.Object = client
	default:
		log.Printf("Vector store %q lives in process memory, nothing to clear.", cfg.Storage.VectorStore)
		return
	}

	// only the vector store matters here
	storage := cfg.Storage
	storage.DocumentStore = config.StoreMemory
	storage.HistoryStore = config.StoreMemory

	stores, err := bootstrap.NewStores(storage, backends)
	if err != nil {
		log.Fatalf("Store setup failed: %v", err)
	}

	vectorIndex := index.NewVectorIndex(nil, stores.Chunks, 1, logger.NewZapLogger(cfg.App.LogFilePath, false))

	log.Printf("Clearing %s vector store...", cfg.Storage.VectorStore)
	if err := vectorIndex.Clear(context.Background()); err != nil {
		log.Fatalf("Clear failed: %v", err)
	}
	log.Println("Done.")
}
