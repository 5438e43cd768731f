package main

import (
	"log"

	"pdf-chat-be/internal/config"
	"pdf-chat-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.DSN(), true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Enabling pgvector and migrating tables...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}

	log.Printf("Step 2: Building HNSW index for %d-dimensional embeddings...", cfg.Storage.EmbeddingSize)
	if err := database.CreateVectorIndex(db, cfg.Storage.EmbeddingSize); err != nil {
		log.Fatalf("Error: Vector index creation failed: %v", err)
	}

	log.Println("✅ Migration completed")
}
