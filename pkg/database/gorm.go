package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"pdf-chat-be/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getLogger(verbose bool) logger.Interface {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // missing documents are an expected outcome
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  verbose,
		},
	)
}

func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// NewGormDBFromDSN opens a pooled postgres connection. verbose logs every statement.
func NewGormDBFromDSN(dsn string, verbose bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: getLogger(verbose),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate enables pgvector and creates the document, chunk and chat turn tables.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	return db.AutoMigrate(
		&model.Document{},
		&model.ChunkEmbedding{},
		&model.ChatTurn{},
	)
}

// CreateVectorIndex pins the embedding column to dims and builds an HNSW cosine index on it.
// pgvector can only index columns with a fixed dimension.
func CreateVectorIndex(db *gorm.DB, dims int) error {
	if dims <= 0 {
		return fmt.Errorf("invalid embedding dimension %d", dims)
	}
	statements := []string{
		fmt.Sprintf("ALTER TABLE chunk_embeddings ALTER COLUMN embedding_value TYPE vector(%d)", dims),
		"CREATE INDEX IF NOT EXISTS idx_chunk_embedding_hnsw ON chunk_embeddings USING hnsw (embedding_value vector_cosine_ops)",
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
