package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkEmbedding struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	SessionId      string            `gorm:"type:varchar(128);not null;index:idx_chunk_session_doc"`
	DocId          string            `gorm:"type:varchar(64);not null;index:idx_chunk_session_doc"`
	Document       string            `gorm:"type:text"`
	EmbeddingValue pgvector.Vector   `gorm:"type:vector"` // dimension follows the configured embedding model
	ChunkIndex     int               `gorm:"not null"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
}

func (ChunkEmbedding) TableName() string {
	return "chunk_embeddings"
}
