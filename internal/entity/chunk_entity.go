package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a contiguous segment of a document's text as produced by the splitter.
type Chunk struct {
	Content    string
	ChunkIndex int
	PageNumber int
}

// ChunkEmbedding is a chunk stamped with its (session, document) tags and its vector.
type ChunkEmbedding struct {
	Id             uuid.UUID
	SessionId      string
	DocId          string
	Content        string
	ChunkIndex     int
	PageNumber     int
	EmbeddingValue []float32
	CreatedAt      time.Time
}

// ScoredChunk is a retrieved chunk with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk      *ChunkEmbedding
	Similarity float64
}
