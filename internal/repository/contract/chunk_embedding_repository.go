package contract

import (
	"context"

	"pdf-chat-be/internal/entity"
)

// ChunkEmbeddingRepository is the storage side of the vector index. Implementations
// must filter searches by exact match on both SessionId and DocId.
type ChunkEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, sessionId, docId string) ([]*entity.ScoredChunk, error)
	DeleteAll(ctx context.Context) error
}
