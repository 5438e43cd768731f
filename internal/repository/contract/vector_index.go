package contract

import (
	"context"

	"pdf-chat-be/internal/entity"
)

// DefaultTopK is the number of chunks retrieved when the caller does not specify one.
const DefaultTopK = 4

// VectorIndex embeds chunks and searches them, scoped to one (session, document) pair.
type VectorIndex interface {
	Add(ctx context.Context, chunks []entity.Chunk, sessionId, docId string) error
	Retrieve(ctx context.Context, sessionId, docId, query string, k int) ([]*entity.ChunkEmbedding, error)
	Clear(ctx context.Context) error
}
