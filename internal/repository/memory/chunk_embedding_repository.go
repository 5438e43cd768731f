package memory

import (
	"context"
	"sync"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/pkg/utils"
)

// ChunkEmbeddingRepository is a brute-force cosine index held in process memory.
type ChunkEmbeddingRepository struct {
	mu     sync.RWMutex
	chunks []*entity.ChunkEmbedding
}

func NewChunkEmbeddingRepository() contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepository{}
}

func (r *ChunkEmbeddingRepository) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range embeddings {
		stored := *e
		r.chunks = append(r.chunks, &stored)
	}
	return nil
}

func (r *ChunkEmbeddingRepository) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, sessionId, docId string) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = contract.DefaultTopK
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var candidates []*entity.ChunkEmbedding
	var scores []float64
	for _, c := range r.chunks {
		if c.SessionId != sessionId || c.DocId != docId {
			continue
		}
		candidates = append(candidates, c)
		scores = append(scores, utils.CosineSimilarity(embedding, c.EmbeddingValue))
	}

	idxs := utils.TopKIndices(scores, limit)
	results := make([]*entity.ScoredChunk, len(idxs))
	for i, idx := range idxs {
		chunk := *candidates[idx]
		results[i] = &entity.ScoredChunk{
			Chunk:      &chunk,
			Similarity: scores[idx],
		}
	}
	return results, nil
}

func (r *ChunkEmbeddingRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.chunks = nil
	return nil
}
