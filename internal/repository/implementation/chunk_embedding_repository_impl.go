package implementation

import (
	"context"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/mapper"
	"pdf-chat-be/internal/model"
	"pdf-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkEmbeddingMapper
}

func NewChunkEmbeddingRepository(db *gorm.DB) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkEmbeddingMapper(),
	}
}

// CreateBulk writes all chunks of one upload in a single transaction.
func (r *ChunkEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	models := r.mapper.ToModels(embeddings)
	for _, m := range models {
		if m.Id == uuid.Nil {
			m.Id = uuid.New()
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(models).Error
	})
	if err != nil {
		return contract.Unavailable("insert chunk embeddings", err)
	}

	for i, m := range models {
		embeddings[i].Id = m.Id
	}
	return nil
}

// SearchSimilarWithScore orders by pgvector cosine distance within one (session, document) pair.
func (r *ChunkEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, sessionId, docId string) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = contract.DefaultTopK
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	type result struct {
		model.ChunkEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("chunk_embeddings").
		Select("chunk_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("session_id = ? AND doc_id = ?", sessionId, docId).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, contract.Unavailable("search chunk embeddings", err)
	}

	scored := make([]*entity.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&res.ChunkEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.ChunkEmbedding{}).Error
	if err != nil {
		return contract.Unavailable("clear chunk embeddings", err)
	}
	return nil
}
