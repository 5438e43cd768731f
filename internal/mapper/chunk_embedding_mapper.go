package mapper

import (
	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkEmbeddingMapper struct{}

func NewChunkEmbeddingMapper() *ChunkEmbeddingMapper {
	return &ChunkEmbeddingMapper{}
}

func (m *ChunkEmbeddingMapper) ToEntity(e *model.ChunkEmbedding) *entity.ChunkEmbedding {
	if e == nil {
		return nil
	}

	return &entity.ChunkEmbedding{
		Id:             e.Id,
		SessionId:      e.SessionId,
		DocId:          e.DocId,
		Content:        e.Document,
		ChunkIndex:     e.ChunkIndex,
		PageNumber:     intFromJSON(e.Metadata["page"]),
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) ToModel(e *entity.ChunkEmbedding) *model.ChunkEmbedding {
	if e == nil {
		return nil
	}

	return &model.ChunkEmbedding{
		Id:             e.Id,
		SessionId:      e.SessionId,
		DocId:          e.DocId,
		Document:       e.Content,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ChunkIndex:     e.ChunkIndex,
		Metadata: datatypes.JSONMap{
			"page":       e.PageNumber,
			"session_id": e.SessionId,
			"doc_id":     e.DocId,
		},
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) ToModels(embeddings []*entity.ChunkEmbedding) []*model.ChunkEmbedding {
	models := make([]*model.ChunkEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
