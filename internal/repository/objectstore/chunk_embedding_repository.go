package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"sync"
	"time"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/pkg/utils"

	"github.com/google/uuid"
	cos "github.com/tencentyun/cos-go-sdk-v5"
)

type storedChunk struct {
	Id         uuid.UUID `json:"id"`
	SessionId  string    `json:"session_id"`
	DocId      string    `json:"doc_id"`
	Content    string    `json:"content"`
	ChunkIndex int       `json:"chunk_index"`
	PageNumber int       `json:"page"`
	Embedding  []float32 `json:"embedding"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChunkEmbeddingRepository stores the chunks of each (session, document) pair as one JSON
// object at {prefix}/vectors/{session}/{doc}.json and ranks them by cosine similarity on read.
type ChunkEmbeddingRepository struct {
	client Client
	prefix string
	// serializes read-merge-write of a pair object within this process
	mu sync.Mutex
}

func NewChunkEmbeddingRepository(client Client, prefix string) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepository{client: client, prefix: prefix}
}

func escapeSegment(s string) string {
	return url.PathEscape(s)
}

func (r *ChunkEmbeddingRepository) vectorsPrefix() string {
	return path.Join(r.prefix, "vectors") + "/"
}

func (r *ChunkEmbeddingRepository) objectName(sessionId, docId string) string {
	return r.vectorsPrefix() + escapeSegment(sessionId) + "/" + escapeSegment(docId) + ".json"
}

func (r *ChunkEmbeddingRepository) load(ctx context.Context, name string) ([]storedChunk, error) {
	body, err := r.client.GetObject(ctx, name)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, contract.Unavailable("get vector object", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, contract.Unavailable("read vector object", err)
	}
	var chunks []storedChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, contract.Unavailable("decode vector object", err)
	}
	return chunks, nil
}

func (r *ChunkEmbeddingRepository) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	byObject := make(map[string][]*entity.ChunkEmbedding)
	var order []string
	for _, e := range embeddings {
		name := r.objectName(e.SessionId, e.DocId)
		if _, ok := byObject[name]; !ok {
			order = append(order, name)
		}
		byObject[name] = append(byObject[name], e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range order {
		existing, err := r.load(ctx, name)
		if err != nil {
			return err
		}
		for _, e := range byObject[name] {
			if e.Id == uuid.Nil {
				e.Id = uuid.New()
			}
			existing = append(existing, storedChunk{
				Id:         e.Id,
				SessionId:  e.SessionId,
				DocId:      e.DocId,
				Content:    e.Content,
				ChunkIndex: e.ChunkIndex,
				PageNumber: e.PageNumber,
				Embedding:  e.EmbeddingValue,
				CreatedAt:  e.CreatedAt,
			})
		}
		data, err := json.Marshal(existing)
		if err != nil {
			return err
		}
		if err := r.client.PutObject(ctx, name, bytes.NewReader(data), "application/json"); err != nil {
			return contract.Unavailable("put vector object", err)
		}
	}
	return nil
}

func (r *ChunkEmbeddingRepository) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, sessionId, docId string) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = contract.DefaultTopK
	}

	stored, err := r.load(ctx, r.objectName(sessionId, docId))
	if err != nil {
		return nil, err
	}

	var candidates []storedChunk
	var scores []float64
	for _, c := range stored {
		// object keys are escaped, tags are still checked verbatim
		if c.SessionId != sessionId || c.DocId != docId {
			continue
		}
		candidates = append(candidates, c)
		scores = append(scores, utils.CosineSimilarity(embedding, c.Embedding))
	}

	idxs := utils.TopKIndices(scores, limit)
	results := make([]*entity.ScoredChunk, len(idxs))
	for i, idx := range idxs {
		c := candidates[idx]
		results[i] = &entity.ScoredChunk{
			Chunk: &entity.ChunkEmbedding{
				Id:             c.Id,
				SessionId:      c.SessionId,
				DocId:          c.DocId,
				Content:        c.Content,
				ChunkIndex:     c.ChunkIndex,
				PageNumber:     c.PageNumber,
				EmbeddingValue: c.Embedding,
				CreatedAt:      c.CreatedAt,
			},
			Similarity: scores[idx],
		}
	}
	return results, nil
}

// DeleteAll removes every vector object under the prefix, following list pagination.
func (r *ChunkEmbeddingRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	marker := ""
	for {
		result, err := r.client.ListObjects(ctx, r.vectorsPrefix(), marker)
		if err != nil {
			if cos.IsNotFoundError(err) {
				return nil
			}
			return contract.Unavailable("list vector objects", err)
		}
		for _, obj := range result.Contents {
			if err := r.client.DeleteObject(ctx, obj.Key); err != nil && !cos.IsNotFoundError(err) {
				return contract.Unavailable("delete vector object", err)
			}
		}
		if !result.IsTruncated || result.NextMarker == "" {
			return nil
		}
		marker = result.NextMarker
	}
}
