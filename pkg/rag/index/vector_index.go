package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/pkg/embedding"
	"pdf-chat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

const moduleName = "VECTOR_INDEX"

const defaultParallelism = 4

// VectorIndex embeds chunks and keeps them in a shared backend, tagged with
// the (session, document) pair they belong to.
type VectorIndex struct {
	embedder    embedding.EmbeddingProvider
	repo        contract.ChunkEmbeddingRepository
	parallelism int
	logger      logger.ILogger
}

var _ contract.VectorIndex = &VectorIndex{}

func NewVectorIndex(
	embedder embedding.EmbeddingProvider,
	repo contract.ChunkEmbeddingRepository,
	parallelism int,
	logger logger.ILogger,
) *VectorIndex {
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	return &VectorIndex{
		embedder:    embedder,
		repo:        repo,
		parallelism: parallelism,
		logger:      logger,
	}
}

// Add embeds every chunk on a worker pool and then writes them in one bulk call.
// Nothing is written if any embedding fails.
func (v *VectorIndex) Add(ctx context.Context, chunks []entity.Chunk, sessionId, docId string) error {
	if len(chunks) == 0 {
		return nil
	}

	pool, err := ants.NewPool(v.parallelism)
	if err != nil {
		return fmt.Errorf("failed to create embedding worker pool: %w", err)
	}
	defer pool.Release()

	now := time.Now()
	embeddings := make([]*entity.ChunkEmbedding, len(chunks))
	var wg sync.WaitGroup
	errCh := make(chan error, len(chunks))

	for i := range chunks {
		idx := i
		chunk := chunks[i]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			resp, err := v.embedder.Generate(ctx, chunk.Content, embedding.TaskRetrievalDocument)
			if err != nil {
				errCh <- llm.Failure("embedding", fmt.Errorf("chunk %d: %w", idx, err))
				return
			}
			embeddings[idx] = &entity.ChunkEmbedding{
				Id:             uuid.New(),
				SessionId:      sessionId,
				DocId:          docId,
				Content:        chunk.Content,
				ChunkIndex:     chunk.ChunkIndex,
				PageNumber:     chunk.PageNumber,
				EmbeddingValue: resp.Embedding.Values,
				CreatedAt:      now,
			}
		})
		if err != nil {
			wg.Done()
			errCh <- fmt.Errorf("submit embedding task: %w", err)
		}
	}

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		v.logger.Error(moduleName, "Chunk embedding failed", map[string]interface{}{
			"session_id": sessionId,
			"doc_id":     docId,
			"error":      err.Error(),
		})
		return err
	}

	if err := v.repo.CreateBulk(ctx, embeddings); err != nil {
		return err
	}

	v.logger.Info(moduleName, "Chunks indexed", map[string]interface{}{
		"session_id": sessionId,
		"doc_id":     docId,
		"chunks":     len(embeddings),
	})
	return nil
}

// Retrieve returns up to k chunks of exactly (sessionId, docId), most similar first.
func (v *VectorIndex) Retrieve(ctx context.Context, sessionId, docId, query string, k int) ([]*entity.ChunkEmbedding, error) {
	if k <= 0 {
		k = contract.DefaultTopK
	}

	resp, err := v.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, llm.Failure("embedding", err)
	}

	scored, err := v.repo.SearchSimilarWithScore(ctx, resp.Embedding.Values, k, sessionId, docId)
	if err != nil {
		return nil, err
	}

	chunks := make([]*entity.ChunkEmbedding, 0, len(scored))
	for _, s := range scored {
		// the backend filter is the contract; this keeps a misbehaving one from leaking
		if s.Chunk.SessionId != sessionId || s.Chunk.DocId != docId {
			continue
		}
		chunks = append(chunks, s.Chunk)
	}

	v.logger.Debug(moduleName, "Chunks retrieved", map[string]interface{}{
		"session_id": sessionId,
		"doc_id":     docId,
		"k":          k,
		"found":      len(chunks),
	})
	return chunks, nil
}

// Clear wipes the whole index across all sessions.
func (v *VectorIndex) Clear(ctx context.Context) error {
	return v.repo.DeleteAll(ctx)
}
