package implementation

import (
	"context"
	"os"
	"testing"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real pgvector-enabled postgres when DB_CONNECTION_STRING is set.
func TestPostgresStoresIntegration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	ctx := context.Background()
	session := "it-" + uuid.NewString()
	otherSession := "it-" + uuid.NewString()
	docId := uuid.NewString()

	t.Run("documents", func(t *testing.T) {
		repo := NewDocumentRepository(db)
		require.NoError(t, repo.Put(ctx, &entity.Document{Id: docId, SessionId: session, FullText: "v1"}))
		require.NoError(t, repo.Put(ctx, &entity.Document{Id: docId, SessionId: session, FullText: "v2"}))

		got, err := repo.Get(ctx, docId)
		require.NoError(t, err)
		assert.Equal(t, "v2", got.FullText)

		_, err = repo.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	t.Run("chunks are filtered by both tags", func(t *testing.T) {
		repo := NewChunkEmbeddingRepository(db)
		require.NoError(t, repo.CreateBulk(ctx, []*entity.ChunkEmbedding{
			{SessionId: session, DocId: docId, Content: "mine", EmbeddingValue: []float32{1, 0, 0}},
			{SessionId: otherSession, DocId: docId, Content: "theirs", EmbeddingValue: []float32{1, 0, 0}},
		}))

		found, err := repo.SearchSimilarWithScore(ctx, []float32{1, 0, 0}, 4, session, docId)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "mine", found[0].Chunk.Content)
		assert.InDelta(t, 1.0, found[0].Similarity, 1e-6)
	})

	t.Run("turns keep append order", func(t *testing.T) {
		repo := NewChatTurnRepository(db)
		for _, q := range []string{"one", "two", "three"} {
			require.NoError(t, repo.Append(ctx, session, docId, &entity.ChatTurn{Question: q, Answer: q + "!"}))
		}

		turns, err := repo.FindAll(ctx, session, docId)
		require.NoError(t, err)
		require.Len(t, turns, 3)
		assert.Equal(t, "one", turns[0].Question)
		assert.Equal(t, "three", turns[2].Question)
	})
}
