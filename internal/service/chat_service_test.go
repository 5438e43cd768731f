package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"pdf-chat-be/internal/constant"
	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/internal/repository/memory"
	"pdf-chat-be/pkg/ai/router"
	"pdf-chat-be/pkg/document"
	"pdf-chat-be/pkg/embedding"
	"pdf-chat-be/pkg/events"
	"pdf-chat-be/pkg/llm"
	"pdf-chat-be/pkg/rag/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSplitter returns one prepared result per file path.
type fakeSplitter struct {
	results map[string]*document.SplitResult
}

func (f *fakeSplitter) Split(_ context.Context, filePath string) (*document.SplitResult, error) {
	res, ok := f.results[filePath]
	if !ok {
		return nil, document.ErrNoText
	}
	return res, nil
}

func splitOf(prefix string, n int) *document.SplitResult {
	res := &document.SplitResult{Pages: []document.Page{{Number: 1}}}
	var texts []string
	for i := 0; i < n; i++ {
		text := prefix + " chunk " + string(rune('a'+i))
		texts = append(texts, text)
		res.Chunks = append(res.Chunks, entity.Chunk{Content: text, ChunkIndex: i, PageNumber: 1})
	}
	res.FullText = strings.Join(texts, "\n")
	res.Pages[0].Text = res.FullText
	return res
}

// keywordClassifier routes broad overview requests to summarization.
type keywordClassifier struct {
	calls    int
	override router.Task
}

func (k *keywordClassifier) Classify(_ context.Context, query string) (router.Task, error) {
	k.calls++
	if k.override != "" {
		return k.override, nil
	}
	q := strings.ToLower(query)
	if strings.Contains(q, "main findings") || strings.Contains(q, "summar") {
		return router.TaskSummarization, nil
	}
	return router.TaskQuestionAnswering, nil
}

type answerCall struct {
	Query   string
	Chunks  []string
	History []entity.ChatTurn
}

type recordingSynthesizer struct {
	answers    []answerCall
	summarized []string
	answerErr  error
}

func (r *recordingSynthesizer) Answer(_ context.Context, query string, chunks []*entity.ChunkEmbedding, history []*entity.ChatTurn) (string, error) {
	call := answerCall{Query: query}
	for _, c := range chunks {
		call.Chunks = append(call.Chunks, c.Content)
	}
	for _, h := range history {
		call.History = append(call.History, *h)
	}
	r.answers = append(r.answers, call)
	if r.answerErr != nil {
		return "", r.answerErr
	}
	return "answer to " + query, nil
}

func (r *recordingSynthesizer) Summarize(_ context.Context, fullText string) (string, error) {
	r.summarized = append(r.summarized, fullText)
	return "summary", nil
}

type recordingPublisher struct {
	mu  sync.Mutex
	got []string
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, e.EventType())
}

type countingDocuments struct {
	contract.DocumentRepository
	puts int
}

func (c *countingDocuments) Put(ctx context.Context, d *entity.Document) error {
	c.puts++
	return c.DocumentRepository.Put(ctx, d)
}

type failingEmbedder struct{}

func (failingEmbedder) Generate(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
	return nil, errors.New("quota exceeded")
}

type pipelineFixture struct {
	service     IChatService
	turns       contract.ChatTurnRepository
	documents   *countingDocuments
	classifier  *keywordClassifier
	synthesizer *recordingSynthesizer
	publisher   *recordingPublisher
}

func newPipeline(t *testing.T, splits map[string]*document.SplitResult, embedder embedding.EmbeddingProvider) *pipelineFixture {
	t.Helper()
	if embedder == nil {
		embedder = embedding.NewHashProvider(64)
	}
	f := &pipelineFixture{
		turns:       memory.NewChatTurnRepository(),
		documents:   &countingDocuments{DocumentRepository: memory.NewDocumentRepository()},
		classifier:  &keywordClassifier{},
		synthesizer: &recordingSynthesizer{},
		publisher:   &recordingPublisher{},
	}
	vectorIndex := index.NewVectorIndex(embedder, memory.NewChunkEmbeddingRepository(), 2, logger.NewNopLogger())
	f.service = NewChatService(
		&fakeSplitter{results: splits},
		f.documents,
		vectorIndex,
		f.turns,
		f.classifier,
		f.synthesizer,
		f.publisher,
		0,
		logger.NewNopLogger(),
	)
	return f
}

func TestUploadThenTwoTurnConversation(t *testing.T) {
	ctx := context.Background()
	f := newPipeline(t, map[string]*document.SplitResult{"/tmp/paper.pdf": splitOf("paper", 6)}, nil)

	up, err := f.service.Upload(ctx, "/tmp/paper.pdf", "s1", "paper.pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, up.DocId)
	assert.Equal(t, "s1", up.SessionId)
	assert.Equal(t, constant.UploadSuccessMessage, up.Message)
	assert.Equal(t, 6, up.Chunks)

	first, err := f.service.Query(ctx, &dto.QueryRequest{Query: "What is the main conclusion?", SessionId: "s1", DocId: up.DocId})
	require.NoError(t, err)
	assert.Equal(t, "answer to What is the main conclusion?", first)

	second, err := f.service.Query(ctx, &dto.QueryRequest{Query: "Can you elaborate on that?", SessionId: "s1", DocId: up.DocId})
	require.NoError(t, err)
	assert.Equal(t, "answer to Can you elaborate on that?", second)

	require.Len(t, f.synthesizer.answers, 2)
	assert.Empty(t, f.synthesizer.answers[0].History)
	require.Len(t, f.synthesizer.answers[1].History, 1)
	assert.Equal(t, "What is the main conclusion?", f.synthesizer.answers[1].History[0].Question)
	assert.Equal(t, first, f.synthesizer.answers[1].History[0].Answer)
	assert.Len(t, f.synthesizer.answers[0].Chunks, contract.DefaultTopK)

	history, err := f.service.History(ctx, "s1", up.DocId)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "What is the main conclusion?", history[0].Question)
	assert.Equal(t, "Can you elaborate on that?", history[1].Question)

	assert.Equal(t, []string{events.TypeDocumentIndexed, events.TypeChatAnswered, events.TypeChatAnswered}, f.publisher.got)
}

func TestQueryWithoutDocumentReturnsSentinel(t *testing.T) {
	ctx := context.Background()
	f := newPipeline(t, map[string]*document.SplitResult{"/tmp/a.pdf": splitOf("a", 2)}, nil)

	up, err := f.service.Upload(ctx, "/tmp/a.pdf", "s1", "a.pdf")
	require.NoError(t, err)

	tests := []struct {
		name      string
		sessionId string
		docId     string
	}{
		{"unknown doc", "s1", "missing"},
		{"empty doc id", "s1", ""},
		{"doc of another session", "s2", up.DocId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := f.service.Query(ctx, &dto.QueryRequest{Query: "Anything?", SessionId: tt.sessionId, DocId: tt.docId})
			require.NoError(t, err)
			assert.Equal(t, "Please upload a document first.", reply)
		})
	}

	assert.Zero(t, f.classifier.calls)
	assert.Empty(t, f.synthesizer.answers)
	assert.Empty(t, f.synthesizer.summarized)
}

func TestHistoryRequiresOwnedDocument(t *testing.T) {
	ctx := context.Background()
	f := newPipeline(t, map[string]*document.SplitResult{"/tmp/a.pdf": splitOf("a", 2)}, nil)

	up, err := f.service.Upload(ctx, "/tmp/a.pdf", "s1", "a.pdf")
	require.NoError(t, err)
	_, err = f.service.Query(ctx, &dto.QueryRequest{Query: "What is it?", SessionId: "s1", DocId: up.DocId})
	require.NoError(t, err)

	// turns stored under keys that no uploaded document backs
	require.NoError(t, f.turns.Append(ctx, "s2", up.DocId, &entity.ChatTurn{Question: "stray", Answer: "stray"}))
	require.NoError(t, f.turns.Append(ctx, "s1", "missing", &entity.ChatTurn{Question: "stray", Answer: "stray"}))

	tests := []struct {
		name      string
		sessionId string
		docId     string
		want      int
	}{
		{"owned doc", "s1", up.DocId, 1},
		{"doc of another session", "s2", up.DocId, 0},
		{"unknown doc", "s1", "missing", 0},
		{"empty doc id", "s1", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, err := f.service.History(ctx, tt.sessionId, tt.docId)
			require.NoError(t, err)
			require.NotNil(t, history)
			assert.Len(t, history, tt.want)
		})
	}
}

func TestRetrievalIsScopedToSessionAndDocument(t *testing.T) {
	ctx := context.Background()
	f := newPipeline(t, map[string]*document.SplitResult{
		"/tmp/alpha.pdf": splitOf("alpha", 5),
		"/tmp/beta.pdf":  splitOf("beta", 5),
	}, nil)

	alpha, err := f.service.Upload(ctx, "/tmp/alpha.pdf", "s1", "alpha.pdf")
	require.NoError(t, err)
	_, err = f.service.Upload(ctx, "/tmp/beta.pdf", "s2", "beta.pdf")
	require.NoError(t, err)
	// same content in the same session but a different document
	alphaAgain, err := f.service.Upload(ctx, "/tmp/beta.pdf", "s1", "beta.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, alpha.DocId, alphaAgain.DocId)

	_, err = f.service.Query(ctx, &dto.QueryRequest{Query: "beta chunk a", SessionId: "s1", DocId: alpha.DocId})
	require.NoError(t, err)

	require.Len(t, f.synthesizer.answers, 1)
	require.NotEmpty(t, f.synthesizer.answers[0].Chunks)
	for _, c := range f.synthesizer.answers[0].Chunks {
		assert.True(t, strings.HasPrefix(c, "alpha"), "leaked chunk %q", c)
	}
}

func TestRepeatedQueryRetrievesSameContext(t *testing.T) {
	ctx := context.Background()
	f := newPipeline(t, map[string]*document.SplitResult{"/tmp/a.pdf": splitOf("doc", 8)}, nil)

	up, err := f.service.Upload(ctx, "/tmp/a.pdf", "s1", "a.pdf")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := f.service.Query(ctx, &dto.QueryRequest{Query: "doc chunk c", SessionId: "s1", DocId: up.DocId})
		require.NoError(t, err)
	}

	require.Len(t, f.synthesizer.answers, 2)
	assert.Equal(t, f.synthesizer.answers[0].Chunks, f.synthesizer.answers[1].Chunks)
}

func TestSummaryUsesFullTextAndSkipsHistory(t *testing.T) {
	ctx := context.Background()
	split := splitOf("report", 3)
	f := newPipeline(t, map[string]*document.SplitResult{"/tmp/r.pdf": split}, nil)

	up, err := f.service.Upload(ctx, "/tmp/r.pdf", "s1", "r.pdf")
	require.NoError(t, err)

	reply, err := f.service.Query(ctx, &dto.QueryRequest{Query: "What are the main findings of this paper?", SessionId: "s1", DocId: up.DocId})
	require.NoError(t, err)
	assert.Equal(t, "summary", reply)
	assert.Equal(t, []string{split.FullText}, f.synthesizer.summarized)
	assert.Empty(t, f.synthesizer.answers)

	turns, err := f.turns.FindAll(ctx, "s1", up.DocId)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestInvalidTaskIsAHardStop(t *testing.T) {
	ctx := context.Background()
	f := newPipeline(t, map[string]*document.SplitResult{"/tmp/a.pdf": splitOf("a", 2)}, nil)
	up, err := f.service.Upload(ctx, "/tmp/a.pdf", "s1", "a.pdf")
	require.NoError(t, err)

	f.classifier.override = router.Task("poem")
	_, err = f.service.Query(ctx, &dto.QueryRequest{Query: "Write a poem", SessionId: "s1", DocId: up.DocId})

	require.Error(t, err)
	assert.ErrorIs(t, err, router.ErrInvalidTask)
	var pErr *ProcessingError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "query", pErr.Op)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to process query: "))
	assert.Empty(t, f.synthesizer.answers)
}

func TestSynthesisFailureAppendsNothing(t *testing.T) {
	ctx := context.Background()
	f := newPipeline(t, map[string]*document.SplitResult{"/tmp/a.pdf": splitOf("a", 2)}, nil)
	up, err := f.service.Upload(ctx, "/tmp/a.pdf", "s1", "a.pdf")
	require.NoError(t, err)

	f.synthesizer.answerErr = llm.Failure("openai", errors.New("503"))
	_, err = f.service.Query(ctx, &dto.QueryRequest{Query: "Why?", SessionId: "s1", DocId: up.DocId})

	assert.ErrorIs(t, err, llm.ErrProviderFailure)
	turns, err := f.turns.FindAll(ctx, "s1", up.DocId)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestCallerHistoryOverridesStoredHistory(t *testing.T) {
	ctx := context.Background()
	f := newPipeline(t, map[string]*document.SplitResult{"/tmp/a.pdf": splitOf("a", 2)}, nil)
	up, err := f.service.Upload(ctx, "/tmp/a.pdf", "s1", "a.pdf")
	require.NoError(t, err)

	_, err = f.service.Query(ctx, &dto.QueryRequest{Query: "First?", SessionId: "s1", DocId: up.DocId})
	require.NoError(t, err)

	_, err = f.service.Query(ctx, &dto.QueryRequest{
		Query:     "Second?",
		SessionId: "s1",
		DocId:     up.DocId,
		History:   []dto.HistoryTurn{{Question: "client q", Answer: "client a"}},
	})
	require.NoError(t, err)

	require.Len(t, f.synthesizer.answers, 2)
	assert.Equal(t, []entity.ChatTurn{{Question: "client q", Answer: "client a"}}, f.synthesizer.answers[1].History)

	turns, err := f.turns.FindAll(ctx, "s1", up.DocId)
	require.NoError(t, err)
	assert.Len(t, turns, 2)
}

func TestUploadFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("splitter error", func(t *testing.T) {
		f := newPipeline(t, map[string]*document.SplitResult{}, nil)
		_, err := f.service.Upload(ctx, "/tmp/scan.pdf", "s1", "scan.pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, document.ErrNoText)
		assert.True(t, strings.HasPrefix(err.Error(), "failed to process upload: "))
		assert.Zero(t, f.documents.puts)
	})

	t.Run("embedding error stores nothing", func(t *testing.T) {
		f := newPipeline(t, map[string]*document.SplitResult{"/tmp/a.pdf": splitOf("a", 3)}, failingEmbedder{})
		_, err := f.service.Upload(ctx, "/tmp/a.pdf", "s1", "a.pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, llm.ErrProviderFailure)
		assert.Zero(t, f.documents.puts)
		assert.Empty(t, f.publisher.got)
	})
}

func TestUploadGeneratesSessionWhenMissing(t *testing.T) {
	f := newPipeline(t, map[string]*document.SplitResult{"/tmp/a.pdf": splitOf("a", 1)}, nil)

	up, err := f.service.Upload(context.Background(), "/tmp/a.pdf", "", "a.pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, up.SessionId)
}
