package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pdf-chat-be/internal/constant"
	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/pkg/ai/router"
	"pdf-chat-be/pkg/document"
	"pdf-chat-be/pkg/events"

	"github.com/google/uuid"
)

const pipelineModule = "PIPELINE"

// ProcessingError is the single error shape that leaves the chat pipeline.
type ProcessingError struct {
	Op  string
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("failed to process %s: %v", e.Op, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// QueryClassifier decides which task a query asks for.
type QueryClassifier interface {
	Classify(ctx context.Context, query string) (router.Task, error)
}

// AnswerSynthesizer produces the final reply text.
type AnswerSynthesizer interface {
	Answer(ctx context.Context, query string, chunks []*entity.ChunkEmbedding, history []*entity.ChatTurn) (string, error)
	Summarize(ctx context.Context, fullText string) (string, error)
}

type IChatService interface {
	Upload(ctx context.Context, filePath, sessionId, filename string) (*dto.UploadResponse, error)
	Query(ctx context.Context, request *dto.QueryRequest) (string, error)
	History(ctx context.Context, sessionId, docId string) ([]*dto.ChatTurnResponse, error)
}

// chatService holds no per-request state; it is safe for concurrent use.
type chatService struct {
	splitter    document.Splitter
	documents   contract.DocumentRepository
	index       contract.VectorIndex
	turns       contract.ChatTurnRepository
	classifier  QueryClassifier
	synthesizer AnswerSynthesizer
	publisher   IPublisherService
	topK        int
	logger      logger.ILogger
}

func NewChatService(
	splitter document.Splitter,
	documents contract.DocumentRepository,
	index contract.VectorIndex,
	turns contract.ChatTurnRepository,
	classifier QueryClassifier,
	synthesizer AnswerSynthesizer,
	publisher IPublisherService,
	topK int,
	logger logger.ILogger,
) IChatService {
	if topK <= 0 {
		topK = contract.DefaultTopK
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &chatService{
		splitter:    splitter,
		documents:   documents,
		index:       index,
		turns:       turns,
		classifier:  classifier,
		synthesizer: synthesizer,
		publisher:   publisher,
		topK:        topK,
		logger:      logger,
	}
}

// Upload extracts the document at filePath and makes it queryable under sessionId.
// Chunks are indexed before the document is stored: the document entry is what
// makes a doc_id visible to Query, so a failed upload leaves nothing reachable.
func (s *chatService) Upload(ctx context.Context, filePath, sessionId, filename string) (*dto.UploadResponse, error) {
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	split, err := s.splitter.Split(ctx, filePath)
	if err != nil {
		return nil, s.fail("upload", err, map[string]interface{}{"session_id": sessionId, "file": filename})
	}

	docId := uuid.NewString()

	if err := s.index.Add(ctx, split.Chunks, sessionId, docId); err != nil {
		return nil, s.fail("upload", err, map[string]interface{}{"session_id": sessionId, "doc_id": docId})
	}

	doc := &entity.Document{
		Id:        docId,
		SessionId: sessionId,
		Filename:  filename,
		FullText:  split.FullText,
		PageCount: len(split.Pages),
		CreatedAt: time.Now(),
	}
	if err := s.documents.Put(ctx, doc); err != nil {
		return nil, s.fail("upload", err, map[string]interface{}{"session_id": sessionId, "doc_id": docId})
	}

	s.logger.Info(pipelineModule, "Document indexed", map[string]interface{}{
		"session_id": sessionId,
		"doc_id":     docId,
		"pages":      len(split.Pages),
		"chunks":     len(split.Chunks),
	})
	s.publisher.Publish(ctx, events.NewDocumentIndexed(sessionId, docId, filename, len(split.Chunks)))

	return &dto.UploadResponse{
		DocId:     docId,
		SessionId: sessionId,
		Filename:  filename,
		Chunks:    len(split.Chunks),
		Message:   constant.UploadSuccessMessage,
	}, nil
}

// Query answers request against its document. A missing document is not an error:
// the caller gets UploadFirstMessage and no model is called.
func (s *chatService) Query(ctx context.Context, request *dto.QueryRequest) (string, error) {
	doc, err := s.lookupDocument(ctx, request.SessionId, request.DocId)
	if errors.Is(err, contract.ErrNotFound) {
		return constant.UploadFirstMessage, nil
	}
	if err != nil {
		return "", s.fail("query", err, map[string]interface{}{"session_id": request.SessionId, "doc_id": request.DocId})
	}

	task, err := s.classifier.Classify(ctx, request.Query)
	if err != nil {
		return "", s.fail("query", err, map[string]interface{}{"session_id": request.SessionId, "doc_id": request.DocId})
	}

	var reply string
	switch task {
	case router.TaskQuestionAnswering:
		reply, err = s.answer(ctx, request)
	case router.TaskSummarization:
		// summaries are not recorded in the conversation history
		reply, err = s.synthesizer.Summarize(ctx, doc.FullText)
	default:
		err = fmt.Errorf("%w: %q", router.ErrInvalidTask, task)
	}
	if err != nil {
		return "", s.fail("query", err, map[string]interface{}{
			"session_id": request.SessionId,
			"doc_id":     request.DocId,
			"task":       string(task),
		})
	}

	s.publisher.Publish(ctx, events.NewChatAnswered(request.SessionId, request.DocId, string(task)))
	return reply, nil
}

func (s *chatService) answer(ctx context.Context, request *dto.QueryRequest) (string, error) {
	chunks, err := s.index.Retrieve(ctx, request.SessionId, request.DocId, request.Query, s.topK)
	if err != nil {
		return "", err
	}

	history, err := s.resolveHistory(ctx, request)
	if err != nil {
		return "", err
	}

	reply, err := s.synthesizer.Answer(ctx, request.Query, chunks, history)
	if err != nil {
		return "", err
	}

	turn := &entity.ChatTurn{Question: request.Query, Answer: reply, CreatedAt: time.Now()}
	if err := s.turns.Append(ctx, request.SessionId, request.DocId, turn); err != nil {
		return "", err
	}
	return reply, nil
}

// resolveHistory prefers history sent by the caller over the stored conversation.
func (s *chatService) resolveHistory(ctx context.Context, request *dto.QueryRequest) ([]*entity.ChatTurn, error) {
	if request.History == nil {
		return s.turns.FindAll(ctx, request.SessionId, request.DocId)
	}

	history := make([]*entity.ChatTurn, 0, len(request.History))
	for _, h := range request.History {
		history = append(history, &entity.ChatTurn{Question: h.Question, Answer: h.Answer})
	}
	return history, nil
}

// lookupDocument returns contract.ErrNotFound unless docId exists and belongs to sessionId.
func (s *chatService) lookupDocument(ctx context.Context, sessionId, docId string) (*entity.Document, error) {
	if docId == "" {
		return nil, contract.ErrNotFound
	}

	doc, err := s.documents.Get(ctx, docId)
	if err != nil {
		return nil, err
	}
	if doc.SessionId != sessionId {
		return nil, contract.ErrNotFound
	}
	return doc, nil
}

// History lists the stored turns for docId. A document that is absent or owned by
// another session has no history to show.
func (s *chatService) History(ctx context.Context, sessionId, docId string) ([]*dto.ChatTurnResponse, error) {
	_, err := s.lookupDocument(ctx, sessionId, docId)
	if errors.Is(err, contract.ErrNotFound) {
		return []*dto.ChatTurnResponse{}, nil
	}
	if err != nil {
		return nil, s.fail("history", err, map[string]interface{}{"session_id": sessionId, "doc_id": docId})
	}

	turns, err := s.turns.FindAll(ctx, sessionId, docId)
	if err != nil {
		return nil, s.fail("history", err, map[string]interface{}{"session_id": sessionId, "doc_id": docId})
	}

	res := make([]*dto.ChatTurnResponse, 0, len(turns))
	for _, t := range turns {
		res = append(res, &dto.ChatTurnResponse{
			Question:  t.Question,
			Answer:    t.Answer,
			CreatedAt: t.CreatedAt,
		})
	}
	return res, nil
}

func (s *chatService) fail(op string, err error, details map[string]interface{}) error {
	details["error"] = err.Error()
	s.logger.Error(pipelineModule, "Failed to process "+op, details)
	return &ProcessingError{Op: op, Err: err}
}
