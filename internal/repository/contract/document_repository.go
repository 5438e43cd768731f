package contract

import (
	"context"

	"pdf-chat-be/internal/entity"
)

// DocumentRepository persists the full text of uploaded documents.
// Put with an existing Id overwrites the previous entry.
type DocumentRepository interface {
	Put(ctx context.Context, document *entity.Document) error
	// Get returns ErrNotFound when no document exists for docId.
	Get(ctx context.Context, docId string) (*entity.Document, error)
}
