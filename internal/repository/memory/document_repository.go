package memory

import (
	"context"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type DocumentRepository struct {
	cache *cache.Cache
}

func NewDocumentRepository() contract.DocumentRepository {
	// Documents live for the lifetime of the process.
	c := cache.New(cache.NoExpiration, 0)
	return &DocumentRepository{
		cache: c,
	}
}

func (r *DocumentRepository) Put(ctx context.Context, document *entity.Document) error {
	stored := *document
	r.cache.Set(document.Id, &stored, cache.NoExpiration)
	return nil
}

func (r *DocumentRepository) Get(ctx context.Context, docId string) (*entity.Document, error) {
	if x, found := r.cache.Get(docId); found {
		doc := *x.(*entity.Document)
		return &doc, nil
	}
	return nil, contract.ErrNotFound
}
