package implementation

import (
	"context"
	"errors"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/mapper"
	"pdf-chat-be/internal/model"
	"pdf-chat-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Put(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(m).Error
	if err != nil {
		return contract.Unavailable("put document", err)
	}
	return nil
}

func (r *DocumentRepositoryImpl) Get(ctx context.Context, docId string) (*entity.Document, error) {
	var m model.Document
	if err := r.db.WithContext(ctx).Where("id = ?", docId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contract.ErrNotFound
		}
		return nil, contract.Unavailable("get document", err)
	}
	return r.mapper.ToEntity(&m), nil
}
