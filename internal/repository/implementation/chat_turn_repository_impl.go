package implementation

import (
	"context"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/mapper"
	"pdf-chat-be/internal/model"
	"pdf-chat-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ChatTurnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatTurnMapper
}

func NewChatTurnRepository(db *gorm.DB) contract.ChatTurnRepository {
	return &ChatTurnRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatTurnMapper(),
	}
}

func (r *ChatTurnRepositoryImpl) FindAll(ctx context.Context, sessionId, docId string) ([]*entity.ChatTurn, error) {
	var models []*model.ChatTurn
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND doc_id = ?", sessionId, docId).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, contract.Unavailable("find chat turns", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatTurnRepositoryImpl) Append(ctx context.Context, sessionId, docId string, turn *entity.ChatTurn) error {
	m := r.mapper.ToModel(sessionId, docId, turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return contract.Unavailable("append chat turn", err)
	}
	turn.CreatedAt = m.CreatedAt
	return nil
}
