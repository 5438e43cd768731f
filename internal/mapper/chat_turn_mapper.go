package mapper

import (
	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/model"
)

type ChatTurnMapper struct{}

func NewChatTurnMapper() *ChatTurnMapper {
	return &ChatTurnMapper{}
}

func (m *ChatTurnMapper) ToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}
	return &entity.ChatTurn{
		Question:  t.Question,
		Answer:    t.Answer,
		CreatedAt: t.CreatedAt,
	}
}

func (m *ChatTurnMapper) ToModel(sessionId, docId string, t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}
	return &model.ChatTurn{
		SessionId: sessionId,
		DocId:     docId,
		Question:  t.Question,
		Answer:    t.Answer,
		CreatedAt: t.CreatedAt,
	}
}

func (m *ChatTurnMapper) ToEntities(turns []*model.ChatTurn) []*entity.ChatTurn {
	entities := make([]*entity.ChatTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
