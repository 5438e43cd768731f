package contract

import (
	"context"

	"pdf-chat-be/internal/entity"
)

// ChatTurnRepository keeps the conversation history of a (session, document) pair.
// FindAll returns turns in append order and an empty slice when there are none.
type ChatTurnRepository interface {
	FindAll(ctx context.Context, sessionId, docId string) ([]*entity.ChatTurn, error)
	Append(ctx context.Context, sessionId, docId string, turn *entity.ChatTurn) error
}
