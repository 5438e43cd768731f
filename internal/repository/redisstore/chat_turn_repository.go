package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const historyKeyPrefix = "chat_history"

// ChatTurnRepository keeps each conversation as a Redis list; RPUSH preserves append order.
type ChatTurnRepository struct {
	client redis.UniversalClient
}

func NewChatTurnRepository(client redis.UniversalClient) contract.ChatTurnRepository {
	return &ChatTurnRepository{client: client}
}

// historyKey escapes both ids so separators inside them cannot collide with the key layout.
// The session stays inside braces as the cluster hash tag.
func historyKey(sessionId, docId string) string {
	return fmt.Sprintf("%s:{%s}:%s", historyKeyPrefix, url.PathEscape(sessionId), url.PathEscape(docId))
}

func (r *ChatTurnRepository) FindAll(ctx context.Context, sessionId, docId string) ([]*entity.ChatTurn, error) {
	raw, err := r.client.LRange(ctx, historyKey(sessionId, docId), 0, -1).Result()
	if err != nil {
		return nil, contract.Unavailable("read chat history", err)
	}

	turns := make([]*entity.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var turn entity.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, contract.Unavailable("decode chat turn", err)
		}
		turns = append(turns, &turn)
	}
	return turns, nil
}

func (r *ChatTurnRepository) Append(ctx context.Context, sessionId, docId string, turn *entity.ChatTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	if err := r.client.RPush(ctx, historyKey(sessionId, docId), data).Err(); err != nil {
		return contract.Unavailable("append chat turn", err)
	}
	return nil
}
