package memory

import (
	"context"
	"strconv"
	"sync"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type ChatTurnRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewChatTurnRepository() contract.ChatTurnRepository {
	return &ChatTurnRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// historyKey length-prefixes sessionId so no two (session, doc) pairs share a key.
func historyKey(sessionId, docId string) string {
	return strconv.Itoa(len(sessionId)) + ":" + sessionId + docId
}

func (r *ChatTurnRepository) FindAll(ctx context.Context, sessionId, docId string) ([]*entity.ChatTurn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(historyKey(sessionId, docId))
	if !found {
		return []*entity.ChatTurn{}, nil
	}
	turns := x.([]entity.ChatTurn)
	out := make([]*entity.ChatTurn, len(turns))
	for i := range turns {
		t := turns[i]
		out[i] = &t
	}
	return out, nil
}

func (r *ChatTurnRepository) Append(ctx context.Context, sessionId, docId string, turn *entity.ChatTurn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := historyKey(sessionId, docId)
	var turns []entity.ChatTurn
	if x, found := r.cache.Get(key); found {
		turns = x.([]entity.ChatTurn)
	}
	// Copy so readers holding the previous slice never observe the append.
	next := make([]entity.ChatTurn, len(turns), len(turns)+1)
	copy(next, turns)
	next = append(next, *turn)
	r.cache.Set(key, next, cache.NoExpiration)
	return nil
}
