package events

import (
	"context"
	"encoding/json"
	"time"
)

const (
	TypeDocumentIndexed = "document.indexed"
	TypeChatAnswered    = "chat.answered"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "document.indexed").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to a bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentIndexed is emitted once an upload is fully stored and indexed.
func NewDocumentIndexed(sessionId, docId, filename string, chunks int) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentIndexed,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"doc_id":     docId,
			"filename":   filename,
			"chunks":     chunks,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewChatAnswered is emitted after a query produced a reply.
func NewChatAnswered(sessionId, docId, task string) BaseEvent {
	return BaseEvent{
		Type: TypeChatAnswered,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"doc_id":     docId,
			"task":       task,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// Encode serializes any Event into the envelope used on every bus.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Decode(data []byte) (BaseEvent, error) {
	var e BaseEvent
	err := json.Unmarshal(data, &e)
	return e, err
}
