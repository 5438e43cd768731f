package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Task is the action a query is routed to. The string values are the wire names the
// routing model answers with.
type Task string

const (
	TaskQuestionAnswering Task = "q_and_a"
	TaskSummarization     Task = "summary"
)

// ErrInvalidTask is returned when the routing model answers with anything other than a known task.
var ErrInvalidTask = errors.New("invalid task")

type routeQuery struct {
	Task string `json:"task"`
}

// Parse extracts the task from a routing reply.
// Supports:
//   - {"task": "summary"} → structured reply, optionally inside a ```json fence
//   - summary → bare category name, quotes and trailing punctuation ignored
//
// Matching is exact after normalisation; there is no fuzzy fallback.
func Parse(reply string) (Task, error) {
	cleaned := stripCodeFence(strings.TrimSpace(reply))

	raw := cleaned
	if strings.HasPrefix(cleaned, "{") {
		var rq routeQuery
		if err := json.Unmarshal([]byte(cleaned), &rq); err != nil {
			return "", fmt.Errorf("%w: unparseable reply %q", ErrInvalidTask, truncateLog(reply, 80))
		}
		raw = rq.Task
	}

	candidate := strings.ToLower(strings.Trim(strings.TrimSpace(raw), "\"'`.!"))
	switch Task(candidate) {
	case TaskQuestionAnswering, TaskSummarization:
		return Task(candidate), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTask, truncateLog(raw, 80))
	}
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// truncateLog keeps at most maxLen runes of s so multi-byte text is never cut mid-character.
func truncateLog(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}
