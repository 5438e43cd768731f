package entity

import "time"

// ChatTurn is one question/answer pair of a (session, document) conversation.
type ChatTurn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
