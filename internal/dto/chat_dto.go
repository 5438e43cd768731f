package dto

import "time"

// HistoryTurn is a caller-supplied conversation turn.
type HistoryTurn struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"`
}

type QueryRequest struct {
	Query     string        `json:"query" validate:"required"`
	SessionId string        `json:"session_id" validate:"required,max=128"`
	DocId     string        `json:"doc_id" validate:"max=64"`
	History   []HistoryTurn `json:"history,omitempty" validate:"omitempty,dive"`
}

type QueryResponse struct {
	Message string `json:"message"`
}

type UploadResponse struct {
	DocId     string `json:"doc_id"`
	SessionId string `json:"session_id"`
	Filename  string `json:"filename"`
	Chunks    int    `json:"chunks"`
	Message   string `json:"message"`
}

type HistoryRequest struct {
	SessionId string `query:"session_id" validate:"required,max=128"`
	DocId     string `query:"doc_id" validate:"required,max=64"`
}

type ChatTurnResponse struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
