package entity

import "time"

// Document is the full extracted text of one upload. Documents are never
// mutated; a re-upload produces a new Id.
type Document struct {
	Id        string
	SessionId string
	Filename  string
	FullText  string
	PageCount int
	CreatedAt time.Time
}
