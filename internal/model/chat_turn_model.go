package model

import "time"

type ChatTurn struct {
	Id        uint64    `gorm:"primaryKey;autoIncrement"` // append order
	SessionId string    `gorm:"type:varchar(128);not null;index:idx_turn_session_doc"`
	DocId     string    `gorm:"type:varchar(64);not null;index:idx_turn_session_doc"`
	Question  string    `gorm:"type:text"`
	Answer    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
