package model

import (
	"time"

	"gorm.io/datatypes"
)

type Document struct {
	Id        string            `gorm:"type:varchar(64);primaryKey"`
	SessionId string            `gorm:"type:varchar(128);not null;index"`
	Filename  string            `gorm:"type:varchar(255)"`
	FullText  string            `gorm:"type:text"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
