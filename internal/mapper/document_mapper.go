package mapper

import (
	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	return &entity.Document{
		Id:        d.Id,
		SessionId: d.SessionId,
		Filename:  d.Filename,
		FullText:  d.FullText,
		PageCount: intFromJSON(d.Metadata["page_count"]),
		CreatedAt: d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:        d.Id,
		SessionId: d.SessionId,
		Filename:  d.Filename,
		FullText:  d.FullText,
		Metadata:  datatypes.JSONMap{"page_count": d.PageCount},
		CreatedAt: d.CreatedAt,
	}
}

// intFromJSON reads a number out of a jsonb map; decoded jsonb numbers are float64.
func intFromJSON(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}
