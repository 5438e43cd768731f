package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path"
	"time"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/repository/contract"

	cos "github.com/tencentyun/cos-go-sdk-v5"
)

type storedDocument struct {
	Id        string    `json:"id"`
	SessionId string    `json:"session_id"`
	Filename  string    `json:"filename,omitempty"`
	FullText  string    `json:"full_text"`
	PageCount int       `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentRepository keeps one JSON object per document under {prefix}/documents/.
type DocumentRepository struct {
	client Client
	prefix string
}

func NewDocumentRepository(client Client, prefix string) contract.DocumentRepository {
	return &DocumentRepository{client: client, prefix: prefix}
}

func (r *DocumentRepository) objectName(docId string) string {
	return path.Join(r.prefix, "documents", escapeSegment(docId)+".json")
}

func (r *DocumentRepository) Put(ctx context.Context, document *entity.Document) error {
	data, err := json.Marshal(storedDocument{
		Id:        document.Id,
		SessionId: document.SessionId,
		Filename:  document.Filename,
		FullText:  document.FullText,
		PageCount: document.PageCount,
		CreatedAt: document.CreatedAt,
	})
	if err != nil {
		return err
	}
	if err := r.client.PutObject(ctx, r.objectName(document.Id), bytes.NewReader(data), "application/json"); err != nil {
		return contract.Unavailable("put document object", err)
	}
	return nil
}

func (r *DocumentRepository) Get(ctx context.Context, docId string) (*entity.Document, error) {
	body, err := r.client.GetObject(ctx, r.objectName(docId))
	if err != nil {
		if cos.IsNotFoundError(err) {
			return nil, contract.ErrNotFound
		}
		return nil, contract.Unavailable("get document object", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, contract.Unavailable("read document object", err)
	}
	var doc storedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, contract.Unavailable("decode document object", err)
	}

	return &entity.Document{
		Id:        doc.Id,
		SessionId: doc.SessionId,
		Filename:  doc.Filename,
		FullText:  doc.FullText,
		PageCount: doc.PageCount,
		CreatedAt: doc.CreatedAt,
	}, nil
}
