package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/pkg/utils"

	"github.com/ledongthuc/pdf"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 150
	DefaultSeparator    = "\n"
)

// ErrNoText is returned for documents without any extractable text (e.g. scanned images).
var ErrNoText = errors.New("no text content extracted from document")

type Page struct {
	Number int
	Text   string
}

// SplitResult is the extracted text of one document.
type SplitResult struct {
	Pages    []Page
	FullText string
	Chunks   []entity.Chunk
}

// Splitter turns a stored document into full text and ordered chunks.
type Splitter interface {
	Split(ctx context.Context, filePath string) (*SplitResult, error)
}

type PDFSplitter struct {
	chunkSize int
	overlap   int
	separator string
}

func NewPDFSplitter(chunkSize, overlap int) *PDFSplitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	return &PDFSplitter{
		chunkSize: chunkSize,
		overlap:   overlap,
		separator: DefaultSeparator,
	}
}

func (s *PDFSplitter) Split(ctx context.Context, filePath string) (*SplitResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	pages, err := extractPages(file, info.Size())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.splitPages(pages)
}

// splitPages chunks each page on its own so every chunk carries a single page number.
func (s *PDFSplitter) splitPages(pages []Page) (*SplitResult, error) {
	texts := make([]string, 0, len(pages))
	var chunks []entity.Chunk
	for _, p := range pages {
		texts = append(texts, p.Text)
		for _, c := range utils.SplitText(p.Text, s.chunkSize, s.overlap, s.separator) {
			chunks = append(chunks, entity.Chunk{
				Content:    c,
				ChunkIndex: len(chunks),
				PageNumber: p.Number,
			})
		}
	}

	if len(chunks) == 0 {
		return nil, ErrNoText
	}

	return &SplitResult{
		Pages:    pages,
		FullText: strings.Join(texts, "\n"),
		Chunks:   chunks,
	}, nil
}

func extractPages(r io.ReaderAt, size int64) (pages []Page, err error) {
	// the parser panics on some malformed files
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, Page{Number: i, Text: text})
	}
	return pages, nil
}
