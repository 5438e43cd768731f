package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPDF(t *testing.T, pages ...string) string {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		doc.Cell(40, 10, text)
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	path := filepath.Join(t.TempDir(), "sample.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestPDFSplitter_Split(t *testing.T) {
	path := writeTestPDF(t, "Hello World", "Second page")

	result, err := NewPDFSplitter(DefaultChunkSize, DefaultChunkOverlap).Split(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, result.Pages, 2)
	assert.Contains(t, result.FullText, "Hello World")
	assert.Contains(t, result.FullText, "Second page")
	require.Len(t, result.Chunks, 2)
	assert.Equal(t, 1, result.Chunks[0].PageNumber)
	assert.Equal(t, 2, result.Chunks[1].PageNumber)
	assert.Equal(t, 1, result.Chunks[1].ChunkIndex)
}

func TestPDFSplitter_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a pdf"), 0o600))

	_, err := NewPDFSplitter(0, 0).Split(context.Background(), path)
	assert.Error(t, err)
}

func TestSplitPages(t *testing.T) {
	s := NewPDFSplitter(20, 0)

	result, err := s.splitPages([]Page{
		{Number: 1, Text: "line one\nline two\nline three"},
		{Number: 2, Text: strings.Repeat("x", 5)},
	})
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\nline three\nxxxxx", result.FullText)

	var pageOne int
	for _, c := range result.Chunks {
		assert.LessOrEqual(t, len(c.Content), 20)
		if c.PageNumber == 1 {
			pageOne++
		}
	}
	assert.Equal(t, 2, pageOne)

	_, err = s.splitPages([]Page{{Number: 1, Text: "  \n "}})
	assert.ErrorIs(t, err, ErrNoText)
}
