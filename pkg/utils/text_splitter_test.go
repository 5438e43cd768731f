package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      []string
	}{
		{
			name:      "short text stays whole",
			text:      "hello world",
			chunkSize: 100,
			overlap:   10,
			want:      []string{"hello world"},
		},
		{
			name:      "merges lines up to chunk size",
			text:      "a\nb\nc",
			chunkSize: 3,
			overlap:   0,
			want:      []string{"a\nb", "c"},
		},
		{
			name:      "carries overlap into next chunk",
			text:      "a\nb\nc",
			chunkSize: 3,
			overlap:   1,
			want:      []string{"a\nb", "b\nc"},
		},
		{
			name:      "skips blank lines",
			text:      "a\n\n\n   \nb",
			chunkSize: 10,
			overlap:   0,
			want:      []string{"a\nb"},
		},
		{
			name:      "empty text yields no chunks",
			text:      "  \n ",
			chunkSize: 10,
			overlap:   2,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.chunkSize, tt.overlap, "\n")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTextLongLineFallsBackToRuneWindow(t *testing.T) {
	line := strings.Repeat("é", 25)

	chunks := SplitText(line, 10, 2, "\n")

	assert.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 10)
	}
	assert.True(t, strings.HasPrefix(line, chunks[0]))
}

func TestTopKIndices(t *testing.T) {
	scores := []float64{0.1, 0.9, 0.5, 0.9}

	assert.Equal(t, []int{1, 3}, TopKIndices(scores, 2))
	assert.Equal(t, []int{1, 3, 2, 0}, TopKIndices(scores, 10))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}
