package embedding

import (
	"context"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// HashProvider is an offline embedder using signed feature hashing of word tokens.
// Texts sharing words land close together; it needs no network and is deterministic.
type HashProvider struct {
	dimensions int
}

func NewHashProvider(dimensions int) EmbeddingProvider {
	if dimensions <= 0 {
		dimensions = 256
	}
	return &HashProvider{dimensions: dimensions}
}

func (p *HashProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	values := make([]float32, p.dimensions)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, tok := range tokens {
		// Sum64 on a byte slice reads through encoding/binary only, so it is clean under -race checkptr.
		h := xxhash.Sum64([]byte(tok))
		idx := int(h % uint64(p.dimensions))
		if h&(1<<63) != 0 {
			values[idx]--
		} else {
			values[idx]++
		}
	}
	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizeVector(values),
		},
	}, nil
}
