package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		options := raw["options"].(map[string]any)
		// an explicit zero temperature must reach the server
		assert.Contains(t, options, "temperature")
		assert.EqualValues(t, 0, options["temperature"])
		assert.Equal(t, "llama3", raw["model"])
		assert.Equal(t, false, raw["stream"])
		assert.Equal(t, map[string]any{"temperature": float64(0)}, options)

		// fields the provider does not read are ignored
		w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"q_and_a"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	out, err := p.Generate(context.Background(), "classify this", llm.WithTemperature(0))
	require.NoError(t, err)
	assert.Equal(t, "q_and_a", out)
}

func TestOllamaProvider_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"context length exceeded"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, llm.ErrProviderFailure)
}
