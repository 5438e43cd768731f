package response

import (
	"context"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/pkg/llm"
	"pdf-chat-be/pkg/rag/prompt"
)

const moduleName = "GENERATION"

// Generator produces answers and summaries with one non-streaming completion each.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewGenerator(llmProvider llm.LLMProvider, logger logger.ILogger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Answer grounds the reply in the retrieved chunks and the conversation so far.
// The model output is returned verbatim.
func (g *Generator) Answer(ctx context.Context, query string, chunks []*entity.ChunkEmbedding, history []*entity.ChatTurn) (string, error) {
	promptText := prompt.NewContextualBuilder(query, chunks, history).Build()

	answer, err := g.llmProvider.Generate(ctx, promptText, llm.WithTemperature(0))
	if err != nil {
		g.logger.Error(moduleName, "LLM generation failed", map[string]interface{}{"error": err.Error()})
		return "", err
	}

	g.logger.Debug(moduleName, "Answer generated", map[string]interface{}{
		"chunks":  len(chunks),
		"history": len(history),
	})
	return answer, nil
}

// Summarize sends the entire document in one prompt. Documents larger than the
// model's context window fail with llm.ErrProviderFailure.
func (g *Generator) Summarize(ctx context.Context, fullText string) (string, error) {
	summary, err := g.llmProvider.Generate(ctx, prompt.BuildSummary(fullText), llm.WithTemperature(0))
	if err != nil {
		g.logger.Error(moduleName, "Summary generation failed", map[string]interface{}{
			"error":     err.Error(),
			"text_size": len(fullText),
		})
		return "", err
	}
	return summary, nil
}
