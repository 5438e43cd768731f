package prompt

import (
	"strings"

	"pdf-chat-be/internal/entity"
)

const NoHistory = "No previous conversation."

const ragTemplate = `Answer the question based on the following document and chat history.
If you don't know the answer, just say that you don't know, don't try to make up an answer.
If the user speaks to you as if you are a human, respond as if you are a human.
If the user asks about previous messages, use the chat history to answer the question.

Context: {context}

Chat History:
{chat_history}

Current Question: {question}`

const summaryTemplate = "Summarize this content: {context}"

// ContextualBuilder renders the retrieval-augmented answer prompt.
type ContextualBuilder struct {
	query   string
	chunks  []*entity.ChunkEmbedding
	history []*entity.ChatTurn
}

func NewContextualBuilder(query string, chunks []*entity.ChunkEmbedding, history []*entity.ChatTurn) *ContextualBuilder {
	return &ContextualBuilder{
		query:   query,
		chunks:  chunks,
		history: history,
	}
}

// Build fills the template in a single pass so placeholder-like text inside the
// document or question is never expanded.
func (b *ContextualBuilder) Build() string {
	r := strings.NewReplacer(
		"{context}", CombineChunks(b.chunks),
		"{chat_history}", FormatHistory(b.history),
		"{question}", b.query,
	)
	return r.Replace(ragTemplate)
}

// CombineChunks joins chunk texts in retrieval order separated by blank lines.
func CombineChunks(chunks []*entity.ChunkEmbedding) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, "\n\n")
}

// FormatHistory renders turns oldest first as alternating Human/Assistant lines.
func FormatHistory(history []*entity.ChatTurn) string {
	if len(history) == 0 {
		return NoHistory
	}

	lines := make([]string, 0, len(history)*2)
	for _, turn := range history {
		lines = append(lines, "Human: "+turn.Question)
		lines = append(lines, "Assistant: "+turn.Answer)
	}
	return strings.Join(lines, "\n")
}

// BuildSummary embeds the whole document text in the summary instruction.
func BuildSummary(fullText string) string {
	return strings.Replace(summaryTemplate, "{context}", fullText, 1)
}
