package router

import (
	"context"

	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/pkg/llm"
)

const moduleName = "ROUTER"

// SystemPrompt is the fixed routing instruction. Specific, detail-level and
// history questions go to q_and_a; broad overview requests go to summary.
const SystemPrompt = `You are an expert at routing user queries to the most relevant task/action.

You will be given a user query and must route it to one of these tasks:
- "q_and_a": For specific questions about the paper's content or chat history
- "summary": For broad, overview-type questions about the paper's main points

Routing Rules:
1. Use "q_and_a" when:
   - The user asks specific questions about details in the paper
   - The user asks about previous chat interactions or history
   - The user wants to fact-check or verify specific information
   - The user asks about specific sections, figures, or citations

2. Use "summary" when:
   - The user asks about the paper's main findings or conclusions
   - The user wants an overview of the paper's key points
   - The user asks about the general topic or theme
   - The user wants to understand the paper's high-level implications

Always choose the most specific and relevant task. If in doubt between summary and q_and_a, prefer q_and_a for more accurate responses.

Respond with a JSON object of the form {"task": "<q_and_a|summary>"} and nothing else.`

// Router classifies a query with a single call to the generation model.
type Router struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewRouter(llmProvider llm.LLMProvider, logger logger.ILogger) *Router {
	return &Router{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify routes query to a Task. Provider errors are returned as-is; an unknown
// answer yields ErrInvalidTask. There are no retries.
func (r *Router) Classify(ctx context.Context, query string) (Task, error) {
	messages := []llm.Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: query},
	}

	reply, err := r.llmProvider.Chat(ctx, messages, llm.WithTemperature(0))
	if err != nil {
		r.logger.Error(moduleName, "Routing call failed", map[string]interface{}{"error": err.Error()})
		return "", err
	}

	task, err := Parse(reply)
	if err != nil {
		r.logger.Warn(moduleName, "Routing model returned an unknown task", map[string]interface{}{
			"reply": truncateLog(reply, 80),
		})
		return "", err
	}

	r.logger.Debug(moduleName, "Query routed", map[string]interface{}{
		"task":  string(task),
		"query": truncateLog(query, 50),
	})
	return task, nil
}
