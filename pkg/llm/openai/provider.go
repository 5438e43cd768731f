package openai

import (
	"context"
	"errors"
	"math"

	"pdf-chat-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

const providerName = "openai"

type OpenAIProvider struct {
	client    *goopenai.Client
	ModelName string
}

var _ llm.LLMProvider = &OpenAIProvider{}

// NewOpenAIProvider targets api.openai.com unless baseURL points at a compatible server.
func NewOpenAIProvider(apiKey, baseURL, modelName string) *OpenAIProvider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client:    goopenai.NewClientWithConfig(cfg),
		ModelName: modelName,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(opts...)

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	temperature := float32(options.Temperature)
	if temperature == 0 {
		// the request field is omitempty; this is how go-openai sends a zero temperature
		temperature = math.SmallestNonzeroFloat32
	}

	req := goopenai.ChatCompletionRequest{
		Model:       p.ModelName,
		Messages:    messages,
		Temperature: temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", llm.Failure(providerName, err)
	}
	if len(resp.Choices) == 0 {
		return "", llm.Failure(providerName, errors.New("no choices in response"))
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: goopenai.ChatMessageRoleUser, Content: prompt}}, opts...)
}
