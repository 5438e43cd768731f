package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrProviderFailure marks any failure of the text-generation backend: transport errors,
// non-2xx responses, empty completions or prompts exceeding the context window.
var ErrProviderFailure = errors.New("llm provider failure")

// Failure wraps err so callers can match it with errors.Is(err, ErrProviderFailure).
func Failure(provider string, err error) error {
	return fmt.Errorf("%s: %w: %v", provider, ErrProviderFailure, err)
}

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option sets a per-call generation parameter.
type Option func(*Options)

type Options struct {
	Temperature float64
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

// DefaultTemperature applies when no WithTemperature option is passed.
const DefaultTemperature = 0.7

// ApplyOptions resolves opts over the defaults.
func ApplyOptions(opts ...Option) *Options {
	options := &Options{Temperature: DefaultTemperature}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
