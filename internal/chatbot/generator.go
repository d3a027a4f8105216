package chatbot

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Generator is the narrow contract the answering session requires from a
// generative text backend: one formatted prompt in, one completion out.
// No structured output, no function calling, no multi-turn state beyond what
// is inlined in the prompt. Implementations must be safe for concurrent use.
type Generator interface {
	// Generate produces a single text completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelGenerator adapts an Eino chat model to the Generator contract by
// wrapping the prompt in a single user message.
type ModelGenerator struct {
	// model is the chat model constructed by the provider factory.
	model model.BaseChatModel
}

// NewModelGenerator constructs a ModelGenerator over the given chat model.
func NewModelGenerator(m model.BaseChatModel) (*ModelGenerator, error) {
	if m == nil {
		return nil, fmt.Errorf("chatbot: chat model must not be nil")
	}
	return &ModelGenerator{model: m}, nil
}

// Generate sends the prompt as one user message and returns the completion text.
func (g *ModelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", fmt.Errorf("chatbot: generate failed: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("chatbot: generator returned nil response")
	}
	return resp.Content, nil
}
