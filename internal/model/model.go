package model

import (
	"context"

	"github.com/stupiduntilnot/tagclaw/internal/chat"
)

// CompletionResponse is the common response model for model providers.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Provider is the model provider abstraction used by the agent loop.
type Provider interface {
	ChatCompletion(ctx context.Context, messages []chat.Message) (CompletionResponse, error)
}
