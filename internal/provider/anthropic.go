package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/stupiduntilnot/tagclaw/internal/chat"
	"github.com/stupiduntilnot/tagclaw/internal/model"
)

// Anthropic adapts the official Anthropic SDK to the Provider interface.
type Anthropic struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropic creates an Anthropic provider. baseURL may be empty to use
// the SDK default endpoint.
func NewAnthropic(apiKey, baseURL, modelName string) (*Anthropic, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	if strings.TrimSpace(modelName) == "" {
		return nil, fmt.Errorf("anthropic model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)
	return &Anthropic{client: &client, model: anthropic.Model(modelName)}, nil
}

func (p *Anthropic) ChatCompletion(ctx context.Context, messages []chat.Message) (model.CompletionResponse, error) {
	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 4096,
	}

	// Anthropic takes system text as a separate parameter, not a message.
	var systemBlocks []anthropic.TextBlockParam
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: msg.Content})
		case chat.RoleAssistant:
			params.Messages = append(params.Messages,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			params.Messages = append(params.Messages,
				anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return model.CompletionResponse{}, fmt.Errorf("anthropic request failed: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}

	result := model.CompletionResponse{
		Content:      strings.TrimSpace(b.String()),
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
	}
	if result.Content == "" {
		result.Content = "(empty model response)"
	}
	return result, nil
}
