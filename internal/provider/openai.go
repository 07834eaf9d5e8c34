package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/stupiduntilnot/tagclaw/internal/chat"
	"github.com/stupiduntilnot/tagclaw/internal/model"
)

// OpenAI adapts the official OpenAI SDK to the Provider interface.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI provider. baseURL may be empty to use the SDK
// default endpoint.
func NewOpenAI(apiKey, baseURL, modelName string) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if strings.TrimSpace(modelName) == "" {
		return nil, fmt.Errorf("openai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAI{client: openai.NewClient(opts...), model: modelName}, nil
}

func (p *OpenAI) ChatCompletion(ctx context.Context, messages []chat.Message) (model.CompletionResponse, error) {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			converted = append(converted, openai.SystemMessage(msg.Content))
		case chat.RoleAssistant:
			converted = append(converted, openai.AssistantMessage(msg.Content))
		default:
			converted = append(converted, openai.UserMessage(msg.Content))
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: converted,
	})
	if err != nil {
		return model.CompletionResponse{}, fmt.Errorf("openai request failed: %w", err)
	}

	result := model.CompletionResponse{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}
	if len(resp.Choices) == 0 {
		result.Content = "(empty model response)"
		return result, nil
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		content = "(empty model response)"
	}
	result.Content = content
	return result, nil
}
