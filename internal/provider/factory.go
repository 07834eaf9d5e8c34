package provider

import (
	"fmt"

	"github.com/stupiduntilnot/tagclaw/internal/config"
	"github.com/stupiduntilnot/tagclaw/internal/dummy"
	"github.com/stupiduntilnot/tagclaw/internal/model"
)

// New selects the model provider named by the configuration.
func New(cfg *config.Config) (model.Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.AnthropicModel)
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	case "dummy":
		return dummy.NewProvider("dummy", cfg.DummyScript)
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
}
