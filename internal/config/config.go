package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultSystemPrompt = "You are tagclaw, a coding assistant running in the user's terminal. " +
	"Be concise and accurate; prefer showing runnable steps over prose."

// Config holds all settings for the tagclaw process.
type Config struct {
	Provider string

	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	SystemPrompt string
	WorkspaceDir string

	AllowedRoots string
	BashDenylist string

	ToolTimeoutSeconds int
	ToolMaxOutputLines int
	ToolMaxOutputBytes int

	HistoryWindow      int
	MaxTurns           int
	MaxWallTimeSeconds int
	MaxTokens          int

	DummyScript string
	Debug       bool
}

// fileConfig mirrors the optional TOML file. Only set fields override the
// built-in defaults; environment variables override both.
type fileConfig struct {
	Provider *string `toml:"provider"`

	AnthropicBaseURL *string `toml:"anthropic_base_url"`
	AnthropicModel   *string `toml:"anthropic_model"`
	OpenAIBaseURL    *string `toml:"openai_base_url"`
	OpenAIModel      *string `toml:"openai_model"`

	SystemPrompt *string `toml:"system_prompt"`
	WorkspaceDir *string `toml:"workspace_dir"`

	AllowedRoots *string `toml:"allowed_roots"`
	BashDenylist *string `toml:"bash_denylist"`

	ToolTimeoutSeconds *int `toml:"tool_timeout_seconds"`
	ToolMaxOutputLines *int `toml:"tool_max_output_lines"`
	ToolMaxOutputBytes *int `toml:"tool_max_output_bytes"`

	HistoryWindow      *int `toml:"history_window"`
	MaxTurns           *int `toml:"max_turns"`
	MaxWallTimeSeconds *int `toml:"max_wall_time_seconds"`
	MaxTokens          *int `toml:"max_tokens"`

	Debug *bool `toml:"debug"`
}

// Load builds the configuration: defaults, then the optional TOML file,
// then TAGCLAW_* environment variables. API keys come from the environment
// only and are required for the selected provider.
func Load() (Config, error) {
	cfg := defaults()

	path := configFilePath()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return Config{}, fmt.Errorf("ANTHROPIC_API_KEY is required in environment when provider=anthropic")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return Config{}, fmt.Errorf("OPENAI_API_KEY is required in environment when provider=openai")
		}
	case "dummy":
	default:
		return Config{}, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
	return cfg, nil
}

func defaults() Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Config{
		Provider:           "anthropic",
		AnthropicModel:     "claude-sonnet-4-5-20250929",
		OpenAIModel:        "gpt-4o-mini",
		SystemPrompt:       defaultSystemPrompt,
		WorkspaceDir:       cwd,
		AllowedRoots:       cwd,
		BashDenylist:       "",
		ToolTimeoutSeconds: 30,
		ToolMaxOutputLines: 2000,
		ToolMaxOutputBytes: 51200,
		HistoryWindow:      40,
		MaxTurns:           16,
		MaxWallTimeSeconds: 600,
		MaxTokens:          200000,
		DummyScript:        "ok",
	}
}

// configFilePath prefers TAGCLAW_CONFIG, then ~/.config/tagclaw/config.toml.
// Returns "" when no file exists.
func configFilePath() string {
	if p := os.Getenv("TAGCLAW_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "tagclaw", "config.toml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	setString(&cfg.Provider, fc.Provider)
	setString(&cfg.AnthropicBaseURL, fc.AnthropicBaseURL)
	setString(&cfg.AnthropicModel, fc.AnthropicModel)
	setString(&cfg.OpenAIBaseURL, fc.OpenAIBaseURL)
	setString(&cfg.OpenAIModel, fc.OpenAIModel)
	setString(&cfg.SystemPrompt, fc.SystemPrompt)
	setString(&cfg.WorkspaceDir, fc.WorkspaceDir)
	setString(&cfg.AllowedRoots, fc.AllowedRoots)
	setString(&cfg.BashDenylist, fc.BashDenylist)
	setInt(&cfg.ToolTimeoutSeconds, fc.ToolTimeoutSeconds)
	setInt(&cfg.ToolMaxOutputLines, fc.ToolMaxOutputLines)
	setInt(&cfg.ToolMaxOutputBytes, fc.ToolMaxOutputBytes)
	setInt(&cfg.HistoryWindow, fc.HistoryWindow)
	setInt(&cfg.MaxTurns, fc.MaxTurns)
	setInt(&cfg.MaxWallTimeSeconds, fc.MaxWallTimeSeconds)
	setInt(&cfg.MaxTokens, fc.MaxTokens)
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Provider = envOrDefault("TAGCLAW_PROVIDER", cfg.Provider)

	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.AnthropicBaseURL = envOrDefault("TAGCLAW_ANTHROPIC_BASE_URL", cfg.AnthropicBaseURL)
	cfg.AnthropicModel = envOrDefault("TAGCLAW_ANTHROPIC_MODEL", cfg.AnthropicModel)

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIBaseURL = envOrDefault("TAGCLAW_OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.OpenAIModel = envOrDefault("TAGCLAW_OPENAI_MODEL", cfg.OpenAIModel)

	cfg.SystemPrompt = envOrDefault("TAGCLAW_SYSTEM_PROMPT", cfg.SystemPrompt)
	cfg.WorkspaceDir = envOrDefault("TAGCLAW_WORKSPACE_DIR", cfg.WorkspaceDir)
	cfg.AllowedRoots = envOrDefault("TAGCLAW_ALLOWED_ROOTS", cfg.AllowedRoots)
	cfg.BashDenylist = envOrDefault("TAGCLAW_BASH_DENYLIST", cfg.BashDenylist)

	cfg.ToolTimeoutSeconds = envIntOrDefault("TAGCLAW_TOOL_TIMEOUT_SECONDS", cfg.ToolTimeoutSeconds)
	cfg.ToolMaxOutputLines = envIntOrDefault("TAGCLAW_TOOL_MAX_OUTPUT_LINES", cfg.ToolMaxOutputLines)
	cfg.ToolMaxOutputBytes = envIntOrDefault("TAGCLAW_TOOL_MAX_OUTPUT_BYTES", cfg.ToolMaxOutputBytes)

	cfg.HistoryWindow = envIntOrDefault("TAGCLAW_HISTORY_WINDOW", cfg.HistoryWindow)
	cfg.MaxTurns = envIntOrDefault("TAGCLAW_MAX_TURNS", cfg.MaxTurns)
	cfg.MaxWallTimeSeconds = envIntOrDefault("TAGCLAW_MAX_WALL_TIME_SECONDS", cfg.MaxWallTimeSeconds)
	cfg.MaxTokens = envIntOrDefault("TAGCLAW_MAX_TOKENS", cfg.MaxTokens)

	cfg.DummyScript = envOrDefault("TAGCLAW_DUMMY_SCRIPT", cfg.DummyScript)
	cfg.Debug = envBoolOrDefault("TAGCLAW_DEBUG", cfg.Debug)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolOrDefault(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "1" || strings.EqualFold(v, "true")
}
