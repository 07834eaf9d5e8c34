package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/stupiduntilnot/tagclaw/internal/agent"
	"github.com/stupiduntilnot/tagclaw/internal/config"
	"github.com/stupiduntilnot/tagclaw/internal/control"
	"github.com/stupiduntilnot/tagclaw/internal/provider"
	toolpkg "github.com/stupiduntilnot/tagclaw/internal/tool"
	"github.com/stupiduntilnot/tagclaw/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[tagclaw] %v", err)
	}

	modelProvider, err := provider.New(&cfg)
	if err != nil {
		log.Fatalf("[tagclaw] failed to init model provider: %v", err)
	}

	toolPolicy, err := toolpkg.NewPolicy(cfg.AllowedRoots, cfg.BashDenylist)
	if err != nil {
		log.Fatalf("[tagclaw] invalid tool policy: %v", err)
	}
	registry, err := buildRegistry(&cfg, toolPolicy)
	if err != nil {
		log.Fatalf("[tagclaw] %v", err)
	}

	policy := control.Policy{
		MaxTurns:    cfg.MaxTurns,
		MaxWallTime: time.Duration(cfg.MaxWallTimeSeconds) * time.Second,
		MaxTokens:   cfg.MaxTokens,
	}

	printer := ui.NewPrinter(os.Stdout, terminalWidth())
	a := agent.New(agent.Options{
		Provider:      modelProvider,
		Registry:      registry,
		Runner:        toolpkg.NewRunner(registry),
		Policy:        policy,
		SystemPrompt:  cfg.SystemPrompt,
		HistoryWindow: cfg.HistoryWindow,
		Printer:       printer,
		Spinner:       ui.NewSpinner(os.Stdout),
		Debug:         cfg.Debug,
	})
	if cfg.Debug {
		log.Printf("[tagclaw] session=%s provider=%s workspace=%s", a.ID(), cfg.Provider, cfg.WorkspaceDir)
	}

	runREPL(a, printer)
}

// runREPL reads input lines until "exit" or EOF.
func runREPL(a *agent.Agent, printer *ui.Printer) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for {
		printer.Prompt()
		if !scanner.Scan() {
			fmt.Fprintln(printer.W)
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" {
			return
		}
		if err := a.RunTurn(context.Background(), input); err != nil {
			var limitErr *control.LimitError
			if errors.As(err, &limitErr) {
				printer.Error(fmt.Errorf("session limit reached (%s); the conversation is preserved", limitErr.Type))
				continue
			}
			printer.Error(err)
		}
	}
}

func buildRegistry(cfg *config.Config, toolPolicy *toolpkg.Policy) (*toolpkg.Registry, error) {
	timeout := time.Duration(cfg.ToolTimeoutSeconds) * time.Second
	limits := toolpkg.Limits{MaxLines: cfg.ToolMaxOutputLines, MaxBytes: cfg.ToolMaxOutputBytes}
	base := cfg.WorkspaceDir

	registry := toolpkg.NewRegistry()
	tools := []toolpkg.Tool{
		toolpkg.NewReadFile(toolPolicy, base, limits),
		toolpkg.NewWriteFile(toolPolicy, base, limits),
		toolpkg.NewBash(toolPolicy, base, timeout, limits),
		toolpkg.NewGrep(toolPolicy, base, timeout, limits),
		toolpkg.NewGlob(toolPolicy, base, timeout, limits),
		toolpkg.NewLS(toolPolicy, base, limits),
		toolpkg.NewWebFetch(timeout, limits),
		toolpkg.NewGetTweet(timeout, limits),
	}
	for _, t := range tools {
		if err := registry.Register(t); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", t.Name(), err)
		}
	}
	return registry, nil
}

func terminalWidth() int {
	if v := os.Getenv("COLUMNS"); v != "" {
		var width int
		if _, err := fmt.Sscanf(v, "%d", &width); err == nil && width > 0 {
			return width
		}
	}
	return 100
}
