package main

import (
	"reflect"
	"testing"

	"github.com/stupiduntilnot/tagclaw/internal/config"
	toolpkg "github.com/stupiduntilnot/tagclaw/internal/tool"
)

func TestBuildRegistry_Order(t *testing.T) {
	base := t.TempDir()
	policy, err := toolpkg.NewPolicy(base, "")
	if err != nil {
		t.Fatalf("policy err: %v", err)
	}
	cfg := &config.Config{
		WorkspaceDir:       base,
		ToolTimeoutSeconds: 30,
		ToolMaxOutputLines: 2000,
		ToolMaxOutputBytes: 51200,
	}

	registry, err := buildRegistry(cfg, policy)
	if err != nil {
		t.Fatalf("buildRegistry err: %v", err)
	}

	want := []string{"readfile", "writefile", "bash", "grep", "glob", "ls", "webfetch", "get_tweet"}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("registration order changed: got %v want %v", got, want)
	}
}

func TestTerminalWidth(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	if got := terminalWidth(); got != 132 {
		t.Fatalf("terminalWidth = %d", got)
	}
	t.Setenv("COLUMNS", "garbage")
	if got := terminalWidth(); got != 100 {
		t.Fatalf("terminalWidth fallback = %d", got)
	}
}
