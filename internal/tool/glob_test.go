package tool

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGlob_ExecuteSuccess(t *testing.T) {
	base := t.TempDir()
	mustWrite := func(rel string) {
		t.Helper()
		p := filepath.Join(base, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(p, []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	mustWrite("main.go")
	mustWrite(filepath.Join("sub", "util.go"))
	mustWrite("readme.md")

	policy, err := NewPolicy(base, "")
	if err != nil {
		t.Fatalf("policy err: %v", err)
	}
	globTool := NewGlob(policy, base, 5*time.Second, Limits{MaxLines: 100, MaxBytes: 4096})

	res, execErr := globTool.Execute(context.Background(), map[string]string{
		"pattern": "*.go",
		"dir":     ".",
	})
	if execErr != nil {
		t.Fatalf("exec err: %v", execErr)
	}
	if !res.OK {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(res.ForModel, "main.go") || !strings.Contains(res.ForModel, "util.go") {
		t.Fatalf("expected go files, got:\n%s", res.ForModel)
	}
	if strings.Contains(res.ForModel, "readme.md") {
		t.Fatalf("unexpected md file in output:\n%s", res.ForModel)
	}
}

func TestGlob_NoMatches(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	globTool := NewGlob(policy, base, 5*time.Second, Limits{})

	res, err := globTool.Execute(context.Background(), map[string]string{
		"pattern": "*.zig",
		"dir":     ".",
	})
	if err != nil {
		t.Fatalf("exec err: %v", err)
	}
	if !strings.Contains(res.ForModel, "no matches") {
		t.Fatalf("expected no-matches marker, got: %q", res.ForModel)
	}
}

func TestGlob_LineTruncationIsFlagged(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"a1.go", "a2.go", "a3.go", "a4.go", "a5.go"} {
		if err := os.WriteFile(filepath.Join(base, name), []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	policy, _ := NewPolicy(base, "")
	globTool := NewGlob(policy, base, 5*time.Second, Limits{MaxLines: 2, MaxBytes: 4096})

	res, err := globTool.Execute(context.Background(), map[string]string{
		"pattern": "*.go",
		"dir":     ".",
	})
	if err != nil {
		t.Fatalf("exec err: %v", err)
	}
	if !res.TruncatedLines {
		t.Fatal("expected TruncatedLines to be set")
	}
	if got := len(strings.Split(res.ForModel, "\n")); got != 2 {
		t.Fatalf("expected 2 output lines, got %d: %q", got, res.ForModel)
	}
}

func TestGlob_ValidateInput(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	globTool := NewGlob(policy, base, time.Second, Limits{})

	_, err := globTool.Execute(context.Background(), map[string]string{"dir": "."})
	if err == nil || !strings.Contains(err.Error(), "glob.pattern is required") {
		t.Fatalf("unexpected err: %v", err)
	}
}
