package tool

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFile_ExecuteSuccess(t *testing.T) {
	base := t.TempDir()
	p := filepath.Join(base, "a.txt")
	if err := os.WriteFile(p, []byte("line1\nline2\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	policy, err := NewPolicy(base, "")
	if err != nil {
		t.Fatalf("policy err: %v", err)
	}
	readTool := NewReadFile(policy, base, Limits{MaxLines: 100, MaxBytes: 4096})

	res, execErr := readTool.Execute(context.Background(), map[string]string{"file": "a.txt"})
	if execErr != nil {
		t.Fatalf("exec err: %v", execErr)
	}
	if !res.OK {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.ForModel != "line1\nline2\n" {
		t.Fatalf("unexpected content: %q", res.ForModel)
	}
	if !strings.Contains(res.ForUser, "a.txt") {
		t.Fatalf("unexpected user summary: %q", res.ForUser)
	}
}

func TestReadFile_Truncation(t *testing.T) {
	base := t.TempDir()
	p := filepath.Join(base, "big.txt")
	if err := os.WriteFile(p, []byte(strings.Repeat("x", 200)), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	policy, _ := NewPolicy(base, "")
	readTool := NewReadFile(policy, base, Limits{MaxLines: 100, MaxBytes: 50})

	res, err := readTool.Execute(context.Background(), map[string]string{"file": "big.txt"})
	if err != nil {
		t.Fatalf("exec err: %v", err)
	}
	if len(res.ForModel) != 50 || !res.TruncatedBytes {
		t.Fatalf("expected byte truncation, got len=%d flags=%v", len(res.ForModel), res.TruncatedBytes)
	}
}

func TestReadFile_OutsideAllowlist(t *testing.T) {
	base := t.TempDir()
	other := filepath.Join(t.TempDir(), "x.txt")
	if err := os.WriteFile(other, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	policy, _ := NewPolicy(base, "")
	readTool := NewReadFile(policy, base, Limits{})

	_, execErr := readTool.Execute(context.Background(), map[string]string{"file": other})
	if execErr == nil {
		t.Fatal("expected allowlist error")
	}
	if !strings.Contains(execErr.Error(), "outside allowlist") {
		t.Fatalf("unexpected err: %v", execErr)
	}
}

func TestReadFile_MissingFileAttr(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	readTool := NewReadFile(policy, base, Limits{})

	_, err := readTool.Execute(context.Background(), map[string]string{})
	if err == nil || !strings.Contains(err.Error(), "readfile.file is required") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestReadFile_MissingFileOnDisk(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	readTool := NewReadFile(policy, base, Limits{})

	res, err := readTool.Execute(context.Background(), map[string]string{"file": "nope.txt"})
	if err == nil {
		t.Fatal("expected read error")
	}
	// The error text doubles as the model-facing output.
	if res.ForModel == "" {
		t.Fatal("expected error text in ForModel")
	}
}
