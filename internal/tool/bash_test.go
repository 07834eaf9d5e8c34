package tool

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestBash_ExecuteSuccess(t *testing.T) {
	base := t.TempDir()
	policy, err := NewPolicy(base, "")
	if err != nil {
		t.Fatalf("policy err: %v", err)
	}
	bashTool := NewBash(policy, base, 5*time.Second, Limits{MaxLines: 100, MaxBytes: 4096})

	res, execErr := bashTool.Execute(context.Background(), map[string]string{
		"command": "echo hello-tagclaw",
	})
	if execErr != nil {
		t.Fatalf("exec err: %v", execErr)
	}
	if !res.OK {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(res.ForModel, "exit_code: 0") || !strings.Contains(res.ForModel, "hello-tagclaw") {
		t.Fatalf("unexpected output:\n%s", res.ForModel)
	}
}

func TestBash_NonZeroExit(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	bashTool := NewBash(policy, base, 5*time.Second, Limits{})

	res, err := bashTool.Execute(context.Background(), map[string]string{"command": "exit 3"})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if res.OK {
		t.Fatal("expected OK=false")
	}
	if !strings.Contains(res.ForModel, "exit_code: 3") {
		t.Fatalf("unexpected output:\n%s", res.ForModel)
	}
}

func TestBash_DeniedByPolicy(t *testing.T) {
	base := t.TempDir()
	policy, err := NewPolicy(base, "rm -rf")
	if err != nil {
		t.Fatalf("policy err: %v", err)
	}
	bashTool := NewBash(policy, base, time.Second, Limits{})

	_, execErr := bashTool.Execute(context.Background(), map[string]string{
		"command": "rm -rf /",
	})
	if execErr == nil {
		t.Fatal("expected policy denial")
	}
	if !strings.Contains(execErr.Error(), "denied by policy") {
		t.Fatalf("unexpected err: %v", execErr)
	}
}

func TestBash_Timeout(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	bashTool := NewBash(policy, base, 100*time.Millisecond, Limits{})

	start := time.Now()
	_, err := bashTool.Execute(context.Background(), map[string]string{"command": "sleep 5"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 3*time.Second {
		t.Fatal("timeout was not enforced")
	}
}

func TestBash_MissingCommand(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	bashTool := NewBash(policy, base, time.Second, Limits{})

	_, err := bashTool.Execute(context.Background(), map[string]string{})
	if err == nil || !strings.Contains(err.Error(), "bash.command is required") {
		t.Fatalf("unexpected err: %v", err)
	}
}
