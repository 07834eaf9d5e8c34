package tool

import (
	"context"
	"strings"
	"testing"
)

func TestRunner_UnknownTool(t *testing.T) {
	r := NewRunner(NewRegistry())
	_, err := r.RunOne(context.Background(), "nope", nil)
	if err == nil {
		t.Fatal("expected unknown tool error")
	}
	if !strings.Contains(err.Error(), "unknown tool") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestRunner_EmptyName(t *testing.T) {
	r := NewRunner(NewRegistry())
	_, err := r.RunOne(context.Background(), "  ", nil)
	if err == nil {
		t.Fatal("expected empty name error")
	}
}

func TestRunner_RunsRegisteredTool(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&mockTool{name: "ok"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	r := NewRunner(reg)
	res, err := r.RunOne(context.Background(), "ok", map[string]string{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !res.OK || res.ForModel != "ok" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunner_Uninitialized(t *testing.T) {
	var r *Runner
	if _, err := r.RunOne(context.Background(), "x", nil); err == nil {
		t.Fatal("expected uninitialized runner error")
	}
}
