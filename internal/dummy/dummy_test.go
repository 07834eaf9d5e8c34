package dummy

import (
	"context"
	"testing"

	"github.com/stupiduntilnot/tagclaw/internal/chat"
)

func TestNewProvider_InvalidScript(t *testing.T) {
	_, err := NewProvider("x", "boom")
	if err == nil {
		t.Fatal("expected parse error for invalid script")
	}
}

func TestProvider_ScriptedResponses(t *testing.T) {
	p, err := NewProvider("x", "err:provider_api,msg:hello")
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.ChatCompletion(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected first call to error")
	}

	resp, err := p.ChatCompletion(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "hello" {
		t.Fatalf("expected hello, got %q", resp.Content)
	}
}

func TestProvider_RepeatsLastAction(t *testing.T) {
	p, err := NewProvider("x", "msg:one")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		resp, err := p.ChatCompletion(context.Background(), nil)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Content != "one" {
			t.Fatalf("call %d: expected one, got %q", i, resp.Content)
		}
	}
}

func TestProvider_MsgB64Action(t *testing.T) {
	p, err := NewProvider("x", "msgb64:aGVsbG8=") // "hello"
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.ChatCompletion(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "hello" {
		t.Fatalf("expected hello, got %q", resp.Content)
	}
}

func TestProvider_CanceledContext(t *testing.T) {
	p, err := NewProvider("x", "ok")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.ChatCompletion(ctx, nil); err == nil {
		t.Fatal("expected context error")
	}
}
