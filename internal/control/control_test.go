package control

import (
	"errors"
	"testing"
	"time"
)

func TestCheckTurnLimit(t *testing.T) {
	p := Policy{MaxTurns: 1}
	if err := CheckTurnLimit(p, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := CheckTurnLimit(p, 1); err == nil {
		t.Fatal("expected limit error")
	}
}

func TestCheckWallTime(t *testing.T) {
	p := Policy{MaxWallTime: 2 * time.Second}
	start := time.Unix(100, 0)
	if err := CheckWallTime(p, start, start.Add(1*time.Second)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := CheckWallTime(p, start, start.Add(3*time.Second)); err == nil {
		t.Fatal("expected wall-time limit error")
	}
}

func TestCheckTokenLimit(t *testing.T) {
	p := Policy{MaxTokens: 10}
	if err := CheckTokenLimit(p, 10); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := CheckTokenLimit(p, 11); err == nil {
		t.Fatal("expected token limit error")
	}
}

func TestLimitErrorShape(t *testing.T) {
	err := CheckTurnLimit(Policy{MaxTurns: 2}, 2)
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected LimitError, got %v", err)
	}
	if limitErr.Type != LimitTurns || limitErr.Threshold != 2 {
		t.Fatalf("unexpected fields: %+v", limitErr)
	}
}

func TestZeroLimitsAlwaysTrip(t *testing.T) {
	if err := CheckTurnLimit(Policy{}, 0); err == nil {
		t.Fatal("zero MaxTurns should trip immediately")
	}
	if err := CheckTokenLimit(Policy{}, 0); err == nil {
		t.Fatal("zero MaxTokens should trip immediately")
	}
}
