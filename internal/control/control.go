package control

import (
	"fmt"
	"time"
)

// Policy defines run limits for the agent loop.
type Policy struct {
	MaxTurns    int
	MaxWallTime time.Duration
	MaxTokens   int
}

// DefaultPolicy returns the default interactive-session policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxTurns:    16,
		MaxWallTime: 600 * time.Second,
		MaxTokens:   200000,
	}
}

// LimitType identifies which limit is reached.
type LimitType string

const (
	LimitTurns    LimitType = "max_turns"
	LimitWallTime LimitType = "max_wall_time_seconds"
	LimitTokens   LimitType = "max_tokens"
)

// LimitError indicates a run limit was reached.
type LimitError struct {
	Type      LimitType
	Value     int64
	Threshold int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("limit reached type=%s value=%d threshold=%d", e.Type, e.Value, e.Threshold)
}

// CheckTurnLimit validates turn usage against policy.
func CheckTurnLimit(p Policy, usedTurns int) error {
	if p.MaxTurns <= 0 {
		return &LimitError{Type: LimitTurns, Value: int64(usedTurns), Threshold: int64(p.MaxTurns)}
	}
	if usedTurns >= p.MaxTurns {
		return &LimitError{Type: LimitTurns, Value: int64(usedTurns), Threshold: int64(p.MaxTurns)}
	}
	return nil
}

// CheckWallTime validates elapsed time against policy.
func CheckWallTime(p Policy, startedAt time.Time, now time.Time) error {
	limit := p.MaxWallTime
	if limit <= 0 {
		return &LimitError{Type: LimitWallTime, Value: 0, Threshold: int64(limit.Seconds())}
	}
	elapsed := now.Sub(startedAt)
	if elapsed > limit {
		return &LimitError{
			Type:      LimitWallTime,
			Value:     int64(elapsed.Seconds()),
			Threshold: int64(limit.Seconds()),
		}
	}
	return nil
}

// CheckTokenLimit validates cumulative token usage against policy.
func CheckTokenLimit(p Policy, usedTokens int) error {
	if p.MaxTokens <= 0 {
		return &LimitError{Type: LimitTokens, Value: int64(usedTokens), Threshold: int64(p.MaxTokens)}
	}
	if usedTokens > p.MaxTokens {
		return &LimitError{Type: LimitTokens, Value: int64(usedTokens), Threshold: int64(p.MaxTokens)}
	}
	return nil
}
