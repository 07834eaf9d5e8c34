package tool

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Grep searches file contents for <grep pattern="..." dir="..."/>.
// Uses ripgrep when available and falls back to grep -R.
type Grep struct {
	Policy  *Policy
	BaseDir string
	Timeout time.Duration
	Limits  Limits
}

func NewGrep(policy *Policy, baseDir string, timeout time.Duration, limits Limits) *Grep {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if limits.MaxLines <= 0 {
		limits.MaxLines = 2000
	}
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 51200
	}
	return &Grep{
		Policy:  policy,
		BaseDir: baseDir,
		Timeout: timeout,
		Limits:  limits,
	}
}

func (t *Grep) Name() string { return "grep" }

func (t *Grep) Usage() string { return `<grep pattern="regex" dir="path"/>` }

func (t *Grep) Validate(attrs map[string]string) error {
	if strings.TrimSpace(attrs["pattern"]) == "" {
		return fmt.Errorf("grep.pattern is required")
	}
	if strings.TrimSpace(attrs["dir"]) == "" {
		return fmt.Errorf("grep.dir is required")
	}
	return nil
}

func (t *Grep) Execute(ctx context.Context, attrs map[string]string) (Result, error) {
	if err := t.Validate(attrs); err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	resolved, err := t.Policy.ResolveAllowedPath(attrs["dir"], t.BaseDir)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	toolCtx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	cmd := buildGrepCommand(toolCtx, resolved, attrs["pattern"])
	stdout, stderr, exitCode, runErr := runCommand(cmd)

	// Both grep and rg exit 1 on zero matches; that is not a failure here.
	if exitCode == 1 && strings.TrimSpace(stderr) == "" {
		runErr = nil
		stdout = "(no matches)\n"
	}

	outText, truncLinesOut, truncBytesOut := ApplyOutputLimits(stdout, t.Limits)
	errText, truncLinesErr, truncBytesErr := ApplyOutputLimits(stderr, t.Limits)

	forModel := outText
	if strings.TrimSpace(errText) != "" {
		forModel += "\nstderr:\n" + errText
	}
	result := Result{
		OK:             runErr == nil,
		ForModel:       forModel,
		ForUser:        fmt.Sprintf("grep %q in %s", attrs["pattern"], attrs["dir"]),
		TruncatedLines: truncLinesOut || truncLinesErr,
		TruncatedBytes: truncBytesOut || truncBytesErr,
	}
	if runErr != nil {
		return result, fmt.Errorf("grep execution failed: %w", runErr)
	}
	return result, nil
}

func buildGrepCommand(ctx context.Context, path, pattern string) *exec.Cmd {
	if _, err := exec.LookPath("rg"); err == nil {
		return exec.CommandContext(ctx, "rg",
			"--line-number", "--no-heading", "--color", "never", pattern, path)
	}
	return exec.CommandContext(ctx, "grep", "-R", "-n", "-H", pattern, path)
}
