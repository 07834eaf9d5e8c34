package tool

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Glob finds files by name pattern for <glob pattern="..." dir="..."/>.
// Uses fd/fdfind when available and falls back to find -name.
type Glob struct {
	Policy  *Policy
	BaseDir string
	Timeout time.Duration
	Limits  Limits
}

func NewGlob(policy *Policy, baseDir string, timeout time.Duration, limits Limits) *Glob {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if limits.MaxLines <= 0 {
		limits.MaxLines = 2000
	}
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 51200
	}
	return &Glob{
		Policy:  policy,
		BaseDir: baseDir,
		Timeout: timeout,
		Limits:  limits,
	}
}

func (t *Glob) Name() string { return "glob" }

func (t *Glob) Usage() string { return `<glob pattern="*.go" dir="path"/>` }

func (t *Glob) Validate(attrs map[string]string) error {
	if strings.TrimSpace(attrs["pattern"]) == "" {
		return fmt.Errorf("glob.pattern is required")
	}
	if strings.TrimSpace(attrs["dir"]) == "" {
		return fmt.Errorf("glob.dir is required")
	}
	return nil
}

func (t *Glob) Execute(ctx context.Context, attrs map[string]string) (Result, error) {
	if err := t.Validate(attrs); err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	resolved, err := t.Policy.ResolveAllowedPath(attrs["dir"], t.BaseDir)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	toolCtx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	cmd := buildGlobCommand(toolCtx, resolved, strings.TrimSpace(attrs["pattern"]))
	stdout, stderr, _, runErr := runCommand(cmd)

	outText, truncLinesOut, truncBytesOut := ApplyOutputLimits(stdout, t.Limits)
	errText, truncLinesErr, truncBytesErr := ApplyOutputLimits(stderr, t.Limits)
	if strings.TrimSpace(outText) == "" && runErr == nil {
		outText = "(no matches)\n"
	}

	forModel := outText
	if strings.TrimSpace(errText) != "" {
		forModel += "\nstderr:\n" + errText
	}
	result := Result{
		OK:             runErr == nil,
		ForModel:       forModel,
		ForUser:        fmt.Sprintf("glob %q in %s", attrs["pattern"], attrs["dir"]),
		TruncatedLines: truncLinesOut || truncLinesErr,
		TruncatedBytes: truncBytesOut || truncBytesErr,
	}
	if runErr != nil {
		return result, fmt.Errorf("glob execution failed: %w", runErr)
	}
	return result, nil
}

func buildGlobCommand(ctx context.Context, path, pattern string) *exec.Cmd {
	if _, err := exec.LookPath("fd"); err == nil {
		return exec.CommandContext(ctx, "fd", "--color", "never", "--glob", pattern, path)
	}
	if _, err := exec.LookPath("fdfind"); err == nil {
		return exec.CommandContext(ctx, "fdfind", "--color", "never", "--glob", pattern, path)
	}
	args := []string{path}
	if pattern != "*" {
		args = append(args, "-name", pattern)
	}
	return exec.CommandContext(ctx, "find", args...)
}
