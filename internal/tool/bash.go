package tool

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Bash runs a shell command for <bash command="..."/>.
type Bash struct {
	Policy  *Policy
	BaseDir string
	Timeout time.Duration
	Limits  Limits
}

func NewBash(policy *Policy, baseDir string, timeout time.Duration, limits Limits) *Bash {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if limits.MaxLines <= 0 {
		limits.MaxLines = 2000
	}
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 51200
	}
	return &Bash{
		Policy:  policy,
		BaseDir: baseDir,
		Timeout: timeout,
		Limits:  limits,
	}
}

func (t *Bash) Name() string { return "bash" }

func (t *Bash) Usage() string { return `<bash command="shell command"/>` }

func (t *Bash) Validate(attrs map[string]string) error {
	if strings.TrimSpace(attrs["command"]) == "" {
		return fmt.Errorf("bash.command is required")
	}
	return nil
}

func (t *Bash) Execute(ctx context.Context, attrs map[string]string) (Result, error) {
	if err := t.Validate(attrs); err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	command := strings.TrimSpace(attrs["command"])
	if t.Policy.IsBashDenied(command) {
		err := fmt.Errorf("bash command denied by policy")
		return Result{OK: false, ForModel: err.Error()}, err
	}

	cwd := strings.TrimSpace(attrs["dir"])
	if cwd == "" {
		cwd = "."
	}
	resolvedCwd, err := t.Policy.ResolveAllowedPath(cwd, t.BaseDir)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	toolCtx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	cmd := exec.CommandContext(toolCtx, "bash", "-lc", command)
	cmd.Dir = resolvedCwd
	stdout, stderr, exitCode, runErr := runCommand(cmd)

	outText, truncLinesOut, truncBytesOut := ApplyOutputLimits(stdout, t.Limits)
	errText, truncLinesErr, truncBytesErr := ApplyOutputLimits(stderr, t.Limits)

	var b strings.Builder
	fmt.Fprintf(&b, "exit_code: %d\n", exitCode)
	if strings.TrimSpace(outText) != "" {
		b.WriteString("stdout:\n" + outText + "\n")
	}
	if strings.TrimSpace(errText) != "" {
		b.WriteString("stderr:\n" + errText + "\n")
	}

	result := Result{
		OK:             runErr == nil,
		ForModel:       b.String(),
		ForUser:        fmt.Sprintf("$ %s (exit %d)", command, exitCode),
		TruncatedLines: truncLinesOut || truncLinesErr,
		TruncatedBytes: truncBytesOut || truncBytesErr,
	}
	if runErr != nil {
		return result, fmt.Errorf("bash execution failed: %w", runErr)
	}
	return result, nil
}
