package tool

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// ReadFile returns file contents for <readfile file="..."/>.
type ReadFile struct {
	Policy  *Policy
	BaseDir string
	Limits  Limits
}

func NewReadFile(policy *Policy, baseDir string, limits Limits) *ReadFile {
	if limits.MaxLines <= 0 {
		limits.MaxLines = 2000
	}
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 51200
	}
	return &ReadFile{
		Policy:  policy,
		BaseDir: baseDir,
		Limits:  limits,
	}
}

func (t *ReadFile) Name() string { return "readfile" }

func (t *ReadFile) Usage() string { return `<readfile file="path/to/file"/>` }

func (t *ReadFile) Validate(attrs map[string]string) error {
	if strings.TrimSpace(attrs["file"]) == "" {
		return fmt.Errorf("readfile.file is required")
	}
	return nil
}

func (t *ReadFile) Execute(ctx context.Context, attrs map[string]string) (Result, error) {
	if err := t.Validate(attrs); err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	resolved, err := t.Policy.ResolveAllowedPath(attrs["file"], t.BaseDir)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("readfile failed: %w", err)
	}

	text, truncLines, truncBytes := ApplyOutputLimits(string(data), t.Limits)
	return Result{
		OK:             true,
		ForModel:       text,
		ForUser:        fmt.Sprintf("read %s (%s)", attrs["file"], HumanSize(int64(len(data)))),
		TruncatedLines: truncLines,
		TruncatedBytes: truncBytes,
	}, nil
}
