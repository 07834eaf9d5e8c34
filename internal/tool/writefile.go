package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes content to disk for <writefile file="..." content="..."/>.
// Escape sequences in content are already decoded by the tag parser.
type WriteFile struct {
	Policy  *Policy
	BaseDir string
	Limits  Limits
}

func NewWriteFile(policy *Policy, baseDir string, limits Limits) *WriteFile {
	if limits.MaxLines <= 0 {
		limits.MaxLines = 2000
	}
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 51200
	}
	return &WriteFile{
		Policy:  policy,
		BaseDir: baseDir,
		Limits:  limits,
	}
}

func (t *WriteFile) Name() string { return "writefile" }

func (t *WriteFile) Usage() string {
	return `<writefile file="path/to/file" content="escaped\ncontent"/>`
}

func (t *WriteFile) Validate(attrs map[string]string) error {
	if strings.TrimSpace(attrs["file"]) == "" {
		return fmt.Errorf("writefile.file is required")
	}
	if _, ok := attrs["content"]; !ok {
		return fmt.Errorf("writefile.content is required")
	}
	return nil
}

func (t *WriteFile) Execute(ctx context.Context, attrs map[string]string) (Result, error) {
	if err := t.Validate(attrs); err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	resolved, err := t.Policy.ResolveAllowedPath(attrs["file"], t.BaseDir)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	content := attrs["content"]
	if dir := filepath.Dir(resolved); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("writefile failed: %w", err)
		}
	}
	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("writefile failed: %w", err)
	}

	summary := fmt.Sprintf("wrote %s to %s", HumanSize(int64(len(content))), attrs["file"])
	return Result{
		OK:       true,
		ForModel: summary,
		ForUser:  summary,
	}, nil
}
