package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LS lists a directory for <ls dir="..." showGitIgnore="0|1"/>.
// With showGitIgnore="0" entries matched by the directory's .gitignore are
// hidden; "1" shows everything. Pattern matching is a crude per-directory
// filepath.Match, not a full gitignore implementation.
type LS struct {
	Policy  *Policy
	BaseDir string
	Limits  Limits
}

func NewLS(policy *Policy, baseDir string, limits Limits) *LS {
	if limits.MaxLines <= 0 {
		limits.MaxLines = 2000
	}
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 51200
	}
	return &LS{
		Policy:  policy,
		BaseDir: baseDir,
		Limits:  limits,
	}
}

func (t *LS) Name() string { return "ls" }

func (t *LS) Usage() string { return `<ls dir="path" showGitIgnore="0|1"/>` }

func (t *LS) Validate(attrs map[string]string) error {
	if strings.TrimSpace(attrs["dir"]) == "" {
		return fmt.Errorf("ls.dir is required")
	}
	if v, ok := attrs["showGitIgnore"]; ok && v != "0" && v != "1" {
		return fmt.Errorf("ls.showGitIgnore must be 0 or 1")
	}
	return nil
}

func (t *LS) Execute(ctx context.Context, attrs map[string]string) (Result, error) {
	if err := t.Validate(attrs); err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	resolved, err := t.Policy.ResolveAllowedPath(attrs["dir"], t.BaseDir)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}

	entries, err := os.ReadDir(resolved)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("ls failed: %w", err)
	}

	var ignore []string
	if attrs["showGitIgnore"] != "1" {
		ignore = loadGitIgnore(resolved)
	}

	var b strings.Builder
	shown := 0
	for _, e := range entries {
		name := e.Name()
		if matchesGitIgnore(name, e.IsDir(), ignore) {
			continue
		}
		if e.IsDir() {
			fmt.Fprintf(&b, "%s/\n", name)
		} else {
			size := int64(0)
			if info, infoErr := e.Info(); infoErr == nil {
				size = info.Size()
			}
			fmt.Fprintf(&b, "%s\t%s\n", name, HumanSize(size))
		}
		shown++
	}
	if shown == 0 {
		b.WriteString("(empty)\n")
	}

	text, truncLines, truncBytes := ApplyOutputLimits(b.String(), t.Limits)
	return Result{
		OK:             true,
		ForModel:       text,
		ForUser:        fmt.Sprintf("listed %s (%d entries)", attrs["dir"], shown),
		TruncatedLines: truncLines,
		TruncatedBytes: truncBytes,
	}, nil
}

func loadGitIgnore(dir string) []string {
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

func matchesGitIgnore(name string, isDir bool, patterns []string) bool {
	for _, p := range patterns {
		dirOnly := strings.HasSuffix(p, "/")
		p = strings.TrimSuffix(p, "/")
		if dirOnly && !isDir {
			continue
		}
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
