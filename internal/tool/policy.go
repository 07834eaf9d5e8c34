package tool

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Policy is the safety rail for tool execution: paths handed to handlers
// must fall under one of the allowed roots, and bash commands are screened
// against a substring denylist. It is advisory-plus, not a sandbox.
type Policy struct {
	AllowedRoots []string
	BashDenylist []string
}

// NewPolicy parses the comma-separated allowlist and denylist. At least one
// valid absolute root is required.
func NewPolicy(allowedRootsCSV, bashDenylistCSV string) (*Policy, error) {
	roots, err := ParseAllowedRoots(allowedRootsCSV)
	if err != nil {
		return nil, err
	}
	return &Policy{
		AllowedRoots: roots,
		BashDenylist: splitCSV(bashDenylistCSV),
	}, nil
}

// ParseAllowedRoots cleans, symlink-resolves, and dedupes the root list.
// Relative roots are rejected outright so a stray cwd change can never
// widen the allowlist.
func ParseAllowedRoots(raw string) ([]string, error) {
	items := splitCSV(raw)
	if len(items) == 0 {
		return nil, fmt.Errorf("allowed roots list is empty")
	}

	out := make([]string, 0, len(items))
	seen := map[string]struct{}{}
	for _, item := range items {
		if !filepath.IsAbs(item) {
			return nil, fmt.Errorf("allowlist root must be absolute path: %s", item)
		}
		root := filepath.Clean(item)
		if real, err := filepath.EvalSymlinks(root); err == nil {
			root = filepath.Clean(real)
		}
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}
		out = append(out, root)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("allowed roots list has no valid roots")
	}
	return out, nil
}

// ResolveAllowedPath turns a model-supplied path into an absolute path and
// checks it against the allowlist. Relative paths are anchored at baseDir.
// The check runs on the symlink-resolved path; the returned path is the
// cleaned candidate, so handlers operate on the name the model asked for.
func (p *Policy) ResolveAllowedPath(path string, baseDir string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path is empty")
	}
	if baseDir == "" {
		baseDir = "."
	}
	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}
	candidate = filepath.Clean(candidate)

	resolved, err := resolveForCheck(candidate)
	if err != nil {
		return "", err
	}
	for _, root := range p.AllowedRoots {
		if underRoot(resolved, root) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("path outside allowlist: %s", path)
}

// IsBashDenied reports whether the command contains any denylist entry,
// case-insensitively.
func (p *Policy) IsBashDenied(cmd string) bool {
	lower := strings.ToLower(cmd)
	for _, rule := range p.BashDenylist {
		if rule != "" && strings.Contains(lower, strings.ToLower(rule)) {
			return true
		}
	}
	return false
}

// resolveForCheck follows symlinks before the allowlist comparison. A path
// that does not exist yet (the writefile case) is checked through its
// nearest existing ancestor instead.
func resolveForCheck(path string) (string, error) {
	real, err := filepath.EvalSymlinks(path)
	if err == nil {
		return filepath.Clean(real), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	dir := filepath.Dir(path)
	for {
		realDir, dirErr := filepath.EvalSymlinks(dir)
		if dirErr == nil {
			leaf := strings.TrimPrefix(path, dir)
			leaf = strings.TrimPrefix(leaf, string(filepath.Separator))
			return filepath.Clean(filepath.Join(realDir, leaf)), nil
		}
		if !errors.Is(dirErr, os.ErrNotExist) {
			return "", fmt.Errorf("failed to resolve parent path: %w", dirErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no existing parent for path: %s", path)
		}
		dir = parent
	}
}

func underRoot(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
