package tool

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFile_ExecuteSuccess(t *testing.T) {
	base := t.TempDir()
	policy, err := NewPolicy(base, "")
	if err != nil {
		t.Fatalf("policy err: %v", err)
	}
	writeTool := NewWriteFile(policy, base, Limits{})

	res, execErr := writeTool.Execute(context.Background(), map[string]string{
		"file":    "out.txt",
		"content": "line one\nline two\n",
	})
	if execErr != nil {
		t.Fatalf("exec err: %v", execErr)
	}
	if !res.OK {
		t.Fatalf("unexpected result: %+v", res)
	}

	data, readErr := os.ReadFile(filepath.Join(base, "out.txt"))
	if readErr != nil {
		t.Fatalf("read back failed: %v", readErr)
	}
	if string(data) != "line one\nline two\n" {
		t.Fatalf("unexpected content: %q", string(data))
	}
}

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	writeTool := NewWriteFile(policy, base, Limits{})

	_, err := writeTool.Execute(context.Background(), map[string]string{
		"file":    "deep/nested/dir/f.txt",
		"content": "x",
	})
	if err != nil {
		t.Fatalf("exec err: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(base, "deep", "nested", "dir", "f.txt")); statErr != nil {
		t.Fatalf("expected file to exist: %v", statErr)
	}
}

func TestWriteFile_EmptyContentAllowed(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	writeTool := NewWriteFile(policy, base, Limits{})

	_, err := writeTool.Execute(context.Background(), map[string]string{
		"file":    "empty.txt",
		"content": "",
	})
	if err != nil {
		t.Fatalf("exec err: %v", err)
	}
	info, statErr := os.Stat(filepath.Join(base, "empty.txt"))
	if statErr != nil {
		t.Fatalf("expected file: %v", statErr)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty file, got %d bytes", info.Size())
	}
}

func TestWriteFile_MissingContentAttr(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	writeTool := NewWriteFile(policy, base, Limits{})

	_, err := writeTool.Execute(context.Background(), map[string]string{"file": "a.txt"})
	if err == nil || !strings.Contains(err.Error(), "writefile.content is required") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestWriteFile_OutsideAllowlist(t *testing.T) {
	base := t.TempDir()
	policy, _ := NewPolicy(base, "")
	writeTool := NewWriteFile(policy, base, Limits{})

	_, err := writeTool.Execute(context.Background(), map[string]string{
		"file":    "../escape.txt",
		"content": "x",
	})
	if err == nil || !strings.Contains(err.Error(), "outside allowlist") {
		t.Fatalf("unexpected err: %v", err)
	}
}
