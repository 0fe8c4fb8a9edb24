package common

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateHashIgnoresInfra(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cmd", "api", "cmd.go"), "package main")

	before, err := GenerateHash(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeFile(t, filepath.Join(root, "infra", "main.go"), "package main")
	after, err := GenerateHash(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before != after {
		t.Fatal("infra changes should not change the image hash")
	}

	writeFile(t, filepath.Join(root, "cmd", "api", "cmd.go"), "package main\n")
	changed, err := GenerateHash(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed == before {
		t.Fatal("source changes should change the image hash")
	}
}
