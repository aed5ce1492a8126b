package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvironmentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MAKERSPACE_TEST_VALUE=from-file\n"), 0600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("MAKERSPACE_TEST_VALUE", "")
	os.Unsetenv("MAKERSPACE_TEST_VALUE")

	if err := LoadEnvironmentFile(path); err != nil {
		t.Fatalf("LoadEnvironmentFile failed: %v", err)
	}

	if got := os.Getenv("MAKERSPACE_TEST_VALUE"); got != "from-file" {
		t.Errorf("Expected 'from-file', got '%s'", got)
	}
}

func TestLoadEnvironmentFileKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MAKERSPACE_TEST_KEEP=from-file\n"), 0600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("MAKERSPACE_TEST_KEEP", "from-env")

	if err := LoadEnvironmentFile(path); err != nil {
		t.Fatalf("LoadEnvironmentFile failed: %v", err)
	}

	if got := os.Getenv("MAKERSPACE_TEST_KEEP"); got != "from-env" {
		t.Errorf("Expected 'from-env', got '%s'", got)
	}
}
