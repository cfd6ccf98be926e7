package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	if dir == "" {
		t.Error("cacheDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	if !strings.HasPrefix(dir, "/tmp/xdg-cache") {
		t.Errorf("cacheDir() = %q, should respect XDG_CACHE_HOME", dir)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestResolveCacheDir(t *testing.T) {
	dir, err := resolveCacheDir("/explicit/dir")
	if err != nil {
		t.Fatalf("resolveCacheDir() error: %v", err)
	}
	if dir != "/explicit/dir" {
		t.Errorf("resolveCacheDir() = %q, want explicit directory", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err = resolveCacheDir("")
	if err != nil {
		t.Fatalf("resolveCacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("resolveCacheDir(\"\") = %q, want default location", dir)
	}
}
