package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("WINCMD_DATA_DIR", dir)
	t.Setenv("WINCMD_PORT", "")
	t.Setenv("WINCMD_COMMAND_TIMEOUT", "")

	cfg := Load()
	if cfg.Port != 8090 {
		t.Fatalf("expected default port 8090, got %d", cfg.Port)
	}
	if cfg.DataDir != dir {
		t.Fatalf("expected data dir %q, got %q", dir, cfg.DataDir)
	}
	if cfg.CommandTimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.CommandTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WINCMD_DATA_DIR", t.TempDir())
	t.Setenv("WINCMD_PORT", "9000")
	t.Setenv("WINCMD_SHELL", "powershell -Command")

	cfg := Load()
	if cfg.Port != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Shell != "powershell -Command" {
		t.Fatalf("unexpected shell %q", cfg.Shell)
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", time.Minute},
		{"45s", 45 * time.Second},
		{"10", 10 * time.Second},
		{"soon", time.Minute},
	}

	for _, tt := range tests {
		t.Setenv("WINCMD_TEST_DURATION", tt.value)
		if got := getEnvDuration("WINCMD_TEST_DURATION", time.Minute); got != tt.want {
			t.Fatalf("%q: expected %v, got %v", tt.value, tt.want, got)
		}
	}

	t.Setenv("WINCMD_TEST_BOOL", "yes")
	if got := getEnvBool("WINCMD_TEST_BOOL", true); !got {
		t.Fatalf("unparseable bool should fall back to the default")
	}
	t.Setenv("WINCMD_TEST_BOOL", "false")
	if got := getEnvBool("WINCMD_TEST_BOOL", true); got {
		t.Fatalf("expected false")
	}

	t.Setenv("WINCMD_TEST_INT", "abc")
	if got := getEnvInt("WINCMD_TEST_INT", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}
