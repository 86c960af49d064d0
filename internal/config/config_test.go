package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Tape != DefaultTapeSize {
		t.Errorf("tape %d, want %d", cfg.Tape, DefaultTapeSize)
	}
	if cfg.Mode != ModeCompiled {
		t.Errorf("mode %q, want %q", cfg.Mode, ModeCompiled)
	}
	if cfg.Probe != ProbeOff {
		t.Errorf("probe %q, want %q", cfg.Probe, ProbeOff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %s", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funbf.yaml")
	content := "tape: 5000\nmode: direct\nprobe: counts\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cfg.Tape != 5000 || cfg.Mode != ModeDirect || cfg.Probe != ProbeCounts {
		t.Errorf("loaded %+v", cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funbf.yaml")
	if err := os.WriteFile(path, []byte("mode: direct\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cfg.Tape != DefaultTapeSize {
		t.Errorf("tape %d, want default %d", cfg.Tape, DefaultTapeSize)
	}
	if cfg.Mode != ModeDirect {
		t.Errorf("mode %q, want %q", cfg.Mode, ModeDirect)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		content string
		wantErr string
	}{
		{"mode: jit\n", "unknown mode"},
		{"tape: -4\n", "tape size"},
		{"probe: flamegraph\n", "unknown probe"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "funbf.yaml")
		if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%q: error %v, want mention of %q", tt.content, err, tt.wantErr)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
