package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blues/codec2"
	"github.com/blues/codec2/internal/config"
	"github.com/blues/codec2/internal/roundtrip"
)

func TestLoadFromReader_Valid(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(`
bitrate: 3200
partial_frame: reject
log_level: debug
`))
	if err != nil {
		t.Fatal(err)
	}
	mode, err := cfg.Mode()
	if err != nil || mode != codec2.Mode3200 {
		t.Errorf("Mode() = %v, %v", mode, err)
	}
	policy, err := cfg.PartialFrame.Policy()
	if err != nil || policy != roundtrip.PartialReject {
		t.Errorf("Policy() = %v, %v", policy, err)
	}
	if cfg.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadFromReader_EmptyUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *config.Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, config.Default())
	}
	if mode, _ := cfg.Mode(); mode != codec2.DefaultMode {
		t.Errorf("default mode = %v", mode)
	}
}

func TestLoadFromReader_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name, yaml, want string
	}{
		{"unknown key", "bitrat: 1200\n", "bitrat"},
		{"bad bitrate", "bitrate: 1000\n", "bitrate"},
		{"bad partial", "partial_frame: pad\n", "partial_frame"},
		{"bad level", "log_level: loud\n", "log_level"},
		{"not yaml", "bitrate: [\n", "decode yaml"},
	}
	for _, tt := range tests {
		_, err := config.LoadFromReader(strings.NewReader(tt.yaml))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	t.Parallel()
	err := config.Validate(&config.Config{Bitrate: 42, PartialFrame: "x", LogLevel: "y"})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"bitrate", "partial_frame", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "c2demo.yaml")
	if err := os.WriteFile(path, []byte("bitrate: 2400\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bitrate != 2400 || cfg.PartialFrame != config.PartialDrop {
		t.Errorf("got %+v", cfg)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file: expected error")
	}
}
