// Package config loads the optional YAML settings of the round-trip tool.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blues/codec2"
	"github.com/blues/codec2/internal/roundtrip"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// PartialFrame names a roundtrip.PartialPolicy in YAML.
type PartialFrame string

const (
	PartialDrop   PartialFrame = "drop"
	PartialReject PartialFrame = "reject"
)

// Policy returns the pipeline policy for p. The empty value means drop.
func (p PartialFrame) Policy() (roundtrip.PartialPolicy, error) {
	switch p {
	case "", PartialDrop:
		return roundtrip.PartialDrop, nil
	case PartialReject:
		return roundtrip.PartialReject, nil
	}
	return 0, fmt.Errorf("partial_frame %q is invalid; valid values: drop, reject", string(p))
}

// Config is the top level of the YAML file.
type Config struct {
	// Bitrate is used when no bitrate argument is given. Zero means the
	// codec default.
	Bitrate int `yaml:"bitrate"`

	// PartialFrame decides what happens to a trailing partial frame.
	PartialFrame PartialFrame `yaml:"partial_frame"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Bitrate:      codec2.DefaultMode.Bitrate(),
		PartialFrame: PartialDrop,
		LogLevel:     LogInfo,
	}
}

// Mode returns the codec mode for the configured bitrate.
func (c *Config) Mode() (codec2.Mode, error) {
	if c.Bitrate == 0 {
		return codec2.DefaultMode, nil
	}
	return codec2.ModeForBitrate(int64(c.Bitrate))
}

// Load reads the YAML configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of Default and
// validates the result. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and returns all failures joined.
func Validate(cfg *Config) error {
	var errs []error
	if _, err := cfg.Mode(); err != nil {
		errs = append(errs, fmt.Errorf("bitrate: %w", err))
	}
	if _, err := cfg.PartialFrame.Policy(); err != nil {
		errs = append(errs, err)
	}
	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	return errors.Join(errs...)
}
