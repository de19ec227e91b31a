package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return info.Size()
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%s must not exist, stat: %v", path, err)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := writeFile(t, dir, "in.raw", nil)
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{in, out, "3200"}, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if size := fileSize(t, out); size != 0 {
		t.Errorf("output is %d bytes, want 0", size)
	}
}

func TestRun_DefaultBitrate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := writeFile(t, dir, "in.raw", make([]byte, 640))
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{in, out}, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if size := fileSize(t, out); size != 640 {
		t.Errorf("output is %d bytes, want 640", size)
	}
}

func TestRun_PartialFrameDropped(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := writeFile(t, dir, "in.raw", make([]byte, 2*160*2+100))
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{in, out, "2400"}, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if size := fileSize(t, out); size != 640 {
		t.Errorf("output is %d bytes, want 640", size)
	}
	if !strings.Contains(stderr.String(), "partial frame") {
		t.Errorf("expected a partial frame warning, got: %s", stderr.String())
	}
}

func TestRun_RejectPartial(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := writeFile(t, dir, "in.raw", make([]byte, 641))
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{"-reject-partial", in, out}, &stderr); code != 1 {
		t.Fatalf("exit %d, want 1: %s", code, stderr.String())
	}
}

func TestRun_UnsupportedBitrate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := writeFile(t, dir, "in.raw", make([]byte, 640))
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{in, out, "1000"}, &stderr); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "{3200, 2400, 1400, 1200}") {
		t.Errorf("stderr does not list the supported bitrates: %s", stderr.String())
	}
	assertMissing(t, out)
}

func TestRun_MalformedBitrate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := writeFile(t, dir, "in.raw", make([]byte, 640))
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{in, out, "12ab"}, &stderr); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), `"ab"`) {
		t.Errorf("stderr does not name the invalid part: %s", stderr.String())
	}
	assertMissing(t, out)
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := filepath.Join(dir, "nope.raw")
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{in, out}, &stderr); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "error opening input speech file") {
		t.Errorf("stderr: %s", stderr.String())
	}
	assertMissing(t, out)
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()
	for _, args := range [][]string{nil, {"in.raw"}, {"a", "b", "1400", "extra"}} {
		var stderr bytes.Buffer
		if code := run(args, &stderr); code != 1 {
			t.Errorf("run(%q) = %d, want 1", args, code)
		}
		if !strings.Contains(stderr.String(), "usage: c2demo") {
			t.Errorf("run(%q): no usage message: %s", args, stderr.String())
		}
	}
}

func TestRun_ConfigBitrate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := writeFile(t, dir, "c2demo.yaml", []byte("bitrate: 3200\nlog_level: warn\n"))
	in := writeFile(t, dir, "in.raw", make([]byte, 2*480))
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{"-config", cfg, in, out}, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	// 480 samples are three 3200 frames but only one 1400 frame.
	if size := fileSize(t, out); size != 960 {
		t.Errorf("output is %d bytes, want 960", size)
	}
	if strings.Contains(stderr.String(), "round trip complete") {
		t.Errorf("info log printed at warn level: %s", stderr.String())
	}
}

func TestRun_PositionalBitrateOverridesConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := writeFile(t, dir, "c2demo.yaml", []byte("bitrate: 3200\n"))
	in := writeFile(t, dir, "in.raw", make([]byte, 2*480))
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{"-config", cfg, in, out, "1200"}, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	// 480 samples: three 3200 frames, but only one whole 1200 frame.
	if size := fileSize(t, out); size != 640 {
		t.Errorf("output is %d bytes, want 640", size)
	}
}

func TestRun_BadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := writeFile(t, dir, "c2demo.yaml", []byte("bitrate: 1000\n"))
	in := writeFile(t, dir, "in.raw", make([]byte, 640))
	out := filepath.Join(dir, "out.raw")

	var stderr bytes.Buffer
	if code := run([]string{"-config", cfg, in, out}, &stderr); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	assertMissing(t, out)
}
