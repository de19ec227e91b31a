package main

import (
	"bytes"
	"testing"

	"github.com/blues/codec2"
)

func TestRun_Headerless(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer
	stdin := bytes.NewReader(make([]byte, 6*3+2))
	if code := run([]string{"2400", "-", "-"}, stdin, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if want := 3 * 160 * 2; stdout.Len() != want {
		t.Errorf("wrote %d bytes, want %d", stdout.Len(), want)
	}
}

func TestRun_HeaderOverridesMode(t *testing.T) {
	t.Parallel()
	in := append(codec2.NewHeader(codec2.Mode1400).Bytes(), make([]byte, 2*7)...)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"3200", "-", "-"}, bytes.NewReader(in), &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if want := 2 * 320 * 2; stdout.Len() != want {
		t.Errorf("wrote %d bytes, want %d", stdout.Len(), want)
	}
}

func TestRun_UnsupportedHeaderMode(t *testing.T) {
	t.Parallel()
	h := codec2.NewHeader(codec2.Mode1400)
	h.Mode = 8
	var stdout, stderr bytes.Buffer
	if code := run([]string{"1400", "-", "-"}, bytes.NewReader(h.Bytes()), &stdout, &stderr); code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
}
