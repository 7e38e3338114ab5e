package upload

import (
	"strings"
	"testing"
)

func TestMediaTypes_Allowed(t *testing.T) {
	m := NewMediaTypes([]string{"audio/wav", "Audio/WebM"})

	tests := []struct {
		in   string
		want bool
	}{
		{"audio/wav", true},
		{"audio/webm", true},
		{"audio/webm; codecs=opus", true},
		{"AUDIO/WAV", true},
		{"audio/mpeg", false},
		{"", false},
		{"application/octet-stream", false},
	}
	for _, tc := range tests {
		if got := m.Allowed(tc.in); got != tc.want {
			t.Errorf("Allowed(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMediaTypes_Resolve(t *testing.T) {
	m := NewMediaTypes(DefaultAllowedTypes)
	wav := "RIFF\x24\x00\x00\x00WAVEfmt " + strings.Repeat("\x00", 32)

	if got := m.Resolve("audio/webm", strings.NewReader(wav)); got != "audio/webm" {
		t.Errorf("declared type should win, got %q", got)
	}
	if got := m.Resolve("application/octet-stream", strings.NewReader(wav)); got != "audio/wav" {
		t.Errorf("sniffed wav = %q", got)
	}
	if got := m.Resolve("", strings.NewReader("hello")); m.Allowed(got) {
		t.Errorf("text content resolved to allowed type %q", got)
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.FolderName != "recordings" || len(cfg.AllowedTypes) != 2 {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cfg.AllowedTypes = []string{"audio/"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid media type error")
	}
}
