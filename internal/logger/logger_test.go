package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})
	defer log.Close()

	log.WithComponent("recommend").Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"recommend"`) {
		t.Errorf("log output missing component field: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("log output missing message: %s", out)
	}
}

func TestNew_WritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Path: dir, Output: &buf})

	log.Info().Msg("to file")
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "moodk.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing entry: %s", data)
	}
}
