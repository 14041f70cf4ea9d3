package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewAttachesComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentStats, Output: &buf, JSON: true})

	logger.Info("write committed", FieldSectionID, int64(3))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry[FieldComponent] != ComponentStats {
		t.Fatalf("expected component %q, got %v", ComponentStats, entry[FieldComponent])
	}
	if entry[FieldSectionID] != float64(3) {
		t.Fatalf("expected section_id 3, got %v", entry[FieldSectionID])
	}
	if strings.Count(buf.String(), `"component"`) != 1 {
		t.Fatalf("expected a single component attribute, got %q", buf.String())
	}
}

func TestLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	base := New(Config{Output: &bytes.Buffer{}})
	child := base.WithComponent(ComponentMCP)
	if child.Component() != ComponentMCP {
		t.Fatalf("expected %q, got %q", ComponentMCP, child.Component())
	}
	if base.Component() != ComponentApp {
		t.Fatalf("expected base logger to stay %q, got %q", ComponentApp, base.Component())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
