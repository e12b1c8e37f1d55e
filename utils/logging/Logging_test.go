package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"info", zerolog.InfoLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"Trace", zerolog.TraceLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
	}

	for _, test := range tests {
		got, err := ParseLevel(test.in)
		if err != nil {
			t.Errorf("parseLevel(%q): %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("parseLevel(%q) = %v, want %v", test.in, got, test.want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info", false)
	if err != nil {
		t.Fatal(err)
	}

	log.Debug().Msg("hidden")
	log.Info().Int("episode", 3).Msg("episode finished")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("logged %v lines, want 1: %q", len(lines), buf.String())
	}

	var event map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatal(err)
	}
	if event["message"] != "episode finished" || event["episode"] != 3.0 {
		t.Errorf("event = %v", event)
	}
	if _, ok := event["time"]; !ok {
		t.Errorf("event has no timestamp: %v", event)
	}

	if _, err := New(&buf, "loud", false); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestNewPretty(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", true)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Str("outcome", "Landed").Msg("episode finished")

	out := buf.String()
	if !strings.Contains(out, "episode finished") ||
		!strings.Contains(out, "outcome=") {
		t.Errorf("pretty output = %q", out)
	}
}
