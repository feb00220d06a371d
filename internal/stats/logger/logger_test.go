package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestCollector(t *testing.T) {
	var buf bytes.Buffer
	c := New(zerolog.New(&buf).Level(zerolog.DebugLevel))

	c.IncCounter("nodes", 3)
	c.SetGauge("size", 7)
	c.ObserveHistogram("duration", 0.25)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		`{"level":"debug","metric":"nodes","delta":3,"message":"counter"}`,
		`{"level":"debug","metric":"size","value":7,"message":"gauge"}`,
		`{"level":"debug","metric":"duration","value":0.25,"message":"histogram"}`,
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d log lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %s, want %s", i, lines[i], want[i])
		}
	}
}

func TestCollector_InfoLevelDropsMetrics(t *testing.T) {
	var buf bytes.Buffer
	c := New(zerolog.New(&buf).Level(zerolog.InfoLevel))
	c.IncCounter("nodes", 1)
	if buf.Len() != 0 {
		t.Errorf("debug metrics written at info level: %s", buf.String())
	}
}
