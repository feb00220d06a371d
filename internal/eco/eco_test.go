package eco

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/testutil"
)

const testECOData = `
[ECO "B90"]
[Opening "Sicilian"]
[Variation "Najdorf"]

1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *

[ECO "C50"]
[Opening "Giuoco Piano"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 *

[ECO "D35"]
[Opening "QGD"]
[Variation "exchange variation"]

1. d4 d5 2. c4 e6 3. Nc3 Nf6 4. cxd5 exd5 *

[Opening "No code"]

1. e4 *

[ECO "X00"]
[Opening "Broken"]

1. e4 e5 2. Ke3 *
`

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c := NewClassifier(zerolog.Nop())
	if err := c.Load(strings.NewReader(testECOData)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return c
}

func TestClassifierLoad(t *testing.T) {
	c := newTestClassifier(t)

	// The untagged line is skipped; the broken one is kept up to its
	// illegal move.
	if got := c.Len(); got != 4 {
		t.Errorf("Len() = %d; want 4", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		want  string // ECO code, empty for no match
	}{
		{"najdorf", []string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6"}, "B90"},
		{"giuoco piano", []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5"}, "C50"},
		{"transposed giuoco piano", []string{"e4", "e5", "Bc4", "Bc5", "Nf3", "Nc6"}, "C50"},
		{"deeper than the line", []string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6", "Be2", "e5", "Nb3"}, "B90"},
		{"no match", []string{"a3"}, ""},
		{"no moves", nil, ""},
	}

	c := newTestClassifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := c.Classify(testutil.PlayGame(t, "", tt.moves...))
			got := ""
			if match != nil {
				got = match.Code
			}
			if got != tt.want {
				t.Errorf("Classify() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_Empty(t *testing.T) {
	c := NewClassifier(zerolog.Nop())
	if match := c.Classify(testutil.PlayGame(t, "", "e4")); match != nil {
		t.Errorf("Classify() on empty table = %q; want nil", match.Code)
	}
}

func TestAddTags(t *testing.T) {
	c := newTestClassifier(t)
	g := testutil.MustReplay(t, `[Event "Test"]
[ECO "A00"]

1. d4 d5 2. c4 e6 3. Nc3 Nf6 4. cxd5 exd5 5. Bg5 *
`)

	tags := map[string]string{"Event": "Test", "ECO": "A00"}
	if !c.AddTags(g, tags) {
		t.Fatal("AddTags() = false; want true")
	}
	want := map[string]string{
		"Event":     "Test",
		"ECO":       "D35",
		"Opening":   "QGD",
		"Variation": "exchange variation",
	}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}

	untouched := map[string]string{}
	if c.AddTags(testutil.PlayGame(t, "", "h4"), untouched) || len(untouched) != 0 {
		t.Errorf("AddTags() without a match changed tags to %v", untouched)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eco.pgn")
	if err := os.WriteFile(path, []byte(testECOData), 0o600); err != nil {
		t.Fatal(err)
	}
	c := NewClassifier(zerolog.Nop())
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d; want 4", c.Len())
	}

	if err := c.LoadFile(filepath.Join(t.TempDir(), "missing.pgn")); err == nil {
		t.Error("LoadFile() of a missing file succeeded")
	}
}
