// Package output provides game output formatting in PGN and JSON.
package output

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/game"
	"github.com/lgbarn/chesscore-go/internal/tree"
)

// SevenTagRoster lists the tags every PGN export carries, in order.
var SevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// IsSevenTagRosterTag reports whether name is one of the seven roster tags.
func IsSevenTagRosterTag(name string) bool {
	for _, tag := range SevenTagRoster {
		if tag == name {
			return true
		}
	}
	return false
}

// Notation selects how moves are written.
type Notation int

const (
	SAN Notation = iota // Standard Algebraic Notation
	UCI                 // Long algebraic as used by UCI (e2e4)
)

// TagFormat specifies which tags to output.
type TagFormat int

const (
	AllTags TagFormat = iota
	SevenTagRosterOnly
	NoTags
)

// Options controls PGN formatting.
type Options struct {
	Notation        Notation
	MaxLineLength   int
	TagFormat       TagFormat
	KeepMoveNumbers bool
	KeepResults     bool
	KeepNAGs        bool
	KeepComments    bool
	KeepVariations  bool

	// KeepElapsed writes recorded move times as {[%emt H:MM:SS]} comments
	KeepElapsed bool
}

// DefaultOptions returns the standard export settings.
func DefaultOptions() Options {
	return Options{
		Notation:        SAN,
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		KeepResults:     true,
		KeepNAGs:        true,
		KeepComments:    true,
		KeepVariations:  true,
		KeepElapsed:     true,
	}
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

func (o *OutputWriter) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.emit("\n")
			o.lineLength = 0
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}

	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// WriteNoSpace writes without adding a leading space.
func (o *OutputWriter) WriteNoSpace(s string) {
	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// Open writes an opening bracket; the next write follows it directly.
func (o *OutputWriter) Open(s string) {
	o.Write(s)
	o.needsSpace = false
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first error from the underlying writer.
func (o *OutputWriter) Err() error {
	return o.err
}

// WritePGN writes g as a PGN game: the tag section, a blank line, the
// movetext with the result, and a trailing blank line.
func WritePGN(w io.Writer, g *game.Game, tags map[string]string, opts Options) error {
	if err := writeTags(w, g, tags, opts); err != nil {
		return err
	}

	ow := NewOutputWriter(w, opts.MaxLineLength)
	mw := &movetextWriter{ow: ow, opts: opts}
	force := true
	for _, hm := range g.Plies() {
		mw.move(hm, force)
		force = mw.annotate(hm, "", nil)
	}
	mw.result(GameResult(g, tags))
	ow.NewLine()
	ow.NewLine()
	return ow.Err()
}

// WriteTreePGN writes the main line of t with its variations as RAVs.
// Tags and the result are taken from the game at the end of the main line.
func WriteTreePGN(w io.Writer, t *tree.Tree, tags map[string]string, opts Options) error {
	leaf := t.Leaf()
	if err := writeTags(w, leaf, tags, opts); err != nil {
		return err
	}

	ow := NewOutputWriter(w, opts.MaxLineLength)
	mw := &movetextWriter{ow: ow, opts: opts}
	if err := mw.line(t, tree.Root, true); err != nil {
		return err
	}
	mw.result(GameResult(leaf, tags))
	ow.NewLine()
	ow.NewLine()
	return ow.Err()
}

// GameResult returns the PGN result token for g: its outcome when the game
// is decided, otherwise a valid Result tag, otherwise "*".
func GameResult(g *game.Game, tags map[string]string) string {
	if outcome := g.Outcome(); outcome != nil {
		return outcome.Result.PGN()
	}
	switch r := tags["Result"]; r {
	case "1-0", "0-1", "1/2-1/2":
		return r
	}
	return "*"
}

// writeTags outputs the roster, the remaining tags in name order, and the
// SetUp/FEN pair for games that do not start from the standard position.
func writeTags(w io.Writer, g *game.Game, tags map[string]string, opts Options) error {
	if opts.TagFormat == NoTags {
		return nil
	}
	ow := NewOutputWriter(w, math.MaxInt32)

	for _, tag := range SevenTagRoster {
		value := tags[tag]
		if tag == "Result" {
			value = GameResult(g, tags)
		}
		if value == "" {
			value = "?"
		}
		ow.WriteNoSpace(formatTag(tag, value))
		ow.NewLine()
	}

	if opts.TagFormat != SevenTagRosterOnly {
		names := make([]string, 0, len(tags))
		for name := range tags {
			if !IsSevenTagRosterTag(name) && name != "SetUp" && name != "FEN" {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			ow.WriteNoSpace(formatTag(name, tags[name]))
			ow.NewLine()
		}
	}

	if fen := g.InitialFEN(); fen != engine.InitialFEN {
		ow.WriteNoSpace(formatTag("SetUp", "1"))
		ow.NewLine()
		ow.WriteNoSpace(formatTag("FEN", fen))
		ow.NewLine()
	}

	ow.NewLine()
	return ow.Err()
}

func formatTag(name, value string) string {
	return fmt.Sprintf("[%s \"%s\"]", name, escapeTagValue(value))
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// movetextWriter writes moves with numbering, annotations and variations.
type movetextWriter struct {
	ow   *OutputWriter
	opts Options
}

// move writes one ply, preceded by its number when white moves or when
// force is set for a black move.
func (mw *movetextWriter) move(hm game.HalfMove, force bool) {
	if mw.opts.KeepMoveNumbers {
		if hm.Colour == chess.White {
			mw.ow.Write(fmt.Sprintf("%d.", hm.Number))
		} else if force {
			mw.ow.Write(fmt.Sprintf("%d...", hm.Number))
		}
	}
	mw.ow.Write(formatMove(hm, mw.opts.Notation))
}

// annotate writes NAGs and comments after a move. It reports whether
// anything was written, in which case a following black move needs its
// number repeated.
func (mw *movetextWriter) annotate(hm game.HalfMove, comment string, nags []int) bool {
	wrote := false
	if mw.opts.KeepNAGs {
		for _, nag := range nags {
			mw.ow.Write(fmt.Sprintf("$%d", nag))
		}
	}
	if mw.opts.KeepComments && comment != "" {
		mw.ow.Write("{" + comment + "}")
		wrote = true
	}
	if mw.opts.KeepElapsed && hm.Elapsed != nil {
		mw.ow.Write("{[%emt " + FormatElapsed(*hm.Elapsed) + "]}")
		wrote = true
	}
	return wrote
}

// line writes the continuation from node id, recursing into alternatives.
func (mw *movetextWriter) line(t *tree.Tree, id int, force bool) error {
	node, err := t.Node(id)
	if err != nil {
		return err
	}
	for len(node.Children) > 0 {
		main := node.Children[0]
		if force, err = mw.node(t, main, force); err != nil {
			return err
		}

		if mw.opts.KeepVariations {
			for _, alt := range node.Children[1:] {
				mw.ow.Open("(")
				if _, err := mw.node(t, alt, true); err != nil {
					return err
				}
				if err := mw.line(t, alt, false); err != nil {
					return err
				}
				mw.ow.WriteNoSpace(")")
				force = true
			}
		}

		if node, err = t.Node(main); err != nil {
			return err
		}
	}
	return nil
}

// node writes the move leading to node id with its annotations.
func (mw *movetextWriter) node(t *tree.Tree, id int, force bool) (bool, error) {
	n, err := t.Node(id)
	if err != nil {
		return false, err
	}
	hm, _ := n.Game.LastHalfMove()
	mw.move(hm, force)
	return mw.annotate(hm, n.Comment, n.NAGs), nil
}

func (mw *movetextWriter) result(result string) {
	if mw.opts.KeepResults {
		mw.ow.Write(result)
	}
}

// formatMove formats a move in the specified notation.
func formatMove(hm game.HalfMove, notation Notation) string {
	if notation == UCI {
		return hm.Move.UCI()
	}
	return hm.SAN
}

// FormatElapsed renders seconds as H:MM:SS, keeping a fraction when there
// is one.
func FormatElapsed(seconds float64) string {
	ms := int64(math.Round(seconds * 1000))
	whole := ms / 1000
	s := fmt.Sprintf("%d:%02d:%02d", whole/3600, whole/60%60, whole%60)
	if frac := ms % 1000; frac != 0 {
		s += strings.TrimRight(fmt.Sprintf(".%03d", frac), "0")
	}
	return s
}
