package analysis

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/engine"
)

// parseInfo updates eval from a UCI "info" line. Fields missing from the
// line keep their previous values. It reports whether the line carried a
// score.
func parseInfo(line string, eval *engine.Evaluation) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "info" {
		return false
	}

	scored := false
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if d, err := strconv.Atoi(fields[i+1]); err == nil {
					eval.Depth = d
				}
				i++
			}
		case "score":
			if i+2 < len(fields) {
				v, err := strconv.Atoi(fields[i+2])
				if err == nil {
					switch fields[i+1] {
					case "cp":
						eval.Score, eval.IsMate, eval.MateIn = v, false, 0
						scored = true
					case "mate":
						eval.MateIn, eval.IsMate = v, true
						scored = true
					}
				}
				i += 2
			}
		case "pv":
			eval.PV = append([]string(nil), fields[i+1:]...)
			return scored
		case "string":
			// Free text to the end of the line
			return false
		}
	}
	return scored
}

// parseBestMove returns the move of a "bestmove" line.
func parseBestMove(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "bestmove" {
		return "", false
	}
	return fields[1], true
}
