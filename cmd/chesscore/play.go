package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/game"
	"github.com/lgbarn/chesscore-go/internal/output"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		fen     string
		asJSON  bool
		asPGN   bool
		resign  string
		elapsed []float64
	)
	cmd := &cobra.Command{
		Use:   "play [moves...]",
		Short: "Apply moves and print the resulting position",
		Long: `Apply moves in UCI (e2e4) or SAN (Nf3) notation from the starting
position, or from --fen, and print the final FEN, the movetext and the
outcome.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := game.New(game.Config{StartPosition: fen})
			if err != nil {
				return err
			}
			for i, text := range args {
				var opts []game.MoveOption
				if i < len(elapsed) {
					opts = append(opts, game.WithElapsed(elapsed[i]))
				}
				if g, err = applyMove(g, text, opts...); err != nil {
					return err
				}
			}
			if resign != "" {
				colour, ok := parseColourName(resign)
				if !ok {
					return errors.Wrapf(errors.ErrInvalidConfig, "--resign %q must be white or black", resign)
				}
				if g, err = g.Resign(colour); err != nil {
					return err
				}
			}
			a.log.Debug().Int("plies", g.Ply()).Str("fen", g.FEN()).Msg("played")

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return output.WriteJSON(out, g, nil)
			case asPGN:
				return output.WritePGN(out, g, nil, a.cfg.Output.Options())
			}
			fmt.Fprintf(out, "FEN: %s\n", g.FEN())
			fmt.Fprintf(out, "PGN: %s\n", g.PGN())
			if o := g.Outcome(); o != nil {
				fmt.Fprintf(out, "Outcome: %s\n", o)
			} else {
				fmt.Fprintf(out, "Outcome: in progress, %s to move\n", g.Turn().Name())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fen, "fen", "", "position to start from instead of the standard start")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the game as JSON")
	cmd.Flags().BoolVar(&asPGN, "pgn", false, "print the game as PGN using the output settings")
	cmd.Flags().StringVar(&resign, "resign", "", "after the moves, the given side (white or black) resigns")
	cmd.Flags().Float64SliceVar(&elapsed, "elapsed", nil, "seconds spent on each move, in order")
	cmd.MarkFlagsMutuallyExclusive("json", "pgn")
	return cmd
}

// applyMove plays text as a UCI move when it parses as one, and as SAN
// otherwise.
func applyMove(g *game.Game, text string, opts ...game.MoveOption) (*game.Game, error) {
	if _, err := engine.ParseUCI(text); err == nil {
		return g.MoveUCI(text, opts...)
	}
	return g.MoveSAN(text, opts...)
}

func parseColourName(s string) (chess.Colour, bool) {
	switch s {
	case "white", "w":
		return chess.White, true
	case "black", "b":
		return chess.Black, true
	}
	return chess.White, false
}
