package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/game"
)

func newMovesCmd(a *app) *cobra.Command {
	var (
		fen string
		uci bool
	)
	cmd := &cobra.Command{
		Use:   "moves",
		Short: "List the legal moves in a position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := game.New(game.Config{StartPosition: fen})
			if err != nil {
				return err
			}
			legal := g.LegalMoves()
			names := make([]string, 0, len(legal))
			for _, m := range legal {
				if uci {
					names = append(names, m.UCI())
				} else {
					names = append(names, engine.MoveToSAN(m, g.State(), legal))
				}
			}
			sort.Strings(names)
			a.log.Debug().Str("fen", g.FEN()).Int("moves", len(names)).Msg("generated")

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fen, "fen", "", "position to use instead of the standard start")
	cmd.Flags().BoolVar(&uci, "uci", false, "print moves in UCI notation instead of SAN")
	return cmd
}
