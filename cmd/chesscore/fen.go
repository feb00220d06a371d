package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chesscore-go/internal/engine"
)

func newFENCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fen <fen>",
		Short: "Validate a FEN string and print it normalized",
		Long: `Validate a position in Forsyth-Edwards Notation. A valid position is
printed in normalized form; an invalid one is reported with the field
that was rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := engine.ParseFEN(args[0])
			if err != nil {
				a.log.Debug().Err(err).Str("fen", args[0]).Msg("rejected")
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), engine.FormatFEN(state))
			return nil
		},
	}
}
