package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chesscore-go/internal/analysis"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

func newAnalyseCmd(a *app) *cobra.Command {
	var (
		fen        string
		depth      int
		enginePath string
	)
	cmd := &cobra.Command{
		Use:     "analyse",
		Aliases: []string{"analyze"},
		Short:   "Stream evaluations of a position from a UCI engine",
		Long: `Start the configured UCI engine, search the position to the given depth
and print each evaluation as the engine reports it, followed by the best
move. Interrupting the command stops the search.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if enginePath == "" {
				enginePath = a.cfg.Engine.Path
			}
			if enginePath == "" {
				return errors.Wrap(errors.ErrInvalidConfig, "no engine configured; set engine.path or --engine")
			}
			if !cmd.Flags().Changed("depth") {
				depth = a.cfg.Engine.Depth
			}

			ctx := cmd.Context()
			session, err := analysis.Start(ctx, enginePath, a.cfg.Engine.Args, analysis.WithLogger(a.log))
			if err != nil {
				return err
			}
			defer func() {
				if err := session.Close(); err != nil {
					a.log.Debug().Err(err).Msg("close engine")
				}
			}()

			if err := session.Init(ctx); err != nil {
				return err
			}
			a.log.Info().Str("engine", session.Name()).Int("depth", depth).Msg("analysing")

			evals, err := session.Analyse(ctx, startFEN(fen), depth)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for eval := range evals {
				if eval.BestMove != "" {
					fmt.Fprintf(out, "bestmove %s\n", eval.BestMove)
					continue
				}
				fmt.Fprintf(out, "depth %d score %s pv %s\n", eval.Depth, engine.FormatEvaluation(&eval), strings.Join(eval.PV, " "))
			}
			return ctx.Err()
		},
	}
	cmd.Flags().StringVar(&fen, "fen", "", "position to analyse instead of the standard start")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "search depth (defaults to engine.depth)")
	cmd.Flags().StringVar(&enginePath, "engine", "", "engine binary (defaults to engine.path)")
	return cmd
}
