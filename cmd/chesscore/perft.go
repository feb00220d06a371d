package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/perft"
)

func newPerftCmd(a *app) *cobra.Command {
	var (
		fen       string
		divide    bool
		workers   int
		cacheSize int
	)
	cmd := &cobra.Command{
		Use:   "perft <depth>",
		Short: "Count the leaf nodes of the move tree",
		Long: `Count every legal move sequence of the given depth from a position.
The root moves are searched in parallel; a transposition cache is shared
between workers unless --cache-size is 0.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, err := strconv.Atoi(args[0])
			if err != nil || depth < 0 {
				return errors.Wrapf(errors.ErrInvalidConfig, "depth %q must be a non-negative integer", args[0])
			}
			state, err := engine.ParseFEN(startFEN(fen))
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Perft.Workers
			}
			if !cmd.Flags().Changed("cache-size") {
				cacheSize = a.cfg.Perft.CacheSize
			}
			opts := []perft.Option{
				perft.WithWorkers(workers),
				perft.WithCollector(a.collector),
				perft.WithLogger(a.log),
			}
			if cacheSize > 0 {
				cache, err := hashing.NewCache(cacheSize, a.collector)
				if err != nil {
					return err
				}
				opts = append(opts, perft.WithCache(cache))
			}

			result, err := perft.NewRunner(opts...).Run(cmd.Context(), state, depth)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if divide {
				for _, mc := range result.Divide {
					fmt.Fprintf(out, "%s: %d\n", mc.Move, mc.Nodes)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Nodes searched: %d\n", result.Nodes)
			return nil
		},
	}
	cmd.Flags().StringVar(&fen, "fen", "", "position to search instead of the standard start")
	cmd.Flags().BoolVar(&divide, "divide", false, "print the node count below each root move")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of worker goroutines (0 for one per CPU)")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "transposition cache entries (0 disables the cache)")
	return cmd
}

func startFEN(fen string) string {
	if fen == "" {
		return engine.InitialFEN
	}
	return fen
}
