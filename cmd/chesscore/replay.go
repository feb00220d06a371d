package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chesscore-go/internal/eco"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/game"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/matching"
	"github.com/lgbarn/chesscore-go/internal/output"
	"github.com/lgbarn/chesscore-go/internal/parser"
	"github.com/lgbarn/chesscore-go/internal/stats"
	"github.com/lgbarn/chesscore-go/internal/worker"
)

// replayed is one game after replay, with the tags it was read with.
type replayed struct {
	game *game.Game
	tags map[string]string
}

func newReplayCmd(a *app) *cobra.Command {
	var (
		format     string
		export     bool
		dedupe     bool
		exactMatch bool
		workers    int
		ecoFile    string
		filter     filterFlags
	)
	cmd := &cobra.Command{
		Use:   "replay <file.pgn>...",
		Short: "Replay PGN games through the rules engine",
		Long: `Replay every game of the given PGN files ("-" for standard input) and
report the final position and outcome of each. With --export or --format
the replayed games are written as PGN, JSON or JSON lines instead.

Examples:
  # Check a database for illegal moves
  chesscore replay games.pgn

  # Re-export without duplicates as JSON
  chesscore replay --dedupe --format json games.pgn

  # Fischer's decisive games of 1972
  chesscore replay --player Fischer --match 'Date >= "1972.01.01"' \
    --match 'Result != "1/2-1/2"' games.pgn`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				export = true
			} else {
				format = a.cfg.Output.Format
			}
			if !cmd.Flags().Changed("dedupe") {
				dedupe = a.cfg.Duplicate.Suppress
			}
			if !cmd.Flags().Changed("exact") {
				exactMatch = a.cfg.Duplicate.ExactMatch
			}
			if workers <= 0 {
				workers = worker.DefaultWorkers()
			}
			if ecoFile == "" {
				ecoFile = a.cfg.Output.ECOFile
			}
			var classifier *eco.Classifier
			if ecoFile != "" {
				classifier = eco.NewClassifier(a.log)
				if err := classifier.LoadFile(ecoFile); err != nil {
					return err
				}
			}

			matcher, err := filter.build()
			if err != nil {
				return err
			}
			if matcher.Len() > 0 {
				a.log.Debug().Str("matcher", matcher.Name()).Msg("filtering games")
			}

			var games []*parser.Game
			for _, name := range args {
				parsed, err := readGames(cmd.InOrStdin(), name, a)
				if err != nil {
					return err
				}
				games = append(games, parsed...)
			}

			results := worker.Run(games, replayGame, worker.WithWorkers(workers), worker.WithBufferSize(len(games)+1))

			var writer output.GameWriter
			if export {
				w, ok := output.NewGameWriter(cmd.OutOrStdout(), format, a.cfg.Output.Options())
				if !ok {
					return errors.Wrapf(errors.ErrInvalidConfig, "unknown output format %q", format)
				}
				writer = w
			}

			var detector *hashing.DuplicateDetector
			if dedupe {
				detector = hashing.NewDuplicateDetector(exactMatch)
			}

			failed := 0
			for _, res := range results {
				n := res.Index + 1
				if res.Error != nil {
					failed++
					a.collector.IncCounter(stats.MetricReplayErrors, 1)
					a.log.Warn().Err(res.Error).Int("game", n).Msg("replay failed")
					if !export {
						fmt.Fprintf(cmd.OutOrStdout(), "%d: error: %v\n", n, res.Error)
					}
					continue
				}
				g := res.Value.game
				a.collector.IncCounter(stats.MetricGamesReplayed, 1)
				a.collector.IncCounter(stats.MetricPliesReplayed, int64(g.Ply()))
				tags := res.Value.tags
				if !matcher.Match(g, tags) {
					a.collector.IncCounter(stats.MetricGamesFiltered, 1)
					continue
				}
				if detector != nil && detector.CheckAndAdd(g) {
					a.log.Debug().Int("game", n).Msg("duplicate skipped")
					continue
				}
				if classifier != nil {
					classifier.AddTags(g, tags)
				}

				if writer != nil {
					if err := writer.WriteGame(g, tags); err != nil {
						return err
					}
					continue
				}
				line := fmt.Sprintf("%d: %s %s", n, describeOutcome(g), g.FEN())
				if code := tags["ECO"]; classifier != nil && code != "" {
					line += " " + code
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if writer != nil {
				if err := writer.Close(); err != nil {
					return err
				}
			}

			ev := a.log.Info().Int("games", len(games)).Int("failed", failed)
			if detector != nil {
				ev = ev.Int("duplicates", detector.DuplicateCount())
			}
			ev.Msg("replay finished")
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: pgn, json or jsonl")
	cmd.Flags().BoolVar(&export, "export", false, "export the games in the configured output format")
	cmd.Flags().BoolVarP(&dedupe, "dedupe", "D", false, "skip games whose final position was already seen")
	cmd.Flags().BoolVar(&exactMatch, "exact", false, "with --dedupe, also require the same number of moves")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of worker goroutines (0 for one per CPU)")
	cmd.Flags().StringVar(&ecoFile, "eco", "", "PGN file of ECO lines for adding opening tags")
	filter.register(cmd)
	return cmd
}

// filterFlags selects which replayed games are reported or exported.
type filterFlags struct {
	criteria []string
	players  []string
	soundex  bool
	any      bool
	endedBy  []string
	minPlies int
	maxPlies int
	position string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.criteria, "match", "m", nil, `tag criterion such as 'White "Fischer"' or 'Date >= "1970"' (repeatable)`)
	cmd.Flags().StringArrayVarP(&f.players, "player", "p", nil, "keep games with this player as White or Black (repeatable)")
	cmd.Flags().BoolVar(&f.soundex, "soundex", false, "compare --player names phonetically")
	cmd.Flags().BoolVar(&f.any, "any", false, "keep games matching any tag criterion instead of all")
	cmd.Flags().StringSliceVar(&f.endedBy, "ended-by", nil, "keep games ending by one of: checkmate, stalemate, repetition, 50-move-rule, insufficient, resignation, timeout, agreement")
	cmd.Flags().IntVar(&f.minPlies, "min-plies", 0, "keep games of at least this many half-moves")
	cmd.Flags().IntVar(&f.maxPlies, "max-plies", 0, "keep games of at most this many half-moves")
	cmd.Flags().StringVar(&f.position, "position", "", "keep games passing through this FEN position")
}

// build combines the flags into one matcher. Without flags it matches
// every game.
func (f *filterFlags) build() (*matching.CompositeMatcher, error) {
	all := matching.NewCompositeMatcher(matching.MatchAll)

	if len(f.criteria) > 0 || len(f.players) > 0 {
		tm := matching.NewTagMatcher()
		tm.SetMatchAll(!f.any)
		for _, c := range f.criteria {
			if err := tm.ParseCriterion(c); err != nil {
				return nil, err
			}
		}
		for _, p := range f.players {
			tm.AddPlayer(p, f.soundex)
		}
		all.Add(tm)
	}
	if len(f.endedBy) > 0 {
		om, err := matching.NewOutcomeMatcher(f.endedBy...)
		if err != nil {
			return nil, err
		}
		all.Add(om)
	}
	if f.minPlies > 0 || f.maxPlies > 0 {
		if f.maxPlies > 0 && f.minPlies > f.maxPlies {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "--min-plies %d exceeds --max-plies %d", f.minPlies, f.maxPlies)
		}
		all.Add(matching.PlyMatcher{Min: f.minPlies, Max: f.maxPlies})
	}
	if f.position != "" {
		pm, err := matching.NewPositionMatcher(f.position)
		if err != nil {
			return nil, err
		}
		all.Add(pm)
	}
	return all, nil
}

// readGames parses every game of the named file, or of stdin for "-".
func readGames(stdin io.Reader, name string, a *app) ([]*parser.Game, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	games, err := parser.NewParser(r, parser.WithLogger(a.log)).ParseAllGames()
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	a.log.Debug().Str("file", name).Int("games", len(games)).Msg("parsed")
	return games, nil
}

func replayGame(item worker.WorkItem[*parser.Game]) worker.ProcessResult[replayed] {
	pg := item.Payload
	g, err := parser.Replay(pg)
	return worker.ProcessResult[replayed]{
		Value: replayed{game: g, tags: pg.TagMap()},
		Index: item.Index,
		Error: err,
	}
}

// describeOutcome is "1-0 (checkmate)" for a decided game and "*" for one
// still in progress.
func describeOutcome(g *game.Game) string {
	if o := g.Outcome(); o != nil {
		return o.String()
	}
	return g.Result().PGN()
}
