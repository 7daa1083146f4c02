package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/autogen"
	"github.com/hupe1980/autogen/assistant"
	"github.com/hupe1980/autogen/record"
)

func chessCmd(g *globalFlags) *cobra.Command {
	var (
		enginePath string
		provider   string
		modelName  string
		debugUCI   bool
		opts       autogen.ChessMatchOptions
	)

	cmd := &cobra.Command{
		Use:   "chess",
		Short: "Play a UCI engine (white) against a chat model (black)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(g.logLevel, g.logFormat)
			if err != nil {
				return err
			}
			m, err := newModel(provider, modelName, logger)
			if err != nil {
				return err
			}

			searcher := assistant.NewUCISearcher(enginePath, func(o *assistant.UCIOptions) {
				o.Debug = debugUCI
				o.Logger = logger
			})
			conv := autogen.NewChessMatch(searcher, m, func(o *autogen.ChessMatchOptions) {
				*o = opts
				o.Logger = logger
			})
			defer conv.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			rec := record.NewChessRecord()
			playErr := conv.PlayWith(ctx, rec)
			printGame(cmd.OutOrStdout(), rec)
			return playErr
		},
	}

	cmd.Flags().StringVar(&enginePath, "engine", "stockfish", "path to a UCI engine binary")
	cmd.Flags().StringVar(&provider, "provider", "openai", "model provider (openai, anthropic)")
	cmd.Flags().StringVar(&modelName, "model", "", "model id (provider default when empty)")
	cmd.Flags().IntVar(&opts.Rounds, "rounds", 200, "maximum number of move pairs (0 for no limit)")
	cmd.Flags().IntVar(&opts.MaxTries, "max-tries", 5, "moves requested from the model per turn")
	cmd.Flags().DurationVar(&opts.MoveTime, "move-time", time.Second, "engine search budget per move")
	cmd.Flags().BoolVar(&opts.RememberIllegal, "remember-illegal", false, "keep rejected moves across turns")
	cmd.Flags().BoolVar(&debugUCI, "debug-uci", false, "echo the UCI protocol exchange")
	return cmd
}

func printGame(w io.Writer, rec *record.ChessRecord) {
	moves := rec.Moves()
	var b strings.Builder
	for i := 0; i < len(moves); i += 2 {
		fmt.Fprintf(&b, "%d. %s", i/2+1, moves[i])
		if i+1 < len(moves) {
			fmt.Fprintf(&b, " %s", moves[i+1])
		}
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())
	fmt.Fprintf(w, "result: %s (%s)\n", rec.Outcome(), rec.Method())
	fmt.Fprintf(w, "fen: %s\n", rec.FEN())
}
