package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/autogen"
	"github.com/hupe1980/autogen/assistant"
	"github.com/hupe1980/autogen/core"
	"github.com/hupe1980/autogen/internal/dot"
	"github.com/hupe1980/autogen/model"
)

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "graph <chess|chat>",
		Short:     "Print a pipeline plan as a Graphviz DOT document",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"chess", "chat"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := renderPlan(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	return cmd
}

// renderPlan builds the named pipeline with offline stand-ins and renders
// its plan. Nothing is started or contacted.
func renderPlan(name string) (string, error) {
	m := model.NewMockModel("model", "offline")

	var d core.Describer
	switch name {
	case "chat":
		d = autogen.NewChatSession(defaultPrompt, m)
	case "chess":
		d = autogen.NewChessMatch(assistant.NewUCISearcher("stockfish"), m)
	default:
		return "", fmt.Errorf("unknown pipeline %q (want chess or chat)", name)
	}
	return dot.Render(d.Describe())
}
