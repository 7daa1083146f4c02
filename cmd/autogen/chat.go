package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/autogen"
	"github.com/hupe1980/autogen/record"
)

const defaultPrompt = "Hello! What can you help me with?"

func chatCmd(g *globalFlags) *cobra.Command {
	var provider, modelName, instruction string

	cmd := &cobra.Command{
		Use:   "chat [prompt]",
		Short: "Send a prompt to a chat model and print the reply",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g.logLevel, g.logFormat)
			if err != nil {
				return err
			}
			m, err := newModel(provider, modelName, logger)
			if err != nil {
				return err
			}

			prompt := defaultPrompt
			if len(args) == 1 {
				prompt = args[0]
			}

			conv := autogen.NewChatSession(prompt, m, func(o *autogen.ChatSessionOptions) {
				o.Instruction = instruction
				o.Logger = logger
			})
			defer conv.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			rec := record.NewChatRecord()
			if err := conv.PlayWith(ctx, rec); err != nil {
				return err
			}
			if last, ok := rec.Last(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(last.Content))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "openai", "model provider (openai, anthropic)")
	cmd.Flags().StringVar(&modelName, "model", "", "model id (provider default when empty)")
	cmd.Flags().StringVar(&instruction, "instruction", autogen.DefaultInstruction, "system instruction sent before the prompt")
	return cmd
}
