// Command autogen runs the bundled agent pipelines from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/hupe1980/autogen/logging"
	"github.com/hupe1980/autogen/model"
	"github.com/hupe1980/autogen/model/anthropic"
	"github.com/hupe1980/autogen/model/openai"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	logLevel  string
	logFormat string
}

func rootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "autogen",
		Short: "autogen runs pipelines of cooperating agents",
		Long: `autogen composes agents that take turns on a shared record.

A chat pipeline sends a prompt to a model. A chess pipeline lets a UCI
engine play against a chat model and falls back to the engine whenever
the model cannot produce a legal move.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "pretty", "log format (json, text, pretty)")

	root.AddCommand(chatCmd(&g))
	root.AddCommand(chessCmd(&g))
	root.AddCommand(graphCmd())
	return root
}

// newLogger validates the global log flags and builds a logger writing to stderr.
func newLogger(level, format string) (logging.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	format = strings.ToLower(format)
	switch format {
	case "json", "text", "pretty":
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     lvl,
		Format:    format,
		Output:    os.Stderr,
		Component: "autogen",
	}), nil
}

// newModel builds a model adapter for provider. An empty name keeps the
// adapter's default model.
func newModel(provider, name string, logger logging.Logger) (model.Model, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if name != "" {
				o.Model = name
			}
			o.Logger = logger
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if name != "" {
				o.Model = sdk.Model(name)
			}
			o.Logger = logger
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
