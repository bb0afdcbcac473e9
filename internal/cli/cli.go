// Package cli provides the small cobra harness every dbcparse command is
// built on: a root command that wires up structured logging and a
// context-aware run signature, so individual commands only implement the
// business logic.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Input is handed to every command's run function; it carries the logger
// the command should use.
type Input struct {
	Logger *slog.Logger
}

// CLI wraps a cobra root command with the conventions dbcparse commands
// expect: a shared logger, consistent error reporting, and subcommands
// registered via AddCommands.
type CLI struct {
	root   *cobra.Command
	logger *slog.Logger
	input  Input
}

// NewCLI builds a root command named name with the given short
// description, and a slog logger writing structured text to stderr.
func NewCLI(name, short string) *CLI {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return &CLI{
		root: &cobra.Command{
			Use:           name,
			Short:         short,
			SilenceUsage:  true,
			SilenceErrors: true,
		},
		logger: logger,
		input:  Input{Logger: logger},
	}
}

// AddCommands registers one or more subcommands on the root command.
func (c *CLI) AddCommands(cmds ...*cobra.Command) {
	c.root.AddCommand(cmds...)
}

// Run executes the root command, cancelling its context on SIGINT/SIGTERM.
func (c *CLI) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.root.ExecuteContext(ctx)
}

// WithContext adapts a (context.Context, Input) -> error command body into
// a cobra RunE. Each invocation gets an Input holding a new Info-level text
// logger writing to stderr; the logger built by NewCLI is not passed on.
func WithContext(fn func(ctx context.Context, input Input) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
		return fn(cmd.Context(), Input{Logger: logger})
	}
}
