// Package inspect implements the "inspect" subcommand: parse a DBC file
// and print a summary of the network description it contains.
package inspect

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/jjalle/godbc/internal/cli"
	"github.com/jjalle/godbc/pkg/dbc"
)

type inspector struct {
	dbcFile string
	verbose bool
}

func NewCommand() *cobra.Command {
	s := &inspector{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Parse a DBC file and print a summary of its contents.",
		Long: `
Parse a DBC file and print its version, the counts of nodes, messages,
environment variables, attribute schemas and value tables, and one line per
message with its transmitter and signal count. With --verbose, each
message's signals are listed as well.`,
		Example: `
# Inspect a DBC file
dbcparse inspect --dbc-file toyota.dbc`,
		RunE: cli.WithContext(s.run),
	}

	cmd.Flags().StringVar(&s.dbcFile, "dbc-file", s.dbcFile, "DBC file")
	cmd.Flags().BoolVar(&s.verbose, "verbose", false, "print every message's signals")

	if err := cmd.MarkFlagRequired("dbc-file"); err != nil {
		fmt.Printf("failed to mark flag as required, err: %v", err)
		return nil
	}

	return cmd
}

func (s *inspector) run(_ context.Context, input cli.Input) error {
	logger := input.Logger
	logger.Info("parsing DBC file", "dbc_file", s.dbcFile)

	file, err := dbc.ParseFile(s.dbcFile)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", s.dbcFile)
	}

	fmt.Printf("version: %s\n", file.Version)
	fmt.Printf("nodes: %d\n", len(file.GetNodes()))
	fmt.Printf("messages: %d\n", len(file.GetMessages()))
	fmt.Printf("environment variables: %d\n", len(file.GetEnvironmentVariables()))
	fmt.Printf("attribute definitions: %d\n", len(file.GetAttributeDefinitions()))
	fmt.Printf("value tables: %d\n", len(file.GetValueTables()))

	for _, msg := range file.GetMessages() {
		transmitter := "?"
		if msg.Transmitter != nil {
			transmitter = msg.Transmitter.Name
		}
		fmt.Printf("  BO_ %d %s : %d %s (%d signals)\n", msg.ID, msg.Name, msg.Size, transmitter, len(msg.GetSignals()))
		if !s.verbose {
			continue
		}
		for _, sig := range msg.GetSignals() {
			fmt.Printf("    SG_ %s : %d|%d unit=%q\n", sig.Name, sig.StartBit, sig.Size, sig.Unit)
		}
	}

	return nil
}
