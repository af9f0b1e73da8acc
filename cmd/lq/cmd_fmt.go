package main

import (
	"fmt"

	"github.com/dhamidi/lq/format"
	"github.com/dhamidi/lq/parser"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var pretty bool
	var indent int

	cmd := &cobra.Command{
		Use:   "fmt [query...]",
		Short: "Print a query in canonical form",
		Long: `Print a query in canonical form.

Canonical output parses back to the same tree. With --pretty the query is
laid out over several lines instead, which is meant for reading only.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readQuery(cmd, args)
			if err != nil {
				return err
			}

			node, err := parser.Parse(source)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			var encoder format.Encoder = format.NewQueryEncoder(cmd.OutOrStdout())
			if pretty {
				encoder = format.NewPrettyEncoder(cmd.OutOrStdout(), indent)
			}
			return encoder.Encode(node)
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "pretty-print across lines")
	cmd.Flags().IntVar(&indent, "indent", 0, "base indentation for --pretty")

	return cmd
}
