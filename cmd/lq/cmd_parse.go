package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/lq/format"
	"github.com/dhamidi/lq/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse [query...]",
		Short: "Parse a query and dump its syntax tree",
		Long: `Parse a query and dump its syntax tree to stdout.

The query is taken from the arguments, joined by spaces, or read from
stdin when no arguments are given.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readQuery(cmd, args)
			if err != nil {
				return err
			}

			node, err := parser.Parse(source, parser.WithMaxDepth(maxDepth))
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format ("+strings.Join(format.Formats, ", ")+")")
	cmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting of parenthesized groups")

	return cmd
}
