package main

import (
	"github.com/dhamidi/lq/format"
	"github.com/dhamidi/lq/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var skipWhitespace bool

	cmd := &cobra.Command{
		Use:          "tokens [query...]",
		Short:        "List the tokens of a query",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readQuery(cmd, args)
			if err != nil {
				return err
			}

			tokens := parser.Tokenize(source)
			if skipWhitespace {
				kept := tokens[:0]
				for _, tok := range tokens {
					if tok.Kind != parser.TokenWhitespace {
						kept = append(kept, tok)
					}
				}
				tokens = kept
			}
			return format.NewLineEncoder(cmd.OutOrStdout()).Encode(tokens)
		},
	}

	cmd.Flags().BoolVar(&skipWhitespace, "skip-whitespace", false, "omit whitespace tokens")

	return cmd
}
