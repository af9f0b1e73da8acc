package main

import (
	"fmt"

	"github.com/dhamidi/lq/escape"
	"github.com/spf13/cobra"
)

func newEscapeCmd() *cobra.Command {
	var phrase bool
	var unescape bool

	cmd := &cobra.Command{
		Use:   "escape <text>",
		Short: "Escape text for use as a term or phrase",
		Long: `Escape text for use as a bare term, or with --phrase for use between
double quotes. --unescape reverses the escaping.

When escaping a term that contains spaces or backslashes, a note on stderr
suggests quoting it as a phrase instead.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]

			var out string
			switch {
			case phrase && unescape:
				out = escape.UnescapePhrase(text)
			case phrase:
				out = escape.Phrase(text)
			case unescape:
				out = escape.UnescapeTerm(text)
			default:
				out = escape.Term(text)
				if escape.RequiresQuotes(text) {
					fmt.Fprintln(cmd.ErrOrStderr(), "note: consider --phrase, text contains spaces or backslashes")
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&phrase, "phrase", false, "escape for use inside double quotes")
	cmd.Flags().BoolVarP(&unescape, "unescape", "u", false, "remove escaping instead of adding it")

	return cmd
}
