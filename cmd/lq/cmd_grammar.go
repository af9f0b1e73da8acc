package main

import (
	"fmt"
	"reflect"

	"github.com/dhamidi/lq/parser"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var production string

	cmd := &cobra.Command{
		Use:   "grammar [text]",
		Short: "Print the query grammar in EBNF",
		Long: `Verify the query grammar and print it in EBNF.

With --match, match text against a production of the grammar instead and
print how many bytes of it the production accepts.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := parser.Grammar()
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			if production == "" {
				fmt.Fprint(cmd.OutOrStdout(), parser.GrammarSource())
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("--match requires text to match")
			}
			if _, ok := grammar[production]; !ok {
				return fmt.Errorf("unknown production: %s", production)
			}
			n := parser.NewMatcher(grammar).Match(production, args[0])
			if n < 0 {
				return fmt.Errorf("%s does not match %q", production, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%q\n", n, args[0][:n])
			return nil
		},
	}

	cmd.Flags().StringVar(&production, "match", "", "production to match text against")

	return cmd
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(out, v.Index(i).Interface())
		}
		return
	}
	fmt.Fprintln(out, err)
}
