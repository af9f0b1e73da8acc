package main

import (
	"github.com/dhamidi/lq/lsp"
	"github.com/dhamidi/lq/parser"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newLSPCmd() *cobra.Command {
	var verbosity int
	var logFile string
	var maxDepth int

	cmd := &cobra.Command{
		Use:          "lsp",
		Short:        "Start the Language Server Protocol server on stdio",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)

			server := lsp.NewServer(version, parser.WithMaxDepth(maxDepth))
			return server.RunStdio()
		},
	}

	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	cmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting of parenthesized groups")

	return cmd
}
