package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dhamidi/lq/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCheckCmd() *cobra.Command {
	var maxDepth int
	var jobs int

	cmd := &cobra.Command{
		Use:   "check <pattern>...",
		Short: "Check files of saved queries for syntax errors",
		Long: `Check files of saved queries for syntax errors.

Each file holds a single query. Patterns may use ** to match across
directories, for example queries/**/*.lucene. Errors are reported as
path:line:column: message.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no files match %s", strings.Join(args, " "))
			}

			results, err := checkFiles(cmd.Context(), paths, jobs, parser.WithMaxDepth(maxDepth))
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if res.err == nil {
					continue
				}
				failed++
				fmt.Fprintln(cmd.OutOrStdout(), res)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting of parenthesized groups")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files checked concurrently")

	return cmd
}

// expandPatterns resolves glob patterns to a deduplicated list of regular
// files, in the order they were first matched.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				result = append(result, m)
			}
		}
	}

	return result, nil
}

type checkResult struct {
	path   string
	source string
	err    error
}

func (r checkResult) String() string {
	var syntaxErr *parser.SyntaxError
	if !errors.As(r.err, &syntaxErr) {
		return fmt.Sprintf("%s: %v", r.path, r.err)
	}
	line, col := lineColumn(r.source, syntaxErr.Pos)
	return fmt.Sprintf("%s:%d:%d: %v", r.path, line, col, syntaxErr)
}

// checkFiles parses every file and returns one result per path, in order.
// The returned error is only set when a file could not be read.
func checkFiles(ctx context.Context, paths []string, jobs int, opts ...parser.Option) ([]checkResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]checkResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			source := strings.TrimRight(string(data), "\r\n")
			_, err = parser.Parse(source, opts...)
			results[i] = checkResult{path: path, source: source, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// lineColumn converts a byte offset to a 1-based line and rune column.
func lineColumn(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}
	before := source[:offset]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return line, utf8.RuneCountInString(before) + 1
}
