package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/retrolex/internal/app"
	"github.com/zjrosen/retrolex/internal/highlight"
	"github.com/zjrosen/retrolex/internal/log"
)

var (
	highlightMode        string
	highlightLineNumbers bool
	highlightTabWidth    int
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [file...]",
	Short: "Print files with syntax highlighting",
	Long: `Print one or more files with syntax highlighting. With no file, or "-",
standard input is read and --mode (or default_mode) picks the dialect.`,
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)

	highlightCmd.Flags().StringVarP(&highlightMode, "mode", "m", "",
		"dialect to use instead of the selected one")
	highlightCmd.Flags().BoolVarP(&highlightLineNumbers, "line-numbers", "n", false,
		"prefix lines with their number (default from viewer.line_numbers)")
	highlightCmd.Flags().IntVar(&highlightTabWidth, "tab-width", 0,
		"tab stop width (default from viewer.tab_width)")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close(context.Background()) }()

	opts := renderOptions(cmd)
	if len(args) == 0 {
		args = []string{"-"}
	}

	out := cmd.OutOrStdout()
	for _, path := range args {
		if err := highlightOne(commandContext(cmd), a, cmd.InOrStdin(), out, cmd.ErrOrStderr(), path, opts); err != nil {
			return err
		}
	}
	return nil
}

func renderOptions(cmd *cobra.Command) highlight.Options {
	opts := highlight.Options{
		TabWidth:    cfg.Viewer.TabWidth,
		LineNumbers: cfg.Viewer.LineNumbers,
	}
	if cmd.Flags().Changed("line-numbers") {
		opts.LineNumbers = highlightLineNumbers
	}
	if cmd.Flags().Changed("tab-width") {
		opts.TabWidth = highlightTabWidth
	}
	return opts
}

func highlightOne(ctx context.Context, a *app.App, in io.Reader, out, errOut io.Writer, path string, opts highlight.Options) error {
	text, selPath, err := readSource(in, path)
	if err != nil {
		return err
	}

	sel := a.Resolve(ctx, selPath, highlightMode)
	warnUnknownMode(errOut, sel)
	log.Debug(log.CatScan, "Highlighting", "path", path, "mode", sel.Mode, "source", sel.Source)

	_, err = io.WriteString(out, highlight.RenderDocument(ctx, text, sel.Dialect(), a.Theme, opts))
	return err
}

// readSource reads path, or in for "-". The returned selection path is empty
// for standard input.
func readSource(in io.Reader, path string) (text, selPath string, err error) {
	if path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), path, nil
}
