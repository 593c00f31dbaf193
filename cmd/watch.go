package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/retrolex/internal/highlight"
	"github.com/zjrosen/retrolex/internal/log"
	"github.com/zjrosen/retrolex/internal/session"
	"github.com/zjrosen/retrolex/internal/watcher"
)

var watchMode string

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Print a file and reprint the changed lines on every save",
	Long: `Print a file with syntax highlighting, then wait for changes. On every save
only the lines from the first changed one to the end are rescanned and
printed. Stop with ctrl+c.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchMode, "mode", "m", "",
		"dialect to use instead of the selected one")
	watchCmd.Flags().BoolVarP(&highlightLineNumbers, "line-numbers", "n", false,
		"prefix lines with their number (default from viewer.line_numbers)")
	watchCmd.Flags().IntVar(&highlightTabWidth, "tab-width", 0,
		"tab stop width (default from viewer.tab_width)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close(context.Background()) }()

	doc, err := a.Open(ctx, path, watchMode)
	if err != nil {
		return err
	}
	defer doc.Buffer.Close()
	warnUnknownMode(cmd.ErrOrStderr(), doc.Selection)

	w, err := watcher.New(watcher.Config{Path: path, Debounce: a.Config.Watch.Debounce})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()
	changes, err := w.Start()
	if err != nil {
		return err
	}

	lw := &lineWriter{
		out:   cmd.OutOrStdout(),
		buf:   doc.Buffer,
		theme: a.Theme,
		opts:  renderOptions(cmd),
	}
	if err := lw.printFrom(ctx, 0); err != nil {
		return err
	}

	return lw.follow(ctx, changes, func() (string, error) {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
		return string(data), err
	})
}

// lineWriter prints buffer lines with highlighting.
type lineWriter struct {
	out   io.Writer
	buf   *session.Buffer
	theme *highlight.Theme
	opts  highlight.Options
}

// follow reloads the buffer on every signal from changes and prints the lines
// from the first changed one. It returns when ctx is done.
func (lw *lineWriter) follow(ctx context.Context, changes <-chan struct{}, load func() (string, error)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			text, err := load()
			if err != nil {
				log.ErrorErr(log.CatWatcher, "Reload failed", err)
				fmt.Fprintf(lw.out, "--- reload failed: %v\n", err)
				continue
			}
			first := lw.buf.SetText(text)
			if first < 0 {
				continue
			}
			fmt.Fprintf(lw.out, "--- changed from line %d\n", first+1)
			if err := lw.printFrom(ctx, first); err != nil {
				return err
			}
		}
	}
}

// printFrom prints lines [from, Len()).
func (lw *lineWriter) printFrom(ctx context.Context, from int) error {
	n := lw.buf.Len()
	if from >= n {
		return nil
	}
	results, err := lw.buf.Range(ctx, from, n)
	if err != nil {
		return err
	}

	gutter := len(fmt.Sprint(n))
	for _, res := range results {
		if lw.opts.LineNumbers {
			num := fmt.Sprintf("%*d ", gutter, res.Index+1)
			if _, err := io.WriteString(lw.out, lw.theme.TokenStyle(highlight.TokenLineNumber).Render(num)); err != nil {
				return err
			}
		}
		line := highlight.RenderLine(res.Text, res.Spans, lw.theme, lw.opts.TabWidth)
		if _, err := fmt.Fprintln(lw.out, line); err != nil {
			return err
		}
	}
	return nil
}
