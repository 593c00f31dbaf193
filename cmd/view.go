package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/retrolex/internal/app"
	"github.com/zjrosen/retrolex/internal/log"
	"github.com/zjrosen/retrolex/internal/pubsub"
	"github.com/zjrosen/retrolex/internal/ui/viewer"
	"github.com/zjrosen/retrolex/internal/watcher"
)

var (
	viewMode    string
	viewNoWatch bool
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open a file in the interactive viewer",
	Long: `Open a file in the interactive viewer. Press m to cycle the dialect (the
choice is remembered for the file), click a line or press enter to see its
tokens, and r to reload. The file is reloaded on change when watch.enabled
is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVarP(&viewMode, "mode", "m", "",
		"dialect to use instead of the selected one")
	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false,
		"do not reload the file when it changes")
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close(context.Background()) }()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	doc, err := a.Open(ctx, path, viewMode)
	if err != nil {
		return err
	}
	defer doc.Buffer.Close()
	warnUnknownMode(cmd.ErrOrStderr(), doc.Selection)

	vcfg := viewerConfig(a, path)

	if a.Config.Watch.Enabled && !viewNoWatch {
		events := pubsub.NewBroker[string]()
		defer events.Close()

		w, err := watcher.New(watcher.Config{
			Path:     path,
			Debounce: a.Config.Watch.Debounce,
			Broker:   events,
		})
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
		if _, err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "Watching file failed", err, "path", path)
		} else {
			vcfg.FileEvents = events
		}
	}

	model := viewer.New(ctx, doc.Buffer, a.Theme, vcfg)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	final, err := p.Run()
	if m, ok := final.(viewer.Model); ok {
		m.Close()
	} else {
		model.Close()
	}
	if err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// viewerConfig builds the viewer settings for path from the app config.
func viewerConfig(a *app.App, path string) viewer.Config {
	return viewer.Config{
		Path:          path,
		Margin:        a.Config.Viewer.Margin,
		TabWidth:      a.Config.Viewer.TabWidth,
		LineNumbers:   a.Config.Viewer.LineNumbers,
		ShowStatusBar: a.Config.Viewer.ShowStatusBar,
		Load: func() (string, error) {
			data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		OnModeChange: func(mode string) error {
			return a.RememberMode(path, mode)
		},
	}
}
