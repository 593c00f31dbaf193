package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/zjrosen/retrolex/internal/dialect"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show or change which dialect a file is highlighted with",
	Long: `Show or change which dialect a file is highlighted with. A file's mode is
chosen from, in order: the mode remembered for that file, the extensions map
in the config, the platform default for .s, .asm and .bas, default_mode, and
plain.`,
}

var modeGetCmd = &cobra.Command{
	Use:   "get <file>",
	Short: "Print the mode selected for a file and the rule that chose it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(context.Background()) }()

		sel := a.Resolve(commandContext(cmd), args[0], "")
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sel.Mode, sel.Source)
		return nil
	},
}

var modeSetCmd = &cobra.Command{
	Use:   "set <file> <mode>",
	Short: "Remember a mode for a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(context.Background()) }()

		if err := a.RememberMode(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], args[1])
		return nil
	},
}

var modeClearCmd = &cobra.Command{
	Use:   "clear <file>",
	Short: "Forget the mode remembered for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(context.Background()) }()
		return a.ForgetMode(args[0])
	},
}

var modeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every remembered mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(context.Background()) }()

		choices, err := a.RememberedModes()
		if err != nil {
			return err
		}
		width := 0
		for _, c := range choices {
			width = max(width, runewidth.StringWidth(c.Mode))
		}
		for _, c := range choices {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", runewidth.FillRight(c.Mode, width), c.Path)
		}
		return nil
	},
}

var modeExtCmd = &cobra.Command{
	Use:   "ext <extension> <mode>",
	Short: "Map a file extension to a mode in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(context.Background()) }()

		if err := a.SetExtension(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", args[0], args[1], a.ConfigPath)
		return nil
	},
}

var modePlatformCmd = &cobra.Command{
	Use:   "platform [id]",
	Short: "Show or set the platform used for .s, .asm and .bas files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(context.Background()) }()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			if err := a.SetPlatform(args[0]); err != nil {
				return err
			}
		}
		current := a.Selector.Platform()
		for _, p := range dialect.Platforms() {
			marker := " "
			if p.ID == current.ID {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s  %s\n", marker, runewidth.FillRight(p.ID, 6), p.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
	modeCmd.AddCommand(modeGetCmd, modeSetCmd, modeClearCmd, modeListCmd, modeExtCmd, modePlatformCmd)

	modeSetCmd.Long = "Remember a mode for a file. Modes: " + strings.Join(dialect.IDs(), ", ")
}

// commandContext returns the command's context, or Background when it was
// executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
