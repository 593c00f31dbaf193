package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/ui/markdown"
)

var (
	dialectsPlain bool
	dialectsWidth int
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List the supported dialects and platforms",
	Args:  cobra.NoArgs,
	RunE:  runDialects,
}

func init() {
	rootCmd.AddCommand(dialectsCmd)

	dialectsCmd.Flags().BoolVar(&dialectsPlain, "plain", false, "print unstyled text")
	dialectsCmd.Flags().IntVar(&dialectsWidth, "width", 100, "wrap width")
}

func runDialects(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if dialectsPlain {
		return writeDialectsPlain(out, dialectsWidth)
	}

	r, err := markdown.New(dialectsWidth, cfg.Viewer.MarkdownStyle)
	if err != nil {
		return err
	}
	rendered, err := r.Render(dialectsMarkdown())
	if err != nil {
		return fmt.Errorf("rendering dialects: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// dialectsMarkdown describes every dialect and platform as markdown tables.
func dialectsMarkdown() string {
	var b strings.Builder
	b.WriteString("# Dialects\n\n")
	b.WriteString("| Mode | Name | Family | Comments | Strings | Numbers | Reserved words |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, d := range dialect.All() {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s | %s | %d |\n",
			d.ID, d.Name, d.Family, codeList(comments(d)), codeList(delimiters(d)),
			strings.Join(numberNames(d), ", "), reservedWords(d))
	}

	b.WriteString("\n# Platforms\n\n")
	b.WriteString("| Platform | Name | Assembly (.s .asm) | BASIC (.bas) |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, p := range dialect.Platforms() {
		fmt.Fprintf(&b, "| `%s` | %s | `%s` | `%s` |\n", p.ID, p.Name, p.Assembly, p.Basic)
	}
	return b.String()
}

func writeDialectsPlain(w io.Writer, width int) error {
	var b strings.Builder
	for _, d := range dialect.All() {
		fmt.Fprintf(&b, "%s (%s)\n", d.ID, d.Name)
		if d.Plain {
			b.WriteString(markdown.Wrap("no classification", width, 2))
			b.WriteString("\n")
			continue
		}
		desc := fmt.Sprintf("%s; comments: %s; strings: %s; numbers: %s; %d reserved words",
			d.Family, strings.Join(comments(d), " "), strings.Join(delimiters(d), " "),
			strings.Join(numberNames(d), ", "), reservedWords(d))
		b.WriteString(markdown.Wrap(desc, width, 2))
		b.WriteString("\n")
	}
	b.WriteString("\nplatforms:\n")
	for _, p := range dialect.Platforms() {
		fmt.Fprintf(&b, "  %s (%s): assembly %s, basic %s\n", p.ID, p.Name, p.Assembly, p.Basic)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func comments(d *dialect.Dialect) []string {
	out := make([]string, 0, len(d.Comments))
	for _, c := range d.Comments {
		s := c.Introducer
		if c.LineStartOnly {
			s += " (line start)"
		}
		out = append(out, s)
	}
	return out
}

func delimiters(d *dialect.Dialect) []string {
	out := make([]string, 0, len(d.StringDelimiters))
	for i := 0; i < len(d.StringDelimiters); i++ {
		out = append(out, string(d.StringDelimiters[i]))
	}
	return out
}

func numberNames(d *dialect.Dialect) []string {
	out := make([]string, 0, len(d.Numbers))
	for _, n := range d.Numbers {
		out = append(out, n.Name)
	}
	return out
}

func reservedWords(d *dialect.Dialect) int {
	n := 0
	for _, t := range d.Tables {
		n += t.Len()
	}
	return n
}

// codeList formats items as inline code, or "none".
func codeList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = "`" + s + "`"
	}
	return strings.Join(parts, " ")
}
