package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/filemode"
	"github.com/zjrosen/retrolex/internal/scan"
	"github.com/zjrosen/retrolex/internal/session"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	tokensMode   string
	tokensFormat string
	tokensFrom   int
	tokensTo     int
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the classified spans of each line",
	Long: `Print the classified spans of each line as text, json or yaml. --from and
--to select a 1-based inclusive line range; earlier lines are scanned only to
learn the entry state of the first requested line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensMode, "mode", "m", "",
		"dialect to use instead of the selected one")
	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", formatText,
		"output format: text, json or yaml")
	tokensCmd.Flags().IntVar(&tokensFrom, "from", 1, "first line to print")
	tokensCmd.Flags().IntVar(&tokensTo, "to", 0, "last line to print (0 means the last line)")
}

// tokenDocument is the json and yaml output of the tokens command.
type tokenDocument struct {
	Path   string          `json:"path,omitempty" yaml:"path,omitempty"`
	Mode   string          `json:"mode" yaml:"mode"`
	Source filemode.Source `json:"source" yaml:"source"`
	Lines  []tokenLine     `json:"lines" yaml:"lines"`
}

type tokenLine struct {
	Line   int        `json:"line" yaml:"line"`
	Text   string     `json:"text" yaml:"text"`
	Tokens []token    `json:"tokens" yaml:"tokens"`
	Exit   scan.State `json:"exit" yaml:"exit"`
}

type token struct {
	Start    int              `json:"start" yaml:"start"`
	End      int              `json:"end" yaml:"end"`
	Category dialect.Category `json:"category" yaml:"category"`
	Text     string           `json:"text" yaml:"text"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	switch tokensFormat {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("invalid --format %q: want text, json or yaml", tokensFormat)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	defer func() { _ = a.Close(context.Background()) }()

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	text, selPath, err := readSource(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	doc := a.OpenText(ctx, selPath, text, tokensMode)
	warnUnknownMode(cmd.ErrOrStderr(), doc.Selection)
	defer doc.Buffer.Close()

	start, end, err := lineRange(tokensFrom, tokensTo, doc.Buffer.Len())
	if err != nil {
		return err
	}
	results, err := doc.Buffer.Range(ctx, start, end)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if tokensFormat == formatText {
		return writeTokenText(out, results)
	}

	td := tokenDocument{
		Path:   selPath,
		Mode:   doc.Selection.Mode,
		Source: doc.Selection.Source,
		Lines:  make([]tokenLine, 0, len(results)),
	}
	for _, res := range results {
		td.Lines = append(td.Lines, newTokenLine(res))
	}

	if tokensFormat == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(td)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(td); err != nil {
		return err
	}
	return enc.Close()
}

// lineRange converts a 1-based inclusive range into [start, end) of n lines.
func lineRange(from, to, n int) (int, int, error) {
	if to == 0 || to > n {
		to = n
	}
	if from < 1 || from > to {
		return 0, 0, fmt.Errorf("invalid line range %d..%d for %d lines", from, to, n)
	}
	return from - 1, to, nil
}

func newTokenLine(res session.LineResult) tokenLine {
	tl := tokenLine{
		Line:   res.Index + 1,
		Text:   res.Text,
		Tokens: make([]token, 0, len(res.Spans)),
		Exit:   res.Exit,
	}
	for _, s := range res.Spans {
		if s.Category == dialect.None {
			continue
		}
		tl.Tokens = append(tl.Tokens, token{
			Start:    s.Start,
			End:      s.End,
			Category: s.Category,
			Text:     s.Text(res.Text),
		})
	}
	return tl
}

func writeTokenText(w io.Writer, results []session.LineResult) error {
	for _, res := range results {
		if _, err := fmt.Fprintln(w, res.Breakdown()); err != nil {
			return err
		}
	}
	return nil
}
