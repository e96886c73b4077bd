package tui

import (
	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the column width used for rendered solutions.
const DefaultWordWrap = 100

// NewRenderer returns a function that renders markdown using glamour.
// style is a glamour standard style name ("dark", "light", "notty", ...); empty picks one
// from the terminal background.
func NewRenderer(style string) (func(string) (string, error), error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(DefaultWordWrap),
	)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
