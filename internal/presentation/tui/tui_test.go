package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pdaboat/internal/presentation/tui"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, termenv.Ascii, "0.1.0")

	out := buf.String()
	assert.Contains(t, out, "v0.1.0")
	assert.NotContains(t, out, "\x1b[")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 8)
}

func TestNewRenderer(t *testing.T) {
	render, err := tui.NewRenderer("notty")
	require.NoError(t, err)

	out, err := render("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "1")
}
