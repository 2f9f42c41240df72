package search

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/ReedMe1234/lgrep/internal/store"
)

const maxPreviewLines = 15

var (
	colorHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green, score >= 80%
	colorMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow, score >= 60%
	colorLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red, everything else
)

// jsonResult is the wire shape for --json output (spec §4.5).
type jsonResult struct {
	File      string  `json:"file"`
	StartLine int     `json:"start_line"`
	EndLine   int     `json:"end_line"`
	Score     float32 `json:"score"`
	Content   string  `json:"content,omitempty"`
	Language  string  `json:"language"`
}

// FormatText writes results as human-readable output: one colored header
// per result, plus an optional content preview.
func FormatText(w io.Writer, results []store.SearchResult, showContent bool) {
	color := isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == ""

	for i, r := range results {
		pct := int(math.Floor(float64(r.Score * 100)))
		header := fmt.Sprintf("[%d] %s:%d-%d (%d%%)", i+1, r.Chunk.FilePath, r.Chunk.StartLine, r.Chunk.EndLine, pct)
		if color {
			header = scoreStyle(pct).Render(header)
		}
		fmt.Fprintln(w, header)

		if showContent {
			for _, line := range previewLines(r.Chunk.Text, r.Chunk.StartLine) {
				fmt.Fprintln(w, line)
			}
		}
	}
}

// FormatJSON writes results as a JSON array preserving input order.
func FormatJSON(w io.Writer, results []store.SearchResult) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{
			File:      r.Chunk.FilePath,
			StartLine: r.Chunk.StartLine,
			EndLine:   r.Chunk.EndLine,
			Score:     r.Score,
			Content:   r.Chunk.Text,
			Language:  r.Chunk.Language,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func scoreStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 80:
		return colorHigh
	case pct >= 60:
		return colorMid
	default:
		return colorLow
	}
}

// previewLines returns up to maxPreviewLines of text, each prefixed with
// its 1-indexed line number continuing from startLine.
func previewLines(text string, startLine int) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > maxPreviewLines {
		lines = lines[:maxPreviewLines]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%4d| %s", startLine+i, l)
	}
	return out
}
