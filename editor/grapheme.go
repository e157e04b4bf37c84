package editor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	graphemeutil "github.com/iw2rmb/blockedit/internal/grapheme"
)

const tabWidth = 4

type graphemeCell struct {
	Text  string
	Width int
}

// layoutClusters splits text into grapheme clusters with their terminal-cell
// widths, starting at visual column startCell.
func layoutClusters(text string, startCell int) []graphemeCell {
	clusters := graphemeutil.Split(text)
	if len(clusters) == 0 {
		return nil
	}

	out := make([]graphemeCell, 0, len(clusters))
	col := maxInt(startCell, 0)
	for _, c := range clusters {
		w := graphemeCellWidth(c, col)
		out = append(out, graphemeCell{Text: c, Width: w})
		col += w
	}
	return out
}

func graphemeCellWidth(text string, visualCol int) int {
	if text == "\t" {
		return tabAdvance(visualCol)
	}

	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		if fallback := uniseg.StringWidth(text); fallback > w {
			w = fallback
		}
	}
	return w
}

func tabAdvance(visualCol int) int {
	return tabWidth - visualCol%tabWidth
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
