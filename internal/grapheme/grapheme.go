// Package grapheme wraps uniseg clustering and the whitespace rules used for
// caret boundary detection.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNonBreakingSpace reports whether r is one of the non-breaking space
// variants. These render as visible width and are never collapsed.
func IsNonBreakingSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return true
	}
	return false
}

// IsCollapsible reports whether r is whitespace that a renderer collapses
// away: any Unicode space except the non-breaking variants.
func IsCollapsible(r rune) bool {
	return unicode.IsSpace(r) && !IsNonBreakingSpace(r)
}

// IsCollapsedWhitespace reports whether text has no visible content, i.e. it
// is empty or consists only of collapsible whitespace.
func IsCollapsedWhitespace(text string) bool {
	for _, r := range text {
		if !IsCollapsible(r) {
			return false
		}
	}
	return true
}
