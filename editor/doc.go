// Package editor provides a Bubble Tea component that hosts a block document.
//
// The model renders one row per input, owns the live selection through a
// caret.Controller and forwards Backspace and Delete to a redactor.Handler
// before applying its own one-grapheme deletion. Block merges started by the
// handler are resolved through tea.Cmds, and selection changes reach the
// unselectable-region guard after a short debounce.
package editor
