// Package redactor turns Delete and Backspace intent over a live selection
// into block-level document mutations, merges blocks with caret restoration,
// and keeps selections out of blocks that cannot hold one.
//
// The package talks to its collaborators through the BlockRepository and
// CaretController ports. document.Repository and caret.Controller are the
// in-memory implementations.
package redactor
