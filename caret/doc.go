// Package caret answers whether a caret sits at the logical start or end of
// an input, and provides an in-memory caret controller with shadow anchors
// that survive document mutations.
package caret
