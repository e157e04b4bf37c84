// Package document implements the block document model as an arena tree.
//
// A Document owns an ordered sequence of blocks. Each block owns zero or more
// inputs, optionally nested in wrapper elements. Rich-text inputs hold text
// nodes and inline elements; native inputs are opaque leaves holding a flat
// value. Every node lives in the arena at a stable NodeID and keeps an
// explicit parent index, so "closest enclosing block" is an upward index walk.
//
// Anchors follow DOM boundary-point semantics: inside a text node or a native
// input the offset counts grapheme clusters, inside any other node it is a
// child index. Ranges are ordered pairs of anchors.
package document
