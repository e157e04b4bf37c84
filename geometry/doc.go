// Package geometry maps a selection range onto the blocks and inputs it
// touches. It holds no state: every call recomputes from the live document.
package geometry
