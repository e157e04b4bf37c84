package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// inputOf returns the i-th input of block id.
func inputOf(t *testing.T, d *Document, id BlockID, i int) NodeID {
	t.Helper()
	b, ok := d.BlockByID(id)
	require.True(t, ok, "block %s", id)
	inputs := d.Inputs(b.Node)
	require.Greater(t, len(inputs), i, "block %s inputs", id)
	return inputs[i]
}

// textOf returns the first child of input, which must be a text node.
func textOf(t *testing.T, d *Document, input NodeID) NodeID {
	t.Helper()
	c := d.ChildAt(input, 0)
	kind, ok := d.Kind(c)
	require.True(t, ok)
	require.Equal(t, KindText, kind)
	return c
}

func helloWorld(t *testing.T) *Document {
	t.Helper()
	return NewBuilder().
		Paragraph("a", "hello").
		Paragraph("b", "world").
		MustBuild()
}
