package redactor

import (
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/iw2rmb/blockedit/document"
)

// MergePolicy decides whether source may be merged into target.
type MergePolicy func(target, source document.Capabilities) bool

// DefaultMergePolicy accepts two mergeable blocks with the same line-break
// support.
func DefaultMergePolicy(target, source document.Capabilities) bool {
	return target.Mergeable && source.Mergeable && target.SupportsLineBreaks == source.SupportsLineBreaks
}

// Config configures a Handler.
type Config struct {
	// Mergeable is the merge policy. Nil means DefaultMergePolicy.
	Mergeable MergePolicy

	// Tracer records keydown, selection and merge spans. Nil means no-op.
	Tracer trace.Tracer

	// BoundaryMerge enables merging or navigating on Backspace at the start
	// of a block and Delete at its end.
	BoundaryMerge bool
}

// DefaultConfig returns the configuration used by the editor.
func DefaultConfig() Config {
	return Config{
		Mergeable:     DefaultMergePolicy,
		BoundaryMerge: true,
	}
}

func (c Config) withDefaults() Config {
	if c.Mergeable == nil {
		c.Mergeable = DefaultMergePolicy
	}
	if c.Tracer == nil {
		c.Tracer = noop.NewTracerProvider().Tracer("redactor")
	}
	return c
}
