package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/blockedit/document"
)

//go:embed fixtures/sample.yaml
var sampleFixture []byte

// fixtureFile is the on-disk shape of a demo document.
type fixtureFile struct {
	Blocks []fixtureBlock `yaml:"blocks"`
}

type fixtureBlock struct {
	ID   string `yaml:"id"`
	Tool string `yaml:"tool"`
	// Text is shorthand for a single rich-text input.
	Text   *string        `yaml:"text"`
	Inputs []fixtureInput `yaml:"inputs"`

	// Selectable and Mergeable default to true for blocks with inputs and
	// false for blocks without.
	Selectable *bool `yaml:"selectable"`
	Mergeable  *bool `yaml:"mergeable"`
	LineBreaks bool  `yaml:"line_breaks"`
	ReadOnly   bool  `yaml:"read_only"`
}

type fixtureInput struct {
	Text string          `yaml:"text"`
	Rich []fixtureInline `yaml:"rich"`
	// Native names a native input holding Value.
	Native string `yaml:"native"`
	Value  string `yaml:"value"`
}

type fixtureInline struct {
	Text     string          `yaml:"text"`
	Tag      string          `yaml:"tag"`
	Children []fixtureInline `yaml:"children"`
}

var errEmptyFixture = errors.New("fixture has no blocks")

// loadFixture reads the document at path, or the built-in sample when path
// is empty.
func loadFixture(path string) (*document.Document, error) {
	if path == "" {
		return decodeFixture(bytes.NewReader(sampleFixture))
	}
	f, err := os.Open(path) //nolint:gosec // user-selected fixture
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer func() { _ = f.Close() }()
	doc, err := decodeFixture(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func decodeFixture(r io.Reader) (*document.Document, error) {
	var file fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyFixture
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if len(file.Blocks) == 0 {
		return nil, errEmptyFixture
	}

	b := document.NewBuilder()
	for _, fb := range file.Blocks {
		tool := fb.Tool
		if tool == "" {
			tool = "paragraph"
		}
		bb := b.Block(document.BlockID(fb.ID), tool, fb.capabilities())
		if fb.Text != nil {
			bb.Text(*fb.Text)
		}
		for _, in := range fb.Inputs {
			switch {
			case in.Native != "":
				bb.Native(in.Native, in.Value)
			case len(in.Rich) > 0:
				bb.Rich(inlines(in.Rich)...)
			default:
				bb.Text(in.Text)
			}
		}
	}
	return b.Build()
}

func (fb fixtureBlock) capabilities() document.Capabilities {
	hasInputs := fb.Text != nil || len(fb.Inputs) > 0
	caps := document.Capabilities{
		Selectable:         hasInputs,
		Mergeable:          hasInputs,
		SupportsLineBreaks: fb.LineBreaks,
		ReadOnly:           fb.ReadOnly,
	}
	if fb.Selectable != nil {
		caps.Selectable = *fb.Selectable
	}
	if fb.Mergeable != nil {
		caps.Mergeable = *fb.Mergeable
	}
	return caps
}

func inlines(parts []fixtureInline) []document.Inline {
	out := make([]document.Inline, 0, len(parts))
	for _, p := range parts {
		if p.Tag != "" {
			out = append(out, document.E(p.Tag, inlines(p.Children)...))
			continue
		}
		out = append(out, document.T(p.Text))
	}
	return out
}
