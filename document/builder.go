package document

import "errors"

// Inline describes rich-text content: a text run, or an element wrapping
// further inlines.
type Inline struct {
	Tag      string
	Text     string
	Children []Inline
}

// T returns a text run.
func T(text string) Inline { return Inline{Text: text} }

// E returns an inline element such as a bold or link span.
func E(tag string, children ...Inline) Inline { return Inline{Tag: tag, Children: children} }

// Builder assembles a document block by block.
type Builder struct {
	doc  *Document
	errs []error
}

// BlockBuilder adds content to the block most recently started. Builder
// methods are promoted so another Block can be chained directly.
type BlockBuilder struct {
	*Builder
	parent NodeID
}

// NewBuilder returns a builder over a fresh document.
func NewBuilder() *Builder { return &Builder{doc: New()} }

// Block starts a new block appended after the previous one.
func (b *Builder) Block(id BlockID, tool string, caps Capabilities) *BlockBuilder {
	n := b.doc.NewBlock(id, tool, caps)
	if _, err := b.doc.AppendBlock(n); err != nil {
		b.errs = append(b.errs, err)
	}
	return &BlockBuilder{Builder: b, parent: n}
}

// Paragraph is shorthand for a text-capable block with one rich-text input.
func (b *Builder) Paragraph(id BlockID, text string) *BlockBuilder {
	return b.Block(id, "paragraph", TextCapabilities()).Text(text)
}

// Text adds a rich-text input holding text. An empty string yields an input
// without text nodes.
func (bb *BlockBuilder) Text(text string) *BlockBuilder {
	return bb.add(bb.doc.NewInput(InputRichText, "", text))
}

// Rich adds a rich-text input built from inline parts.
func (bb *BlockBuilder) Rich(parts ...Inline) *BlockBuilder {
	in := bb.doc.NewInput(InputRichText, "", "")
	bb.addInlines(in, parts)
	return bb.add(in)
}

// Native adds a native input holding value.
func (bb *BlockBuilder) Native(name, value string) *BlockBuilder {
	return bb.add(bb.doc.NewInput(InputNative, name, value))
}

// Wrap adds a wrapper element and runs fn to fill it.
func (bb *BlockBuilder) Wrap(tag string, fn func(*BlockBuilder)) *BlockBuilder {
	el := bb.doc.NewElement(tag)
	bb.add(el)
	fn(&BlockBuilder{Builder: bb.Builder, parent: el})
	return bb
}

func (bb *BlockBuilder) add(id NodeID) *BlockBuilder {
	if err := bb.doc.Append(bb.parent, id); err != nil {
		bb.errs = append(bb.errs, err)
	}
	return bb
}

func (bb *BlockBuilder) addInlines(parent NodeID, parts []Inline) {
	for _, p := range parts {
		if p.Tag == "" {
			if err := bb.doc.Append(parent, bb.doc.NewText(p.Text)); err != nil {
				bb.errs = append(bb.errs, err)
			}
			continue
		}
		el := bb.doc.NewElement(p.Tag)
		if err := bb.doc.Append(parent, el); err != nil {
			bb.errs = append(bb.errs, err)
			continue
		}
		if p.Text != "" {
			_ = bb.doc.Append(el, bb.doc.NewText(p.Text))
		}
		bb.addInlines(el, p.Children)
	}
}

// Build returns the document. Construction mutations are not part of the
// change log and the document starts at version 0.
func (b *Builder) Build() (*Document, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	b.doc.version = 0
	b.doc.changes.entries = nil
	return b.doc, nil
}

// MustBuild is Build for fixtures known to be valid.
func (b *Builder) MustBuild() *Document {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
