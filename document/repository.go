package document

import (
	"context"
	"fmt"
)

// Repository is an in-memory block repository over a Document. It applies
// merges synchronously and reports the result on a buffered channel, so the
// caller observes the same asynchronous contract a deferred store offers.
type Repository struct {
	doc *Document

	// DefaultTool and DefaultCapabilities describe the block inserted when
	// the last block is deleted.
	DefaultTool         string
	DefaultCapabilities Capabilities
}

// NewRepository returns a repository over doc.
func NewRepository(doc *Document) *Repository {
	return &Repository{
		doc:                 doc,
		DefaultTool:         "paragraph",
		DefaultCapabilities: TextCapabilities(),
	}
}

// Document returns the underlying document.
func (r *Repository) Document() *Document { return r.doc }

// GetByID resolves block id.
func (r *Repository) GetByID(id BlockID) (Block, error) {
	b, ok := r.doc.BlockByID(id)
	if !ok {
		return Block{}, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	return b, nil
}

// GetByIndex resolves the block at document index i.
func (r *Repository) GetByIndex(i int) (Block, error) {
	b, ok := r.doc.BlockAt(i)
	if !ok {
		return Block{}, fmt.Errorf("%w: index %d", ErrBlockNotFound, i)
	}
	return b, nil
}

// IndexOf returns the document index of block id.
func (r *Repository) IndexOf(id BlockID) (int, error) {
	i := r.doc.BlockIndex(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	return i, nil
}

// InsertAfter inserts an empty block holding one rich-text input after
// block id. An empty id inserts at the top of the document.
func (r *Repository) InsertAfter(id BlockID, tool string, caps Capabilities) (Block, error) {
	at := 0
	if id != "" {
		i, err := r.IndexOf(id)
		if err != nil {
			return Block{}, err
		}
		at = i + 1
	}
	n := r.doc.NewBlock("", tool, caps)
	if err := r.doc.Append(n, r.doc.NewInput(InputRichText, "", "")); err != nil {
		return Block{}, err
	}
	return r.doc.InsertBlock(at, n)
}

// Delete removes block id. Removing the last block leaves a single empty
// default block behind.
func (r *Repository) Delete(id BlockID) error {
	if err := r.doc.RemoveBlock(id); err != nil {
		return err
	}
	if r.doc.BlockCount() == 0 {
		if _, err := r.InsertAfter("", r.DefaultTool, r.DefaultCapabilities); err != nil {
			return fmt.Errorf("insert default block: %w", err)
		}
	}
	return nil
}

// MergeInto appends source's content to target's last input and removes
// source. The merge is all-or-nothing: every precondition is checked before
// the first mutation.
func (r *Repository) MergeInto(ctx context.Context, target, source BlockID) <-chan error {
	done := make(chan error, 1)
	done <- r.merge(ctx, target, source)
	close(done)
	return done
}

func (r *Repository) merge(ctx context.Context, targetID, sourceID BlockID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if targetID == sourceID {
		return fmt.Errorf("%w: cannot merge %s into itself", ErrNotMergeable, targetID)
	}
	target, err := r.GetByID(targetID)
	if err != nil {
		return err
	}
	source, err := r.GetByID(sourceID)
	if err != nil {
		return err
	}
	if target.ReadOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, targetID)
	}
	if !target.Mergeable || !source.Mergeable {
		return fmt.Errorf("%w: %s <- %s", ErrNotMergeable, targetID, sourceID)
	}
	targetInputs := r.doc.Inputs(target.Node)
	if len(targetInputs) == 0 {
		return fmt.Errorf("%w: %s has no input to merge into", ErrNotMergeable, targetID)
	}
	dst := targetInputs[len(targetInputs)-1]
	sourceInputs := r.doc.Inputs(source.Node)
	for _, in := range sourceInputs {
		if r.doc.IsNative(in) != r.doc.IsNative(dst) {
			return fmt.Errorf("%w: input kinds differ", ErrNotMergeable)
		}
	}

	for _, in := range sourceInputs {
		if err := r.doc.MoveChildren(dst, in); err != nil {
			return err
		}
	}
	return r.doc.RemoveBlock(sourceID)
}
