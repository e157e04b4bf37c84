package editor

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/iw2rmb/blockedit/document"
)

// ChangeEvent describes the document after an edit.
type ChangeEvent struct {
	Version   uint64
	Selection struct {
		Range  document.Range
		Active bool
	}

	// Text is the plain-text rendition: one line per input, blocks in order.
	Text string
	// Diffs turn the previous event's Text into this one's.
	Diffs []diffmatchpatch.Diff
}

// Inserted returns the text added since the previous event.
func (ev ChangeEvent) Inserted() string { return joinDiffs(ev.Diffs, diffmatchpatch.DiffInsert) }

// Deleted returns the text removed since the previous event.
func (ev ChangeEvent) Deleted() string { return joinDiffs(ev.Diffs, diffmatchpatch.DiffDelete) }

func joinDiffs(diffs []diffmatchpatch.Diff, op diffmatchpatch.Operation) string {
	var sb strings.Builder
	for _, d := range diffs {
		if d.Type == op {
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// PlainText renders doc as text: each input on its own line, blocks without
// inputs as an empty line.
func PlainText(doc *document.Document) string {
	var lines []string
	for _, b := range doc.Blocks() {
		inputs := doc.Inputs(b.Node)
		if len(inputs) == 0 {
			lines = append(lines, "")
			continue
		}
		for _, in := range inputs {
			lines = append(lines, doc.TextContent(in))
		}
	}
	return strings.Join(lines, "\n")
}

func buildChangeEvent(doc *document.Document, sel document.Range, selOK bool, prevText string) ChangeEvent {
	ev := ChangeEvent{
		Version: doc.Version(),
		Text:    PlainText(doc),
	}
	if selOK {
		ev.Selection.Active = true
		ev.Selection.Range = sel
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(prevText, ev.Text, false)
	ev.Diffs = dmp.DiffCleanupSemantic(diffs)
	return ev
}
