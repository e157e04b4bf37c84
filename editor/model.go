package editor

import (
	"errors"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockedit/caret"
	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/internal/log"
	"github.com/iw2rmb/blockedit/redactor"
)

// Model is a Bubble Tea component that renders and edits a block document.
type Model struct {
	cfg     Config
	doc     *document.Document
	repo    *document.Repository
	caret   *caret.Controller
	handler *redactor.Handler

	focused bool

	viewport viewport.Model

	lastVersion uint64
	lastSel     document.Range
	lastSelOK   bool
	lastText    string

	// selSeq identifies the newest scheduled guard pass.
	selSeq int

	mouseAnchor   document.Anchor
	mouseDragging bool
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	doc := cfg.Document
	if doc == nil {
		doc = document.New()
	}
	repo := document.NewRepository(doc)
	if doc.BlockCount() == 0 {
		if _, err := repo.InsertAfter("", cfg.NewBlockTool, document.TextCapabilities()); err != nil {
			log.ErrorErr(log.CatEditor, "insert initial block", err)
		}
	}
	cc := caret.NewController(doc)

	m := Model{
		cfg:      cfg,
		doc:      doc,
		repo:     repo,
		caret:    cc,
		handler:  redactor.New(doc, repo, cc, cfg.Redactor),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	if b, ok := doc.BlockAt(0); ok {
		_ = cc.SetCaret(b.ID, caret.PositionStart)
	}
	m.lastVersion = doc.Version()
	m.lastSel, m.lastSelOK = cc.Selection()
	if cfg.OnChange != nil {
		m.lastText = PlainText(doc)
	}
	m.rebuildContent()
	return m
}

func (m Model) Document() *document.Document { return m.doc }

func (m Model) Repository() *document.Repository { return m.repo }

func (m Model) Caret() *caret.Controller { return m.caret }

func (m Model) Handler() *redactor.Handler { return m.handler }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.mouseDragging = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// mergeResolvedMsg carries a repository merge result back to the goroutine
// that owns the document.
type mergeResolvedMsg struct {
	handle *redactor.MergeHandle
	err    error
}

// selectionSettledMsg fires once the selection has been stable for the
// debounce interval.
type selectionSettledMsg struct {
	seq int
}

var errMergeChannelClosed = errors.New("merge result channel closed")

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		cmd := m.updateKey(msg)
		return m, m.afterChange(cmd)
	case tea.MouseMsg:
		cmd := m.updateMouse(msg)
		return m, m.afterChange(cmd)
	case mergeResolvedMsg:
		if err := msg.handle.Resolve(msg.err); err != nil && !errors.Is(err, redactor.ErrMergeCancelled) {
			log.Warn(log.CatEditor, "merge did not complete", "target", msg.handle.Target, "err", err)
		}
		return m, m.afterChange(nil)
	case selectionSettledMsg:
		if msg.seq != m.selSeq {
			return m, nil
		}
		m.checkSelection()
		return m, nil
	default:
		// The host may have edited the document directly.
		return m, m.afterChange(nil)
	}
}

func (m Model) View() string { return m.viewport.View() }

// afterChange refreshes the view after an edit or caret move, reports
// version changes and schedules the guard pass for selection changes.
func (m *Model) afterChange(cmd tea.Cmd) tea.Cmd {
	sel, selOK := m.caret.Selection()
	ver := m.doc.Version()
	verChanged := ver != m.lastVersion
	selChanged := selOK != m.lastSelOK || sel != m.lastSel
	if !verChanged && !selChanged {
		return cmd
	}
	m.lastVersion = ver
	m.lastSel, m.lastSelOK = sel, selOK

	if verChanged && m.cfg.OnChange != nil {
		ev := buildChangeEvent(m.doc, sel, selOK, m.lastText)
		m.lastText = ev.Text
		m.cfg.OnChange(ev)
	}

	var guard tea.Cmd
	if selChanged && selOK {
		guard = m.scheduleSelectionCheck()
	}
	m.rebuildContent()
	m.followCursor()
	return tea.Batch(cmd, guard)
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	row := m.caretRow(m.layoutRows())
	if row < 0 {
		return
	}
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
