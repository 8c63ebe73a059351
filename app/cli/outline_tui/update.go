package outline_tui

import (
	"context"

	"article-planner/app/cli/editor"
	shared "article-planner/app/shared"

	bubbleKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type submitQueryMsg struct {
	query string
}

type actionDoneMsg struct {
	action string
	err    error
}

// editorChangedMsg is sent when the editor changes on its own, after an
// autosave or an enrichment step.
type editorChangedMsg struct{}

func (m outlineUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.windowResized(msg.Width, msg.Height)

	case spinner.TickMsg:
		if m.pending != "" {
			spinnerModel, cmd := m.spinner.Update(msg)
			m.spinner = spinnerModel
			return m, cmd
		}

	case submitQueryMsg:
		cmd := m.submit(msg.query)
		return m, cmd

	case editorChangedMsg:
		m.refreshReview()

	case actionDoneMsg:
		return m.actionDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		return m.updateFocused(msg)
	}

	return m, nil
}

// run starts a request-backed editor action as a command. Keys are ignored
// until it reports back.
func (m *outlineUIModel) run(action string, fn func(ctx context.Context, ed *editor.Editor) error) tea.Cmd {
	m.pending = action
	m.errMsg = ""

	ctx := m.ctx
	ed := m.ed
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx, ed)}
	})
}

func (m *outlineUIModel) submit(query string) tea.Cmd {
	m.queryInput.SetValue(query)
	return m.run(actionSubmit, func(ctx context.Context, ed *editor.Editor) error {
		return ed.Submit(ctx, query)
	})
}

func (m outlineUIModel) actionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	m.pending = ""

	if msg.err != nil {
		m.setErr(msg.err)
		m.quitAfterFlush = false
		return m, nil
	}

	if m.quitAfterFlush {
		m.quitting = true
		return m, tea.Quit
	}

	switch msg.action {
	case actionSubmit:
		m.queryInput.Blur()
		m.cursor = 0
	case actionAdvance:
		m.reviewCursor = 0
	}

	m.refreshReview()

	return m, nil
}

func (m outlineUIModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if bubbleKey.Matches(msg, m.keymap.forceQuit) {
		if m.confirmingQuit {
			m.quitting = true
			return m, tea.Quit
		}
		cmd := m.requestQuit()
		return m, cmd
	}

	if m.confirmingQuit {
		return m.updateConfirmQuit(msg)
	}

	if m.pending != "" {
		return m, nil
	}

	if m.editing {
		return m.updateInput(msg)
	}

	if m.editingText {
		return m.updateTextArea(msg)
	}

	switch m.ed.State() {
	case editor.StateQueryEntry:
		return m.updateQueryEntry(msg)
	case editor.StateOutlineEditing:
		return m.updateOutline(msg)
	case editor.StateEnrichmentReview:
		return m.updateReview(msg)
	}

	return m, nil
}

func (m *outlineUIModel) requestQuit() tea.Cmd {
	if m.ed.Dirty() {
		m.confirmingQuit = true
		return nil
	}
	m.quitting = true
	return tea.Quit
}

func (m outlineUIModel) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case bubbleKey.Matches(msg, m.keymap.saveAndQuit):
		if m.pending != "" {
			return m, nil
		}
		m.confirmingQuit = false
		m.quitAfterFlush = true
		cmd := m.run(actionSave, func(ctx context.Context, ed *editor.Editor) error {
			return ed.Flush(ctx)
		})
		return m, cmd

	case bubbleKey.Matches(msg, m.keymap.discard):
		m.quitting = true
		return m, tea.Quit

	case bubbleKey.Matches(msg, m.keymap.cancel), bubbleKey.Matches(msg, m.keymap.quit):
		m.confirmingQuit = false
	}

	return m, nil
}

func (m outlineUIModel) updateQueryEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case bubbleKey.Matches(msg, m.keymap.submit):
		cmd := m.submit(m.queryInput.Value())
		return m, cmd

	case bubbleKey.Matches(msg, m.keymap.cancel):
		cmd := m.requestQuit()
		return m, cmd
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

func (m outlineUIModel) updateOutline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	section, onSection := sectionAt(m.cursor)

	switch {
	case bubbleKey.Matches(msg, m.keymap.up):
		if m.cursor > 0 {
			m.cursor--
		}

	case bubbleKey.Matches(msg, m.keymap.down):
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}

	case bubbleKey.Matches(msg, m.keymap.moveUp):
		if onSection {
			m.moveSection(section, -1)
		}

	case bubbleKey.Matches(msg, m.keymap.moveDown):
		if onSection {
			m.moveSection(section, 1)
		}

	case bubbleKey.Matches(msg, m.keymap.edit):
		cmd := m.startEdit()
		return m, cmd

	case bubbleKey.Matches(msg, m.keymap.toggle):
		if onSection {
			m.setErr(m.ed.ToggleLevel(section))
		}

	case bubbleKey.Matches(msg, m.keymap.remove):
		if onSection {
			m.setErr(m.ed.DeleteSection(section))
			if m.cursor > m.rowCount()-1 {
				m.cursor = m.rowCount() - 1
			}
		}

	case bubbleKey.Matches(msg, m.keymap.addMajor):
		m.addSection(shared.HeadingLevelMajor)

	case bubbleKey.Matches(msg, m.keymap.addMinor):
		m.addSection(shared.HeadingLevelMinor)

	case bubbleKey.Matches(msg, m.keymap.enrich):
		if onSection {
			cmd := m.run(actionEnrich, func(ctx context.Context, ed *editor.Editor) error {
				return ed.EnrichSection(ctx, section)
			})
			return m, cmd
		}

	case bubbleKey.Matches(msg, m.keymap.advance):
		cmd := m.run(actionAdvance, func(ctx context.Context, ed *editor.Editor) error {
			return ed.Advance(ctx)
		})
		return m, cmd

	case bubbleKey.Matches(msg, m.keymap.save):
		cmd := m.run(actionSave, func(ctx context.Context, ed *editor.Editor) error {
			return ed.Flush(ctx)
		})
		return m, cmd

	case bubbleKey.Matches(msg, m.keymap.quit):
		cmd := m.requestQuit()
		return m, cmd
	}

	return m, nil
}

func (m *outlineUIModel) moveSection(i, dir int) {
	err := m.ed.MoveSection(i, dir)
	m.setErr(err)
	if err != nil {
		return
	}

	j := i + dir
	if j >= 0 && j < len(m.ed.Outline().Sections) {
		m.cursor += dir
	}
}

func (m *outlineUIModel) addSection(level shared.HeadingLevel) {
	err := m.ed.AddSection(level)
	m.setErr(err)
	if err == nil {
		m.cursor = m.rowCount() - 1
	}
}

func (m *outlineUIModel) startEdit() tea.Cmd {
	o := m.ed.Outline()

	var value string
	if section, ok := sectionAt(m.cursor); ok {
		if section >= len(o.Sections) {
			return nil
		}
		value = o.Sections[section].Title
	} else {
		value = o.Field(fieldRows[m.cursor])
	}

	m.editing = true
	m.editRow = m.cursor
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m outlineUIModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case bubbleKey.Matches(msg, m.keymap.commit):
		value := m.input.Value()
		if section, ok := sectionAt(m.editRow); ok {
			m.setErr(m.ed.SetSectionTitle(section, value))
		} else {
			m.setErr(m.ed.SetField(fieldRows[m.editRow], value))
		}
		m.editing = false
		m.input.Blur()
		return m, nil

	case bubbleKey.Matches(msg, m.keymap.cancel):
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m outlineUIModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.ed.Outline().Sections)

	switch {
	case bubbleKey.Matches(msg, m.keymap.up):
		if m.reviewCursor > 0 {
			m.reviewCursor--
		}
		m.refreshReview()

	case bubbleKey.Matches(msg, m.keymap.down):
		if m.reviewCursor < count-1 {
			m.reviewCursor++
		}
		m.refreshReview()

	case bubbleKey.Matches(msg, m.keymap.edit):
		cmd := m.startEditText()
		return m, cmd

	case bubbleKey.Matches(msg, m.keymap.enrich):
		section := m.reviewCursor
		cmd := m.run(actionEnrich, func(ctx context.Context, ed *editor.Editor) error {
			return ed.EnrichSection(ctx, section)
		})
		return m, cmd

	case bubbleKey.Matches(msg, m.keymap.back):
		err := m.ed.Back()
		m.setErr(err)
		if err == nil {
			m.cursor = 0
		}

	case bubbleKey.Matches(msg, m.keymap.save):
		cmd := m.run(actionSave, func(ctx context.Context, ed *editor.Editor) error {
			return ed.Flush(ctx)
		})
		return m, cmd

	case bubbleKey.Matches(msg, m.keymap.quit):
		cmd := m.requestQuit()
		return m, cmd

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *outlineUIModel) startEditText() tea.Cmd {
	o := m.ed.Outline()
	if m.reviewCursor >= len(o.Sections) {
		return nil
	}

	value := ""
	if s := o.Sections[m.reviewCursor]; s.SourceInformation != nil {
		value = *s.SourceInformation
	}

	m.editingText = true
	m.textArea.SetValue(value)
	m.refreshReview()
	return m.textArea.Focus()
}

func (m outlineUIModel) updateTextArea(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case bubbleKey.Matches(msg, m.keymap.save):
		text := m.textArea.Value()
		section := m.reviewCursor
		m.editingText = false
		m.textArea.Blur()
		cmd := m.run(actionSave, func(ctx context.Context, ed *editor.Editor) error {
			return ed.SetSourceInformation(ctx, section, text)
		})
		return m, cmd

	case bubbleKey.Matches(msg, m.keymap.cancel):
		m.editingText = false
		m.textArea.Blur()
		m.refreshReview()
		return m, nil
	}

	var cmd tea.Cmd
	m.textArea, cmd = m.textArea.Update(msg)
	m.refreshReview()
	return m, cmd
}

// updateFocused forwards non-key messages, like cursor blinks, to whichever
// input has focus.
func (m outlineUIModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case m.editing:
		m.input, cmd = m.input.Update(msg)
	case m.editingText:
		m.textArea, cmd = m.textArea.Update(msg)
		m.refreshReview()
	case m.ed.State() == editor.StateQueryEntry:
		m.queryInput, cmd = m.queryInput.Update(msg)
	}

	return m, cmd
}

func (m *outlineUIModel) setErr(err error) {
	m.errMsg = editor.UserMessage(err)
}

func (m *outlineUIModel) windowResized(w, h int) {
	m.width = w
	m.height = h

	m.queryInput.Width = max(min(w-6, 80), 10)
	m.input.Width = max(w-26, 10)
	m.textArea.SetWidth(max(w-6, 10))
	m.textArea.SetHeight(max(h/3, 4))
	m.progress.Width = max(min(w-6, 60), 10)

	viewportHeight := max(h-m.chromeHeight(), 3)
	if !m.ready {
		m.viewport = viewport.New(w, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = viewportHeight
	}

	m.refreshReview()
}
