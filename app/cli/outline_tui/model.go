package outline_tui

import (
	"context"

	"article-planner/app/cli/editor"

	"github.com/charmbracelet/bubbles/help"
	bubbleKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// rows above the sections in the outline list
var fieldRows = []editor.Field{editor.FieldH1, editor.FieldMetaTitle, editor.FieldMetaDesc}

const (
	actionSubmit  = "Generating outline"
	actionEnrich  = "Searching information"
	actionAdvance = "Enriching sections"
	actionSave    = "Saving"
)

type outlineUIModel struct {
	ctx context.Context
	ed  *editor.Editor

	help     help.Model
	keymap   keymap
	spinner  spinner.Model
	progress progress.Model

	queryInput textinput.Model
	input      textinput.Model
	textArea   textarea.Model
	viewport   viewport.Model

	// cursor is a row in the outline list: fields first, then sections
	cursor       int
	reviewCursor int

	editing     bool
	editRow     int
	editingText bool

	// pending names the request in flight, empty when idle
	pending        string
	quitAfterFlush bool
	confirmingQuit bool
	quitting       bool

	autoSubmit string
	errMsg     string

	ready  bool
	width  int
	height int
}

type keymap = struct {
	up,
	down,
	moveUp,
	moveDown,
	edit,
	toggle,
	remove,
	addMajor,
	addMinor,
	enrich,
	advance,
	back,
	save,
	submit,
	commit,
	cancel,
	saveAndQuit,
	discard,
	quit,
	forceQuit bubbleKey.Binding
}

func (m outlineUIModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.autoSubmit != "" {
		query := m.autoSubmit
		cmds = append(cmds, func() tea.Msg {
			return submitQueryMsg{query: query}
		})
	}
	return tea.Batch(cmds...)
}

func initialModel(ctx context.Context, ed *editor.Editor, autoSubmit string) *outlineUIModel {
	queryInput := textinput.New()
	queryInput.Placeholder = "e.g. best trail running shoes"
	queryInput.CharLimit = 500
	queryInput.Focus()

	input := textinput.New()
	input.CharLimit = 500

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	s := spinner.New()
	s.Spinner = spinner.Dot

	initialState := outlineUIModel{
		ctx:        ctx,
		ed:         ed,
		help:       help.New(),
		spinner:    s,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		queryInput: queryInput,
		input:      input,
		textArea:   ta,
		autoSubmit: autoSubmit,
		keymap: keymap{
			up: bubbleKey.NewBinding(
				bubbleKey.WithKeys("up", "k"),
				bubbleKey.WithHelp("↑/k", "up"),
			),
			down: bubbleKey.NewBinding(
				bubbleKey.WithKeys("down", "j"),
				bubbleKey.WithHelp("↓/j", "down"),
			),
			moveUp: bubbleKey.NewBinding(
				bubbleKey.WithKeys("shift+up", "K"),
				bubbleKey.WithHelp("K", "move up"),
			),
			moveDown: bubbleKey.NewBinding(
				bubbleKey.WithKeys("shift+down", "J"),
				bubbleKey.WithHelp("J", "move down"),
			),
			edit: bubbleKey.NewBinding(
				bubbleKey.WithKeys("enter", "e"),
				bubbleKey.WithHelp("enter", "edit"),
			),
			toggle: bubbleKey.NewBinding(
				bubbleKey.WithKeys("t"),
				bubbleKey.WithHelp("t", "h2/h3"),
			),
			remove: bubbleKey.NewBinding(
				bubbleKey.WithKeys("x", "delete"),
				bubbleKey.WithHelp("x", "delete"),
			),
			addMajor: bubbleKey.NewBinding(
				bubbleKey.WithKeys("a"),
				bubbleKey.WithHelp("a", "add h2"),
			),
			addMinor: bubbleKey.NewBinding(
				bubbleKey.WithKeys("A"),
				bubbleKey.WithHelp("A", "add h3"),
			),
			enrich: bubbleKey.NewBinding(
				bubbleKey.WithKeys("r"),
				bubbleKey.WithHelp("r", "search info"),
			),
			advance: bubbleKey.NewBinding(
				bubbleKey.WithKeys("n"),
				bubbleKey.WithHelp("n", "enrich all"),
			),
			back: bubbleKey.NewBinding(
				bubbleKey.WithKeys("b", "esc"),
				bubbleKey.WithHelp("b", "back to outline"),
			),
			save: bubbleKey.NewBinding(
				bubbleKey.WithKeys("ctrl+s"),
				bubbleKey.WithHelp("ctrl+s", "save now"),
			),
			submit: bubbleKey.NewBinding(
				bubbleKey.WithKeys("enter"),
				bubbleKey.WithHelp("enter", "generate"),
			),
			commit: bubbleKey.NewBinding(
				bubbleKey.WithKeys("enter"),
				bubbleKey.WithHelp("enter", "done"),
			),
			cancel: bubbleKey.NewBinding(
				bubbleKey.WithKeys("esc"),
				bubbleKey.WithHelp("esc", "cancel"),
			),
			saveAndQuit: bubbleKey.NewBinding(
				bubbleKey.WithKeys("s", "y"),
				bubbleKey.WithHelp("s", "save and quit"),
			),
			discard: bubbleKey.NewBinding(
				bubbleKey.WithKeys("d"),
				bubbleKey.WithHelp("d", "discard"),
			),
			quit: bubbleKey.NewBinding(
				bubbleKey.WithKeys("q"),
				bubbleKey.WithHelp("q", "quit"),
			),
			forceQuit: bubbleKey.NewBinding(
				bubbleKey.WithKeys("ctrl+c"),
			),
		},
	}

	return &initialState
}

func (m outlineUIModel) rowCount() int {
	return len(fieldRows) + len(m.ed.Outline().Sections)
}

// sectionAt maps an outline row to a section index.
func sectionAt(row int) (int, bool) {
	i := row - len(fieldRows)
	return i, i >= 0
}
