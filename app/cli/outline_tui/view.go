package outline_tui

import (
	"fmt"
	"strings"

	"article-planner/app/cli/editor"
	"article-planner/app/cli/term"
	shared "article-planner/app/shared"

	bubbleKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
)

var borderColor = lipgloss.Color("#444")
var helpTextColor = lipgloss.Color("#ddd")
var dimTextColor = lipgloss.Color("#888")

var topBorderStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderTop(true).
	BorderForeground(borderColor)

var selectedStyle = lipgloss.NewStyle().Bold(true)
var dimStyle = lipgloss.NewStyle().Foreground(dimTextColor)
var fieldLabelStyle = lipgloss.NewStyle().Width(18).Foreground(dimTextColor)

const cursorMark = "› "

func (m outlineUIModel) View() string {
	if m.quitting {
		return ""
	}

	if m.confirmingQuit {
		return m.renderConfirmQuit()
	}

	var body string
	switch m.ed.State() {
	case editor.StateQueryEntry:
		body = m.renderQueryEntry()
	case editor.StateOutlineEditing:
		body = m.renderOutline()
	case editor.StateEnrichmentReview:
		body = m.renderReview()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m outlineUIModel) chromeHeight() int {
	return lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())
}

func (m outlineUIModel) renderHeader() string {
	title := color.New(color.Bold, term.ColorHiCyan).Sprint("📝 Article planner")

	var step string
	switch m.ed.State() {
	case editor.StateQueryEntry:
		step = "1/3 query"
	case editor.StateOutlineEditing:
		step = "2/3 outline"
	case editor.StateEnrichmentReview:
		step = "3/3 enrichment"
	}

	parts := []string{title, dimStyle.Render(step)}

	if id, ok := m.ed.ArticleId(); ok {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("#%d", id)))
	}
	if q := m.ed.Query(); q != "" {
		parts = append(parts, dimStyle.Render(shared.Truncate(q, 40)))
	}
	if status := m.renderSaveStatus(); status != "" {
		parts = append(parts, status)
	}

	return " " + strings.Join(parts, "  ") + "\n"
}

func (m outlineUIModel) renderSaveStatus() string {
	if m.ed.Dirty() {
		return color.New(term.ColorHiYellow).Sprint("● unsaved changes")
	}
	if saved := m.ed.LastSaved(); !saved.IsZero() {
		return color.New(term.ColorHiGreen).Sprintf("✓ saved %s", saved.Local().Format("15:04:05"))
	}
	return ""
}

func (m outlineUIModel) renderFooter() string {
	var lines []string

	if m.pending != "" {
		status := m.spinner.View() + " " + m.pending + "…"
		if m.pending == actionAdvance {
			p := m.ed.Progress()
			status += fmt.Sprintf(" %d/%d\n ", p.Completed, p.Total) + m.progress.ViewAs(float64(p.Percent())/100)
		}
		lines = append(lines, " "+status)
	}

	errMsg := m.errMsg
	if errMsg == "" {
		errMsg = editor.UserMessage(m.ed.Err())
	}
	if errMsg != "" {
		lines = append(lines, color.New(term.ColorHiRed, color.Bold).Sprint(" 🚨 "+shared.Capitalize(errMsg)))
	}

	lines = append(lines, m.renderHelp())

	return strings.Join(lines, "\n")
}

func (m outlineUIModel) renderHelp() string {
	style := lipgloss.NewStyle().Width(m.width).Inherit(topBorderStyle).Foreground(helpTextColor)
	return style.Render(" " + m.help.ShortHelpView(m.helpBindings()))
}

func (m outlineUIModel) helpBindings() []bubbleKey.Binding {
	k := m.keymap

	if m.editing {
		return []bubbleKey.Binding{k.commit, k.cancel}
	}
	if m.editingText {
		return []bubbleKey.Binding{k.save, k.cancel}
	}

	switch m.ed.State() {
	case editor.StateQueryEntry:
		return []bubbleKey.Binding{k.submit, k.cancel}
	case editor.StateOutlineEditing:
		return []bubbleKey.Binding{
			k.up, k.down, k.edit, k.moveUp, k.moveDown, k.toggle, k.addMajor, k.addMinor,
			k.remove, k.enrich, k.advance, k.save, k.quit,
		}
	case editor.StateEnrichmentReview:
		return []bubbleKey.Binding{k.up, k.down, k.edit, k.enrich, k.back, k.save, k.quit}
	}
	return nil
}

func (m outlineUIModel) renderQueryEntry() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.New(color.Bold).Sprint(" What should the article rank for?"))
	b.WriteString("\n\n ")
	b.WriteString(m.queryInput.View())
	b.WriteString("\n")
	return b.String()
}

func (m outlineUIModel) renderOutline() string {
	o := m.ed.Outline()
	maxWidth := max(m.width-2, 20)

	var lines []string
	lines = append(lines, "")

	for row, f := range fieldRows {
		value := o.Field(f)
		if m.editing && m.editRow == row {
			value = m.input.View()
		} else if strings.TrimSpace(value) == "" {
			value = dimStyle.Render("(empty)")
		}
		lines = append(lines, m.renderRow(row, fieldLabelStyle.Render(f.String())+value, maxWidth))
	}

	lines = append(lines, dimStyle.Render(" "+strings.Repeat("─", min(maxWidth, 40))))

	if len(o.Sections) == 0 {
		lines = append(lines, dimStyle.Render("   No sections. Press a to add one."))
	}

	for i, s := range o.Sections {
		row := len(fieldRows) + i

		indent := ""
		if s.Level == shared.HeadingLevelMinor {
			indent = "  "
		}

		title := s.Title
		if m.editing && m.editRow == row {
			title = m.input.View()
		}

		line := indent + term.LevelLabel(s.Level) + "  " + title
		if s.HasSourceInformation() {
			line += " " + color.New(term.ColorHiGreen).Sprint("✓")
		}

		lines = append(lines, m.renderRow(row, line, maxWidth))
	}

	return strings.Join(lines, "\n") + "\n"
}

func (m outlineUIModel) renderRow(row int, content string, maxWidth int) string {
	if row == m.cursor {
		return selectedStyle.MaxWidth(maxWidth).Render(" " + cursorMark + content)
	}
	return lipgloss.NewStyle().MaxWidth(maxWidth).Render("   " + content)
}

func (m outlineUIModel) renderReview() string {
	body, _, _ := m.reviewBody()
	if !m.ready {
		return body
	}

	vp := m.viewport
	vp.SetContent(body)
	return vp.View()
}

// reviewBody renders every section with its enrichment text and reports the
// line span of the selected one.
func (m outlineUIModel) reviewBody() (string, int, int) {
	o := m.ed.Outline()
	wrapWidth := max(m.width-8, 20)

	var b strings.Builder
	start, end := 0, 0
	line := 0

	write := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
		line += strings.Count(s, "\n") + 1
	}

	write("")

	for i, s := range o.Sections {
		if i == m.reviewCursor {
			start = line
		}

		heading := term.LevelLabel(s.Level) + "  " + s.Title
		if i == m.reviewCursor {
			write(selectedStyle.Render(" " + cursorMark + heading))
		} else {
			write("   " + heading)
		}

		switch {
		case m.editingText && i == m.reviewCursor:
			write(indentLines(m.textArea.View(), "    "))
		case s.HasSourceInformation():
			write(indentLines(wordwrap.String(strings.TrimSpace(*s.SourceInformation), wrapWidth), "    "))
		default:
			write(dimStyle.Render("    No information yet. Press r to search."))
		}

		write("")

		if i == m.reviewCursor {
			end = line
		}
	}

	return b.String(), start, end
}

// refreshReview keeps the selected section in view.
func (m *outlineUIModel) refreshReview() {
	if !m.ready || m.ed.State() != editor.StateEnrichmentReview {
		return
	}

	body, start, end := m.reviewBody()
	m.viewport.SetContent(body)

	if start < m.viewport.YOffset {
		m.viewport.SetYOffset(start)
	} else if end > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(max(end-m.viewport.Height, start))
	}
}

func (m outlineUIModel) renderConfirmQuit() string {
	style := lipgloss.NewStyle().Padding(1).BorderStyle(lipgloss.NormalBorder()).BorderForeground(borderColor).Width(max(m.width-2, 20)).Height(max(m.height-2, 5))

	prompt := color.New(color.Bold).Sprint("🧐 This article has unsaved changes.") + "\n\n" +
		color.New(term.ColorHiCyan, color.Bold).Sprint("(s)ave and quit | (d)iscard | (esc) cancel")

	return style.Render(prompt)
}

func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}
