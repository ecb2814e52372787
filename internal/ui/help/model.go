// Package help renders the keyboard reference overlay.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/keys"
	"github.com/nhle/workdesk/internal/theme"
)

// sectionTitles name the groups returned by KeyMap.FullHelp, in order.
var sectionTitles = []string{
	"Navigate",
	"Filter & Sort",
	"Pages",
	"Selection",
	"Items",
	"Workflow",
	"Registry",
	"Session",
}

// Model is the help overlay view.
type Model struct {
	keys     *keys.KeyMap
	editMode bool
	width    int
	height   int
}

// New creates a new help view model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// SetEditMode records whether edit mode is on so the overlay can say so.
func (m *Model) SetEditMode(on bool) {
	m.editMode = on
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	groups := m.keys.FullHelp()
	sections := make([]string, 0, len(groups))
	for i, g := range groups {
		title := fmt.Sprintf("Group %d", i+1)
		if i < len(sectionTitles) {
			title = sectionTitles[i]
		}
		sections = append(sections, renderSection(title, g))
	}

	mode := "off"
	if m.editMode {
		mode = "on"
	}
	note := theme.DimmedStyle.Render(fmt.Sprintf(
		"Edit mode is %s. e only edits while it is on; E toggles it.", mode))

	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Keyboard Shortcuts"),
		m.layout(sections),
		"",
		note,
	)

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Height(max(m.height-4, 0)).
		Render(content)
}

// layout places sections in as many columns as the width allows.
func (m Model) layout(sections []string) string {
	colWidth := 0
	for _, s := range sections {
		colWidth = max(colWidth, lipgloss.Width(s))
	}
	colWidth += 4
	cols := max((m.width-8)/max(colWidth, 1), 1)

	var rows []string
	for start := 0; start < len(sections); start += cols {
		end := min(start+cols, len(sections))
		cells := make([]string, 0, end-start)
		for _, s := range sections[start:end] {
			cells = append(cells, lipgloss.NewStyle().Width(colWidth).Render(s))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func renderSection(title string, bindings []key.Binding) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).Render(title))
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		h := kb.Help()
		b.WriteString("\n")
		b.WriteString(theme.HelpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)))
		b.WriteString(" ")
		b.WriteString(theme.HelpDescStyle.Render(h.Desc))
	}
	return b.String()
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
