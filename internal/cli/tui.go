package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EndpointListModel - Interactive endpoint selection
// =============================================================================

// endpointRow is one selectable entry in the endpoint picker.
type endpointRow struct {
	Name string
	URL  string
}

// EndpointListModel is the bubbletea model for interactive endpoint selection.
type EndpointListModel struct {
	Entries  []endpointRow
	Cursor   int
	Selected string
}

// NewEndpointListModel creates an endpoint list model from the configured
// endpoints, sorted by name.
func NewEndpointListModel(cfg endpointsConfig) EndpointListModel {
	names := endpointNames(cfg)
	entries := make([]endpointRow, 0, len(names))
	for _, name := range names {
		entries = append(entries, endpointRow{Name: name, URL: cfg.Endpoints[name].URL})
	}
	return EndpointListModel{Entries: entries}
}

func (m EndpointListModel) Init() tea.Cmd {
	return nil
}

func (m EndpointListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Entries[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m EndpointListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Endpoint"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, e := range m.Entries {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-16s %s", cursor, e.Name, listDimStyle.Render(e.URL))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// pickEndpoint runs the interactive picker and returns the chosen endpoint
// name, or "" when the user quit without selecting.
func pickEndpoint(cfg endpointsConfig) (string, error) {
	final, err := tea.NewProgram(NewEndpointListModel(cfg)).Run()
	if err != nil {
		return "", fmt.Errorf("endpoint selection failed: %w", err)
	}
	model, ok := final.(EndpointListModel)
	if !ok {
		return "", nil
	}
	return model.Selected, nil
}
