// Package section binds entity grids to the live configuration document.
// One controller exists per entity kind for the screen's lifetime; each
// translates grid change events into domain mutations and persists them.
package section

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/termsui-dev/termsui/internal/domain/entities"
	"github.com/termsui-dev/termsui/internal/domain/values"
	"github.com/termsui-dev/termsui/internal/tui/grid"
)

// Saver persists the document after every accepted mutation.
type Saver interface {
	Save(doc *entities.Document) error
}

// DocumentChanged rebinds every mounted section to a newly loaded document.
// The screen that mounts the sections owns the observer list and dispatches
// this to each of them.
type DocumentChanged struct {
	Doc *entities.Document
}

// GroupChanged rebinds the profile and identity sections to a different
// group.
type GroupChanged struct {
	Group *entities.Group
}

// Status carries a user-facing notice to the screen's status bar.
type Status struct {
	Err  error
	Text string
}

func statusError(err error) tea.Cmd {
	return func() tea.Msg {
		return Status{Err: err}
	}
}

func notifyGroup(g *entities.Group) tea.Cmd {
	return func() tea.Msg {
		return GroupChanged{Group: g}
	}
}

// Controller is one entity kind's binding between its grid and the domain
// source.
type Controller interface {
	Title() string
	Grid() *grid.Model
	Update(msg tea.Msg) tea.Cmd
	View() string
}

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	sectionStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	focusSectionStyle = sectionStyle.BorderForeground(lipgloss.Color("10"))
)

// render frames a section's grid with its title.
func render(title string, g *grid.Model) string {
	style := sectionStyle
	if g.Focused() {
		style = focusSectionStyle
	}
	return style.Render(titleStyle.Render(title) + "\n" + g.View())
}

// markerCoordinator is the active-column coordinator every section shares.
func markerCoordinator(column int) grid.Coordinator {
	return grid.Coordinator{
		Column:   column,
		Active:   values.MarkerActive.String(),
		Inactive: values.MarkerInactive.String(),
	}
}
