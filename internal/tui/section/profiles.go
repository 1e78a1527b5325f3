package section

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termsui-dev/termsui/internal/domain/entities"
	"github.com/termsui-dev/termsui/internal/domain/values"
	"github.com/termsui-dev/termsui/internal/tui/grid"
)

const (
	profileColName = iota
	profileColActive
	profileColURL
)

// Profiles binds the profile grid to the currently selected group.
type Profiles struct {
	group       *entities.Group
	doc         *entities.Document
	grid        *grid.Model
	saver       Saver
	coordinator grid.Coordinator
}

// NewProfiles mounts the profile section.
func NewProfiles(saver Saver) *Profiles {
	g := grid.New("profiles", []grid.ColumnPolicy{
		grid.InlineColumn("Name"),
		grid.ChoiceColumn("Active", "Switch State", "Change Active", values.Options()...),
		grid.InlineColumn("URL", grid.CheckFunc(values.CheckURL)),
	})
	g.AddColumns("Name", "Active", "URL")

	s := &Profiles{
		grid:        g,
		saver:       saver,
		coordinator: markerCoordinator(profileColActive),
	}
	g.SetValidators(profileColName,
		grid.CheckFunc(values.CheckName),
		grid.Unique("Profile name not unique.", s.siblingNames),
	)
	return s
}

func (s *Profiles) siblingNames() []string {
	if s.group == nil {
		return nil
	}
	return s.group.ProfileNames()
}

// Title implements Controller.
func (s *Profiles) Title() string {
	if s.group == nil {
		return "Profiles"
	}
	return fmt.Sprintf("Profiles in %s", s.group.Name)
}

// Grid implements Controller.
func (s *Profiles) Grid() *grid.Model {
	return s.grid
}

// Group returns the group the section is bound to, or nil.
func (s *Profiles) Group() *entities.Group {
	return s.group
}

// SetDocument keeps the document reference for persistence; rows follow the
// group binding.
func (s *Profiles) SetDocument(doc *entities.Document) {
	s.doc = doc
	s.group = nil
	s.grid.Clear()
}

// SetGroup rebinds the section to a different group, rebuilding all rows.
func (s *Profiles) SetGroup(group *entities.Group) {
	s.group = group
	s.rebuild()
}

func (s *Profiles) rebuild() {
	s.grid.Clear()
	if s.group == nil {
		return
	}
	activeRow := 0
	for i, p := range s.group.Profiles {
		marker := values.MarkerFor(p.Name == s.group.ActiveProfile)
		s.grid.AddRow(strconv.Itoa(i+1), p.Name, marker.String(), p.URL)
		if marker.Bool() {
			activeRow = i
		}
	}
	s.grid.MoveCursor(activeRow, profileColName)
}

// Update routes change events into group mutations and everything else into
// the grid.
func (s *Profiles) Update(msg tea.Msg) tea.Cmd {
	if change, ok := msg.(grid.CellValueChange); ok {
		if change.Grid != s.grid.Name() || s.group == nil {
			return nil
		}
		return s.applyChange(change)
	}
	return s.grid.Update(msg)
}

func (s *Profiles) applyChange(change grid.CellValueChange) tea.Cmd {
	switch change.Coordinate.Column {
	case profileColName:
		oldName, newName := change.OldText(), change.NewText()
		return s.save(change, func() error {
			return s.group.RenameProfile(oldName, newName)
		}, func() {
			_ = s.group.RenameProfile(newName, oldName)
		})

	case profileColActive:
		coord, ok := s.coordinator.Apply(s.grid, change)
		if !ok {
			return statusError(&grid.ValidationError{Message: "one profile must stay active"})
		}
		previous := s.group.ActiveProfile
		name := s.grid.CellTextAt(grid.Coordinate{Row: coord.Row, Column: profileColName})
		cmd := s.save(change, func() error {
			return s.group.SetActiveProfile(name)
		}, func() {
			s.group.ActiveProfile = previous
		})
		if cmd == nil {
			s.grid.MoveCursor(coord.Row, profileColName)
		}
		return cmd

	case profileColURL:
		// The profile name sits two columns to the left of the URL.
		name := s.grid.CellTextAt(change.Coordinate.Left().Left())
		oldURL := change.OldText()
		return s.save(change, func() error {
			p := s.group.Profile(name)
			if p == nil {
				return &entities.NotFoundError{Kind: "profile", Name: name}
			}
			p.URL = change.NewText()
			return nil
		}, func() {
			if p := s.group.Profile(name); p != nil {
				p.URL = oldURL
			}
		})
	}
	return nil
}

// save applies a mutation and persists it, unwinding both the domain and
// the displayed rows when either step fails.
func (s *Profiles) save(change grid.CellValueChange, mutate func() error, revert func()) tea.Cmd {
	if err := mutate(); err != nil {
		s.grid.UpdateCellAt(change.Coordinate, change.Old)
		return statusError(err)
	}
	if err := s.saver.Save(s.doc); err != nil {
		revert()
		s.rebuild()
		return statusError(fmt.Errorf("save failed: %w", err))
	}
	return nil
}

// Add appends a freshly created profile and, when it is created active,
// promotes its row to be the sole active one.
func (s *Profiles) Add(name, url string, active bool) tea.Cmd {
	if s.group == nil {
		return statusError(fmt.Errorf("no group selected"))
	}
	previousActive := s.group.ActiveProfile
	if err := s.group.AddProfile(entities.Profile{Name: name, URL: url}, false); err != nil {
		return statusError(err)
	}
	s.grid.AddRow(strconv.Itoa(s.grid.RowCount()+1), name, values.MarkerInactive.String(), url)
	if active || s.group.ActiveProfile == name {
		coord := s.coordinator.Promote(s.grid, s.grid.RowCount()-1)
		s.group.ActiveProfile = name
		s.grid.MoveCursor(coord.Row, profileColName)
	}
	if err := s.saver.Save(s.doc); err != nil {
		s.group.Profiles = s.group.Profiles[:len(s.group.Profiles)-1]
		s.group.ActiveProfile = previousActive
		s.rebuild()
		return statusError(fmt.Errorf("save failed: %w", err))
	}
	return nil
}

// View implements Controller.
func (s *Profiles) View() string {
	return render(s.Title(), s.grid)
}
