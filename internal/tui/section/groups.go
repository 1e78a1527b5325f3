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
	groupColName = iota
	groupColActive
)

// Groups binds the group grid to the document's group set. Selecting a row
// rebinds the profile and identity sections to that group.
type Groups struct {
	doc         *entities.Document
	grid        *grid.Model
	saver       Saver
	coordinator grid.Coordinator
}

// NewGroups mounts the group section. The uniqueness validator closes over
// the live document and is re-read on every submission.
func NewGroups(saver Saver) *Groups {
	g := grid.New("groups", []grid.ColumnPolicy{
		grid.InlineColumn("Name"),
		grid.ChoiceColumn("Active", "Switch State", "Change Group Active", values.Options()...),
	})
	g.AddColumns("Name", "Active")

	s := &Groups{
		grid:        g,
		saver:       saver,
		coordinator: markerCoordinator(groupColActive),
	}
	g.SetValidators(groupColName,
		grid.CheckFunc(values.CheckName),
		grid.Unique("Group name not unique.", s.siblingNames),
	)
	return s
}

func (s *Groups) siblingNames() []string {
	if s.doc == nil {
		return nil
	}
	return s.doc.GroupNames()
}

// Title implements Controller.
func (s *Groups) Title() string {
	return "Groups"
}

// Grid implements Controller.
func (s *Groups) Grid() *grid.Model {
	return s.grid
}

// SetDocument rebinds the section to a freshly loaded document, rebuilding
// all rows and notifying group observers of the active group.
func (s *Groups) SetDocument(doc *entities.Document) tea.Cmd {
	s.doc = doc
	s.rebuild()
	return notifyGroup(doc.ActiveGroupRef())
}

// rebuild repopulates the grid wholesale from the document and moves the
// cursor to the active row.
func (s *Groups) rebuild() {
	s.grid.Clear()
	activeRow := 0
	for i, name := range s.doc.GroupNames() {
		marker := values.MarkerFor(name == s.doc.ActiveGroup)
		s.grid.AddRow(strconv.Itoa(i+1), name, marker.String())
		if marker.Bool() {
			activeRow = i
		}
	}
	s.grid.MoveCursor(activeRow, groupColName)
}

// Update routes change events into document mutations and everything else
// into the grid.
func (s *Groups) Update(msg tea.Msg) tea.Cmd {
	if change, ok := msg.(grid.CellValueChange); ok {
		if change.Grid != s.grid.Name() {
			return nil
		}
		return s.applyChange(change)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == " " && !s.grid.Editing() {
		return s.selectGroup()
	}
	return s.grid.Update(msg)
}

// selectGroup rebinds the dependent sections to the group under the cursor.
func (s *Groups) selectGroup() tea.Cmd {
	if s.doc == nil || s.grid.RowCount() == 0 {
		return nil
	}
	name := s.grid.CellTextAt(grid.Coordinate{Row: s.grid.Cursor().Row, Column: groupColName})
	return notifyGroup(s.doc.Group(name))
}

func (s *Groups) applyChange(change grid.CellValueChange) tea.Cmd {
	switch change.Coordinate.Column {
	case groupColName:
		oldName, newName := change.OldText(), change.NewText()
		if err := s.doc.RenameGroup(oldName, newName); err != nil {
			s.grid.UpdateCellAt(change.Coordinate, change.Old)
			return statusError(err)
		}
		if err := s.saver.Save(s.doc); err != nil {
			_ = s.doc.RenameGroup(newName, oldName)
			s.grid.UpdateCellAt(change.Coordinate, change.Old)
			return statusError(fmt.Errorf("save failed: %w", err))
		}
		return notifyGroup(s.doc.Group(newName))

	case groupColActive:
		coord, ok := s.coordinator.Apply(s.grid, change)
		if !ok {
			return statusError(&grid.ValidationError{Message: "one group must stay active"})
		}
		previous := s.doc.ActiveGroup
		name := s.grid.CellTextAt(grid.Coordinate{Row: coord.Row, Column: groupColName})
		if err := s.doc.SetActiveGroup(name); err != nil {
			s.rebuild()
			return statusError(err)
		}
		if err := s.saver.Save(s.doc); err != nil {
			_ = s.doc.SetActiveGroup(previous)
			s.rebuild()
			return statusError(fmt.Errorf("save failed: %w", err))
		}
		s.grid.MoveCursor(coord.Row, groupColName)
		return notifyGroup(s.doc.Group(name))
	}
	return nil
}

// Add appends a freshly created group and, when it is created active,
// promotes its row to be the sole active one.
func (s *Groups) Add(name string, active bool) tea.Cmd {
	if s.doc == nil {
		return statusError(fmt.Errorf("no document loaded"))
	}
	previousActive := s.doc.ActiveGroup
	if err := s.doc.AddGroup(entities.Group{Name: name}, false); err != nil {
		return statusError(err)
	}
	s.grid.AddRow(strconv.Itoa(s.grid.RowCount()+1), name, values.MarkerInactive.String())
	if active || s.doc.ActiveGroup == name {
		coord := s.coordinator.Promote(s.grid, s.grid.RowCount()-1)
		if err := s.doc.SetActiveGroup(name); err != nil {
			return statusError(err)
		}
		s.grid.MoveCursor(coord.Row, groupColName)
	}
	if err := s.saver.Save(s.doc); err != nil {
		s.doc.Groups = s.doc.Groups[:len(s.doc.Groups)-1]
		s.doc.ActiveGroup = previousActive
		s.rebuild()
		return statusError(fmt.Errorf("save failed: %w", err))
	}
	return notifyGroup(s.doc.ActiveGroupRef())
}

// View implements Controller.
func (s *Groups) View() string {
	return render(s.Title(), s.grid)
}
