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
	identityColAlias = iota
	identityColActive
	identityColPublicKey
	identityColAddress
)

// Identities binds the identity grid to the currently selected group. Key
// material is read-only; only the alias and the active marker are editable.
type Identities struct {
	group       *entities.Group
	doc         *entities.Document
	grid        *grid.Model
	saver       Saver
	coordinator grid.Coordinator
}

// NewIdentities mounts the identity section.
func NewIdentities(saver Saver) *Identities {
	g := grid.New("identities", []grid.ColumnPolicy{
		grid.InlineColumn("Alias"),
		grid.ChoiceColumn("Active", "Switch State", "Change Active", values.Options()...),
		grid.ReadOnlyColumn("Public Key"),
		grid.ReadOnlyColumn("Address"),
	})
	g.AddColumns("Alias", "Active", "Public Key", "Address")

	s := &Identities{
		grid:        g,
		saver:       saver,
		coordinator: markerCoordinator(identityColActive),
	}
	g.SetValidators(identityColAlias,
		grid.CheckFunc(values.CheckAlias),
		grid.Unique("Alias name not unique.", s.siblingNames),
	)
	return s
}

func (s *Identities) siblingNames() []string {
	if s.group == nil {
		return nil
	}
	return s.group.AliasNames()
}

// Title implements Controller.
func (s *Identities) Title() string {
	if s.group == nil {
		return "Identities"
	}
	return fmt.Sprintf("Identities in %s", s.group.Name)
}

// Grid implements Controller.
func (s *Identities) Grid() *grid.Model {
	return s.grid
}

// Group returns the group the section is bound to, or nil.
func (s *Identities) Group() *entities.Group {
	return s.group
}

// SetDocument keeps the document reference for persistence; rows follow the
// group binding.
func (s *Identities) SetDocument(doc *entities.Document) {
	s.doc = doc
	s.group = nil
	s.grid.Clear()
}

// SetGroup rebinds the section to a different group, rebuilding all rows.
func (s *Identities) SetGroup(group *entities.Group) {
	s.group = group
	s.rebuild()
}

func (s *Identities) rebuild() {
	s.grid.Clear()
	if s.group == nil {
		return
	}
	activeRow := 0
	for i, id := range s.group.Identities {
		marker := values.MarkerFor(id.Address == s.group.ActiveAddress)
		s.grid.AddRow(strconv.Itoa(i+1), id.Alias, marker.String(), id.PublicKey, id.Address)
		if marker.Bool() {
			activeRow = i
		}
	}
	s.grid.MoveCursor(activeRow, identityColAlias)
}

// Update routes change events into group mutations and everything else into
// the grid.
func (s *Identities) Update(msg tea.Msg) tea.Cmd {
	if change, ok := msg.(grid.CellValueChange); ok {
		if change.Grid != s.grid.Name() || s.group == nil {
			return nil
		}
		return s.applyChange(change)
	}
	return s.grid.Update(msg)
}

func (s *Identities) applyChange(change grid.CellValueChange) tea.Cmd {
	switch change.Coordinate.Column {
	case identityColAlias:
		oldAlias, newAlias := change.OldText(), change.NewText()
		return s.save(change, func() error {
			return s.group.RenameAlias(oldAlias, newAlias)
		}, func() {
			_ = s.group.RenameAlias(newAlias, oldAlias)
		})

	case identityColActive:
		coord, ok := s.coordinator.Apply(s.grid, change)
		if !ok {
			return statusError(&grid.ValidationError{Message: "one identity must stay active"})
		}
		previous := s.group.ActiveAddress
		// The address sits two columns right of the marker.
		address := s.grid.CellTextAt(coord.Right().Right())
		cmd := s.save(change, func() error {
			return s.group.SetActiveAddress(address)
		}, func() {
			s.group.ActiveAddress = previous
		})
		if cmd == nil {
			s.grid.MoveCursor(coord.Row, identityColAlias)
		}
		return cmd
	}
	return nil
}

func (s *Identities) save(change grid.CellValueChange, mutate func() error, revert func()) tea.Cmd {
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

// Add appends a freshly generated identity and, when it is created active,
// promotes its row to be the sole active one.
func (s *Identities) Add(id entities.Identity, active bool) tea.Cmd {
	if s.group == nil {
		return statusError(fmt.Errorf("no group selected"))
	}
	previousActive := s.group.ActiveAddress
	if err := s.group.AddIdentity(id, false); err != nil {
		return statusError(err)
	}
	s.grid.AddRow(strconv.Itoa(s.grid.RowCount()+1),
		id.Alias, values.MarkerInactive.String(), id.PublicKey, id.Address)
	if active || s.group.ActiveAddress == id.Address {
		coord := s.coordinator.Promote(s.grid, s.grid.RowCount()-1)
		s.group.ActiveAddress = id.Address
		s.grid.MoveCursor(coord.Row, identityColAlias)
	}
	if err := s.saver.Save(s.doc); err != nil {
		s.group.Identities = s.group.Identities[:len(s.group.Identities)-1]
		s.group.ActiveAddress = previousActive
		s.rebuild()
		return statusError(fmt.Errorf("save failed: %w", err))
	}
	return nil
}

// View implements Controller.
func (s *Identities) View() string {
	return render(s.Title(), s.grid)
}
