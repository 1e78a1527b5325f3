package grid

import tea "github.com/charmbracelet/bubbletea"

// CellValueChange is posted once per accepted edit. It is the only
// notification channel out of the grid. The event is immutable; observers
// translate it into domain mutations.
type CellValueChange struct {
	Grid       string
	Policy     ColumnPolicy
	Coordinate Coordinate
	Old        any
	New        any
}

// OldText returns the display form of the pre-edit value.
func (c CellValueChange) OldText() string {
	return cellText(c.Old)
}

// NewText returns the display form of the accepted value.
func (c CellValueChange) NewText() string {
	return cellText(c.New)
}

func emitChange(change CellValueChange) tea.Cmd {
	return func() tea.Msg {
		return change
	}
}
