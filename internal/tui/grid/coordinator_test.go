package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markerChange(g *Model, row int, oldText, newText string) CellValueChange {
	return CellValueChange{
		Grid:       g.Name(),
		Coordinate: Coordinate{Row: row, Column: 1},
		Old:        oldText,
		New:        newText,
	}
}

func testCoordinator() Coordinator {
	return Coordinator{Column: 1, Active: "Yes", Inactive: "No"}
}

func markerTexts(g *Model) []string {
	texts := make([]string, g.RowCount())
	for row := range texts {
		texts[row] = g.CellTextAt(Coordinate{Row: row, Column: 1})
	}
	return texts
}

func Test_Coordinator_Apply_PromoteDemotesPrevious(t *testing.T) {
	g := markerGrid()
	co := testCoordinator()

	// the grid has already applied the accepted edit on row 1
	g.UpdateCellAt(Coordinate{Row: 1, Column: 1}, "Yes")
	coord, ok := co.Apply(g, markerChange(g, 1, "No", "Yes"))

	require.True(t, ok)
	assert.Equal(t, Coordinate{Row: 1, Column: 1}, coord)
	assert.Equal(t, []string{"No", "Yes", "No"}, markerTexts(g), "previous active row is demoted")
}

func Test_Coordinator_Apply_PromoteAlreadyActiveRow(t *testing.T) {
	g := markerGrid()
	co := testCoordinator()

	coord, ok := co.Apply(g, markerChange(g, 0, "No", "Yes"))

	require.True(t, ok)
	assert.Equal(t, Coordinate{Row: 0, Column: 1}, coord)
	assert.Equal(t, []string{"Yes", "No", "No"}, markerTexts(g))
}

func Test_Coordinator_Apply_DemotePromotesAnotherRow(t *testing.T) {
	g := markerGrid()
	co := testCoordinator()

	g.UpdateCellAt(Coordinate{Row: 0, Column: 1}, "No")
	coord, ok := co.Apply(g, markerChange(g, 0, "Yes", "No"))

	require.True(t, ok)
	assert.Equal(t, 1, coord.Row, "first other inactive row is promoted")
	assert.Equal(t, []string{"No", "Yes", "No"}, markerTexts(g))
}

func Test_Coordinator_Apply_SoloRowDemotionRefused(t *testing.T) {
	g := New("solo", []ColumnPolicy{
		InlineColumn("Name"),
		ChoiceColumn("Active", "Switch State", "", "Yes", "No"),
	})
	g.AddColumns("Name", "Active")
	g.AddRow("1", "only", "Yes")
	co := testCoordinator()

	g.UpdateCellAt(Coordinate{Row: 0, Column: 1}, "No")
	coord, ok := co.Apply(g, markerChange(g, 0, "Yes", "No"))

	assert.False(t, ok, "demoting the sole row is refused")
	assert.Equal(t, Coordinate{Row: 0, Column: 1}, coord)
	assert.Equal(t, "Yes", g.CellTextAt(coord), "the cell reverts to active")
}

func Test_Coordinator_Promote(t *testing.T) {
	g := markerGrid()
	co := testCoordinator()

	coord := co.Promote(g, 2)

	assert.Equal(t, Coordinate{Row: 2, Column: 1}, coord)
	assert.Equal(t, []string{"No", "No", "Yes"}, markerTexts(g))

	// promoting the active row again is idempotent
	coord = co.Promote(g, 2)
	assert.Equal(t, Coordinate{Row: 2, Column: 1}, coord)
	assert.Equal(t, []string{"No", "No", "Yes"}, markerTexts(g))
}

func Test_Coordinator_ActiveRow(t *testing.T) {
	g := markerGrid()
	co := testCoordinator()

	coord, ok := co.ActiveRow(g)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Row: 0, Column: 1}, coord)

	g.Clear()
	_, ok = co.ActiveRow(g)
	assert.False(t, ok)
}

// Exclusivity holds across any sequence of promote and demote operations.
func Test_Coordinator_ExclusivityInvariant(t *testing.T) {
	g := markerGrid()
	co := testCoordinator()

	steps := []struct {
		row  int
		text string
	}{
		{1, "Yes"},
		{2, "Yes"},
		{2, "No"},
		{0, "Yes"},
		{0, "No"},
	}
	for _, step := range steps {
		c := Coordinate{Row: step.row, Column: 1}
		old := g.CellTextAt(c)
		g.UpdateCellAt(c, step.text)
		co.Apply(g, markerChange(g, step.row, old, step.text))

		assert.Len(t, g.RowsMatching(1, "Yes"), 1,
			"exactly one active row after edit %v", step)
	}
}
