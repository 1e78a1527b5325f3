package grid

// Coordinator enforces the exclusivity rule over a grid's marker column: at
// most one row carries the active value at any time, and exactly one does
// whenever the grid is non-empty.
type Coordinator struct {
	Column   int
	Active   string
	Inactive string
}

// Apply adjusts the grid after an accepted edit on the marker column and
// returns the coordinate of the row that is canonically active afterwards,
// so callers can focus it and read off the row's key.
//
// Promoting a row demotes whichever row previously held the active value.
// Demoting the active row promotes an arbitrary other inactive row; when no
// other row exists the demotion is refused, the cell reverts, and ok is
// false so callers skip the domain mutation.
func (co Coordinator) Apply(g *Model, change CellValueChange) (Coordinate, bool) {
	edited := change.Coordinate

	switch {
	case change.NewText() == co.Active:
		return co.Promote(g, edited.Row), true

	case change.OldText() == co.Active:
		for _, c := range g.RowsMatching(co.Column, co.Inactive) {
			if c.Row != edited.Row {
				g.UpdateCellAt(c, co.Active)
				return c, true
			}
		}
		g.UpdateCellAt(edited, co.Active)
		return edited, false
	}

	// Inactive-to-inactive edits cannot occur through the choice editor;
	// nothing to coordinate.
	return edited, false
}

// Promote makes the given row the sole active one, demoting any other row
// currently holding the active value, and returns the marker coordinate.
func (co Coordinator) Promote(g *Model, row int) Coordinate {
	for _, c := range g.RowsMatching(co.Column, co.Active) {
		if c.Row != row {
			g.UpdateCellAt(c, co.Inactive)
		}
	}
	target := Coordinate{Row: row, Column: co.Column}
	g.UpdateCellAt(target, co.Active)
	return target
}

// ActiveRow returns the coordinate of the row currently holding the active
// value, or ok false on an empty or all-inactive grid.
func (co Coordinator) ActiveRow(g *Model) (Coordinate, bool) {
	matches := g.RowsMatching(co.Column, co.Active)
	if len(matches) == 0 {
		return Coordinate{}, false
	}
	return matches[0], true
}
