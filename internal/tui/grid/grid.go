package grid

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
)

// editState is the grid's edit-state machine: Idle, or awaiting the result
// of the single editor that may be open at a time.
type editState int

const (
	stateIdle editState = iota
	stateAwaitingEditor
)

// Model is the editable table widget. It exclusively owns row storage and
// cursor state; controllers own the domain data the rows project.
type Model struct {
	name     string
	policies []ColumnPolicy
	headers  []string
	rows     []Row
	cursor   Coordinate
	focused  bool

	state   editState
	editing Coordinate
	inline  *InlineEditor
	choice  *ChoiceEditor
}

// New creates a grid with one policy per column. The name identifies the
// grid in the change events it emits.
func New(name string, policies []ColumnPolicy) *Model {
	return &Model{name: name, policies: policies}
}

// Name returns the identifier carried by emitted change events.
func (m *Model) Name() string {
	return m.name
}

// Policies returns the column policies for late-binding validators.
func (m *Model) Policies() []ColumnPolicy {
	return m.policies
}

// SetValidators late-binds a column's validators. Controllers call this
// once they can close validators over the live data source.
func (m *Model) SetValidators(column int, validators ...Validator) {
	m.policies[column].Validators = validators
}

// AddColumns sets the header row. Calling it twice or after rows exist is a
// programmer error.
func (m *Model) AddColumns(names ...string) {
	if m.headers != nil {
		panic("grid: columns already set")
	}
	if len(m.rows) > 0 {
		panic("grid: cannot set columns after rows exist")
	}
	if len(names) != len(m.policies) {
		panic(fmt.Sprintf("grid: %d column names for %d policies", len(names), len(m.policies)))
	}
	m.headers = names
}

// AddRow appends a row with a display label and a fresh stable identifier,
// returning the identifier. The cursor lands on the first row added.
func (m *Model) AddRow(label string, values ...any) RowID {
	if m.headers == nil {
		panic("grid: add columns before rows")
	}
	if len(values) != len(m.headers) {
		panic(fmt.Sprintf("grid: %d values for %d columns", len(values), len(m.headers)))
	}
	id := RowID(uuid.NewString())
	m.rows = append(m.rows, Row{ID: id, Label: label, cells: values})
	if len(m.rows) == 1 {
		m.cursor = Coordinate{}
	}
	return id
}

// Clear removes all rows and identifiers. The cursor is undefined until a
// row exists again.
func (m *Model) Clear() {
	m.rows = nil
	m.cursor = Coordinate{}
	m.state = stateIdle
	m.inline = nil
	m.choice = nil
}

// RowCount returns the number of rows.
func (m *Model) RowCount() int {
	return len(m.rows)
}

// IDAt returns the stable identifier of the row at the given position.
func (m *Model) IDAt(row int) RowID {
	return m.rows[row].ID
}

// CellAt returns the value at a coordinate.
func (m *Model) CellAt(c Coordinate) any {
	return m.rows[c.Row].cells[c.Column]
}

// CellTextAt returns the display text at a coordinate.
func (m *Model) CellTextAt(c Coordinate) string {
	return cellText(m.CellAt(c))
}

// UpdateCellAt sets one cell's displayed value. No validation runs here;
// validation happens before an editor resolves.
func (m *Model) UpdateCellAt(c Coordinate, value any) {
	m.rows[c.Row].cells[c.Column] = value
}

// RowsMatching returns the coordinates of every row whose cell in the given
// column displays the given text. Callers use it to locate rows without
// tracking positions themselves.
func (m *Model) RowsMatching(column int, text string) []Coordinate {
	var matches []Coordinate
	for row := range m.rows {
		c := Coordinate{Row: row, Column: column}
		if m.CellTextAt(c) == text {
			matches = append(matches, c)
		}
	}
	return matches
}

// Cursor returns the current cursor coordinate. It is undefined while the
// grid is empty.
func (m *Model) Cursor() Coordinate {
	return m.cursor
}

// MoveCursor places the cursor, clamping to the grid's bounds.
func (m *Model) MoveCursor(row, column int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = Coordinate{
		Row:    clamp(row, 0, len(m.rows)-1),
		Column: clamp(column, 0, len(m.policies)-1),
	}
}

// Focus sets whether the grid renders its cursor and accepts keys.
func (m *Model) Focus(focused bool) {
	m.focused = focused
}

// Focused reports whether the grid has focus.
func (m *Model) Focused() bool {
	return m.focused
}

// Editing reports whether an editor is pending. A second edit cannot start
// while one is.
func (m *Model) Editing() bool {
	return m.state == stateAwaitingEditor
}

// RequestEdit resolves the column policy at the coordinate and opens the
// matching editor. It reports whether an editor opened: read-only columns
// and empty grids are silent no-ops, as is a request while an editor is
// already pending.
func (m *Model) RequestEdit(c Coordinate) (bool, tea.Cmd) {
	if len(m.rows) == 0 || m.state == stateAwaitingEditor {
		return false, nil
	}

	policy := m.policies[c.Column]
	switch policy.Kind {
	case ReadOnly:
		return false, nil
	case Inline:
		m.inline = NewInlineEditor(m.CellTextAt(c), policy.Validators)
		m.state = stateAwaitingEditor
		m.editing = c
		return true, m.inline.Init()
	case Choice:
		m.choice = NewChoiceEditor(policy.Title, policy.Prompt, policy.Options, m.CellTextAt(c))
		m.state = stateAwaitingEditor
		m.editing = c
		return true, nil
	default:
		panic(fmt.Sprintf("grid: unknown column kind %d", policy.Kind))
	}
}

// Update handles navigation while idle and routes messages to the pending
// editor otherwise. Accepted edits come back as a CellValueChange command.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.state == stateAwaitingEditor {
		return m.updateEditor(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || len(m.rows) == 0 {
		return nil
	}
	switch key.Type {
	case tea.KeyUp:
		m.MoveCursor(m.cursor.Row-1, m.cursor.Column)
	case tea.KeyDown:
		m.MoveCursor(m.cursor.Row+1, m.cursor.Column)
	case tea.KeyLeft:
		m.MoveCursor(m.cursor.Row, m.cursor.Column-1)
	case tea.KeyRight:
		m.MoveCursor(m.cursor.Row, m.cursor.Column+1)
	case tea.KeyEnter:
		_, cmd := m.RequestEdit(m.cursor)
		return cmd
	}
	return nil
}

func (m *Model) updateEditor(msg tea.Msg) tea.Cmd {
	switch {
	case m.inline != nil:
		done, cmd := m.inline.Update(msg)
		if !done {
			return cmd
		}
		text, submitted := m.inline.Result()
		m.inline = nil
		m.state = stateIdle
		if !submitted {
			return nil
		}
		return m.acceptEdit(text)
	case m.choice != nil:
		done, cmd := m.choice.Update(msg)
		if !done {
			return cmd
		}
		text, submitted := m.choice.Result()
		m.choice = nil
		m.state = stateIdle
		if !submitted {
			return nil
		}
		return m.acceptEdit(text)
	default:
		panic("grid: awaiting editor with none open")
	}
}

// acceptEdit converts the submitted text back to the cell's runtime type,
// applies it, and emits the change event. An inconvertible submission and an
// unchanged value are both silent no-ops.
func (m *Model) acceptEdit(text string) tea.Cmd {
	c := m.editing
	old := m.CellAt(c)
	value, ok := convertCell(old, text)
	if !ok {
		return nil
	}
	if cellText(old) == cellText(value) {
		return nil
	}
	m.UpdateCellAt(c, value)
	return emitChange(CellValueChange{
		Grid:       m.name,
		Policy:     m.policies[c.Column],
		Coordinate: c,
		Old:        old,
		New:        value,
	})
}

// View renders the table, or the pending editor while one is open.
func (m *Model) View() string {
	if m.state == stateAwaitingEditor {
		switch {
		case m.inline != nil:
			return m.inline.View()
		case m.choice != nil:
			return m.choice.View()
		}
	}

	widths := m.columnWidths()
	var b strings.Builder
	b.WriteString("   ")
	cells := make([]string, len(m.headers))
	for i, h := range m.headers {
		cells[i] = headerStyle.Render(pad(h, widths[i]))
	}
	b.WriteString(strings.Join(cells, " "))
	for row := range m.rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(pad(m.rows[row].Label, 2)))
		b.WriteString(" ")
		for col := range m.headers {
			text := pad(m.CellTextAt(Coordinate{Row: row, Column: col}), widths[col])
			if m.focused && m.cursor.Row == row && m.cursor.Column == col {
				text = cursorStyle.Render(text)
			}
			b.WriteString(text)
			if col < len(m.headers)-1 {
				b.WriteString(" ")
			}
		}
	}
	return b.String()
}

func (m *Model) columnWidths() []int {
	widths := make([]int, len(m.headers))
	for i, h := range m.headers {
		widths[i] = len(h)
	}
	for row := range m.rows {
		for col := range m.headers {
			if l := len(m.CellTextAt(Coordinate{Row: row, Column: col})); l > widths[col] {
				widths[col] = l
			}
		}
	}
	return widths
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
