package grid

import (
	"fmt"
	"strconv"
)

// Coordinate addresses one cell as a (row, column) pair.
type Coordinate struct {
	Row    int
	Column int
}

// Left returns the coordinate one column to the left.
func (c Coordinate) Left() Coordinate {
	return Coordinate{Row: c.Row, Column: c.Column - 1}
}

// Right returns the coordinate one column to the right.
func (c Coordinate) Right() Coordinate {
	return Coordinate{Row: c.Row, Column: c.Column + 1}
}

// RowID is an opaque identifier that stays stable across renames and
// reorders. Row position does not.
type RowID string

// Row is an ordered sequence of cell values with a stable identifier and a
// 1-based display label.
type Row struct {
	ID    RowID
	Label string
	cells []any
}

// cellText renders a cell value for display and editing.
func cellText(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// convertCell converts submitted text back to the runtime type of the value
// it replaces. Validators operate on text but cells may hold typed data, so
// an inconvertible submission is reported as not-ok and treated as a cancel
// by the caller.
func convertCell(old any, text string) (any, bool) {
	switch old.(type) {
	case nil, string:
		return text, true
	case int:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, false
		}
		return n, true
	case int64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case float64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	case bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, false
		}
		return b, true
	default:
		return nil, false
	}
}
