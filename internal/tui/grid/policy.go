// Package grid implements the editable table widget: per-column edit
// policies, inline and choice cell editors, change-event propagation, and
// the single-active-row coordinator.
package grid

// Kind tags a column's edit policy.
type Kind int

const (
	// ReadOnly columns ignore edit requests
	ReadOnly Kind = iota
	// Inline columns edit through a free-text field with validators
	Inline
	// Choice columns edit through a fixed option dialog
	Choice
)

// ColumnPolicy governs editability, editor kind, and validation for one
// column. Policies are fixed once the grid is mounted except Validators,
// which a controller may late-bind after it can see the live data source.
type ColumnPolicy struct {
	Field      string
	Kind       Kind
	Validators []Validator
	Options    []string // choice columns only
	Title      string   // choice dialog title
	Prompt     string   // choice dialog prompt
}

// InlineColumn declares a free-text editable column.
func InlineColumn(field string, validators ...Validator) ColumnPolicy {
	return ColumnPolicy{Field: field, Kind: Inline, Validators: validators}
}

// ChoiceColumn declares a column edited through a fixed option set.
func ChoiceColumn(field, title, prompt string, options ...string) ColumnPolicy {
	return ColumnPolicy{Field: field, Kind: Choice, Title: title, Prompt: prompt, Options: options}
}

// ReadOnlyColumn declares a display-only column.
func ReadOnlyColumn(field string) ColumnPolicy {
	return ColumnPolicy{Field: field, Kind: ReadOnly}
}

// Validator checks a candidate value during an inline edit. previous is the
// cell's value when the edit began; validators that accept an unchanged
// resubmission compare against it. All of a column's validators run on every
// submission and their failures are aggregated.
type Validator func(previous, candidate string) error

// CheckFunc adapts a plain predicate that ignores the pre-edit value.
func CheckFunc(check func(string) error) Validator {
	return func(_, candidate string) error {
		return check(candidate)
	}
}

// Unique rejects candidates already present among siblings. The sibling set
// is re-read on every submission, never cached, and an unchanged
// resubmission always passes.
func Unique(message string, siblings func() []string) Validator {
	return func(previous, candidate string) error {
		if candidate == previous {
			return nil
		}
		for _, name := range siblings() {
			if name == candidate {
				return &ValidationError{Message: message}
			}
		}
		return nil
	}
}

// ValidationError is a recoverable validation failure with a human-readable
// description.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
