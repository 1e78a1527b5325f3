package grid

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	editorPromptStyle = lipgloss.NewStyle().Bold(true)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// InlineEditor is a free-text cell editor seeded with the current cell
// value. Submission runs every validator in order and aggregates failures;
// the editor stays open until all pass or the user cancels.
type InlineEditor struct {
	input      textinput.Model
	validators []Validator
	previous   string // cell value when the edit began
	failures   []string

	done      bool
	submitted bool
	value     string
}

// NewInlineEditor seeds an editor with the current cell text.
func NewInlineEditor(current string, validators []Validator) *InlineEditor {
	input := textinput.New()
	input.SetValue(current)
	input.CursorEnd()
	input.Focus()
	return &InlineEditor{
		input:      input,
		validators: validators,
		previous:   current,
	}
}

// Init returns the editor's initial command.
func (e *InlineEditor) Init() tea.Cmd {
	return textinput.Blink
}

// Update advances the editor. It reports true once the editor has resolved,
// by submission or cancel.
func (e *InlineEditor) Update(msg tea.Msg) (bool, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEscape:
			e.done = true
			return true, nil
		case tea.KeyEnter:
			candidate := e.input.Value()
			e.failures = e.validate(candidate)
			if len(e.failures) > 0 {
				return false, nil
			}
			e.value = candidate
			e.submitted = true
			e.done = true
			return true, nil
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	// Re-validate per keystroke so failures clear as the user corrects.
	if _, ok := msg.(tea.KeyMsg); ok && len(e.failures) > 0 {
		e.failures = e.validate(e.input.Value())
	}
	return false, cmd
}

func (e *InlineEditor) validate(candidate string) []string {
	var failures []string
	for _, v := range e.validators {
		if err := v(e.previous, candidate); err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

// Result returns the submitted text. ok is false when the editor was
// cancelled or is still open.
func (e *InlineEditor) Result() (string, bool) {
	return e.value, e.submitted
}

// View renders the field and any outstanding validation failures.
func (e *InlineEditor) View() string {
	var b strings.Builder
	b.WriteString(editorPromptStyle.Render("Edit: "))
	b.WriteString(e.input.View())
	for _, failure := range e.failures {
		b.WriteString("\n")
		b.WriteString(editorErrorStyle.Render(failure))
	}
	return b.String()
}
