package grid

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	choiceTitleStyle    = lipgloss.NewStyle().Bold(true)
	choiceSelectedStyle = lipgloss.NewStyle().Reverse(true)
)

// ChoiceEditor presents a fixed ordered set of mutually exclusive options
// and resolves to exactly one of them, or to no change on cancel. It is
// stateless beyond the single selection.
type ChoiceEditor struct {
	title   string
	prompt  string
	options []string
	index   int

	submitted bool
	value     string
}

// NewChoiceEditor builds an editor over the given options, pre-selecting
// the current cell value when it is one of them.
func NewChoiceEditor(title, prompt string, options []string, current string) *ChoiceEditor {
	index := 0
	for i, opt := range options {
		if opt == current {
			index = i
			break
		}
	}
	return &ChoiceEditor{
		title:   title,
		prompt:  prompt,
		options: options,
		index:   index,
	}
}

// Update advances the editor. It reports true once the editor has resolved.
func (e *ChoiceEditor) Update(msg tea.Msg) (bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch key.Type {
	case tea.KeyEscape:
		return true, nil
	case tea.KeyUp:
		if e.index > 0 {
			e.index--
		}
	case tea.KeyDown:
		if e.index < len(e.options)-1 {
			e.index++
		}
	case tea.KeyEnter:
		e.value = e.options[e.index]
		e.submitted = true
		return true, nil
	}
	return false, nil
}

// Result returns the chosen option. ok is false when the editor was
// cancelled or is still open.
func (e *ChoiceEditor) Result() (string, bool) {
	return e.value, e.submitted
}

// View renders the option list with the selection highlighted.
func (e *ChoiceEditor) View() string {
	var b strings.Builder
	b.WriteString(choiceTitleStyle.Render(e.title))
	if e.prompt != "" {
		b.WriteString("\n")
		b.WriteString(e.prompt)
	}
	for i, opt := range e.options {
		b.WriteString("\n")
		if i == e.index {
			b.WriteString(choiceSelectedStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
	}
	return b.String()
}
