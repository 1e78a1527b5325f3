package section

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/termsui-dev/termsui/internal/domain/entities"
	"github.com/termsui-dev/termsui/internal/tui/grid"
)

// fakeSaver records saves and fails on demand.
type fakeSaver struct {
	saves int
	err   error
	last  *entities.Document
}

func (f *fakeSaver) Save(doc *entities.Document) error {
	f.saves++
	f.last = doc
	return f.err
}

func testDocument() *entities.Document {
	return &entities.Document{
		SchemaVersion: "1.0.0",
		ActiveGroup:   "prod",
		Groups: []entities.Group{
			{
				Name:          "prod",
				ActiveProfile: "mainnet",
				ActiveAddress: "0xaaaa",
				Profiles: []entities.Profile{
					{Name: "mainnet", URL: "https://fullnode.mainnet.example.io:443"},
					{Name: "backup", URL: "https://backup.mainnet.example.io:443"},
				},
				Identities: []entities.Identity{
					{Alias: "Primary", PublicKey: "AApk1", Address: "0xaaaa"},
					{Alias: "Cold", PublicKey: "AApk2", Address: "0xbbbb"},
				},
			},
			{Name: "dev"},
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// editCell drives a full inline edit through the section: open the editor
// at the coordinate, replace its content with text, submit it, and feed the
// resulting change event back into the controller, returning the messages
// the mutation produced.
func editCell(t *testing.T, s Controller, c grid.Coordinate, text string) []tea.Msg {
	t.Helper()
	opened, _ := s.Grid().RequestEdit(c)
	require.True(t, opened, "editor should open at %v", c)

	current := len([]rune(s.Grid().CellTextAt(c)))
	for i := 0; i < current; i++ {
		s.Update(keyType(tea.KeyBackspace))
	}
	s.Update(keyRunes(text))

	var msgs []tea.Msg
	for _, msg := range drain(s.Update(keyType(tea.KeyEnter))) {
		if change, ok := msg.(grid.CellValueChange); ok {
			msgs = append(msgs, drain(s.Update(change))...)
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// chooseCell drives a choice edit: open the dialog at the coordinate, move
// the selection to option, submit, and feed the change event back.
func chooseCell(t *testing.T, s Controller, c grid.Coordinate, option string) []tea.Msg {
	t.Helper()
	opened, _ := s.Grid().RequestEdit(c)
	require.True(t, opened, "editor should open at %v", c)

	// walk the selection from the top to the requested option
	s.Update(keyType(tea.KeyUp))
	policy := s.Grid().Policies()[c.Column]
	for _, opt := range policy.Options {
		if opt == option {
			break
		}
		s.Update(keyType(tea.KeyDown))
	}

	var msgs []tea.Msg
	for _, msg := range drain(s.Update(keyType(tea.KeyEnter))) {
		if change, ok := msg.(grid.CellValueChange); ok {
			msgs = append(msgs, drain(s.Update(change))...)
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func statusIn(msgs []tea.Msg) (Status, bool) {
	for _, msg := range msgs {
		if status, ok := msg.(Status); ok {
			return status, true
		}
	}
	return Status{}, false
}

func groupChangedIn(msgs []tea.Msg) (GroupChanged, bool) {
	for _, msg := range msgs {
		if changed, ok := msg.(GroupChanged); ok {
			return changed, true
		}
	}
	return GroupChanged{}, false
}

func markerTexts(g *grid.Model, column int) []string {
	texts := make([]string, g.RowCount())
	for row := range texts {
		texts[row] = g.CellTextAt(grid.Coordinate{Row: row, Column: column})
	}
	return texts
}
