// Package tui composes the configuration screen: three entity sections over
// one document, modal creation dialogs, and a status bar. The screen owns
// the observer list of mounted sections and broadcasts document and group
// changes to them explicitly.
package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/termsui-dev/termsui/internal/domain/entities"
	"github.com/termsui-dev/termsui/internal/infrastructure/config"
	"github.com/termsui-dev/termsui/internal/infrastructure/keys"
	"github.com/termsui-dev/termsui/internal/tui/grid"
	"github.com/termsui-dev/termsui/internal/tui/modal"
	"github.com/termsui-dev/termsui/internal/tui/section"
)

var (
	titleBarStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Faint(true)
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

const helpLine = "↑↓←→ move · enter edit · space select group · a add · tab section · ctrl+s save to · q quit"

type modalKind int

const (
	modalNone modalKind = iota
	modalAddGroup
	modalAddProfile
	modalAddIdentity
	modalSaveTo
	modalNewKey
)

// App is the root bubbletea model.
type App struct {
	store  *config.Store
	keygen keys.Generator
	doc    *entities.Document

	groups     *section.Groups
	profiles   *section.Profiles
	identities *section.Identities
	sections   []section.Controller
	focus      int

	form     *huh.Form
	formKind modalKind

	newGroup    modal.NewGroup
	newProfile  modal.NewProfile
	newIdentity modal.NewIdentity
	savePath    string

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the screen over a document store and a key collaborator.
func New(store *config.Store, keygen keys.Generator) *App {
	a := &App{
		store:  store,
		keygen: keygen,
	}
	saver := appSaver{app: a}
	a.groups = section.NewGroups(saver)
	a.profiles = section.NewProfiles(saver)
	a.identities = section.NewIdentities(saver)
	a.sections = []section.Controller{a.groups, a.profiles, a.identities}
	return a
}

// appSaver routes section saves through whichever store the app is bound to
// at save time, so a save-to rebind applies to every later edit.
type appSaver struct {
	app *App
}

func (s appSaver) Save(doc *entities.Document) error {
	return s.app.store.Save(doc)
}

// Init loads the document, creating a fresh one when the path is empty.
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		doc, err := a.store.LoadOrInit()
		if err != nil {
			slog.Error("failed to load document", "path", a.store.Path(), "error", err)
			return section.Status{Err: err}
		}
		slog.Info("document loaded", "path", a.store.Path(), "groups", len(doc.Groups))
		return section.DocumentChanged{Doc: doc}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case section.DocumentChanged:
		a.doc = msg.Doc
		a.profiles.SetDocument(msg.Doc)
		a.identities.SetDocument(msg.Doc)
		cmd := a.groups.SetDocument(msg.Doc)
		a.setFocus(0)
		return a, cmd

	case section.GroupChanged:
		a.profiles.SetGroup(msg.Group)
		a.identities.SetGroup(msg.Group)
		return a, nil

	case section.Status:
		if msg.Err != nil {
			a.status = msg.Err.Error()
			a.statusErr = true
		} else {
			a.status = msg.Text
			a.statusErr = false
		}
		return a, nil

	case grid.CellValueChange:
		// Every section sees the event; each filters on its own grid.
		var cmds []tea.Cmd
		for _, s := range a.sections {
			if cmd := s.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return a, tea.Batch(cmds...)
	}

	if a.form != nil {
		return a.updateForm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return a.updateKey(key)
	}
	return a, a.sections[a.focus].Update(msg)
}

func (a *App) updateKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused := a.sections[a.focus]
	if focused.Grid().Editing() {
		return a, focused.Update(key)
	}

	switch key.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "tab":
		a.setFocus((a.focus + 1) % len(a.sections))
		return a, nil
	case "shift+tab":
		a.setFocus((a.focus + len(a.sections) - 1) % len(a.sections))
		return a, nil
	case "a":
		return a, a.openAddForm()
	case "ctrl+s":
		if a.doc == nil {
			return a, nil
		}
		a.savePath = ""
		a.form = modal.SaveTo(&a.savePath)
		a.formKind = modalSaveTo
		return a, a.form.Init()
	}
	return a, focused.Update(key)
}

func (a *App) setFocus(index int) {
	a.focus = index
	for i, s := range a.sections {
		s.Grid().Focus(i == index)
	}
}

// openAddForm opens the creation dialog matching the focused section.
func (a *App) openAddForm() tea.Cmd {
	if a.doc == nil {
		return nil
	}
	switch a.sections[a.focus] {
	case a.groups:
		a.newGroup = modal.NewGroup{}
		a.form = modal.AddGroup(&a.newGroup, a.doc.GroupNames)
		a.formKind = modalAddGroup
	case a.profiles:
		a.newProfile = modal.NewProfile{}
		a.form = modal.AddProfile(&a.newProfile, a.profileSiblings)
		a.formKind = modalAddProfile
	case a.identities:
		a.newIdentity = modal.NewIdentity{Scheme: keys.SchemeED25519}
		a.form = modal.AddIdentity(&a.newIdentity, a.aliasSiblings)
		a.formKind = modalAddIdentity
	}
	return a.form.Init()
}

func (a *App) profileSiblings() []string {
	if g := a.profiles.Group(); g != nil {
		return g.ProfileNames()
	}
	return nil
}

func (a *App) aliasSiblings() []string {
	if g := a.identities.Group(); g != nil {
		return g.AliasNames()
	}
	return nil
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		a.form = form
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.form = nil
		a.formKind = modalNone
		return a, tea.Batch(cmd, a.resolveForm(kind))
	case huh.StateAborted:
		a.form = nil
		a.formKind = modalNone
		return a, cmd
	}
	return a, cmd
}

// resolveForm applies a completed dialog's result.
func (a *App) resolveForm(kind modalKind) tea.Cmd {
	switch kind {
	case modalAddGroup:
		return a.groups.Add(a.newGroup.Name, a.newGroup.Active)

	case modalAddProfile:
		return a.profiles.Add(a.newProfile.Name, a.newProfile.URL, a.newProfile.Active)

	case modalAddIdentity:
		generated, err := a.keygen.Generate(a.newIdentity.Scheme)
		if err != nil {
			slog.Error("key generation failed", "scheme", a.newIdentity.Scheme, "error", err)
			return func() tea.Msg { return section.Status{Err: err} }
		}
		id := entities.Identity{
			Alias:     a.newIdentity.Alias,
			PublicKey: generated.PublicKey,
			Address:   generated.Address,
		}
		addCmd := a.identities.Add(id, a.newIdentity.Active)
		a.form = modal.NewKey(generated)
		a.formKind = modalNewKey
		return tea.Batch(addCmd, a.form.Init())

	case modalSaveTo:
		if a.doc == nil {
			return func() tea.Msg { return section.Status{Err: fmt.Errorf("no document loaded")} }
		}
		if err := a.store.SaveTo(a.savePath, a.doc); err != nil {
			slog.Error("save-to failed", "path", a.savePath, "error", err)
			return func() tea.Msg { return section.Status{Err: err} }
		}
		slog.Info("document saved", "path", a.savePath)
		a.store = config.NewStore(a.savePath)
		path := a.savePath
		return func() tea.Msg { return section.Status{Text: "saved to " + path} }
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	title := titleBarStyle.Render(fmt.Sprintf("Termsui Configuration: %s", a.store.Path()))

	if a.form != nil {
		return title + "\n\n" + a.form.View()
	}

	body := title
	for _, s := range a.sections {
		body += "\n" + s.View()
	}
	if a.status != "" {
		style := statusStyle
		if a.statusErr {
			style = statusErrStyle
		}
		body += "\n" + style.Render(a.status)
	}
	return body + "\n" + helpStyle.Render(helpLine)
}
