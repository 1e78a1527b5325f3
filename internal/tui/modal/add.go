// Package modal holds the creation and confirmation dialogs. Each dialog is
// a huh form run as an overlay of the main screen; a dismissed form resolves
// to nil so callers see "no change".
package modal

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/termsui-dev/termsui/internal/domain/values"
	"github.com/termsui-dev/termsui/internal/infrastructure/keys"
)

// NewGroup carries the result of the add-group dialog.
type NewGroup struct {
	Name   string
	Active bool
}

// NewProfile carries the result of the add-profile dialog.
type NewProfile struct {
	Name   string
	URL    string
	Active bool
}

// NewIdentity carries the result of the add-identity dialog. Key material is
// generated after the dialog resolves.
type NewIdentity struct {
	Alias  string
	Scheme keys.Scheme
	Active bool
}

// AddGroup builds the add-group form. existing supplies the sibling names
// the new name must not collide with, re-read at validation time.
func AddGroup(result *NewGroup, existing func() []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Group name").
				Description("3-32 characters: letters, digits, '_' and '-'").
				Validate(uniqueName(values.CheckName, existing)).
				Value(&result.Name),
			huh.NewConfirm().
				Title("Make Active?").
				Value(&result.Active),
		).Title("Add a new Group"),
	)
}

// AddProfile builds the add-profile form.
func AddProfile(result *NewProfile, existing func() []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Description("3-32 characters: letters, digits, '_' and '-'").
				Validate(uniqueName(values.CheckName, existing)).
				Value(&result.Name),
			huh.NewInput().
				Title("Profile URL").
				Placeholder("https://...").
				Validate(values.CheckURL).
				Value(&result.URL),
			huh.NewConfirm().
				Title("Make Active?").
				Value(&result.Active),
		).Title("Add a new Profile"),
	)
}

// AddIdentity builds the add-identity form.
func AddIdentity(result *NewIdentity, existing func() []string) *huh.Form {
	options := make([]huh.Option[keys.Scheme], 0, len(keys.Schemes()))
	for _, scheme := range keys.Schemes() {
		options = append(options, huh.NewOption(string(scheme), scheme))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Alias").
				Description("3-64 characters: letters, digits, '_' and '-'").
				Validate(uniqueName(values.CheckAlias, existing)).
				Value(&result.Alias),
			huh.NewSelect[keys.Scheme]().
				Title("Key scheme").
				Options(options...).
				Value(&result.Scheme),
			huh.NewConfirm().
				Title("Make Active?").
				Value(&result.Active),
		).Title("Add a new Identity"),
	)
}

// SaveTo builds the save-as form collecting a target document path.
func SaveTo(path *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Save configuration to").
				Placeholder("/path/to/termsui.yaml").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}).
				Value(path),
		).Title("Save to new location"),
	)
}

// NewKey builds the one-time confirmation shown after key generation. The
// recovery encoding and private key are never persisted, so this is the only
// chance to copy them.
func NewKey(generated keys.Generated) *huh.Form {
	note := fmt.Sprintf(
		"Copy the following to a safe place.\n\nRecovery: %s\n\nPrivate key: %s",
		generated.Recovery, generated.PrivateKey,
	)
	var acknowledged bool
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("New Key Created").
				Description(note),
			huh.NewConfirm().
				Title("Stored safely?").
				Affirmative("OK").
				Negative("").
				Value(&acknowledged),
		),
	)
}

// uniqueName chains a format check with a duplicate check over the live
// sibling set.
func uniqueName(check func(string) error, existing func() []string) func(string) error {
	return func(name string) error {
		if err := check(name); err != nil {
			return err
		}
		for _, sibling := range existing() {
			if sibling == name {
				return fmt.Errorf("%q already exists", name)
			}
		}
		return nil
	}
}
