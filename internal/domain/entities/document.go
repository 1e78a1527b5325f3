// Package entities contains the configuration document domain model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"fmt"
)

// Document is the root of the account configuration store: a set of named
// groups, each holding RPC profiles and key identities.
//
// Aggregate Boundary:
// - Document is the root
// - Groups are entities within the aggregate
// - Profiles and Identities are entities within their Group
//
// Invariants Enforced:
// - Group names are unique within the document
// - ActiveGroup names an existing group whenever any group exists
// - Per-group invariants (see Group.Validate)
type Document struct {
	SchemaVersion string  `yaml:"schema_version"`
	ActiveGroup   string  `yaml:"active_group,omitempty"`
	Groups        []Group `yaml:"groups"`
}

// Group is a named collection of profiles and identities. At most one
// profile and one identity are active within the group at a time.
type Group struct {
	Name          string     `yaml:"name"`
	ActiveProfile string     `yaml:"active_profile,omitempty"`
	ActiveAddress string     `yaml:"active_address,omitempty"`
	Profiles      []Profile  `yaml:"profiles,omitempty"`
	Identities    []Identity `yaml:"identities,omitempty"`
}

// Profile is a named RPC endpoint within a group.
type Profile struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Identity is an aliased keypair within a group. PublicKey and Address are
// derived by the key collaborator and never edited in place.
type Identity struct {
	Alias     string `yaml:"alias"`
	PublicKey string `yaml:"public_key"`
	Address   string `yaml:"address"`
}

// ===== DOCUMENT AGGREGATE ROOT METHODS =====

// Validate enforces the aggregate invariants.
func (d *Document) Validate() error {
	if d.SchemaVersion == "" {
		return fmt.Errorf("schema_version cannot be empty")
	}

	seen := make(map[string]bool)
	for i := range d.Groups {
		g := &d.Groups[i]
		if err := g.Validate(); err != nil {
			return fmt.Errorf("group %d (%s): %w", i, g.Name, err)
		}
		if seen[g.Name] {
			return &DuplicateNameError{Kind: "group", Name: g.Name}
		}
		seen[g.Name] = true
	}

	if len(d.Groups) > 0 {
		if d.ActiveGroup == "" {
			return fmt.Errorf("active_group must be set when groups exist")
		}
		if !seen[d.ActiveGroup] {
			return fmt.Errorf("active_group %q does not name a group", d.ActiveGroup)
		}
	}
	return nil
}

// GroupNames returns all group names in document order.
func (d *Document) GroupNames() []string {
	names := make([]string, 0, len(d.Groups))
	for i := range d.Groups {
		names = append(names, d.Groups[i].Name)
	}
	return names
}

// Group retrieves a group by name, or nil.
func (d *Document) Group(name string) *Group {
	for i := range d.Groups {
		if d.Groups[i].Name == name {
			return &d.Groups[i]
		}
	}
	return nil
}

// HasGroup returns true if a group with the given name exists.
func (d *Document) HasGroup(name string) bool {
	return d.Group(name) != nil
}

// ActiveGroupRef returns the currently active group, or nil when the
// document is empty.
func (d *Document) ActiveGroupRef() *Group {
	return d.Group(d.ActiveGroup)
}

// AddGroup appends a group, optionally making it the active one.
func (d *Document) AddGroup(g Group, makeActive bool) error {
	if d.HasGroup(g.Name) {
		return &DuplicateNameError{Kind: "group", Name: g.Name}
	}
	d.Groups = append(d.Groups, g)
	if makeActive || d.ActiveGroup == "" {
		d.ActiveGroup = g.Name
	}
	return nil
}

// RenameGroup renames a group and keeps the active-group pointer in step
// when it referenced the old name.
func (d *Document) RenameGroup(oldName, newName string) error {
	g := d.Group(oldName)
	if g == nil {
		return &NotFoundError{Kind: "group", Name: oldName}
	}
	if oldName != newName && d.HasGroup(newName) {
		return &DuplicateNameError{Kind: "group", Name: newName}
	}
	g.Name = newName
	if d.ActiveGroup == oldName {
		d.ActiveGroup = newName
	}
	return nil
}

// SetActiveGroup switches the document's active-group pointer.
func (d *Document) SetActiveGroup(name string) error {
	if !d.HasGroup(name) {
		return &NotFoundError{Kind: "group", Name: name}
	}
	d.ActiveGroup = name
	return nil
}

// ===== GROUP ENTITY METHODS =====

// Validate checks the group's internal invariants.
func (g *Group) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("group name cannot be empty")
	}

	profiles := make(map[string]bool)
	for _, p := range g.Profiles {
		if p.Name == "" {
			return fmt.Errorf("profile name cannot be empty")
		}
		if profiles[p.Name] {
			return &DuplicateNameError{Kind: "profile", Name: p.Name}
		}
		profiles[p.Name] = true
	}
	if g.ActiveProfile != "" && !profiles[g.ActiveProfile] {
		return fmt.Errorf("active_profile %q does not name a profile", g.ActiveProfile)
	}

	aliases := make(map[string]bool)
	addresses := make(map[string]bool)
	for _, id := range g.Identities {
		if id.Alias == "" {
			return fmt.Errorf("identity alias cannot be empty")
		}
		if aliases[id.Alias] {
			return &DuplicateNameError{Kind: "identity", Name: id.Alias}
		}
		aliases[id.Alias] = true
		addresses[id.Address] = true
	}
	if g.ActiveAddress != "" && !addresses[g.ActiveAddress] {
		return fmt.Errorf("active_address %q does not name an identity", g.ActiveAddress)
	}
	return nil
}

// ProfileNames returns all profile names in group order.
func (g *Group) ProfileNames() []string {
	names := make([]string, 0, len(g.Profiles))
	for i := range g.Profiles {
		names = append(names, g.Profiles[i].Name)
	}
	return names
}

// Profile retrieves a profile by name, or nil.
func (g *Group) Profile(name string) *Profile {
	for i := range g.Profiles {
		if g.Profiles[i].Name == name {
			return &g.Profiles[i]
		}
	}
	return nil
}

// AddProfile appends a profile, optionally making it the active one.
func (g *Group) AddProfile(p Profile, makeActive bool) error {
	if g.Profile(p.Name) != nil {
		return &DuplicateNameError{Kind: "profile", Name: p.Name}
	}
	g.Profiles = append(g.Profiles, p)
	if makeActive || g.ActiveProfile == "" {
		g.ActiveProfile = p.Name
	}
	return nil
}

// RenameProfile renames a profile and keeps the active-profile pointer in
// step when it referenced the old name.
func (g *Group) RenameProfile(oldName, newName string) error {
	p := g.Profile(oldName)
	if p == nil {
		return &NotFoundError{Kind: "profile", Name: oldName}
	}
	if oldName != newName && g.Profile(newName) != nil {
		return &DuplicateNameError{Kind: "profile", Name: newName}
	}
	p.Name = newName
	if g.ActiveProfile == oldName {
		g.ActiveProfile = newName
	}
	return nil
}

// SetActiveProfile switches the group's active-profile pointer.
func (g *Group) SetActiveProfile(name string) error {
	if g.Profile(name) == nil {
		return &NotFoundError{Kind: "profile", Name: name}
	}
	g.ActiveProfile = name
	return nil
}

// AliasNames returns all identity aliases in group order.
func (g *Group) AliasNames() []string {
	names := make([]string, 0, len(g.Identities))
	for i := range g.Identities {
		names = append(names, g.Identities[i].Alias)
	}
	return names
}

// Identity retrieves an identity by alias, or nil.
func (g *Group) Identity(alias string) *Identity {
	for i := range g.Identities {
		if g.Identities[i].Alias == alias {
			return &g.Identities[i]
		}
	}
	return nil
}

// IdentityByAddress retrieves an identity by address, or nil.
func (g *Group) IdentityByAddress(address string) *Identity {
	for i := range g.Identities {
		if g.Identities[i].Address == address {
			return &g.Identities[i]
		}
	}
	return nil
}

// AddIdentity appends an identity, optionally making its address active.
func (g *Group) AddIdentity(id Identity, makeActive bool) error {
	if g.Identity(id.Alias) != nil {
		return &DuplicateNameError{Kind: "identity", Name: id.Alias}
	}
	g.Identities = append(g.Identities, id)
	if makeActive || g.ActiveAddress == "" {
		g.ActiveAddress = id.Address
	}
	return nil
}

// RenameAlias renames an identity alias. Addresses are stable so the
// active-address pointer never moves on rename.
func (g *Group) RenameAlias(oldAlias, newAlias string) error {
	id := g.Identity(oldAlias)
	if id == nil {
		return &NotFoundError{Kind: "identity", Name: oldAlias}
	}
	if oldAlias != newAlias && g.Identity(newAlias) != nil {
		return &DuplicateNameError{Kind: "identity", Name: newAlias}
	}
	id.Alias = newAlias
	return nil
}

// SetActiveAddress switches the group's active-address pointer.
func (g *Group) SetActiveAddress(address string) error {
	if g.IdentityByAddress(address) == nil {
		return &NotFoundError{Kind: "identity", Name: address}
	}
	g.ActiveAddress = address
	return nil
}
