package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *Document {
	return &Document{
		SchemaVersion: "1.0.0",
		ActiveGroup:   "user_group",
		Groups: []Group{
			{
				Name:          "user_group",
				ActiveProfile: "devnet",
				ActiveAddress: "0xaaaa",
				Profiles: []Profile{
					{Name: "devnet", URL: "https://fullnode.devnet.example.io:443"},
					{Name: "testnet", URL: "https://fullnode.testnet.example.io:443"},
				},
				Identities: []Identity{
					{Alias: "Primary", PublicKey: "AApk1", Address: "0xaaaa"},
					{Alias: "Backup", PublicKey: "AApk2", Address: "0xbbbb"},
				},
			},
			{Name: "work_group"},
		},
	}
}

func Test_Document_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Document)
		wantErr string
	}{
		{"valid", func(d *Document) {}, ""},
		{"missing schema version", func(d *Document) { d.SchemaVersion = "" }, "schema_version"},
		{"duplicate group", func(d *Document) { d.Groups[1].Name = "user_group" }, "user_group"},
		{"dangling active group", func(d *Document) { d.ActiveGroup = "ghost" }, "ghost"},
		{"unset active group with groups", func(d *Document) { d.ActiveGroup = "" }, "active_group"},
		{"dangling active profile", func(d *Document) { d.Groups[0].ActiveProfile = "ghost" }, "ghost"},
		{"dangling active address", func(d *Document) { d.Groups[0].ActiveAddress = "0xdead" }, "0xdead"},
		{"duplicate profile", func(d *Document) { d.Groups[0].Profiles[1].Name = "devnet" }, "devnet"},
		{"duplicate alias", func(d *Document) { d.Groups[0].Identities[1].Alias = "Primary" }, "Primary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument()
			tt.mutate(doc)

			err := doc.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func Test_Document_Validate_EmptyDocument(t *testing.T) {
	doc := &Document{SchemaVersion: "1.0.0"}
	assert.NoError(t, doc.Validate())
}

func Test_Document_AddGroup(t *testing.T) {
	doc := &Document{SchemaVersion: "1.0.0"}

	require.NoError(t, doc.AddGroup(Group{Name: "first"}, false))
	assert.Equal(t, "first", doc.ActiveGroup, "first group becomes active regardless of makeActive")

	require.NoError(t, doc.AddGroup(Group{Name: "second"}, false))
	assert.Equal(t, "first", doc.ActiveGroup)

	require.NoError(t, doc.AddGroup(Group{Name: "third"}, true))
	assert.Equal(t, "third", doc.ActiveGroup)

	err := doc.AddGroup(Group{Name: "second"}, false)
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "second", dup.Name)

	assert.Equal(t, []string{"first", "second", "third"}, doc.GroupNames())
}

func Test_Document_RenameGroup(t *testing.T) {
	doc := testDocument()

	require.NoError(t, doc.RenameGroup("user_group", "personal"))
	assert.Equal(t, "personal", doc.ActiveGroup, "active pointer follows rename")
	assert.True(t, doc.HasGroup("personal"))
	assert.False(t, doc.HasGroup("user_group"))

	err := doc.RenameGroup("work_group", "personal")
	var dup *DuplicateNameError
	assert.ErrorAs(t, err, &dup)

	err = doc.RenameGroup("ghost", "anything")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)

	// renaming a non-active group leaves the pointer alone
	require.NoError(t, doc.RenameGroup("work_group", "office"))
	assert.Equal(t, "personal", doc.ActiveGroup)
}

func Test_Document_SetActiveGroup(t *testing.T) {
	doc := testDocument()

	require.NoError(t, doc.SetActiveGroup("work_group"))
	assert.Equal(t, "work_group", doc.ActiveGroup)
	assert.Equal(t, "work_group", doc.ActiveGroupRef().Name)

	err := doc.SetActiveGroup("ghost")
	assert.Error(t, err)
	assert.Equal(t, "work_group", doc.ActiveGroup, "failed switch leaves pointer untouched")
}

func Test_Group_AddProfile(t *testing.T) {
	g := &Group{Name: "g"}

	require.NoError(t, g.AddProfile(Profile{Name: "devnet", URL: "https://d"}, false))
	assert.Equal(t, "devnet", g.ActiveProfile, "first profile becomes active")

	require.NoError(t, g.AddProfile(Profile{Name: "mainnet", URL: "https://m"}, true))
	assert.Equal(t, "mainnet", g.ActiveProfile)

	err := g.AddProfile(Profile{Name: "devnet"}, false)
	assert.True(t, errors.As(err, new(*DuplicateNameError)))
	assert.Equal(t, []string{"devnet", "mainnet"}, g.ProfileNames())
}

func Test_Group_RenameProfile(t *testing.T) {
	doc := testDocument()
	g := doc.Group("user_group")

	require.NoError(t, g.RenameProfile("devnet", "dev"))
	assert.Equal(t, "dev", g.ActiveProfile)
	assert.Equal(t, "https://fullnode.devnet.example.io:443", g.Profile("dev").URL)

	assert.Error(t, g.RenameProfile("testnet", "dev"))
	assert.Error(t, g.RenameProfile("ghost", "x"))

	// rename to itself is a no-op, not a collision
	require.NoError(t, g.RenameProfile("dev", "dev"))
}

func Test_Group_AddIdentity(t *testing.T) {
	g := &Group{Name: "g"}

	require.NoError(t, g.AddIdentity(Identity{Alias: "Primary", Address: "0x01"}, false))
	assert.Equal(t, "0x01", g.ActiveAddress, "first identity becomes active")

	require.NoError(t, g.AddIdentity(Identity{Alias: "Backup", Address: "0x02"}, true))
	assert.Equal(t, "0x02", g.ActiveAddress)

	err := g.AddIdentity(Identity{Alias: "Primary", Address: "0x03"}, false)
	assert.True(t, errors.As(err, new(*DuplicateNameError)))
}

func Test_Group_RenameAlias(t *testing.T) {
	doc := testDocument()
	g := doc.Group("user_group")

	require.NoError(t, g.RenameAlias("Primary", "Main"))
	assert.Equal(t, "0xaaaa", g.ActiveAddress, "active address is stable across alias renames")
	assert.NotNil(t, g.Identity("Main"))
	assert.Nil(t, g.Identity("Primary"))

	assert.Error(t, g.RenameAlias("Backup", "Main"))
	assert.Error(t, g.RenameAlias("ghost", "x"))
}

func Test_Group_SetActiveAddress(t *testing.T) {
	doc := testDocument()
	g := doc.Group("user_group")

	require.NoError(t, g.SetActiveAddress("0xbbbb"))
	assert.Equal(t, "0xbbbb", g.ActiveAddress)
	assert.Equal(t, "Backup", g.IdentityByAddress("0xbbbb").Alias)

	assert.Error(t, g.SetActiveAddress("0xdead"))
	assert.Equal(t, "0xbbbb", g.ActiveAddress)
}
