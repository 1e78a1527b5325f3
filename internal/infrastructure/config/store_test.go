package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termsui-dev/termsui/internal/domain/entities"
)

const validDocumentYAML = `schema_version: "1.0.0"
active_group: user_group
groups:
  - name: user_group
    active_profile: devnet
    active_address: "0xaaaa"
    profiles:
      - name: devnet
        url: https://fullnode.devnet.example.io:443
    identities:
      - alias: Primary
        public_key: AAexample
        address: "0xaaaa"
  - name: work_group
`

func Test_LoadFromReader(t *testing.T) {
	doc, err := LoadFromReader(strings.NewReader(validDocumentYAML))

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.SchemaVersion)
	assert.Equal(t, "user_group", doc.ActiveGroup)
	require.Len(t, doc.Groups, 2)

	g := doc.Group("user_group")
	require.NotNil(t, g)
	assert.Equal(t, "devnet", g.ActiveProfile)
	assert.Equal(t, "https://fullnode.devnet.example.io:443", g.Profile("devnet").URL)
	assert.Equal(t, "Primary", g.IdentityByAddress("0xaaaa").Alias)
}

func Test_LoadFromReader_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "{{{{"},
		{"missing schema_version", "groups: []\n"},
		{"schema_version not semver", "schema_version: latest\ngroups: []\n"},
		{"groups not a list", "schema_version: \"1.0.0\"\ngroups: yes\n"},
		{"group without name", "schema_version: \"1.0.0\"\ngroups:\n  - active_profile: x\n"},
		{"profile without url", "schema_version: \"1.0.0\"\nactive_group: g\ngroups:\n  - name: g\n    profiles:\n      - name: devnet\n"},
		{"identity without address", "schema_version: \"1.0.0\"\nactive_group: g\ngroups:\n  - name: g\n    identities:\n      - alias: a\n        public_key: pk\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func Test_LoadFromReader_DomainViolations(t *testing.T) {
	duplicated := strings.Replace(validDocumentYAML, "name: work_group", "name: user_group", 1)
	_, err := LoadFromReader(strings.NewReader(duplicated))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	dangling := strings.Replace(validDocumentYAML, "active_group: user_group", "active_group: ghost", 1)
	_, err = LoadFromReader(strings.NewReader(dangling))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func Test_LoadFromReader_SchemaVersionGate(t *testing.T) {
	newer := strings.Replace(validDocumentYAML, `schema_version: "1.0.0"`, `schema_version: "2.0.0"`, 1)
	_, err := LoadFromReader(strings.NewReader(newer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")

	// a newer minor of the same major still loads
	minor := strings.Replace(validDocumentYAML, `schema_version: "1.0.0"`, `schema_version: "1.7.0"`, 1)
	_, err = LoadFromReader(strings.NewReader(minor))
	assert.NoError(t, err)
}

func Test_Store_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DocumentFileName)
	store := NewStore(path)

	doc, err := LoadFromReader(strings.NewReader(validDocumentYAML))
	require.NoError(t, err)

	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func Test_Store_Save_RefusesInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), DocumentFileName)
	store := NewStore(path)

	err := store.Save(&entities.Document{SchemaVersion: "1.0.0", ActiveGroup: "ghost", Groups: []entities.Group{{Name: "g"}}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to save")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file written for an invalid document")
}

func Test_Store_Save_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", DocumentFileName)
	store := NewStore(path)

	require.NoError(t, store.Save(DefaultDocument()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func Test_Store_SaveTo(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, DocumentFileName))
	other := filepath.Join(dir, "backup.yaml")

	require.NoError(t, store.SaveTo(other, DefaultDocument()))

	loaded, err := NewStore(other).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultGroupName, loaded.ActiveGroup)
	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "SaveTo leaves the bound path alone")
}

func Test_Store_LoadOrInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DocumentFileName)
	store := NewStore(path)

	doc, err := store.LoadOrInit()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, doc.SchemaVersion)
	assert.Equal(t, DefaultGroupName, doc.ActiveGroup)
	require.Len(t, doc.Groups, 1)
	assert.Equal(t, DefaultGroupName, doc.Groups[0].Name)

	// the initialized document lands on disk and loads back
	again, err := store.LoadOrInit()
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func Test_Store_Load_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := store.Load()

	assert.Error(t, err)
}
