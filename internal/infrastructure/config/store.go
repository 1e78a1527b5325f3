// Package config provides infrastructure for loading and saving the account
// configuration document. This package handles YAML parsing, schema
// validation, and file I/O; domain semantics live in entities.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"

	"github.com/termsui-dev/termsui/internal/domain/entities"
)

// SchemaVersion is the document schema this build reads and writes.
const SchemaVersion = "1.0.0"

// DocumentFileName is the default on-disk name of the configuration document.
const DocumentFileName = "termsui.yaml"

// DefaultGroupName is the group created when initializing a fresh document.
const DefaultGroupName = "user_group"

// Store persists the configuration document at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store bound to the given document path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the document path the store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Load reads, validates, and decodes the document.
func (s *Store) Load() (*entities.Document, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return LoadFromReader(file)
}

// LoadFromReader decodes a document from an io.Reader. The raw YAML is run
// through the JSON Schema before decoding into the domain type, then the
// domain invariants are checked.
func LoadFromReader(r io.Reader) (*entities.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var shape any
	if err := yaml.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("failed to decode document YAML: %w", err)
	}
	if err := validateDocumentShape(shape); err != nil {
		return nil, err
	}

	var doc entities.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document YAML: %w", err)
	}

	if err := checkSchemaVersion(doc.SchemaVersion); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("document validation failed: %w", err)
	}
	return &doc, nil
}

// Save writes the document to the store's path.
func (s *Store) Save(doc *entities.Document) error {
	return s.SaveTo(s.path, doc)
}

// SaveTo writes the document to an arbitrary path. The write goes through a
// temp file and rename so a failed save never truncates the previous
// document.
func (s *Store) SaveTo(path string, doc *entities.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid document: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document YAML: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".termsui-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

// LoadOrInit loads the document, creating a fresh one with a single active
// default group when none exists yet.
func (s *Store) LoadOrInit() (*entities.Document, error) {
	if _, err := os.Stat(s.path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat document: %w", err)
		}
		doc := DefaultDocument()
		if err := s.Save(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	return s.Load()
}

// DefaultDocument returns a fresh document holding one active, empty group.
func DefaultDocument() *entities.Document {
	return &entities.Document{
		SchemaVersion: SchemaVersion,
		ActiveGroup:   DefaultGroupName,
		Groups:        []entities.Group{{Name: DefaultGroupName}},
	}
}

// checkSchemaVersion refuses documents written by an incompatible major.
func checkSchemaVersion(version string) error {
	docVersion, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid schema_version %q: %w", version, err)
	}
	supported := semver.MustParse(SchemaVersion)
	if docVersion.Major() > supported.Major() {
		return fmt.Errorf("document schema %s is newer than supported %s", version, SchemaVersion)
	}
	return nil
}
