package config

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchemaJSON is the structural schema for the configuration
// document. Semantic rules (unique names, active pointers) live in
// entities.Document.Validate.
const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schema_version", "groups"],
  "properties": {
    "schema_version": {"type": "string", "pattern": "^\\d+\\.\\d+\\.\\d+$"},
    "active_group": {"type": "string"},
    "groups": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "active_profile": {"type": "string"},
          "active_address": {"type": "string"},
          "profiles": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "url"],
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "url": {"type": "string", "minLength": 1}
              }
            }
          },
          "identities": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["alias", "public_key", "address"],
              "properties": {
                "alias": {"type": "string", "minLength": 1},
                "public_key": {"type": "string"},
                "address": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

var documentSchema = mustCompileDocumentSchema()

func mustCompileDocumentSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("document.json", strings.NewReader(documentSchemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("document.json")
}

// validateDocumentShape runs the decoded document through the JSON Schema.
func validateDocumentShape(decoded any) error {
	if err := documentSchema.Validate(decoded); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return formatSchemaValidationError(validationErr)
		}
		return fmt.Errorf("document validation failed: %w", err)
	}
	return nil
}

// formatSchemaValidationError flattens a schema error tree into a readable
// message.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collectErrors func(*jsonschema.ValidationError)
	collectErrors = func(e *jsonschema.ValidationError) {
		if e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collectErrors(cause)
		}
	}
	collectErrors(err)

	return fmt.Errorf("document validation failed: %s", strings.Join(messages, "; "))
}
