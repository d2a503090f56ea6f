package configsync

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaVersion identifies the configuration document schema in force.
const SchemaVersion = "v1"

// The root stays permissive on purpose: future device-local settings must
// not be blocked by this service. The sports list is the one structurally
// load-bearing section, so it rejects typos instead of passing them through.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": true,
  "required": ["sports"],
  "properties": {
    "sports": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["sport", "enabled", "priority"],
        "additionalProperties": false,
        "properties": {
          "sport":    {"type": "string", "minLength": 1},
          "enabled":  {"type": "boolean"},
          "priority": {"type": "integer", "minimum": 1},
          "favorites": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "additionalProperties": false,
              "properties": {
                "name": {"type": "string"},
                "id":   {"type": ["string", "null"]},
                "abbr": {"type": ["string", "null"]}
              }
            }
          }
        }
      }
    }
  }
}`

var compiledSchema = gojsonschema.NewStringLoader(configSchema)

// SchemaError is one violated constraint in a candidate document.
type SchemaError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidateConfig checks a candidate full configuration against the schema.
// Every violated constraint is returned, not just the first, so a caller
// can fix all problems in one round trip. The error return is reserved for
// schema machinery failure, not document invalidity.
func ValidateConfig(doc map[string]interface{}) ([]SchemaError, error) {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	violations := make([]SchemaError, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, SchemaError{Path: e.Field(), Message: e.Description()})
	}
	return violations, nil
}
