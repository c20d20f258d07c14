// internal/schema/validator.go
// Package schema validates dataset documents against the record shape
// the offline builder is supposed to emit. The service itself tolerates
// malformed records at runtime; this validator exists so a bad build is
// caught before it is published.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// videoRecordSchema describes one abbreviated-key video record as it
// appears in detail and index shards. Only the id is mandatory; every
// other field is optional because the runtime coerces or defaults it.
const videoRecordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["f"],
  "properties": {
    "f":  {"type": "string", "minLength": 1},
    "t":  {"type": "string"},
    "kt": {"type": "string"},
    "ds": {"type": "string"},
    "si": {"type": "string"},
    "sp": {"type": "string"},
    "vw": {"type": ["integer", "string", "null"]},
    "up": {"type": "string"},
    "d":  {"type": "integer", "minimum": 0},
    "ln": {"type": "string"},
    "dr": {"type": "string"},
    "tg": {"type": "array", "items": {"type": "string"}},
    "pe": {"type": "string"},
    "dl": {"type": "string"},
    "pd": {"type": "string"},
    "sz": {"type": "string"}
  },
  "additionalProperties": false
}`

// Validator validates dataset records against the builder's schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles the record schema.
func NewValidator() (*Validator, error) {
	loader := gojsonschema.NewStringLoader(videoRecordSchema)
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, fmt.Errorf("failed to compile record schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateRecord checks one raw record document. The returned error
// lists every violation.
func (v *Validator) ValidateRecord(raw json.RawMessage) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("record is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		msgs = append(msgs, re.String())
	}
	return fmt.Errorf("record invalid: %s", strings.Join(msgs, "; "))
}
