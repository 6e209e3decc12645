package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed suite.schema.json
var suiteSchemaJSON []byte

const suiteSchemaURL = "suite.schema.json"

var (
	suiteSchemaOnce sync.Once
	suiteSchema     *jsonschema.Schema
	suiteSchemaErr  error
)

// SuiteSchema returns the JSON Schema suite documents are checked against.
func SuiteSchema() []byte {
	return bytes.Clone(suiteSchemaJSON)
}

func compiledSuiteSchema() (*jsonschema.Schema, error) {
	suiteSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(suiteSchemaURL, bytes.NewReader(suiteSchemaJSON)); err != nil {
			suiteSchemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		suiteSchema, suiteSchemaErr = compiler.Compile(suiteSchemaURL)
	})
	return suiteSchema, suiteSchemaErr
}

// ValidateSchema checks a JSON document against the suite schema.
func ValidateSchema(data []byte) *ValidationResult {
	result := &ValidationResult{}

	schema, err := compiledSuiteSchema()
	if err != nil {
		result.AddError("", fmt.Sprintf("schema compilation error: %v", err))
		return result
	}

	doc, err := unmarshalJSON(bytes.NewReader(data))
	if err != nil {
		result.AddError("", fmt.Sprintf("invalid JSON: %v", err))
		return result
	}

	if err := schema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			collectSchemaErrors(ve, result)
		} else {
			result.AddError("", err.Error())
		}
	}
	return result
}

// unmarshalJSON decodes a JSON document for validation, keeping numbers as
// json.Number and rejecting trailing data (jsonschema/v5 does not export
// its own decoder).
func unmarshalJSON(r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid character after top-level value")
	}
	return doc, nil
}

// collectSchemaErrors flattens the leaf causes of a schema error.
func collectSchemaErrors(err *jsonschema.ValidationError, result *ValidationResult) {
	if len(err.Causes) == 0 {
		result.AddError(pointerToPath(err.InstanceLocation), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}

// pointerToPath converts a JSON Pointer like /expect/0/level to
// expect[0].level.
func pointerToPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	var sb strings.Builder
	for i, part := range strings.Split(pointer, "/") {
		part = strings.NewReplacer("~1", "/", "~0", "~").Replace(part)
		if isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
