// Package schema validates sutra documents against their JSON schema.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	apperrors "github.com/dizang-faith/dizang-faith-web/internal/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const sutraSchemaURL = "https://dizang-faith.github.io/schema/sutra.schema.json"

//go:embed sutra.schema.json
var sutraSchema []byte

var (
	schemaCacheMu sync.Mutex
	schemaCache   = make(map[string]*jsonschema.Schema)
)

// Validate checks raw sutra JSON against the embedded schema.
func Validate(raw []byte) error {
	schema, err := loadEmbedded()
	if err != nil {
		return fmt.Errorf("failed to compile sutra schema: %w", err)
	}
	return validate(schema, raw)
}

// ValidateWith checks raw against a schema file on disk instead of the
// embedded one.
func ValidateWith(schemaPath string, raw []byte) error {
	schema, err := loadCompiledSchema(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", schemaPath, err)
	}
	return validate(schema, raw)
}

func validate(schema *jsonschema.Schema, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return &apperrors.ParseError{Format: "JSON", Err: err}
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func loadEmbedded() (*jsonschema.Schema, error) {
	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()
	if cached, ok := schemaCache[sutraSchemaURL]; ok {
		return cached, nil
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(sutraSchemaURL, bytes.NewReader(sutraSchema)); err != nil {
		return nil, err
	}
	compiled, err := compiler.Compile(sutraSchemaURL)
	if err != nil {
		return nil, err
	}
	schemaCache[sutraSchemaURL] = compiled
	return compiled, nil
}

func loadCompiledSchema(schemaPath string) (*jsonschema.Schema, error) {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, err
	}

	schemaCacheMu.Lock()
	if cached, ok := schemaCache[abs]; ok {
		schemaCacheMu.Unlock()
		return cached, nil
	}
	schemaCacheMu.Unlock()

	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile("file://" + filepath.ToSlash(abs))
	if err != nil {
		return nil, err
	}

	schemaCacheMu.Lock()
	schemaCache[abs] = compiled
	schemaCacheMu.Unlock()
	return compiled, nil
}
