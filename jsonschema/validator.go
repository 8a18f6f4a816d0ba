// Package jsonschema validates structured data against JSON schemas
// embedded in the binary, one per pipeline.
package jsonschema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/ldblocks"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

// Ensure Validator implements ldblocks.StructuredDataValidator at compile time.
var _ ldblocks.StructuredDataValidator = (*Validator)(nil)

// Validator checks structured data against the schema of its pipeline.
// Schemas are compiled once; Validate is safe for concurrent use.
type Validator struct {
	schemas map[ldblocks.Pipeline]*jsonschema.Schema
}

// NewValidator compiles the schema of every pipeline.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	v := &Validator{schemas: make(map[ldblocks.Pipeline]*jsonschema.Schema, len(ldblocks.Pipelines))}
	for _, pipeline := range ldblocks.Pipelines {
		name := string(pipeline) + ".json"
		b, err := schemaFS.ReadFile("schema/" + name)
		if err != nil {
			return nil, fmt.Errorf("read %s schema: %w", pipeline.ShortName(), err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("add %s schema: %w", pipeline.ShortName(), err)
		}
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", pipeline.ShortName(), err)
		}
		v.schemas[pipeline] = schema
	}
	return v, nil
}

// Validate returns EINVALID if data is not valid JSON or does not match
// the pipeline's schema.
func (v *Validator) Validate(pipeline ldblocks.Pipeline, data json.RawMessage) error {
	schema, ok := v.schemas[pipeline]
	if !ok {
		return ldblocks.Errorf(ldblocks.EINVALID, "no schema for pipeline %q", pipeline)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return ldblocks.Errorf(ldblocks.EINVALID, "structured data is not valid JSON: %v", err)
	}
	if err := schema.Validate(doc); err != nil {
		return ldblocks.Errorf(ldblocks.EINVALID, "%s structured data does not match schema: %v", pipeline.ShortName(), err)
	}
	return nil
}
