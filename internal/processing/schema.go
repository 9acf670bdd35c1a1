package processing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const responseSchemaURL = "https://rephrase.local/schema/process-response.json"

const responseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["processed_text", "options_applied"],
  "properties": {
    "processed_text": {"type": "string"},
    "original_text": {"type": "string"},
    "options_applied": {
      "type": "object",
      "additionalProperties": {"type": "boolean"}
    }
  }
}`

type responseValidator struct {
	schema *jsonschema.Schema
}

func newResponseValidator() (*responseValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(responseSchemaURL, strings.NewReader(responseSchema)); err != nil {
		return nil, fmt.Errorf("add response schema: %w", err)
	}
	schema, err := compiler.Compile(responseSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile response schema: %w", err)
	}
	return &responseValidator{schema: schema}, nil
}

// Decode validates body against the response contract and decodes it.
func (v *responseValidator) Decode(body []byte) (Result, error) {
	var instance any
	if err := json.Unmarshal(body, &instance); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	if err := v.schema.Validate(instance); err != nil {
		return Result{}, fmt.Errorf("unexpected response shape: %w", err)
	}
	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	if result.OptionsApplied == nil {
		result.OptionsApplied = map[string]bool{}
	}
	return result, nil
}
