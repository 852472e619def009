package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question-bank.json"

// bankSchema describes a JSON question bank: an array of flat records with
// the four options under keys A-D.
var bankSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"prompt", "A", "B", "C", "D", "answer"},
		"properties": map[string]any{
			"id":          map[string]any{"type": []any{"string", "integer"}},
			"ID":          map[string]any{"type": []any{"string", "integer"}},
			"prompt":      map[string]any{"type": "string", "minLength": 1},
			"A":           map[string]any{"type": "string"},
			"B":           map[string]any{"type": "string"},
			"C":           map[string]any{"type": "string"},
			"D":           map[string]any{"type": "string"},
			"answer":      map[string]any{"type": "string", "pattern": `^\s*[A-Da-d]\s*$`},
			"explanation": map[string]any{"type": []any{"string", "null"}},
			"chapter":     map[string]any{"type": []any{"string", "number", "null"}},
			"tags": map[string]any{
				"oneOf": []any{
					map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, not Go maps with
		// typed slices, so round-trip the definition.
		b, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(bankSchemaURL)
	})
	return compiled, compileErr
}

// validateBank checks a decoded JSON document against the bank schema.
func validateBank(doc any) error {
	s, err := compiledBankSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
