package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// resultsSchema describes the results payload contract. The renderer
// assumes this shape, so the client rejects responses that drift from
// it instead of letting junk reach the UI.
var resultsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"assessment_id": map[string]any{"type": "integer"},
		"learner_profile": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"skill_level":                    map[string]any{"type": "string"},
				"personalized_message":           map[string]any{"type": "string"},
				"strengths":                      insightListSchema,
				"weaknesses":                     insightListSchema,
				"estimated_weeks_to_proficiency": map[string]any{"type": "integer"},
				"next_steps": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"skill_level", "strengths", "weaknesses"},
		},
		"evaluation_results": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"overall_score":   map[string]any{"type": "number"},
				"total_correct":   map[string]any{"type": "integer"},
				"total_questions": map[string]any{"type": "integer"},
				"score_by_difficulty": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"beginner":     bandSchema,
						"intermediate": bandSchema,
						"advanced":     bandSchema,
					},
					"required": []any{"beginner", "intermediate", "advanced"},
				},
			},
			"required": []any{"overall_score", "total_correct", "total_questions", "score_by_difficulty"},
		},
	},
	"required": []any{"learner_profile", "evaluation_results"},
}

var insightListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic":               map[string]any{"type": "string"},
			"proficiency_percent": map[string]any{"type": "number"},
			"note":                map[string]any{"type": "string"},
			"priority":            map[string]any{"type": "string"},
		},
		"required": []any{"topic", "proficiency_percent"},
	},
}

var bandSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"correct": map[string]any{"type": "integer"},
		"total":   map[string]any{"type": "integer"},
	},
	"required": []any{"correct", "total"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateResultsPayload validates raw against the results schema.
func validateResultsPayload(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid results JSON: %w", err)
	}

	compiled, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile results schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("results payload rejected: %w", err)
	}
	return nil
}

// getCompiledSchema compiles the schema once and caches it.
func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any),
		// not raw bytes. Marshal then unmarshal to get a clean any
		// representation.
		defBytes, err := json.Marshal(resultsSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://assessment-results.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
