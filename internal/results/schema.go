package results

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"pentu/internal/runner"
)

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Schemas returns JSON Schemas for the report listing and a run result,
// keyed by document name.
func Schemas() map[string]*jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}
	list := &jsonschema.Schema{
		Title:       "pentu report list",
		Description: "Output of `pentu results ls --json`.",
		Type:        "array",
		Items:       r.Reflect(&ReportFile{}),
	}
	result := r.Reflect(&runner.Result{})
	result.Title = "pentu command result"
	return map[string]*jsonschema.Schema{
		"reports": list,
		"result":  result,
	}
}
