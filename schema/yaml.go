package schema

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/glaszig/plumb/step"
	"github.com/glaszig/plumb/types"
)

// FromYAML parses data as a YAML mapping and reduces it to a
// *types.HashClass the same way From does, translating scalar type
// names ("string", "integer", "numeric", "decimal", "boolean", "any")
// into the matching step leaf and recursing into nested mappings.
// Keys ending in "?" declare optional fields.
func FromYAML(data []byte) (*types.HashClass, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &step.ConstructionError{Component: "schema.FromYAML", Message: "invalid YAML", Cause: err}
	}
	def, err := toDef(raw)
	if err != nil {
		return nil, err
	}
	return From(def), nil
}

func toDef(raw map[string]any) (Def, error) {
	def := make(Def, len(raw))
	for k, v := range raw {
		typed, err := fieldValue(v)
		if err != nil {
			return nil, err
		}
		def[k] = typed
	}
	return def, nil
}

func fieldValue(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return typeNameStep(t)
	case map[string]any:
		nested, err := toDef(t)
		if err != nil {
			return nil, err
		}
		return nested, nil
	case map[any]any:
		converted := make(map[string]any, len(t))
		for k, val := range t {
			key, ok := k.(string)
			if !ok {
				return nil, &step.ConstructionError{Component: "schema.FromYAML", Message: fmt.Sprintf("non-string key %v", k)}
			}
			converted[key] = val
		}
		return fieldValue(converted)
	default:
		return v, nil
	}
}

func typeNameStep(name string) (step.Step, error) {
	switch name {
	case "any":
		return step.Any(), nil
	case "string":
		return step.Match(step.TypeOfValue("")), nil
	case "integer":
		return step.Match(step.TypeOfValue(0)), nil
	case "numeric", "decimal":
		return step.Match(step.TypeOfValue(float64(0))), nil
	case "boolean":
		return step.Boolean(), nil
	default:
		return nil, &step.ConstructionError{Component: "schema.FromYAML", Message: fmt.Sprintf("unknown type name %q", name)}
	}
}
