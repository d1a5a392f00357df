package visitor

import (
	"regexp"

	"github.com/glaszig/plumb/step"
)

// JSONSchema emits a draft-08-compatible JSON-Schema object for s,
// walking its AST per the per-tag rules in spec.md §6. Only the
// top-level call adds "$schema"; nested visits return bare schema
// fragments.
func JSONSchema(s step.Step) map[string]any {
	schema := visit(s.AST())
	schema["$schema"] = "https://json-schema.org/draft-08/schema#"
	return schema
}

func visit(n *step.ASTNode) map[string]any {
	switch n.Tag {
	case step.TagHash:
		return visitHash(n)
	case step.TagHashMap:
		return map[string]any{
			"type":             "object",
			"patternProperties": map[string]any{".*": visit(n.Children[1])},
		}
	case step.TagArray:
		return map[string]any{"type": "array", "items": visit(n.Children[0])}
	case step.TagTuple:
		items := make([]any, len(n.Children))
		for i, c := range n.Children {
			items[i] = visit(c)
		}
		return map[string]any{"type": "array", "prefixItems": items}
	case step.TagAnd:
		return deepMergeRightWins(visit(n.Children[0]), visit(n.Children[1]))
	case step.TagOr:
		return visitOr(n)
	case step.TagValue, step.TagMatch:
		if v, ok := n.Attrs["value"]; ok {
			return map[string]any{"const": v}
		}
		return map[string]any{}
	case step.TagStatic:
		v := n.Attrs["value"]
		return map[string]any{"const": v, "default": v}
	case step.TagDefault:
		merged := cloneMap(visit(n.Children[0]))
		merged["default"] = n.Attrs["default"]
		return merged
	case step.TagPolicy:
		return visitPolicy(n)
	case step.TagTaggedHash:
		return visitTaggedHash(n)
	case step.TagBoolean:
		return map[string]any{"type": "boolean"}
	case step.TagNot:
		return map[string]any{"not": visit(n.Children[0])}
	default:
		return map[string]any{}
	}
}

func visitHash(n *step.ASTNode) map[string]any {
	if mapMode, _ := n.Attrs["map_mode"].(bool); mapMode {
		return map[string]any{
			"type":             "object",
			"patternProperties": map[string]any{".*": visit(n.Children[1])},
		}
	}

	properties := map[string]any{}
	for _, c := range n.Children {
		name, _ := c.Attrs["name"].(string)
		properties[name] = visit(c.Children[0])
	}

	required, _ := n.Attrs["required"].([]string)
	requiredAny := make([]any, len(required))
	for i, name := range required {
		requiredAny[i] = name
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   requiredAny,
	}
}

func visitOr(n *step.ASTNode) map[string]any {
	left := visit(n.Children[0])
	right := visit(n.Children[1])

	_, leftHasDefault := left["default"]
	_, rightHasDefault := right["default"]

	// Special case (spec.md §6): if exactly one branch carries "default",
	// flatten to the other branch plus that default instead of anyOf.
	if leftHasDefault != rightHasDefault {
		if leftHasDefault {
			flattened := cloneMap(right)
			flattened["default"] = left["default"]
			return flattened
		}
		flattened := cloneMap(left)
		flattened["default"] = right["default"]
		return flattened
	}

	return map[string]any{"anyOf": []any{left, right}}
}

func visitPolicy(n *step.ASTNode) map[string]any {
	out := cloneMap(visit(n.Children[0]))
	name, _ := n.Attrs["policy_name"].(string)
	arg := n.Attrs["arg"]

	switch name {
	case "eq":
		out["const"] = arg
	case "included_in":
		out["enum"] = arg
	case "gt":
		out["exclusiveMinimum"] = arg
	case "gte":
		out["minimum"] = arg
	case "lt":
		out["exclusiveMaximum"] = arg
	case "lte":
		out["maximum"] = arg
	case "match":
		if re, ok := arg.(*regexp.Regexp); ok {
			out["pattern"] = re.String()
		}
	case "size":
		if rg, ok := arg.(step.Range); ok {
			out["minLength"] = rg.Min
			out["maxLength"] = rg.Max
		} else {
			out["minLength"] = arg
			out["maxLength"] = arg
		}
	}
	return out
}

func visitTaggedHash(n *step.ASTNode) map[string]any {
	key, _ := n.Attrs["key"].(string)
	tags, _ := n.Attrs["tags"].([]any)

	allOf := make([]any, 0, len(n.Children))
	for i, c := range n.Children {
		variant := visit(c)
		var tag any
		if i < len(tags) {
			tag = tags[i]
		}
		allOf = append(allOf, map[string]any{
			"if":   map[string]any{"properties": map[string]any{key: map[string]any{"const": tag}}},
			"then": variant,
		})
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			key: map[string]any{"enum": tags},
		},
		"allOf":    allOf,
		"required": []any{key},
	}
}

func deepMergeRightWins(left, right map[string]any) map[string]any {
	merged := cloneMap(left)
	for k, v := range right {
		if lv, ok := merged[k]; ok {
			if lm, lok := lv.(map[string]any); lok {
				if rm, rok := v.(map[string]any); rok {
					merged[k] = deepMergeRightWins(lm, rm)
					continue
				}
			}
		}
		merged[k] = v
	}
	return merged
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
