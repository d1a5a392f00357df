package visitor

import "github.com/glaszig/plumb/step"

// Metadata computes s's merged metadata by walking its AST leaf-to-root
// (spec.md §4.9): for an "and" node, the right child's "type" wins (and
// the right child's attrs generally win on every conflict, since And
// represents sequential refinement); for an "or" node, "type" becomes
// the flattened pair [left.type, right.type], and every other
// non-conflicting attr merges from both sides.
func Metadata(s step.Step) map[string]any {
	return computeMetadata(s.AST())
}

func computeMetadata(n *step.ASTNode) map[string]any {
	switch n.Tag {
	case step.TagAnd:
		return mergeAnd(computeMetadata(n.Children[0]), computeMetadata(n.Children[1]))
	case step.TagOr:
		return mergeOr(computeMetadata(n.Children[0]), computeMetadata(n.Children[1]))
	default:
		merged := map[string]any{}
		for _, c := range n.Children {
			for k, v := range computeMetadata(c) {
				merged[k] = v
			}
		}
		for k, v := range n.Attrs {
			merged[k] = v
		}
		return merged
	}
}

func mergeAnd(left, right map[string]any) map[string]any {
	merged := make(map[string]any, len(left)+len(right))
	for k, v := range left {
		merged[k] = v
	}
	for k, v := range right {
		merged[k] = v
	}
	return merged
}

func mergeOr(left, right map[string]any) map[string]any {
	merged := make(map[string]any, len(left)+len(right))
	for k, v := range left {
		merged[k] = v
	}
	for k, v := range right {
		if k == "type" {
			continue
		}
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	if leftType, ok := left["type"]; ok {
		merged["type"] = flattenTypes(leftType, right["type"])
	} else if rightType, ok := right["type"]; ok {
		merged["type"] = flattenTypes(nil, rightType)
	}
	return merged
}

// flattenTypes builds the ordered [left, right] union spec.md §4.9 and
// §8's S6 scenario describe, flattening either side if it is already a
// slice (so nesting unions doesn't produce nested slices of types).
func flattenTypes(left, right any) []any {
	var out []any
	out = appendType(out, left)
	out = appendType(out, right)
	return out
}

func appendType(out []any, v any) []any {
	switch t := v.(type) {
	case nil:
		return out
	case []any:
		return append(out, t...)
	default:
		return append(out, t)
	}
}
