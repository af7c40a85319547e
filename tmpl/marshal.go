package tmpl

import "encoding/json"

// ToMap converts el to a native Go structure of single-key maps, one per
// element, keyed by the element kind. Source positions are omitted, so two
// trees with the same structure produce equal maps.
//
//	{"scope": [{"string": "Hello, "}, {"variable": "user.name"}]}
func ToMap(el Element) map[string]any {
	switch e := el.(type) {
	case *Ignored:
		return map[string]any{KindIgnored.String(): true}

	case *StringLiteral:
		return map[string]any{KindStringLiteral.String(): e.Value}

	case *Variable:
		return map[string]any{KindVariable.String(): e.Path.String()}

	case *Requires:
		return map[string]any{KindRequires.String(): e.Path.String()}

	case *Scope:
		return map[string]any{KindScope.String(): toList(e.Elements)}

	case *Foreach:
		return map[string]any{
			KindForeach.String(): map[string]any{
				"value":    e.Value,
				"variable": e.Variable.String(),
				"body":     toList(e.Body),
			},
		}

	default:
		return nil
	}
}

func toList(elems []Element) []any {
	out := make([]any, 0, len(elems))
	for _, el := range elems {
		out = append(out, ToMap(el))
	}

	return out
}

// MarshalJSON implements json.Marshaler for Scope.
func (e *Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToMap(e))
}

// MarshalJSON implements json.Marshaler for Foreach.
func (e *Foreach) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToMap(e))
}
