package typegraph

import (
	"fmt"
	"strings"
)

// Label renders the human-readable type description shown in the report.
//
//	int
//	pointer to const char
//	struct hoge
//	enum AB: unsigned int  values = A: 0, B: 1,
//	int[4]
//
// Typedefs print their own name and hide the wrapped type, except for a
// typedef of an enum which keeps the value list visible. Anonymous structs
// and unions keep the keyword with an empty name. Arrays show the upper
// bound of the outermost dimension, or 0 when no bound is recorded.
func (t *Type) Label() string {
	if t == nil {
		return "??"
	}
	switch t.Kind {
	case KindBase:
		return t.Name
	case KindTypedef:
		if t.Elem != nil && t.Elem.Kind == KindEnum {
			e := t.Elem
			return fmt.Sprintf("%s enum %s: %s  values = %s", t.Name, e.Name, e.Elem.Label(), enumValues(e.Enums))
		}
		return t.Name
	case KindConst:
		return "const " + t.Elem.Label()
	case KindVolatile:
		return "volatile " + t.Elem.Label()
	case KindPointer:
		if t.Elem == nil {
			return "void pointer"
		}
		return "pointer to " + t.Elem.Label()
	case KindStruct:
		return "struct " + t.Name
	case KindUnion:
		return "union " + t.Name
	case KindEnum:
		return fmt.Sprintf("enum %s: %s  values = %s", t.Name, t.Elem.Label(), enumValues(t.Enums))
	case KindArray:
		var ub int64
		if t.BoundKnown {
			ub = t.UpperBound
		}
		return fmt.Sprintf("%s[%d]", t.Elem.Label(), ub)
	case KindFunction:
		return "function"
	default:
		return "??"
	}
}

func enumValues(enums []Enumerator) string {
	var b strings.Builder
	for _, e := range enums {
		fmt.Fprintf(&b, "%s: %d, ", e.Name, e.Value)
	}
	return b.String()
}
