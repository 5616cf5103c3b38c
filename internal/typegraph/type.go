// Package typegraph resolves DWARF type references into a self-contained
// type model.
//
// Каждый Type — снимок одного DW_TAG_*_type DIE: обёртки (typedef, const,
// volatile, указатели, массивы) ссылаются на вложенный тип через Elem,
// композиты несут срез Members. Resolver мемоизирует результаты по смещению
// DIE, так что повторные ссылки на один тип дают один и тот же *Type.
package typegraph

// Kind classifies a resolved type node.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindBase
	KindPointer
	KindArray
	KindStruct
	KindUnion
	KindEnum
	KindTypedef
	KindConst
	KindVolatile
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindTypedef:
		return "typedef"
	case KindConst:
		return "const"
	case KindVolatile:
		return "volatile"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Type is one node of the resolved type graph.
//
// Elem is the wrapped type for typedef/const/volatile, the pointee for
// pointers (nil means void), the element type for arrays and the underlying
// base type for enums. Stub marks a shallow placeholder created to break a
// pointer cycle: it carries Kind and Name for labeling but no members, and
// must never be expanded.
type Type struct {
	Kind Kind
	Name string
	Size int64
	Elem *Type

	UpperBound int64
	BoundKnown bool

	Members []Member
	Enums   []Enumerator

	Stub bool
}

// Member is a field of a struct, class or union. Offset is the byte
// displacement from the start of the composite; unions keep it at zero.
type Member struct {
	Name   string
	Offset int64
	Type   *Type

	// заполняются только для битовых полей
	BitSize   int64
	BitOffset int64
	HasBits   bool
}

// Enumerator is a single name/value pair of an enumeration type.
type Enumerator struct {
	Name  string
	Value int64
}

// Unknown returns the placeholder used when a type cannot be resolved.
// It occupies zero bytes and renders as "??".
func Unknown() *Type {
	return &Type{Kind: KindUnknown}
}

// ByteSize reports how many bytes a value of this type occupies.
//
// Wrappers defer to the wrapped type. Arrays with a known bound multiply
// the element size; with an unknown bound they fall back to a single
// element. Enums prefer their declared size over the base type's.
func (t *Type) ByteSize() int64 {
	if t == nil {
		return 0
	}
	switch t.Kind {
	case KindTypedef, KindConst, KindVolatile:
		return t.Elem.ByteSize()
	case KindArray:
		if t.BoundKnown {
			return (t.UpperBound + 1) * t.Elem.ByteSize()
		}
		return t.Elem.ByteSize()
	case KindEnum:
		if t.Size > 0 {
			return t.Size
		}
		return t.Elem.ByteSize()
	default:
		return t.Size
	}
}
