package typegraph

import (
	"debug/dwarf"
	"fmt"

	"github.com/forestaa/troll/internal/diag"
	"github.com/forestaa/troll/internal/die"
	"github.com/forestaa/troll/internal/trace"
)

// maxDepth bounds wrapper nesting so malformed DWARF with unbounded
// typedef or qualifier chains cannot blow the stack.
const maxDepth = 512

// Resolver turns DIE offsets into Type values.
//
// Результаты мемоизируются на время жизни резолвера, то есть на один
// разбор файла. Повторная ссылка на то же смещение возвращает тот же
// указатель, поэтому сравнение типов по указателю допустимо внутри
// одного прогона.
type Resolver struct {
	index    *die.Index
	reporter diag.Reporter
	tracer   trace.Tracer
	path     string

	cache map[dwarf.Offset]*Type
	state *resolveState
}

// resolveState tracks composite DIEs on the current resolution path.
// Pointers whose pointee is in the set get a stub instead of recursing.
type resolveState struct {
	stack []dwarf.Offset
	index map[dwarf.Offset]int
}

// NewResolver creates a Resolver over the given index. path names the
// inspected file in diagnostics.
func NewResolver(index *die.Index, path string, reporter diag.Reporter, tracer trace.Tracer) *Resolver {
	return &Resolver{
		index:    index,
		reporter: reporter,
		tracer:   tracer,
		path:     path,
		cache:    make(map[dwarf.Offset]*Type, 256),
		state: &resolveState{
			index: make(map[dwarf.Offset]int, 16),
		},
	}
}

func (r *Resolver) warn(code diag.Code, off dwarf.Offset, format string, args ...any) {
	if r.reporter == nil {
		return
	}
	loc := diag.Loc{File: r.path, Offset: uint64(off)}
	r.reporter.Report(code, diag.SevWarning, loc, fmt.Sprintf(format, args...), nil)
}

// Resolve returns the Type for the DIE at off. Unresolvable references
// degrade to Unknown with a warning instead of failing the run.
func (r *Resolver) Resolve(off dwarf.Offset) *Type {
	return r.resolve(off, 0)
}

func (r *Resolver) resolve(off dwarf.Offset, depth int) *Type {
	if t, ok := r.cache[off]; ok {
		return t
	}
	if depth > maxDepth {
		r.warn(diag.TypeDepthExceeded, off, "type nesting at offset 0x%x exceeds %d levels", off, maxDepth)
		return Unknown()
	}
	if _, busy := r.state.index[off]; busy {
		// значит цикл не через указатель, такой тип не имеет конечного размера
		r.warn(diag.TypeRecursive, off, "type at offset 0x%x contains itself", off)
		return Unknown()
	}

	node, ok := r.index.Lookup(off)
	if !ok {
		r.warn(diag.TypeUnresolvedRef, off, "type at offset 0x%x not found", off)
		t := Unknown()
		r.cache[off] = t
		return t
	}

	if r.tracer != nil && r.tracer.Level().ShouldEmit(trace.ScopeNode) {
		trace.Point(r.tracer, trace.ScopeNode, "type.resolve", fmt.Sprintf("0x%x %s", off, node.Entry.Tag), 0)
	}

	t := r.resolveNode(node, depth)
	if t == nil {
		t = Unknown()
	}
	r.cache[off] = t
	return t
}

func (r *Resolver) resolveNode(n *die.Node, depth int) *Type {
	switch n.Entry.Tag {
	case dwarf.TagBaseType:
		return r.resolveBase(n)
	case dwarf.TagTypedef:
		return r.resolveTypedef(n, depth)
	case dwarf.TagConstType:
		return r.resolveQualifier(n, KindConst, depth)
	case dwarf.TagVolatileType:
		return r.resolveQualifier(n, KindVolatile, depth)
	case dwarf.TagPointerType:
		return r.resolvePointer(n, depth)
	case dwarf.TagArrayType:
		return r.resolveArray(n, depth)
	case dwarf.TagStructType, dwarf.TagClassType:
		return r.resolveComposite(n, KindStruct, depth)
	case dwarf.TagUnionType:
		return r.resolveComposite(n, KindUnion, depth)
	case dwarf.TagEnumerationType:
		return r.resolveEnum(n, depth)
	case dwarf.TagSubroutineType:
		return &Type{Kind: KindFunction}
	default:
		r.warn(diag.TypeUnsupportedTag, n.Entry.Offset, "unsupported tag %s in type position", n.Entry.Tag)
		return Unknown()
	}
}

func (r *Resolver) resolveBase(n *die.Node) *Type {
	name, ok := n.Name()
	if !ok {
		r.warn(diag.TypeMissingName, n.Entry.Offset, "base type at offset 0x%x has no name", n.Entry.Offset)
		return Unknown()
	}
	size, ok := n.ByteSize()
	if !ok {
		r.warn(diag.TypeMissingSize, n.Entry.Offset, "base type %q has no byte size", name)
		return Unknown()
	}
	return &Type{Kind: KindBase, Name: name, Size: size}
}

func (r *Resolver) resolveTypedef(n *die.Node, depth int) *Type {
	name, ok := n.Name()
	if !ok {
		r.warn(diag.TypeMissingName, n.Entry.Offset, "typedef at offset 0x%x has no name", n.Entry.Offset)
		return Unknown()
	}
	ref, ok := n.TypeRef()
	if !ok {
		r.warn(diag.TypeMissingRef, n.Entry.Offset, "typedef %q has no referenced type", name)
		return Unknown()
	}
	return &Type{Kind: KindTypedef, Name: name, Elem: r.resolve(ref, depth+1)}
}

func (r *Resolver) resolveQualifier(n *die.Node, kind Kind, depth int) *Type {
	ref, ok := n.TypeRef()
	if !ok {
		r.warn(diag.TypeMissingRef, n.Entry.Offset, "%s type at offset 0x%x has no referenced type", kind, n.Entry.Offset)
		return Unknown()
	}
	return &Type{Kind: kind, Elem: r.resolve(ref, depth+1)}
}

// resolvePointer never recurses into a pointee that is being resolved
// higher up the stack. The pointee keeps its tag and name through a stub,
// which is enough for labeling, so linked structures stay finite.
func (r *Resolver) resolvePointer(n *die.Node, depth int) *Type {
	t := &Type{Kind: KindPointer}
	if size, ok := n.ByteSize(); ok {
		t.Size = size
	} else if n.Unit != nil {
		t.Size = int64(n.Unit.AddrSize)
	}
	ref, ok := n.TypeRef()
	if !ok {
		// без DW_AT_type это void*
		return t
	}
	if _, busy := r.state.index[ref]; busy {
		if pointee, found := r.index.Lookup(ref); found {
			t.Elem = r.stubFor(pointee)
			return t
		}
	}
	t.Elem = r.resolve(ref, depth+1)
	return t
}

func (r *Resolver) stubFor(n *die.Node) *Type {
	t := &Type{Stub: true}
	t.Name, _ = n.Name()
	if size, ok := n.ByteSize(); ok {
		t.Size = size
	}
	switch n.Entry.Tag {
	case dwarf.TagStructType, dwarf.TagClassType:
		t.Kind = KindStruct
	case dwarf.TagUnionType:
		t.Kind = KindUnion
	default:
		t.Kind = KindUnknown
	}
	return t
}

func (r *Resolver) resolveArray(n *die.Node, depth int) *Type {
	ref, ok := n.TypeRef()
	if !ok {
		r.warn(diag.TypeMissingRef, n.Entry.Offset, "array type at offset 0x%x has no element type", n.Entry.Offset)
		return Unknown()
	}
	elem := r.resolve(ref, depth+1)

	type dim struct {
		ub    int64
		known bool
	}
	var dims []dim
	for _, c := range n.Children {
		if c.Entry.Tag != dwarf.TagSubrangeType {
			continue
		}
		if ub, ok := c.UpperBound(); ok {
			dims = append(dims, dim{ub: ub, known: true})
			continue
		}
		if cnt, ok := c.CountAttr(); ok && cnt > 0 {
			dims = append(dims, dim{ub: cnt - 1, known: true})
			continue
		}
		dims = append(dims, dim{})
	}
	if len(dims) == 0 {
		dims = append(dims, dim{})
	}

	// первый subrange — внешнее измерение, поэтому оборачиваем изнутри наружу
	t := elem
	for i := len(dims) - 1; i >= 0; i-- {
		t = &Type{Kind: KindArray, Elem: t, UpperBound: dims[i].ub, BoundKnown: dims[i].known}
	}
	return t
}

func (r *Resolver) resolveComposite(n *die.Node, kind Kind, depth int) *Type {
	off := n.Entry.Offset
	name, _ := n.Name()

	size, haveSize := n.ByteSize()
	if !haveSize && kind == KindStruct {
		r.warn(diag.TypeMissingSize, off, "structure type at offset 0x%x has no byte size", off)
		return Unknown()
	}

	t := &Type{Kind: kind, Name: name, Size: size}

	r.state.index[off] = len(r.state.stack)
	r.state.stack = append(r.state.stack, off)
	defer func() {
		r.state.stack = r.state.stack[:len(r.state.stack)-1]
		delete(r.state.index, off)
	}()

	for _, c := range n.Children {
		if c.Entry.Tag != dwarf.TagMember {
			continue
		}
		mname, ok := c.Name()
		if !ok {
			r.warn(diag.TypeMemberBad, c.Entry.Offset, "member at offset 0x%x has no name", c.Entry.Offset)
			continue
		}
		mref, ok := c.TypeRef()
		if !ok {
			r.warn(diag.TypeMemberBad, c.Entry.Offset, "member %q has no type", mname)
			continue
		}
		m := Member{Name: mname, Type: r.resolve(mref, depth+1)}
		if kind == KindStruct {
			if moff, ok := c.MemberOffset(); ok {
				m.Offset = moff
			}
		}
		if bs, ok := c.BitSize(); ok {
			m.BitSize = bs
			m.HasBits = true
			if bo, ok := c.BitOffset(); ok {
				m.BitOffset = bo
			} else if bo, ok := c.DataBitOffset(); ok {
				m.BitOffset = bo
			}
		}
		t.Members = append(t.Members, m)
	}

	if !haveSize {
		// объединение без явного размера занимает столько, сколько самый большой член
		var max int64
		for i := range t.Members {
			if s := t.Members[i].Type.ByteSize(); s > max {
				max = s
			}
		}
		t.Size = max
	}
	return t
}

func (r *Resolver) resolveEnum(n *die.Node, depth int) *Type {
	off := n.Entry.Offset
	ref, ok := n.TypeRef()
	if !ok {
		r.warn(diag.TypeMissingRef, off, "enumeration type at offset 0x%x has no base type", off)
		return Unknown()
	}
	name, _ := n.Name()
	t := &Type{Kind: KindEnum, Name: name, Elem: r.resolve(ref, depth+1)}
	if size, ok := n.ByteSize(); ok {
		t.Size = size
	}
	for _, c := range n.Children {
		if c.Entry.Tag != dwarf.TagEnumerator {
			continue
		}
		ename, ok := c.Name()
		if !ok {
			r.warn(diag.TypeEnumeratorBad, c.Entry.Offset, "enumerator at offset 0x%x has no name", c.Entry.Offset)
			continue
		}
		val, ok := c.ConstValue()
		if !ok {
			r.warn(diag.TypeEnumeratorBad, c.Entry.Offset, "enumerator %q has no value", ename)
			continue
		}
		t.Enums = append(t.Enums, Enumerator{Name: ename, Value: val})
	}
	return t
}
