// Package extract walks indexed DIE trees and picks out the variables that
// live at a fixed address.
//
// Переменные без статического адреса (локальные, регистровые, параметры,
// extern-объявления) молча пропускаются: это не ошибка, просто они не
// входят в отчёт. Предупреждения выдаются только на определения, у которых
// не удаётся восстановить имя или тип.
package extract

import (
	"debug/dwarf"
	"fmt"

	"github.com/forestaa/troll/internal/diag"
	"github.com/forestaa/troll/internal/die"
	"github.com/forestaa/troll/internal/trace"
	"github.com/forestaa/troll/internal/typegraph"
)

// Variable is one statically allocated variable definition.
// Name carries the namespace prefix when the definition is nested.
// Offset points back at the defining DIE for diagnostics.
type Variable struct {
	Name    string
	Address uint64
	Type    *typegraph.Type
	Offset  dwarf.Offset
}

// Collector gathers variables from an index, resolving their types as it
// goes.
type Collector struct {
	index    *die.Index
	resolver *typegraph.Resolver
	reporter diag.Reporter
	tracer   trace.Tracer
	path     string
}

// NewCollector creates a Collector. path names the inspected file in
// diagnostics.
func NewCollector(index *die.Index, resolver *typegraph.Resolver, path string, reporter diag.Reporter, tracer trace.Tracer) *Collector {
	return &Collector{
		index:    index,
		resolver: resolver,
		reporter: reporter,
		tracer:   tracer,
		path:     path,
	}
}

func (c *Collector) warn(code diag.Code, off dwarf.Offset, format string, args ...any) {
	if c.reporter == nil {
		return
	}
	loc := diag.Loc{File: c.path, Offset: uint64(off)}
	c.reporter.Report(code, diag.SevWarning, loc, fmt.Sprintf(format, args...), nil)
}

// Collect returns every statically allocated variable in declaration order:
// units in file order, variables in DIE order within each unit.
func (c *Collector) Collect() []Variable {
	var vars []Variable
	for _, u := range c.index.Units() {
		c.walk(u.Root, "", &vars)
	}
	return vars
}

// walk descends through compile units, namespaces and modules. Subprogram
// bodies are not entered, so function locals never show up even when the
// compiler gave them a fixed address.
func (c *Collector) walk(n *die.Node, prefix string, out *[]Variable) {
	for _, child := range n.Children {
		switch child.Entry.Tag {
		case dwarf.TagVariable:
			if v, ok := c.variable(child, prefix); ok {
				*out = append(*out, v)
			}
		case dwarf.TagNamespace, dwarf.TagModule:
			next := prefix
			if name, ok := child.Name(); ok {
				next = prefix + name + "::"
			}
			c.walk(child, next, out)
		}
	}
}

func (c *Collector) variable(n *die.Node, prefix string) (Variable, bool) {
	if n.IsDeclaration() {
		// extern-объявление, определение придёт из другой единицы
		return Variable{}, false
	}
	addr, ok := n.StaticAddress()
	if !ok {
		return Variable{}, false
	}

	// определение может держать имя и тип на объявлении через specification
	var spec *die.Node
	if specOff, hasSpec := n.Specification(); hasSpec {
		s, found := c.index.Lookup(specOff)
		if !found {
			c.warn(diag.VarUnresolvedSpec, n.Entry.Offset, "specification at offset 0x%x not found", specOff)
		} else {
			spec = s
		}
	}

	name, ok := n.Name()
	if !ok && spec != nil {
		name, ok = spec.Name()
	}
	if !ok {
		c.warn(diag.VarNoName, n.Entry.Offset, "variable at offset 0x%x has no name", n.Entry.Offset)
		return Variable{}, false
	}

	ref, ok := n.TypeRef()
	if !ok && spec != nil {
		ref, ok = spec.TypeRef()
	}
	if !ok {
		c.warn(diag.VarNoType, n.Entry.Offset, "variable %q has no type", name)
		return Variable{}, false
	}

	v := Variable{
		Name:    prefix + name,
		Address: addr,
		Type:    c.resolver.Resolve(ref),
		Offset:  n.Entry.Offset,
	}
	if c.tracer != nil && c.tracer.Level().ShouldEmit(trace.ScopeEntity) {
		trace.Point(c.tracer, trace.ScopeEntity, "var.collect", fmt.Sprintf("%s @ %#x", v.Name, v.Address), 0)
	}
	return v, true
}
