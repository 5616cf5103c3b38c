// Package layout flattens resolved variables into report rows.
//
// Каждая переменная разворачивается в блок: первая строка описывает её
// целиком, дальше идут строки членов и элементов с абсолютными адресами.
// Пакет не ходит в DWARF и ничего не сообщает: всё, что могло не
// разрешиться, уже превратилось в Unknown выше по конвейеру.
package layout

import (
	"fmt"

	"github.com/forestaa/troll/internal/extract"
	"github.com/forestaa/troll/internal/typegraph"
)

// Row is one line of the report. Address is absolute, Size in bytes.
// For bit field members HasBits is set and BitOffset/BitSize describe the
// position inside the storage unit.
type Row struct {
	Address   uint64
	Size      int64
	Name      string
	TypeLabel string

	BitSize   int64
	BitOffset int64
	HasBits   bool
}

// Block groups the rows of one variable.
type Block struct {
	Variable string
	Rows     []Row
}

type bitStamp struct {
	size   int64
	offset int64
	has    bool
}

// Flatten expands every variable into its block, keeping input order.
func Flatten(vars []extract.Variable) []Block {
	blocks := make([]Block, 0, len(vars))
	for _, v := range vars {
		blocks = append(blocks, Expand(v))
	}
	return blocks
}

// Expand builds the block for a single variable.
func Expand(v extract.Variable) Block {
	var rows []Row
	walk(&rows, v.Name, v.Address, v.Type, v.Type.Label(), bitStamp{})
	return Block{Variable: v.Name, Rows: rows}
}

func walk(rows *[]Row, name string, addr uint64, t *typegraph.Type, label string, bits bitStamp) {
	row := Row{
		Address:   addr,
		Size:      t.ByteSize(),
		Name:      name,
		TypeLabel: label,
	}
	if bits.has {
		row.BitSize = bits.size
		row.BitOffset = bits.offset
		row.HasBits = true
	}
	*rows = append(*rows, row)

	st := structural(t)
	if st == nil || st.Stub {
		return
	}
	switch st.Kind {
	case typegraph.KindStruct, typegraph.KindUnion:
		for _, m := range st.Members {
			maddr := addr
			if m.Offset > 0 {
				maddr += uint64(m.Offset)
			}
			walk(rows, name+"."+m.Name, maddr, m.Type, m.Type.Label(), bitStamp{
				size:   m.BitSize,
				offset: m.BitOffset,
				has:    m.HasBits,
			})
		}
	case typegraph.KindArray:
		if !st.BoundKnown {
			// длина неизвестна, показываем только сводную строку
			return
		}
		esize := st.Elem.ByteSize()
		for i := int64(0); i <= st.UpperBound; i++ {
			walk(rows, fmt.Sprintf("%s[%d]", name, i), addr+uint64(i*esize), st.Elem, st.Elem.Label(), bitStamp{})
		}
	}
}

// structural strips typedef and qualifier wrappers. The summary row keeps
// the outer label, but member and element expansion follows the wrapped
// type.
func structural(t *typegraph.Type) *typegraph.Type {
	for t != nil {
		switch t.Kind {
		case typegraph.KindTypedef, typegraph.KindConst, typegraph.KindVolatile:
			t = t.Elem
		default:
			return t
		}
	}
	return nil
}
