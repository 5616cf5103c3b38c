// Package render writes flattened blocks as text or JSON.
package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/forestaa/troll/internal/layout"
)

// Колонки фиксированной минимальной ширины: адрес 10, размер 5, битовое
// поле 7, имя 20. Значения длиннее растягивают строку, ничего не
// обрезается.
const (
	textHeader = "%-10s %-5s%-7s %-20s %s\n"
	textRow    = "%#010x %#05x%-7s %-20s %s\n"
)

// Text writes the classic tabular report:
//
//	address    size (bit)   variable_name        type
//	0x00004060 0x020        hoges                Hoge[1]
//
// Every block is followed by a blank line.
func Text(w io.Writer, blocks []layout.Block) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, textHeader, "address", "size", "(bit)", "variable_name", "type")
	for _, b := range blocks {
		for _, r := range b.Rows {
			fmt.Fprintf(bw, textRow, r.Address, r.Size, bitColumn(r), r.Name, r.TypeLabel)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func bitColumn(r layout.Row) string {
	if !r.HasBits {
		return ""
	}
	return fmt.Sprintf("(%d:%d)", r.BitOffset, r.BitSize)
}
