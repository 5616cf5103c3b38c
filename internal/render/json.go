package render

import (
	"encoding/json"
	"io"

	"github.com/forestaa/troll/internal/layout"
)

// BitsJSON is the bit field position of a member row.
type BitsJSON struct {
	Offset int64 `json:"offset"`
	Size   int64 `json:"size"`
}

// RowJSON mirrors layout.Row with stable field names.
type RowJSON struct {
	Address uint64    `json:"address"`
	Size    int64     `json:"size"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Bits    *BitsJSON `json:"bits,omitempty"`
}

// BlockJSON groups the rows of one variable.
type BlockJSON struct {
	Variable string    `json:"variable"`
	Rows     []RowJSON `json:"rows"`
}

// ReportJSON is the machine readable report for one file.
type ReportJSON struct {
	File   string      `json:"file"`
	Blocks []BlockJSON `json:"blocks"`
	Count  int         `json:"count"`
}

// BuildReport converts blocks to the JSON shape.
func BuildReport(path string, blocks []layout.Block) ReportJSON {
	out := ReportJSON{
		File:   path,
		Blocks: make([]BlockJSON, 0, len(blocks)),
		Count:  len(blocks),
	}
	for _, b := range blocks {
		bj := BlockJSON{
			Variable: b.Variable,
			Rows:     make([]RowJSON, 0, len(b.Rows)),
		}
		for _, r := range b.Rows {
			rj := RowJSON{
				Address: r.Address,
				Size:    r.Size,
				Name:    r.Name,
				Type:    r.TypeLabel,
			}
			if r.HasBits {
				rj.Bits = &BitsJSON{Offset: r.BitOffset, Size: r.BitSize}
			}
			bj.Rows = append(bj.Rows, rj)
		}
		out.Blocks = append(out.Blocks, bj)
	}
	return out
}

// JSON writes the report with two-space indentation.
func JSON(w io.Writer, path string, blocks []layout.Block) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(path, blocks))
}
