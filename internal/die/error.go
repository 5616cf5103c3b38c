package die

import (
	"debug/dwarf"
	"fmt"
)

// StructureErrorKind enumerates types of DIE tree assembly errors.
type StructureErrorKind uint8

const (
	// StructureErrReader indicates the DWARF reader failed mid-stream.
	StructureErrReader StructureErrorKind = iota + 1
	StructureErrOffsetClash
	StructureErrTerminator
)

// StructureError represents an error while assembling the DIE tree.
type StructureError struct {
	Kind StructureErrorKind
	Off  dwarf.Offset
	Err  error
}

func (e *StructureError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case StructureErrReader:
		if e.Err != nil {
			return fmt.Sprintf("reading DIE stream near offset 0x%x: %v", e.Off, e.Err)
		}
		return fmt.Sprintf("reading DIE stream near offset 0x%x", e.Off)
	case StructureErrOffsetClash:
		return fmt.Sprintf("duplicate DIE offset 0x%x", e.Off)
	case StructureErrTerminator:
		return fmt.Sprintf("unterminated children list for DIE at offset 0x%x", e.Off)
	default:
		return fmt.Sprintf("DIE structure error kind=%d offset=0x%x", e.Kind, e.Off)
	}
}

func (e *StructureError) Unwrap() error { return e.Err }
