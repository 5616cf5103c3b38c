// Package elfio opens ELF binaries and pulls out their DWARF sections.
package elfio

import (
	"bytes"
	"debug/dwarf"
	"debug/elf"
	"fmt"
	"os"
)

// Image is a loaded binary. Data keeps the raw file bytes so callers can
// hash them for caching without a second read.
type Image struct {
	Path  string
	Dwarf *dwarf.Data
	Data  []byte
}

// LoadErrorKind says at which stage loading failed.
type LoadErrorKind uint8

const (
	LoadErrRead LoadErrorKind = iota + 1
	LoadErrFormat
	LoadErrNoDebug
)

// LoadError wraps a failure to open a binary. Kind tells read errors apart
// from files that are not ELF or carry no debug info.
type LoadError struct {
	Path string
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case LoadErrRead:
		return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
	case LoadErrFormat:
		return fmt.Sprintf("%s is not an ELF file: %v", e.Path, e.Err)
	case LoadErrNoDebug:
		return fmt.Sprintf("%s carries no DWARF debug info: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the file into memory and parses its DWARF sections.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: LoadErrRead, Err: err}
	}
	return Parse(path, data)
}

// Parse builds an Image from bytes already in memory. Callers that hash
// the file before deciding whether to parse go through this entry.
func Parse(path string, data []byte) (*Image, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Path: path, Kind: LoadErrFormat, Err: err}
	}
	d, err := f.DWARF()
	if err != nil {
		return nil, &LoadError{Path: path, Kind: LoadErrNoDebug, Err: err}
	}
	return &Image{Path: path, Dwarf: d, Data: data}, nil
}
