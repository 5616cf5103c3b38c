package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Загрузка ELF
	ElfInfo      Code = 1000
	FileNotFound Code = 1001
	FileNotElf   Code = 1002
	FileNoDwarf  Code = 1003
	FileRead     Code = 1004

	// Структура .debug_info
	DwarfInfo         Code = 2000
	DwarfMalformed    Code = 2001
	DwarfOffsetClash  Code = 2002
	DwarfNoTerminator Code = 2003

	// Разрешение типов
	TypeInfo           Code = 3000
	TypeUnresolvedRef  Code = 3001
	TypeUnsupportedTag Code = 3002
	TypeDepthExceeded  Code = 3003
	TypeMissingName    Code = 3004
	TypeMissingSize    Code = 3005
	TypeMissingRef     Code = 3006
	TypeMemberBad      Code = 3007
	TypeEnumeratorBad  Code = 3008
	TypeRecursive      Code = 3009

	// Сбор переменных
	VarInfo           Code = 4000
	VarNoName         Code = 4001
	VarUnresolvedSpec Code = 4002
	VarNoType         Code = 4003

	// Наблюдаемость
	ObsInfo    Code = 5000
	ObsTimings Code = 5001
)

var ( // todo расширить описания и использовать как notes
	codeDescription = map[Code]string{
		UnknownCode:        "Unknown error",
		ElfInfo:            "ELF information",
		FileNotFound:       "File not found",
		FileNotElf:         "Not an ELF file",
		FileNoDwarf:        "No DWARF debug information",
		FileRead:           "File read error",
		DwarfInfo:          "DWARF information",
		DwarfMalformed:     "Malformed DWARF data",
		DwarfOffsetClash:   "Duplicate DIE offset",
		DwarfNoTerminator:  "Missing null terminator for DIE children",
		TypeInfo:           "Type information",
		TypeUnresolvedRef:  "Unresolved type reference",
		TypeUnsupportedTag: "Unsupported DIE tag in type position",
		TypeDepthExceeded:  "Type nesting too deep",
		TypeMissingName:    "Type entry lacks a name",
		TypeMissingSize:    "Type entry lacks a byte size",
		TypeMissingRef:     "Type entry lacks a referenced type",
		TypeMemberBad:      "Member entry lacks a name or type",
		TypeEnumeratorBad:  "Enumerator lacks a name or value",
		TypeRecursive:      "Type definition contains itself",
		VarInfo:            "Variable information",
		VarNoName:          "Variable entry lacks a name",
		VarUnresolvedSpec:  "Unresolved specification reference",
		VarNoType:          "Variable entry lacks a type",
		ObsInfo:            "Observability",
		ObsTimings:         "Phase timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ELF%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DW%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYPE%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("VAR%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
