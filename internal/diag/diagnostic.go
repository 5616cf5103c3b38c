package diag

import "fmt"

// Loc указывает на место находки: путь к ELF и смещение DIE в .debug_info.
type Loc struct {
	File   string
	Offset uint64
}

func (l Loc) String() string {
	if l.File == "" {
		return fmt.Sprintf("DIE 0x%x", l.Offset)
	}
	return fmt.Sprintf("%s, DIE 0x%x", l.File, l.Offset)
}

type Note struct {
	Loc Loc
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Loc
	Notes    []Note
}
