package driver

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/forestaa/troll/internal/layout"
)

// MatchFold reports whether pattern occurs in s under Unicode case folding
// and NFC normalization, so "gpio" finds GPIO_BASE and a combining accent
// matches its precomposed twin. An empty pattern matches everything.
func MatchFold(s, pattern string) bool {
	if pattern == "" {
		return true
	}
	// Caser держит состояние, поэтому на каждый вызов свой.
	fold := cases.Fold()
	return strings.Contains(
		fold.String(norm.NFC.String(s)),
		fold.String(norm.NFC.String(pattern)),
	)
}

func filterBlocks(blocks []layout.Block, pattern string) []layout.Block {
	if pattern == "" {
		return blocks
	}
	out := make([]layout.Block, 0, len(blocks))
	for _, b := range blocks {
		if MatchFold(b.Variable, pattern) {
			out = append(out, b)
		}
	}
	return out
}
