package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build identity of the troll CLI. The linker fills these in via
// -ldflags "-X github.com/forestaa/troll/internal/version.Version=...".

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit subject line.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var segmentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with the major.minor.patch segments highlighted.
// Когда вывод не терминал, пакет color сам отключает управляющие
// последовательности и остаётся чистый текст.
func Colored() string {
	core, rest := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, rest = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	for i, p := range parts {
		if i < len(segmentColors) {
			parts[i] = segmentColors[i].Sprint(p)
		}
	}
	return strings.Join(parts, ".") + rest
}
