package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forestaa/troll/internal/version"
)

const versionTagline = "digs up what the linker buried"

// buildFact — одна опциональная строка метаданных сборки. Печатается
// только когда её флаг (или --full) взведён.
type buildFact struct {
	label string
	value string
	show  bool
	set   func(*versionPayload, string)
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var (
	versionFormat      string
	versionShowHash    bool
	versionShowMessage bool
	versionShowDate    bool
	versionShowFull    bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "print the git commit hash")
	versionCmd.Flags().BoolVar(&versionShowMessage, "message", false, "print the git commit subject")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "print the build date")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "print all recorded build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show troll build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		facts := buildFacts()
		switch strings.ToLower(versionFormat) {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), facts)
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), facts)
			return nil
		default:
			return fmt.Errorf("unknown version format %q, want pretty or json", versionFormat)
		}
	},
}

func buildFacts() []buildFact {
	return []buildFact{
		{
			label: "commit:",
			value: strings.TrimSpace(version.GitCommit),
			show:  versionShowHash || versionShowFull,
			set:   func(p *versionPayload, v string) { p.GitCommit = v },
		},
		{
			label: "message:",
			value: strings.TrimSpace(version.GitMessage),
			show:  versionShowMessage || versionShowFull,
			set:   func(p *versionPayload, v string) { p.GitMessage = v },
		},
		{
			label: "built: ",
			value: strings.TrimSpace(version.BuildDate),
			show:  versionShowDate || versionShowFull,
			set:   func(p *versionPayload, v string) { p.BuildDate = v },
		},
	}
}

func versionString() string {
	if v := strings.TrimSpace(version.Version); v != "" {
		return v
	}
	return "dev"
}

func renderVersionPretty(out io.Writer, facts []buildFact) {
	fmt.Fprintf(out, "troll %s, %s\n", version.Colored(), versionTagline)
	shown := false
	for _, f := range facts {
		if !f.show {
			continue
		}
		fmt.Fprintf(out, "%s %s\n", f.label, orUnknown(f.value))
		shown = true
	}
	if !shown {
		fmt.Fprintln(out, "pass --hash, --message, --date or --full to see how this binary was made")
	}
}

func renderVersionJSON(out io.Writer, facts []buildFact) error {
	payload := versionPayload{
		Tool:    "troll",
		Version: versionString(),
		Tagline: versionTagline,
	}
	for _, f := range facts {
		if f.show {
			f.set(&payload, orUnknown(f.value))
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
