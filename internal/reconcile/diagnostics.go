package reconcile

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/livingdex/dexsync/internal/artifact"
)

// Unresolved returns the timeline entries whose mapping fell through to a
// synthesized placeholder.
func Unresolved(timeline []artifact.TimelineEntry) []artifact.TimelineEntry {
	var out []artifact.TimelineEntry
	for _, t := range timeline {
		if strings.HasPrefix(t.ID, "ext-") {
			out = append(out, t)
		}
	}
	return out
}

// PrintDiagnostics writes a human-reviewable listing of unresolved variant
// mappings. Each line names the external file, the synthesized names, and
// the owning catalog number so a correction entry can be written by hand.
func PrintDiagnostics(w io.Writer, timeline []artifact.TimelineEntry) {
	unresolved := Unresolved(timeline)

	bold := color.New(color.Bold)
	if len(unresolved) == 0 {
		color.New(color.FgGreen).Fprintln(w, "all external variants resolved")
		return
	}

	bold.Fprintf(w, "%d unresolved variant mapping(s):\n", len(unresolved))
	warn := color.New(color.FgYellow)
	for _, t := range unresolved {
		warn.Fprintf(w, "  %-20s", t.SourceFile)
		fmt.Fprintf(w, " #%s  %s | %s\n", t.Num, t.En, t.Zh)
	}
	fmt.Fprintln(w, "add entries to the corrections file to pin these mappings")
}
