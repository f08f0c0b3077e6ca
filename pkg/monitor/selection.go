package monitor

import (
	"strings"

	"github.com/danpilch/ifstat/pkg/stats"
)

// LoopbackPrefix marks interfaces excluded by default.
const LoopbackPrefix = "lo"

// ResolveSelection returns the ordered interfaces to monitor for a run.
// Priority: All, then an explicit list, then Loopback, then every interface
// whose name does not start with "lo". The -l flag currently resolves to the
// same set as -a: loopback interfaces are only excluded by the default rule.
func ResolveSelection(initial *stats.Snapshot, flags SelectionFlags) []string {
	switch {
	case flags.All:
		return initial.Names()
	case flags.Interfaces != "":
		return parseInterfaceList(flags.Interfaces)
	case flags.Loopback:
		return initial.Names()
	}

	names := initial.Names()
	selected := make([]string, 0, len(names))
	for _, name := range names {
		if !strings.HasPrefix(name, LoopbackPrefix) {
			selected = append(selected, name)
		}
	}
	return selected
}

// parseInterfaceList splits a comma separated list, trimming each entry.
// Unknown names and duplicates are kept; empty entries are dropped.
func parseInterfaceList(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
