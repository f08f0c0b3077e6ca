package sources

import (
	"net"
	"sort"
)

// orderByIndex orders interface names by kernel interface index. Names the
// kernel does not report are appended in alphabetical order.
func orderByIndex(names []string, list func() ([]net.Interface, error)) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	ordered := make([]string, 0, len(names))
	if ifaces, err := list(); err == nil {
		sort.SliceStable(ifaces, func(i, j int) bool {
			return ifaces[i].Index < ifaces[j].Index
		})
		for _, iface := range ifaces {
			if known[iface.Name] {
				ordered = append(ordered, iface.Name)
				delete(known, iface.Name)
			}
		}
	}

	rest := make([]string, 0, len(known))
	for n := range known {
		rest = append(rest, n)
	}
	sort.Strings(rest)

	return append(ordered, rest...)
}
