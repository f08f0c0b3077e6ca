package output

import "strings"

const (
	// maxNameWidth is the longest name displayed unchanged.
	maxNameWidth = 16
	// truncatedNameWidth is the prefix kept when a long name is cut with "...".
	truncatedNameWidth = 13
	// guidMarker starts the adapter GUID in Windows device strings.
	guidMarker = "TCPIP_{"
	// guidPrefixWidth is the number of characters kept from guidMarker on.
	guidPrefixWidth = 11
	// guidSuffixWidth is the number of trailing characters kept after "..".
	guidSuffixWidth = 5
)

// ShortenName abbreviates interface names longer than 16 characters so they
// fit an 18 character header field. Device strings such as
// \DEVICE\TCPIP_{2EE2C70C-A092-4D88-A654-98C8D7645CD5} become TCPIP_{2EE2..5CD5};
// other long names are cut to 13 characters plus "...".
func ShortenName(name string) string {
	if len(name) <= maxNameWidth {
		return name
	}

	if i := strings.IndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}

	if start := strings.Index(name, guidMarker); start >= 0 {
		end := start + guidPrefixWidth
		if end < len(name) {
			return name[start:end] + ".." + name[len(name)-guidSuffixWidth:]
		}
	}

	if len(name) > truncatedNameWidth {
		return name[:truncatedNameWidth] + "..."
	}
	return name
}
