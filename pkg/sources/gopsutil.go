package sources

import (
	"fmt"
	"strings"

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/danpilch/ifstat/pkg/stats"
)

// PsutilSource reads interface counters through gopsutil. It works on every
// platform gopsutil supports and keeps the order gopsutil reports.
type PsutilSource struct {
	ioFn func(pernic bool) ([]psnet.IOCountersStat, error)
}

// NewPsutilSource creates a gopsutil backed source.
func NewPsutilSource() *PsutilSource {
	return &PsutilSource{ioFn: psnet.IOCounters}
}

// Name returns the source name.
func (s *PsutilSource) Name() string {
	return "gopsutil"
}

// Snapshot reads per-interface counters.
func (s *PsutilSource) Snapshot() (*stats.Snapshot, error) {
	list, err := s.ioFn(true)
	if err != nil {
		return nil, fmt.Errorf("net.IOCounters(pernic=true): %w", err)
	}

	snap := stats.NewSnapshot()
	for _, c := range list {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: interface without a name", ErrInvalidData)
		}
		snap.Set(c.Name, stats.Counters{RxBytes: c.BytesRecv, TxBytes: c.BytesSent})
	}
	return snap, nil
}

// InterfaceDetails returns a short description (hardware address and flags)
// for each interface gopsutil knows about. Failures yield an empty map.
func InterfaceDetails() map[string]string {
	details := make(map[string]string)
	list, err := psnet.Interfaces()
	if err != nil {
		return details
	}

	for _, iface := range list {
		var parts []string
		if iface.HardwareAddr != "" {
			parts = append(parts, iface.HardwareAddr)
		}
		if len(iface.Flags) > 0 {
			parts = append(parts, strings.Join(iface.Flags, ","))
		}
		details[iface.Name] = strings.Join(parts, " ")
	}
	return details
}
