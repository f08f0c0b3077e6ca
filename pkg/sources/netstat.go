package sources

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/danpilch/ifstat/pkg/stats"
)

// NetstatSource reads interface counters from `netstat -ib`.
type NetstatSource struct {
	command string
	args    []string
}

// NewNetstatSource creates a source running netstat -ib.
func NewNetstatSource() *NetstatSource {
	return &NetstatSource{
		command: "netstat",
		args:    []string{"-ib"},
	}
}

// Name returns the source name.
func (s *NetstatSource) Name() string {
	return "netstat"
}

// Snapshot runs netstat and parses its output.
func (s *NetstatSource) Snapshot() (*stats.Snapshot, error) {
	out, err := exec.Command(s.command, s.args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", s.command, strings.Join(s.args, " "), err)
	}
	return ParseNetstat(bytes.NewReader(out))
}

// ParseNetstat parses `netstat -ib` output. Only link-level rows (<Link#N>)
// are used, first occurrence per interface. The Address column is empty on
// some rows, so byte counters are located from the right:
// Ibytes Opkts Oerrs Obytes Coll.
func ParseNetstat(r io.Reader) (*stats.Snapshot, error) {
	snap := stats.NewSnapshot()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		// Skip header line
		if lineNum == 1 {
			continue
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 || !strings.HasPrefix(fields[2], "<Link#") {
			continue
		}
		if len(fields) < 8 {
			return nil, fmt.Errorf("%w: invalid netstat line format: %d fields", ErrInvalidData, len(fields))
		}

		// Down interfaces are marked with a trailing '*'
		name := strings.TrimSuffix(fields[0], "*")
		if snap.Has(name) {
			continue
		}

		n := len(fields)
		rx, err := strconv.ParseUint(fields[n-5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid Ibytes %q for %s", ErrInvalidData, fields[n-5], name)
		}
		tx, err := strconv.ParseUint(fields[n-2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid Obytes %q for %s", ErrInvalidData, fields[n-2], name)
		}

		snap.Set(name, stats.Counters{RxBytes: rx, TxBytes: tx})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}
