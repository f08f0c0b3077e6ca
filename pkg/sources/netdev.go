package sources

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danpilch/ifstat/pkg/stats"
)

// netDevHeaderLines is the number of header lines at the top of /proc/net/dev.
const netDevHeaderLines = 2

// netDevTxField is the index of the transmitted bytes column after the colon.
const netDevTxField = 8

// NetDevSource reads interface counters from a /proc/net/dev formatted file.
type NetDevSource struct {
	path string
}

// newNetDevFileSource creates a source reading the given file without any
// mount checks.
func newNetDevFileSource(path string) *NetDevSource {
	return &NetDevSource{path: path}
}

// Name returns the source name.
func (s *NetDevSource) Name() string {
	return "netdev"
}

// Path returns the file read by the source.
func (s *NetDevSource) Path() string {
	return s.path
}

// Snapshot reads and parses the net/dev file.
func (s *NetDevSource) Snapshot() (*stats.Snapshot, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	snap, err := ParseNetDev(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return snap, nil
}

// ParseNetDev parses /proc/net/dev content. The first two non-blank lines are
// headers; every other non-blank line must be "name: counters..." with at
// least nine counter fields. Any malformed line fails the whole parse.
func ParseNetDev(r io.Reader) (*stats.Snapshot, error) {
	snap := stats.NewSnapshot()
	scanner := bufio.NewScanner(r)
	headers := 0

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Skip header lines
		if headers < netDevHeaderLines {
			headers++
			continue
		}

		name, rest, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("%w: no colon found in line %q", ErrInvalidData, line)
		}

		fields := strings.Fields(rest)
		if len(fields) <= netDevTxField {
			return nil, fmt.Errorf("%w: invalid line format: %d fields", ErrInvalidData, len(fields))
		}

		rx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid RX bytes %q", ErrInvalidData, fields[0])
		}
		tx, err := strconv.ParseUint(fields[netDevTxField], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid TX bytes %q", ErrInvalidData, fields[netDevTxField])
		}

		snap.Set(strings.TrimSpace(name), stats.Counters{RxBytes: rx, TxBytes: tx})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}
