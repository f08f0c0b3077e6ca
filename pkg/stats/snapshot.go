// Package stats provides the counter snapshot and rate types used by ifstat.
package stats

// Counters holds the cumulative byte counters of one interface.
type Counters struct {
	RxBytes uint64
	TxBytes uint64
}

// IsZero reports whether both counters are zero.
func (c Counters) IsZero() bool {
	return c.RxBytes == 0 && c.TxBytes == 0
}

// Snapshot is a point-in-time mapping of interface name to counters.
// Names keep the order in which they were first set.
type Snapshot struct {
	names    []string
	counters map[string]Counters
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		counters: make(map[string]Counters),
	}
}

// Set stores counters for an interface. An existing name keeps its position.
func (s *Snapshot) Set(name string, c Counters) {
	if _, exists := s.counters[name]; !exists {
		s.names = append(s.names, name)
	}
	s.counters[name] = c
}

// Get returns the counters for an interface.
func (s *Snapshot) Get(name string) (Counters, bool) {
	if s == nil {
		return Counters{}, false
	}
	c, ok := s.counters[name]
	return c, ok
}

// Has reports whether the snapshot contains an interface.
func (s *Snapshot) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names returns the interface names in insertion order.
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Len returns the number of interfaces in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
