package stats

import (
	"reflect"
	"testing"
)

func TestSnapshotPreservesInsertionOrder(t *testing.T) {
	s := NewSnapshot()
	s.Set("wlan0", Counters{1, 2})
	s.Set("lo", Counters{3, 4})
	s.Set("eth0", Counters{5, 6})

	want := []string{"wlan0", "lo", "eth0"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestSnapshotSetExistingKeepsPosition(t *testing.T) {
	s := NewSnapshot()
	s.Set("eth0", Counters{1, 1})
	s.Set("lo", Counters{2, 2})
	s.Set("eth0", Counters{9, 9})

	if got := s.Names(); !reflect.DeepEqual(got, []string{"eth0", "lo"}) {
		t.Fatalf("Names() = %v", got)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	c, ok := s.Get("eth0")
	if !ok || c != (Counters{9, 9}) {
		t.Fatalf("Get(eth0) = %v, %v", c, ok)
	}
}

func TestSnapshotNamesIsCopy(t *testing.T) {
	s := NewSnapshot()
	s.Set("eth0", Counters{})
	names := s.Names()
	names[0] = "mutated"
	if s.Names()[0] != "eth0" {
		t.Fatalf("Names() exposed internal slice")
	}
}

func TestNilSnapshot(t *testing.T) {
	var s *Snapshot
	if s.Len() != 0 || s.Names() != nil || s.Has("eth0") {
		t.Fatalf("nil snapshot should behave as empty")
	}
}

func TestCountersIsZero(t *testing.T) {
	if !(Counters{}).IsZero() {
		t.Fatalf("zero counters should be zero")
	}
	if (Counters{RxBytes: 1}).IsZero() || (Counters{TxBytes: 1}).IsZero() {
		t.Fatalf("non-zero counters reported as zero")
	}
}
