package stats

// BytesPerKB is the divisor used to turn byte deltas into KB.
const BytesPerKB = 1024.0

// Rate is the throughput of one interface over one tick, in KB.
type Rate struct {
	InKBps  float64
	OutKBps float64
}

// SaturatingSub returns a-b, or 0 when b > a (counter reset or wrap).
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// ComputeRate returns the rate of an interface between two snapshots.
// The result is per tick: it is not scaled by the elapsed wall-clock time.
// ok is false when the interface is missing from either snapshot.
func ComputeRate(prev, cur *Snapshot, name string) (r Rate, ok bool) {
	p, ok := prev.Get(name)
	if !ok {
		return Rate{}, false
	}
	c, ok := cur.Get(name)
	if !ok {
		return Rate{}, false
	}

	return Rate{
		InKBps:  float64(SaturatingSub(c.RxBytes, p.RxBytes)) / BytesPerKB,
		OutKBps: float64(SaturatingSub(c.TxBytes, p.TxBytes)) / BytesPerKB,
	}, true
}
