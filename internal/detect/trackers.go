package detect

import "wifiwarden/internal/dot11"

// addressSet is a fixed-capacity deduplicated pool of source addresses. The
// backing array is allocated once; nothing on the frame path allocates.
type addressSet struct {
	addrs []dot11.Addr
	n     int
}

func newAddressSet(capacity int) *addressSet {
	return &addressSet{addrs: make([]dot11.Addr, capacity)}
}

// add records an address unless it is already present or the pool is full.
// A full pool drops new addresses silently.
func (s *addressSet) add(a dot11.Addr) {
	for i := 0; i < s.n; i++ {
		if s.addrs[i] == a {
			return
		}
	}
	if s.n == len(s.addrs) {
		return
	}
	s.addrs[s.n] = a
	s.n++
}

func (s *addressSet) len() int { return s.n }

// randomizedPct returns the percentage of pooled addresses with the
// locally-administered bit set. An empty pool is 0.
func (s *addressSet) randomizedPct() int {
	if s.n == 0 {
		return 0
	}
	random := 0
	for i := 0; i < s.n; i++ {
		if s.addrs[i].LocallyAdministered() {
			random++
		}
	}
	return random * 100 / s.n
}

func (s *addressSet) reset() { s.n = 0 }

// OriginCount is one populated entry of the per-origin beacon table.
type OriginCount struct {
	Origin dot11.Addr
	Count  int
}

// originTable is a fixed-capacity map from beacon origin to count. When full,
// a new origin evicts the entry with the smallest count (first minimum found
// wins), which biases retention toward already-active origins.
type originTable struct {
	entries []OriginCount
	n       int
}

func newOriginTable(capacity int) *originTable {
	return &originTable{entries: make([]OriginCount, capacity)}
}

func (t *originTable) bump(origin dot11.Addr) {
	for i := 0; i < t.n; i++ {
		if t.entries[i].Origin == origin {
			t.entries[i].Count++
			return
		}
	}
	if t.n < len(t.entries) {
		t.entries[t.n] = OriginCount{Origin: origin, Count: 1}
		t.n++
		return
	}
	min := 0
	for i := 1; i < t.n; i++ {
		if t.entries[i].Count < t.entries[min].Count {
			min = i
		}
	}
	t.entries[min] = OriginCount{Origin: origin, Count: 1}
}

func (t *originTable) len() int { return t.n }

// snapshot copies the populated entries. Called once per window, off the
// frame path, so allocation is fine here.
func (t *originTable) snapshot() []OriginCount {
	out := make([]OriginCount, t.n)
	copy(out, t.entries[:t.n])
	return out
}

func (t *originTable) reset() { t.n = 0 }
