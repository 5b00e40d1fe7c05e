package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressSetCapacityAndDedup(t *testing.T) {
	s := newAddressSet(3)

	s.add(addr(1))
	s.add(addr(2))
	assert.Equal(t, 2, s.len())

	// Duplicates never change the size.
	s.add(addr(1))
	assert.Equal(t, 2, s.len())

	s.add(addr(3))
	assert.Equal(t, 3, s.len())

	// Full pool silently drops new addresses.
	s.add(addr(4))
	assert.Equal(t, 3, s.len())

	s.reset()
	assert.Equal(t, 0, s.len())
}

func TestAddressSetRandomizedPct(t *testing.T) {
	s := newAddressSet(8)
	assert.Equal(t, 0, s.randomizedPct(), "empty pool is defined as zero")

	s.add(addr(1))
	s.add(randomizedAddr(2))
	s.add(randomizedAddr(3))
	s.add(randomizedAddr(4))
	assert.Equal(t, 75, s.randomizedPct())
}

func TestOriginTableEvictsMinimum(t *testing.T) {
	tab := newOriginTable(2)

	tab.bump(addr(1))
	tab.bump(addr(1))
	tab.bump(addr(1))
	tab.bump(addr(2))
	require.Equal(t, 2, tab.len())

	// Table is full; the new origin must replace the minimum-count entry.
	tab.bump(addr(3))
	require.Equal(t, 2, tab.len())

	entries := tab.snapshot()
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Origin.String()] = e.Count
	}
	assert.Equal(t, 3, counts[addr(1).String()], "most active origin is retained")
	assert.Equal(t, 1, counts[addr(3).String()], "new origin starts at one")
	assert.NotContains(t, counts, addr(2).String())
}

func TestOriginTableFirstMinimumWins(t *testing.T) {
	tab := newOriginTable(3)

	// Three origins all at count 1: the eviction scan must pick the first.
	tab.bump(addr(1))
	tab.bump(addr(2))
	tab.bump(addr(3))
	tab.bump(addr(4))

	entries := tab.snapshot()
	require.Len(t, entries, 3)
	assert.Equal(t, addr(4), entries[0].Origin)
	assert.Equal(t, addr(2), entries[1].Origin)
	assert.Equal(t, addr(3), entries[2].Origin)
}
