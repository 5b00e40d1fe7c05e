package detect

import (
	"sync"

	"wifiwarden/internal/dot11"
)

// WindowState accumulates everything the evaluator reads for one detection
// window. It is written by Observe on the capture path and read-and-reset by
// the evaluator; one mutex covers both so a frame can never be half-counted
// across a window boundary.
type WindowState struct {
	mu sync.Mutex

	addresses *addressSet
	origins   *originTable

	deauthCount int
	beaconCount int
	probeCount  int
	hiddenCount int
}

// NewWindowState allocates the tracking structures up front so the frame path
// never allocates.
func NewWindowState(cfg Config) *WindowState {
	return &WindowState{
		addresses: newAddressSet(cfg.MaxAddresses),
		origins:   newOriginTable(cfg.MaxBeaconOrigins),
	}
}

// Observe classifies one captured frame and updates the window counters. It
// is the per-frame hot path: a frame matches exactly one category, malformed
// input degrades to "not classified", and nothing here blocks or allocates.
func (w *WindowState) Observe(frame []byte) {
	if len(frame) < dot11.MinFrameLen {
		return
	}

	src := dot11.SourceAddress(frame)
	ftype, subtype := dot11.FrameType(frame)

	w.mu.Lock()
	defer w.mu.Unlock()

	// Every accepted frame feeds the address pool, classified or not.
	w.addresses.add(src)

	if ftype != dot11.TypeManagement {
		return
	}

	switch subtype {
	case dot11.SubtypeDeauthentication, dot11.SubtypeDisassociation:
		w.deauthCount++
	case dot11.SubtypeProbeRequest:
		w.probeCount++
	case dot11.SubtypeBeacon:
		w.beaconCount++
		w.origins.bump(src)
		if n, found := dot11.SSIDLength(frame); found && n == 0 {
			w.hiddenCount++
		}
	}
}

// windowSnapshot is the evaluator's read of one finished window.
type windowSnapshot struct {
	deauth        int
	beacon        int
	probe         int
	hidden        int
	uniqueAddrs   int
	randomizedPct int
	origins       []OriginCount
}

// drain copies out the window's accumulated state and resets it, atomically
// with respect to Observe.
func (w *WindowState) drain() windowSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := windowSnapshot{
		deauth:        w.deauthCount,
		beacon:        w.beaconCount,
		probe:         w.probeCount,
		hidden:        w.hiddenCount,
		uniqueAddrs:   w.addresses.len(),
		randomizedPct: w.addresses.randomizedPct(),
		origins:       w.origins.snapshot(),
	}

	w.addresses.reset()
	w.origins.reset()
	w.deauthCount = 0
	w.beaconCount = 0
	w.probeCount = 0
	w.hiddenCount = 0

	return snap
}
