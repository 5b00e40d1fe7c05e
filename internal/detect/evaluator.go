package detect

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wifiwarden/internal/models"
)

// WindowSummary is the unconditional per-window report: raw counters plus the
// radio state they were collected under.
type WindowSummary struct {
	Timestamp       time.Time
	Uptime          time.Duration
	Channel         models.ChannelState
	Deauth          int
	Beacon          int
	Probe           int
	Hidden          int
	UniqueAddresses int
	RandomizedPct   int
}

// How many window summaries the session report keeps.
const maxSummaries = 360

// Evaluator runs the threshold rules once per detection window and resets the
// window state afterwards. The sustained-deauth counter is the only state
// that survives a window boundary.
type Evaluator struct {
	state *WindowState
	log   *AlertLog
	start time.Time

	mu          sync.Mutex
	cfg         Config
	sustained   int
	lastSummary *WindowSummary
	summaries   []WindowSummary
	onWindow    func(WindowSummary, []Alert)
}

// NewEvaluator builds an evaluator owning a fresh WindowState.
func NewEvaluator(cfg Config, log *AlertLog) *Evaluator {
	return &Evaluator{
		state: NewWindowState(cfg),
		log:   log,
		start: time.Now(),
		cfg:   cfg,
	}
}

// State exposes the window state for the capture path to feed.
func (e *Evaluator) State() *WindowState { return e.state }

// SetThresholds swaps the threshold fields for subsequent windows. Capacities
// and periods are fixed at startup; only the rule thresholds hot-reload.
func (e *Evaluator) SetThresholds(cfg Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.DeauthRate = cfg.DeauthRate
	e.cfg.DeauthSustainWindows = cfg.DeauthSustainWindows
	e.cfg.BeaconRate = cfg.BeaconRate
	e.cfg.ProbeRate = cfg.ProbeRate
	e.cfg.RandomizedPct = cfg.RandomizedPct
	e.cfg.OriginBeaconRate = cfg.OriginBeaconRate
	e.cfg.HiddenSSIDRate = cfg.HiddenSSIDRate
}

// SetWindowSink registers an optional observer called after each window with
// the summary and any alerts that fired. Used to feed metrics.
func (e *Evaluator) SetWindowSink(fn func(WindowSummary, []Alert)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onWindow = fn
}

// Evaluate closes the current window: it drains the accumulated state, applies
// the threshold rules in order, records alerts, and emits the summary.
func (e *Evaluator) Evaluate(channel models.ChannelState) (WindowSummary, []Alert) {
	snap := e.state.drain()

	e.mu.Lock()
	cfg := e.cfg
	alerts := e.applyRules(snap, cfg)

	summary := WindowSummary{
		Timestamp:       time.Now(),
		Uptime:          time.Since(e.start),
		Channel:         channel,
		Deauth:          snap.deauth,
		Beacon:          snap.beacon,
		Probe:           snap.probe,
		Hidden:          snap.hidden,
		UniqueAddresses: snap.uniqueAddrs,
		RandomizedPct:   snap.randomizedPct,
	}
	e.lastSummary = &summary
	e.summaries = append(e.summaries, summary)
	if len(e.summaries) > maxSummaries {
		e.summaries = e.summaries[len(e.summaries)-maxSummaries:]
	}
	sink := e.onWindow
	e.mu.Unlock()

	if len(alerts) > 0 {
		e.log.Add(alerts...)
	}
	if sink != nil {
		sink(summary, alerts)
	}
	return summary, alerts
}

// applyRules runs the per-window threshold checks. Caller holds e.mu (the
// sustained counter lives across windows).
func (e *Evaluator) applyRules(snap windowSnapshot, cfg Config) []Alert {
	now := time.Now()
	var alerts []Alert

	// Sustained deauth activity: edge-triggered start/stop events rather
	// than one alert per offending window.
	if snap.deauth >= cfg.DeauthRate {
		e.sustained++
		if e.sustained == cfg.DeauthSustainWindows {
			alerts = append(alerts, Alert{
				Kind:      AlertDeauthStarted,
				Message:   fmt.Sprintf("deauth flood started: %d deauth/disassoc frames this window", snap.deauth),
				Timestamp: now,
			})
		}
	} else {
		if e.sustained >= cfg.DeauthSustainWindows {
			alerts = append(alerts, Alert{
				Kind:      AlertDeauthStopped,
				Message:   "deauth flood stopped",
				Timestamp: now,
			})
		}
		e.sustained = 0
	}

	if snap.beacon > cfg.BeaconRate {
		alerts = append(alerts, Alert{
			Kind:      AlertBeaconFlood,
			Message:   fmt.Sprintf("beacon flood: %d beacons this window", snap.beacon),
			Timestamp: now,
		})
	}

	if snap.probe > cfg.ProbeRate {
		alerts = append(alerts, Alert{
			Kind:      AlertProbeFlood,
			Message:   fmt.Sprintf("probe request flood: %d probes this window", snap.probe),
			Timestamp: now,
		})
	}

	if snap.uniqueAddrs > 0 && snap.randomizedPct >= cfg.RandomizedPct {
		alerts = append(alerts, Alert{
			Kind:      AlertMACRandomization,
			Message:   fmt.Sprintf("MAC randomization spike: %d%% of %d addresses locally administered", snap.randomizedPct, snap.uniqueAddrs),
			Timestamp: now,
		})
	}

	for _, oc := range snap.origins {
		if oc.Count > cfg.OriginBeaconRate {
			alerts = append(alerts, Alert{
				Kind:      AlertOriginBeaconFlood,
				Source:    oc.Origin.String(),
				Message:   fmt.Sprintf("beacon flood from %s: %d beacons this window", oc.Origin, oc.Count),
				Timestamp: now,
			})
		}
	}

	if snap.hidden > cfg.HiddenSSIDRate {
		alerts = append(alerts, Alert{
			Kind:      AlertHiddenSSIDAbuse,
			Message:   fmt.Sprintf("hidden SSID abuse: %d hidden-SSID beacons this window", snap.hidden),
			Timestamp: now,
		})
	}

	return alerts
}

// LastSummary returns the most recent window summary, if any window has
// closed yet.
func (e *Evaluator) LastSummary() (WindowSummary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastSummary == nil {
		return WindowSummary{}, false
	}
	return *e.lastSummary, true
}

// Summaries returns a copy of the retained window history.
func (e *Evaluator) Summaries() []WindowSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]WindowSummary, len(e.summaries))
	copy(out, e.summaries)
	return out
}

// Run evaluates on the configured window period until the context ends.
// channel supplies the radio state to stamp on each summary.
func (e *Evaluator) Run(ctx context.Context, channel func() models.ChannelState) {
	ticker := time.NewTicker(e.cfg.Window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Evaluate(channel())
		}
	}
}
