package detect

import (
	"sync"
	"time"
)

// AlertKind identifies the attack signature an alert belongs to.
type AlertKind string

const (
	AlertDeauthStarted     AlertKind = "DEAUTH_ATTACK_STARTED"
	AlertDeauthStopped     AlertKind = "DEAUTH_ATTACK_STOPPED"
	AlertBeaconFlood       AlertKind = "BEACON_FLOOD"
	AlertProbeFlood        AlertKind = "PROBE_FLOOD"
	AlertMACRandomization  AlertKind = "MAC_RANDOMIZATION"
	AlertOriginBeaconFlood AlertKind = "ORIGIN_BEACON_FLOOD"
	AlertHiddenSSIDAbuse   AlertKind = "HIDDEN_SSID_ABUSE"
	AlertEvilTwin          AlertKind = "EVIL_TWIN"
)

// Alert is a single detection event.
type Alert struct {
	Kind      AlertKind
	Source    string // offending address or SSID, where one applies
	Message   string
	Timestamp time.Time
}

// AlertLog is a bounded, thread-safe history of alerts shared by the window
// evaluator and the evil-twin detector, and read by the UI and the session
// report.
type AlertLog struct {
	mu     sync.Mutex
	alerts []Alert
	max    int
	sink   func(Alert)
}

func NewAlertLog(max int) *AlertLog {
	return &AlertLog{max: max}
}

// SetSink registers an optional observer notified of every alert added.
func (l *AlertLog) SetSink(fn func(Alert)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = fn
}

func (l *AlertLog) Add(alerts ...Alert) {
	l.mu.Lock()
	l.alerts = append(l.alerts, alerts...)
	if len(l.alerts) > l.max {
		l.alerts = l.alerts[len(l.alerts)-l.max:]
	}
	sink := l.sink
	l.mu.Unlock()

	if sink != nil {
		for _, a := range alerts {
			sink(a)
		}
	}
}

// Recent returns up to limit of the newest alerts, oldest first.
func (l *AlertLog) Recent(limit int) []Alert {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := 0
	if len(l.alerts) > limit {
		start = len(l.alerts) - limit
	}
	out := make([]Alert, len(l.alerts)-start)
	copy(out, l.alerts[start:])
	return out
}

// All returns a copy of the whole retained history.
func (l *AlertLog) All() []Alert {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}
