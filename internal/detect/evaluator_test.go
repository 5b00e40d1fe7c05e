package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wifiwarden/internal/dot11"
	"wifiwarden/internal/models"
)

func testChannel() models.ChannelState {
	return models.ChannelState{Hopping: true, Channel: 6}
}

func kinds(alerts []Alert) []AlertKind {
	out := make([]AlertKind, len(alerts))
	for i, a := range alerts {
		out[i] = a.Kind
	}
	return out
}

func TestDeauthStartAndStopAreEdgeTriggered(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	// Window 1: exactly the rate threshold of deauth frames.
	for i := 0; i < cfg.DeauthRate; i++ {
		e.State().Observe(mgmtFrame(dot11.SubtypeDeauthentication, addr(byte(i))))
	}
	_, alerts := e.Evaluate(testChannel())
	require.Equal(t, []AlertKind{AlertDeauthStarted}, kinds(alerts))

	// Window 2: still flooding. No repeated start alert.
	for i := 0; i < cfg.DeauthRate; i++ {
		e.State().Observe(mgmtFrame(dot11.SubtypeDeauthentication, addr(byte(i))))
	}
	_, alerts = e.Evaluate(testChannel())
	assert.Empty(t, alerts)

	// Window 3: quiet. Exactly one stop alert.
	_, alerts = e.Evaluate(testChannel())
	require.Equal(t, []AlertKind{AlertDeauthStopped}, kinds(alerts))

	// Window 4: still quiet. Nothing more.
	_, alerts = e.Evaluate(testChannel())
	assert.Empty(t, alerts)
}

func TestDeauthSustainWindows(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeauthSustainWindows = 2
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	flood := func() {
		for i := 0; i < cfg.DeauthRate; i++ {
			e.State().Observe(mgmtFrame(dot11.SubtypeDeauthentication, addr(byte(i))))
		}
	}

	flood()
	_, alerts := e.Evaluate(testChannel())
	assert.Empty(t, alerts, "one offending window is below the sustain requirement")

	flood()
	_, alerts = e.Evaluate(testChannel())
	require.Equal(t, []AlertKind{AlertDeauthStarted}, kinds(alerts))

	_, alerts = e.Evaluate(testChannel())
	require.Equal(t, []AlertKind{AlertDeauthStopped}, kinds(alerts))
}

func TestBelowRateNeverStarts(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	for i := 0; i < cfg.DeauthRate-1; i++ {
		e.State().Observe(mgmtFrame(dot11.SubtypeDeauthentication, addr(byte(i))))
	}
	_, alerts := e.Evaluate(testChannel())
	assert.Empty(t, alerts)
}

func TestBeaconFloodGlobalAndPerOrigin(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	// All beacons from a single origin: both the global and the per-origin
	// alert fire for it.
	for i := 0; i < cfg.BeaconRate+1; i++ {
		e.State().Observe(beaconFrame(addr(9), 0, 2, 'h', 'i'))
	}
	_, alerts := e.Evaluate(testChannel())
	require.ElementsMatch(t, []AlertKind{AlertBeaconFlood, AlertOriginBeaconFlood}, kinds(alerts))
	for _, a := range alerts {
		if a.Kind == AlertOriginBeaconFlood {
			assert.Equal(t, addr(9).String(), a.Source)
		}
	}
}

func TestBeaconFloodSpreadAcrossOrigins(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	// Spread so no single origin crosses the per-origin threshold.
	total := cfg.BeaconRate + 1
	for i := 0; i < total; i++ {
		e.State().Observe(beaconFrame(addr(byte(i%3)), 0, 2, 'h', 'i'))
	}
	_, alerts := e.Evaluate(testChannel())
	require.Equal(t, []AlertKind{AlertBeaconFlood}, kinds(alerts))
}

func TestProbeFlood(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAddresses = 512
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	for i := 0; i < cfg.ProbeRate+1; i++ {
		e.State().Observe(mgmtFrame(dot11.SubtypeProbeRequest, addr(byte(i))))
	}
	_, alerts := e.Evaluate(testChannel())
	require.Equal(t, []AlertKind{AlertProbeFlood}, kinds(alerts))
}

func TestMACRandomizationAlert(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	e.State().Observe(mgmtFrame(5, addr(1)))
	e.State().Observe(mgmtFrame(5, randomizedAddr(2)))
	e.State().Observe(mgmtFrame(5, randomizedAddr(3)))
	e.State().Observe(mgmtFrame(5, randomizedAddr(4)))

	_, alerts := e.Evaluate(testChannel())
	require.Equal(t, []AlertKind{AlertMACRandomization}, kinds(alerts))
	assert.Contains(t, alerts[0].Message, "75%")
}

func TestEmptyPoolSkipsRandomizationCheck(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	_, alerts := e.Evaluate(testChannel())
	assert.Empty(t, alerts)
}

func TestHiddenSSIDAbuse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BeaconRate = 1000 // isolate the hidden-SSID signal
	cfg.OriginBeaconRate = 1000
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	for i := 0; i < cfg.HiddenSSIDRate+1; i++ {
		e.State().Observe(beaconFrame(addr(9), 0, 0))
	}
	_, alerts := e.Evaluate(testChannel())
	require.Equal(t, []AlertKind{AlertHiddenSSIDAbuse}, kinds(alerts))
}

func TestSummaryAlwaysEmitted(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	_, ok := e.LastSummary()
	assert.False(t, ok, "no summary before the first window closes")

	e.State().Observe(mgmtFrame(dot11.SubtypeProbeRequest, addr(1)))
	summary, alerts := e.Evaluate(testChannel())
	assert.Empty(t, alerts)
	assert.Equal(t, 1, summary.Probe)
	assert.Equal(t, 1, summary.UniqueAddresses)
	assert.Equal(t, testChannel(), summary.Channel)

	last, ok := e.LastSummary()
	require.True(t, ok)
	assert.Equal(t, summary, last)
	assert.Len(t, e.Summaries(), 1)
}

func TestEvaluateResetsWindowButNotSustain(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	for i := 0; i < cfg.DeauthRate; i++ {
		e.State().Observe(mgmtFrame(dot11.SubtypeDeauthentication, addr(byte(i))))
	}
	e.State().Observe(beaconFrame(addr(20), 0, 0))
	e.Evaluate(testChannel())

	// The window itself is empty again.
	summary, _ := e.Evaluate(testChannel())
	assert.Zero(t, summary.Deauth)
	assert.Zero(t, summary.Beacon)
	assert.Zero(t, summary.Hidden)
	assert.Zero(t, summary.UniqueAddresses)
}

func TestSetThresholdsAppliesNextWindow(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEvaluator(cfg, NewAlertLog(cfg.MaxAlerts))

	lowered := cfg
	lowered.ProbeRate = 2
	e.SetThresholds(lowered)

	for i := 0; i < 3; i++ {
		e.State().Observe(mgmtFrame(dot11.SubtypeProbeRequest, addr(byte(i))))
	}
	_, alerts := e.Evaluate(testChannel())
	require.Equal(t, []AlertKind{AlertProbeFlood}, kinds(alerts))
}

func TestAlertsReachTheLog(t *testing.T) {
	cfg := DefaultConfig()
	logbuf := NewAlertLog(cfg.MaxAlerts)
	e := NewEvaluator(cfg, logbuf)

	for i := 0; i < cfg.DeauthRate; i++ {
		e.State().Observe(mgmtFrame(dot11.SubtypeDeauthentication, addr(byte(i))))
	}
	e.Evaluate(testChannel())

	recent := logbuf.Recent(5)
	require.Len(t, recent, 1)
	assert.Equal(t, AlertDeauthStarted, recent[0].Kind)
}
