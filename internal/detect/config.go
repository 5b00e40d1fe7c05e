package detect

import "time"

// Config holds the detection thresholds and capacities. Thresholds may be
// swapped at runtime (config hot reload); capacities and periods are fixed at
// startup.
type Config struct {
	// Window is the accumulation interval between evaluator runs.
	Window time.Duration `yaml:"-"`
	// EvilTwinInterval is how often the active-scan comparison runs. Active
	// scans interrupt passive capture, so this is much coarser than Window.
	EvilTwinInterval time.Duration `yaml:"-"`

	// DeauthRate is the deauth/disassoc frame count per window at or above
	// which the window counts toward a sustained attack.
	DeauthRate int `yaml:"deauth_rate"`
	// DeauthSustainWindows is how many consecutive offending windows are
	// required before the attack-started event fires.
	DeauthSustainWindows int `yaml:"deauth_sustain_windows"`
	// BeaconRate is the global beacon-flood threshold (strictly greater).
	BeaconRate int `yaml:"beacon_rate"`
	// ProbeRate is the probe-request-flood threshold (strictly greater).
	ProbeRate int `yaml:"probe_rate"`
	// RandomizedPct is the locally-administered address percentage at or
	// above which a MAC-randomization alert fires.
	RandomizedPct int `yaml:"randomized_pct"`
	// OriginBeaconRate is the per-origin beacon-flood threshold (strictly
	// greater).
	OriginBeaconRate int `yaml:"origin_beacon_rate"`
	// HiddenSSIDRate is the hidden-SSID beacon threshold (strictly greater).
	HiddenSSIDRate int `yaml:"hidden_ssid_rate"`

	// MaxAddresses caps the unique source address pool. Once full, new
	// addresses are silently dropped; undercounting beats unbounded growth.
	MaxAddresses int `yaml:"max_addresses"`
	// MaxBeaconOrigins caps the per-origin beacon table. Once full, the
	// entry with the smallest count is evicted for each new origin.
	MaxBeaconOrigins int `yaml:"max_beacon_origins"`
	// MaxSnapshot caps how many access points one active scan retains.
	MaxSnapshot int `yaml:"max_snapshot"`
	// MaxAlerts caps the in-memory alert history.
	MaxAlerts int `yaml:"max_alerts"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Window:               10 * time.Second,
		EvilTwinInterval:     60 * time.Second,
		DeauthRate:           5,
		DeauthSustainWindows: 1,
		BeaconRate:           80,
		ProbeRate:            120,
		RandomizedPct:        60,
		OriginBeaconRate:     60,
		HiddenSSIDRate:       40,
		MaxAddresses:         256,
		MaxBeaconOrigins:     32,
		MaxSnapshot:          64,
		MaxAlerts:            100,
	}
}
