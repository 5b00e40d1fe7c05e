package models

// AccessPoint is a single (network name, transmitter address) pair observed
// during an active scan.
type AccessPoint struct {
	SSID  string
	BSSID string // lowercase colon-separated hardware address
}

// ChannelState describes what the radio is currently tuned to. It is owned by
// the channel hopper; the detection core only reads it for window summaries.
type ChannelState struct {
	Hopping bool // true when auto-hopping, false when locked
	Channel int
}
