package scan

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"wifiwarden/internal/models"
)

// IWScanner runs an active scan through the iw utility and parses the visible
// networks out of its output. The scan briefly takes the radio away from
// passive capture, so callers pause capture around it.
type IWScanner struct {
	iface   string
	timeout time.Duration
}

func NewIWScanner(interfaceName string, timeout time.Duration) *IWScanner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &IWScanner{iface: interfaceName, timeout: timeout}
}

// Scan triggers one active scan and returns the (SSID, BSSID) pairs found.
func (s *IWScanner) Scan(ctx context.Context) ([]models.AccessPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "iw", "dev", s.iface, "scan")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("iw scan failed: %v", err)
	}
	return parseScan(string(output)), nil
}

// parseScan extracts BSS/SSID pairs from iw scan output. Each "BSS" line
// opens an entry; an indented "SSID:" line names it. Networks that never
// advertise a name stay with an empty SSID.
func parseScan(output string) []models.AccessPoint {
	var aps []models.AccessPoint
	current := -1

	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "BSS ") {
			bssid := strings.TrimPrefix(line, "BSS ")
			// Trailing decorations like "(on wlan0)" or "-- associated".
			if i := strings.IndexAny(bssid, "( -"); i >= 0 {
				bssid = bssid[:i]
			}
			bssid = strings.ToLower(strings.TrimSpace(bssid))
			if bssid == "" {
				current = -1
				continue
			}
			aps = append(aps, models.AccessPoint{BSSID: bssid})
			current = len(aps) - 1
			continue
		}

		trimmed := strings.TrimSpace(line)
		if current >= 0 && strings.HasPrefix(trimmed, "SSID: ") {
			aps[current].SSID = strings.TrimPrefix(trimmed, "SSID: ")
		}
	}

	return aps
}
