package detect

import (
	"context"
	"fmt"
	"log"
	"time"

	"wifiwarden/internal/models"
)

// Scanner acquires a fresh snapshot of visible access points via an active
// scan. Scans take non-trivial time and require passive capture to be paused.
type Scanner interface {
	Scan(ctx context.Context) ([]models.AccessPoint, error)
}

// CapturePauser suspends and resumes passive capture around an active scan.
type CapturePauser interface {
	Pause()
	Resume()
}

// Finding is one evil-twin detection: two access points advertising the same
// network name from different transmitter addresses.
type Finding struct {
	SSID   string
	BSSIDA string
	BSSIDB string
}

// CompareSnapshot pairwise-compares a snapshot and reports every pair with an
// identical SSID but differing BSSIDs. Each matching pair is reported on its
// own; an SSID seen from three origins yields three findings.
func CompareSnapshot(aps []models.AccessPoint) []Finding {
	var findings []Finding
	for i := 0; i < len(aps); i++ {
		for j := i + 1; j < len(aps); j++ {
			if aps[i].SSID == aps[j].SSID && aps[i].BSSID != aps[j].BSSID {
				findings = append(findings, Finding{
					SSID:   aps[i].SSID,
					BSSIDA: aps[i].BSSID,
					BSSIDB: aps[j].BSSID,
				})
			}
		}
	}
	return findings
}

// EvilTwinDetector periodically scans for access points and reports SSID
// collisions. It runs on its own period, independent of the detection window.
type EvilTwinDetector struct {
	scanner     Scanner
	pauser      CapturePauser
	log         *AlertLog
	interval    time.Duration
	maxSnapshot int
}

func NewEvilTwinDetector(cfg Config, scanner Scanner, pauser CapturePauser, alerts *AlertLog) *EvilTwinDetector {
	return &EvilTwinDetector{
		scanner:     scanner,
		pauser:      pauser,
		log:         alerts,
		interval:    cfg.EvilTwinInterval,
		maxSnapshot: cfg.MaxSnapshot,
	}
}

// RunOnce performs one scan-and-compare cycle. Capture is paused for the scan
// and resumed no matter how the scan ends. A failed scan is the one condition
// worth a warning; the cycle is simply skipped.
func (d *EvilTwinDetector) RunOnce(ctx context.Context) []Finding {
	d.pauser.Pause()
	defer d.pauser.Resume()

	aps, err := d.scanner.Scan(ctx)
	if err != nil {
		log.Printf("evil-twin scan failed, skipping cycle: %v", err)
		return nil
	}
	if len(aps) > d.maxSnapshot {
		aps = aps[:d.maxSnapshot]
	}

	findings := CompareSnapshot(aps)
	now := time.Now()
	for _, f := range findings {
		d.log.Add(Alert{
			Kind:      AlertEvilTwin,
			Source:    f.SSID,
			Message:   fmt.Sprintf("evil twin for %q: %s vs %s", f.SSID, f.BSSIDA, f.BSSIDB),
			Timestamp: now,
		})
	}
	return findings
}

// Run scans on the detector's period until the context ends.
func (d *EvilTwinDetector) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.RunOnce(ctx)
		}
	}
}
