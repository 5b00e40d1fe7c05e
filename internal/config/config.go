package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"wifiwarden/internal/detect"
)

// Config is the full runtime configuration: radio settings plus the detection
// thresholds. Flags override anything loaded from a file. Durations are
// expressed in whole seconds (milliseconds for the hop dwell) so the file
// stays plain YAML integers.
type Config struct {
	Interface       string `yaml:"interface"`
	Channels        []int  `yaml:"channels"`
	HopDwellMillis  int    `yaml:"hop_dwell_ms"`
	MetricsAddr     string `yaml:"metrics_addr"`
	WindowSeconds   int    `yaml:"window_seconds"`
	EvilTwinSeconds int    `yaml:"evil_twin_seconds"`

	Detection detect.Config `yaml:"detection"`
}

// HopDwell returns the channel-hop dwell time.
func (c Config) HopDwell() time.Duration {
	return time.Duration(c.HopDwellMillis) * time.Millisecond
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		HopDwellMillis: 500,
		Detection:      detect.DefaultConfig(),
	}
}

// Load reads a YAML config file over the defaults. Zero-valued detection
// fields fall back to their defaults so a partial file only overrides what it
// names.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config: %v", err)
	}

	if cfg.WindowSeconds > 0 {
		cfg.Detection.Window = time.Duration(cfg.WindowSeconds) * time.Second
	}
	if cfg.EvilTwinSeconds > 0 {
		cfg.Detection.EvilTwinInterval = time.Duration(cfg.EvilTwinSeconds) * time.Second
	}
	fillDetectionDefaults(&cfg.Detection)
	return cfg, nil
}

func fillDetectionDefaults(d *detect.Config) {
	def := detect.DefaultConfig()
	if d.Window <= 0 {
		d.Window = def.Window
	}
	if d.EvilTwinInterval <= 0 {
		d.EvilTwinInterval = def.EvilTwinInterval
	}
	if d.DeauthRate <= 0 {
		d.DeauthRate = def.DeauthRate
	}
	if d.DeauthSustainWindows <= 0 {
		d.DeauthSustainWindows = def.DeauthSustainWindows
	}
	if d.BeaconRate <= 0 {
		d.BeaconRate = def.BeaconRate
	}
	if d.ProbeRate <= 0 {
		d.ProbeRate = def.ProbeRate
	}
	if d.RandomizedPct <= 0 {
		d.RandomizedPct = def.RandomizedPct
	}
	if d.OriginBeaconRate <= 0 {
		d.OriginBeaconRate = def.OriginBeaconRate
	}
	if d.HiddenSSIDRate <= 0 {
		d.HiddenSSIDRate = def.HiddenSSIDRate
	}
	if d.MaxAddresses <= 0 {
		d.MaxAddresses = def.MaxAddresses
	}
	if d.MaxBeaconOrigins <= 0 {
		d.MaxBeaconOrigins = def.MaxBeaconOrigins
	}
	if d.MaxSnapshot <= 0 {
		d.MaxSnapshot = def.MaxSnapshot
	}
	if d.MaxAlerts <= 0 {
		d.MaxAlerts = def.MaxAlerts
	}
}

// Watch reloads the file on every change and hands the new detection config
// to onChange. Reload failures are logged and the previous config stays in
// effect.
func Watch(ctx context.Context, path string, onChange func(detect.Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %v", err)
	}

	// Watch the directory: editors replace files rather than writing in
	// place, which would orphan a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("could not watch config: %v", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					log.Printf("config reload failed: %v", err)
					continue
				}
				onChange(cfg.Detection)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watcher error: %v", err)
			}
		}
	}()

	return nil
}
