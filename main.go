package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wifiwarden/internal/capture"
	"wifiwarden/internal/config"
	"wifiwarden/internal/detect"
	"wifiwarden/internal/metrics"
	"wifiwarden/internal/scan"
	"wifiwarden/internal/tui"
)

func main() {
	interfaceName := flag.String("i", "", "Monitor-mode interface to capture from (e.g., wlan0mon)")
	configPath := flag.String("config", "", "YAML config file with thresholds")
	channel := flag.Int("channel", 0, "Lock the radio to one channel instead of hopping")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address (e.g., :9090)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *interfaceName != "" {
		cfg.Interface = *interfaceName
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	if cfg.Interface == "" {
		fmt.Println("Please provide a monitor-mode interface with -i")
		fmt.Println("Example: ./wifiwarden -i wlan0mon")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, err := capture.Open(cfg.Interface)
	if err != nil {
		log.Fatalf("Error opening capture: %v", err)
	}
	defer source.Close()

	alertLog := detect.NewAlertLog(cfg.Detection.MaxAlerts)
	evaluator := detect.NewEvaluator(cfg.Detection, alertLog)

	if cfg.MetricsAddr != "" {
		m := metrics.New()
		evaluator.SetWindowSink(m.ObserveWindow)
		alertLog.SetSink(m.ObserveAlert)
		go func() {
			if err := m.Serve(cfg.MetricsAddr); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	// Threshold changes in the config file take effect at the next window.
	if *configPath != "" {
		if err := config.Watch(ctx, *configPath, evaluator.SetThresholds); err != nil {
			log.Printf("config watch disabled: %v", err)
		}
	}

	var hopper *capture.Hopper
	if *channel > 0 {
		hopper = capture.NewLocked(cfg.Interface, *channel)
	} else {
		hopper = capture.NewHopper(cfg.Interface, cfg.Channels, cfg.HopDwell())
	}
	go hopper.Run(ctx)

	// Frame path: capture goroutine feeding the classifier directly.
	go source.Run(ctx, evaluator.State().Observe)
	go evaluator.Run(ctx, hopper.State)

	scanner := scan.NewIWScanner(cfg.Interface, 10*time.Second)
	twin := detect.NewEvilTwinDetector(cfg.Detection, scanner, source, alertLog)
	go twin.Run(ctx)

	model := tui.NewModel(evaluator, alertLog, hopper.State, cfg.Interface)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Printf("Error running TUI: %v", err)
	}
}
