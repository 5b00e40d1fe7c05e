package capture

import (
	"context"
	"log"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"wifiwarden/internal/models"
)

// DefaultChannels are the non-overlapping 2.4 GHz channels.
var DefaultChannels = []int{1, 6, 11}

// Hopper owns the radio channel: either cycling a channel list on a fixed
// dwell time or locked to a single channel. The detection core only reads the
// resulting state for its window summaries.
type Hopper struct {
	iface    string
	channels []int
	dwell    time.Duration

	mu    sync.Mutex
	state models.ChannelState
}

// NewHopper returns a hopper cycling channels every dwell interval.
func NewHopper(interfaceName string, channels []int, dwell time.Duration) *Hopper {
	if len(channels) == 0 {
		channels = DefaultChannels
	}
	if dwell <= 0 {
		dwell = 500 * time.Millisecond
	}
	return &Hopper{
		iface:    interfaceName,
		channels: channels,
		dwell:    dwell,
		state:    models.ChannelState{Hopping: true, Channel: channels[0]},
	}
}

// NewLocked returns a hopper pinned to one channel.
func NewLocked(interfaceName string, channel int) *Hopper {
	return &Hopper{
		iface: interfaceName,
		state: models.ChannelState{Hopping: false, Channel: channel},
	}
}

// State reports the current channel and mode.
func (h *Hopper) State() models.ChannelState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Run tunes the radio until the context ends. In locked mode it sets the
// channel once; in hopping mode it cycles on the dwell interval. Tuning
// failures are logged and skipped, never fatal.
func (h *Hopper) Run(ctx context.Context) {
	h.mu.Lock()
	state := h.state
	h.mu.Unlock()

	if !state.Hopping {
		if err := setChannel(ctx, h.iface, state.Channel); err != nil {
			log.Printf("failed to set channel %d: %v", state.Channel, err)
		}
		return
	}

	ticker := time.NewTicker(h.dwell)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ch := h.channels[i%len(h.channels)]
			i++
			if err := setChannel(ctx, h.iface, ch); err != nil {
				log.Printf("failed to set channel %d: %v", ch, err)
				continue
			}
			h.mu.Lock()
			h.state.Channel = ch
			h.mu.Unlock()
		}
	}
}

func setChannel(ctx context.Context, interfaceName string, channel int) error {
	cmd := exec.CommandContext(ctx, "iw", "dev", interfaceName, "set", "channel", strconv.Itoa(channel))
	return cmd.Run()
}
