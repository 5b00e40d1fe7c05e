package capture

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// Source is a monitor-mode capture handle that feeds raw 802.11 management
// frames to an observer callback. It can be paused around active scans;
// frames arriving while paused are dropped.
type Source struct {
	handle   *pcap.Handle
	iface    string
	radiotap bool
	paused   atomic.Bool
}

// Open attaches to the interface in promiscuous mode and restricts capture to
// management frames. The interface must already be in monitor mode.
func Open(interfaceName string) (*Source, error) {
	handle, err := pcap.OpenLive(interfaceName, 65536, true, pcap.BlockForever)
	if err != nil {
		return nil, fmt.Errorf("could not open handle: %v", err)
	}

	if handle.LinkType() != layers.LinkTypeIEEE80211Radio {
		if err := handle.SetLinkType(layers.LinkTypeIEEE80211Radio); err != nil {
			handle.Close()
			return nil, fmt.Errorf("interface is not in monitor mode: %v", err)
		}
	}

	if err := handle.SetBPFFilter("type mgt"); err != nil {
		handle.Close()
		return nil, fmt.Errorf("could not set BPF filter: %v", err)
	}

	return &Source{
		handle:   handle,
		iface:    interfaceName,
		radiotap: true,
	}, nil
}

// Pause suspends delivery to the observer. Capture itself keeps draining the
// handle so the kernel buffer cannot back up during an active scan.
func (s *Source) Pause() { s.paused.Store(true) }

// Resume re-enables delivery.
func (s *Source) Resume() { s.paused.Store(false) }

func (s *Source) Close() { s.handle.Close() }

// Run pumps frames into observe until the context is canceled or the handle
// is closed. observe receives the raw 802.11 frame with any radiotap header
// already stripped.
func (s *Source) Run(ctx context.Context, observe func([]byte)) {
	src := gopacket.NewPacketSource(s.handle, s.handle.LinkType())
	in := src.Packets()

	for {
		select {
		case <-ctx.Done():
			return
		case packet, ok := <-in:
			if !ok {
				return
			}
			if s.paused.Load() {
				continue
			}
			frame := s.stripRadiotap(packet.Data())
			if frame != nil {
				observe(frame)
			}
		}
	}
}

// stripRadiotap removes the variable-length radiotap header, whose total
// length sits in bytes 2-3 (little endian).
func (s *Source) stripRadiotap(data []byte) []byte {
	if !s.radiotap {
		return data
	}
	if len(data) < 4 {
		return nil
	}
	hlen := int(binary.LittleEndian.Uint16(data[2:4]))
	if hlen > len(data) {
		return nil
	}
	return data[hlen:]
}
