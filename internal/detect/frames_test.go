package detect

import "wifiwarden/internal/dot11"

// Synthetic frame builders shared by the detection tests.

func mgmtFrame(subtype uint8, src dot11.Addr) []byte {
	frame := make([]byte, dot11.MinFrameLen)
	frame[0] = subtype << 4
	copy(frame[10:], src[:])
	return frame
}

// beaconFrame appends raw information-element bytes after the 36-byte fixed
// portion of a beacon frame.
func beaconFrame(src dot11.Addr, tags ...byte) []byte {
	frame := make([]byte, 36)
	frame[0] = dot11.SubtypeBeacon << 4
	copy(frame[10:], src[:])
	return append(frame, tags...)
}

func addr(last byte) dot11.Addr {
	return dot11.Addr{0xa8, 0x11, 0x22, 0x33, 0x44, last}
}

func randomizedAddr(last byte) dot11.Addr {
	return dot11.Addr{0xda, 0x11, 0x22, 0x33, 0x44, last}
}
