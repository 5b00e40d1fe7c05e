package dot11

import "fmt"

// MinFrameLen is the shortest buffer we treat as a frame. Anything shorter is
// ignored without side effects: the wireless medium routinely delivers
// truncated garbage.
const MinFrameLen = 28

// Management frame subtypes (IEEE 802.11 frame control field).
const (
	TypeManagement = 0

	SubtypeProbeRequest     = 4
	SubtypeBeacon           = 8
	SubtypeDisassociation   = 10
	SubtypeDeauthentication = 12
)

// 802.11 information element IDs we care about.
const ieSSID = 0

const (
	// Address 2 (transmitter) of the management frame header.
	srcAddrOffset = 10
	// Beacon frame body: 24-byte header, then 12 bytes of fixed parameters
	// (timestamp, beacon interval, capability info) before the tagged region.
	ieOffset = 36
)

// Addr is a 6-byte hardware address. Value type so it can key fixed-size
// tracking arrays without allocation.
type Addr [6]byte

func (a Addr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}

// LocallyAdministered reports whether the locally-administered bit is set in
// the first octet, the conventional marker for randomized addresses.
func (a Addr) LocallyAdministered() bool {
	return a[0]&0x02 != 0
}

// FrameType returns the type and subtype bits of the frame control field.
// Callers must have checked the frame against MinFrameLen.
func FrameType(frame []byte) (ftype, subtype uint8) {
	fc := frame[0]
	return (fc >> 2) & 0x03, fc >> 4
}

// SourceAddress extracts the transmitter address at its fixed header offset.
// Callers must have checked the frame against MinFrameLen.
func SourceAddress(frame []byte) Addr {
	var a Addr
	copy(a[:], frame[srcAddrOffset:srcAddrOffset+6])
	return a
}

// cursor walks a tagged information-element region without ever reading past
// the end of the buffer. It fails closed: a declared element length that
// overruns the buffer ends the walk.
type cursor struct {
	buf []byte
	off int
}

// next returns the current element's ID and declared length and advances past
// it. ok is false once the region is exhausted or an element overruns the
// buffer.
func (c *cursor) next() (id byte, length int, ok bool) {
	if c.off+2 > len(c.buf) {
		return 0, 0, false
	}
	id = c.buf[c.off]
	length = int(c.buf[c.off+1])
	if c.off+2+length > len(c.buf) {
		return 0, 0, false
	}
	c.off += 2 + length
	return id, length, true
}

// SSIDLength scans a beacon frame's tagged region for the first SSID element
// and returns its declared length. found is false if the element is absent or
// the region is malformed; malformed input is not an error, the frame is
// simply not inspected further.
func SSIDLength(frame []byte) (length int, found bool) {
	c := cursor{buf: frame, off: ieOffset}
	for {
		id, n, ok := c.next()
		if !ok {
			return 0, false
		}
		if id == ieSSID {
			return n, true
		}
	}
}
