package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripRadiotap(t *testing.T) {
	s := &Source{radiotap: true}

	// 8-byte radiotap header (version 0, length 8 little endian) followed by
	// the start of an 802.11 frame.
	data := []byte{0x00, 0x00, 0x08, 0x00, 0, 0, 0, 0, 0x80, 0x00, 0xaa}
	frame := s.stripRadiotap(data)
	assert.Equal(t, []byte{0x80, 0x00, 0xaa}, frame)
}

func TestStripRadiotapMalformed(t *testing.T) {
	s := &Source{radiotap: true}

	assert.Nil(t, s.stripRadiotap([]byte{0x00, 0x00}), "too short for a header")
	// Declared header length past the end of the buffer.
	assert.Nil(t, s.stripRadiotap([]byte{0x00, 0x00, 0xff, 0x00, 1, 2}))
}

func TestStripRadiotapPassthrough(t *testing.T) {
	s := &Source{radiotap: false}
	data := []byte{0x80, 0x00, 0xaa}
	assert.Equal(t, data, s.stripRadiotap(data))
}
