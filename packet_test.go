//
// Copyright (c) 2023 Matthew Penner
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package streamdeck

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrightnessPacket(t *testing.T) {
	for _, typ := range []DeviceType{XL, OriginalV2} {
		pkt := brightnessPacket(typ, 42)
		require.Len(t, pkt, 32, typ.Name())
		assert.Equal(t, []byte{0x03, 0x08, 42}, pkt[:3])
		for _, b := range pkt[3:] {
			assert.Zero(t, b)
		}
	}

	for _, typ := range []DeviceType{Original, Mini} {
		pkt := brightnessPacket(typ, 42)
		require.Len(t, pkt, 17, typ.Name())
		assert.Equal(t, []byte{0x05, 0x55, 0xaa, 0xd1, 0x01, 42}, pkt[:6])
		for _, b := range pkt[6:] {
			assert.Zero(t, b)
		}
	}
}

// The level byte is embedded as-is, even outside 0..100.
func TestBrightnessPacketPassThrough(t *testing.T) {
	assert.Equal(t, byte(255), brightnessPacket(XL, 255)[2])
	assert.Equal(t, byte(255), brightnessPacket(Mini, 255)[5])
}

func TestResetPacket(t *testing.T) {
	for _, typ := range []DeviceType{XL, OriginalV2} {
		pkt := resetPacket(typ)
		require.Len(t, pkt, 32, typ.Name())
		assert.Equal(t, []byte{0x03, 0x02}, pkt[:2])
		for _, b := range pkt[2:] {
			assert.Zero(t, b)
		}
	}

	for _, typ := range []DeviceType{Original, Mini} {
		pkt := resetPacket(typ)
		require.Len(t, pkt, 17, typ.Name())
		assert.Equal(t, []byte{0x0b, 0x63}, pkt[:2])
		for _, b := range pkt[2:] {
			assert.Zero(t, b)
		}
	}
}

func TestResetKeyStreamPacket(t *testing.T) {
	for _, typ := range DeviceTypes() {
		pkt := resetKeyStreamPacket(typ)
		require.Len(t, pkt, typ.PacketSize(), typ.Name())
		assert.Equal(t, byte(0x02), pkt[0])
		for _, b := range pkt[1:] {
			assert.Zero(t, b)
		}
	}
}

func TestImageHeaderLayoutA(t *testing.T) {
	dst := make([]byte, layoutAHeaderLen)
	n := putImageHeader(dst, XL, 512, 7, 3, false)
	require.Equal(t, layoutAHeaderLen, n)
	assert.Equal(t, []byte{0x02, 0x07, 7, 0, 0x00, 0x02, 0x03, 0x00}, dst)

	n = putImageHeader(dst, XL, 100, 31, 0, true)
	require.Equal(t, layoutAHeaderLen, n)
	assert.Equal(t, []byte{0x02, 0x07, 31, 1, 100, 0x00, 0x00, 0x00}, dst)
}

// Page number and payload length must decode back to the exact values that
// went in, across the full range the devices can see.
func TestImageHeaderLayoutARoundTrip(t *testing.T) {
	dst := make([]byte, layoutAHeaderLen)
	for page := 0; page <= 300; page++ {
		for _, payloadLen := range []int{0, 1, 255, 256, 512, 1015, 1016} {
			putImageHeader(dst, OriginalV2, payloadLen, 3, page, false)
			assert.Equal(t, uint16(payloadLen), binary.LittleEndian.Uint16(dst[4:]))
			assert.Equal(t, uint16(page), binary.LittleEndian.Uint16(dst[6:]))
		}
	}
}

func TestImageHeaderLayoutB(t *testing.T) {
	dst := make([]byte, layoutBHeaderLen)
	n := putImageHeader(dst, Mini, 7803, 2, 0, false)
	require.Equal(t, layoutBHeaderLen, n)
	assert.Equal(t, []byte{0x02, 0x01, 1, 0x00, 0, 3}, dst[:6])
	for _, b := range dst[6:] {
		assert.Zero(t, b)
	}
}

// Layout B devices flag the final page by comparing the raw page number
// against 1, not by checking whether this really is the last page. Observed
// firmware behavior, kept bit-exact.
func TestImageHeaderLayoutBFinalFlagQuirk(t *testing.T) {
	dst := make([]byte, layoutBHeaderLen)
	for page := 0; page <= 4; page++ {
		// Deliberately claim the packet is not final.
		putImageHeader(dst, Original, 7803, 0, page, false)
		assert.Equal(t, byte(page+1), dst[2])
		if page == 1 {
			assert.Equal(t, byte(1), dst[4], "page %d", page)
		} else {
			assert.Equal(t, byte(0), dst[4], "page %d", page)
		}
	}

	// The actual final-page argument never influences the flag.
	putImageHeader(dst, Original, 100, 0, 3, true)
	assert.Equal(t, byte(0), dst[4])
}
