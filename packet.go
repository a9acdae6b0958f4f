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

import "encoding/binary"

// headerLayout selects one of the two image packet header families used across
// Stream Deck models.
type headerLayout uint8

const (
	// layoutA is the 8-byte header used by the newer, large-buffer models.
	layoutA headerLayout = iota
	// layoutB is the 16-byte header used by the older, small-header models.
	layoutB
)

const (
	layoutAHeaderLen = 8
	layoutBHeaderLen = 16

	// imageReportID is the HID report id shared by both image header layouts.
	imageReportID = 0x02

	imageCommandA = 0x07
	imageCommandB = 0x01
)

// headerLen returns the image packet header length in bytes.
func (l headerLayout) headerLen() int {
	if l == layoutA {
		return layoutAHeaderLen
	}
	return layoutBHeaderLen
}

// putImageHeader writes the image packet header for the Device Type into dst
// and returns the header length. final reports whether this packet carries the
// last of the encoded image bytes.
//
// Layout A: report id, command, button, final flag, then payload length and
// page number as little-endian uint16s.
//
// Layout B: report id, command, page+1, 0x00, final flag, button+1, then ten
// zero bytes. The firmware of this family flags the final page by comparing
// the raw page number against 1, regardless of how many bytes remain. That
// matches the reverse-engineered captures; it has not been proven wrong on
// hardware, so it is reproduced as-is.
func putImageHeader(dst []byte, t DeviceType, payloadLen, button, page int, final bool) int {
	switch t.headerLayout() {
	case layoutA:
		dst[0] = imageReportID
		dst[1] = imageCommandA
		dst[2] = byte(button)
		dst[3] = boolByte(final)
		binary.LittleEndian.PutUint16(dst[4:], uint16(payloadLen))
		binary.LittleEndian.PutUint16(dst[6:], uint16(page))
		return layoutAHeaderLen
	default:
		dst[0] = imageReportID
		dst[1] = imageCommandB
		dst[2] = byte(page + 1)
		dst[3] = 0x00
		dst[4] = boolByte(page == 1)
		dst[5] = byte(button + 1)
		for i := 6; i < layoutBHeaderLen; i++ {
			dst[i] = 0x00
		}
		return layoutBHeaderLen
	}
}

// brightnessPacket returns the feature report that sets the global display
// brightness. The level byte is embedded as-is; the StreamDeck facade clamps
// to 0..100 before calling down here.
func brightnessPacket(t DeviceType, level byte) []byte {
	if t.headerLayout() == layoutA {
		b := make([]byte, 32)
		b[0] = 0x03
		b[1] = 0x08
		b[2] = level
		return b
	}
	b := make([]byte, 17)
	b[0] = 0x05
	b[1] = 0x55
	b[2] = 0xaa
	b[3] = 0xd1
	b[4] = 0x01
	b[5] = level
	return b
}

// resetPacket returns the feature report that resets the device to its
// standby state.
func resetPacket(t DeviceType) []byte {
	if t.headerLayout() == layoutA {
		b := make([]byte, 32)
		b[0] = 0x03
		b[1] = 0x02
		return b
	}
	b := make([]byte, 17)
	b[0] = 0x0b
	b[1] = 0x63
	return b
}

// resetKeyStreamPacket returns the packet that aborts any in-flight image
// transfer on the device. Sent before a reset so a previously interrupted
// partial upload cannot corrupt images sent afterwards.
func resetKeyStreamPacket(t DeviceType) []byte {
	b := make([]byte, t.PacketSize())
	b[0] = 0x02
	return b
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
