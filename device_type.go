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

import "image"

// elgatoVendorID is Elgato's Vendor ID for their USB devices.
const elgatoVendorID = 0x0fd9

// DeviceType represents a model of Elgato Stream Deck. The set of models is
// closed; every protocol parameter is derived from the DeviceType alone.
type DeviceType uint8

const (
	// XL is the 32-button Stream Deck XL.
	XL DeviceType = iota
	// OriginalV2 is the second hardware revision of the 15-button Stream Deck.
	OriginalV2
	// Original is the first hardware revision of the 15-button Stream Deck.
	Original
	// Mini is the 6-button Stream Deck Mini.
	Mini
)

// DeviceTypes returns all known Stream Deck models.
func DeviceTypes() []DeviceType {
	return []DeviceType{XL, OriginalV2, Original, Mini}
}

// Lookup returns the DeviceType matching a USB vendor and product id pair, and
// whether the pair matched a known model at all.
func Lookup(vendorID, productID uint16) (DeviceType, bool) {
	for _, t := range DeviceTypes() {
		if t.VendorID() == vendorID && t.ProductID() == productID {
			return t, true
		}
	}
	return 0, false
}

// Name returns the human-readable name of the Device Type.
func (t DeviceType) Name() string {
	switch t {
	case XL:
		return "Stream Deck XL"
	case OriginalV2:
		return "Stream Deck (original v2)"
	case Original:
		return "Stream Deck original"
	case Mini:
		return "Stream Deck Mini"
	}
	return "unknown"
}

// String implements fmt.Stringer.
func (t DeviceType) String() string {
	return t.Name()
}

// VendorID returns the USB Vendor ID of the Device Type.
func (t DeviceType) VendorID() uint16 {
	return elgatoVendorID
}

// ProductID returns the USB Product ID of the Device Type.
func (t DeviceType) ProductID() uint16 {
	switch t {
	case XL:
		return 0x6c
	case OriginalV2:
		return 0x6d
	case Original:
		return 0x60
	case Mini:
		return 0x63
	}
	return 0
}

// Rows returns the number of rows of buttons on the Device Type.
func (t DeviceType) Rows() int {
	switch t {
	case XL:
		return 4
	case OriginalV2, Original:
		return 3
	case Mini:
		return 2
	}
	return 0
}

// Cols returns the number of columns of buttons on the Device Type.
func (t DeviceType) Cols() int {
	switch t {
	case XL:
		return 8
	case OriginalV2, Original:
		return 5
	case Mini:
		return 3
	}
	return 0
}

// ButtonCount returns the total number of buttons on the Device Type.
func (t DeviceType) ButtonCount() int {
	return t.Rows() * t.Cols()
}

// ImageFormat returns the container format used to encode button images for
// the Device Type.
func (t DeviceType) ImageFormat() ImageFormat {
	switch t {
	case XL, OriginalV2:
		return JPEG
	}
	return BMP
}

// ImageSize returns the exact pixel dimensions of a button image on the
// Device Type.
func (t DeviceType) ImageSize() image.Point {
	switch t {
	case XL:
		return image.Point{X: 96, Y: 96}
	case OriginalV2, Original:
		return image.Point{X: 72, Y: 72}
	case Mini:
		return image.Point{X: 80, Y: 80}
	}
	return image.Point{}
}

// ImageTransform returns the geometric transform that must be applied to a
// button image before encoding. The displays are mounted in different
// orientations per model.
func (t DeviceType) ImageTransform() ImageTransform {
	if t == Mini {
		return TransformRotate270
	}
	return TransformRotate180
}

// PacketSize returns the fixed size in bytes of every image packet written to
// the Device Type.
func (t DeviceType) PacketSize() int {
	if t.headerLayout() == layoutA {
		return 1024
	}
	return 8191
}

// MaxPayloadSize returns the maximum number of encoded image bytes carried by
// one packet. For layout A this is size-derived; for layout B the firmware
// expects a fixed constant smaller than packet size minus header size.
func (t DeviceType) MaxPayloadSize() int {
	if t.headerLayout() == layoutA {
		return t.PacketSize() - layoutAHeaderLen
	}
	return 7803
}

// ReadOffset returns the byte offset within an input report at which the
// per-button status bytes begin.
func (t DeviceType) ReadOffset() int {
	if t.headerLayout() == layoutA {
		return 4
	}
	return 1
}

// headerLayout returns the image packet header layout family of the Device
// Type.
func (t DeviceType) headerLayout() headerLayout {
	switch t {
	case XL, OriginalV2:
		return layoutA
	}
	return layoutB
}
