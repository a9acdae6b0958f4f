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
	"fmt"
	"image"
)

// Device represents one opened Stream Deck. A Device performs every operation
// as a single synchronous blocking call against its connection and provides
// no internal locking; see Conn.
type Device struct {
	typ  DeviceType
	conn Conn

	// blankImage is the pre-encoded image used when a button is cleared.
	blankImage []byte
}

// Open enumerates devices on the transport and opens the first one matching a
// known Stream Deck model. ErrNoDeviceFound is returned when nothing matches.
func Open(t Transport) (*Device, error) {
	infos, err := t.Enumerate()
	if err != nil {
		return nil, &TransportError{Op: "enumerate", Err: err}
	}
	for _, info := range infos {
		typ, ok := Lookup(info.VendorID, info.ProductID)
		if !ok {
			continue
		}
		conn, err := t.Open(info.VendorID, info.ProductID)
		if err != nil {
			return nil, &TransportError{Op: "open", Err: err}
		}
		return NewDevice(typ, conn)
	}
	return nil, ErrNoDeviceFound
}

// OpenDeviceInfo opens the device described by info, which usually comes from
// Transport#Enumerate. ErrUnrecognizedDevice is returned when the vendor and
// product ids do not match any known model.
func OpenDeviceInfo(t Transport, info DeviceInfo) (*Device, error) {
	typ, ok := Lookup(info.VendorID, info.ProductID)
	if !ok {
		return nil, ErrUnrecognizedDevice
	}
	conn, err := t.Open(info.VendorID, info.ProductID)
	if err != nil {
		return nil, &TransportError{Op: "open", Err: err}
	}
	return NewDevice(typ, conn)
}

// NewDevice wraps an already-open connection to a device of a known model.
// Useful with custom transports or test doubles.
func NewDevice(typ DeviceType, conn Conn) (*Device, error) {
	size := typ.ImageSize()
	blankImage, err := typ.ImageFormat().Blank(size.X, size.Y)
	if err != nil {
		return nil, err
	}
	return &Device{
		typ:        typ,
		conn:       conn,
		blankImage: blankImage,
	}, nil
}

// Type returns the model of the Device.
func (d *Device) Type() DeviceType {
	return d.typ
}

// Close closes the underlying connection. A listener blocked in a read will
// observe the close as a read error.
func (d *Device) Close() error {
	return d.conn.Close()
}

// Reset restores the Device to its standby state, clearing all button images.
// The in-flight image stream is aborted first so a previously interrupted
// upload cannot corrupt later ones.
func (d *Device) Reset() error {
	if _, err := d.conn.Write(resetKeyStreamPacket(d.typ)); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	if _, err := d.conn.SendFeatureReport(resetPacket(d.typ)); err != nil {
		return &TransportError{Op: "send feature report", Err: err}
	}
	return nil
}

// SetBrightness sets the display brightness of all buttons on the Device.
// The level is embedded in the packet as-is; the device expects 0 to 100.
// StreamDeck#SetBrightness clamps, this method does not.
func (d *Device) SetBrightness(level int) error {
	if _, err := d.conn.SendFeatureReport(brightnessPacket(d.typ, byte(level))); err != nil {
		return &TransportError{Op: "send feature report", Err: err}
	}
	return nil
}

// SetButton renders an image on a specific button. The image must be exactly
// the Device's button image size. A nil image clears the button.
func (d *Device) SetButton(index int, img image.Image) error {
	if img == nil {
		return d.SetButtonRaw(index, d.blankImage)
	}
	if err := d.checkIndex(index); err != nil {
		return err
	}
	packets, err := ImagePackets(d.typ, img, index)
	if err != nil {
		return err
	}
	return d.writePackets(packets)
}

// SetButtonRaw renders a pre-encoded image on a specific button. The bytes
// must be in the Device's image format with the model transform already
// applied, as produced by StreamDeck#ProcessImage.
func (d *Device) SetButtonRaw(index int, encoded []byte) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	return d.writePackets(packetize(d.typ, encoded, index))
}

// Clear clears all buttons on the Device.
func (d *Device) Clear() error {
	for i := 0; i < d.typ.ButtonCount(); i++ {
		if err := d.SetButtonRaw(i, d.blankImage); err != nil {
			return err
		}
	}
	return nil
}

// Listen blocks reading input reports and invokes onEvent once per button
// state transition, in increasing button index order. It returns a
// *TransportError as soon as a read fails; restart it from scratch to keep
// listening. Most users want the StreamDeck facade instead, which runs this
// on a goroutine.
func (d *Device) Listen(onEvent func(ButtonEvent)) error {
	return listen(d.typ, d.conn, onEvent)
}

// writePackets writes image packets in page order. Order is a hard
// correctness requirement, the device reassembles the image by arrival order.
func (d *Device) writePackets(packets [][]byte) error {
	for _, pkt := range packets {
		n, err := d.conn.Write(pkt)
		if err != nil {
			return &TransportError{Op: "write", Err: err}
		}
		if n < len(pkt) {
			return &ShortWriteError{Wrote: n, Expected: len(pkt)}
		}
	}
	return nil
}

func (d *Device) checkIndex(index int) error {
	if index < 0 || index >= d.typ.ButtonCount() {
		return fmt.Errorf("streamdeck: invalid button index: %d", index)
	}
	return nil
}
