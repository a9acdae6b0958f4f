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
	"github.com/streamdeckkit/streamdeck/internal/hid"
)

// DeviceInfo identifies one enumerated USB HID device.
type DeviceInfo struct {
	VendorID  uint16
	ProductID uint16
	Serial    string
}

// Transport is the capability used to discover and open deck devices. The
// production implementation is returned by HID; tests provide in-memory
// doubles.
type Transport interface {
	// Enumerate lists the connected HID devices. The listing may include
	// devices that are not Stream Decks.
	Enumerate() ([]DeviceInfo, error)

	// Open opens a connection to the first device matching the vendor and
	// product id pair.
	Open(vendorID, productID uint16) (Conn, error)
}

// Conn is one opened HID connection. All methods may block until the
// underlying transport completes or errors. Conn provides no internal
// synchronization; callers running a listener concurrently with writes must
// coordinate access themselves.
type Conn interface {
	// Read performs a blocking read of an input report into p.
	Read(p []byte) (int, error)

	// Write writes an output report, returning the number of bytes the
	// transport accepted.
	Write(p []byte) (int, error)

	// SendFeatureReport sends a control-channel feature report.
	SendFeatureReport(p []byte) (int, error)

	// Close closes the connection. Closing unblocks a pending Read with an
	// error on transports that support it.
	Close() error
}

// HID returns the production Transport backed by the platform hidapi library.
func HID() (Transport, error) {
	t, err := hid.New()
	if err != nil {
		return nil, &TransportError{Op: "init", Err: err}
	}
	return &hidTransport{t: t}, nil
}

// hidTransport adapts internal/hid to the Transport interface.
type hidTransport struct {
	t *hid.Transport
}

var _ Transport = (*hidTransport)(nil)

func (h *hidTransport) Enumerate() ([]DeviceInfo, error) {
	infos, err := h.t.Enumerate()
	if err != nil {
		return nil, err
	}
	out := make([]DeviceInfo, len(infos))
	for i, info := range infos {
		out[i] = DeviceInfo{
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
			Serial:    info.Serial,
		}
	}
	return out, nil
}

func (h *hidTransport) Open(vendorID, productID uint16) (Conn, error) {
	return h.t.Open(vendorID, productID)
}
