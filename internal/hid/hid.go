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

// Package hid provides raw USB HID access for Stream Deck devices, backed by
// the hidapi library.
package hid

import (
	"github.com/sstallion/go-hid"
)

// Info identifies one enumerated HID device.
type Info struct {
	VendorID  uint16
	ProductID uint16
	Serial    string
	Path      string
}

// Transport wraps the process-wide hidapi state.
type Transport struct{}

// New initializes hidapi and returns a Transport over it.
func New() (*Transport, error) {
	if err := hid.Init(); err != nil {
		return nil, err
	}
	return &Transport{}, nil
}

// Close releases the hidapi state. Open connections must be closed first.
func (*Transport) Close() error {
	return hid.Exit()
}

// Enumerate lists all connected HID devices.
func (*Transport) Enumerate() ([]Info, error) {
	var infos []Info
	err := hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		infos = append(infos, Info{
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
			Serial:    info.SerialNbr,
			Path:      info.Path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Open opens the first device matching the vendor and product id pair.
func (*Transport) Open(vendorID, productID uint16) (*Conn, error) {
	dev, err := hid.OpenFirst(vendorID, productID)
	if err != nil {
		return nil, err
	}
	return &Conn{dev: dev}, nil
}

// OpenPath opens the device at a platform-specific path returned during
// enumeration.
func (*Transport) OpenPath(path string) (*Conn, error) {
	dev, err := hid.OpenPath(path)
	if err != nil {
		return nil, err
	}
	return &Conn{dev: dev}, nil
}

// Conn is one opened HID connection.
type Conn struct {
	dev *hid.Device
}

// Read performs a blocking read of an input report into p.
func (c *Conn) Read(p []byte) (int, error) {
	return c.dev.Read(p)
}

// Write writes an output report.
func (c *Conn) Write(p []byte) (int, error) {
	return c.dev.Write(p)
}

// SendFeatureReport sends a feature report.
func (c *Conn) SendFeatureReport(p []byte) (int, error) {
	return c.dev.SendFeatureReport(p)
}

// GetFeatureReport reads a feature report. The report id must be set in p[0].
func (c *Conn) GetFeatureReport(p []byte) (int, error) {
	return c.dev.GetFeatureReport(p)
}

// Close closes the connection, unblocking any pending Read.
func (c *Conn) Close() error {
	return c.dev.Close()
}
