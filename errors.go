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
	"errors"
	"fmt"
)

var (
	// ErrNoDeviceFound is returned when no connected device matches a known
	// Stream Deck model.
	ErrNoDeviceFound = errors.New("streamdeck: no device found")

	// ErrUnrecognizedDevice is returned when a vendor and product id pair does
	// not match any known Stream Deck model.
	ErrUnrecognizedDevice = errors.New("streamdeck: unrecognized device")
)

// DimensionMismatchError is returned when an image does not exactly match the
// button image size required by a device.
type DimensionMismatchError struct {
	// Width and Height are the dimensions the device expects.
	Width  int
	Height int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("streamdeck: image must be exactly %dx%d", e.Width, e.Height)
}

// ImageEncodingError is returned when an image could not be encoded into the
// container format required by a device.
type ImageEncodingError struct {
	Err error
}

func (e *ImageEncodingError) Error() string {
	return "streamdeck: failed to encode image: " + e.Err.Error()
}

func (e *ImageEncodingError) Unwrap() error {
	return e.Err
}

// TransportError wraps an error reported by the underlying HID transport.
type TransportError struct {
	// Op is the transport operation that failed.
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "streamdeck: transport " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ShortWriteError is returned when the transport reports fewer bytes written
// than were requested. A short write leaves an image upload partially sent;
// it is not retried or rolled back.
type ShortWriteError struct {
	Wrote    int
	Expected int
}

func (e *ShortWriteError) Error() string {
	return fmt.Sprintf("streamdeck: short write: wrote %d of %d bytes", e.Wrote, e.Expected)
}
