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
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/gift"
	"golang.org/x/image/bmp"
)

// ImageFormat represents an Image Format used by a Stream Deck Device.
type ImageFormat string

const (
	// BMP is a BMP ImageFormat.
	BMP ImageFormat = "BMP"
	// JPEG is a JPEG ImageFormat.
	JPEG ImageFormat = "JPEG"
)

// Encode encodes an image using a ImageFormat. JPEG images are encoded at
// maximum quality, the devices apply no further processing to them.
func (f ImageFormat) Encode(img image.Image) ([]byte, error) {
	var b bytes.Buffer
	var err error
	switch f {
	case BMP:
		err = bmp.Encode(&b, flatten(img))
	case JPEG:
		err = jpeg.Encode(&b, img, &jpeg.Options{Quality: 100})
	}
	if err != nil {
		return nil, &ImageEncodingError{Err: err}
	}
	return b.Bytes(), nil
}

// flatten composites an image onto an opaque black background. The devices
// expect 24-bit bitmaps; bmp.Encode would emit a 32-bit one for a non-opaque
// input.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Over)
	return dst
}

// Blank creates and encodes a blank image used to represent an empty button
// on a Stream Deck.
func (f ImageFormat) Blank(x, y int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, x, y))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{X: 0, Y: 0}, draw.Src)
	return f.Encode(img)
}

// ImageTransform is a geometric transform applied to a button image before it
// is encoded for a Device.
type ImageTransform uint8

const (
	// TransformNone leaves the image untouched.
	TransformNone ImageTransform = iota
	// TransformRotate180 rotates an image 180 degrees.
	TransformRotate180
	// TransformRotate270 rotates an image 270 degrees counter-clockwise.
	TransformRotate270
)

// Apply applies the transform to an image.
func (t ImageTransform) Apply(img image.Image) image.Image {
	var f gift.Filter
	switch t {
	case TransformRotate180:
		f = gift.Rotate180()
	case TransformRotate270:
		f = gift.Rotate270()
	default:
		return img
	}
	g := gift.New(f)
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// ImagePackets validates, transforms, encodes and chunks an image into the
// ordered list of packets that renders it on the given button. The image must
// already be exactly the button image size of the Device Type; use
// StreamDeck#ProcessImage to resize arbitrary images first.
//
// Packets must be written to the device in the returned order, the device
// reassembles the image from the page sequence.
func ImagePackets(t DeviceType, img image.Image, button int) ([][]byte, error) {
	size := t.ImageSize()
	if b := img.Bounds(); b.Dx() != size.X || b.Dy() != size.Y {
		return nil, &DimensionMismatchError{Width: size.X, Height: size.Y}
	}

	encoded, err := t.ImageFormat().Encode(t.ImageTransform().Apply(img))
	if err != nil {
		return nil, err
	}
	return packetize(t, encoded, button), nil
}

// packetize chunks an encoded image into fixed-size packets. A zero-length
// stream produces zero packets.
func packetize(t DeviceType, encoded []byte, button int) [][]byte {
	var (
		maxPayload = t.MaxPayloadSize()
		remaining  = len(encoded)
		page       int
	)

	packets := make([][]byte, 0, (remaining+maxPayload-1)/maxPayload)
	for remaining > 0 {
		payloadLen := min(maxPayload, remaining)

		// Header, then payload, then zero padding up to the fixed packet
		// size. The trailing zeroes are part of the wire format.
		pkt := make([]byte, t.PacketSize())
		n := putImageHeader(pkt, t, payloadLen, button, page, payloadLen == remaining)

		sent := len(encoded) - remaining
		copy(pkt[n:], encoded[sent:sent+payloadLen])
		packets = append(packets, pkt)

		remaining -= payloadLen
		page++
	}
	return packets
}

// resizer returns the GIFT instance used to fit arbitrary images to the
// button image size of the Device Type.
func (t DeviceType) resizer() *gift.GIFT {
	size := t.ImageSize()
	return gift.New(
		gift.Resize(
			size.X,
			size.Y,
			gift.LanczosResampling,
		),
	)
}

// min is the same as math#Min except that it uses int as the type.
func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}
