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

// Package button provides button types that can be rendered on a Stream Deck
// through a view.
package button

import (
	"image"

	"github.com/streamdeckkit/streamdeck"
)

// Button represents a single button image.
type Button interface {
	// Image returns the pre-processed image bytes for the button, ready for
	// Device#SetButtonRaw. A nil return clears the button.
	Image() []byte
}

// Static is a Button displaying a fixed image.
type Static struct {
	image []byte
}

var _ Button = (*Static)(nil)

// NewStatic returns a Button displaying a fixed image, processed ahead of
// time for the given StreamDeck.
func NewStatic(sd *streamdeck.StreamDeck, img image.Image) (*Static, error) {
	v, err := sd.ProcessImage(img)
	if err != nil {
		return nil, err
	}
	return &Static{image: v}, nil
}

// Image satisfies the Button interface.
func (s *Static) Image() []byte {
	return s.image
}
