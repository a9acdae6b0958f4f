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
	"context"
	"image"
	"sync"

	"go.uber.org/zap"
)

const (
	// BrightnessMin is the lowest brightness that can be set on a StreamDeck.
	BrightnessMin = 0
	// BrightnessFull is the highest brightness that can be set on a StreamDeck.
	BrightnessFull = 100
)

// View renders a set of buttons onto a StreamDeck.
type View interface {
	// Apply renders the view.
	Apply(context.Context) error
}

// StreamDeck wraps a Device with a user-friendly event and rendering layer:
// a background listener goroutine, a per-transition callback, and brightness
// book-keeping.
type StreamDeck struct {
	// device is the underlying deck Device.
	device *Device
	log    *zap.Logger

	// brightness is the StreamDeck's current brightness.
	brightness int

	// cancel is used to stop the listener and callback goroutines.
	cancel context.CancelFunc
	// ch is the internal channel used to move button events between them.
	ch chan ButtonEvent

	// handlerMx is a mutex used to protect the handler field.
	handlerMx sync.Mutex
	// handler is the callback invoked once per button state transition.
	handler func(context.Context, ButtonEvent) error
}

// Option configures a StreamDeck.
type Option func(*StreamDeck)

// WithLogger sets the logger used by the StreamDeck. The default is a no-op
// logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *StreamDeck) {
		s.log = log
	}
}

// New opens the first recognized Stream Deck on the transport, resets it, and
// provides a user-friendly wrapper that makes interacting with it easier and
// more convenient.
func New(ctx context.Context, t Transport, opts ...Option) (*StreamDeck, error) {
	device, err := Open(t)
	if err != nil {
		return nil, err
	}
	if err := device.Reset(); err != nil {
		_ = device.Close()
		return nil, err
	}
	return NewFromDevice(ctx, device, opts...)
}

// NewFromDevice creates a new StreamDeck from an existing Device, most users
// should use the New function instead.
//
// This function is useful when connecting to a specific one of multiple
// devices, or when using a custom transport.
func NewFromDevice(ctx context.Context, device *Device, opts ...Option) (*StreamDeck, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &StreamDeck{
		device:     device,
		log:        zap.NewNop(),
		brightness: BrightnessFull,

		cancel: cancel,
		ch:     make(chan ButtonEvent),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.buttonListener(ctx)
	go s.buttonCallbackListener(ctx)

	s.log.Info("opened stream deck",
		zap.String("model", device.Type().Name()),
		zap.Int("buttons", device.Type().ButtonCount()),
	)
	return s, nil
}

// Close stops the event listeners and closes the underlying connection to the
// Stream Deck Device. The device is reset and restored to full brightness on
// the way out.
func (s *StreamDeck) Close() error {
	s.cancel()
	if err := s.device.Reset(); err != nil {
		_ = s.device.Close()
		return err
	}
	if err := s.device.SetBrightness(BrightnessFull); err != nil {
		_ = s.device.Close()
		return err
	}
	return s.device.Close()
}

// Device returns the underlying Stream Deck device.
func (s *StreamDeck) Device() *Device {
	return s.device
}

// Brightness returns the current brightness of the Stream Deck.
func (s *StreamDeck) Brightness() int {
	return s.brightness
}

// SetBrightness sets the brightness of the Stream Deck, clamping the level to
// the valid range.
func (s *StreamDeck) SetBrightness(level int) error {
	if level < BrightnessMin {
		level = BrightnessMin
	}
	if level > BrightnessFull {
		level = BrightnessFull
	}
	if err := s.device.SetBrightness(level); err != nil {
		return err
	}
	s.brightness = level
	return nil
}

// SetHandler sets the button event handler used by the end-user to handle
// press and release events.
func (s *StreamDeck) SetHandler(fn func(context.Context, ButtonEvent) error) {
	s.handlerMx.Lock()
	defer s.handlerMx.Unlock()

	s.handler = fn
}

// Apply renders a View onto the Stream Deck.
func (s *StreamDeck) Apply(ctx context.Context, v View) error {
	return v.Apply(ctx)
}

// ProcessImage resizes an image to the button image size, applies the model
// transform and encodes it, producing bytes ready for Device#SetButtonRaw.
// Unlike ImagePackets this accepts images of any size.
func (s *StreamDeck) ProcessImage(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, nil
	}

	// Resize with the device's GIFT pipeline.
	g := s.device.typ.resizer()
	res := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(res, img)

	typ := s.device.typ
	return typ.ImageFormat().Encode(typ.ImageTransform().Apply(res))
}

// buttonListener runs the blocking listener loop, moving events onto the
// internal channel. The loop ends when the read fails, which is also how
// Close stops it.
func (s *StreamDeck) buttonListener(ctx context.Context) {
	err := s.device.Listen(func(event ButtonEvent) {
		select {
		case <-ctx.Done():
		case s.ch <- event:
		}
	})
	if ctx.Err() != nil {
		return
	}
	s.log.Warn("button listener stopped", zap.Error(err))
}

// buttonCallbackListener receives events from the StreamDeck#ch channel and
// calls StreamDeck#handler with them.
func (s *StreamDeck) buttonCallbackListener(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-s.ch:
			s.handlerMx.Lock()
			handler := s.handler
			s.handlerMx.Unlock()

			if handler == nil {
				continue
			}
			if err := handler(ctx, event); err != nil {
				s.log.Error("button handler failed",
					zap.Int("button", event.Button),
					zap.Stringer("state", event.State),
					zap.Error(err),
				)
			}
		}
	}
}
