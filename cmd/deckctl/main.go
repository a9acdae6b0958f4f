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

// deckctl is a small debugging tool for Stream Deck devices: list connected
// decks, set brightness, reset, render an image on a button, or watch button
// events.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/streamdeckkit/streamdeck"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: deckctl [flags] <command>

Commands:
  list                     list connected Stream Deck devices
  brightness <0-100>       set the display brightness
  reset                    reset the device to its standby state
  image <button> <file>    render an image file on a button
  watch                    print button events until interrupted

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	profileDir := flag.String("profile", "", "write a CPU profile to the given directory")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	if *profileDir != "" {
		defer profile.Start(profile.ProfilePath(*profileDir)).Stop()
	}

	log, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "deckctl:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	if err := run(log, flag.Args()); err != nil {
		log.Fatal("command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(log *zap.Logger, args []string) error {
	transport, err := streamdeck.HID()
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return list(transport)
	case "brightness":
		if len(args) != 2 {
			return fmt.Errorf("usage: deckctl brightness <0-100>")
		}
		level, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid brightness %q: %w", args[1], err)
		}
		return withDeck(log, transport, func(ctx context.Context, sd *streamdeck.StreamDeck) error {
			return sd.SetBrightness(level)
		})
	case "reset":
		return withDeck(log, transport, func(ctx context.Context, sd *streamdeck.StreamDeck) error {
			return sd.Device().Reset()
		})
	case "image":
		if len(args) != 3 {
			return fmt.Errorf("usage: deckctl image <button> <file>")
		}
		button, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid button %q: %w", args[1], err)
		}
		return withDeck(log, transport, func(ctx context.Context, sd *streamdeck.StreamDeck) error {
			return setImage(sd, button, args[2])
		})
	case "watch":
		return watch(log, transport)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func list(transport streamdeck.Transport) error {
	infos, err := transport.Enumerate()
	if err != nil {
		return err
	}
	var found int
	for _, info := range infos {
		typ, ok := streamdeck.Lookup(info.VendorID, info.ProductID)
		if !ok {
			continue
		}
		found++
		fmt.Printf("%s\t%04x:%04x\t%dx%d buttons\tserial=%s\n",
			typ.Name(), info.VendorID, info.ProductID, typ.Rows(), typ.Cols(), info.Serial)
	}
	if found == 0 {
		fmt.Println("no stream deck devices found")
	}
	return nil
}

func withDeck(log *zap.Logger, transport streamdeck.Transport, fn func(context.Context, *streamdeck.StreamDeck) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sd, err := streamdeck.New(ctx, transport, streamdeck.WithLogger(log))
	if err != nil {
		return err
	}
	if err := fn(ctx, sd); err != nil {
		_ = sd.Device().Close()
		return err
	}
	return sd.Device().Close()
}

func setImage(sd *streamdeck.StreamDeck, button int, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return err
	}
	raw, err := sd.ProcessImage(img)
	if err != nil {
		return err
	}
	return sd.Device().SetButtonRaw(button, raw)
}

func watch(log *zap.Logger, transport streamdeck.Transport) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sd, err := streamdeck.New(ctx, transport, streamdeck.WithLogger(log))
	if err != nil {
		return err
	}
	defer sd.Close()

	sd.SetHandler(func(_ context.Context, event streamdeck.ButtonEvent) error {
		fmt.Printf("button %d changed to %s\n", event.Button, event.State)
		return nil
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
