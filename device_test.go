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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	conn := &fakeConn{}
	transport := &fakeTransport{
		infos: []DeviceInfo{
			{VendorID: 0x046d, ProductID: 0xc903}, // not a deck
			{VendorID: XL.VendorID(), ProductID: XL.ProductID()},
			{VendorID: Mini.VendorID(), ProductID: Mini.ProductID()},
		},
		conn: conn,
	}

	d, err := Open(transport)
	require.NoError(t, err)
	assert.Equal(t, XL, d.Type())

	// Only the first recognized device is opened.
	require.Len(t, transport.opened, 1)
	assert.Equal(t, XL.ProductID(), transport.opened[0].ProductID)
}

func TestOpenNoDeviceFound(t *testing.T) {
	transport := &fakeTransport{
		infos: []DeviceInfo{
			{VendorID: 0x046d, ProductID: 0xc903},
		},
	}

	_, err := Open(transport)
	assert.ErrorIs(t, err, ErrNoDeviceFound)

	_, err = Open(&fakeTransport{})
	assert.ErrorIs(t, err, ErrNoDeviceFound)
}

func TestOpenEnumerateError(t *testing.T) {
	errBus := errors.New("bus error")
	_, err := Open(&fakeTransport{enumErr: errBus})

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "enumerate", terr.Op)
	assert.ErrorIs(t, err, errBus)
}

func TestOpenDeviceInfoUnrecognized(t *testing.T) {
	transport := &fakeTransport{conn: &fakeConn{}}
	_, err := OpenDeviceInfo(transport, DeviceInfo{VendorID: 0x1234, ProductID: 0x5678})
	assert.ErrorIs(t, err, ErrUnrecognizedDevice)
	assert.Empty(t, transport.opened)
}

func TestOpenDeviceInfo(t *testing.T) {
	transport := &fakeTransport{conn: &fakeConn{}}
	d, err := OpenDeviceInfo(transport, DeviceInfo{
		VendorID:  Original.VendorID(),
		ProductID: Original.ProductID(),
	})
	require.NoError(t, err)
	assert.Equal(t, Original, d.Type())
}

func TestDeviceReset(t *testing.T) {
	conn := &fakeConn{}
	d, err := NewDevice(XL, conn)
	require.NoError(t, err)

	require.NoError(t, d.Reset())

	// The in-flight key stream is aborted with a write before the reset
	// feature report goes out.
	require.Len(t, conn.writes, 1)
	assert.Equal(t, resetKeyStreamPacket(XL), conn.writes[0])
	require.Len(t, conn.features, 1)
	assert.Equal(t, resetPacket(XL), conn.features[0])
}

func TestDeviceSetBrightness(t *testing.T) {
	conn := &fakeConn{}
	d, err := NewDevice(Mini, conn)
	require.NoError(t, err)

	require.NoError(t, d.SetBrightness(60))
	require.Len(t, conn.features, 1)
	assert.Equal(t, brightnessPacket(Mini, 60), conn.features[0])

	// Device passes out-of-range levels through untouched.
	require.NoError(t, d.SetBrightness(200))
	assert.Equal(t, byte(200), conn.features[1][5])
}

func TestDeviceSetButton(t *testing.T) {
	conn := &fakeConn{}
	d, err := NewDevice(Original, conn)
	require.NoError(t, err)

	require.NoError(t, d.SetButton(7, buttonImage(Original)))
	require.Len(t, conn.writes, 2)
	for i, pkt := range conn.writes {
		assert.Len(t, pkt, Original.PacketSize())
		assert.Equal(t, byte(i+1), pkt[2], "page byte")
		assert.Equal(t, byte(8), pkt[5], "button byte")
	}
}

func TestDeviceSetButtonInvalidIndex(t *testing.T) {
	conn := &fakeConn{}
	d, err := NewDevice(Mini, conn)
	require.NoError(t, err)

	assert.Error(t, d.SetButton(-1, buttonImage(Mini)))
	assert.Error(t, d.SetButton(6, buttonImage(Mini)))
	assert.Empty(t, conn.writes)
}

func TestDeviceSetButtonDimensionMismatch(t *testing.T) {
	conn := &fakeConn{}
	d, err := NewDevice(XL, conn)
	require.NoError(t, err)

	var mismatch *DimensionMismatchError
	err = d.SetButton(0, buttonImage(Mini))
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 96, mismatch.Width)
	assert.Equal(t, 96, mismatch.Height)
	assert.Empty(t, conn.writes)
}

func TestDeviceSetButtonNilClears(t *testing.T) {
	conn := &fakeConn{}
	d, err := NewDevice(XL, conn)
	require.NoError(t, err)

	require.NoError(t, d.SetButton(3, nil))
	require.NotEmpty(t, conn.writes)
	payload := conn.writes[0][layoutAHeaderLen:]
	assert.Equal(t, []byte{0xff, 0xd8}, payload[:2])
}

func TestDeviceSetButtonShortWrite(t *testing.T) {
	conn := &fakeConn{shortWriteBy: 1}
	d, err := NewDevice(XL, conn)
	require.NoError(t, err)

	err = d.SetButton(0, buttonImage(XL))
	var short *ShortWriteError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, XL.PacketSize()-1, short.Wrote)
	assert.Equal(t, XL.PacketSize(), short.Expected)
}

func TestDeviceSetButtonWriteError(t *testing.T) {
	errGone := errors.New("device gone")
	conn := &fakeConn{writeErr: errGone}
	d, err := NewDevice(Mini, conn)
	require.NoError(t, err)

	err = d.SetButton(0, buttonImage(Mini))
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, errGone)
}

func TestDeviceClear(t *testing.T) {
	conn := &fakeConn{}
	d, err := NewDevice(Mini, conn)
	require.NoError(t, err)

	require.NoError(t, d.Clear())

	// Six buttons, three packets each for the Mini's blank bitmap.
	assert.Len(t, conn.writes, 18)
}

func TestDeviceClose(t *testing.T) {
	conn := &fakeConn{}
	d, err := NewDevice(Mini, conn)
	require.NoError(t, err)

	require.NoError(t, d.Close())
	assert.True(t, conn.closed)
}
