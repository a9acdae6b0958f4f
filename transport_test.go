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

// In-memory doubles for the Transport and Conn interfaces. Reads are scripted
// per call; writes and feature reports are recorded in order.

type fakeConn struct {
	// reads is consumed one entry per Read call; readErr is returned once
	// the script runs out.
	reads   [][]byte
	readErr error
	// readGate, when non-nil, makes Read wait for a tick before serving
	// each scripted entry. Used to sequence facade tests.
	readGate chan struct{}

	writes   [][]byte
	features [][]byte

	// shortWriteBy makes every Write report that many bytes fewer than
	// requested.
	shortWriteBy int
	writeErr     error
	featureErr   error

	closed bool
}

var _ Conn = (*fakeConn)(nil)

func (c *fakeConn) Read(p []byte) (int, error) {
	if c.readGate != nil {
		<-c.readGate
	}
	if len(c.reads) == 0 {
		return 0, c.readErr
	}
	r := c.reads[0]
	c.reads = c.reads[1:]
	return copy(p, r), nil
}

func (c *fakeConn) Write(p []byte) (int, error) {
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	c.writes = append(c.writes, append([]byte(nil), p...))
	return len(p) - c.shortWriteBy, nil
}

func (c *fakeConn) SendFeatureReport(p []byte) (int, error) {
	if c.featureErr != nil {
		return 0, c.featureErr
	}
	c.features = append(c.features, append([]byte(nil), p...))
	return len(p), nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeTransport struct {
	infos   []DeviceInfo
	conn    *fakeConn
	enumErr error
	openErr error

	opened []DeviceInfo
}

var _ Transport = (*fakeTransport)(nil)

func (t *fakeTransport) Enumerate() ([]DeviceInfo, error) {
	if t.enumErr != nil {
		return nil, t.enumErr
	}
	return t.infos, nil
}

func (t *fakeTransport) Open(vendorID, productID uint16) (Conn, error) {
	if t.openErr != nil {
		return nil, t.openErr
	}
	t.opened = append(t.opened, DeviceInfo{VendorID: vendorID, ProductID: productID})
	return t.conn, nil
}
