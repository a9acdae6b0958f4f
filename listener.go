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

// ButtonState is the observed state of one physical button.
type ButtonState uint8

const (
	// Up means the button is released.
	Up ButtonState = iota
	// Down means the button is pressed.
	Down
)

// String implements fmt.Stringer.
func (s ButtonState) String() string {
	if s == Down {
		return "down"
	}
	return "up"
}

// ButtonEvent is emitted once per observed button state transition.
type ButtonEvent struct {
	// Button is the 0-based, row-major index of the button.
	Button int
	// State is the state the button transitioned into.
	State ButtonState
}

// listen polls the connection for input reports and invokes onEvent once per
// detected button transition, in increasing button index order within each
// report. Repeated observations of the same state emit nothing.
//
// listen blocks until a read fails and always returns a non-nil
// *TransportError. There is no cooperative cancellation; close the connection
// to stop the loop. Button state is not carried across invocations, a
// restarted listener starts with every button up.
func listen(t DeviceType, conn Conn, onEvent func(ButtonEvent)) error {
	states := make([]ButtonState, t.ButtonCount())
	offset := t.ReadOffset()
	buf := make([]byte, offset+t.ButtonCount())

	for {
		if _, err := conn.Read(buf); err != nil {
			return &TransportError{Op: "read", Err: err}
		}

		for i := range states {
			pressed := buf[offset+i] != 0
			switch {
			case pressed && states[i] == Up:
				states[i] = Down
				onEvent(ButtonEvent{Button: i, State: Down})
			case !pressed && states[i] == Down:
				states[i] = Up
				onEvent(ButtonEvent{Button: i, State: Up})
			}
		}
	}
}
