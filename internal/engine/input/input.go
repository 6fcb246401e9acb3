// Package input defines the frame input contract used by cameras and the
// scene driver, independent of the window backend that produces it.
package input

import "github.com/Faultbox/meshdemo/pkg/math"

// Key identifies a keyboard key.
type Key int

// Keys used by the demo.
const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyX
	KeyI
	KeyJ
	KeyK
	KeyL
	KeySpace
	KeyShift
	KeyControl
	KeyTab
	KeyEscape
	KeyF1

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "Unknown",
	KeyW:       "W",
	KeyA:       "A",
	KeyS:       "S",
	KeyD:       "D",
	KeyX:       "X",
	KeyI:       "I",
	KeyJ:       "J",
	KeyK:       "K",
	KeyL:       "L",
	KeySpace:   "Space",
	KeyShift:   "Shift",
	KeyControl: "Control",
	KeyTab:     "Tab",
	KeyEscape:  "Escape",
	KeyF1:      "F1",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

// Button identifies a mouse button.
type Button int

// Mouse buttons.
const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight

	buttonCount
)

// Source is polled once per camera or scene update.
type Source interface {
	// KeyDown reports whether k is currently held.
	KeyDown(k Key) bool
	// KeyPressed reports whether k went down during the current frame.
	KeyPressed(k Key) bool
	// MouseDelta returns the cursor movement since the previous frame, in pixels.
	MouseDelta() math.Vec2
	// MouseButtonDown reports whether b is currently held.
	MouseButtonDown(b Button) bool
}

// State is a frame snapshot filled by a window backend. The zero value is
// ready to use.
type State struct {
	down    [keyCount]bool
	pressed [keyCount]bool
	buttons [buttonCount]bool
	delta   math.Vec2
}

// BeginFrame clears per-frame edges and the accumulated mouse delta. Held keys
// and buttons carry over.
func (s *State) BeginFrame() {
	s.pressed = [keyCount]bool{}
	s.delta = math.Vec2{}
}

// SetKey records a key transition. A press is only registered on the up to
// down edge, so auto-repeat does not produce extra presses.
func (s *State) SetKey(k Key, down bool) {
	if k <= KeyUnknown || k >= keyCount {
		return
	}
	if down && !s.down[k] {
		s.pressed[k] = true
	}
	s.down[k] = down
}

// SetButton records a mouse button transition.
func (s *State) SetButton(b Button, down bool) {
	if b < 0 || b >= buttonCount {
		return
	}
	s.buttons[b] = down
}

// AddMouseDelta accumulates relative cursor motion for the current frame.
func (s *State) AddMouseDelta(dx, dy float32) {
	s.delta = s.delta.Add(math.Vec2{X: dx, Y: dy})
}

// Reset releases every key and button, e.g. when the window loses focus.
func (s *State) Reset() {
	*s = State{}
}

func (s *State) KeyDown(k Key) bool {
	return k > KeyUnknown && k < keyCount && s.down[k]
}

func (s *State) KeyPressed(k Key) bool {
	return k > KeyUnknown && k < keyCount && s.pressed[k]
}

func (s *State) MouseDelta() math.Vec2 {
	return s.delta
}

func (s *State) MouseButtonDown(b Button) bool {
	return b >= 0 && b < buttonCount && s.buttons[b]
}

// None is a Source with nothing held.
var None Source = &State{}
