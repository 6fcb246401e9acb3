package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshdemo/internal/engine/input"
)

// EventType identifies a window-level event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
)

// Event is a window-level event returned by PollEvents.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_X:      input.KeyX,
	sdl.SCANCODE_I:      input.KeyI,
	sdl.SCANCODE_J:      input.KeyJ,
	sdl.SCANCODE_K:      input.KeyK,
	sdl.SCANCODE_L:      input.KeyL,
	sdl.SCANCODE_SPACE:  input.KeySpace,
	sdl.SCANCODE_LSHIFT: input.KeyShift,
	sdl.SCANCODE_RSHIFT: input.KeyShift,
	sdl.SCANCODE_LCTRL:  input.KeyControl,
	sdl.SCANCODE_RCTRL:  input.KeyControl,
	sdl.SCANCODE_TAB:    input.KeyTab,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F1:     input.KeyF1,
}

var mouseButtons = map[uint8]input.Button{
	sdl.BUTTON_LEFT:   input.ButtonLeft,
	sdl.BUTTON_MIDDLE: input.ButtonMiddle,
	sdl.BUTTON_RIGHT:  input.ButtonRight,
}

// PollEvents drains the SDL queue into state and returns window events.
// state.BeginFrame is called first, so the snapshot covers exactly one frame.
func (w *Window) PollEvents(state *input.State) []Event {
	state.BeginFrame()

	var events []Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			events = append(events, Event{Type: EventQuit})

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				width, height := w.Size()
				events = append(events, Event{Type: EventResize, Width: width, Height: height})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				state.Reset()
			}

		case *sdl.KeyboardEvent:
			if k, ok := scancodes[e.Keysym.Scancode]; ok {
				state.SetKey(k, e.Type == sdl.KEYDOWN)
			}

		case *sdl.MouseMotionEvent:
			state.AddMouseDelta(float32(e.XRel), float32(e.YRel))

		case *sdl.MouseButtonEvent:
			if b, ok := mouseButtons[e.Button]; ok {
				state.SetButton(b, e.Type == sdl.MOUSEBUTTONDOWN)
			}
		}
	}

	return events
}
