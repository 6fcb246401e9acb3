package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/meshdemo/internal/engine/input"
	"github.com/Faultbox/meshdemo/pkg/math"
)

var imguiKeys = map[input.Key][]imgui.Key{
	input.KeyW:       {imgui.KeyW},
	input.KeyA:       {imgui.KeyA},
	input.KeyS:       {imgui.KeyS},
	input.KeyD:       {imgui.KeyD},
	input.KeyX:       {imgui.KeyX},
	input.KeyI:       {imgui.KeyI},
	input.KeyJ:       {imgui.KeyJ},
	input.KeyK:       {imgui.KeyK},
	input.KeyL:       {imgui.KeyL},
	input.KeySpace:   {imgui.KeySpace},
	input.KeyShift:   {imgui.KeyLeftShift, imgui.KeyRightShift},
	input.KeyControl: {imgui.KeyLeftCtrl, imgui.KeyRightCtrl},
	input.KeyTab:     {imgui.KeyTab},
	input.KeyEscape:  {imgui.KeyEscape},
	input.KeyF1:      {imgui.KeyF1},
}

var imguiButtons = map[input.Button]imgui.MouseButton{
	input.ButtonLeft:   imgui.MouseButtonLeft,
	input.ButtonMiddle: imgui.MouseButtonMiddle,
	input.ButtonRight:  imgui.MouseButtonRight,
}

// Input reads keyboard and mouse state from ImGui. Keyboard input is
// withheld while a widget is active, and mouse input unless the scene
// viewport is hovered, so editing the inspector never moves the camera.
type Input struct {
	viewportHovered bool
}

// SetViewportHovered records whether the scene viewport is under the cursor.
func (in *Input) SetViewportHovered(hovered bool) {
	in.viewportHovered = hovered
}

func (in *Input) keyboard() bool {
	return !imgui.IsAnyItemActive()
}

func (in *Input) KeyDown(k input.Key) bool {
	if !in.keyboard() {
		return false
	}
	for _, key := range imguiKeys[k] {
		if IsKeyDown(key) {
			return true
		}
	}
	return false
}

func (in *Input) KeyPressed(k input.Key) bool {
	if !in.keyboard() {
		return false
	}
	for _, key := range imguiKeys[k] {
		if IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func (in *Input) MouseDelta() math.Vec2 {
	if !in.viewportHovered {
		return math.Vec2{}
	}
	d := imgui.CurrentIO().MouseDelta()
	return math.Vec2{X: d.X, Y: d.Y}
}

func (in *Input) MouseButtonDown(b input.Button) bool {
	button, ok := imguiButtons[b]
	return ok && in.viewportHovered && imgui.IsMouseDown(button)
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

var _ input.Source = (*Input)(nil)
