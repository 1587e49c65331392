package game

import (
	"errors"
	"fmt"
	"image"
)

// ErrQuit is returned by Step when the user asked to leave.
var ErrQuit = errors.New("quit")

// FrameInput is the user input of one frame, already edge-triggered by the
// front-end. The zero value means no input.
type FrameInput struct {
	Pan         image.Point // tile-step direction from the arrow keys
	Zoom        int         // wheel notches, positive zooms in
	Drag        image.Point // screen-pixel drag delta
	Cursor      image.Point // pointer position in screen pixels
	CursorMoved bool
	MarkerClick bool // toggle a marker at Cursor

	ResetPan        bool
	ToggleFollow    bool
	ToggleMarkers   bool
	ToggleInventory bool
	ToggleHUD       bool
	CopyMarkers     bool
	Quit            bool
}

// IsZero reports whether the input carries nothing to apply.
func (in FrameInput) IsZero() bool { return in == FrameInput{} }

// applyInput maps one frame of input onto the visualizer. Quit wins over
// everything else in the same frame.
func (v *Visualizer) applyInput(in FrameInput) error {
	if in.Quit {
		v.event("app", "quit", "")
		return ErrQuit
	}
	t := v.cam.TileSize()

	if in.ResetPan {
		v.cam.ResetPan()
		v.event("camera", "pan", "reset")
	}
	if in.Pan != (image.Point{}) {
		// Arrow keys move the view, so the world shifts the other way.
		v.cam.PanBy(in.Pan.Mul(-t))
	}
	if in.Drag != (image.Point{}) {
		v.cam.PanBy(in.Drag)
	}
	if in.Zoom != 0 {
		before := v.cam.Zoom()
		v.cam.ZoomBy(in.Zoom)
		if v.cam.Zoom() != before {
			v.frames.AddVerbose(v.frame, "camera", "zoom", fmt.Sprintf("%+d", v.cam.Zoom()), float64(v.cam.Zoom()))
		}
	}
	if in.ToggleFollow {
		v.cam.ToggleFollow()
		state := "off"
		if v.cam.Following() {
			state = "on"
		}
		v.event("camera", "follow", state)
	}
	if in.CursorMoved {
		v.HoverAt(in.Cursor)
	}
	if in.MarkerClick {
		v.ToggleMarkerAt(in.Cursor)
	}
	if in.ToggleMarkers {
		v.ToggleMarkersMenu()
	}
	if in.ToggleInventory {
		v.ToggleInventory()
	}
	if in.ToggleHUD {
		v.showHUD = !v.showHUD
		if !v.showHUD {
			v.reg.RemoveScene(SceneHUD)
			v.hudText = ""
		}
	}
	if in.CopyMarkers {
		if _, err := v.CopyMarkers(); err != nil {
			v.logf("copy markers: %v", err)
		}
	}
	return nil
}
