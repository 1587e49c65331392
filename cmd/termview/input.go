package main

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/agentview/internal/game"
)

// inputState folds terminal events into the FrameInput of the next frame.
type inputState struct {
	cellW, cellH int

	cur        game.FrameInput
	prevMouse  image.Point
	rightHeld  bool
	middleHeld bool
}

// pixel maps a terminal cell to the viewport pixel at its centre.
func (s *inputState) pixel(x, y int) image.Point {
	return image.Pt(x*s.cellW+s.cellW/2, y*s.cellH+s.cellH/2)
}

func (s *inputState) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		s.key(ev)
	case *tcell.EventMouse:
		s.mouse(ev)
	}
}

func (s *inputState) key(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft:
		s.cur.Pan.X--
	case tcell.KeyRight:
		s.cur.Pan.X++
	case tcell.KeyUp:
		s.cur.Pan.Y--
	case tcell.KeyDown:
		s.cur.Pan.Y++
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.cur.Quit = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			s.cur.ToggleFollow = !s.cur.ToggleFollow
		case 'r':
			s.cur.ResetPan = true
		case 'm':
			s.cur.ToggleMarkers = !s.cur.ToggleMarkers
		case 'i':
			s.cur.ToggleInventory = !s.cur.ToggleInventory
		case 'h':
			s.cur.ToggleHUD = !s.cur.ToggleHUD
		case 'c':
			s.cur.CopyMarkers = true
		case '+', '=':
			s.cur.Zoom++
		case '-':
			s.cur.Zoom--
		case 'q':
			s.cur.Quit = true
		}
	}
}

func (s *inputState) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := s.pixel(x, y)
	btn := ev.Buttons()

	if p != s.prevMouse {
		s.cur.Cursor = p
		s.cur.CursorMoved = true
	}
	if btn&tcell.WheelUp != 0 {
		s.cur.Zoom++
	}
	if btn&tcell.WheelDown != 0 {
		s.cur.Zoom--
	}
	right := btn&tcell.ButtonSecondary != 0
	if right && s.rightHeld {
		s.cur.Drag = s.cur.Drag.Add(p.Sub(s.prevMouse))
	}
	middle := btn&tcell.ButtonMiddle != 0
	if middle && !s.middleHeld {
		s.cur.Cursor = p
		s.cur.MarkerClick = true
	}
	s.rightHeld = right
	s.middleHeld = middle
	s.prevMouse = p
}

// take returns the accumulated input and starts a new frame.
func (s *inputState) take() game.FrameInput {
	in := s.cur
	s.cur = game.FrameInput{}
	return in
}
