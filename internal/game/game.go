package game

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/agentview/internal/feed"
	"github.com/Garsondee/agentview/internal/render"
)

var background = color.RGBA{R: 12, G: 14, B: 18, A: 255}

// Game adapts a Visualizer to ebiten: it drains the engine feed, polls input
// and draws through a ScreenCanvas.
type Game struct {
	v     *Visualizer
	sheet *ebiten.Image

	// Updates delivers engine messages; it is drained without blocking at the
	// start of every frame. A closed channel is dropped.
	Updates <-chan feed.Message
	// OnFrame, if set, receives a snapshot after every drawn frame.
	OnFrame func(Snapshot)

	prevKeys   map[ebiten.Key]bool
	prevCursor image.Point
	prevRight  bool
	prevMiddle bool
	tps        int
}

// NewGame wraps v. sheet is the sprite sheet the visualizer's sprite table
// points into.
func NewGame(v *Visualizer, sheet *ebiten.Image) *Game {
	return &Game{
		v:        v,
		sheet:    sheet,
		prevKeys: make(map[ebiten.Key]bool),
	}
}

// Visualizer returns the wrapped visualizer.
func (g *Game) Visualizer() *Visualizer { return g.v }

func (g *Game) Update() error {
	g.drainFeed()
	if fps := g.v.Framerate(); fps != g.tps {
		ebiten.SetTPS(fps)
		g.tps = fps
	}
	if err := g.v.Step(g.pollInput()); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *Game) drainFeed() {
	for g.Updates != nil {
		select {
		case m, ok := <-g.Updates:
			if !ok {
				g.Updates = nil
				g.v.event("feed", "closed", "")
				return
			}
			m.Apply(g.v)
		default:
			return
		}
	}
}

// pollInput collects this frame's input. Keys and the middle button are
// edge-triggered; the right button drags while held.
func (g *Game) pollInput() FrameInput {
	var in FrameInput
	cur := make(map[ebiten.Key]bool, len(g.prevKeys))
	pressed := func(k ebiten.Key) bool {
		cur[k] = ebiten.IsKeyPressed(k)
		return cur[k] && !g.prevKeys[k]
	}

	if pressed(ebiten.KeyArrowLeft) {
		in.Pan.X--
	}
	if pressed(ebiten.KeyArrowRight) {
		in.Pan.X++
	}
	if pressed(ebiten.KeyArrowUp) {
		in.Pan.Y--
	}
	if pressed(ebiten.KeyArrowDown) {
		in.Pan.Y++
	}
	in.ResetPan = pressed(ebiten.KeyR)
	in.ToggleFollow = pressed(ebiten.KeySpace)
	in.ToggleMarkers = pressed(ebiten.KeyM)
	in.ToggleInventory = pressed(ebiten.KeyI)
	in.ToggleHUD = pressed(ebiten.KeyH)
	in.CopyMarkers = pressed(ebiten.KeyC)
	in.Quit = pressed(ebiten.KeyEscape)

	switch _, wy := ebiten.Wheel(); {
	case wy > 0:
		in.Zoom = 1
	case wy < 0:
		in.Zoom = -1
	}

	x, y := ebiten.CursorPosition()
	c := image.Pt(x, y)
	in.Cursor = c
	in.CursorMoved = c != g.prevCursor
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if right && g.prevRight {
		in.Drag = c.Sub(g.prevCursor)
	}
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	in.MarkerClick = middle && !g.prevMiddle

	g.prevKeys = cur
	g.prevCursor = c
	g.prevRight = right
	g.prevMiddle = middle
	return in
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.v.Render(render.ScreenCanvas{Screen: screen, Sheet: g.sheet})
	if g.OnFrame != nil {
		g.OnFrame(g.v.Snapshot())
	}
}

// Layout follows the window size so the viewport centre tracks resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	g.v.Resize(w, h)
	return w, h
}
