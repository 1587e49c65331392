// Package viewport holds the camera state and the world/screen coordinate
// transform of the visualizer.
//
// World positions are integer pixels on the nominal tile lattice: tile (c,r)
// sits at world point (c*T, r*T) where T is the nominal tile size. Screen
// positions are pixels in the current viewport.
package viewport

import "image"

const (
	DefaultTileSize    = 32
	DefaultMinTileSize = 4
	DefaultMaxTileSize = 128
)

// Camera is the mutable camera state. It is owned by the frame loop; transforms
// are computed from an immutable View taken with Camera.View.
type Camera struct {
	pan         image.Point // screen-space pan offset
	follow      bool        // agent-chase mode
	zoom        int         // added to the nominal tile size
	agentAnchor image.Point // agent's screen position after the last Track
	agentWorld  image.Point // agent's world position after the last Track
	pendingPan  image.Point // pan accumulated while following

	tileSize    int
	minTileSize int
	maxTileSize int
	viewport    image.Point // width, height
}

// NewCamera creates a camera with zero pan and zoom and follow disabled.
// minTile and maxTile bound the effective tile size; out-of-range values fall
// back to the defaults.
func NewCamera(tileSize, minTile, maxTile int) *Camera {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	if minTile < 1 || minTile > tileSize {
		minTile = min(DefaultMinTileSize, tileSize)
	}
	if maxTile < tileSize {
		maxTile = max(DefaultMaxTileSize, tileSize)
	}
	return &Camera{tileSize: tileSize, minTileSize: minTile, maxTileSize: maxTile}
}

// Resize records the viewport size in pixels.
func (c *Camera) Resize(w, h int) {
	c.viewport = image.Pt(max(w, 0), max(h, 0))
}

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() image.Point { return c.viewport }

// Center is the viewport centre in screen pixels.
func (c *Camera) Center() image.Point { return c.viewport.Div(2) }

// Pan returns the free-camera pan offset.
func (c *Camera) Pan() image.Point { return c.pan }

// Zoom returns the zoom level (effective tile size minus nominal tile size).
func (c *Camera) Zoom() int { return c.zoom }

// Following reports whether the camera chases the agent.
func (c *Camera) Following() bool { return c.follow }

// AgentAnchor is the agent's screen position as of the last Track.
func (c *Camera) AgentAnchor() image.Point { return c.agentAnchor }

// AgentWorld is the agent's world position as of the last Track.
func (c *Camera) AgentWorld() image.Point { return c.agentWorld }

// TileSize returns the nominal tile size.
func (c *Camera) TileSize() int { return c.tileSize }

// EffectiveTileSize is the nominal tile size plus zoom; always within
// [minTileSize, maxTileSize].
func (c *Camera) EffectiveTileSize() int { return c.tileSize + c.zoom }

// PanBy moves the free camera by delta screen pixels. While following, the
// delta is held back and applied when follow is turned off.
func (c *Camera) PanBy(delta image.Point) {
	if c.follow {
		c.pendingPan = c.pendingPan.Add(delta)
		return
	}
	c.pan = c.pan.Add(delta)
}

// ZoomBy changes the zoom level, clamping the effective tile size into
// [minTileSize, maxTileSize] so the transform divisor stays positive.
func (c *Camera) ZoomBy(delta int) {
	lo, hi := c.minTileSize-c.tileSize, c.maxTileSize-c.tileSize
	switch {
	case delta < lo-c.zoom:
		c.zoom = lo
	case delta > hi-c.zoom:
		c.zoom = hi
	default:
		c.zoom += delta
	}
}

// ToggleFollow flips follow mode and resets zoom. The pan offset is snapped so
// the agent stays where it was last seen on screen; pan held back while
// following is added on top when leaving follow mode.
func (c *Camera) ToggleFollow() {
	c.follow = !c.follow
	c.zoom = 0
	c.pan = c.Center().Sub(c.agentWorld)
	if !c.follow {
		c.pan = c.pan.Add(c.pendingPan)
	}
	c.pendingPan = image.Point{}
}

// ResetPan returns the free camera to the origin. Zoom and follow are untouched.
func (c *Camera) ResetPan() {
	c.pan = image.Point{}
	c.pendingPan = image.Point{}
}

// Track records the agent's current world position. It is the only camera
// update that happens during a frame and must run before any screen position
// is resolved. In follow mode the pan offset is recomputed so the agent maps to
// the viewport centre.
func (c *Camera) Track(agentWorld image.Point) {
	c.agentWorld = agentWorld
	if c.follow {
		c.pan = c.Center().Sub(agentWorld)
	}
	c.agentAnchor = c.View().WorldToScreen(agentWorld)
}

// View takes an immutable snapshot of the camera for transform queries.
func (c *Camera) View() View {
	return View{
		Pan:        c.pan,
		Follow:     c.follow,
		Zoom:       c.zoom,
		AgentWorld: c.agentWorld,
		TileSize:   c.tileSize,
		Viewport:   c.viewport,
	}
}
