package game

import (
	"github.com/Garsondee/agentview/internal/config"
	"github.com/Garsondee/agentview/internal/feed"
	"github.com/Garsondee/agentview/internal/render"
	"github.com/Garsondee/agentview/internal/world"
)

// Headless drives a Visualizer without a window: the sandbox engine feeds it
// through the same message path as the websocket feed, and every frame is
// drawn into a Recorder. Used by tests and the headless-report binary.
type Headless struct {
	V         *Visualizer
	Sandbox   *world.Sandbox
	Canvas    *render.Recorder
	FrameLog  *FrameLog
	LastStats render.Stats
	Clipboard string // last text written by the copy-markers action

	cfg           config.Config
	cols, rows    int
	seed          int64
	framesPerTick int
	frames        int
}

// headlessOptionKind controls the pass in which an option is applied.
type headlessOptionKind int

const (
	headlessOptInfra headlessOptionKind = iota // config, grid, seed, logging; applied before construction
	headlessOptView                            // camera state; applied once the first tick is shown
)

// HeadlessOption is a builder function applied to a Headless during construction.
type HeadlessOption struct {
	kind headlessOptionKind
	fn   func(*Headless)
}

// WithViewport sets the viewport size in pixels.
func WithViewport(w, h int) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(hl *Headless) {
		hl.cfg.Window.Width = w
		hl.cfg.Window.Height = h
	}}
}

// WithGrid sets the sandbox map size in tiles.
func WithGrid(cols, rows int) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(hl *Headless) {
		hl.cols, hl.rows = cols, rows
	}}
}

// WithSeed sets the sandbox seed for deterministic runs.
func WithSeed(seed int64) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(hl *Headless) {
		hl.seed = seed
	}}
}

// WithAgentSpeed sets the agent glide speed (pixels per frame = 2^(speed-1)).
func WithAgentSpeed(speed int) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(hl *Headless) {
		hl.cfg.AgentSpeed = speed
	}}
}

// WithFramesPerTick sets how many frames are drawn per sandbox tick.
func WithFramesPerTick(n int) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(hl *Headless) {
		hl.framesPerTick = max(n, 1)
	}}
}

// WithVerbose enables per-frame draw and motion entries in the FrameLog.
func WithVerbose(v bool) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(hl *Headless) {
		hl.FrameLog = NewFrameLog(v)
	}}
}

// WithFollow starts the run with the camera following the agent.
func WithFollow() HeadlessOption {
	return HeadlessOption{headlessOptView, func(hl *Headless) {
		render.TrackAgent(hl.V.cam, hl.V.reg)
		_ = hl.V.applyInput(FrameInput{ToggleFollow: true})
	}}
}

// NewHeadless constructs a Headless from the given options in two passes:
//  1. Infrastructure (viewport, grid, seed, speed, logging) and the visualizer
//  2. Initial sandbox state applied, then camera options
func NewHeadless(opts ...HeadlessOption) (*Headless, error) {
	hl := &Headless{
		Canvas:        &render.Recorder{},
		FrameLog:      NewFrameLog(false),
		cfg:           config.Default(),
		cols:          40,
		rows:          30,
		seed:          1,
		framesPerTick: 8,
	}
	for _, o := range opts {
		if o.kind == headlessOptInfra {
			o.fn(hl)
		}
	}

	v, err := New(hl.cfg, nil, nil)
	if err != nil {
		return nil, err
	}
	v.frames = hl.FrameLog
	v.SetClipboard(func(s string) error {
		hl.Clipboard = s
		return nil
	})
	hl.V = v
	hl.Sandbox = world.NewSandbox(hl.cols, hl.rows, hl.seed)
	feed.FromTick(hl.Sandbox.Snapshot()).Apply(v)

	for _, o := range opts {
		if o.kind == headlessOptView {
			o.fn(hl)
		}
	}
	return hl, nil
}

// StepInput runs one frame with the given input and records its draw calls.
// Every framesPerTick frames the sandbox advances one tick first.
func (hl *Headless) StepInput(in FrameInput) (render.Stats, error) {
	hl.frames++
	if hl.frames%hl.framesPerTick == 0 {
		feed.FromTick(hl.Sandbox.Step()).Apply(hl.V)
	}
	if err := hl.V.Step(in); err != nil {
		return hl.LastStats, err
	}
	hl.Canvas.Reset()
	hl.LastStats = hl.V.Render(hl.Canvas)
	return hl.LastStats, nil
}

// RunFrames advances n frames. input may be nil; otherwise it supplies the
// input for each frame index (0-based within this call).
func (hl *Headless) RunFrames(n int, input func(i int) FrameInput) error {
	for i := 0; i < n; i++ {
		var in FrameInput
		if input != nil {
			in = input(i)
		}
		if _, err := hl.StepInput(in); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil advances up to maxFrames, stopping early once predicate returns
// true. Returns the frame at which the predicate was satisfied, or -1.
func (hl *Headless) RunUntil(predicate func(*Headless) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		if _, err := hl.StepInput(FrameInput{}); err != nil {
			return -1
		}
		if predicate(hl) {
			return hl.V.Frame()
		}
	}
	return -1
}
