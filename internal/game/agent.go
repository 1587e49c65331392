package game

import "image"

// agentMotion glides the agent entity from its drawn position toward the
// engine-reported tile, a fixed number of world pixels per frame on each axis.
type agentMotion struct {
	pos    image.Point // world pixels, as drawn this frame
	target image.Point // world pixels of the reported tile
	placed bool
}

// moveTo sets a new target. The first target is taken immediately.
func (m *agentMotion) moveTo(target image.Point) {
	m.target = target
	if !m.placed {
		m.pos = target
		m.placed = true
	}
}

// advance moves pos up to step pixels per axis toward target and reports
// whether the agent is still in motion afterwards.
func (m *agentMotion) advance(step int) bool {
	m.pos.X = approach(m.pos.X, m.target.X, step)
	m.pos.Y = approach(m.pos.Y, m.target.Y, step)
	return m.pos != m.target
}

func (m *agentMotion) moving() bool { return m.pos != m.target }

func approach(from, to, step int) int {
	switch {
	case from < to:
		return min(from+step, to)
	case from > to:
		return max(from-step, to)
	default:
		return from
	}
}

// agentStep converts the configured speed into pixels per frame.
func agentStep(speed int) int {
	if speed < 1 {
		speed = 1
	}
	return 1 << (speed - 1)
}
