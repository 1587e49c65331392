package world

import (
	"image"
	"math/rand"
)

const (
	sandboxRevealRadius = 3
	sandboxPhaseTicks   = 40 // ticks per time-of-day phase
	sandboxWeatherTicks = 55 // ticks between weather rolls
)

// Tick is one engine step as seen by the visualizer.
type Tick struct {
	Number   int
	Grid     *Grid // revealed tiles only; unknown cells are nil
	Agent    image.Point
	Prev     image.Point
	Facing   Direction
	Time     TimeOfDay
	Weather  Weather
	Backpack map[ContentKind]int
}

// Sandbox is a small stand-in engine: an agent random-walks a generated map,
// reveals tiles around itself and picks up what it steps on. The binaries use it
// when no external engine feed is configured.
type Sandbox struct {
	truth    *Grid
	revealed *Grid
	agent    image.Point
	facing   Direction
	tick     int
	time     TimeOfDay
	weather  Weather
	backpack map[ContentKind]int
	rng      *rand.Rand
}

// NewSandbox generates a cols×rows map from seed and places the agent on the
// walkable tile closest to the map centre.
func NewSandbox(cols, rows int, seed int64) *Sandbox {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- demo terrain only
	s := &Sandbox{
		truth:    GenerateTerrain(cols, rows, rng, DefaultTerrain),
		revealed: NewGrid(cols, rows),
		backpack: make(map[ContentKind]int),
		rng:      rng,
		facing:   DirRight,
	}
	s.agent = s.nearestWalkable(image.Pt(cols/2, rows/2))
	s.reveal()
	return s
}

func (s *Sandbox) nearestWalkable(from image.Point) image.Point {
	best := from
	bestD := -1
	for row := 0; row < s.truth.Rows; row++ {
		for col := 0; col < s.truth.Cols; col++ {
			t := s.truth.At(col, row)
			if t == nil || !t.Kind.Walkable() {
				continue
			}
			dx, dy := col-from.X, row-from.Y
			d := dx*dx + dy*dy
			if bestD < 0 || d < bestD {
				best, bestD = image.Pt(col, row), d
			}
		}
	}
	return best
}

func (s *Sandbox) reveal() {
	r := sandboxRevealRadius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c, row := s.agent.X+dx, s.agent.Y+dy
			if t := s.truth.At(c, row); t != nil {
				s.revealed.Set(c, row, *t)
			}
		}
	}
}

// Agent returns the agent's current tile coordinate.
func (s *Sandbox) Agent() image.Point {
	return s.agent
}

// Snapshot reports the current state without advancing.
func (s *Sandbox) Snapshot() Tick {
	bp := make(map[ContentKind]int, len(s.backpack))
	for k, v := range s.backpack {
		bp[k] = v
	}
	return Tick{
		Number:   s.tick,
		Grid:     s.revealed.Clone(),
		Agent:    s.agent,
		Prev:     s.agent,
		Facing:   s.facing,
		Time:     s.time,
		Weather:  s.weather,
		Backpack: bp,
	}
}

// Step advances the engine by one tick and returns the new state.
func (s *Sandbox) Step() Tick {
	s.tick++
	prev := s.agent

	// Keep heading most of the time; turn when blocked or on a coin flip.
	dirs := []Direction{DirUp, DirDown, DirLeft, DirRight}
	if s.facing == DirNone || s.rng.Intn(4) == 0 {
		s.facing = dirs[s.rng.Intn(len(dirs))]
	}
	for tries := 0; tries < 4; tries++ {
		next := s.agent.Add(s.facing.Delta())
		if t := s.truth.At(next.X, next.Y); t != nil && t.Kind.Walkable() {
			s.agent = next
			break
		}
		s.facing = dirs[s.rng.Intn(len(dirs))]
	}

	if t := s.truth.At(s.agent.X, s.agent.Y); t != nil && t.Content != ContentNone && t.Content != ContentFire {
		s.backpack[t.Content] += max(t.Amount, 1)
		t.Content = ContentNone
		t.Amount = 0
	}
	s.reveal()

	if s.tick%sandboxPhaseTicks == 0 {
		s.time = (s.time + 1) % timeOfDayCount
	}
	if s.tick%sandboxWeatherTicks == 0 {
		s.weather = Weather(s.rng.Intn(int(weatherCount)))
	}

	out := s.Snapshot()
	out.Prev = prev
	out.Facing = DirectionBetween(prev, s.agent)
	return out
}
