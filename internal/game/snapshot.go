package game

import (
	"image"
	"maps"
)

// Snapshot is a read-only summary of one frame, published to the status
// endpoint and the frame recorder.
type Snapshot struct {
	Frame       int            `json:"frame"`
	Follow      bool           `json:"follow"`
	Zoom        int            `json:"zoom"`
	TileSize    int            `json:"tile_size"`
	Pan         [2]int         `json:"pan"`
	AgentWorld  [2]int         `json:"agent_world"`
	AgentTile   [2]int         `json:"agent_tile"`
	AgentAnchor [2]int         `json:"agent_anchor"`
	Facing      string         `json:"facing"`
	Viewport    [2]int         `json:"viewport"`
	Framerate   int            `json:"framerate"`
	Drawn       int            `json:"drawn"`
	Culled      int            `json:"culled"`
	Missing     int            `json:"missing"`
	Layers      map[string]int `json:"layers"`
	Scenes      []string       `json:"scenes"`
	Markers     [][2]int       `json:"markers"`
	Time        string         `json:"time,omitempty"`
	Weather     string         `json:"weather,omitempty"`
}

func pair(p image.Point) [2]int { return [2]int{p.X, p.Y} }

// Snapshot captures the state after the last Render.
func (v *Visualizer) Snapshot() Snapshot {
	s := Snapshot{
		Frame:       v.frame,
		Follow:      v.cam.Following(),
		Zoom:        v.cam.Zoom(),
		TileSize:    v.cam.EffectiveTileSize(),
		Pan:         pair(v.cam.Pan()),
		AgentWorld:  pair(v.cam.AgentWorld()),
		AgentTile:   pair(v.agentTile),
		AgentAnchor: pair(v.cam.AgentAnchor()),
		Facing:      v.facing.String(),
		Viewport:    pair(v.cam.Viewport()),
		Framerate:   v.fps,
		Drawn:       v.stats.Drawn,
		Culled:      v.stats.Culled,
		Missing:     v.stats.Missing,
		Layers:      maps.Clone(v.stats.Layers),
		Scenes:      v.reg.SceneNames(),
		Markers:     make([][2]int, 0, v.markers.Len()),
	}
	if s.Layers == nil {
		s.Layers = map[string]int{}
	}
	for _, m := range v.markers.All() {
		s.Markers = append(s.Markers, pair(m))
	}
	if v.haveTime {
		s.Time = v.time.String()
	}
	if v.haveWeather {
		s.Weather = v.weather.String()
	}
	return s
}
