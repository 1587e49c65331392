package world

import "image"

// Direction is the agent's facing as derived from successive coordinates.
type Direction uint8

const (
	DirNone Direction = iota // not moving
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Delta returns the unit step of the direction in tile coordinates.
func (d Direction) Delta() image.Point {
	switch d {
	case DirUp:
		return image.Pt(0, -1)
	case DirDown:
		return image.Pt(0, 1)
	case DirLeft:
		return image.Pt(-1, 0)
	case DirRight:
		return image.Pt(1, 0)
	default:
		return image.Point{}
	}
}

// DirectionBetween derives the facing from the previous to the new coordinate.
// Row changes win over column changes; no change yields DirNone.
func DirectionBetween(prev, next image.Point) Direction {
	switch dy, dx := next.Y-prev.Y, next.X-prev.X; {
	case dy > 0:
		return DirDown
	case dy < 0:
		return DirUp
	case dx > 0:
		return DirRight
	case dx < 0:
		return DirLeft
	default:
		return DirNone
	}
}

// TimeOfDay is the engine's coarse day phase.
type TimeOfDay uint8

const (
	Morning TimeOfDay = iota
	Afternoon
	Night
	timeOfDayCount
)

// TimeOfDayCount is the number of day phases.
const TimeOfDayCount = int(timeOfDayCount)

func (t TimeOfDay) String() string {
	switch t {
	case Morning:
		return "Morning"
	case Afternoon:
		return "Afternoon"
	case Night:
		return "Night"
	default:
		return "Unknown"
	}
}

// Weather is the engine's current weather condition.
type Weather uint8

const (
	Sunny Weather = iota
	Rainy
	Foggy
	TropicalMonsoon
	Snowy
	weatherCount
)

// WeatherCount is the number of weather conditions.
const WeatherCount = int(weatherCount)

func (w Weather) String() string {
	switch w {
	case Sunny:
		return "Sunny"
	case Rainy:
		return "Rainy"
	case Foggy:
		return "Foggy"
	case TropicalMonsoon:
		return "TropicalMonsoon"
	case Snowy:
		return "Snowy"
	default:
		return "Unknown"
	}
}

// ParseTimeOfDay returns the phase named s, as produced by String.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	for t := TimeOfDay(0); t < timeOfDayCount; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// ParseWeather returns the condition named s, as produced by String.
func ParseWeather(s string) (Weather, bool) {
	for w := Weather(0); w < weatherCount; w++ {
		if w.String() == s {
			return w, true
		}
	}
	return 0, false
}
