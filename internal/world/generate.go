package world

import (
	"math"
	"math/rand"
)

// TerrainConfig holds tuneable noise and scatter parameters for GenerateTerrain.
type TerrainConfig struct {
	// Noise layer scales (smaller = broader features).
	ElevationScale  float64
	MoistureScale   float64
	VegetationScale float64

	// Elevation thresholds (noise value 0–1), ascending.
	DeepWaterBelow    float64
	ShallowWaterBelow float64
	SandBelow         float64
	HillAbove         float64
	MountainAbove     float64
	SnowAbove         float64

	// Vegetation thresholds on grass.
	TreeThreshold float64
	BushThreshold float64

	// Probability per walkable tile of scattered pickups.
	ScatterChance float64
}

// DefaultTerrain is the generator setting used by the sandbox engine.
var DefaultTerrain = TerrainConfig{
	ElevationScale:  0.08,
	MoistureScale:   0.05,
	VegetationScale: 0.12,

	DeepWaterBelow:    0.18,
	ShallowWaterBelow: 0.26,
	SandBelow:         0.32,
	HillAbove:         0.68,
	MountainAbove:     0.80,
	SnowAbove:         0.90,

	TreeThreshold: 0.74,
	BushThreshold: 0.64,

	ScatterChance: 0.03,
}

var scatterContents = []ContentKind{
	ContentRock, ContentCoin, ContentGarbage, ContentCrate, ContentBin, ContentFire, ContentScarecrow,
}

// GenerateTerrain builds a fully known cols×rows grid from three noise layers.
// The same rng state and config always produce the same grid.
func GenerateTerrain(cols, rows int, rng *rand.Rand, cfg TerrainConfig) *Grid {
	g := NewGrid(cols, rows)
	elevSeed := rng.Int63()
	moistSeed := rng.Int63()
	vegSeed := rng.Int63()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			elev := valueNoise2D(float64(col)*cfg.ElevationScale, float64(row)*cfg.ElevationScale, elevSeed)
			moist := valueNoise2D(float64(col)*cfg.MoistureScale, float64(row)*cfg.MoistureScale, moistSeed)

			t := Tile{Kind: TileGrass}
			switch {
			case elev < cfg.DeepWaterBelow:
				t.Kind = TileDeepWater
			case elev < cfg.ShallowWaterBelow:
				t.Kind = TileShallowWater
			case elev < cfg.SandBelow:
				t.Kind = TileSand
			case elev > cfg.SnowAbove:
				t.Kind = TileSnow
			case elev > cfg.MountainAbove:
				t.Kind = TileMountain
			case elev > cfg.HillAbove:
				t.Kind = TileHill
			}
			if t.Kind == TileShallowWater && moist > 0.6 {
				t.Content = ContentFish
				t.Amount = 1 + rng.Intn(3)
			}
			g.Set(col, row, t)
		}
	}

	// Vegetation pass runs after ground so it only lands on settled grass.
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			t := g.At(col, row)
			if t == nil || t.Kind != TileGrass || t.Content != ContentNone {
				continue
			}
			veg := valueNoise2D(float64(col)*cfg.VegetationScale, float64(row)*cfg.VegetationScale, vegSeed)
			// Detail noise prevents uniform blobs.
			detail := valueNoise2D(float64(col)*0.31, float64(row)*0.31, vegSeed+1)
			switch {
			case veg > cfg.TreeThreshold && detail > 0.5:
				t.Content = ContentTree
				t.Amount = 1 + rng.Intn(4)
			case veg > cfg.BushThreshold && detail > 0.4 && detail < 0.7:
				t.Content = ContentBush
				t.Amount = 1
			}
		}
	}

	for _, t := range g.Tiles {
		if t == nil || !t.Kind.Walkable() || t.Content != ContentNone {
			continue
		}
		if rng.Float64() >= cfg.ScatterChance {
			continue
		}
		t.Content = scatterContents[rng.Intn(len(scatterContents))]
		t.Amount = 1 + rng.Intn(5)
	}
	return g
}

// --- Value noise implementation (no external deps) ---

// valueNoise2D returns a smooth noise value in [0,1] for the given coordinates.
// Uses lattice-based value noise with hermite interpolation.
func valueNoise2D(x, y float64, seed int64) float64 {
	xi := int(math.Floor(x))
	yi := int(math.Floor(y))
	xf := x - float64(xi)
	yf := y - float64(yi)

	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	n00 := latticeValue(xi, yi, seed)
	n10 := latticeValue(xi+1, yi, seed)
	n01 := latticeValue(xi, yi+1, seed)
	n11 := latticeValue(xi+1, yi+1, seed)

	nx0 := n00*(1-u) + n10*u
	nx1 := n01*(1-u) + n11*u
	return nx0*(1-v) + nx1*v
}

// latticeValue returns a pseudo-random value in [0,1] for integer coordinates.
func latticeValue(x, y int, seed int64) float64 {
	h := uint64(seed)
	h ^= uint64(x) * 0x517cc1b727220a95
	h ^= uint64(y) * 0x6c62272e07bb0142
	h = h*0x2545f4914f6cdd1d + 0x14057b7ef767814f
	h ^= h >> 16
	h *= 0xd6e8feb86659fd93
	h ^= h >> 16
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}
