package world

import "image"

// TileKind identifies the base surface of a tile as reported by the engine.
type TileKind uint8

const (
	TileDeepWater    TileKind = iota // Open sea, not walkable
	TileShallowWater                 // Wadeable water
	TileSand                         // Beach / desert
	TileGrass                        // Default open ground
	TileStreet                       // Paved road
	TileHill                         // Raised ground
	TileMountain                     // Impassable rock
	TileSnow                         // Snow field
	TileLava                         // Lava pool
	TileTeleport                     // Teleport pad
	TileWall                         // Built wall
	tileKindCount                    // sentinel
)

// TileKindCount is the number of defined tile kinds.
const TileKindCount = int(tileKindCount)

var tileKindNames = [tileKindCount]string{
	TileDeepWater:    "DeepWater",
	TileShallowWater: "ShallowWater",
	TileSand:         "Sand",
	TileGrass:        "Grass",
	TileStreet:       "Street",
	TileHill:         "Hill",
	TileMountain:     "Mountain",
	TileSnow:         "Snow",
	TileLava:         "Lava",
	TileTeleport:     "Teleport",
	TileWall:         "Wall",
}

func (k TileKind) String() string {
	if k < tileKindCount {
		return tileKindNames[k]
	}
	return "Unknown"
}

// Walkable reports whether the agent may stand on the tile kind.
func (k TileKind) Walkable() bool {
	switch k {
	case TileDeepWater, TileMountain, TileLava, TileWall:
		return false
	default:
		return true
	}
}

// ContentKind identifies an object sitting on a tile.
type ContentKind uint8

const (
	ContentNone ContentKind = iota // Empty tile
	ContentRock
	ContentTree
	ContentGarbage
	ContentFire
	ContentCoin
	ContentBin
	ContentCrate
	ContentBank
	ContentWater
	ContentMarket
	ContentFish
	ContentBuilding
	ContentBush
	ContentJollyBlock
	ContentScarecrow
	contentKindCount // sentinel
)

// ContentKindCount is the number of defined content kinds, ContentNone included.
const ContentKindCount = int(contentKindCount)

var contentKindNames = [contentKindCount]string{
	ContentNone:       "None",
	ContentRock:       "Rock",
	ContentTree:       "Tree",
	ContentGarbage:    "Garbage",
	ContentFire:       "Fire",
	ContentCoin:       "Coin",
	ContentBin:        "Bin",
	ContentCrate:      "Crate",
	ContentBank:       "Bank",
	ContentWater:      "Water",
	ContentMarket:     "Market",
	ContentFish:       "Fish",
	ContentBuilding:   "Building",
	ContentBush:       "Bush",
	ContentJollyBlock: "JollyBlock",
	ContentScarecrow:  "Scarecrow",
}

func (c ContentKind) String() string {
	if c < contentKindCount {
		return contentKindNames[c]
	}
	return "Unknown"
}

// Tile is one engine-reported cell.
type Tile struct {
	Kind    TileKind
	Content ContentKind
	Amount  int // quantity carried by the content (coins, rocks, ...)
}

// Grid is the engine's tile array. Cells the engine has not revealed are nil.
type Grid struct {
	Cols  int
	Rows  int
	Tiles []*Tile // row-major: index = row*Cols + col
}

// NewGrid creates a grid with every cell unknown.
func NewGrid(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Grid{Cols: cols, Rows: rows, Tiles: make([]*Tile, cols*rows)}
}

// NewFilledGrid creates a grid where every cell is a known tile of kind k.
func NewFilledGrid(cols, rows int, k TileKind) *Grid {
	g := NewGrid(cols, rows)
	for i := range g.Tiles {
		g.Tiles[i] = &Tile{Kind: k}
	}
	return g
}

// InBounds reports whether (col,row) indexes a cell of the grid.
func (g *Grid) InBounds(col, row int) bool {
	return g != nil && col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// Contains is InBounds for a tile coordinate point.
func (g *Grid) Contains(p image.Point) bool {
	return g.InBounds(p.X, p.Y)
}

// At returns the tile at (col,row), or nil if out of bounds or unknown.
func (g *Grid) At(col, row int) *Tile {
	if !g.InBounds(col, row) {
		return nil
	}
	return g.Tiles[row*g.Cols+col]
}

// Set stores a copy of t at (col,row). Out-of-bounds writes are ignored.
func (g *Grid) Set(col, row int, t Tile) {
	if !g.InBounds(col, row) {
		return
	}
	g.Tiles[row*g.Cols+col] = &t
}

// Forget marks (col,row) unknown again.
func (g *Grid) Forget(col, row int) {
	if !g.InBounds(col, row) {
		return
	}
	g.Tiles[row*g.Cols+col] = nil
}

// Clone returns a deep copy so the caller may keep mutating its own grid.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := NewGrid(g.Cols, g.Rows)
	for i, t := range g.Tiles {
		if t != nil {
			c := *t
			out.Tiles[i] = &c
		}
	}
	return out
}

// Known returns how many cells hold a tile.
func (g *Grid) Known() int {
	n := 0
	for _, t := range g.Tiles {
		if t != nil {
			n++
		}
	}
	return n
}

// ParseContentKind returns the content kind named s, as produced by String.
func ParseContentKind(s string) (ContentKind, bool) {
	for c := ContentKind(0); c < contentKindCount; c++ {
		if contentKindNames[c] == s {
			return c, true
		}
	}
	return 0, false
}
