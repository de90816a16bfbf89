package sim

import (
	"fmt"
	"strings"
)

// Terrain identifies the surface of one grid cell.
type Terrain uint8

const (
	TerrainOpen   Terrain = iota // Walkable ground
	TerrainWater                 // Lake / river, blocks entry
	TerrainForest                // Dense trees, blocks entry
	terrainCount                 // sentinel
)

func (t Terrain) String() string {
	switch t {
	case TerrainOpen:
		return "open"
	case TerrainWater:
		return "water"
	case TerrainForest:
		return "forest"
	default:
		return "unknown"
	}
}

// Symbol returns the single-character glyph used in text renderings.
func (t Terrain) Symbol() byte {
	switch t {
	case TerrainWater:
		return '~'
	case TerrainForest:
		return '%'
	default:
		return '.'
	}
}

// terrainFromSymbol is the inverse of Symbol.
func terrainFromSymbol(c byte) (Terrain, bool) {
	switch c {
	case '.':
		return TerrainOpen, true
	case '~':
		return TerrainWater, true
	case '%':
		return TerrainForest, true
	default:
		return 0, false
	}
}

// terrainBlocksMovement returns true if no entity may enter the terrain.
func terrainBlocksMovement(t Terrain) bool {
	return t == TerrainWater || t == TerrainForest
}

// rollTerrain maps one draw in [0,10) onto the 70/20/10 open/forest/water split.
func rollTerrain(rng Rand) Terrain {
	switch n := rng.Intn(10); {
	case n < 7:
		return TerrainOpen
	case n < 9:
		return TerrainForest
	default:
		return TerrainWater
	}
}

// Grid is the immutable terrain layer of a match. It never stores entities;
// occupancy is answered by the Match.
type Grid struct {
	width  int
	height int
	cells  []Terrain // row-major: index = y*width + x
}

// GenerateGrid assigns every cell independently with one uniform draw.
// There is no spatial correlation and no connectivity guarantee.
func GenerateGrid(width, height int, rng Rand) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("generate %dx%d grid: %w", width, height, ErrInvalidDimensions)
	}
	g := &Grid{width: width, height: height, cells: make([]Terrain, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x] = rollTerrain(rng)
		}
	}
	return g, nil
}

// ParseGrid builds a fixed grid from symbol rows ('.' open, '%' forest,
// '~' water). All rows must have the same length.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("parse grid: %w", ErrInvalidDimensions)
	}
	width, height := len(rows[0]), len(rows)
	g := &Grid{width: width, height: height, cells: make([]Terrain, width*height)}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("parse grid: row %d has %d cells, want %d: %w", y, len(row), width, ErrInvalidTerrain)
		}
		for x := 0; x < width; x++ {
			t, ok := terrainFromSymbol(row[x])
			if !ok {
				return nil, fmt.Errorf("parse grid: cell (%d,%d) symbol %q: %w", x, y, row[x], ErrInvalidTerrain)
			}
			g.cells[y*width+x] = t
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// IsValidPosition reports whether (x, y) lies inside the grid.
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsTraversable reports whether an entity may stand on (x, y). Out-of-bounds
// cells are never traversable.
func (g *Grid) IsTraversable(x, y int) bool {
	if !g.IsValidPosition(x, y) {
		return false
	}
	return !terrainBlocksMovement(g.cells[y*g.width+x])
}

// At returns the terrain at (x, y). Out-of-bounds reads return TerrainOpen;
// callers check IsValidPosition first.
func (g *Grid) At(x, y int) Terrain {
	if !g.IsValidPosition(x, y) {
		return TerrainOpen
	}
	return g.cells[y*g.width+x]
}

// Counts tallies cells per terrain kind.
func (g *Grid) Counts() map[Terrain]int {
	out := make(map[Terrain]int, terrainCount)
	for _, t := range g.cells {
		out[t]++
	}
	return out
}

// Rows returns the terrain as symbol rows, the same format ParseGrid reads.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		sb.Reset()
		for x := 0; x < g.width; x++ {
			sb.WriteByte(g.cells[y*g.width+x].Symbol())
		}
		rows[y] = sb.String()
	}
	return rows
}
