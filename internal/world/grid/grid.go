// Package grid implements the tile arena: a fixed-size rectangular array of
// tile codes with coordinate transforms and rectangle queries used by the
// motion resolver. Obstacle geometry is computed from the live tiles on
// every query, so clearing a cell can never leave a stale wall behind.
package grid

import (
	"fmt"
	"math"
	"sync"

	"chosenoffset.com/elevator/internal/core/geom"
)

// Tile is a tile code as written in the level rows
type Tile int

const (
	TileEmpty Tile = 0 // Open space
	TileBlock Tile = 1 // Solid from every side
	TileFloor Tile = 2 // One-way platform, solid only from above
	TileSpawn Tile = 9 // Player spawn marker, cleared after load
)

// FloorThickness is the height in pixels of the band a floor tile
// contributes at the top of its cell.
const FloorThickness = 8

// Predicate selects tile codes
type Predicate func(Tile) bool

// IsSolid matches full-cell obstacles
func IsSolid(t Tile) bool { return t == TileBlock }

// IsFloor matches one-way platforms
func IsFloor(t Tile) bool { return t == TileFloor }

// IsSpawn matches the player spawn marker
func IsSpawn(t Tile) bool { return t == TileSpawn }

// Known reports whether t is one of the enumerated tile codes
func Known(t Tile) bool {
	switch t {
	case TileEmpty, TileBlock, TileFloor, TileSpawn:
		return true
	}
	return false
}

// Grid is a rectangular tile map. Its size never changes after Parse.
type Grid struct {
	mu       sync.RWMutex
	cellSize int
	width    int
	height   int
	tiles    [][]Tile // [row][col]
}

// Parse builds a grid from rows of decimal digits, row 0 at the top
func Parse(cellSize int, rows []string) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size: %d", cellSize)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}

	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("grid row 0 is empty")
	}

	tiles := make([][]Tile, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid width mismatch at row %d: expected %d, got %d", y, width, len(row))
		}
		tiles[y] = make([]Tile, width)
		for x := 0; x < width; x++ {
			c := row[x]
			if c < '0' || c > '9' {
				return nil, fmt.Errorf("invalid tile %q at (%d, %d)", c, x, y)
			}
			t := Tile(c - '0')
			if !Known(t) {
				return nil, fmt.Errorf("unknown tile code %d at (%d, %d)", t, x, y)
			}
			tiles[y][x] = t
		}
	}

	return &Grid{
		cellSize: cellSize,
		width:    width,
		height:   len(rows),
		tiles:    tiles,
	}, nil
}

// CellSize returns the pixel edge length of one cell
func (g *Grid) CellSize() int { return g.cellSize }

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Bounds returns the arena rectangle in pixels
func (g *Grid) Bounds() geom.Rect {
	cs := float64(g.cellSize)
	return geom.Rect{W: float64(g.width) * cs, H: float64(g.height) * cs}
}

func (g *Grid) inside(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// TileAt returns the tile at (col, row), or TileEmpty when out of range
func (g *Grid) TileAt(col, row int) Tile {
	if !g.inside(col, row) {
		return TileEmpty
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tiles[row][col]
}

// Set replaces one cell. Out of range coordinates are ignored.
func (g *Grid) Set(col, row int, t Tile) {
	if !g.inside(col, row) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tiles[row][col] = t
}

// CellRect returns the pixel rectangle of a cell
func (g *Grid) CellRect(col, row int) geom.Rect {
	cs := float64(g.cellSize)
	return geom.Rect{X: float64(col) * cs, Y: float64(row) * cs, W: cs, H: cs}
}

// CellCenter returns the pixel center of a cell
func (g *Grid) CellCenter(col, row int) geom.Vec2 {
	return g.CellRect(col, row).Center()
}

// CellAt converts a pixel coordinate into the cell containing it
func (g *Grid) CellAt(x, y float64) (col, row int) {
	cs := float64(g.cellSize)
	return int(math.Floor(x / cs)), int(math.Floor(y / cs))
}

// covered returns the inclusive cell range touched by r, clipped to the grid.
// ok is false when nothing is covered.
func (g *Grid) covered(r geom.Rect) (x0, y0, x1, y1 int, ok bool) {
	if r.IsEmpty() {
		return 0, 0, 0, 0, false
	}
	cs := float64(g.cellSize)
	x0 = int(math.Floor(r.Left() / cs))
	y0 = int(math.Floor(r.Top() / cs))
	// Right and bottom edges are exclusive: a rect ending exactly on a cell
	// boundary does not touch the next cell.
	x1 = int(math.Ceil(r.Right()/cs)) - 1
	y1 = int(math.Ceil(r.Bottom()/cs)) - 1

	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, g.width-1)
	y1 = min(y1, g.height-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

// CellRectsMatching returns the obstacle rectangles of every cell under
// query whose tile satisfies pred. Floor tiles contribute only the top
// FloorThickness pixels of their cell; every other tile its full cell.
func (g *Grid) CellRectsMatching(pred Predicate, query geom.Rect) []geom.Rect {
	x0, y0, x1, y1, ok := g.covered(query)
	if !ok {
		return nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	var rects []geom.Rect
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := g.tiles[y][x]
			if !pred(t) {
				continue
			}
			r := g.CellRect(x, y)
			if IsFloor(t) {
				r.H = math.Min(FloorThickness, r.H)
			}
			rects = append(rects, r)
		}
	}
	return rects
}

// FindFirstTile scans in row-major order and returns the first match
func (g *Grid) FindFirstTile(pred Predicate) (col, row int, ok bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if pred(g.tiles[y][x]) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// FindTileInRect reports whether any cell covered by r matches pred
func (g *Grid) FindTileInRect(pred Predicate, r geom.Rect) bool {
	x0, y0, x1, y1, ok := g.covered(r)
	if !ok {
		return false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if pred(g.tiles[y][x]) {
				return true
			}
		}
	}
	return false
}
