// Package maploader reads level files and turns them into a tile grid
// with the player spawn point already extracted.
package maploader

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/world/grid"
)

// MapData represents the level file as stored on disk
type MapData struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`     // optional; checked against rows when set
	Height   int      `json:"height"`    // optional; checked against rows when set
	TileSize int      `json:"tile_size"` // Pixel edge length of a cell
	Rows     []string `json:"rows"`      // Digit rows, row 0 at the top
}

// Level is a loaded level: the live grid and where the player starts
type Level struct {
	Name     string
	Grid     *grid.Grid
	SpawnCol int
	SpawnRow int
	SpawnPos geom.Vec2
}

// LoadLevel loads a level from a JSON file
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}

	level, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return level, nil
}

// ParseLevel decodes level JSON, builds the grid and consumes the spawn
// marker
func ParseLevel(data []byte) (*Level, error) {
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}

	if err := validateMapData(&mapData); err != nil {
		return nil, fmt.Errorf("invalid level data: %w", err)
	}

	return FromRows(mapData.Name, mapData.TileSize, mapData.Rows)
}

// FromRows builds a level from digit rows. The unique spawn marker is
// located once and cleared to empty.
func FromRows(name string, tileSize int, rows []string) (*Level, error) {
	g, err := grid.Parse(tileSize, rows)
	if err != nil {
		return nil, err
	}

	col, row, ok := g.FindFirstTile(grid.IsSpawn)
	if !ok {
		return nil, fmt.Errorf("level %q has no player spawn (tile %d)", name, grid.TileSpawn)
	}
	g.Set(col, row, grid.TileEmpty)
	if _, _, dup := g.FindFirstTile(grid.IsSpawn); dup {
		return nil, fmt.Errorf("level %q has more than one player spawn", name)
	}

	return &Level{
		Name:     name,
		Grid:     g,
		SpawnCol: col,
		SpawnRow: row,
		SpawnPos: g.CellCenter(col, row),
	}, nil
}

// validateMapData checks if the level data is valid
func validateMapData(data *MapData) error {
	if data.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %d", data.TileSize)
	}

	if len(data.Rows) == 0 {
		return fmt.Errorf("level has no rows")
	}

	if data.Height > 0 && len(data.Rows) != data.Height {
		return fmt.Errorf("rows height mismatch: expected %d, got %d", data.Height, len(data.Rows))
	}

	if data.Width > 0 {
		for y, row := range data.Rows {
			if len(row) != data.Width {
				return fmt.Errorf("rows width mismatch at row %d: expected %d, got %d", y, data.Width, len(row))
			}
		}
	}

	return nil
}
