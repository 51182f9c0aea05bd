package maploader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/world/grid"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel([]byte(`{
		"name": "test cab",
		"width": 4,
		"height": 3,
		"tile_size": 16,
		"rows": ["0000", "0090", "1111"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "test cab", level.Name)
	assert.Equal(t, 2, level.SpawnCol)
	assert.Equal(t, 1, level.SpawnRow)
	assert.Equal(t, geom.Vec2{X: 40, Y: 24}, level.SpawnPos)
	assert.Equal(t, grid.TileEmpty, level.Grid.TileAt(2, 1), "spawn marker is consumed")
	assert.Equal(t, grid.TileBlock, level.Grid.TileAt(0, 2))
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad json", `{"rows": [`},
		{"no tile size", `{"rows": ["9"]}`},
		{"no rows", `{"tile_size": 16}`},
		{"height mismatch", `{"tile_size": 16, "height": 2, "rows": ["9"]}`},
		{"width mismatch", `{"tile_size": 16, "width": 2, "rows": ["9"]}`},
		{"ragged", `{"tile_size": 16, "rows": ["90", "0"]}`},
		{"unknown tile", `{"tile_size": 16, "rows": ["95"]}`},
		{"no spawn", `{"tile_size": 16, "rows": ["00"]}`},
		{"two spawns", `{"tile_size": 16, "rows": ["99"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestLoadLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cab.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tile_size": 8, "rows": ["9", "1"]}`), 0o644))

	level, err := LoadLevel(path)
	require.NoError(t, err)
	assert.Equal(t, 8, level.Grid.CellSize())

	_, err = LoadLevel(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadShippedCab(t *testing.T) {
	level, err := LoadLevel(filepath.Join("..", "..", "..", "data", "cab.json"))
	require.NoError(t, err)

	assert.Equal(t, 12, level.Grid.Width())
	assert.Equal(t, 12, level.Grid.Height())
	assert.Equal(t, 6, level.SpawnCol)
	assert.Equal(t, 7, level.SpawnRow)
	assert.Equal(t, geom.Vec2{X: 104, Y: 120}, level.SpawnPos)
	assert.Equal(t, grid.TileFloor, level.Grid.TileAt(2, 1))
}
