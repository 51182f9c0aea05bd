// Package content loads the static tables that give the cab its flavor:
// the floors it stops at and the guests who ride it.
package content

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoFloors is returned for a floor table without entries
	ErrNoFloors = errors.New("content: floor table is empty")
	// ErrDuplicateFloor is returned when two floors share an id
	ErrDuplicateFloor = errors.New("content: duplicate floor id")
)

// Floor is one stop of the elevator. Floors are ordered bottom to top and
// never change after loading.
type Floor struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Flavor     string `yaml:"flavor"`
	Background string `yaml:"background"` // hex color, e.g. "#203040"
	Level      int    `yaml:"level"`      // number shown on the indicator; <= 0 is a basement
}

type floorListFile struct {
	Floors []Floor `yaml:"floors"`
}

// LoadFloors reads the floor table from a YAML file
func LoadFloors(path string) ([]Floor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read floors: %w", err)
	}
	return ParseFloors(data)
}

// ParseFloors decodes and validates a floor table
func ParseFloors(data []byte) ([]Floor, error) {
	var f floorListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse floors: %w", err)
	}
	if err := ValidateFloors(f.Floors); err != nil {
		return nil, err
	}
	return f.Floors, nil
}

// ValidateFloors checks that the table is non-empty with unique ids
func ValidateFloors(floors []Floor) error {
	if len(floors) == 0 {
		return ErrNoFloors
	}
	seen := make(map[string]int, len(floors))
	for i, fl := range floors {
		if fl.ID == "" {
			return fmt.Errorf("floor %d has no id", i)
		}
		if prev, ok := seen[fl.ID]; ok {
			return fmt.Errorf("%w: %q at %d and %d", ErrDuplicateFloor, fl.ID, prev, i)
		}
		seen[fl.ID] = i
	}
	return nil
}

// DefaultFloors returns the built-in building used when no table is given
func DefaultFloors() []Floor {
	return []Floor{
		{ID: "parking", Name: "Parking", Flavor: "Smells of tires and rain.", Background: "#202028", Level: -1},
		{ID: "lobby", Name: "Lobby", Flavor: "Marble, ferns and a bored doorman.", Background: "#30406a", Level: 0},
		{ID: "offices", Name: "Offices", Flavor: "Carpet tiles as far as the eye can see.", Background: "#3a5a40", Level: 1},
		{ID: "restaurant", Name: "Restaurant", Flavor: "Someone ordered the soup again.", Background: "#6a3a30", Level: 2},
		{ID: "roof", Name: "Roof", Flavor: "Wind, pigeons, a helipad.", Background: "#6080a0", Level: 3},
	}
}
