package content

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoArchetypes is returned for a guest table without entries
	ErrNoArchetypes = errors.New("content: guest table is empty")
	// ErrNoLines is returned for an archetype that has nothing to say
	ErrNoLines = errors.New("content: archetype has no lines")
)

// Archetype is a kind of passenger with its own way of talking. Greetings
// may contain {floor}, which is replaced with the destination name.
type Archetype struct {
	Name      string   `yaml:"name"`
	Color     string   `yaml:"color"`
	Greetings []string `yaml:"greetings"`
	Thanks    []string `yaml:"thanks"`
}

type guestListFile struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

// LoadArchetypes reads the guest archetype table from a YAML file
func LoadArchetypes(path string) ([]Archetype, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guests: %w", err)
	}
	return ParseArchetypes(data)
}

// ParseArchetypes decodes and validates a guest archetype table
func ParseArchetypes(data []byte) ([]Archetype, error) {
	var f guestListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse guests: %w", err)
	}
	if len(f.Archetypes) == 0 {
		return nil, ErrNoArchetypes
	}
	for _, a := range f.Archetypes {
		if a.Name == "" {
			return nil, fmt.Errorf("guest archetype without name")
		}
		if len(a.Greetings) == 0 || len(a.Thanks) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoLines, a.Name)
		}
	}
	return f.Archetypes, nil
}

// DefaultArchetypes returns the built-in passengers
func DefaultArchetypes() []Archetype {
	return []Archetype{
		{
			Name:      "tourist",
			Color:     "#e0c040",
			Greetings: []string{"Is this the way to {floor}?", "{floor}, please! I have a map."},
			Thanks:    []string{"What a view!", "I'll tell everyone back home."},
		},
		{
			Name:      "clerk",
			Color:     "#a0a0b0",
			Greetings: []string{"{floor}. I'm late.", "{floor}, and no detours."},
			Thanks:    []string{"Finally.", "Clocking in."},
		},
		{
			Name:      "courier",
			Color:     "#40c080",
			Greetings: []string{"Package for {floor}!", "Drop me at {floor}, quick."},
			Thanks:    []string{"Signed, sealed, delivered.", "Thanks, pal."},
		},
	}
}
