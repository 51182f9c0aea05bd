// Package spawn holds the stateless choices the elevator makes when it
// fills the cab: where things appear, where guests want to go and what
// they say about it.
package spawn

import (
	"strings"

	"chosenoffset.com/elevator/internal/dice"
)

// FloorPlaceholder is replaced by the destination floor name in guest lines
const FloorPlaceholder = "{floor}"

// Column picks a random tile column in [0, width)
func Column(r *dice.Roller, width int) int {
	return r.Intn(width)
}

// Destination picks a random floor index other than current. It reports
// false when there is no other floor to go to.
func Destination(r *dice.Roller, floorCount, current int) (int, bool) {
	if floorCount < 2 {
		return 0, false
	}
	// Draw from the floorCount-1 other floors and skip over current.
	d := r.Intn(floorCount - 1)
	if d >= current {
		d++
	}
	return d, true
}

// Archetype picks one of the given archetypes. It returns -1 when the
// list is empty.
func Archetype[T any](r *dice.Roller, archetypes []T) int {
	if len(archetypes) == 0 {
		return -1
	}
	return r.Intn(len(archetypes))
}

// Line picks a line from pool and splices the floor name into it
func Line(r *dice.Roller, pool []string, floorName string) string {
	if len(pool) == 0 {
		return ""
	}
	return strings.ReplaceAll(pool[r.Intn(len(pool))], FloorPlaceholder, floorName)
}

// CoinDirections returns the vote directions of the coin pair spawned at
// every stop: one up, one down
func CoinDirections() []int {
	return []int{+1, -1}
}
