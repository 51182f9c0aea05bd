package elevator

import (
	"chosenoffset.com/elevator/internal/content"
	"chosenoffset.com/elevator/internal/entity"
)

// SpawnRequest asks the host to place a new actor in the cab
type SpawnRequest struct {
	Kind      entity.Kind
	Column    int    // tile column to drop the actor in
	Direction int    // vote direction, coins only
	Goal      int    // destination floor index, guests only
	Archetype string // guest archetype name
}

// Dialog is a speech bubble anchored to an actor
type Dialog struct {
	Anchor  *entity.Actor
	Text    string
	Seconds float64
}

// Host is the scene the scheduler populates. Spawn may return nil when the
// host refuses the request.
type Host interface {
	Spawn(req SpawnRequest) *entity.Actor
	ShowDialog(d Dialog)
	Despawn(kind entity.Kind)
	Count(kind entity.Kind) int
	GridWidth() int
}

// Status receives display notifications. It never formats anything back.
type Status interface {
	FloorChanged(index int, floor content.Floor)
	ScoreIncremented(total int)
	OutageBegan()
	OutageEnded()
}

type nopStatus struct{}

func (nopStatus) FloorChanged(int, content.Floor) {}
func (nopStatus) ScoreIncremented(int) {}
func (nopStatus) OutageBegan() {}
func (nopStatus) OutageEnded() {}
