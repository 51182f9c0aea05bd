// Package elevator runs the cab: an explicit phase machine that opens and
// closes the doors on a simulation clock, travels between floors and fills
// the cab with enemies, coins and guests at every stop.
package elevator

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"chosenoffset.com/elevator/internal/content"
	"chosenoffset.com/elevator/internal/dice"
	"chosenoffset.com/elevator/internal/entity"
	"chosenoffset.com/elevator/internal/simulation"
	"chosenoffset.com/elevator/internal/spawn"
)

var (
	// ErrNoFloors is returned when the scheduler has nowhere to stop
	ErrNoFloors = errors.New("elevator: floor table is empty")
	// ErrNoHost is returned when nothing can receive spawns
	ErrNoHost = errors.New("elevator: host is required")
	// ErrNoRoller is returned when no random source is given
	ErrNoRoller = errors.New("elevator: roller is required")
)

// Phase is the state of the cab
type Phase int

const (
	PhaseClosedWait Phase = iota // Doors shut, travelling
	PhaseOpening                 // Doors sliding open
	PhaseOpenWait                // Doors open, dwelling
	PhaseClosing                 // Doors sliding shut
	PhaseOutage                  // Doors shut, power out
)

func (p Phase) String() string {
	switch p {
	case PhaseClosedWait:
		return "closed"
	case PhaseOpening:
		return "opening"
	case PhaseOpenWait:
		return "open"
	case PhaseClosing:
		return "closing"
	case PhaseOutage:
		return "outage"
	}
	return "unknown"
}

// Options configures a Scheduler
type Options struct {
	Config     *simulation.Config // nil uses simulation.DefaultConfig
	Floors     []content.Floor
	Archetypes []content.Archetype
	Host       Host
	Status     Status // optional
	Roller     *dice.Roller
	Logger     *zap.Logger // optional
}

// Scheduler is the elevator state machine. The aperture is only a
// rendering value; phase changes happen in exactly one place, advanceDoor.
type Scheduler struct {
	cfg        simulation.ElevatorConfig
	spawnCfg   simulation.SpawnConfig
	scoreCfg   simulation.ScoreConfig
	dialogSecs float64
	base       float64

	floors     []content.Floor
	archetypes []content.Archetype
	host       Host
	status     Status
	roller     *dice.Roller
	log        *zap.Logger

	phase       Phase
	aperture    float64
	now         float64
	next        float64
	floor       int
	pending     int
	travel      int
	powered     bool
	gravity     float64
	shake       spring
	display     float64
	transitions int
	score       int

	guest     *entity.Actor
	guestArch int
}

// New validates opts and builds a scheduler. The cab starts closed at the
// configured start floor and immediately begins opening.
func New(opts Options) (*Scheduler, error) {
	if len(opts.Floors) == 0 {
		return nil, ErrNoFloors
	}
	if opts.Host == nil {
		return nil, ErrNoHost
	}
	if opts.Roller == nil {
		return nil, ErrNoRoller
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	start := cfg.Elevator.StartFloor
	if start < 0 || start >= len(opts.Floors) {
		return nil, fmt.Errorf("start floor %d outside [0, %d)", start, len(opts.Floors))
	}

	status := opts.Status
	if status == nil {
		status = nopStatus{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scheduler{
		cfg:        cfg.Elevator,
		spawnCfg:   cfg.Spawn,
		scoreCfg:   cfg.Score,
		dialogSecs: cfg.Dialog.Seconds,
		base:       cfg.Physics.Gravity,
		floors:     opts.Floors,
		archetypes: opts.Archetypes,
		host:       opts.Host,
		status:     status,
		roller:     opts.Roller,
		log:        logger,
		phase:      PhaseOpening,
		aperture:   1,
		floor:      start,
		powered:    true,
		gravity:    cfg.Physics.Gravity,
		guestArch:  -1,
	}
	s.display = float64(s.Floor().Level)
	return s, nil
}

// Tick advances the simulation clock by dt seconds and runs one step of
// the phase machine
func (s *Scheduler) Tick(dt float64) {
	s.now += dt
	s.shake.step()
	s.checkGuest()

	switch s.phase {
	case PhaseOpening:
		if s.advanceDoor(0) {
			s.opened()
		}
	case PhaseOpenWait:
		if s.now >= s.next {
			s.beginClosing()
		}
	case PhaseClosing:
		if s.advanceDoor(1) {
			s.closed()
		}
	case PhaseOutage:
		if s.now >= s.next {
			s.endOutage()
		}
	case PhaseClosedWait:
		if s.cfg.FloorDisplay == simulation.DisplayContinuous {
			s.display += float64(s.travel) * s.cfg.FloorDrift
		}
		if s.now >= s.next {
			s.beginOpening()
		}
	}
}

// advanceDoor blends the aperture toward target and reports whether the
// door arrived this tick. Arrival snaps the aperture, so it is reported
// once per approach.
func (s *Scheduler) advanceDoor(target float64) bool {
	if s.aperture == target {
		return false
	}
	s.aperture = s.aperture*s.cfg.DoorBlend + target*(1-s.cfg.DoorBlend)
	if math.Abs(s.aperture-target) >= s.cfg.DoorEpsilon {
		return false
	}
	s.aperture = target
	s.transitions++
	return true
}

// opened runs the arrival effects once the doors are fully open
func (s *Scheduler) opened() {
	s.floor = max(0, min(s.FloorCount()-1, s.floor+s.pending))
	s.pending = 0
	s.travel = 0
	s.display = float64(s.Floor().Level)
	s.phase = PhaseOpenWait
	s.next = s.now + s.roller.Range(s.cfg.DwellMin, s.cfg.DwellMax)

	s.log.Debug("doors open",
		zap.Int("floor", s.floor),
		zap.String("name", s.Floor().Name),
		zap.Float64("close_at", s.next))
	s.status.FloorChanged(s.floor, s.Floor())

	width := s.host.GridWidth()
	if s.host.Count(entity.KindEnemy) < s.spawnCfg.MaxEnemies {
		s.host.Spawn(SpawnRequest{Kind: entity.KindEnemy, Column: spawn.Column(s.roller, width)})
	}
	for _, dir := range spawn.CoinDirections() {
		s.host.Spawn(SpawnRequest{Kind: entity.KindCoin, Column: spawn.Column(s.roller, width), Direction: dir})
	}

	if s.guest == nil {
		s.spawnGuest()
		return
	}
	if g, ok := entity.GuestOf(s.guest); ok && g.Goal() == s.floor && !g.Exiting() {
		s.deliver(g)
	}
}

func (s *Scheduler) beginClosing() {
	s.phase = PhaseClosing
	s.host.Despawn(entity.KindCoin)
	s.log.Debug("doors closing", zap.Int("pending", s.pending))
}

// closed picks the travel direction once the doors are shut and decides
// whether the power fails on this trip
func (s *Scheduler) closed() {
	if s.pending == 0 {
		s.pending = s.roller.Sign()
	}
	s.travel = s.pending
	s.gravity = s.base + float64(s.travel)*s.cfg.TravelGravity
	s.shake.kick(float64(s.travel) * s.cfg.ShakeImpulse)

	if s.roller.Chance(s.cfg.OutageChance) {
		s.phase = PhaseOutage
		s.powered = false
		s.next = s.now + s.roller.Range(s.cfg.OutageMin, s.cfg.OutageMax)
		s.log.Info("power outage", zap.Float64("until", s.next))
		s.status.OutageBegan()
		return
	}
	s.startTravel()
}

func (s *Scheduler) endOutage() {
	s.powered = true
	s.log.Info("power restored")
	s.status.OutageEnded()
	s.startTravel()
}

func (s *Scheduler) startTravel() {
	s.phase = PhaseClosedWait
	s.next = s.now + s.roller.Range(s.cfg.TravelMin, s.cfg.TravelMax)
	s.log.Debug("travelling", zap.Int("direction", s.travel), zap.Float64("arrive_at", s.next))
}

func (s *Scheduler) beginOpening() {
	s.phase = PhaseOpening
	s.gravity = s.base
}

// Vote commits the cab to a travel direction and closes the doors early.
// Votes are only taken while the doors stand open.
func (s *Scheduler) Vote(dir int) bool {
	if s.phase != PhaseOpenWait {
		return false
	}
	switch {
	case dir > 0:
		s.pending = 1
	case dir < 0:
		s.pending = -1
	default:
		s.pending = 0
	}
	s.next = s.now
	s.log.Info("vote", zap.Int("direction", s.pending), zap.Int("floor", s.floor))
	s.beginClosing()
	return true
}

// AddScore awards points and notifies the status sink
func (s *Scheduler) AddScore(points int) {
	if points == 0 {
		return
	}
	s.score += points
	s.status.ScoreIncremented(s.score)
}

func (s *Scheduler) spawnGuest() {
	dest, ok := spawn.Destination(s.roller, s.FloorCount(), s.floor)
	if !ok {
		return
	}
	idx := spawn.Archetype(s.roller, s.archetypes)
	name := ""
	if idx >= 0 {
		name = s.archetypes[idx].Name
	}

	a := s.host.Spawn(SpawnRequest{
		Kind:      entity.KindGuest,
		Column:    spawn.Column(s.roller, s.host.GridWidth()),
		Goal:      dest,
		Archetype: name,
	})
	if a == nil {
		return
	}
	s.guest = a
	s.guestArch = idx
	s.log.Debug("guest boarded", zap.String("archetype", name), zap.String("goal", s.floors[dest].Name))

	if idx >= 0 {
		s.say(spawn.Line(s.roller, s.archetypes[idx].Greetings, s.floors[dest].Name))
	}
}

func (s *Scheduler) deliver(g *entity.Guest) {
	if s.guestArch >= 0 {
		s.say(spawn.Line(s.roller, s.archetypes[s.guestArch].Thanks, s.Floor().Name))
	}
	g.BeginExit()
	s.log.Info("guest delivered", zap.String("floor", s.Floor().Name))
}

func (s *Scheduler) say(text string) {
	if text == "" || s.guest == nil {
		return
	}
	s.host.ShowDialog(Dialog{Anchor: s.guest, Text: text, Seconds: s.dialogSecs})
}

// checkGuest finishes a delivery once the exit walk is over, or forgets a
// guest whose actor was removed by someone else
func (s *Scheduler) checkGuest() {
	if s.guest == nil {
		return
	}
	g, ok := entity.GuestOf(s.guest)
	if !ok {
		s.guest = nil
		return
	}
	if g.Exited() {
		s.guest.Stop()
		s.guest = nil
		s.guestArch = -1
		s.AddScore(s.scoreCfg.Delivery)
		if s.phase == PhaseOpenWait {
			s.spawnGuest()
		}
		return
	}
	if s.guest.Stopped() {
		s.guest = nil
		s.guestArch = -1
	}
}

// Gravity implements entity.GravitySource
func (s *Scheduler) Gravity() float64 { return s.gravity }

func (s *Scheduler) Phase() Phase { return s.phase }
func (s *Scheduler) Aperture() float64 { return s.aperture }
func (s *Scheduler) Now() float64 { return s.now }
func (s *Scheduler) NextEvent() float64 { return s.next }
func (s *Scheduler) FloorIndex() int { return s.floor }
func (s *Scheduler) Floor() content.Floor { return s.floors[s.floor] }
func (s *Scheduler) FloorCount() int { return len(s.floors) }
func (s *Scheduler) Pending() int { return s.pending }
func (s *Scheduler) TravelDirection() int { return s.travel }
func (s *Scheduler) Powered() bool { return s.powered }
func (s *Scheduler) Score() int { return s.score }
func (s *Scheduler) Guest() *entity.Actor { return s.guest }
func (s *Scheduler) Transitions() int { return s.transitions }

// Shake returns the vertical offset of the cab from the shake spring
func (s *Scheduler) Shake() float64 { return s.shake.pos }

// ControlsLocked reports whether the player has lost control. This is the
// case during a power outage.
func (s *Scheduler) ControlsLocked() bool { return !s.powered }

// DisplayFloor returns the level shown on the indicator. In discrete mode
// it is the current floor's level; in continuous mode it drifts while the
// cab travels and snaps back on arrival.
func (s *Scheduler) DisplayFloor() float64 {
	if s.cfg.FloorDisplay == simulation.DisplayContinuous {
		return s.display
	}
	return float64(s.Floor().Level)
}
