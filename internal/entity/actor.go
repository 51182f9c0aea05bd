// Package entity implements every moving thing in the cab. There is one
// concrete Actor type that owns position, collider and the jump/gravity
// integrator; per-archetype decisions come from a small Behavior value
// selected at spawn time.
package entity

import (
	"errors"
	"fmt"

	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/core/motion"
)

var (
	// ErrNoJumpFunc is returned when an actor is built without a jump profile
	ErrNoJumpFunc = errors.New("entity: jump function is required")
	// ErrNoProvider is returned when an actor has nothing to collide against
	ErrNoProvider = errors.New("entity: fence/obstacle provider is required")
	// ErrEmptyCollider is returned for colliders without area
	ErrEmptyCollider = errors.New("entity: collider has no area")
)

// Provider supplies the rectangles an actor is resolved against. The
// collider is the actor's current one; desired is the displacement it is
// about to request.
type Provider interface {
	FencesFor(collider geom.Rect, desired geom.Vec2) []geom.Rect
	ObstaclesFor(collider geom.Rect, desired geom.Vec2, passThrough bool) []geom.Rect
}

// Step is the outcome of one Update
type Step struct {
	Desired  geom.Vec2
	Achieved geom.Vec2
	Blocked  motion.Blocked
	Landed   bool
}

// Spec describes an actor to build
type Spec struct {
	ID       int
	Kind     Kind
	Pos      geom.Vec2
	Collider geom.Rect // relative to Pos
	Jump     JumpFunc
	MaxFall  float64 // 0 = unlimited
	Behavior Behavior
	Provider Provider
}

// Actor is a moving entity resolved against the arena every tick
type Actor struct {
	id       int
	kind     Kind
	pos      geom.Vec2
	local    geom.Rect
	behavior Behavior
	provider Provider

	vy       float64
	jumpT    int
	jumpFunc JumpFunc
	maxFall  float64

	passThrough bool
	landed      bool
	age         int
	stopped     bool
	last        Step
}

// New validates spec and builds an actor
func New(spec Spec) (*Actor, error) {
	if spec.Jump == nil {
		return nil, fmt.Errorf("%s actor %d: %w", spec.Kind, spec.ID, ErrNoJumpFunc)
	}
	if spec.Provider == nil {
		return nil, fmt.Errorf("%s actor %d: %w", spec.Kind, spec.ID, ErrNoProvider)
	}
	if spec.Collider.IsEmpty() {
		return nil, fmt.Errorf("%s actor %d: %w", spec.Kind, spec.ID, ErrEmptyCollider)
	}
	b := spec.Behavior
	if b == nil {
		b = Idle{}
	}
	return &Actor{
		id:       spec.ID,
		kind:     spec.Kind,
		pos:      spec.Pos,
		local:    spec.Collider,
		behavior: b,
		provider: spec.Provider,
		jumpT:    noJump,
		jumpFunc: spec.Jump,
		maxFall:  spec.MaxFall,
	}, nil
}

func (a *Actor) ID() int { return a.id }
func (a *Actor) Kind() Kind { return a.kind }
func (a *Actor) Pos() geom.Vec2 { return a.pos }
func (a *Actor) VY() float64 { return a.vy }
func (a *Actor) Age() int { return a.age }
func (a *Actor) Landed() bool { return a.landed }
func (a *Actor) PassThrough() bool { return a.passThrough }
func (a *Actor) LastStep() Step { return a.last }
func (a *Actor) Behavior() Behavior { return a.behavior }
func (a *Actor) Stopped() bool { return a.stopped }
func (a *Actor) Jumping() bool { return a.jumpT != noJump }

// Collider returns the collider in arena coordinates
func (a *Actor) Collider() geom.Rect {
	return a.local.MoveBy(a.pos)
}

// Stop marks the actor for removal. The owning world prunes it before the
// next frame.
func (a *Actor) Stop() {
	a.stopped = true
}

// Teleport places the actor without resolving motion. Only used for
// spawning and respawning.
func (a *Actor) Teleport(p geom.Vec2) {
	a.pos = p
	a.vy = 0
	a.jumpT = noJump
	a.landed = false
	a.last = Step{}
}

// SetJump starts a jump when held is true and the actor stands on
// something, or releases the boost when held is false.
func (a *Actor) SetJump(held bool) {
	if !held {
		a.jumpT = noJump
		return
	}
	if a.landed {
		a.jumpT = 0
	}
}

// Update runs one tick: ask the behavior for an intent, integrate the
// vertical velocity, resolve the combined displacement and commit it.
func (a *Actor) Update() Step {
	if a.stopped {
		return Step{}
	}
	a.age++

	in := a.behavior.Decide(a)
	if a.stopped {
		return Step{}
	}

	switch in.Jump {
	case JumpStart:
		a.SetJump(true)
	case JumpRelease:
		a.SetJump(false)
	}
	a.passThrough = in.PassThrough

	a.vy = a.jumpFunc(a.vy, a.jumpT)
	if a.maxFall > 0 {
		a.vy = max(-a.maxFall, min(a.maxFall, a.vy))
	}

	desired := geom.Vec2{X: in.Move, Y: a.vy}
	collider := a.Collider()
	fences := a.provider.FencesFor(collider, desired)
	obstacles := a.provider.ObstaclesFor(collider, desired, a.passThrough)

	achieved, blocked := motion.Resolve(collider, desired, fences, obstacles)
	a.pos = a.pos.Add(achieved)

	a.landed = blocked.Y() && desired.Y > 0
	if blocked.Y() {
		a.vy = achieved.Y
	}

	switch {
	case a.landed:
		a.jumpT = noJump
	case a.jumpT != noJump:
		a.jumpT++
	}

	a.last = Step{Desired: desired, Achieved: achieved, Blocked: blocked, Landed: a.landed}
	return a.last
}
