package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/core/motion"
	"chosenoffset.com/elevator/internal/dice"
	"chosenoffset.com/elevator/internal/world/grid"
)

// gridProvider resolves actors against a grid the way the game world does
type gridProvider struct {
	g *grid.Grid
}

func (p gridProvider) FencesFor(geom.Rect, geom.Vec2) []geom.Rect {
	return []geom.Rect{p.g.Bounds()}
}

func (p gridProvider) ObstaclesFor(c geom.Rect, d geom.Vec2, passThrough bool) []geom.Rect {
	env := c.Union(c.MoveBy(d))
	obstacles := p.g.CellRectsMatching(grid.IsSolid, env)
	floors := p.g.CellRectsMatching(grid.IsFloor, env)
	return append(obstacles, motion.OneWay(c, d.Y, passThrough, floors)...)
}

func (p gridProvider) HitsWall(r geom.Rect) bool {
	return p.g.FindTileInRect(grid.IsSolid, r)
}

// script feeds a fixed sequence of intents, then repeats the last one
type script struct {
	intents []Intent
	n       int
}

func (s *script) Decide(*Actor) Intent {
	if len(s.intents) == 0 {
		return Intent{}
	}
	i := min(s.n, len(s.intents)-1)
	s.n++
	return s.intents[i]
}

var box = geom.Rect{X: -4, Y: -4, W: 8, H: 8}

func newTestActor(t *testing.T, g *grid.Grid, pos geom.Vec2, b Behavior) *Actor {
	t.Helper()
	a, err := New(Spec{
		ID:       1,
		Kind:     KindPlayer,
		Pos:      pos,
		Collider: box,
		Jump:     StandardJump(ConstantGravity(1), Boost{Ticks: 5, Speed: 6}),
		MaxFall:  8,
		Behavior: b,
		Provider: gridProvider{g},
	})
	require.NoError(t, err)
	return a
}

func mustGrid(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(16, rows)
	require.NoError(t, err)
	return g
}

func settle(t *testing.T, a *Actor) {
	t.Helper()
	a.Update()
	for i := 0; i < 100 && !a.Landed(); i++ {
		a.Update()
	}
	require.True(t, a.Landed(), "actor never landed")
}

func TestNewValidates(t *testing.T) {
	g := mustGrid(t, "00")
	jump := StandardJump(ConstantGravity(1), Boost{Ticks: 5, Speed: 6})

	_, err := New(Spec{Collider: box, Provider: gridProvider{g}})
	assert.True(t, errors.Is(err, ErrNoJumpFunc))

	_, err = New(Spec{Collider: box, Jump: jump})
	assert.True(t, errors.Is(err, ErrNoProvider))

	_, err = New(Spec{Jump: jump, Provider: gridProvider{g}})
	assert.True(t, errors.Is(err, ErrEmptyCollider))

	a, err := New(Spec{Collider: box, Jump: jump, Provider: gridProvider{g}})
	require.NoError(t, err)
	assert.IsType(t, Idle{}, a.Behavior())
}

func TestFallAndLand(t *testing.T) {
	g := mustGrid(t,
		"0000",
		"0000",
		"0000",
		"1111",
	)
	a := newTestActor(t, g, geom.Vec2{X: 24, Y: 8}, nil)

	settle(t, a)

	assert.Equal(t, 48.0, a.Collider().Bottom())
	assert.Equal(t, 0.0, a.VY())
	assert.True(t, a.LastStep().Blocked.Y())

	// Resting stays put and keeps reporting a landing.
	step := a.Update()
	assert.Equal(t, geom.Vec2{}, step.Achieved)
	assert.True(t, step.Landed)
}

func TestJumpArc(t *testing.T) {
	g := mustGrid(t,
		"0000",
		"0000",
		"0000",
		"0000",
		"0000",
		"1111",
	)
	s := &script{}
	a := newTestActor(t, g, geom.Vec2{X: 24, Y: 8}, s)
	settle(t, a)
	start := a.Pos().Y

	s.intents = []Intent{{Jump: JumpStart}, {}}
	s.n = 0

	// Boost window t=0..5 moves up 6px per tick.
	for i := 0; i < 6; i++ {
		step := a.Update()
		assert.Equal(t, -6.0, step.Achieved.Y, "boost tick %d", i)
	}
	assert.Equal(t, start-36, a.Pos().Y)

	// Then gravity takes over: -5, -4, ...
	assert.Equal(t, -5.0, a.Update().Achieved.Y)
	assert.Equal(t, -4.0, a.Update().Achieved.Y)

	settle(t, a)
	assert.Equal(t, start, a.Pos().Y)
}

func TestJumpReleaseCutsBoost(t *testing.T) {
	g := mustGrid(t, "0000", "0000", "0000", "1111")
	s := &script{}
	a := newTestActor(t, g, geom.Vec2{X: 24, Y: 8}, s)
	settle(t, a)

	s.intents = []Intent{{Jump: JumpStart}, {Jump: JumpRelease}, {}}
	s.n = 0

	assert.Equal(t, -6.0, a.Update().Achieved.Y)
	// Released: velocity plus gravity from here on.
	assert.Equal(t, -5.0, a.Update().Achieved.Y)
	assert.False(t, a.Jumping())
}

func TestNoJumpInMidAir(t *testing.T) {
	g := mustGrid(t, "0000", "0000", "0000", "1111")
	a := newTestActor(t, g, geom.Vec2{X: 24, Y: 8}, &script{intents: []Intent{{Jump: JumpStart}, {}}})

	step := a.Update()
	assert.Equal(t, 1.0, step.Achieved.Y, "airborne actors keep falling")
	assert.False(t, a.Jumping())
}

func TestDropThroughOneWayFloor(t *testing.T) {
	g := mustGrid(t,
		"0000",
		"2222",
		"0000",
		"1111",
	)
	s := &script{}
	a := newTestActor(t, g, geom.Vec2{X: 24, Y: 4}, s)

	settle(t, a)
	assert.Equal(t, 16.0, a.Collider().Bottom(), "lands on the platform top")

	s.intents = []Intent{{PassThrough: true}}
	s.n = 0
	settle(t, a)
	assert.Equal(t, 48.0, a.Collider().Bottom(), "dropped to the solid floor")
}

func TestJumpUpThroughOneWayFloor(t *testing.T) {
	g := mustGrid(t,
		"0000",
		"0000",
		"2222",
		"0000",
		"1111",
	)
	s := &script{}
	a := newTestActor(t, g, geom.Vec2{X: 24, Y: 60}, s)
	settle(t, a)
	require.Equal(t, 64.0, a.Collider().Bottom())

	s.intents = []Intent{{Jump: JumpStart}, {}}
	s.n = 0
	for i := 0; i < 100; i++ {
		a.Update()
		if a.Landed() {
			break
		}
	}
	assert.Equal(t, 32.0, a.Collider().Bottom(), "rose through the platform and landed on it")
}

func TestContainmentUnderRandomIntent(t *testing.T) {
	g := mustGrid(t,
		"000000",
		"001100",
		"220000",
		"000011",
		"000000",
		"111111",
	)
	roller := dice.NewSeeded(3)
	a := newTestActor(t, g, geom.Vec2{X: 8, Y: 8}, NewEnemy(roller, 5, 2))
	bounds := g.Bounds()

	for i := 0; i < 3000; i++ {
		a.Update()
		require.True(t, bounds.Contains(a.Collider()), "tick %d: %+v outside arena", i, a.Collider())
	}
}

func TestTeleportAndStop(t *testing.T) {
	g := mustGrid(t, "0000", "0000", "0000", "1111")
	a := newTestActor(t, g, geom.Vec2{X: 24, Y: 8}, nil)
	settle(t, a)

	a.Teleport(geom.Vec2{X: 8, Y: 8})
	assert.Equal(t, geom.Vec2{X: 8, Y: 8}, a.Pos())
	assert.False(t, a.Landed())
	assert.Equal(t, 0.0, a.VY())

	a.Stop()
	age := a.Age()
	assert.Equal(t, Step{}, a.Update())
	assert.Equal(t, age, a.Age())
	assert.Equal(t, geom.Vec2{X: 8, Y: 8}, a.Pos())
}
