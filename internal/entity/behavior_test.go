package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/dice"
)

func TestPlayerIntent(t *testing.T) {
	p := NewPlayer(4)
	assert.Equal(t, 1, p.Facing())

	p.SetInput(geom.Vec2{X: -1, Y: -1})
	in := p.Decide(nil)
	assert.Equal(t, -4.0, in.Move)
	assert.Equal(t, JumpStart, in.Jump)
	assert.Equal(t, -1, p.Facing())

	// Holding up does not restart the jump every tick.
	assert.Equal(t, JumpNone, p.Decide(nil).Jump)

	p.SetInput(geom.Vec2{Y: 1})
	in = p.Decide(nil)
	assert.Equal(t, JumpRelease, in.Jump)
	assert.True(t, in.PassThrough)
	assert.Equal(t, -1, p.Facing(), "facing is kept when not moving")

	p.SetInput(geom.Vec2{X: 1})
	p.SetLocked(true)
	in = p.Decide(nil)
	assert.Equal(t, Intent{}, in)
	assert.True(t, p.Locked())
}

func TestEnemyJitter(t *testing.T) {
	// OneIn draws then Sign draws: (0 -> fire, 2 -> right), (5 -> skip),
	// (0 -> fire, 1 -> stop and jump).
	roller := dice.NewRoller(&dice.Script{Ints: []int{0, 2, 5, 0, 1}})
	e := NewEnemy(roller, 2, 10)

	in := e.Decide(nil)
	assert.Equal(t, 2.0, in.Move)
	assert.Equal(t, JumpRelease, in.Jump)

	in = e.Decide(nil)
	assert.Equal(t, 2.0, in.Move, "keeps heading between picks")
	assert.Equal(t, JumpNone, in.Jump)

	in = e.Decide(nil)
	assert.Equal(t, 0.0, in.Move)
	assert.Equal(t, JumpStart, in.Jump)
}

func TestCoinReversesAtWall(t *testing.T) {
	g := mustGrid(t, "0000", "1111")
	c := NewCoin(+1, 3, 0)
	a, err := New(Spec{
		Kind:     KindCoin,
		Pos:      geom.Vec2{X: 60, Y: 12},
		Collider: box,
		Jump:     StandardJump(ConstantGravity(1), Boost{}),
		MaxFall:  8,
		Behavior: c,
		Provider: gridProvider{g},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Direction())

	step := a.Update()
	assert.Equal(t, 0.0, step.Achieved.X, "already touching the arena edge")

	step = a.Update()
	assert.Equal(t, -3.0, step.Achieved.X, "turned around")

	down := NewCoin(-1, 3, 0)
	assert.Equal(t, -1, down.Direction())
	assert.Equal(t, -3.0, down.Decide(a).Move)
}

func TestCoinLifetime(t *testing.T) {
	g := mustGrid(t, "0000", "1111")
	a, err := New(Spec{
		Kind:     KindCoin,
		Pos:      geom.Vec2{X: 24, Y: 12},
		Collider: box,
		Jump:     StandardJump(ConstantGravity(1), Boost{}),
		Behavior: NewCoin(1, 1, 3),
		Provider: gridProvider{g},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		a.Update()
		assert.False(t, a.Stopped())
	}
	a.Update()
	assert.True(t, a.Stopped())
}

func TestBulletStopsAtWall(t *testing.T) {
	g := mustGrid(t, "00001")
	p := gridProvider{g}
	a, err := New(Spec{
		Kind:     KindBullet,
		Pos:      geom.Vec2{X: 8, Y: 8},
		Collider: geom.Rect{X: -3, Y: -2, W: 6, H: 4},
		Jump:     Weightless,
		Behavior: NewBullet(8, p),
		Provider: p,
	})
	require.NoError(t, err)

	var ticks int
	for ticks = 0; ticks < 20 && !a.Stopped(); ticks++ {
		a.Update()
		assert.Equal(t, 8.0, a.Pos().Y, "bullets do not fall")
	}
	assert.True(t, a.Stopped())
	assert.Equal(t, 61.0, a.Pos().X, "clamped at the wall face before stopping")
	assert.Less(t, ticks, 20)
}

func TestBulletSpawnedInsideWall(t *testing.T) {
	g := mustGrid(t, "0100")
	p := gridProvider{g}
	a, err := New(Spec{
		Kind:     KindBullet,
		Pos:      geom.Vec2{X: 24, Y: 8},
		Collider: geom.Rect{X: -3, Y: -2, W: 6, H: 4},
		Jump:     Weightless,
		Behavior: NewBullet(-8, p),
		Provider: p,
	})
	require.NoError(t, err)

	a.Update()
	assert.True(t, a.Stopped())
}

func TestGuestExit(t *testing.T) {
	g := mustGrid(t, "000000", "111111")
	guest := NewGuest("tourist", 3, 1, 4)
	a, err := New(Spec{
		Kind:     KindGuest,
		Pos:      geom.Vec2{X: 24, Y: 12},
		Collider: box,
		Jump:     StandardJump(ConstantGravity(1), Boost{}),
		Behavior: guest,
		Provider: gridProvider{g},
	})
	require.NoError(t, err)

	got, ok := GuestOf(a)
	require.True(t, ok)
	assert.Same(t, guest, got)
	assert.Equal(t, 3, guest.Goal())
	assert.Equal(t, "tourist", guest.Archetype)

	a.Update()
	assert.False(t, guest.Exiting())

	guest.BeginExit()
	assert.True(t, guest.Exiting())
	for i := 0; i < 4; i++ {
		a.Update()
		assert.False(t, guest.Exited(), "tick %d", i)
	}
	a.Update()
	assert.True(t, guest.Exited())

	_, ok = CoinOf(a)
	assert.False(t, ok)
	_, ok = PlayerOf(nil)
	assert.False(t, ok)
}

func TestCollisionLookup(t *testing.T) {
	table := DefaultCollisions()

	r, swapped := table.Lookup(KindPlayer, KindCoin)
	assert.Equal(t, ResponseCollect, r)
	assert.False(t, swapped)

	r, swapped = table.Lookup(KindCoin, KindPlayer)
	assert.Equal(t, ResponseCollect, r)
	assert.True(t, swapped)

	r, _ = table.Lookup(KindEnemy, KindBullet)
	assert.Equal(t, ResponseKill, r)

	r, _ = table.Lookup(KindCoin, KindCoin)
	assert.Equal(t, ResponseNone, r)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "player", KindPlayer.String())
	assert.Equal(t, "bullet", KindBullet.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
