package entity

import (
	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/dice"
)

// JumpRequest asks the integrator to start or release a jump
type JumpRequest int

const (
	JumpNone JumpRequest = iota
	JumpStart
	JumpRelease
)

// Intent is what a behavior wants this tick
type Intent struct {
	Move        float64 // horizontal displacement
	Jump        JumpRequest
	PassThrough bool // drop through one-way floors
}

// Behavior decides an actor's intent once per tick. It may call Stop on
// the actor to end its life instead of moving.
type Behavior interface {
	Decide(a *Actor) Intent
}

// Idle never moves on its own; gravity still applies
type Idle struct{}

// Decide returns the zero intent
func (Idle) Decide(*Actor) Intent { return Intent{} }

// --- Player ---

// Player turns the per-frame input intent into movement
type Player struct {
	speed  float64
	dir    geom.Vec2
	facing int
	prevUp bool
	locked bool
}

// NewPlayer creates a player behavior walking at speed pixels per tick
func NewPlayer(speed float64) *Player {
	return &Player{speed: speed, facing: 1}
}

// SetInput stores the directional intent (-1/0/+1 per axis) for the next
// tick. Negative y means jump, positive y means drop through floors.
func (p *Player) SetInput(dir geom.Vec2) {
	p.dir = dir
	if dir.X != 0 {
		if dir.X < 0 {
			p.facing = -1
		} else {
			p.facing = 1
		}
	}
}

// SetLocked freezes the player's own movement (gravity still applies)
func (p *Player) SetLocked(locked bool) {
	p.locked = locked
}

// Locked reports whether input is ignored
func (p *Player) Locked() bool { return p.locked }

// Facing returns -1 or +1
func (p *Player) Facing() int { return p.facing }

// Decide implements Behavior
func (p *Player) Decide(*Actor) Intent {
	dir := p.dir
	if p.locked {
		dir = geom.Vec2{}
	}

	in := Intent{Move: dir.X * p.speed, PassThrough: dir.Y > 0}
	up := dir.Y < 0
	switch {
	case up && !p.prevUp:
		in.Jump = JumpStart
	case !up && p.prevUp:
		in.Jump = JumpRelease
	}
	p.prevUp = up
	return in
}

// --- Enemy ---

// Enemy wanders: every tick it has a 1 in odds chance to pick a new
// heading from left, stop or right, and it jumps when it picks stop.
type Enemy struct {
	roller *dice.Roller
	speed  float64
	odds   int
	vx     float64
}

// NewEnemy creates an enemy behavior
func NewEnemy(roller *dice.Roller, speed float64, odds int) *Enemy {
	return &Enemy{roller: roller, speed: speed, odds: odds}
}

// Decide implements Behavior
func (e *Enemy) Decide(*Actor) Intent {
	var in Intent
	if e.roller.OneIn(e.odds) {
		s := e.roller.Sign()
		e.vx = float64(s) * e.speed
		if s == 0 {
			in.Jump = JumpStart
		} else {
			in.Jump = JumpRelease
		}
	}
	in.Move = e.vx
	return in
}

// --- Coin ---

// Coin walks back and forth and carries a travel vote. It turns around
// whenever its horizontal move achieves nothing.
type Coin struct {
	direction int
	vx        float64
	lifetime  int
}

// NewCoin creates a coin voting for direction (+1 up, -1 down). lifetime
// is in ticks; 0 means the coin lives until it is collected or cleared.
func NewCoin(direction int, speed float64, lifetime int) *Coin {
	vx := speed
	if direction < 0 {
		vx = -speed
	}
	return &Coin{direction: direction, vx: vx, lifetime: lifetime}
}

// Direction returns the travel direction this coin votes for
func (c *Coin) Direction() int { return c.direction }

// Decide implements Behavior
func (c *Coin) Decide(a *Actor) Intent {
	if c.lifetime > 0 && a.Age() > c.lifetime {
		a.Stop()
		return Intent{}
	}
	last := a.LastStep()
	if last.Desired.X != 0 && last.Achieved.X == 0 {
		c.vx = -c.vx
	}
	return Intent{Move: c.vx}
}

// --- Bullet ---

// WallProbe reports whether a rectangle touches a solid tile
type WallProbe interface {
	HitsWall(r geom.Rect) bool
}

// Bullet flies straight and stops at the first wall or the arena edge
type Bullet struct {
	vx    float64
	walls WallProbe
}

// NewBullet creates a bullet moving vx pixels per tick
func NewBullet(vx float64, walls WallProbe) *Bullet {
	return &Bullet{vx: vx, walls: walls}
}

// Decide implements Behavior
func (b *Bullet) Decide(a *Actor) Intent {
	if a.LastStep().Blocked.X() || (b.walls != nil && b.walls.HitsWall(a.Collider())) {
		a.Stop()
		return Intent{}
	}
	return Intent{Move: b.vx}
}

// --- Guest ---

// Guest is a passenger riding to a goal floor. It paces in the cab until
// delivered, then walks out for a fixed number of ticks.
type Guest struct {
	Archetype string
	goal      int
	speed     float64
	vx        float64
	exitTicks int
	exitLeft  int
	exiting   bool
	exited    bool
}

// NewGuest creates a guest heading to floor goal
func NewGuest(archetype string, goal int, speed float64, exitTicks int) *Guest {
	return &Guest{
		Archetype: archetype,
		goal:      goal,
		speed:     speed,
		vx:        speed,
		exitTicks: exitTicks,
	}
}

// Goal returns the destination floor index
func (g *Guest) Goal() int { return g.goal }

// BeginExit starts the exit walk
func (g *Guest) BeginExit() {
	if g.exiting {
		return
	}
	g.exiting = true
	g.exitLeft = g.exitTicks
	g.vx = g.speed * 2
}

// Exiting reports whether the exit walk has started
func (g *Guest) Exiting() bool { return g.exiting }

// Exited reports whether the exit walk has finished
func (g *Guest) Exited() bool { return g.exited }

// Decide implements Behavior
func (g *Guest) Decide(a *Actor) Intent {
	if g.exited {
		return Intent{}
	}
	if g.exiting {
		if g.exitLeft <= 0 {
			g.exited = true
			return Intent{}
		}
		g.exitLeft--
	}
	last := a.LastStep()
	if last.Desired.X != 0 && last.Achieved.X == 0 {
		g.vx = -g.vx
	}
	return Intent{Move: g.vx}
}

// GuestOf returns the guest behavior of a, if it has one
func GuestOf(a *Actor) (*Guest, bool) {
	if a == nil {
		return nil, false
	}
	g, ok := a.Behavior().(*Guest)
	return g, ok
}

// CoinOf returns the coin behavior of a, if it has one
func CoinOf(a *Actor) (*Coin, bool) {
	if a == nil {
		return nil, false
	}
	c, ok := a.Behavior().(*Coin)
	return c, ok
}

// PlayerOf returns the player behavior of a, if it has one
func PlayerOf(a *Actor) (*Player, bool) {
	if a == nil {
		return nil, false
	}
	p, ok := a.Behavior().(*Player)
	return p, ok
}
