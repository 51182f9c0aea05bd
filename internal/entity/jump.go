package entity

// JumpFunc maps the current vertical speed and the ticks since the jump
// started to the next vertical speed. t is negative when not jumping.
type JumpFunc func(vy float64, t int) float64

// noJump is the jump timer value outside a jump
const noJump = -1

// GravitySource reports the gravity currently acting on the cab. It changes
// while the elevator travels.
type GravitySource interface {
	Gravity() float64
}

// ConstantGravity is a fixed GravitySource
type ConstantGravity float64

// Gravity returns g
func (g ConstantGravity) Gravity() float64 { return float64(g) }

// Boost is the upward impulse window of a jump
type Boost struct {
	Ticks int     // boost lasts while 0 <= t <= Ticks
	Speed float64 // upward speed during the boost
}

// StandardJump returns the platformer profile: a constant upward speed for
// the first few ticks of a jump, then velocity plus gravity. Landing needs
// no flag here; the actor infers it from a blocked downward move.
func StandardJump(g GravitySource, b Boost) JumpFunc {
	return func(vy float64, t int) float64 {
		if 0 <= t && t <= b.Ticks {
			return -b.Speed
		}
		return vy + g.Gravity()
	}
}

// Weightless keeps vertical speed at zero. Used for projectiles.
func Weightless(float64, int) float64 { return 0 }
