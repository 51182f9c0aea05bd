package entity

// Kind identifies the archetype of an actor. It is carried on every actor
// and drives collision dispatch instead of type inspection.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindGuest
	KindCoin
	KindBullet
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindGuest:
		return "guest"
	case KindCoin:
		return "coin"
	case KindBullet:
		return "bullet"
	}
	return "unknown"
}

// Response is what happens when two actors touch
type Response int

const (
	ResponseNone    Response = iota
	ResponseCollect          // first picks up second
	ResponseKill             // both are removed
	ResponseHurt             // first hurts second
	ResponseAbsorb           // first is removed, second is untouched
)

// Pair is an ordered kind pair; the first kind plays the subject role of
// the response.
type Pair struct {
	First, Second Kind
}

// CollisionTable maps kind pairs to responses
type CollisionTable map[Pair]Response

// DefaultCollisions returns the stock interaction rules
func DefaultCollisions() CollisionTable {
	return CollisionTable{
		{KindPlayer, KindCoin}:  ResponseCollect,
		{KindBullet, KindEnemy}: ResponseKill,
		{KindEnemy, KindPlayer}: ResponseHurt,
		{KindBullet, KindGuest}: ResponseAbsorb,
	}
}

// Lookup finds the response for a and b in either order. swapped is true
// when the rule was registered as (b, a), so callers can put the actors in
// rule order.
func (t CollisionTable) Lookup(a, b Kind) (r Response, swapped bool) {
	if r, ok := t[Pair{a, b}]; ok {
		return r, false
	}
	if r, ok := t[Pair{b, a}]; ok {
		return r, true
	}
	return ResponseNone, false
}
