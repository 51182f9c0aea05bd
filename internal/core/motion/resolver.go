// Package motion clamps a requested displacement against fences (rectangles
// a mover must stay inside) and obstacles (rectangles it may not enter).
//
// Each axis is resolved on its own: x first against the starting collider,
// then y against the collider already shifted by the achieved x. This lets
// a mover slide along a wall and drop off a ledge in the same tick, and it
// never tunnels because the clamp is computed from the swept edges rather
// than by sampling the end position.
package motion

import (
	"math"

	"chosenoffset.com/elevator/internal/core/geom"
)

// Blocked records which axes were cut short
type Blocked uint8

const (
	BlockedNone Blocked = 0
	BlockedX    Blocked = 1
	BlockedY    Blocked = 2
	BlockedBoth         = BlockedX | BlockedY
)

// X reports whether horizontal motion was clamped
func (b Blocked) X() bool { return b&BlockedX != 0 }

// Y reports whether vertical motion was clamped
func (b Blocked) Y() bool { return b&BlockedY != 0 }

func (b Blocked) String() string {
	switch b {
	case BlockedNone:
		return "none"
	case BlockedX:
		return "x"
	case BlockedY:
		return "y"
	case BlockedBoth:
		return "both"
	}
	return "invalid"
}

type axis int

const (
	axisX axis = iota
	axisY
)

// epsilon absorbs float drift so that a collider resting exactly on a
// surface is treated as touching it, not overlapping it.
const epsilon = 1e-6

// Resolve returns the largest part of desired the collider can travel
// without leaving the intersection of fences or entering an obstacle.
// Obstacles the collider already penetrates are ignored so a mover can
// always get out of a cell it was placed in. Empty lists constrain nothing.
func Resolve(collider geom.Rect, desired geom.Vec2, fences, obstacles []geom.Rect) (geom.Vec2, Blocked) {
	var achieved geom.Vec2
	var blocked Blocked

	fence, fenced := geom.IntersectAll(fences)

	achieved.X = clampAxis(axisX, collider, desired.X, fence, fenced, obstacles)
	if achieved.X != desired.X {
		blocked |= BlockedX
	}

	moved := collider.Move(achieved.X, 0)
	achieved.Y = clampAxis(axisY, moved, desired.Y, fence, fenced, obstacles)
	if achieved.Y != desired.Y {
		blocked |= BlockedY
	}

	return achieved, blocked
}

// clampAxis shrinks d toward zero until the collider, moved by d on the
// given axis, stays inside fence and clear of every obstacle ahead of it.
func clampAxis(ax axis, c geom.Rect, d float64, fence geom.Rect, fenced bool, obstacles []geom.Rect) float64 {
	if d == 0 {
		return 0
	}

	lo, hi := span(ax, c)
	allowed := d

	if fenced {
		flo, fhi := span(ax, fence)
		if d > 0 {
			allowed = math.Min(allowed, math.Max(0, fhi-hi))
		} else {
			allowed = math.Max(allowed, math.Min(0, flo-lo))
		}
	}

	for _, o := range obstacles {
		if !crossOverlap(ax, c, o) {
			continue
		}
		olo, ohi := span(ax, o)
		if d > 0 && olo >= hi-epsilon {
			allowed = math.Min(allowed, math.Max(0, olo-hi))
		} else if d < 0 && ohi <= lo+epsilon {
			allowed = math.Max(allowed, math.Min(0, ohi-lo))
		}
	}

	return allowed
}

// span returns the extent of r along ax
func span(ax axis, r geom.Rect) (float64, float64) {
	if ax == axisX {
		return r.Left(), r.Right()
	}
	return r.Top(), r.Bottom()
}

// crossOverlap reports whether a and b overlap on the axis perpendicular
// to ax, i.e. whether moving along ax could make them collide.
func crossOverlap(ax axis, a, b geom.Rect) bool {
	if ax == axisX {
		return a.Top() < b.Bottom()-epsilon && b.Top() < a.Bottom()-epsilon
	}
	return a.Left() < b.Right()-epsilon && b.Left() < a.Right()-epsilon
}
