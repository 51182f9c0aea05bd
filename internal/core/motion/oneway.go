package motion

import "chosenoffset.com/elevator/internal/core/geom"

// OneWay selects the one-way floor rectangles that should block a mover.
// A floor only holds something falling onto it from above: it is dropped
// while the mover rises (vy <= 0), while it deliberately passes through,
// and once the mover's feet are already below the floor's top edge.
func OneWay(collider geom.Rect, vy float64, passThrough bool, floors []geom.Rect) []geom.Rect {
	if vy <= 0 || passThrough {
		return nil
	}

	var out []geom.Rect
	for _, f := range floors {
		if collider.Bottom() <= f.Top() {
			out = append(out, f)
		}
	}
	return out
}
