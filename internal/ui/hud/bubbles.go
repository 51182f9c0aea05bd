package hud

import (
	"image/color"

	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/entity"
	"chosenoffset.com/elevator/internal/render"
)

// Bubble is a line of dialog floating above an actor
type Bubble struct {
	Anchor *entity.Actor
	Text   string
	TTL    float64 // seconds left
}

// Bubbles is the list of active speech bubbles
type Bubbles struct {
	items []Bubble
}

// Show adds a bubble. A newer bubble replaces an older one on the same
// anchor.
func (b *Bubbles) Show(anchor *entity.Actor, text string, seconds float64) {
	if anchor == nil || text == "" {
		return
	}
	for i := range b.items {
		if b.items[i].Anchor == anchor {
			b.items[i].Text = text
			b.items[i].TTL = seconds
			return
		}
	}
	b.items = append(b.items, Bubble{Anchor: anchor, Text: text, TTL: seconds})
}

// Update ages the bubbles by dt seconds and drops expired ones and those
// whose anchor is gone
func (b *Bubbles) Update(dt float64) {
	kept := b.items[:0]
	for _, it := range b.items {
		it.TTL -= dt
		if it.TTL <= 0 || it.Anchor.Stopped() {
			continue
		}
		kept = append(kept, it)
	}
	b.items = kept
}

// Active returns the bubbles currently shown
func (b *Bubbles) Active() []Bubble {
	return b.items
}

// Draw renders every bubble above its anchor. offset translates arena
// coordinates to screen coordinates.
func (b *Bubbles) Draw(r render.Renderer, screen render.Image, offset geom.Vec2) {
	for _, it := range b.items {
		w, h := r.MeasureText(it.Text)
		c := it.Anchor.Collider().MoveBy(offset)
		x := c.Center().X - float64(w)/2 - 4
		y := c.Top() - float64(h) - 8

		r.FillRect(screen, float32(x), float32(y), float32(w+8), float32(h+4), color.RGBA{30, 30, 40, 220})
		r.StrokeRect(screen, float32(x), float32(y), float32(w+8), float32(h+4), 1, color.RGBA{220, 220, 200, 255})
		r.DrawText(screen, it.Text, int(x)+4, int(y)+2)
	}
}
