package hud

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/elevator/internal/content"
	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/entity"
	"chosenoffset.com/elevator/internal/render"
)

type fakeImage struct{}

func (fakeImage) Fill(color.Color) {}
func (fakeImage) DrawImage(render.Image, *render.DrawImageOptions) {}
func (fakeImage) Dispose() {}

type textCall struct {
	text string
	x, y int
}

// recorder is a Renderer that remembers what was drawn
type recorder struct {
	rects int
	texts []textCall
}

func (r *recorder) NewImage(int, int) render.Image { return fakeImage{} }
func (r *recorder) FillRect(render.Image, float32, float32, float32, float32, color.Color) { r.rects++ }
func (r *recorder) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {}
func (r *recorder) FillCircle(render.Image, float32, float32, float32, color.Color) {}
func (r *recorder) DrawText(_ render.Image, text string, x, y int) {
	r.texts = append(r.texts, textCall{text, x, y})
}
func (r *recorder) MeasureText(text string) (int, int) { return len(text) * 6, 16 }

func TestFormatFloor(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{3, "F3"},
		{1, "F1"},
		{0, "BF0"},
		{-2, "BF2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloor(tt.level))
	}
}

func TestHUDStatus(t *testing.T) {
	h := New(nil, 320, 240)
	h.FloorChanged(2, content.Floor{Name: "Roof", Level: 3})
	assert.Equal(t, 2, h.FloorIndex())
	assert.Equal(t, "F3", h.FloorLabel())

	h.ScoreIncremented(110)
	h.OutageBegan()
	assert.Equal(t, []string{"F3 Roof", "Score: 110", "POWER OUT"}, h.Lines())

	h.OutageEnded()
	assert.False(t, h.Outage())
	assert.Len(t, h.Lines(), 2)

	// Continuous display truncates toward the floor below.
	h.SetDisplayFloor(-0.25)
	assert.Equal(t, "BF1", h.FloorLabel())
	h.SetDisplayFloor(2.9)
	assert.Equal(t, "F2", h.FloorLabel())
}

func TestHUDDraw(t *testing.T) {
	h := New(&HUDConfig{Position: "top-right", Opacity: 1}, 320, 240)
	h.ScoreIncremented(5)
	r := &recorder{}
	h.Draw(r, fakeImage{})

	require.Len(t, r.texts, 2)
	assert.Equal(t, "Score: 5", r.texts[1].text)
	assert.Equal(t, 320-150-10+8, r.texts[0].x)
	assert.Greater(t, r.rects, 0)
}

func newAnchor(t *testing.T) *entity.Actor {
	t.Helper()
	a, err := entity.New(entity.Spec{
		Pos:      geom.Vec2{X: 50, Y: 50},
		Collider: geom.Rect{X: -4, Y: -4, W: 8, H: 8},
		Jump:     entity.Weightless,
		Provider: noBounds{},
	})
	require.NoError(t, err)
	return a
}

type noBounds struct{}

func (noBounds) FencesFor(geom.Rect, geom.Vec2) []geom.Rect { return nil }
func (noBounds) ObstaclesFor(geom.Rect, geom.Vec2, bool) []geom.Rect { return nil }

func TestBubblesExpire(t *testing.T) {
	var b Bubbles
	a := newAnchor(t)
	b.Show(a, "Lobby please", 1)
	b.Show(nil, "ignored", 1)
	b.Show(a, "", 1)
	require.Len(t, b.Active(), 1)

	b.Update(0.5)
	assert.Len(t, b.Active(), 1)
	assert.InDelta(t, 0.5, b.Active()[0].TTL, 1e-9)

	b.Update(0.5)
	assert.Empty(t, b.Active())
}

func TestBubblesReplaceAndDropStopped(t *testing.T) {
	var b Bubbles
	a := newAnchor(t)
	other := newAnchor(t)

	b.Show(a, "first", 3)
	b.Show(a, "second", 3)
	b.Show(other, "hi", 3)
	require.Len(t, b.Active(), 2)
	assert.Equal(t, "second", b.Active()[0].Text)

	other.Stop()
	b.Update(0.1)
	require.Len(t, b.Active(), 1)
	assert.Same(t, a, b.Active()[0].Anchor)
}

func TestBubblesDraw(t *testing.T) {
	var b Bubbles
	b.Show(newAnchor(t), "hey", 3)
	r := &recorder{}
	b.Draw(r, fakeImage{}, geom.Vec2{X: 10, Y: 20})

	require.Len(t, r.texts, 1)
	// Centered over x = 60 in screen space: 60 - 18/2 - 4 + 4
	assert.Equal(t, 51, r.texts[0].x)
}
