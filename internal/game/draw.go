package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/entity"
	"chosenoffset.com/elevator/internal/render"
	"chosenoffset.com/elevator/internal/world/grid"
)

var (
	colorScreen = color.RGBA{0, 0, 0, 255}
	colorShaft  = color.RGBA{24, 24, 32, 255}
	colorDoor   = color.RGBA{0x88, 0x99, 0x99, 255}
	colorBlock  = color.RGBA{90, 100, 120, 255}
	colorFloor  = color.RGBA{170, 130, 80, 255}
	colorPlayer = color.RGBA{80, 200, 255, 255}
	colorEnemy  = color.RGBA{230, 60, 60, 255}
	colorCoin   = color.RGBA{250, 210, 60, 255}
	colorBullet = color.RGBA{255, 255, 255, 255}
	colorGuest  = color.RGBA{200, 200, 200, 255}
	colorArrow  = color.RGBA{0, 255, 0, 255}
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(colorScreen)
	sched := g.World.Scheduler()
	origin := g.arenaOrigin()
	bounds := g.World.Grid().Bounds().MoveBy(origin)

	if !sched.Powered() {
		// Lights out: the cab interior is not drawn at all.
		g.fillRect(screen, bounds, colorShaft)
		g.drawUI(screen)
		return
	}

	// Step 1: what is behind the doors
	background := colorShaft
	if sched.Aperture() < 1 {
		background = parseHexColor(sched.Floor().Background, colorShaft)
	}
	g.fillRect(screen, bounds, background)

	// Step 2: the doors slide in from both sides
	doorW := bounds.W * sched.Aperture() / 2
	g.fillRect(screen, geom.Rect{X: bounds.X, Y: bounds.Y, W: doorW, H: bounds.H}, colorDoor)
	g.fillRect(screen, geom.Rect{X: bounds.Right() - doorW, Y: bounds.Y, W: doorW, H: bounds.H}, colorDoor)

	// Step 3: tiles and actors
	g.drawTiles(screen, origin)
	for _, a := range g.World.Actors() {
		g.drawActor(screen, a, origin)
	}

	// Step 4: UI on top
	g.World.Bubbles().Draw(g.Renderer, screen, origin)
	g.drawUI(screen)
}

// drawTiles blits the tile layer. The grid does not change once loaded,
// so the layer is rendered offscreen on first use and reused.
func (g *Game) drawTiles(screen render.Image, origin geom.Vec2) {
	if g.tiles == nil {
		g.tiles = g.renderTiles()
	}
	opts := &render.DrawImageOptions{}
	opts.GeoM.Translate(origin.X, origin.Y)
	screen.DrawImage(g.tiles, opts)
}

func (g *Game) renderTiles() render.Image {
	gr := g.World.Grid()
	b := gr.Bounds()
	layer := g.Renderer.NewImage(int(b.W), int(b.H))
	for row := 0; row < gr.Height(); row++ {
		for col := 0; col < gr.Width(); col++ {
			r := gr.CellRect(col, row)
			switch gr.TileAt(col, row) {
			case grid.TileBlock:
				g.fillRect(layer, r, colorBlock)
			case grid.TileFloor:
				r.H = grid.FloorThickness
				g.fillRect(layer, r, colorFloor)
			}
		}
	}
	return layer
}

func (g *Game) drawActor(screen render.Image, a *entity.Actor, origin geom.Vec2) {
	r := a.Collider().MoveBy(origin)
	switch a.Kind() {
	case entity.KindPlayer:
		g.fillRect(screen, r, colorPlayer)
	case entity.KindEnemy:
		g.fillRect(screen, r, colorEnemy)
	case entity.KindBullet:
		g.fillRect(screen, r, colorBullet)
	case entity.KindCoin:
		c := r.Center()
		g.Renderer.FillCircle(screen, float32(c.X), float32(c.Y), float32(r.W/2), colorCoin)
		label := "+"
		if coin, ok := entity.CoinOf(a); ok && coin.Direction() < 0 {
			label = "-"
		}
		g.Renderer.DrawText(screen, label, int(c.X)-3, int(r.Y)-16)
	case entity.KindGuest:
		clr := colorGuest
		if guest, ok := entity.GuestOf(a); ok {
			if arch, ok := g.World.Archetype(guest.Archetype); ok {
				clr = parseHexColor(arch.Color, colorGuest)
			}
		}
		g.fillRect(screen, r, clr)
	}
}

// drawUI draws the HUD panel and the gravity indicator
func (g *Game) drawUI(screen render.Image) {
	if g.HUD != nil {
		g.HUD.Draw(g.Renderer, screen)
	}

	// Gravity indicator: a bar growing down for heavy, up for light.
	gravity := g.World.Scheduler().Gravity()
	x, y := float32(20), float32(g.ScreenHeight)/2
	h := float32(gravity * 16)
	if h < 0 {
		g.Renderer.FillRect(screen, x, y+h, 4, -h, colorArrow)
	} else {
		g.Renderer.FillRect(screen, x, y, 4, h, colorArrow)
	}
	g.Renderer.FillCircle(screen, x+2, y, 4, colorArrow)

	if g.paused {
		w, _ := g.Renderer.MeasureText("PAUSED")
		g.Renderer.DrawText(screen, "PAUSED", g.ScreenWidth/2-w/2, 8)
	}
}

func (g *Game) fillRect(screen render.Image, r geom.Rect, clr color.Color) {
	if r.IsEmpty() {
		return
	}
	g.Renderer.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr)
}

// parseHexColor parses "#rrggbb", returning fallback when s is not one
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{r, g, b, 255}
}
