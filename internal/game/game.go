package game

import (
	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/render"
	"chosenoffset.com/elevator/internal/ui/hud"
)

// Game adapts the World to the render engine: it reads the keyboard,
// steps the world and draws it.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	World        *World
	HUD          *hud.HUD
	Renderer     render.Renderer
	InputMgr     render.InputManager

	paused bool
	tiles  render.Image
}

// NewGame creates a game for an already built world
func NewGame(world *World, h *hud.HUD, r render.Renderer, input render.InputManager, width, height int) *Game {
	return &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		World:        world,
		HUD:          h,
		Renderer:     r,
		InputMgr:     input,
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyX) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	g.World.Step(g.readInput())
	if g.HUD != nil {
		g.HUD.SetDisplayFloor(g.World.Scheduler().DisplayFloor())
	}
	return nil
}

// Paused reports whether the simulation is frozen
func (g *Game) Paused() bool { return g.paused }

// Close releases the cached tile layer.
func (g *Game) Close() {
	if g.tiles != nil {
		g.tiles.Dispose()
		g.tiles = nil
	}
}

// readInput maps the keyboard to a frame intent. Arrows or WASD move,
// up or space jumps, down drops through floors, Z fires.
func (g *Game) readInput() Input {
	var in Input
	pressed := func(keys ...render.Key) bool {
		for _, k := range keys {
			if g.InputMgr.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}

	if pressed(render.KeyLeft, render.KeyA) {
		in.Dir.X--
	}
	if pressed(render.KeyRight, render.KeyD) {
		in.Dir.X++
	}
	if pressed(render.KeyUp, render.KeyW, render.KeySpace) {
		in.Dir.Y = -1
	} else if pressed(render.KeyDown, render.KeyS) {
		in.Dir.Y = 1
	}
	in.Action = g.InputMgr.IsKeyJustPressed(render.KeyZ)
	return in
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// arenaOrigin returns the screen position of the arena's top-left corner.
// The arena is centered and bounced by the shake spring.
func (g *Game) arenaOrigin() geom.Vec2 {
	b := g.World.Grid().Bounds()
	return geom.Vec2{
		X: float64(g.ScreenWidth)/2 - b.W/2,
		Y: float64(g.ScreenHeight)/2 - b.H/2 + g.World.Scheduler().Shake(),
	}
}
