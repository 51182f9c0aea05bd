package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/elevator/internal/content"
	"chosenoffset.com/elevator/internal/core/geom"
	"chosenoffset.com/elevator/internal/core/motion"
	"chosenoffset.com/elevator/internal/dice"
	"chosenoffset.com/elevator/internal/elevator"
	"chosenoffset.com/elevator/internal/entity"
	"chosenoffset.com/elevator/internal/simulation"
	"chosenoffset.com/elevator/internal/ui/hud"
	"chosenoffset.com/elevator/internal/world/grid"
	"chosenoffset.com/elevator/internal/world/maploader"
)

// TPS is the fixed simulation rate
const TPS = 60

// ErrNoLevel is returned when a world is built without a level
var ErrNoLevel = errors.New("game: level is required")

// Local colliders, relative to the actor position
var (
	bodyCollider   = geom.Rect{X: -5, Y: -7, W: 10, H: 14}
	coinCollider   = geom.Rect{X: -4, Y: -4, W: 8, H: 8}
	bulletCollider = geom.Rect{X: -3, Y: -2, W: 6, H: 4}
)

// Input is the player's intent for one frame
type Input struct {
	Dir    geom.Vec2 // -1/0/+1 per axis; up jumps, down drops through floors
	Action bool      // fire, true on the frame the button went down
}

// Options configures a World
type Options struct {
	Config     *simulation.Config // nil uses simulation.DefaultConfig
	Level      *maploader.Level
	Floors     []content.Floor
	Archetypes []content.Archetype
	Roller     *dice.Roller
	Status     elevator.Status
	Logger     *zap.Logger
	Collisions entity.CollisionTable // nil uses entity.DefaultCollisions
}

// World is the scene: the grid, every live actor and the elevator that
// fills the cab. It is stepped once per frame from a single goroutine.
type World struct {
	cfg        *simulation.Config
	grid       *grid.Grid
	spawnPos   geom.Vec2
	roller     *dice.Roller
	log        *zap.Logger
	sched      *elevator.Scheduler
	collisions entity.CollisionTable
	archetypes map[string]content.Archetype

	actors  []*entity.Actor
	pending []*entity.Actor
	player  *entity.Actor
	bubbles hud.Bubbles

	nextID int
	deaths int
	frames int
}

// NewWorld builds the scene, places the player on the level's spawn point
// and starts the elevator
func NewWorld(opts Options) (*World, error) {
	if opts.Level == nil || opts.Level.Grid == nil {
		return nil, ErrNoLevel
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	collisions := opts.Collisions
	if collisions == nil {
		collisions = entity.DefaultCollisions()
	}

	w := &World{
		cfg:        cfg,
		grid:       opts.Level.Grid,
		spawnPos:   opts.Level.SpawnPos,
		roller:     opts.Roller,
		log:        logger,
		collisions: collisions,
		archetypes: make(map[string]content.Archetype, len(opts.Archetypes)),
	}
	for _, a := range opts.Archetypes {
		w.archetypes[a.Name] = a
	}

	sched, err := elevator.New(elevator.Options{
		Config:     cfg,
		Floors:     opts.Floors,
		Archetypes: opts.Archetypes,
		Host:       w,
		Status:     opts.Status,
		Roller:     opts.Roller,
		Logger:     logger.Named("elevator"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start elevator: %w", err)
	}
	w.sched = sched

	player, err := w.newActor(entity.KindPlayer, w.spawnPos, bodyCollider, w.standardJump(), entity.NewPlayer(cfg.Physics.PlayerSpeed))
	if err != nil {
		return nil, err
	}
	w.player = player
	w.actors = append(w.actors, player)

	w.log.Info("world ready",
		zap.Int("width", w.grid.Width()),
		zap.Int("height", w.grid.Height()),
		zap.Float64("spawn_x", w.spawnPos.X),
		zap.Float64("spawn_y", w.spawnPos.Y))
	return w, nil
}

func (w *World) standardJump() entity.JumpFunc {
	return entity.StandardJump(w.sched, entity.Boost{
		Ticks: w.cfg.Physics.JumpBoostTicks,
		Speed: w.cfg.Physics.JumpSpeed,
	})
}

func (w *World) newActor(kind entity.Kind, pos geom.Vec2, collider geom.Rect, jump entity.JumpFunc, b entity.Behavior) (*entity.Actor, error) {
	w.nextID++
	return entity.New(entity.Spec{
		ID:       w.nextID,
		Kind:     kind,
		Pos:      pos,
		Collider: collider,
		Jump:     jump,
		MaxFall:  w.cfg.Physics.MaxFallSpeed,
		Behavior: b,
		Provider: w,
	})
}

// add queues a new actor; it joins the live list at the end of the frame
func (w *World) add(kind entity.Kind, pos geom.Vec2, b entity.Behavior) *entity.Actor {
	collider := bodyCollider
	jump := w.standardJump()
	switch kind {
	case entity.KindCoin:
		collider = coinCollider
	case entity.KindBullet:
		collider = bulletCollider
		jump = entity.Weightless
	}

	a, err := w.newActor(kind, pos, collider, jump, b)
	if err != nil {
		w.log.Error("spawn failed", zap.Stringer("kind", kind), zap.Error(err))
		return nil
	}
	w.pending = append(w.pending, a)
	return a
}

// Step advances the world by one frame: input, actors, elevator,
// collisions, bubbles, then pruning and flushing spawns
func (w *World) Step(in Input) {
	w.frames++
	dt := 1.0 / TPS

	w.applyInput(in)

	live := w.actors
	for _, a := range live {
		if !a.Stopped() {
			a.Update()
		}
	}

	w.sched.Tick(dt)
	w.resolveCollisions()
	w.bubbles.Update(dt)

	w.prune()
	w.actors = append(w.actors, w.pending...)
	w.pending = w.pending[:0]
}

func (w *World) applyInput(in Input) {
	p, ok := entity.PlayerOf(w.player)
	if !ok {
		return
	}
	locked := w.sched.ControlsLocked()
	p.SetLocked(locked)
	p.SetInput(in.Dir)

	if in.Action && !locked {
		vx := float64(p.Facing()) * w.cfg.Physics.BulletSpeed
		w.add(entity.KindBullet, w.player.Pos(), entity.NewBullet(vx, w))
	}
}

func (w *World) prune() {
	kept := w.actors[:0]
	for _, a := range w.actors {
		if !a.Stopped() {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(w.actors); i++ {
		w.actors[i] = nil
	}
	w.actors = kept
}

// resolveCollisions dispatches every overlapping pair through the
// collision table
func (w *World) resolveCollisions() {
	for i := 0; i < len(w.actors); i++ {
		for j := i + 1; j < len(w.actors); j++ {
			a, b := w.actors[i], w.actors[j]
			if a.Stopped() || b.Stopped() || !a.Collider().Overlaps(b.Collider()) {
				continue
			}
			r, swapped := w.collisions.Lookup(a.Kind(), b.Kind())
			if swapped {
				a, b = b, a
			}
			w.respond(r, a, b)
		}
	}
}

func (w *World) respond(r entity.Response, first, second *entity.Actor) {
	switch r {
	case entity.ResponseCollect:
		c, ok := entity.CoinOf(second)
		if !ok {
			return
		}
		second.Stop()
		if w.sched.Vote(c.Direction()) {
			w.log.Debug("coin collected", zap.Int("direction", c.Direction()))
		}
	case entity.ResponseKill:
		first.Stop()
		second.Stop()
		w.sched.AddScore(w.cfg.Score.Enemy)
	case entity.ResponseHurt:
		if second == w.player {
			w.deaths++
			second.Teleport(w.spawnPos)
			w.log.Info("player hit", zap.Int("deaths", w.deaths))
		}
	case entity.ResponseAbsorb:
		first.Stop()
	}
}

// spawnPoint returns the center of the topmost open cell in col
func (w *World) spawnPoint(col int) geom.Vec2 {
	col = max(0, min(w.grid.Width()-1, col))
	for row := 0; row < w.grid.Height(); row++ {
		if !grid.IsSolid(w.grid.TileAt(col, row)) {
			return w.grid.CellCenter(col, row)
		}
	}
	return w.grid.CellCenter(col, 0)
}

// --- entity.Provider ---

// FencesFor implements entity.Provider: the arena is the only fence
func (w *World) FencesFor(geom.Rect, geom.Vec2) []geom.Rect {
	return []geom.Rect{w.grid.Bounds()}
}

// ObstaclesFor implements entity.Provider. Only cells inside the motion
// envelope are considered; one-way floors are filtered by direction.
func (w *World) ObstaclesFor(collider geom.Rect, desired geom.Vec2, passThrough bool) []geom.Rect {
	env := collider.Union(collider.MoveBy(desired))
	obstacles := w.grid.CellRectsMatching(grid.IsSolid, env)
	floors := w.grid.CellRectsMatching(grid.IsFloor, env)
	return append(obstacles, motion.OneWay(collider, desired.Y, passThrough, floors)...)
}

// HitsWall implements entity.WallProbe
func (w *World) HitsWall(r geom.Rect) bool {
	return w.grid.FindTileInRect(grid.IsSolid, r)
}

// --- elevator.Host ---

// Spawn implements elevator.Host
func (w *World) Spawn(req elevator.SpawnRequest) *entity.Actor {
	pos := w.spawnPoint(req.Column)
	phys := w.cfg.Physics

	var b entity.Behavior
	switch req.Kind {
	case entity.KindEnemy:
		b = entity.NewEnemy(w.roller, phys.EnemySpeed, w.cfg.Spawn.EnemyJitterOdds)
	case entity.KindCoin:
		b = entity.NewCoin(req.Direction, phys.CoinSpeed, w.cfg.Spawn.CoinLifetime)
	case entity.KindGuest:
		b = entity.NewGuest(req.Archetype, req.Goal, phys.GuestSpeed, w.cfg.Spawn.GuestExitTicks)
	default:
		w.log.Warn("unsupported spawn", zap.Stringer("kind", req.Kind))
		return nil
	}
	return w.add(req.Kind, pos, b)
}

// ShowDialog implements elevator.Host
func (w *World) ShowDialog(d elevator.Dialog) {
	w.bubbles.Show(d.Anchor, d.Text, d.Seconds)
}

// Despawn implements elevator.Host
func (w *World) Despawn(kind entity.Kind) {
	for _, list := range [][]*entity.Actor{w.actors, w.pending} {
		for _, a := range list {
			if a.Kind() == kind {
				a.Stop()
			}
		}
	}
}

// Count implements elevator.Host
func (w *World) Count(kind entity.Kind) int {
	n := 0
	for _, list := range [][]*entity.Actor{w.actors, w.pending} {
		for _, a := range list {
			if a.Kind() == kind && !a.Stopped() {
				n++
			}
		}
	}
	return n
}

// GridWidth implements elevator.Host
func (w *World) GridWidth() int { return w.grid.Width() }

// --- accessors ---

func (w *World) Player() *entity.Actor { return w.player }
func (w *World) Actors() []*entity.Actor { return w.actors }
func (w *World) Scheduler() *elevator.Scheduler { return w.sched }
func (w *World) Grid() *grid.Grid { return w.grid }
func (w *World) Bubbles() *hud.Bubbles { return &w.bubbles }
func (w *World) Deaths() int { return w.deaths }
func (w *World) Frames() int { return w.frames }

// Archetype returns the archetype a guest was spawned with
func (w *World) Archetype(name string) (content.Archetype, bool) {
	a, ok := w.archetypes[name]
	return a, ok
}
