package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"chosenoffset.com/elevator/internal/content"
	"chosenoffset.com/elevator/internal/dice"
	"chosenoffset.com/elevator/internal/game"
	"chosenoffset.com/elevator/internal/logging"
	ebitenrender "chosenoffset.com/elevator/internal/render/ebiten"
	"chosenoffset.com/elevator/internal/simulation"
	"chosenoffset.com/elevator/internal/ui/hud"
	"chosenoffset.com/elevator/internal/world/maploader"
)

const (
	screenWidth  = 320
	screenHeight = 240
	windowScale  = 3
)

func main() {
	configPath := flag.String("config", "config/elevator.toml", "simulation config (TOML)")
	levelPath := flag.String("level", "", "cab layout (JSON), overrides [paths] level")
	floorsPath := flag.String("floors", "", "floor table (YAML), overrides [paths] floors")
	guestsPath := flag.String("guests", "", "guest archetypes (YAML), overrides [paths] guests")
	seed := flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	override(&cfg.Paths.Level, *levelPath)
	override(&cfg.Paths.Floors, *floorsPath)
	override(&cfg.Paths.Guests, *guestsPath)

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *seed, logger); err != nil {
		logger.Fatal("elevator stopped", zap.Error(err))
	}
}

func run(cfg *simulation.Config, seed int64, logger *zap.Logger) error {
	level, err := maploader.LoadLevel(cfg.Paths.Level)
	if err != nil {
		return err
	}
	floors, err := loadOrDefault(logger, "floors", cfg.Paths.Floors, content.LoadFloors, content.DefaultFloors)
	if err != nil {
		return err
	}
	guests, err := loadOrDefault(logger, "guests", cfg.Paths.Guests, content.LoadArchetypes, content.DefaultArchetypes)
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting",
		zap.String("level", level.Name),
		zap.Int("floors", len(floors)),
		zap.Int("archetypes", len(guests)),
		zap.Int64("seed", seed))

	status := hud.New(nil, screenWidth, screenHeight)
	world, err := game.NewWorld(game.Options{
		Config:     cfg,
		Level:      level,
		Floors:     floors,
		Archetypes: guests,
		Roller:     dice.NewSeeded(seed),
		Status:     status,
		Logger:     logger.Named("world"),
	})
	if err != nil {
		return err
	}

	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g := game.NewGame(world, status, renderer, inputMgr, screenWidth, screenHeight)
	defer g.Close()

	engine.SetTPS(game.TPS)
	engine.SetWindowSize(screenWidth*windowScale, screenHeight*windowScale)
	engine.SetWindowTitle("Elevator")
	engine.SetWindowResizable(true)

	if err := engine.RunGame(g); err != nil {
		return fmt.Errorf("run loop: %w", err)
	}
	logger.Info("bye",
		zap.Int("score", world.Scheduler().Score()),
		zap.Int("deaths", world.Deaths()),
		zap.Int("frames", world.Frames()))
	return nil
}

func override(dst *string, flagValue string) {
	if flagValue != "" {
		*dst = flagValue
	}
}

// loadOrDefault loads a content table, falling back to the built-in one
// when no path is configured or the file does not exist
func loadOrDefault[T any](logger *zap.Logger, what, path string, load func(string) ([]T, error), fallback func() []T) ([]T, error) {
	if path == "" {
		return fallback(), nil
	}
	items, err := load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("content file missing, using built-in "+what, zap.String("path", path))
		return fallback(), nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}
