// Package simulation provides the tunable rules of the elevator game.
// Every timing, probability and speed lives here so difficulty can be
// scaled from a config file without touching code.
package simulation

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FloorDisplay selects how the floor indicator behaves while travelling
type FloorDisplay string

const (
	// DisplayDiscrete shows the floor index, changing only on arrival
	DisplayDiscrete FloorDisplay = "discrete"
	// DisplayContinuous drifts the indicator every tick while travelling
	DisplayContinuous FloorDisplay = "continuous"
)

// Config holds all simulation rules for a game
type Config struct {
	Physics  PhysicsConfig  `toml:"physics"`
	Elevator ElevatorConfig `toml:"elevator"`
	Spawn    SpawnConfig    `toml:"spawn"`
	Score    ScoreConfig    `toml:"score"`
	Dialog   DialogConfig   `toml:"dialog"`
	Logging  LoggingConfig  `toml:"logging"`
	Paths    PathsConfig    `toml:"paths"`
}

// PhysicsConfig defines per-tick movement (pixels per tick)
type PhysicsConfig struct {
	Gravity        float64 `toml:"gravity"`          // Added to vy every tick outside the jump boost
	MaxFallSpeed   float64 `toml:"max_fall_speed"`   // |vy| is clamped to this
	JumpSpeed      float64 `toml:"jump_speed"`       // Upward speed during the boost window
	JumpBoostTicks int     `toml:"jump_boost_ticks"` // Length of the boost window
	PlayerSpeed    float64 `toml:"player_speed"`
	EnemySpeed     float64 `toml:"enemy_speed"`
	CoinSpeed      float64 `toml:"coin_speed"`
	GuestSpeed     float64 `toml:"guest_speed"`
	BulletSpeed    float64 `toml:"bullet_speed"`
}

// ElevatorConfig defines the door/travel cycle (times in seconds)
type ElevatorConfig struct {
	DoorBlend     float64      `toml:"door_blend"`     // aperture = aperture*blend + target*(1-blend)
	DoorEpsilon   float64      `toml:"door_epsilon"`   // arrival threshold
	DwellMin      float64      `toml:"dwell_min"`      // open wait before auto close
	DwellMax      float64      `toml:"dwell_max"`
	TravelMin     float64      `toml:"travel_min"`     // closed wait while travelling
	TravelMax     float64      `toml:"travel_max"`
	TravelGravity float64      `toml:"travel_gravity"` // gravity shift per unit of travel direction
	ShakeImpulse  float64      `toml:"shake_impulse"`
	OutageChance  float64      `toml:"outage_chance"`  // probability per trip
	OutageMin     float64      `toml:"outage_min"`
	OutageMax     float64      `toml:"outage_max"`
	StartFloor    int          `toml:"start_floor"`
	FloorDisplay  FloorDisplay `toml:"floor_display"`
	FloorDrift    float64      `toml:"floor_drift"`    // continuous display change per tick
}

// SpawnConfig defines what the elevator brings on each stop
type SpawnConfig struct {
	MaxEnemies      int `toml:"max_enemies"`
	EnemyJitterOdds int `toml:"enemy_jitter_odds"` // 1 in N ticks an enemy picks a new direction
	GuestExitTicks  int `toml:"guest_exit_ticks"`
	CoinLifetime    int `toml:"coin_lifetime"` // ticks; 0 = until the door closes
}

// ScoreConfig defines points awarded
type ScoreConfig struct {
	Delivery int `toml:"delivery"`
	Enemy    int `toml:"enemy"`
}

// DialogConfig defines speech bubble timing
type DialogConfig struct {
	Seconds float64 `toml:"seconds"`
}

// LoggingConfig selects the zap encoder and level
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// PathsConfig points at the data files
type PathsConfig struct {
	Level  string `toml:"level"`
	Floors string `toml:"floors"`
	Guests string `toml:"guests"`
}

// DefaultConfig returns the stock tuning
func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:        1,
			MaxFallSpeed:   8,
			JumpSpeed:      6,
			JumpBoostTicks: 5,
			PlayerSpeed:    4,
			EnemySpeed:     2,
			CoinSpeed:      1,
			GuestSpeed:     1,
			BulletSpeed:    8,
		},
		Elevator: ElevatorConfig{
			DoorBlend:     0.4,
			DoorEpsilon:   0.01,
			DwellMin:      5,
			DwellMax:      10,
			TravelMin:     2,
			TravelMax:     4,
			TravelGravity: 1,
			ShakeImpulse:  4,
			OutageChance:  0.1,
			OutageMin:     2,
			OutageMax:     4,
			StartFloor:    0,
			FloorDisplay:  DisplayDiscrete,
			FloorDrift:    0.02,
		},
		Spawn: SpawnConfig{
			MaxEnemies:      4,
			EnemyJitterOdds: 10,
			GuestExitTicks:  30,
			CoinLifetime:    0,
		},
		Score: ScoreConfig{
			Delivery: 100,
			Enemy:    10,
		},
		Dialog: DialogConfig{
			Seconds: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Paths: PathsConfig{
			Level:  "data/cab.json",
			Floors: "data/floors.yaml",
			Guests: "data/guests.yaml",
		},
	}
}

// LoadConfig loads simulation config from a TOML file. A missing file
// yields the defaults; values present in the file override them.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config %s: %w", path, err)
	}

	return config, nil
}

// Validate rejects tunings that would make the simulation undefined
func (c *Config) Validate() error {
	if err := c.Physics.validate(); err != nil {
		return fmt.Errorf("physics: %w", err)
	}
	if err := c.Elevator.Validate(); err != nil {
		return fmt.Errorf("elevator: %w", err)
	}
	// Landing is only detected while falling down the screen, so a trip
	// may weaken gravity but never invert it.
	if tg := c.Elevator.TravelGravity; tg > c.Physics.Gravity || -tg > c.Physics.Gravity {
		return fmt.Errorf("elevator: |travel_gravity| must be <= gravity (%v), got %v", c.Physics.Gravity, tg)
	}
	if c.Spawn.MaxEnemies < 0 {
		return fmt.Errorf("spawn: max_enemies must be >= 0, got %d", c.Spawn.MaxEnemies)
	}
	if c.Spawn.EnemyJitterOdds < 1 {
		return fmt.Errorf("spawn: enemy_jitter_odds must be >= 1, got %d", c.Spawn.EnemyJitterOdds)
	}
	if c.Spawn.GuestExitTicks < 0 || c.Spawn.CoinLifetime < 0 {
		return fmt.Errorf("spawn: tick counts must be >= 0")
	}
	if c.Dialog.Seconds < 0 {
		return fmt.Errorf("dialog: seconds must be >= 0, got %v", c.Dialog.Seconds)
	}
	return nil
}

func (p PhysicsConfig) validate() error {
	if p.Gravity < 0 {
		return fmt.Errorf("gravity must be >= 0, got %v", p.Gravity)
	}
	if p.MaxFallSpeed <= 0 {
		return fmt.Errorf("max_fall_speed must be > 0, got %v", p.MaxFallSpeed)
	}
	if p.JumpBoostTicks < 0 {
		return fmt.Errorf("jump_boost_ticks must be >= 0, got %d", p.JumpBoostTicks)
	}
	speeds := map[string]float64{
		"player_speed": p.PlayerSpeed,
		"enemy_speed":  p.EnemySpeed,
		"coin_speed":   p.CoinSpeed,
		"guest_speed":  p.GuestSpeed,
		"bullet_speed": p.BulletSpeed,
	}
	for name, v := range speeds {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", name, v)
		}
	}
	return nil
}

// Validate checks the timing and probability tunables of the cab cycle
func (e ElevatorConfig) Validate() error {
	if e.DoorBlend <= 0 || e.DoorBlend >= 1 {
		return fmt.Errorf("door_blend must be in (0, 1), got %v", e.DoorBlend)
	}
	if e.DoorEpsilon <= 0 || e.DoorEpsilon >= 1 {
		return fmt.Errorf("door_epsilon must be in (0, 1), got %v", e.DoorEpsilon)
	}
	ranges := []struct {
		name   string
		lo, hi float64
	}{
		{"dwell", e.DwellMin, e.DwellMax},
		{"travel", e.TravelMin, e.TravelMax},
		{"outage", e.OutageMin, e.OutageMax},
	}
	for _, r := range ranges {
		if r.lo < 0 || r.hi < r.lo {
			return fmt.Errorf("%s range [%v, %v] is invalid", r.name, r.lo, r.hi)
		}
	}
	if e.OutageChance < 0 || e.OutageChance > 1 {
		return fmt.Errorf("outage_chance must be in [0, 1], got %v", e.OutageChance)
	}
	switch e.FloorDisplay {
	case DisplayDiscrete, DisplayContinuous:
	default:
		return fmt.Errorf("unknown floor_display %q", e.FloorDisplay)
	}
	return nil
}
