package server

import (
	"github.com/lightyear-wars/lywars/game"
)

// Level generation (random planet placement, capacity rolls) is explicitly
// out of core scope (spec.md §1): the core only requires "some deterministic
// generator returning an initialized world." GenerateLevel is that minimal
// generator — deterministic given the same seed, so a fresh match and its
// clients never need to agree on anything beyond the seed they already
// share for fleet-launch replay.
type LevelConfig struct {
	Width, Height float64
	PlanetCount   int
	FactionCount  int
	MinCapacity   float64
	MaxCapacity   float64
}

// DefaultLevelConfig mirrors the reference server's modest galaxy size
// (§4.G: planet count ≲ 128 keeps FULL packets MTU-safe).
func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		Width:        3000,
		Height:       3000,
		PlanetCount:  24,
		FactionCount: DefaultMaxPlayers,
		MinCapacity:  5,
		MaxCapacity:  30,
	}
}

// GenerateLevel builds a new World from cfg, seeding planet positions and
// capacities from rng. Every faction is created free-for-all (team -1,
// shared-control -1) and colorless (white) until the lobby stage assigns
// colors; none start owning a planet, matching a fresh match's neutral
// galaxy.
func GenerateLevel(cfg LevelConfig, rng *game.RNG) *game.World {
	w := game.NewWorld(cfg.Width, cfg.Height)

	for i := 0; i < cfg.FactionCount; i++ {
		w.AddFaction(game.Faction{
			Color:               game.Color{R: 1, G: 1, B: 1, A: 1},
			TeamNumber:          -1,
			SharedControlNumber: -1,
		})
	}

	margin := 0.1 * cfg.Width
	for i := 0; i < cfg.PlanetCount; i++ {
		x := margin + rng.Float64()*(cfg.Width-2*margin)
		y := margin + rng.Float64()*(cfg.Height-2*margin)
		capacity := cfg.MinCapacity + rng.Float64()*(cfg.MaxCapacity-cfg.MinCapacity)
		w.AddPlanet(game.NewPlanet(game.Vec2{X: x, Y: y}, capacity))
	}

	return w
}
