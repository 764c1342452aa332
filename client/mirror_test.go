package client

import (
	"testing"

	"github.com/lightyear-wars/lywars/game"
)

func TestTickIsNoopBeforeSync(t *testing.T) {
	m := NewMirror(game.DefaultRNGSeed)
	m.Tick(1.0) // must not panic: m.World is nil before the first FULL
}

func TestTickDropsStarshipsWithVanishedTargets(t *testing.T) {
	m := NewMirror(game.DefaultRNGSeed)
	m.Stage = StageSynced
	m.World = game.NewWorld(1000, 1000)
	m.World.AddFaction(game.Faction{})
	m.World.AddPlanet(game.NewPlanet(game.Vec2{X: 500, Y: 500}, 10))
	m.World.Starships = append(m.World.Starships, game.NewStarship(game.Vec2{X: 0, Y: 0}, game.Vec2{X: 1, Y: 0}, 0, 5))

	m.Tick(1.0 / 20)

	if len(m.World.Starships) != 0 {
		t.Fatalf("expected starship targeting a nonexistent planet to be dropped")
	}
}

func TestTickMovesStarshipsTowardTarget(t *testing.T) {
	m := NewMirror(game.DefaultRNGSeed)
	m.Stage = StageSynced
	m.World = game.NewWorld(1000, 1000)
	m.World.AddFaction(game.Faction{})
	m.World.AddPlanet(game.NewPlanet(game.Vec2{X: 5000, Y: 0}, 10))
	m.World.Starships = append(m.World.Starships, game.NewStarship(game.Vec2{X: 0, Y: 0}, game.Vec2{X: 10, Y: 0}, 0, 0))

	m.Tick(1.0)

	if len(m.World.Starships) != 1 {
		t.Fatalf("starship should still be in flight")
	}
	if m.World.Starships[0].Position.X <= 0 {
		t.Fatalf("starship should have advanced toward its target, got %+v", m.World.Starships[0].Position)
	}
}
