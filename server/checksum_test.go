package server

import (
	"testing"

	"github.com/lightyear-wars/lywars/game"
)

func TestPlanetStateDigestIsStableAndSensitive(t *testing.T) {
	world := game.NewWorld(1000, 1000)
	world.AddFaction(game.Faction{})
	p1 := game.NewPlanet(game.Vec2{X: 1, Y: 1}, 10)
	p1.Owner = 0
	p1.CurrentFleetSize = 4
	world.AddPlanet(p1)

	digestA := PlanetStateDigest(world)
	digestB := PlanetStateDigest(world)
	if digestA != digestB {
		t.Fatalf("digest must be deterministic for identical state")
	}

	world.Planets[0].CurrentFleetSize = 5
	digestC := PlanetStateDigest(world)
	if digestA == digestC {
		t.Fatalf("digest must change when dynamic planet state changes")
	}
}

func TestPlanetStateDigestIgnoresFloat64PrecisionBeyondF32(t *testing.T) {
	worldA := game.NewWorld(1000, 1000)
	worldA.AddFaction(game.Faction{})
	pa := game.NewPlanet(game.Vec2{X: 1, Y: 1}, 10)
	pa.Owner = 0
	pa.CurrentFleetSize = 4.0000000001 // sub-float32-epsilon difference
	worldA.AddPlanet(pa)

	worldB := game.NewWorld(1000, 1000)
	worldB.AddFaction(game.Faction{})
	pb := game.NewPlanet(game.Vec2{X: 1, Y: 1}, 10)
	pb.Owner = 0
	pb.CurrentFleetSize = 4.0
	worldB.AddPlanet(pb)

	if PlanetStateDigest(worldA) != PlanetStateDigest(worldB) {
		t.Fatalf("digest should match once both values truncate to the same float32")
	}
}
