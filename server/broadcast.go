package server

import (
	"github.com/lightyear-wars/lywars/game"
	"github.com/lightyear-wars/lywars/wire"
)

// buildFull renders the entire world as a FULL packet (§4.F "FULL"): every
// faction, every planet, every live starship. Sent once per player, right
// after JOIN, and never broadcast.
func buildFull(world *game.World) wire.FullPacket {
	p := wire.FullPacket{
		Width:     float32(world.Width),
		Height:    float32(world.Height),
		Factions:  make([]wire.FactionInfo, len(world.Factions)),
		Planets:   make([]wire.PlanetInfo, len(world.Planets)),
		Starships: make([]wire.StarshipInfo, len(world.Starships)),
	}
	for i, f := range world.Factions {
		p.Factions[i] = wire.FactionInfo{
			ID:    int32(f.ID),
			Color: [4]float32{float32(f.Color.R), float32(f.Color.G), float32(f.Color.B), float32(f.Color.A)},
		}
	}
	for i, pl := range world.Planets {
		p.Planets[i] = wire.PlanetInfo{
			PosX:             float32(pl.Position.X),
			PosY:             float32(pl.Position.Y),
			MaxCapacity:      float32(pl.MaxFleetCapacity),
			CurrentFleetSize: float32(pl.CurrentFleetSize),
			OwnerID:          int32(pl.Owner),
			ClaimantID:       int32(pl.Claimant),
		}
	}
	for i, s := range world.Starships {
		p.Starships[i] = wire.StarshipInfo{
			PosX:              float32(s.Position.X),
			PosY:              float32(s.Position.Y),
			VelX:              float32(s.Velocity.X),
			VelY:              float32(s.Velocity.Y),
			OwnerID:           int32(s.Owner),
			TargetPlanetIndex: int32(s.Target),
		}
	}
	return p
}

// buildSnapshot renders only the dynamic planet fields (§4.F "SNAPSHOT").
// Starships are never included — clients tick them locally between
// snapshots (§4.J) and only resynchronize via FULL or FLEET_LAUNCH.
func buildSnapshot(world *game.World) wire.SnapshotPacket {
	p := wire.SnapshotPacket{Planets: make([]wire.SnapshotRecord, len(world.Planets))}
	for i, pl := range world.Planets {
		p.Planets[i] = wire.SnapshotRecord{
			CurrentFleetSize: float32(pl.CurrentFleetSize),
			OwnerID:          int32(pl.Owner),
			ClaimantID:       int32(pl.Claimant),
		}
	}
	return p
}

// buildFleetLaunch renders a server-authoritative fleet launch for
// broadcast; rngStateBefore must be the RNG's State() sampled immediately
// before the World.SendFleet call that produced this launch, so every
// client's SimulateFleetLaunch draws the identical rotation offset.
func buildFleetLaunch(origin, destination, shipCount int, owner game.FactionID, rngStateBefore uint32) wire.FleetLaunchPacket {
	return wire.FleetLaunchPacket{
		OriginIndex:       int32(origin),
		DestinationIndex:  int32(destination),
		ShipCount:         int32(shipCount),
		OwnerFactionID:    int32(owner),
		ShipSpawnRNGState: rngStateBefore,
	}
}
