package client

import (
	"fmt"

	"github.com/lightyear-wars/lywars/game"
	"github.com/lightyear-wars/lywars/wire"
)

// ApplyPacket dispatches one decoded-type datagram to the right handler
// given the mirror's current stage (§4.J). While StageAwaitingFull, every
// type except FULL/ASSIGNMENT is discarded; this is the client-side
// counterpart of the server's own defensive decoding.
func (m *Mirror) ApplyPacket(buf []byte) error {
	t, err := wire.PeekType(buf)
	if err != nil {
		return err
	}

	if m.Stage == StageAwaitingFull {
		switch t {
		case wire.TypeFull:
			return m.applyFull(buf)
		case wire.TypeAssignment:
			p, err := wire.DecodeAssignment(buf)
			if err != nil {
				return err
			}
			m.HandleAssignment(p)
			return nil
		default:
			return nil
		}
	}

	switch t {
	case wire.TypeFull:
		return m.applyFull(buf)
	case wire.TypeAssignment:
		p, err := wire.DecodeAssignment(buf)
		if err != nil {
			return err
		}
		m.HandleAssignment(p)
		return nil
	case wire.TypeSnapshot:
		return m.applySnapshot(buf)
	case wire.TypeFleetLaunch:
		return m.applyFleetLaunch(buf)
	case wire.TypeServerDisconnect:
		p, err := wire.DecodeServerDisconnect(buf)
		if err != nil {
			return err
		}
		m.HandleServerDisconnect(p)
		return nil
	default:
		return nil
	}
}

// applyFull rebuilds the entire local world from a FULL packet (§4.J
// Awaiting-FULL transition): clears prior state, allocates faction/planet
// storage, applies the payload in order, and resolves each starship's
// owner/target. A starship whose target_planet_index does not resolve to a
// planet is dropped rather than kept with a dangling reference.
func (m *Mirror) applyFull(buf []byte) error {
	p, err := wire.DecodeFull(buf)
	if err != nil {
		return err
	}

	world := game.NewWorld(float64(p.Width), float64(p.Height))

	for _, f := range p.Factions {
		world.AddFaction(game.Faction{
			Color: game.Color{
				R: float64(f.Color[0]),
				G: float64(f.Color[1]),
				B: float64(f.Color[2]),
				A: float64(f.Color[3]),
			},
			TeamNumber:          -1,
			SharedControlNumber: -1,
		})
	}

	for _, pl := range p.Planets {
		planet := game.NewPlanet(game.Vec2{X: float64(pl.PosX), Y: float64(pl.PosY)}, float64(pl.MaxCapacity))
		planet.CurrentFleetSize = float64(pl.CurrentFleetSize)
		planet.Owner = game.FactionID(pl.OwnerID)
		planet.Claimant = game.FactionID(pl.ClaimantID)
		world.AddPlanet(planet)
	}

	for _, sh := range p.Starships {
		targetIdx := int(sh.TargetPlanetIndex)
		if world.Planet(targetIdx) == nil {
			continue
		}
		world.Starships = append(world.Starships, game.NewStarship(
			game.Vec2{X: float64(sh.PosX), Y: float64(sh.PosY)},
			game.Vec2{X: float64(sh.VelX), Y: float64(sh.VelY)},
			game.FactionID(sh.OwnerID),
			targetIdx,
		))
	}

	m.World = world
	m.Stage = StageSynced
	return nil
}

// applySnapshot mutates only the dynamic fields of existing planets, by
// index (§4.J Synced). A planet count mismatch means the client's world is
// stale relative to the server's (e.g. after a reconnect mid-match); it is
// rejected rather than partially applied, so the caller can request a
// fresh FULL instead of silently diverging.
func (m *Mirror) applySnapshot(buf []byte) error {
	p, err := wire.DecodeSnapshot(buf)
	if err != nil {
		return err
	}
	if len(p.Planets) != len(m.World.Planets) {
		return fmt.Errorf("client: snapshot planet count %d does not match local world %d", len(p.Planets), len(m.World.Planets))
	}
	for i, rec := range p.Planets {
		planet := m.World.Planets[i]
		planet.CurrentFleetSize = float64(rec.CurrentFleetSize)
		planet.Owner = game.FactionID(rec.OwnerID)
		planet.Claimant = game.FactionID(rec.ClaimantID)
	}
	return nil
}

// applyFleetLaunch replays a server-authoritative fleet launch locally via
// SimulateFleetLaunch, seeded from the broadcast RNG state so the spawned
// starships are byte-identical to the server's (§4.J, §4.K).
func (m *Mirror) applyFleetLaunch(buf []byte) error {
	p, err := wire.DecodeFleetLaunch(buf)
	if err != nil {
		return err
	}
	m.RNG.SetState(p.ShipSpawnRNGState)
	m.World.SimulateFleetLaunch(
		int(p.OriginIndex),
		int(p.DestinationIndex),
		int(p.ShipCount),
		game.FactionID(p.OwnerFactionID),
		m.RNG,
	)
	return nil
}
