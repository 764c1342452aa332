// Package client implements the applicator mirror that turns server
// broadcasts into a local, render-ready copy of the match (component J,
// spec.md §4.J). It never originates simulation decisions: it only applies
// what the server already decided, and local starship ticking exists
// purely to smooth motion between snapshots.
package client

import (
	"fmt"

	"github.com/lightyear-wars/lywars/game"
	"github.com/lightyear-wars/lywars/wire"
)

// Stage is the client applicator's state machine (§4.J).
type Stage int

const (
	StageAwaitingFull Stage = iota
	StageSynced
)

// Mirror is the client-side authoritative mirror of a match in progress.
type Mirror struct {
	Stage Stage

	World     *game.World
	RNG       *game.RNG
	FactionID game.FactionID

	// DisconnectReason is set once a SERVER_DISCONNECT has been applied;
	// callers should surface it to the user and stop sending datagrams.
	DisconnectReason string
}

// NewMirror creates a mirror waiting for its first FULL packet. seed is only
// the RNG's starting state: applyFleetLaunch overwrites it with the state
// each FLEET_LAUNCH carries before replaying the spawn, so the replayed
// geometry does not depend on it.
func NewMirror(seed uint32) *Mirror {
	return &Mirror{
		Stage:     StageAwaitingFull,
		RNG:       game.NewRNG(seed),
		FactionID: game.NoFaction,
	}
}

// Disconnected reports whether a SERVER_DISCONNECT has been applied.
func (m *Mirror) Disconnected() bool {
	return m.DisconnectReason != ""
}

// Tick advances local starships between snapshots (§4.J: "between
// snapshots, ticks local starships so motion is smooth"). It is a no-op
// before the first FULL arrives, and never ticks planets — planet economy
// and ownership are authoritative-only, applied solely via SNAPSHOT.
func (m *Mirror) Tick(deltaTime float64) {
	if m.Stage != StageSynced {
		return
	}
	i := 0
	for i < len(m.World.Starships) {
		s := &m.World.Starships[i]
		target := m.World.Planet(s.Target)
		if target == nil {
			m.removeStarship(i)
			continue
		}
		s.Tick(deltaTime, target)
		if s.CollidesWithTarget(target) {
			// Ownership effects are authoritative-only; the client merely
			// stops rendering a ship that the server will soon confirm
			// landed, via the next SNAPSHOT.
			m.removeStarship(i)
			continue
		}
		i++
	}
}

func (m *Mirror) removeStarship(index int) {
	last := len(m.World.Starships) - 1
	m.World.Starships[index] = m.World.Starships[last]
	m.World.Starships = m.World.Starships[:last]
}

// HandleAssignment records which faction the server has assigned us.
func (m *Mirror) HandleAssignment(p wire.AssignmentPacket) {
	m.FactionID = game.FactionID(p.FactionID)
}

// HandleServerDisconnect applies a SERVER_DISCONNECT: surface the reason
// and detach (§4.J).
func (m *Mirror) HandleServerDisconnect(p wire.ServerDisconnectPacket) {
	m.DisconnectReason = p.Reason
	if m.DisconnectReason == "" {
		m.DisconnectReason = "disconnected"
	}
}

// String renders a user-facing disconnect message, e.g. for a status bar.
func (m *Mirror) String() string {
	if m.Disconnected() {
		return fmt.Sprintf("Disconnected: %s", m.DisconnectReason)
	}
	return "connected"
}
