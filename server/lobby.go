package server

import (
	"github.com/lightyear-wars/lywars/game"
	"github.com/lightyear-wars/lywars/wire"
)

// Stage is the match lifecycle (SPEC_FULL §4, supplemented feature: the
// reference protocol's Open Questions leave match start unspecified, so a
// lobby stage is the natural place to let players pick colors before the
// galaxy goes live).
type Stage int

const (
	StageLobby Stage = iota
	StageRunning
)

// MinPlayersToStart is the fewest connected players the lobby allows a
// START_GAME to take effect with: a single connected player may start a
// match alone.
const MinPlayersToStart = 1

// minPlayersForAutoStart is the threshold for the countdown-driven auto-start
// (SPEC_FULL §4, supplemented feature), distinct from MinPlayersToStart:
// a lone player can still START_GAME manually, but the countdown only runs
// once a second player has joined.
const minPlayersForAutoStart = 2

// DefaultLobbyCountdownSeconds is how long the lobby waits, once
// minPlayersForAutoStart is reached, before auto-starting the match.
const DefaultLobbyCountdownSeconds = 10.0

// Lobby tracks color selection and readiness before a match goes live. It
// never touches Starships or planet ownership — those only exist once the
// match reaches StageRunning.
type Lobby struct {
	Stage Stage
	dirty bool

	countdownSeconds float64
	elapsed          float64
}

// NewLobby creates a lobby in its initial, pre-game stage. countdownSeconds
// configures the auto-start delay once minPlayersForAutoStart is reached.
func NewLobby(countdownSeconds float64) *Lobby {
	return &Lobby{Stage: StageLobby, dirty: true, countdownSeconds: countdownSeconds}
}

// SetColor applies a player's LOBBY_COLOR request to their faction and
// marks the lobby state dirty for rebroadcast. Out-of-range color
// components are clamped to [0, 1] rather than rejected outright — a
// cosmetic choice never warrants dropping the player.
func (l *Lobby) SetColor(world *game.World, factionID game.FactionID, color [4]float32) {
	f := world.Faction(factionID)
	if f == nil {
		return
	}
	f.Color = game.Color{
		R: clamp01(float64(color[0])),
		G: clamp01(float64(color[1])),
		B: clamp01(float64(color[2])),
		A: clamp01(float64(color[3])),
	}
	l.dirty = true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Start transitions the lobby into StageRunning, provided enough players
// are connected. It reports false (no-op) when the match is already
// running or too few players are present.
func (l *Lobby) Start(playerCount int) bool {
	if l.Stage != StageLobby || playerCount < MinPlayersToStart {
		return false
	}
	l.Stage = StageRunning
	l.dirty = true
	return true
}

// Tick advances the auto-start countdown while still in the lobby stage
// (SPEC_FULL §4: "automatically once ≥ 2 players have joined and 10s have
// elapsed"). The countdown only accrues once minPlayersForAutoStart is met;
// it resets if the player count drops back below that threshold, so a lone
// remaining player never gets auto-started into a solo match.
func (l *Lobby) Tick(deltaTime float64, playerCount int) {
	if l.Stage != StageLobby {
		return
	}
	if playerCount < minPlayersForAutoStart {
		l.elapsed = 0
		return
	}
	l.elapsed += deltaTime
	if l.elapsed >= l.countdownSeconds {
		l.Start(playerCount)
	}
}

// Dirty reports whether lobby state changed since the last broadcast.
func (l *Lobby) Dirty() bool {
	return l.dirty
}

// ClearDirty marks the current lobby state as broadcast.
func (l *Lobby) ClearDirty() {
	l.dirty = false
}

// MarkDirty forces the next tick to rebroadcast LOBBY_STATE, e.g. after a
// player connects or disconnects.
func (l *Lobby) MarkDirty() {
	l.dirty = true
}

// BuildLobbyState renders the current faction colors and connection state
// for broadcast (§4 supplemented feature). connected reports, for a given
// faction id, whether a player currently controls it.
func BuildLobbyState(world *game.World, connected func(game.FactionID) bool) wire.LobbyStatePacket {
	out := wire.LobbyStatePacket{Factions: make([]wire.LobbyFactionState, len(world.Factions))}
	for i, f := range world.Factions {
		out.Factions[i] = wire.LobbyFactionState{
			FactionID: int32(f.ID),
			Color:     [4]float32{float32(f.Color.R), float32(f.Color.G), float32(f.Color.B), float32(f.Color.A)},
			Connected: connected(f.ID),
		}
	}
	return out
}
