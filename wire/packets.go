// Package wire implements the bit-exact binary protocol connecting the
// Light-Year Wars server and its clients (component F, spec.md §4.F). Every
// multi-byte field is little-endian, tight-packed, with IEEE-754 float32 for
// all floating point fields — the reference profile spec.md §4.F mandates
// for cross-implementation agreement.
package wire

// Packet type discriminants. Every typed packet leads with one of these as
// a little-endian u32. Values MUST match spec.md §6 exactly for the core
// five; the rest are additive extensions explicitly anticipated by §4.F's
// packet type table ("extensions in some builds").
const (
	TypeFull        uint32 = 1
	TypeSnapshot    uint32 = 2
	TypeAssignment  uint32 = 3
	TypeMoveOrder   uint32 = 4
	TypeFleetLaunch uint32 = 5

	TypeLobbyState       uint32 = 6
	TypeLobbyColor       uint32 = 7
	TypeStartGame        uint32 = 8
	TypeClientDisconnect uint32 = 9
	TypeServerDisconnect uint32 = 10

	// TypeDebugChecksum is an additive diagnostic extension (SPEC_FULL
	// §3.5): a blake3 digest of dynamic planet state for spotting desyncs.
	// The server does not send it and client.Mirror ignores it; it never
	// carries authoritative state.
	TypeDebugChecksum uint32 = 100
)

// JoinPrefix is the untyped ASCII handshake a would-be client sends before
// it has a faction (spec.md §4.F "JOIN"). ServerFullPrefix is the server's
// untyped ASCII reply when capacity is exhausted.
var (
	JoinPrefix       = []byte("JOIN")
	ServerFullPrefix = []byte("SERVER_FULL")
)

// NoFactionID / NoPlanetIndex are the wire sentinels for "absent" (§6).
const (
	NoFactionID  int32 = -1
	NoPlanetIndex int32 = -1
)

// FactionInfo is one faction record inside a FULL packet.
type FactionInfo struct {
	ID    int32
	Color [4]float32
}

// PlanetInfo is one planet record inside a FULL packet.
type PlanetInfo struct {
	PosX, PosY       float32
	MaxCapacity      float32
	CurrentFleetSize float32
	OwnerID          int32
	ClaimantID       int32
}

// StarshipInfo is one starship record inside a FULL packet.
type StarshipInfo struct {
	PosX, PosY, VelX, VelY float32
	OwnerID                int32
	TargetPlanetIndex      int32
}

// FullPacket is a complete world snapshot (§4.F "FULL").
type FullPacket struct {
	Width, Height float32
	Factions      []FactionInfo
	Planets       []PlanetInfo
	Starships     []StarshipInfo
}

// SnapshotRecord is one planet's dynamic state inside a SNAPSHOT packet.
type SnapshotRecord struct {
	CurrentFleetSize float32
	OwnerID          int32
	ClaimantID       int32
}

// SnapshotPacket is the periodic dynamic-state broadcast (§4.F "SNAPSHOT").
// It never carries starships.
type SnapshotPacket struct {
	Planets []SnapshotRecord
}

// AssignmentPacket tells a client which faction it now controls.
type AssignmentPacket struct {
	FactionID int32
}

// MoveOrderPacket is a client's request to launch fleets from one or more
// owned origins toward a single destination.
type MoveOrderPacket struct {
	DestinationIndex int32
	Origins          []int32
}

// FleetLaunchPacket is the server-authoritative broadcast of a fleet
// launch, replayed deterministically by every client via
// game.World.SimulateFleetLaunch.
type FleetLaunchPacket struct {
	OriginIndex       int32
	DestinationIndex  int32
	ShipCount         int32
	OwnerFactionID    int32
	ShipSpawnRNGState uint32
}

// LobbyFactionState is one faction's record inside a LOBBY_STATE broadcast.
type LobbyFactionState struct {
	FactionID int32
	Color     [4]float32
	Connected bool
}

// LobbyStatePacket is the server's broadcast of lobby membership and chosen
// colors (SPEC_FULL §4 supplemented feature).
type LobbyStatePacket struct {
	Factions []LobbyFactionState
}

// LobbyColorPacket is a client's request to set its faction's lobby color.
type LobbyColorPacket struct {
	Color [4]float32
}

// ServerDisconnectPacket carries a bounded, user-visible ASCII reason string
// (§7 "Disconnected: <reason>").
type ServerDisconnectPacket struct {
	Reason string
}

// MaxServerDisconnectReasonLen bounds ServerDisconnectPacket.Reason so a
// malicious or buggy peer cannot force an unbounded allocation on decode.
const MaxServerDisconnectReasonLen = 256

// DebugChecksumPacket carries a digest of dynamic planet state for the
// optional desync-detection extension (SPEC_FULL §3.5).
type DebugChecksumPacket struct {
	Tick   uint32
	Digest [32]byte
}
