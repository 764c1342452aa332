package wire

import (
	"encoding/binary"
	"math"
)

// Fixed record and header sizes, all tight-packed little-endian.
const (
	factionRecordSize  = 4 + 4*4 // i32 id + f32[4] color
	planetRecordSize   = 4*4 + 4 + 4
	starshipRecordSize = 4*4 + 4 + 4
	fullHeaderSize     = 4 + 4 + 4 + 4 + 4 + 4

	snapshotHeaderSize = 4 + 4
	snapshotRecordSize = 4 + 4 + 4

	assignmentSize = 4 + 4

	moveOrderHeaderSize = 4 + 4 + 4

	fleetLaunchSize = 4 + 4 + 4 + 4 + 4 + 4

	lobbyStateHeaderSize = 4 + 4
	lobbyFactionSize     = 4 + 4*4 + 1
	lobbyColorSize       = 4 + 4*4

	serverDisconnectHeaderSize = 4 + 4

	debugChecksumSize = 4 + 4 + 32
)

var byteOrder = binary.LittleEndian

func putF32(b []byte, v float32) {
	byteOrder.PutUint32(b, math.Float32bits(v))
}

func getF32(b []byte) float32 {
	return math.Float32frombits(byteOrder.Uint32(b))
}

func putI32(b []byte, v int32) {
	byteOrder.PutUint32(b, uint32(v))
}

func getI32(b []byte) int32 {
	return int32(byteOrder.Uint32(b))
}

// PeekType reads the leading u32 discriminant without otherwise
// interpreting the buffer. It is the first thing the server/client dispatch
// loop calls on every typed datagram.
func PeekType(buf []byte) (uint32, error) {
	if len(buf) < 4 {
		return 0, errTooShort(4, len(buf))
	}
	return byteOrder.Uint32(buf), nil
}

// IsJoin reports whether buf is the untyped JOIN handshake.
func IsJoin(buf []byte) bool {
	return len(buf) >= len(JoinPrefix) && string(buf[:len(JoinPrefix)]) == string(JoinPrefix)
}

// IsServerFull reports whether buf is the untyped SERVER_FULL reply.
func IsServerFull(buf []byte) bool {
	return len(buf) >= len(ServerFullPrefix) && string(buf[:len(ServerFullPrefix)]) == string(ServerFullPrefix)
}

// EncodeFull serializes a FULL packet.
func EncodeFull(p FullPacket) []byte {
	size := fullHeaderSize +
		len(p.Factions)*factionRecordSize +
		len(p.Planets)*planetRecordSize +
		len(p.Starships)*starshipRecordSize
	buf := make([]byte, size)

	off := 0
	byteOrder.PutUint32(buf[off:], TypeFull)
	off += 4
	putF32(buf[off:], p.Width)
	off += 4
	putF32(buf[off:], p.Height)
	off += 4
	byteOrder.PutUint32(buf[off:], uint32(len(p.Factions)))
	off += 4
	byteOrder.PutUint32(buf[off:], uint32(len(p.Planets)))
	off += 4
	byteOrder.PutUint32(buf[off:], uint32(len(p.Starships)))
	off += 4

	for _, f := range p.Factions {
		putI32(buf[off:], f.ID)
		off += 4
		for _, c := range f.Color {
			putF32(buf[off:], c)
			off += 4
		}
	}
	for _, pl := range p.Planets {
		putF32(buf[off:], pl.PosX)
		off += 4
		putF32(buf[off:], pl.PosY)
		off += 4
		putF32(buf[off:], pl.MaxCapacity)
		off += 4
		putF32(buf[off:], pl.CurrentFleetSize)
		off += 4
		putI32(buf[off:], pl.OwnerID)
		off += 4
		putI32(buf[off:], pl.ClaimantID)
		off += 4
	}
	for _, s := range p.Starships {
		putF32(buf[off:], s.PosX)
		off += 4
		putF32(buf[off:], s.PosY)
		off += 4
		putF32(buf[off:], s.VelX)
		off += 4
		putF32(buf[off:], s.VelY)
		off += 4
		putI32(buf[off:], s.OwnerID)
		off += 4
		putI32(buf[off:], s.TargetPlanetIndex)
		off += 4
	}

	return buf
}

// DecodeFull parses a FULL packet, validating the header, the type
// discriminant, and the total buffer size before interpreting any payload.
func DecodeFull(buf []byte) (FullPacket, error) {
	var p FullPacket
	if len(buf) < fullHeaderSize {
		return p, errTooShort(fullHeaderSize, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != TypeFull {
		return p, errWrongType(TypeFull, t)
	}

	off := 4
	p.Width = getF32(buf[off:])
	off += 4
	p.Height = getF32(buf[off:])
	off += 4
	factionCount := byteOrder.Uint32(buf[off:])
	off += 4
	planetCount := byteOrder.Uint32(buf[off:])
	off += 4
	starshipCount := byteOrder.Uint32(buf[off:])
	off += 4

	want := fullHeaderSize +
		int(factionCount)*factionRecordSize +
		int(planetCount)*planetRecordSize +
		int(starshipCount)*starshipRecordSize
	if len(buf) != want {
		return FullPacket{}, errTooShort(want, len(buf))
	}

	p.Factions = make([]FactionInfo, factionCount)
	for i := range p.Factions {
		p.Factions[i].ID = getI32(buf[off:])
		off += 4
		for c := 0; c < 4; c++ {
			p.Factions[i].Color[c] = getF32(buf[off:])
			off += 4
		}
	}

	p.Planets = make([]PlanetInfo, planetCount)
	for i := range p.Planets {
		p.Planets[i].PosX = getF32(buf[off:])
		off += 4
		p.Planets[i].PosY = getF32(buf[off:])
		off += 4
		p.Planets[i].MaxCapacity = getF32(buf[off:])
		off += 4
		p.Planets[i].CurrentFleetSize = getF32(buf[off:])
		off += 4
		p.Planets[i].OwnerID = getI32(buf[off:])
		off += 4
		p.Planets[i].ClaimantID = getI32(buf[off:])
		off += 4
	}

	p.Starships = make([]StarshipInfo, starshipCount)
	for i := range p.Starships {
		p.Starships[i].PosX = getF32(buf[off:])
		off += 4
		p.Starships[i].PosY = getF32(buf[off:])
		off += 4
		p.Starships[i].VelX = getF32(buf[off:])
		off += 4
		p.Starships[i].VelY = getF32(buf[off:])
		off += 4
		p.Starships[i].OwnerID = getI32(buf[off:])
		off += 4
		p.Starships[i].TargetPlanetIndex = getI32(buf[off:])
		off += 4
	}

	return p, nil
}

// EncodeSnapshot serializes a SNAPSHOT packet.
func EncodeSnapshot(p SnapshotPacket) []byte {
	buf := make([]byte, snapshotHeaderSize+len(p.Planets)*snapshotRecordSize)
	off := 0
	byteOrder.PutUint32(buf[off:], TypeSnapshot)
	off += 4
	byteOrder.PutUint32(buf[off:], uint32(len(p.Planets)))
	off += 4
	for _, r := range p.Planets {
		putF32(buf[off:], r.CurrentFleetSize)
		off += 4
		putI32(buf[off:], r.OwnerID)
		off += 4
		putI32(buf[off:], r.ClaimantID)
		off += 4
	}
	return buf
}

// DecodeSnapshot parses a SNAPSHOT packet. Callers MUST additionally check
// len(result.Planets) against their locally known planet count and reject
// on mismatch (§4.F).
func DecodeSnapshot(buf []byte) (SnapshotPacket, error) {
	var p SnapshotPacket
	if len(buf) < snapshotHeaderSize {
		return p, errTooShort(snapshotHeaderSize, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != TypeSnapshot {
		return p, errWrongType(TypeSnapshot, t)
	}
	count := byteOrder.Uint32(buf[4:])
	want := snapshotHeaderSize + int(count)*snapshotRecordSize
	if len(buf) != want {
		return SnapshotPacket{}, errTooShort(want, len(buf))
	}

	off := snapshotHeaderSize
	p.Planets = make([]SnapshotRecord, count)
	for i := range p.Planets {
		p.Planets[i].CurrentFleetSize = getF32(buf[off:])
		off += 4
		p.Planets[i].OwnerID = getI32(buf[off:])
		off += 4
		p.Planets[i].ClaimantID = getI32(buf[off:])
		off += 4
	}
	return p, nil
}

// EncodeAssignment serializes an ASSIGNMENT packet.
func EncodeAssignment(p AssignmentPacket) []byte {
	buf := make([]byte, assignmentSize)
	byteOrder.PutUint32(buf, TypeAssignment)
	putI32(buf[4:], p.FactionID)
	return buf
}

// DecodeAssignment parses an ASSIGNMENT packet.
func DecodeAssignment(buf []byte) (AssignmentPacket, error) {
	var p AssignmentPacket
	if len(buf) != assignmentSize {
		return p, errTooShort(assignmentSize, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != TypeAssignment {
		return p, errWrongType(TypeAssignment, t)
	}
	p.FactionID = getI32(buf[4:])
	return p, nil
}

// EncodeMoveOrder serializes a MOVE_ORDER packet.
func EncodeMoveOrder(p MoveOrderPacket) []byte {
	buf := make([]byte, moveOrderHeaderSize+len(p.Origins)*4)
	off := 0
	byteOrder.PutUint32(buf[off:], TypeMoveOrder)
	off += 4
	byteOrder.PutUint32(buf[off:], uint32(len(p.Origins)))
	off += 4
	putI32(buf[off:], p.DestinationIndex)
	off += 4
	for _, o := range p.Origins {
		putI32(buf[off:], o)
		off += 4
	}
	return buf
}

// DecodeMoveOrder parses a MOVE_ORDER packet. origin_count == 0 is rejected
// as invalid per §4.F.
func DecodeMoveOrder(buf []byte) (MoveOrderPacket, error) {
	var p MoveOrderPacket
	if len(buf) < moveOrderHeaderSize {
		return p, errTooShort(moveOrderHeaderSize, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != TypeMoveOrder {
		return p, errWrongType(TypeMoveOrder, t)
	}
	count := byteOrder.Uint32(buf[4:])
	if count == 0 {
		return p, errBadCount("MOVE_ORDER origin_count must be > 0")
	}
	want := moveOrderHeaderSize + int(count)*4
	if len(buf) != want {
		return MoveOrderPacket{}, errTooShort(want, len(buf))
	}
	p.DestinationIndex = getI32(buf[8:])
	off := moveOrderHeaderSize
	p.Origins = make([]int32, count)
	for i := range p.Origins {
		p.Origins[i] = getI32(buf[off:])
		off += 4
	}
	return p, nil
}

// EncodeFleetLaunch serializes a FLEET_LAUNCH packet.
func EncodeFleetLaunch(p FleetLaunchPacket) []byte {
	buf := make([]byte, fleetLaunchSize)
	off := 0
	byteOrder.PutUint32(buf[off:], TypeFleetLaunch)
	off += 4
	putI32(buf[off:], p.OriginIndex)
	off += 4
	putI32(buf[off:], p.DestinationIndex)
	off += 4
	putI32(buf[off:], p.ShipCount)
	off += 4
	putI32(buf[off:], p.OwnerFactionID)
	off += 4
	byteOrder.PutUint32(buf[off:], p.ShipSpawnRNGState)
	return buf
}

// DecodeFleetLaunch parses a FLEET_LAUNCH packet.
func DecodeFleetLaunch(buf []byte) (FleetLaunchPacket, error) {
	var p FleetLaunchPacket
	if len(buf) != fleetLaunchSize {
		return p, errTooShort(fleetLaunchSize, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != TypeFleetLaunch {
		return p, errWrongType(TypeFleetLaunch, t)
	}
	off := 4
	p.OriginIndex = getI32(buf[off:])
	off += 4
	p.DestinationIndex = getI32(buf[off:])
	off += 4
	p.ShipCount = getI32(buf[off:])
	off += 4
	p.OwnerFactionID = getI32(buf[off:])
	off += 4
	p.ShipSpawnRNGState = byteOrder.Uint32(buf[off:])
	return p, nil
}

// EncodeLobbyState serializes a LOBBY_STATE packet.
func EncodeLobbyState(p LobbyStatePacket) []byte {
	buf := make([]byte, lobbyStateHeaderSize+len(p.Factions)*lobbyFactionSize)
	off := 0
	byteOrder.PutUint32(buf[off:], TypeLobbyState)
	off += 4
	byteOrder.PutUint32(buf[off:], uint32(len(p.Factions)))
	off += 4
	for _, f := range p.Factions {
		putI32(buf[off:], f.FactionID)
		off += 4
		for _, c := range f.Color {
			putF32(buf[off:], c)
			off += 4
		}
		if f.Connected {
			buf[off] = 1
		}
		off++
	}
	return buf
}

// DecodeLobbyState parses a LOBBY_STATE packet.
func DecodeLobbyState(buf []byte) (LobbyStatePacket, error) {
	var p LobbyStatePacket
	if len(buf) < lobbyStateHeaderSize {
		return p, errTooShort(lobbyStateHeaderSize, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != TypeLobbyState {
		return p, errWrongType(TypeLobbyState, t)
	}
	count := byteOrder.Uint32(buf[4:])
	want := lobbyStateHeaderSize + int(count)*lobbyFactionSize
	if len(buf) != want {
		return LobbyStatePacket{}, errTooShort(want, len(buf))
	}
	off := lobbyStateHeaderSize
	p.Factions = make([]LobbyFactionState, count)
	for i := range p.Factions {
		p.Factions[i].FactionID = getI32(buf[off:])
		off += 4
		for c := 0; c < 4; c++ {
			p.Factions[i].Color[c] = getF32(buf[off:])
			off += 4
		}
		p.Factions[i].Connected = buf[off] != 0
		off++
	}
	return p, nil
}

// EncodeLobbyColor serializes a LOBBY_COLOR packet.
func EncodeLobbyColor(p LobbyColorPacket) []byte {
	buf := make([]byte, lobbyColorSize)
	off := 0
	byteOrder.PutUint32(buf[off:], TypeLobbyColor)
	off += 4
	for _, c := range p.Color {
		putF32(buf[off:], c)
		off += 4
	}
	return buf
}

// DecodeLobbyColor parses a LOBBY_COLOR packet.
func DecodeLobbyColor(buf []byte) (LobbyColorPacket, error) {
	var p LobbyColorPacket
	if len(buf) != lobbyColorSize {
		return p, errTooShort(lobbyColorSize, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != TypeLobbyColor {
		return p, errWrongType(TypeLobbyColor, t)
	}
	off := 4
	for i := 0; i < 4; i++ {
		p.Color[i] = getF32(buf[off:])
		off += 4
	}
	return p, nil
}

// EncodeStartGame / EncodeClientDisconnect are bare discriminant-only
// packets with no payload.
func EncodeStartGame() []byte        { return encodeBareType(TypeStartGame) }
func EncodeClientDisconnect() []byte { return encodeBareType(TypeClientDisconnect) }

func encodeBareType(t uint32) []byte {
	buf := make([]byte, 4)
	byteOrder.PutUint32(buf, t)
	return buf
}

func decodeBareType(buf []byte, want uint32) error {
	if len(buf) != 4 {
		return errTooShort(4, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != want {
		return errWrongType(want, t)
	}
	return nil
}

// DecodeStartGame validates a bare START_GAME packet.
func DecodeStartGame(buf []byte) error { return decodeBareType(buf, TypeStartGame) }

// DecodeClientDisconnect validates a bare CLIENT_DISCONNECT packet.
func DecodeClientDisconnect(buf []byte) error { return decodeBareType(buf, TypeClientDisconnect) }

// EncodeServerDisconnect serializes a SERVER_DISCONNECT packet, truncating
// Reason to MaxServerDisconnectReasonLen ASCII bytes.
func EncodeServerDisconnect(p ServerDisconnectPacket) []byte {
	reason := p.Reason
	if len(reason) > MaxServerDisconnectReasonLen {
		reason = reason[:MaxServerDisconnectReasonLen]
	}
	buf := make([]byte, serverDisconnectHeaderSize+len(reason))
	off := 0
	byteOrder.PutUint32(buf[off:], TypeServerDisconnect)
	off += 4
	byteOrder.PutUint32(buf[off:], uint32(len(reason)))
	off += 4
	copy(buf[off:], reason)
	return buf
}

// DecodeServerDisconnect parses a SERVER_DISCONNECT packet.
func DecodeServerDisconnect(buf []byte) (ServerDisconnectPacket, error) {
	var p ServerDisconnectPacket
	if len(buf) < serverDisconnectHeaderSize {
		return p, errTooShort(serverDisconnectHeaderSize, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != TypeServerDisconnect {
		return p, errWrongType(TypeServerDisconnect, t)
	}
	length := byteOrder.Uint32(buf[4:])
	if length > MaxServerDisconnectReasonLen {
		return p, errBadCount("SERVER_DISCONNECT reason exceeds maximum length")
	}
	want := serverDisconnectHeaderSize + int(length)
	if len(buf) != want {
		return ServerDisconnectPacket{}, errTooShort(want, len(buf))
	}
	p.Reason = string(buf[serverDisconnectHeaderSize:want])
	return p, nil
}

// EncodeDebugChecksum serializes the optional desync-detection extension
// packet (SPEC_FULL §3.5).
func EncodeDebugChecksum(p DebugChecksumPacket) []byte {
	buf := make([]byte, debugChecksumSize)
	off := 0
	byteOrder.PutUint32(buf[off:], TypeDebugChecksum)
	off += 4
	byteOrder.PutUint32(buf[off:], p.Tick)
	off += 4
	copy(buf[off:], p.Digest[:])
	return buf
}

// DecodeDebugChecksum parses the optional desync-detection extension
// packet.
func DecodeDebugChecksum(buf []byte) (DebugChecksumPacket, error) {
	var p DebugChecksumPacket
	if len(buf) != debugChecksumSize {
		return p, errTooShort(debugChecksumSize, len(buf))
	}
	if t := byteOrder.Uint32(buf); t != TypeDebugChecksum {
		return p, errWrongType(TypeDebugChecksum, t)
	}
	off := 4
	p.Tick = byteOrder.Uint32(buf[off:])
	off += 4
	copy(p.Digest[:], buf[off:off+32])
	return p, nil
}
