package server

import (
	"net"

	"github.com/lightyear-wars/lywars/wire"
)

// handleDatagram dispatches one inbound datagram to the untyped JOIN
// handshake or, for an already-registered player, the typed packet
// dispatcher (§4.F, §4.H). Unknown addresses sending anything but JOIN are
// silently ignored (§7: no information is ever leaked to unauthenticated
// peers).
func (s *Server) handleDatagram(dg Datagram) {
	if wire.IsJoin(dg.Data) {
		s.handleJoin(dg.Addr)
		return
	}

	player := s.players.FindByAddress(dg.Addr)
	if player == nil {
		return
	}
	player.Port = dg.Addr.Port

	if !player.Allow() {
		s.log.Debug().Str("ip", player.IP).Msg("datagram rate-limited")
		return
	}

	player.Inactivity = 0
	s.handleTyped(player, dg.Data)
}

// handleJoin processes an untyped JOIN handshake: allocate a player and
// faction, or reply SERVER_FULL when capacity or faction slots are
// exhausted (§4.F, §4.H).
func (s *Server) handleJoin(addr *net.UDPAddr) {
	player, outcome := s.players.EnsureForAddress(addr, s.world)
	if outcome != OutcomeOK {
		if err := s.transport.SendTo(addr, wire.ServerFullPrefix); err != nil {
			s.log.Warn().Err(err).Msg("failed to send SERVER_FULL")
		}
		return
	}

	s.lobby.MarkDirty()
	s.log.Info().Str("ip", player.IP).Int32("faction", int32(player.FactionID)).Msg("player joined")

	assignment := wire.EncodeAssignment(wire.AssignmentPacket{FactionID: int32(player.FactionID)})
	if err := s.transport.SendTo(player.Addr(), assignment); err != nil {
		s.log.Warn().Err(err).Msg("failed to send ASSIGNMENT")
	}
	s.sendFullTo(player)
}

// handleTyped dispatches a typed packet from an already-registered player.
func (s *Server) handleTyped(player *Player, buf []byte) {
	t, err := wire.PeekType(buf)
	if err != nil {
		return
	}

	switch t {
	case wire.TypeMoveOrder:
		s.handleMoveOrder(player, buf)
	case wire.TypeLobbyColor:
		s.handleLobbyColor(player, buf)
	case wire.TypeStartGame:
		s.handleStartGame(player, buf)
	case wire.TypeClientDisconnect:
		s.handleClientDisconnect(player, buf)
	default:
		s.log.Debug().Uint32("type", t).Msg("unhandled packet type")
	}
}

// handleMoveOrder validates and executes a client's fleet launch request
// (§4.I.a). Origins not owned by the sender's faction are silently skipped;
// every surviving origin still dispatches its fleet (invariant 7).
func (s *Server) handleMoveOrder(player *Player, buf []byte) {
	order, err := wire.DecodeMoveOrder(buf)
	if err != nil {
		return
	}
	if s.lobby.Stage != StageRunning {
		return
	}

	for _, originIdx := range order.Origins {
		origin := s.world.Planet(int(originIdx))
		if origin == nil || origin.Owner != player.FactionID {
			continue
		}

		originIndex := int(originIdx)
		destination := int(order.DestinationIndex)

		rngStateBefore := s.rng.State()
		shipCount, ok := s.world.SendFleet(originIndex, destination, s.rng)
		if !ok {
			continue
		}

		packet := buildFleetLaunch(originIndex, destination, shipCount, player.FactionID, rngStateBefore)
		s.broadcast(wire.EncodeFleetLaunch(packet))
	}
}

// handleLobbyColor applies a color choice during the lobby stage; requests
// arriving after the match has started are ignored (colors are frozen once
// a match is underway).
func (s *Server) handleLobbyColor(player *Player, buf []byte) {
	if s.lobby.Stage != StageLobby {
		return
	}
	req, err := wire.DecodeLobbyColor(buf)
	if err != nil {
		return
	}
	s.lobby.SetColor(s.world, player.FactionID, req.Color)
}

// handleStartGame attempts to transition the lobby into StageRunning. Any
// connected player may trigger it; the threshold check lives in Lobby.Start.
func (s *Server) handleStartGame(player *Player, buf []byte) {
	if err := wire.DecodeStartGame(buf); err != nil {
		return
	}
	if s.lobby.Start(s.players.Len()) {
		s.log.Info().Int("players", s.players.Len()).Msg("match started")
	}
}

// handleClientDisconnect removes a player immediately on its own request,
// rather than waiting out the inactivity timeout (§4.H, supplemented
// feature: a graceful disconnect shouldn't cost the slot 30 minutes).
func (s *Server) handleClientDisconnect(player *Player, buf []byte) {
	if err := wire.DecodeClientDisconnect(buf); err != nil {
		return
	}
	s.removePlayer(player, "disconnected")
}

// removePlayer evicts player from the registry and marks the lobby dirty so
// its departure is reflected in the next LOBBY_STATE broadcast.
func (s *Server) removePlayer(player *Player, reason string) {
	s.players.Remove(player)
	s.lobby.MarkDirty()
	s.log.Info().Str("ip", player.IP).Str("reason", reason).Msg("player left")
}

// sendFullTo sends a fresh FULL snapshot to player and clears its
// awaiting-full flag (§4.J component J: the client stays in "awaiting FULL"
// until this arrives).
func (s *Server) sendFullTo(player *Player) {
	full := wire.EncodeFull(buildFull(s.world))
	if err := s.transport.SendTo(player.Addr(), full); err != nil {
		s.log.Warn().Err(err).Msg("failed to send FULL")
		return
	}
	player.AwaitingFull = false
	if s.recorder != nil {
		s.recorder.Record(full)
	}
}

// broadcast sends payload to every registered player.
func (s *Server) broadcast(payload []byte) {
	for _, p := range s.players.Players() {
		if err := s.transport.SendTo(p.Addr(), payload); err != nil {
			s.log.Warn().Err(err).Str("ip", p.IP).Msg("broadcast send failed")
		}
	}
}
