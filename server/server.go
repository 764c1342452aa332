package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/lightyear-wars/lywars/game"
	"github.com/lightyear-wars/lywars/wire"
)

// TickRate is the authoritative simulation rate (§5).
const TickRate = 20

// Config bundles every server startup knob (§2.2, SPEC_FULL ambient stack).
type Config struct {
	Port           int
	MaxPlayers     int
	TimeoutSeconds float64
	Seed           uint32
	Level          LevelConfig

	// LobbyCountdownSeconds is how long the lobby waits, once a second
	// player has joined, before auto-starting the match (SPEC_FULL §4,
	// `--lobby-countdown`).
	LobbyCountdownSeconds float64

	DebugRecording bool

	// SpectatorAddr, if non-empty, mounts the read-only spectator HTTP+ws
	// surface on this address (e.g. ":8080"). Empty disables it.
	SpectatorAddr string
}

// DefaultConfig returns the reference tuning (§6).
func DefaultConfig() Config {
	return Config{
		Port:                  DefaultPort,
		MaxPlayers:            DefaultMaxPlayers,
		TimeoutSeconds:        DefaultTimeoutSeconds,
		Seed:                  game.DefaultRNGSeed,
		Level:                 DefaultLevelConfig(),
		LobbyCountdownSeconds: DefaultLobbyCountdownSeconds,
	}
}

// Server is the authoritative match loop (component G/H/I tied together).
// Every mutable field below is touched only from the single goroutine
// running Run, per §5's single-threaded simulation invariant; the
// SpectatorServer is the sole exception, guarding its own client set with
// its own mutex.
type Server struct {
	cfg Config
	log zerolog.Logger

	transport *Transport
	players   *PlayerRegistry
	world     *game.World
	lobby     *Lobby
	rng       *game.RNG
	recorder  *DebugRecorder
	spectator *SpectatorServer

	tick          uint32
	snapshotAccum float64
}

// NewServer constructs a server bound to cfg but does not yet touch the
// network; call Run to start it.
func NewServer(cfg Config, log zerolog.Logger) *Server {
	countdown := cfg.LobbyCountdownSeconds
	if countdown <= 0 {
		countdown = DefaultLobbyCountdownSeconds
	}
	s := &Server{
		cfg:   cfg,
		log:   log,
		world: GenerateLevel(cfg.Level, game.NewRNG(cfg.Seed)),
		lobby: NewLobby(countdown),
		rng:   game.NewRNG(cfg.Seed),
	}
	s.players = NewPlayerRegistry(cfg.MaxPlayers)

	if cfg.DebugRecording {
		s.recorder = NewDebugRecorder()
	}
	if cfg.SpectatorAddr != "" {
		s.spectator = NewSpectatorServer(log.With().Str("component", "spectator").Logger())
	}
	return s
}

// Run binds the UDP transport, optionally starts the spectator HTTP
// server, and drives the tick loop until ctx is canceled, at which point it
// broadcasts SERVER_DISCONNECT and shuts down cleanly (§7).
func (s *Server) Run(ctx context.Context) error {
	transport, err := Listen(s.cfg.Port)
	if err != nil {
		return err
	}
	s.transport = transport
	defer s.transport.Close()

	s.log.Info().Int("port", s.cfg.Port).Msg("listening")

	if s.spectator != nil {
		httpServer := &http.Server{Addr: s.cfg.SpectatorAddr, Handler: s.spectator.Handler()}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.log.Error().Err(err).Msg("spectator server stopped")
			}
		}()
		go func() {
			<-ctx.Done()
			_ = httpServer.Close()
		}()
	}

	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	deltaTime := 1.0 / float64(TickRate)

	for {
		select {
		case <-ctx.Done():
			s.shutdown("server stopping")
			return nil
		case <-ticker.C:
			s.step(deltaTime)
		}
	}
}

// step advances one tick: drain inbound datagrams, simulate (if running),
// evict timed-out players, and broadcast SNAPSHOT/LOBBY_STATE on their own
// cadence (§4.F, §5).
func (s *Server) step(deltaTime float64) {
	datagrams, err := s.transport.DrainInbound()
	if err != nil {
		s.log.Error().Err(err).Msg("inbound drain failed")
	}
	for _, dg := range datagrams {
		s.handleDatagram(dg)
	}

	if s.lobby.Stage == StageLobby {
		s.lobby.Tick(deltaTime, s.players.Len())
	}

	if s.lobby.Stage == StageRunning {
		s.world.Tick(deltaTime)
		s.tick++
	}

	s.evictTimedOutPlayers(deltaTime)

	if s.lobby.Dirty() {
		s.broadcastLobbyState()
		s.lobby.ClearDirty()
	}

	s.snapshotAccum += deltaTime
	if snapshotIntervalSeconds := game.SnapshotInterval.Seconds(); s.snapshotAccum >= snapshotIntervalSeconds {
		s.snapshotAccum -= snapshotIntervalSeconds
		s.broadcastSnapshot()
	}
}

func (s *Server) evictTimedOutPlayers(deltaTime float64) {
	for _, p := range s.players.UpdateTimeouts(deltaTime, s.cfg.TimeoutSeconds) {
		s.removePlayer(p, "timed out")
	}
}

func (s *Server) broadcastSnapshot() {
	payload := wire.EncodeSnapshot(buildSnapshot(s.world))
	s.broadcast(payload)
	if s.recorder != nil {
		s.recorder.Record(payload)
	}
	if s.spectator != nil {
		s.spectator.Broadcast(BuildSpectatorView(s.world, s.tick))
	}
}

func (s *Server) broadcastLobbyState() {
	connected := func(id game.FactionID) bool {
		for _, p := range s.players.Players() {
			if p.FactionID == id {
				return true
			}
		}
		return false
	}
	packet := BuildLobbyState(s.world, connected)
	s.broadcast(wire.EncodeLobbyState(packet))
}

// DumpDebugRecording logs the recorder's current contents as base64 blobs,
// one log line per entry, for an operator to copy into a support bundle
// (SPEC_FULL §3.4). A no-op when debug recording was never enabled.
func (s *Server) DumpDebugRecording() {
	if s.recorder == nil {
		s.log.Warn().Msg("debug recording dump requested but recording is disabled")
		return
	}
	entries := s.recorder.DumpBase64()
	s.log.Info().Int("entries", len(entries)).Msg("dumping debug recording")
	for i, entry := range entries {
		s.log.Info().Int("index", i).Str("payload", entry).Msg("debug recording entry")
	}
}

// shutdown notifies every connected player before the socket closes.
func (s *Server) shutdown(reason string) {
	s.log.Info().Str("reason", reason).Msg("shutting down")
	payload := wire.EncodeServerDisconnect(wire.ServerDisconnectPacket{Reason: reason})
	s.broadcast(payload)
}
