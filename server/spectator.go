package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lightyear-wars/lywars/game"
)

// isValidSpectatorOrigin allows same-origin, localhost, and no-origin
// (non-browser) spectator connections. The core protocol never goes
// through this path, so an overly permissive origin policy here can never
// compromise a match.
func isValidSpectatorOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == originURL.Host {
		return true
	}
	return strings.HasPrefix(originURL.Host, "localhost:") || originURL.Host == "localhost" ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") || originURL.Host == "127.0.0.1"
}

var spectatorUpgrader = websocket.Upgrader{
	CheckOrigin:       isValidSpectatorOrigin,
	EnableCompression: true,
}

// SpectatorView is the JSON projection of dynamic world state pushed to
// spectators (SPEC_FULL §3.1): planet positions, capacities, fleet sizes
// and ownership, plus starship positions and owners. It is one-way;
// spectators have no control over the match.
type SpectatorView struct {
	Tick      uint32              `json:"tick"`
	Width     float64             `json:"width"`
	Height    float64             `json:"height"`
	Planets   []spectatorPlanet   `json:"planets"`
	Starships []spectatorStarship `json:"starships"`
}

type spectatorPlanet struct {
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	MaxFleetCapacity float64 `json:"max_fleet_capacity"`
	CurrentFleetSize float64 `json:"current_fleet_size"`
	Owner            int32   `json:"owner"`
	Claimant         int32   `json:"claimant"`
}

type spectatorStarship struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Owner int32   `json:"owner"`
}

// SpectatorServer is an optional, read-only HTTP+websocket surface (SPEC_FULL
// §3.1). It only ever receives SpectatorView copies built by the
// authoritative loop; it never touches a *game.World, never mutates
// simulation state, and shares nothing with the server goroutine other than
// the connection set it owns.
type SpectatorServer struct {
	log zerolog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewSpectatorServer creates a spectator server; call Handler to mount it.
func NewSpectatorServer(log zerolog.Logger) *SpectatorServer {
	return &SpectatorServer{
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns an http.Handler exposing /health and /ws/spectate.
func (s *SpectatorServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws/spectate", s.handleWebsocket)
	return mux
}

func (s *SpectatorServer) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := spectatorUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("spectator upgrade failed")
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	s.log.Info().Str("remote", r.RemoteAddr).Msg("spectator connected")

	// Spectators are read-only: drain and discard anything they send so the
	// connection doesn't back up, until it closes.
	go func() {
		defer s.disconnect(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *SpectatorServer) disconnect(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// Broadcast pushes view to every connected spectator as JSON.
func (s *SpectatorServer) Broadcast(view SpectatorView) {
	payload, err := json.Marshal(view)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to marshal spectator view")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.log.Debug().Err(err).Msg("spectator write failed, dropping")
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}

	s.log.Debug().
		Int("clients", len(s.clients)).
		Str("size", humanize.Bytes(uint64(len(payload)))).
		Msg("spectator snapshot broadcast")
}

// BuildSpectatorView projects the dynamic fields of world for spectators.
func BuildSpectatorView(world *game.World, tick uint32) SpectatorView {
	view := SpectatorView{
		Tick:      tick,
		Width:     world.Width,
		Height:    world.Height,
		Planets:   make([]spectatorPlanet, len(world.Planets)),
		Starships: make([]spectatorStarship, len(world.Starships)),
	}
	for i, p := range world.Planets {
		view.Planets[i] = spectatorPlanet{
			X: p.Position.X, Y: p.Position.Y,
			MaxFleetCapacity: p.MaxFleetCapacity,
			CurrentFleetSize: p.CurrentFleetSize,
			Owner:            int32(p.Owner),
			Claimant:         int32(p.Claimant),
		}
	}
	for i, s := range world.Starships {
		view.Starships[i] = spectatorStarship{X: s.Position.X, Y: s.Position.Y, Owner: int32(s.Owner)}
	}
	return view
}
