package server

import (
	"net"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/lightyear-wars/lywars/game"
)

// Default tuning for the player registry (§6).
const (
	DefaultMaxPlayers      = 16
	DefaultTimeoutSeconds  = 1800.0
	defaultRateLimitPerSec = 40.0
	defaultRateLimitBurst  = 80
)

// Player is the server-side record for one connected endpoint (component H).
// The assigned faction is held only as FactionID, an index into
// World.Factions; nothing here is ever sent verbatim on the wire except
// FactionID, which rides inside ASSIGNMENT.
type Player struct {
	IP   string // net.IP.String() of the IPv4 address; the identity key
	Port int    // most recently observed source port

	FactionID game.FactionID

	AwaitingFull bool
	Inactivity   float64

	// SessionID is a server-local diagnostic identifier (SPEC_FULL §3.2);
	// it never appears on the wire.
	SessionID uuid.UUID

	limiter *rate.Limiter
}

// Addr renders the player's current endpoint for outbound sends.
func (p *Player) Addr() *net.UDPAddr {
	return &net.UDPAddr{IP: net.ParseIP(p.IP), Port: p.Port}
}

// Allow reports whether an inbound datagram from this player should be
// processed, consuming one token from its rate limiter (SPEC_FULL §3.3).
func (p *Player) Allow() bool {
	return p.limiter.Allow()
}

// PlayerRegistry is the address→player map plus faction allocation policy
// (component H). All mutation happens from the single server goroutine, so
// no internal locking is needed (§5: simulation is single-threaded).
type PlayerRegistry struct {
	maxPlayers int
	byIP       map[string]*Player
	players    []*Player
}

// NewPlayerRegistry creates an empty registry with the given capacity.
func NewPlayerRegistry(maxPlayers int) *PlayerRegistry {
	return &PlayerRegistry{
		maxPlayers: maxPlayers,
		byIP:       make(map[string]*Player, maxPlayers),
		players:    make([]*Player, 0, maxPlayers),
	}
}

// Players returns the live player slice. Callers that remove players while
// iterating MUST walk by index, not range, since Remove swap-removes.
func (r *PlayerRegistry) Players() []*Player {
	return r.players
}

// Len reports the number of registered players.
func (r *PlayerRegistry) Len() int {
	return len(r.players)
}

// FindByAddress looks up a player by IPv4 address; the port is ignored, so
// a NAT-induced port shift never unseats a player (§4.H, invariant 8).
func (r *PlayerRegistry) FindByAddress(addr *net.UDPAddr) *Player {
	ip4 := addr.IP.To4()
	if ip4 == nil {
		return nil
	}
	return r.byIP[ip4.String()]
}

// EnsureForAddress returns the player for addr, creating one (and
// allocating it an unused faction) if none exists yet. It reports
// OutcomeSkip when the registry is full or no faction is free — the caller
// must reply SERVER_FULL and allocate nothing.
func (r *PlayerRegistry) EnsureForAddress(addr *net.UDPAddr, world *game.World) (*Player, Outcome) {
	ip4 := addr.IP.To4()
	if ip4 == nil {
		return nil, OutcomeSkip
	}
	key := ip4.String()

	if p, ok := r.byIP[key]; ok {
		p.Port = addr.Port
		p.AwaitingFull = true
		p.Inactivity = 0
		return p, OutcomeOK
	}

	if len(r.players) >= r.maxPlayers {
		return nil, OutcomeSkip
	}

	factionID, ok := r.allocateFaction(world)
	if !ok {
		return nil, OutcomeSkip
	}

	p := &Player{
		IP:           key,
		Port:         addr.Port,
		FactionID:    factionID,
		AwaitingFull: true,
		SessionID:    uuid.New(),
		limiter:      rate.NewLimiter(rate.Limit(defaultRateLimitPerSec), defaultRateLimitBurst),
	}
	r.byIP[key] = p
	r.players = append(r.players, p)
	return p, OutcomeOK
}

// allocateFaction linear-searches world's factions for one not already
// claimed by a registered player (§4.H).
func (r *PlayerRegistry) allocateFaction(world *game.World) (game.FactionID, bool) {
	used := make(map[game.FactionID]bool, len(r.players))
	for _, p := range r.players {
		used[p.FactionID] = true
	}
	for i := range world.Factions {
		id := world.Factions[i].ID
		if !used[id] {
			return id, true
		}
	}
	return game.NoFaction, false
}

// Remove swap-removes p from the registry (§4.H, §5: index-based walk
// required because this mutates the backing slice).
func (r *PlayerRegistry) Remove(p *Player) {
	delete(r.byIP, p.IP)
	for i, candidate := range r.players {
		if candidate == p {
			last := len(r.players) - 1
			r.players[i] = r.players[last]
			r.players = r.players[:last]
			return
		}
	}
}

// UpdateTimeouts advances every player's inactivity timer by deltaTime and
// returns those that have crossed timeoutSeconds, for the caller to notify
// and remove (§4.H). Iteration is index-based to tolerate the registry being
// mutated by the caller between calls.
func (r *PlayerRegistry) UpdateTimeouts(deltaTime, timeoutSeconds float64) []*Player {
	var timedOut []*Player
	for i := 0; i < len(r.players); i++ {
		p := r.players[i]
		p.Inactivity += deltaTime
		if p.Inactivity >= timeoutSeconds {
			timedOut = append(timedOut, p)
		}
	}
	return timedOut
}
