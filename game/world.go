package game

import "math"

// TrailEffect is a cosmetic, non-authoritative collection of fading
// position samples (e.g. a starship's exhaust trail). Never serialized,
// never affects simulation outcomes; World.Tick ages and prunes it purely
// for local rendering use.
type TrailEffect struct {
	Samples []TrailSample
}

// TrailSample is one aging point of a TrailEffect.
type TrailSample struct {
	Position Vec2
	Age      float64
}

// TrailSampleLifetime bounds how long a sample survives before pruning.
const TrailSampleLifetime = 1.5

// World (the "Level", component E) owns every faction, planet, and live
// starship in the match. Factions and Planets are addressed by their slice
// index, which doubles as their wire identifier; Starships are addressed
// only by a process-local slice index that is never stable across a tick
// (collisions swap-remove) and is never sent on the wire.
type World struct {
	Width, Height float64

	Factions  []Faction
	Planets   []*Planet
	Starships []Starship

	// Trails is optional cosmetic state; engines without a trail effect
	// simply never populate it.
	Trails []*TrailEffect
}

// NewWorld creates an empty world of the given extents. A level generator
// (out of core scope, per spec.md §1) is expected to populate Factions and
// Planets afterward.
func NewWorld(width, height float64) *World {
	return &World{
		Width:     width,
		Height:    height,
		Starships: make([]Starship, 0, starshipArenaStartCapacity),
	}
}

// AddFaction appends a faction and returns its assigned FactionID (its
// index).
func (w *World) AddFaction(f Faction) FactionID {
	id := FactionID(len(w.Factions))
	f.ID = id
	w.Factions = append(w.Factions, f)
	return id
}

// AddPlanet appends a planet and returns its index.
func (w *World) AddPlanet(p *Planet) int {
	w.Planets = append(w.Planets, p)
	return len(w.Planets) - 1
}

// Faction resolves a FactionID to a *Faction, or nil for NoFaction / an
// out-of-range id.
func (w *World) Faction(id FactionID) *Faction {
	if id < 0 || int(id) >= len(w.Factions) {
		return nil
	}
	return &w.Factions[id]
}

// Planet resolves a planet index, or nil if out of range.
func (w *World) Planet(index int) *Planet {
	if index < 0 || index >= len(w.Planets) {
		return nil
	}
	return w.Planets[index]
}

// Tick advances the whole world by deltaTime seconds, in the order §4.E
// mandates: planets, then cosmetic trails, then starships (with collision
// resolution visible within the same tick).
func (w *World) Tick(deltaTime float64) {
	for _, p := range w.Planets {
		p.Tick(deltaTime)
	}

	w.tickTrails(deltaTime)

	i := 0
	for i < len(w.Starships) {
		s := &w.Starships[i]
		target := w.Planet(s.Target)
		s.Tick(deltaTime, target)

		if target != nil && s.CollidesWithTarget(target) {
			target.HandleIncomingShip(s.Owner)
			w.removeStarship(i)
			continue
		}
		i++
	}
}

// removeStarship removes the starship at index via swap-with-last. Ordering
// of Starships is never observable across the network, so this is always
// safe.
func (w *World) removeStarship(index int) {
	last := len(w.Starships) - 1
	w.Starships[index] = w.Starships[last]
	w.Starships = w.Starships[:last]
}

func (w *World) tickTrails(deltaTime float64) {
	if len(w.Trails) == 0 {
		return
	}
	live := w.Trails[:0]
	for _, t := range w.Trails {
		samples := t.Samples[:0]
		for _, s := range t.Samples {
			s.Age += deltaTime
			if s.Age < TrailSampleLifetime {
				samples = append(samples, s)
			}
		}
		t.Samples = samples
		if len(t.Samples) >= 2 {
			live = append(live, t)
		}
	}
	w.Trails = live
}

// SendFleet is the server-authoritative fleet launch (§4.C): it spawns
// floor(origin.CurrentFleetSize) starships from origin toward destination,
// draws the deterministic rotation offset from rng, and zeroes origin's
// fleet size. It returns the number of ships launched and whether the
// launch was accepted.
//
// rng is advanced by exactly one draw on success; callers that need to
// broadcast the pre-launch RNG state (FLEET_LAUNCH's ship_spawn_rng_state)
// must snapshot rng.State() before calling SendFleet.
func (w *World) SendFleet(origin, destination int, rng *RNG) (shipCount int, ok bool) {
	o := w.Planet(origin)
	d := w.Planet(destination)
	if o == nil || d == nil || origin == destination {
		return 0, false
	}
	if o.Owner == NoFaction {
		return 0, false
	}
	count := int(math.Floor(o.CurrentFleetSize))
	if count <= 0 {
		return 0, false
	}

	w.spawnFleet(o, destination, o.Owner, count, rng)
	o.CurrentFleetSize = 0
	return count, true
}

// SimulateFleetLaunch mirrors SendFleet on a client: it takes the ship
// count and owner from a FLEET_LAUNCH packet rather than recomputing them,
// and may assign ownerOverride to an origin that is locally unowned so the
// client converges with the server under packet reordering (§9, open
// question on FLEET_LAUNCH ownership).
func (w *World) SimulateFleetLaunch(origin, destination int, shipCount int, ownerOverride FactionID, rng *RNG) bool {
	o := w.Planet(origin)
	d := w.Planet(destination)
	if o == nil || d == nil || origin == destination || shipCount <= 0 {
		return false
	}
	if o.Owner == NoFaction {
		o.Owner = ownerOverride
		o.Claimant = NoFaction
	}
	w.spawnFleet(o, destination, ownerOverride, shipCount, rng)
	return true
}

// spawnFleet is the deterministic circular spawn pattern shared by
// SendFleet and SimulateFleetLaunch (§4.D). Given identical
// (origin position/radius, shipCount, rng state) it produces byte-identical
// starships on every peer. destIndex is the wire-identifying index of the
// destination planet, stored on each spawned starship as its Target.
func (w *World) spawnFleet(origin *Planet, destIndex int, owner FactionID, shipCount int, rng *RNG) {
	angleStep := 2 * math.Pi / float64(shipCount)
	rotationOffset := 0.0
	if rng != nil {
		rotationOffset = rng.Float64() * 2 * math.Pi
	}
	spawnRadius := origin.OuterRadius() + StarshipRadius*1.5

	for i := 0; i < shipCount; i++ {
		angle := float64(i)*angleStep + rotationOffset
		offset := FromAngle(angle, spawnRadius)
		velocity := FromAngle(angle, StarshipInitialSpeed)
		ship := NewStarship(origin.Position.Add(offset), velocity, owner, destIndex)
		w.Starships = append(w.Starships, ship)
	}
}
