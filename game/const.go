package game

import "time"

// Planet geometry and economy tuning. Values are mandated by the wire
// protocol: every peer in a match must agree on them exactly.

const (
	PlanetRadiusScale          = 3.5
	PlanetRingThickness        = 10.0
	PlanetFleetBuildRate       = 2.0 // ships/sec accrued toward max when owned
	PlanetFleetReductionFactor = 0.5 // decay rate applied to the over-capacity surplus
)

// Starship tuning, again wire-mandated.
const (
	StarshipRadius       = 1.0
	StarshipMaxSpeed     = 75.0
	StarshipAcceleration = 90.0
	StarshipInitialSpeed = 45.0
)

// starshipArenaStartCapacity is the initial capacity of the live-starship
// arena; it doubles on overflow (see World.spawnFleet, which appends to it).
const starshipArenaStartCapacity = 16

// SnapshotInterval is the reference broadcast cadence for SNAPSHOT packets
// (20 Hz).
const SnapshotInterval = time.Second / 20

// normalizeEpsilon is the minimum vector length normalize() will act on;
// shorter vectors normalize to the zero vector rather than blow up.
const normalizeEpsilon = 1e-4
