package game

import "math"

// Planet is a single piece of territory: a fleet-economy accumulator with an
// ownership/claim state machine layered on top (component C).
//
// Invariants (enforced by every method below, never by the caller):
//   - Owner set implies Claimant is NoFaction.
//   - Owner and Claimant both NoFaction implies CurrentFleetSize == 0.
//   - Owner set implies CurrentFleetSize >= 0.
type Planet struct {
	Position         Vec2
	MaxFleetCapacity float64
	CurrentFleetSize float64
	Owner            FactionID
	Claimant         FactionID
}

// NewPlanet builds an unowned, unclaimed planet at position with the given
// capacity.
func NewPlanet(position Vec2, maxFleetCapacity float64) *Planet {
	return &Planet{
		Position:         position,
		MaxFleetCapacity: maxFleetCapacity,
		Owner:            NoFaction,
		Claimant:         NoFaction,
	}
}

// OuterRadius is the planet's visual/collision outer ring, derived from its
// capacity alone.
func (p *Planet) OuterRadius() float64 {
	return math.Max(p.MaxFleetCapacity*PlanetRadiusScale, 1)
}

// InnerRadius is the fill ring showing current occupancy as a fraction of
// capacity.
func (p *Planet) InnerRadius() float64 {
	outer := p.OuterRadius()
	fill := 0.0
	if p.MaxFleetCapacity > 0 {
		fill = p.CurrentFleetSize / p.MaxFleetCapacity
	}
	if fill < 0 {
		fill = 0
	}
	return math.Max((outer-PlanetRingThickness/2)*fill, 0)
}

// CollisionRadius is the radius a Starship must reach to be considered
// arrived.
func (p *Planet) CollisionRadius() float64 {
	return math.Max(p.OuterRadius(), p.InnerRadius())
}

// Tick advances the planet's fleet economy by deltaTime seconds.
func (p *Planet) Tick(deltaTime float64) {
	switch {
	case p.Owner == NoFaction && p.Claimant == NoFaction:
		p.CurrentFleetSize = 0

	case p.Owner == NoFaction:
		// Claimed but unowned: just keep it inside [0, max].
		if p.CurrentFleetSize < 0 {
			p.CurrentFleetSize = 0
		} else if p.CurrentFleetSize > p.MaxFleetCapacity {
			p.CurrentFleetSize = p.MaxFleetCapacity
		}

	default:
		if p.CurrentFleetSize < p.MaxFleetCapacity {
			p.CurrentFleetSize += PlanetFleetBuildRate * deltaTime
			if p.CurrentFleetSize > p.MaxFleetCapacity {
				p.CurrentFleetSize = p.MaxFleetCapacity
			}
		} else if p.CurrentFleetSize > p.MaxFleetCapacity {
			p.CurrentFleetSize -= (p.CurrentFleetSize - p.MaxFleetCapacity) * PlanetFleetReductionFactor * deltaTime
			if p.CurrentFleetSize < p.MaxFleetCapacity {
				p.CurrentFleetSize = p.MaxFleetCapacity
			}
		}
	}

	if p.CurrentFleetSize < 0 {
		p.CurrentFleetSize = 0
	}
}

// HandleIncomingShip resolves the arrival of a single starship owned by
// attacker against this planet: the ownership/claim state machine at the
// heart of the capture mechanic (§4.C, §8 S1/S2).
func (p *Planet) HandleIncomingShip(attacker FactionID) {
	switch {
	case p.Owner == attacker:
		// 1. Reinforcing our own planet.
		p.CurrentFleetSize++

	case p.Owner != NoFaction:
		// 2. Attacking an enemy-held planet.
		p.CurrentFleetSize--
		if p.CurrentFleetSize < 0 {
			p.Owner = attacker
			p.CurrentFleetSize = math.Max(-p.CurrentFleetSize, 1)
		}

	case p.Claimant == NoFaction:
		// 3. First claim on a neutral planet.
		p.Claimant = attacker
		p.CurrentFleetSize = 1

	case p.Claimant == attacker:
		// 4. Reinforcing our own claim; may promote to ownership.
		p.CurrentFleetSize++
		if p.MaxFleetCapacity > 0 && p.CurrentFleetSize >= p.MaxFleetCapacity {
			p.Owner = attacker
			p.Claimant = NoFaction
			p.CurrentFleetSize = p.MaxFleetCapacity
		}

	default:
		// 5. Contesting someone else's claim.
		p.CurrentFleetSize--
		if p.CurrentFleetSize <= 0 {
			p.Claimant = attacker
			p.CurrentFleetSize = 1
		}
	}
}
