package game

// Starship is a single in-flight fleet unit (component D). Target is
// an index into World.Planets; planets are never removed at runtime, so the
// index stays valid for the starship's whole lifetime.
type Starship struct {
	Position Vec2
	Velocity Vec2
	Owner    FactionID
	Target   int // index into World.Planets
}

// NewStarship creates a starship, clamping the initial velocity to
// StarshipMaxSpeed.
func NewStarship(position, velocity Vec2, owner FactionID, target int) Starship {
	return Starship{
		Position: position,
		Velocity: velocity.ClampLength(StarshipMaxSpeed),
		Owner:    owner,
		Target:   target,
	}
}

// Tick advances the starship's kinematics by deltaTime seconds, steering
// toward its target planet.
func (s *Starship) Tick(deltaTime float64, target *Planet) {
	if target != nil {
		dir := target.Position.Sub(s.Position).Normalize()
		s.Velocity = s.Velocity.Add(dir.Scale(StarshipAcceleration * deltaTime)).ClampLength(StarshipMaxSpeed)
	}
	s.Position = s.Position.Add(s.Velocity.Scale(deltaTime))
}

// CollidesWithTarget reports whether the starship has reached its target
// planet's collision radius.
func (s *Starship) CollidesWithTarget(target *Planet) bool {
	if target == nil {
		return false
	}
	return s.Position.Distance(target.Position) <= target.CollisionRadius()+StarshipRadius
}
