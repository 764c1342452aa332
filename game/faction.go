package game

// FactionID identifies a Faction by its index in World.Factions, which
// doubles as its wire identifier (§3, §6: faction id is the canonical
// network identifier).
type FactionID int32

// NoFaction is the wire sentinel meaning "no faction" (owner_id == -1,
// claimant_id == -1, etc).
const NoFaction FactionID = -1

// Color is an RGBA color with components in [0, 1], as carried in FULL
// faction records.
type Color struct {
	R, G, B, A float64
}

// Faction is a player- or AI-controlled identity in the match. Every field
// except Color is fixed once the world is initialized; Color may change
// while the match is in its lobby stage (see server/lobby.go).
type Faction struct {
	ID    FactionID
	Color Color

	// TeamNumber is -1 for free-for-all, otherwise a team identifier shared
	// by friendly factions.
	TeamNumber int

	// SharedControlNumber is -1 for "none"; two factions with the same
	// non-negative TeamNumber and SharedControlNumber share control.
	SharedControlNumber int

	// AIPersonality is an opaque, server-local reference to an AI behavior.
	// It is never transmitted; absent for human-controlled factions.
	AIPersonality any
}

// IsFriendly reports whether f and o are friendly: identical, or both on
// the same non-negative team.
func (f *Faction) IsFriendly(o *Faction) bool {
	if f == o {
		return true
	}
	if o == nil {
		return false
	}
	return f.TeamNumber >= 0 && f.TeamNumber == o.TeamNumber
}

// SharesControlWith reports whether f and o share control: identical, or
// both on the same non-negative team with the same non-negative shared
// control number.
func (f *Faction) SharesControlWith(o *Faction) bool {
	if f == o {
		return true
	}
	if o == nil {
		return false
	}
	return f.TeamNumber >= 0 && f.TeamNumber == o.TeamNumber &&
		f.SharedControlNumber >= 0 && f.SharedControlNumber == o.SharedControlNumber
}
