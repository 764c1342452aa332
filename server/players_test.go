package server

import (
	"net"
	"testing"

	"github.com/lightyear-wars/lywars/game"
)

func newTestWorldWithFactions(n int) *game.World {
	w := game.NewWorld(1000, 1000)
	for i := 0; i < n; i++ {
		w.AddFaction(game.Faction{TeamNumber: -1, SharedControlNumber: -1})
	}
	return w
}

func TestEnsureForAddressAssignsDistinctFactions(t *testing.T) {
	world := newTestWorldWithFactions(2)
	reg := NewPlayerRegistry(2)

	addr1 := &net.UDPAddr{IP: net.ParseIP("1.2.3.4"), Port: 1111}
	addr2 := &net.UDPAddr{IP: net.ParseIP("5.6.7.8"), Port: 2222}

	p1, outcome := reg.EnsureForAddress(addr1, world)
	if outcome != OutcomeOK {
		t.Fatalf("expected OutcomeOK, got %v", outcome)
	}
	p2, outcome := reg.EnsureForAddress(addr2, world)
	if outcome != OutcomeOK {
		t.Fatalf("expected OutcomeOK, got %v", outcome)
	}

	if p1.FactionID == p2.FactionID {
		t.Fatalf("expected distinct factions, both got %v", p1.FactionID)
	}
}

func TestEnsureForAddressIsIdempotentForSameIP(t *testing.T) {
	world := newTestWorldWithFactions(2)
	reg := NewPlayerRegistry(2)

	addr := &net.UDPAddr{IP: net.ParseIP("1.2.3.4"), Port: 1111}
	p1, _ := reg.EnsureForAddress(addr, world)

	// Same IP, different port (NAT port shift) must resolve to the same
	// player record, not allocate a second one (invariant 8).
	addr2 := &net.UDPAddr{IP: net.ParseIP("1.2.3.4"), Port: 9999}
	p2, outcome := reg.EnsureForAddress(addr2, world)
	if outcome != OutcomeOK {
		t.Fatalf("expected OutcomeOK, got %v", outcome)
	}
	if p1 != p2 {
		t.Fatalf("expected the same player record across a port shift")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected registry to still contain exactly 1 player, got %d", reg.Len())
	}
	if p2.Port != 9999 {
		t.Fatalf("expected port to update to the most recent source port")
	}
}

func TestEnsureForAddressRejectsBeyondCapacity(t *testing.T) {
	world := newTestWorldWithFactions(2)
	reg := NewPlayerRegistry(1)

	addr1 := &net.UDPAddr{IP: net.ParseIP("1.2.3.4"), Port: 1111}
	addr2 := &net.UDPAddr{IP: net.ParseIP("5.6.7.8"), Port: 2222}

	if _, outcome := reg.EnsureForAddress(addr1, world); outcome != OutcomeOK {
		t.Fatalf("first join should succeed")
	}
	if _, outcome := reg.EnsureForAddress(addr2, world); outcome != OutcomeSkip {
		t.Fatalf("expected OutcomeSkip once capacity is exhausted, got %v", outcome)
	}
}

func TestEnsureForAddressRejectsWhenNoFactionFree(t *testing.T) {
	world := newTestWorldWithFactions(1)
	reg := NewPlayerRegistry(5)

	addr1 := &net.UDPAddr{IP: net.ParseIP("1.2.3.4"), Port: 1111}
	addr2 := &net.UDPAddr{IP: net.ParseIP("5.6.7.8"), Port: 2222}

	if _, outcome := reg.EnsureForAddress(addr1, world); outcome != OutcomeOK {
		t.Fatalf("first join should succeed")
	}
	if _, outcome := reg.EnsureForAddress(addr2, world); outcome != OutcomeSkip {
		t.Fatalf("expected OutcomeSkip once every faction is claimed, got %v", outcome)
	}
}

func TestRemoveSwapRemovesPlayer(t *testing.T) {
	world := newTestWorldWithFactions(3)
	reg := NewPlayerRegistry(3)

	var players []*Player
	for i, ipSuffix := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		p, outcome := reg.EnsureForAddress(&net.UDPAddr{IP: net.ParseIP(ipSuffix), Port: 1000 + i}, world)
		if outcome != OutcomeOK {
			t.Fatalf("join %d should succeed", i)
		}
		players = append(players, p)
	}

	reg.Remove(players[0])
	if reg.Len() != 2 {
		t.Fatalf("expected 2 players remaining, got %d", reg.Len())
	}
	if reg.FindByAddress(&net.UDPAddr{IP: net.ParseIP("1.1.1.1"), Port: 1000}) != nil {
		t.Fatalf("removed player should no longer resolve by address")
	}
	for _, p := range []*Player{players[1], players[2]} {
		found := false
		for _, candidate := range reg.Players() {
			if candidate == p {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected remaining player to survive the swap-remove")
		}
	}
}

func TestUpdateTimeoutsIsMonotonicAndReportsExpired(t *testing.T) {
	world := newTestWorldWithFactions(2)
	reg := NewPlayerRegistry(2)

	addr := &net.UDPAddr{IP: net.ParseIP("1.2.3.4"), Port: 1111}
	p, _ := reg.EnsureForAddress(addr, world)

	if timedOut := reg.UpdateTimeouts(1.0, 5.0); len(timedOut) != 0 {
		t.Fatalf("expected no timeouts yet")
	}
	if p.Inactivity != 1.0 {
		t.Fatalf("expected inactivity to accumulate monotonically, got %v", p.Inactivity)
	}

	timedOut := reg.UpdateTimeouts(10.0, 5.0)
	if len(timedOut) != 1 || timedOut[0] != p {
		t.Fatalf("expected the player to be reported as timed out")
	}
}
