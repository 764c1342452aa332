package server

import (
	"testing"

	"github.com/lightyear-wars/lywars/game"
)

func TestLobbySetColorClampsComponents(t *testing.T) {
	world := newTestWorldWithFactions(1)
	lobby := NewLobby(DefaultLobbyCountdownSeconds)
	lobby.ClearDirty()

	lobby.SetColor(world, 0, [4]float32{-1, 2, 0.5, 1})

	f := world.Faction(0)
	if f.Color.R != 0 || f.Color.G != 1 || f.Color.B != 0.5 || f.Color.A != 1 {
		t.Fatalf("expected clamped color, got %+v", f.Color)
	}
	if !lobby.Dirty() {
		t.Fatalf("expected SetColor to mark the lobby dirty")
	}
}

func TestLobbySetColorIgnoresUnknownFaction(t *testing.T) {
	world := newTestWorldWithFactions(1)
	lobby := NewLobby(DefaultLobbyCountdownSeconds)
	lobby.ClearDirty()

	lobby.SetColor(world, game.FactionID(5), [4]float32{1, 1, 1, 1})

	if lobby.Dirty() {
		t.Fatalf("expected no-op for an unknown faction to leave the lobby clean")
	}
}

func TestLobbyStartRequiresMinimumPlayers(t *testing.T) {
	lobby := NewLobby(DefaultLobbyCountdownSeconds)
	if lobby.Start(0) {
		t.Fatalf("expected Start to fail with zero players")
	}
	if lobby.Stage != StageLobby {
		t.Fatalf("stage must remain StageLobby")
	}

	if !lobby.Start(1) {
		t.Fatalf("expected Start to succeed with one player")
	}
	if lobby.Stage != StageRunning {
		t.Fatalf("expected StageRunning after Start")
	}
}

func TestLobbyStartIsNoopOnceRunning(t *testing.T) {
	lobby := NewLobby(DefaultLobbyCountdownSeconds)
	lobby.Start(1)
	lobby.ClearDirty()

	if lobby.Start(5) {
		t.Fatalf("expected Start to be a no-op once already running")
	}
	if lobby.Dirty() {
		t.Fatalf("no-op Start must not mark the lobby dirty")
	}
}

func TestLobbyTickAutoStartsAfterCountdownWithTwoPlayers(t *testing.T) {
	lobby := NewLobby(10)

	lobby.Tick(5, 2)
	if lobby.Stage != StageLobby {
		t.Fatalf("expected lobby to still be waiting out the countdown")
	}

	lobby.Tick(5, 2)
	if lobby.Stage != StageRunning {
		t.Fatalf("expected auto-start once the countdown elapsed with 2+ players")
	}
}

func TestLobbyTickDoesNotAutoStartWithOnePlayer(t *testing.T) {
	lobby := NewLobby(10)

	lobby.Tick(100, 1)
	if lobby.Stage != StageLobby {
		t.Fatalf("expected no auto-start with fewer than 2 players")
	}
}

func TestLobbyTickResetsCountdownWhenPlayerCountDrops(t *testing.T) {
	lobby := NewLobby(10)

	lobby.Tick(8, 2)
	lobby.Tick(1, 1) // second player leaves before the countdown elapses
	lobby.Tick(8, 2) // would have crossed 10s total if the countdown hadn't reset

	if lobby.Stage != StageLobby {
		t.Fatalf("expected the countdown to reset when player count dropped below 2")
	}
}

func TestLobbyTickIsNoopOnceRunning(t *testing.T) {
	lobby := NewLobby(10)
	lobby.Start(1)
	lobby.ClearDirty()

	lobby.Tick(100, 5)

	if lobby.Dirty() {
		t.Fatalf("Tick must not re-mark an already-running lobby dirty")
	}
}

func TestBuildLobbyStateReflectsConnectionStatus(t *testing.T) {
	world := newTestWorldWithFactions(2)
	world.Faction(0).Color = game.Color{R: 1, G: 0, B: 0, A: 1}

	connected := func(id game.FactionID) bool { return id == 0 }
	state := BuildLobbyState(world, connected)

	if len(state.Factions) != 2 {
		t.Fatalf("expected 2 faction records, got %d", len(state.Factions))
	}
	if !state.Factions[0].Connected {
		t.Fatalf("expected faction 0 to be reported connected")
	}
	if state.Factions[1].Connected {
		t.Fatalf("expected faction 1 to be reported disconnected")
	}
	if state.Factions[0].Color[0] != 1 {
		t.Fatalf("expected faction 0 color to carry through, got %+v", state.Factions[0].Color)
	}
}
