package watchers

import (
	"testing"

	"github.com/hotzone/hotzone-server-go/internal/game/rules"
)

func TestOutbreakWatcher(t *testing.T) {
	watcher := NewOutbreakWatcher()

	if watcher.ConditionMet() {
		t.Fatal("watcher should not have condition met initially")
	}
	if watcher.GetScope() != rules.WatcherScopeTurn {
		t.Fatalf("expected turn scope, got %s", watcher.GetScope())
	}

	watcher.Watch(rules.NewCityEvent(rules.EventOutbreak, "Atlanta", "blue", 1))
	watcher.Watch(rules.NewCityEvent(rules.EventOutbreak, "Miami", "yellow", 2))
	watcher.Watch(rules.NewCityEvent(rules.EventCubePlaced, "Atlanta", "blue", 3))

	if !watcher.ConditionMet() {
		t.Fatal("watcher should have condition met after an outbreak")
	}
	if watcher.Count("Atlanta") != 1 {
		t.Fatalf("expected 1 outbreak in Atlanta, got %d", watcher.Count("Atlanta"))
	}
	if watcher.Total() != 2 {
		t.Fatalf("expected 2 outbreaks, got %d", watcher.Total())
	}

	watcher.Reset()
	if watcher.ConditionMet() {
		t.Fatal("watcher should not have condition met after reset")
	}
	if watcher.Total() != 0 || watcher.Count("Atlanta") != 0 {
		t.Fatal("expected counts to be cleared after reset")
	}
}

func TestEpidemicWatcher(t *testing.T) {
	watcher := NewEpidemicWatcher()

	watcher.Watch(rules.Event{Type: rules.EventEpidemic, Player: -1, Amount: 2})
	watcher.Watch(rules.Event{Type: rules.EventEpidemic, Player: -1, Amount: 3})
	watcher.Watch(rules.NewEvent(rules.EventIntensify))

	if watcher.Count() != 2 {
		t.Fatalf("expected 2 epidemics, got %d", watcher.Count())
	}
	if watcher.Rate() != 3 {
		t.Fatalf("expected latest rate 3, got %d", watcher.Rate())
	}
	if watcher.GetScope() != rules.WatcherScopeGame {
		t.Fatalf("expected game scope, got %s", watcher.GetScope())
	}
}

func TestCureWatcher(t *testing.T) {
	watcher := NewCureWatcher()

	watcher.Watch(rules.Event{Type: rules.EventCureFound, Color: "red"})
	watcher.Watch(rules.Event{Type: rules.EventCureFound, Color: "blue"})

	cured := watcher.Cured()
	if len(cured) != 2 || cured[0] != "red" || cured[1] != "blue" {
		t.Fatalf("unexpected cure order %v", cured)
	}

	cured[0] = "yellow"
	if watcher.Cured()[0] != "red" {
		t.Fatal("Cured should return a copy")
	}
}

func TestCubeWatcher(t *testing.T) {
	watcher := NewCubeWatcher(rules.WatcherScopeTurn)

	watcher.Watch(rules.NewCityEvent(rules.EventCubePlaced, "Denver", "blue", 1))
	watcher.Watch(rules.NewCityEvent(rules.EventCubePlaced, "Denver", "blue", 2))
	watcher.Watch(rules.NewCityEvent(rules.EventCubesRemoved, "Denver", "blue", 2))
	watcher.Watch(rules.NewCityEvent(rules.EventCubesDestroyed, "Havana", "yellow", 1))

	if watcher.Placed("blue") != 2 {
		t.Fatalf("expected 2 blue placed, got %d", watcher.Placed("blue"))
	}
	if watcher.Removed("blue") != 2 {
		t.Fatalf("expected 2 blue removed, got %d", watcher.Removed("blue"))
	}
	if watcher.Removed("yellow") != 1 {
		t.Fatalf("expected 1 yellow removed, got %d", watcher.Removed("yellow"))
	}
}

func TestWatchersInRegistry(t *testing.T) {
	registry := rules.NewWatcherRegistry()
	outbreaks := NewOutbreakWatcher()
	epidemics := NewEpidemicWatcher()
	registry.AddWatcher(outbreaks)
	registry.AddWatcher(epidemics)

	registry.NotifyWatchers(rules.NewCityEvent(rules.EventOutbreak, "Chicago", "blue", 1))
	registry.NotifyWatchers(rules.Event{Type: rules.EventEpidemic, Amount: 2})

	registry.ResetWatchersByScope(rules.WatcherScopeTurn)

	if outbreaks.Total() != 0 {
		t.Fatal("turn-scoped watcher should be reset")
	}
	if epidemics.Count() != 1 {
		t.Fatal("game-scoped watcher should survive a turn reset")
	}
}
