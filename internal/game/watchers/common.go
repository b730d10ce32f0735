// Package watchers holds ready-made observers for a game's event stream.
package watchers

import (
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
)

// OutbreakWatcher counts outbreaks per city during the current turn.
type OutbreakWatcher struct {
	*rules.BaseWatcher
	byCity map[string]int
	total  int
}

// NewOutbreakWatcher creates a turn-scoped outbreak watcher.
func NewOutbreakWatcher() *OutbreakWatcher {
	return &OutbreakWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeTurn, "OutbreakWatcher"),
		byCity:      make(map[string]int),
	}
}

// Watch implements rules.Watcher.
func (w *OutbreakWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventOutbreak {
		return
	}
	w.byCity[event.City]++
	w.total++
	w.SetCondition(true)
}

// Reset clears the counts.
func (w *OutbreakWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.byCity = make(map[string]int)
	w.total = 0
}

// Count returns the outbreaks in a city this turn.
func (w *OutbreakWatcher) Count(city string) int {
	return w.byCity[city]
}

// Total returns the outbreaks this turn.
func (w *OutbreakWatcher) Total() int {
	return w.total
}

// EpidemicWatcher counts epidemics over the whole game.
type EpidemicWatcher struct {
	*rules.BaseWatcher
	epidemics int
	lastRate  int
}

// NewEpidemicWatcher creates a game-scoped epidemic watcher.
func NewEpidemicWatcher() *EpidemicWatcher {
	return &EpidemicWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, "EpidemicWatcher"),
	}
}

// Watch implements rules.Watcher.
func (w *EpidemicWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventEpidemic {
		return
	}
	w.epidemics++
	w.lastRate = event.Amount
	w.SetCondition(true)
}

// Reset clears the count.
func (w *EpidemicWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.epidemics = 0
	w.lastRate = 0
}

// Count returns the number of epidemics resolved.
func (w *EpidemicWatcher) Count() int {
	return w.epidemics
}

// Rate returns the infection rate set by the latest epidemic, or 0.
func (w *EpidemicWatcher) Rate() int {
	return w.lastRate
}

// CureWatcher records the order in which colors were cured.
type CureWatcher struct {
	*rules.BaseWatcher
	order []string
}

// NewCureWatcher creates a game-scoped cure watcher.
func NewCureWatcher() *CureWatcher {
	return &CureWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, "CureWatcher"),
	}
}

// Watch implements rules.Watcher.
func (w *CureWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCureFound {
		return
	}
	w.order = append(w.order, event.Color)
	w.SetCondition(true)
}

// Reset forgets every cure.
func (w *CureWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.order = nil
}

// Cured returns the cured colors, earliest first.
func (w *CureWatcher) Cured() []string {
	return append([]string(nil), w.order...)
}

// CubeWatcher tallies cubes placed and removed per color. Cubes destroyed by
// a crisis count as removed.
type CubeWatcher struct {
	*rules.BaseWatcher
	placed  map[string]int
	removed map[string]int
}

// NewCubeWatcher creates a cube watcher with the given scope.
func NewCubeWatcher(scope rules.WatcherScope) *CubeWatcher {
	return &CubeWatcher{
		BaseWatcher: rules.NewBaseWatcher(scope, "CubeWatcher"),
		placed:      make(map[string]int),
		removed:     make(map[string]int),
	}
}

// Watch implements rules.Watcher.
func (w *CubeWatcher) Watch(event rules.Event) {
	switch event.Type {
	case rules.EventCubePlaced:
		w.placed[event.Color]++
	case rules.EventCubesRemoved, rules.EventCubesDestroyed:
		w.removed[event.Color] += event.Amount
	default:
		return
	}
	w.SetCondition(true)
}

// Reset clears the tallies.
func (w *CubeWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.placed = make(map[string]int)
	w.removed = make(map[string]int)
}

// Placed returns the cubes of a color placed on the board.
func (w *CubeWatcher) Placed(color string) int {
	return w.placed[color]
}

// Removed returns the cubes of a color taken off the board or out of the game.
func (w *CubeWatcher) Removed(color string) int {
	return w.removed[color]
}
