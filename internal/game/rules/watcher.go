package rules

import (
	"sort"
	"sync"
)

// WatcherScope defines how long a watcher's tracking lasts.
type WatcherScope int

const (
	// WatcherScopeGame tracks events for the entire game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopeTurn tracks events for the current turn and is reset when it ends.
	WatcherScopeTurn
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopeTurn:
		return "TURN"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes engine events and tracks a condition.
type Watcher interface {
	// Watch is called for every published event.
	Watch(event Event)

	// Reset clears the watcher's condition and state.
	Reset()

	// ConditionMet returns true if the tracked condition has been met.
	ConditionMet() bool

	// GetScope returns the scope of this watcher.
	GetScope() WatcherScope

	// GetKey returns a unique key for this watcher instance.
	GetKey() string
}

// BaseWatcher provides the bookkeeping shared by all watchers.
type BaseWatcher struct {
	scope     WatcherScope
	condition bool
	key       string
}

// NewBaseWatcher creates a new base watcher with the specified scope and key.
func NewBaseWatcher(scope WatcherScope, key string) *BaseWatcher {
	return &BaseWatcher{scope: scope, key: key}
}

// GetScope returns the watcher's scope.
func (bw *BaseWatcher) GetScope() WatcherScope {
	return bw.scope
}

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// GetKey returns the unique key for this watcher.
func (bw *BaseWatcher) GetKey() string {
	return bw.key
}

// WatcherRegistry manages the watchers attached to one game.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
	}
}

// AddWatcher adds a watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}
	wr.mu.Lock()
	defer wr.mu.Unlock()
	wr.watchers[watcher.GetKey()] = watcher
}

// RemoveWatcher removes a watcher from the registry.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	delete(wr.watchers, key)
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// Keys returns the registered watcher keys in sorted order.
func (wr *WatcherRegistry) Keys() []string {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	keys := make([]string, 0, len(wr.watchers))
	for k := range wr.watchers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ResetWatchersByScope resets all watchers for a given scope.
func (wr *WatcherRegistry) ResetWatchersByScope(scope WatcherScope) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		if watcher.GetScope() == scope {
			watcher.Reset()
		}
	}
}

// NotifyWatchers forwards an event to every watcher; watchers filter internally.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Watch(event)
	}
}
