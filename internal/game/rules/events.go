package rules

import (
	"sync"
)

// EventType indicates the category of an engine event.
type EventType string

const (
	// Board events
	EventCubePlaced      EventType = "CUBE_PLACED"
	EventCubesRemoved    EventType = "CUBES_REMOVED"
	EventCubesDestroyed  EventType = "CUBES_DESTROYED" // removed from the game entirely
	EventOutbreak        EventType = "OUTBREAK"
	EventSupplyExhausted EventType = "SUPPLY_EXHAUSTED"

	// Deck events
	EventInfectionDrawn     EventType = "INFECTION_DRAWN"
	EventInfectionReshuffle EventType = "INFECTION_RESHUFFLED"
	EventEpidemic           EventType = "EPIDEMIC"
	EventIntensify          EventType = "INTENSIFY"
	EventCrisis             EventType = "CRISIS"
	EventCrisisEnded        EventType = "CRISIS_ENDED"
	EventPlayerCardDrawn    EventType = "PLAYER_CARD_DRAWN"
	EventCardDiscarded      EventType = "CARD_DISCARDED"
	EventCardGiven          EventType = "CARD_GIVEN"
	EventEventPlayed        EventType = "EVENT_PLAYED"

	// Player events
	EventPawnMoved   EventType = "PAWN_MOVED"
	EventCureFound   EventType = "CURE_DISCOVERED"
	EventActionSpent EventType = "ACTION_SPENT"

	// Turn events
	EventPhaseChanged EventType = "PHASE_CHANGED"
	EventTurnEnded    EventType = "TURN_ENDED"
	EventGameWon      EventType = "GAME_WON"
	EventGameLost     EventType = "GAME_LOST"
)

// Terminal reports whether the event ends the game.
func (et EventType) Terminal() bool {
	return et == EventGameWon || et == EventGameLost
}

// Event is a state change other subsystems may react to.
// Fields that do not apply to the event type are left zero.
type Event struct {
	Type        EventType
	City        string
	Color       string
	Player      int // player index, -1 when no player is involved
	Amount      int
	Data        string
	Description string
}

// NewEvent creates an event that involves no player.
func NewEvent(eventType EventType) Event {
	return Event{Type: eventType, Player: -1}
}

// NewCityEvent creates an event about cubes of one color in one city.
func NewCityEvent(eventType EventType, city, color string, amount int) Event {
	return Event{Type: eventType, City: city, Color: color, Player: -1, Amount: amount}
}

// NewPlayerEvent creates an event about a player.
func NewPlayerEvent(eventType EventType, player int, city string) Event {
	return Event{Type: eventType, City: city, Player: player}
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus is a synchronous publish/subscribe hub with type filtering.
// Listeners run in subscription order on the publishing goroutine.
type EventBus struct {
	mu             sync.RWMutex
	listeners      []handleListener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

type handleListener struct {
	handle   int
	listener Listener
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners = append(bus.listeners, handleListener{handle: handle, listener: listener})
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the handle, typed or not.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, l := range bus.listeners {
		if l.handle == handle {
			bus.listeners = append(bus.listeners[:i], bus.listeners[i+1:]...)
			return
		}
	}
	for eventType, listeners := range bus.typedListeners {
		for i := range listeners {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Listeners must not subscribe or unsubscribe from inside a callback.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, l := range bus.listeners {
		l.listener(event)
	}
	for _, l := range bus.typedListeners[event.Type] {
		l.Callback(event)
	}
}
