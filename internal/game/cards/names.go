package cards

import (
	"encoding/json"
	"fmt"
)

// Event identifies an event card.
type Event int

const (
	EventNone Event = iota
	BorrowedTime
	OneQuietNight
	Airlift
	RemoteTreatment
)

var eventNames = map[Event]string{
	BorrowedTime:    "Borrowed Time",
	OneQuietNight:   "One Quiet Night",
	Airlift:         "Airlift",
	RemoteTreatment: "Remote Treatment",
}

var eventDescriptions = map[Event]string{
	BorrowedTime:    "The current player may take 2 additional actions this turn. Not an action.",
	OneQuietNight:   "Skip the next Draw Infection Cards step.",
	Airlift:         "Move any 1 pawn to any city.",
	RemoteTreatment: "Return any 2 disease cubes from the board to the supply.",
}

// Events lists every event card in the box.
var Events = []Event{BorrowedTime, OneQuietNight, Airlift, RemoteTreatment}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EVENT_%d", int(e))
}

// Description returns the rules text printed on the card.
func (e Event) Description() string {
	return eventDescriptions[e]
}

// ParseEvent looks an event up by its printed name.
func ParseEvent(name string) (Event, error) {
	for e, n := range eventNames {
		if n == name {
			return e, nil
		}
	}
	return EventNone, fmt.Errorf("unknown event %q", name)
}

func (e Event) MarshalText() ([]byte, error) {
	if e == EventNone {
		return []byte{}, nil
	}
	return []byte(e.String()), nil
}

func (e *Event) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*e = EventNone
		return nil
	}
	v, err := ParseEvent(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Crisis identifies a crisis card.
type Crisis int

const (
	CrisisNone Crisis = iota
	HotSpot
	LogisticsFailure
	LimitedOptions
	PlanesGrounded
	Contamination
	UnacceptableLosses
)

// CrisisKind says whether a crisis resolves once or stays in play.
type CrisisKind string

const (
	Instant CrisisKind = "instant"
	Ongoing CrisisKind = "ongoing"
)

var crisisNames = map[Crisis]string{
	HotSpot:            "Hot Spot",
	LogisticsFailure:   "Logistics Failure",
	LimitedOptions:     "Limited Options",
	PlanesGrounded:     "Planes Grounded",
	Contamination:      "Contamination",
	UnacceptableLosses: "Unacceptable Losses",
}

// Crises lists every crisis card in the box.
var Crises = []Crisis{HotSpot, LogisticsFailure, LimitedOptions, PlanesGrounded, Contamination, UnacceptableLosses}

func (c Crisis) String() string {
	if name, ok := crisisNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CRISIS_%d", int(c))
}

// Kind reports whether the crisis is instant or ongoing.
func (c Crisis) Kind() CrisisKind {
	switch c {
	case LimitedOptions, PlanesGrounded:
		return Ongoing
	default:
		return Instant
	}
}

// ParseCrisis looks a crisis up by its printed name.
func ParseCrisis(name string) (Crisis, error) {
	for c, n := range crisisNames {
		if n == name {
			return c, nil
		}
	}
	return CrisisNone, fmt.Errorf("unknown crisis %q", name)
}

func (c Crisis) MarshalText() ([]byte, error) {
	if c == CrisisNone {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

func (c *Crisis) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = CrisisNone
		return nil
	}
	v, err := ParseCrisis(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// crisisRecord is the saved form of the crisis in play.
type crisisRecord struct {
	Name string     `json:"name"`
	Kind CrisisKind `json:"kind"`
}

// MarshalJSON writes the crisis as {"name", "kind"}, or null for CrisisNone.
func (c Crisis) MarshalJSON() ([]byte, error) {
	if c == CrisisNone {
		return []byte("null"), nil
	}
	return json.Marshal(crisisRecord{Name: c.String(), Kind: c.Kind()})
}

// UnmarshalJSON accepts null, a bare printed name, or a {"name"} object.
func (c *Crisis) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = CrisisNone
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		return c.UnmarshalText([]byte(name))
	}
	var rec crisisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("crisis: %w", err)
	}
	return c.UnmarshalText([]byte(rec.Name))
}
