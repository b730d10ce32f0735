package cards

import (
	"encoding/json"
	"fmt"

	"github.com/hotzone/hotzone-server-go/internal/game/board"
)

// Kind tags which variant a Card holds.
type Kind string

const (
	KindCity      Kind = "city"
	KindEvent     Kind = "event"
	KindEpidemic  Kind = "epidemic"
	KindCrisis    Kind = "crisis"
	KindInfection Kind = "infection"
)

// Card is a closed tagged variant. Only the fields belonging to Kind are set:
//
//	city:      City, Color
//	event:     Event
//	epidemic:  (none)
//	crisis:    Crisis
//	infection: City
//
// Infection cards only live in the infection deck and discard; the other kinds
// only live in the player deck, the player discard and hands.
type Card struct {
	Kind   Kind
	City   board.City
	Color  board.Color
	Event  Event
	Crisis Crisis
}

// cardRecord is the saved form of a Card. Event and crisis cards both carry
// their printed name; crisis cards also carry their kind.
type cardRecord struct {
	Kind       Kind        `json:"type"`
	City       board.City  `json:"city,omitempty"`
	Color      board.Color `json:"color,omitempty"`
	Name       string      `json:"name,omitempty"`
	CrisisKind CrisisKind  `json:"kind,omitempty"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	rec := cardRecord{Kind: c.Kind, City: c.City, Color: c.Color}
	switch c.Kind {
	case KindEvent:
		rec.Name = c.Event.String()
	case KindCrisis:
		rec.Name = c.Crisis.String()
		rec.CrisisKind = c.Crisis.Kind()
	}
	return json.Marshal(rec)
}

// UnmarshalJSON reads the name of an event or crisis card by its type. The
// saved kind of a crisis is ignored; it follows from the name.
func (c *Card) UnmarshalJSON(data []byte) error {
	var rec cardRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	card := Card{Kind: rec.Kind, City: rec.City, Color: rec.Color}
	var err error
	switch {
	case rec.Name == "":
	case rec.Kind == KindCrisis:
		card.Crisis, err = ParseCrisis(rec.Name)
	case rec.Kind == KindEvent:
		card.Event, err = ParseEvent(rec.Name)
	}
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// City creates a player city card.
func City(city board.City, color board.Color) Card {
	return Card{Kind: KindCity, City: city, Color: color}
}

// EventCard creates an event card.
func EventCard(e Event) Card {
	return Card{Kind: KindEvent, Event: e}
}

// Epidemic creates an epidemic card.
func Epidemic() Card {
	return Card{Kind: KindEpidemic}
}

// CrisisCard creates a crisis card.
func CrisisCard(c Crisis) Card {
	return Card{Kind: KindCrisis, Crisis: c}
}

// Infection creates an infection card for a city.
func Infection(city board.City) Card {
	return Card{Kind: KindInfection, City: city}
}

// IsCity reports whether c is the city card for city.
func (c Card) IsCity(city board.City) bool {
	return c.Kind == KindCity && c.City == city
}

// IsEvent reports whether c is the given event card.
func (c Card) IsEvent(e Event) bool {
	return c.Kind == KindEvent && c.Event == e
}

// Describe renders the card for log lines.
func (c Card) Describe() string {
	switch c.Kind {
	case KindCity:
		return fmt.Sprintf("%s (%s)", c.City, c.Color)
	case KindEvent:
		return fmt.Sprintf("%s [Event]", c.Event)
	case KindEpidemic:
		return "Epidemic"
	case KindCrisis:
		return fmt.Sprintf("%s [Crisis]", c.Crisis)
	case KindInfection:
		return fmt.Sprintf("%s [Infection]", c.City)
	default:
		return "<?>"
	}
}

func (c Card) String() string {
	return c.Describe()
}
