package cards

import (
	"math/rand/v2"

	"github.com/hotzone/hotzone-server-go/internal/game/board"
)

// Piles is the number of piles the player deck is split into, one epidemic each.
const Piles = 3

// CityCards returns one player card per city on the board, in authored order.
func CityCards(g *board.Graph) []Card {
	out := make([]Card, 0, g.Len())
	for _, city := range g.Cities() {
		color, _ := g.HomeColor(city)
		out = append(out, City(city, color))
	}
	return out
}

// EventCards returns one card per event.
func EventCards() []Card {
	out := make([]Card, 0, len(Events))
	for _, e := range Events {
		out = append(out, EventCard(e))
	}
	return out
}

// CrisisCards returns one card per crisis.
func CrisisCards() []Card {
	out := make([]Card, 0, len(Crises))
	for _, c := range Crises {
		out = append(out, CrisisCard(c))
	}
	return out
}

// InfectionDeck returns a shuffled infection deck with one card per city.
func InfectionDeck(g *board.Graph, rng *rand.Rand) Deck {
	d := make(Deck, 0, g.Len())
	for _, city := range g.Cities() {
		d = append(d, Infection(city))
	}
	d.Shuffle(rng)
	return d
}

// BuildPlayerDeck assembles the player deck from the remaining city and event
// cards. The cards are dealt round-robin into three piles, each pile gets one
// epidemic and perPile crises drawn from crisisPool, each pile is shuffled on
// its own, and the piles are stacked so pile one is drawn first. Every third of
// the deck therefore holds exactly one epidemic.
//
// crisisPool is consumed from its top; if it runs dry fewer crises are added.
func BuildPlayerDeck(base Deck, crisisPool *Deck, perPile int, rng *rand.Rand) Deck {
	var piles [Piles]Deck
	for base.Len() > 0 {
		for i := 0; i < Piles && base.Len() > 0; i++ {
			c, _ := base.DrawTop()
			piles[i].Push(c)
		}
	}

	for i := range piles {
		piles[i].Push(Epidemic())
		for k := 0; k < perPile; k++ {
			c, ok := crisisPool.DrawTop()
			if !ok {
				break
			}
			piles[i].Push(c)
		}
		piles[i].Shuffle(rng)
	}

	deck := make(Deck, 0, piles[0].Len()+piles[1].Len()+piles[2].Len())
	for i := Piles - 1; i >= 0; i-- {
		deck = append(deck, piles[i]...)
	}
	return deck
}
