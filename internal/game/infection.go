package game

import (
	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"github.com/hotzone/hotzone-server-go/internal/game/cards"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// initialInfections is the cube count for each infection card drawn at setup.
var initialInfections = []int{3, 3, 2, 2, 1, 1}

// refillInfectionDeck turns the shuffled discard into the deck when the deck
// is empty. It reports whether there is anything to draw.
func (g *Game) refillInfectionDeck() bool {
	s := g.state
	if s.InfectionDeck.Len() > 0 {
		return true
	}
	if s.InfectionDiscard.Len() == 0 {
		return false
	}
	g.logf("Infection deck empty: reshuffling discard into a new deck.")
	deck := cards.NewDeck(s.InfectionDiscard.TakeAll()...)
	deck.Shuffle(g.rng)
	s.InfectionDeck = deck
	g.publish(rules.Event{Type: rules.EventInfectionReshuffle, Player: -1, Amount: deck.Len()})
	return true
}

// drawInfection takes the top infection card and discards it.
func (g *Game) drawInfection() (cards.Card, bool) {
	if !g.refillInfectionDeck() {
		return cards.Card{}, false
	}
	c, _ := g.state.InfectionDeck.DrawTop()
	g.state.InfectionDiscard.Push(c)
	g.publish(rules.NewCityEvent(rules.EventInfectionDrawn, string(c.City), "", 1))
	return c, true
}

// drawInfectionBottom takes the bottom infection card. Epidemics and Hot Spot
// discard it; Unacceptable Losses keeps it out of the infection cycle.
func (g *Game) drawInfectionBottom(discard bool) (cards.Card, bool) {
	if !g.refillInfectionDeck() {
		return cards.Card{}, false
	}
	c, _ := g.state.InfectionDeck.DrawBottom()
	if discard {
		g.state.InfectionDiscard.Push(c)
	}
	g.publish(rules.NewCityEvent(rules.EventInfectionDrawn, string(c.City), "", 1))
	return c, true
}

func (g *Game) homeColor(city board.City) board.Color {
	c, _ := g.graph.HomeColor(city)
	return c
}

// InfectStep draws times infection cards and places one cube on each city
// drawn. Each draw is its own cascade. It stops early when the game ends or
// both infection piles are empty.
func (g *Game) InfectStep(times int) {
	if g.state.Ended {
		return
	}
	for t := 0; t < times; t++ {
		c, ok := g.drawInfection()
		if !ok {
			return
		}
		color := g.homeColor(c.City)
		g.logf("Infect: %s (+1 %s)", c.City, color)
		g.placeCubes(c.City, color, 1, cascade{})
		if g.state.Ended {
			return
		}
	}
}

// Epidemic resolves an epidemic card: increase, infect, intensify.
func (g *Game) Epidemic() {
	s := g.state
	if s.Ended {
		return
	}
	g.logf("EPIDEMIC!")

	s.InfectionRateIdx = rules.AdvanceInfectionRate(s.InfectionRateIdx)
	rate := rules.InfectionRate(s.InfectionRateIdx)
	g.logf("Infection rate -> %d", rate)
	g.publish(rules.Event{Type: rules.EventEpidemic, Player: -1, Amount: rate})

	c, ok := g.drawInfectionBottom(true)
	if !ok {
		return
	}
	city := c.City
	color := g.homeColor(city)
	g.logf("Epidemic infect: %s (place 3 %s)", city, color)
	g.logger.Info("epidemic",
		zap.String("game_id", s.GameID),
		zap.String("city", string(city)),
		zap.Int("infection_rate", rate),
	)

	set := s.Cities[city]
	if set.Get(color) >= 1 {
		for set.Get(color) < 3 && !s.Ended {
			g.placeCubes(city, color, 1, cascade{})
		}
		if s.Ended {
			return
		}
		g.forceOutbreak(city, color)
	} else {
		g.placeCubes(city, color, 3, cascade{})
	}
	if s.Ended {
		return
	}

	g.intensify()
}

// intensify shuffles the infection discard and stacks it on top of the deck.
func (g *Game) intensify() {
	pile := cards.NewDeck(g.state.InfectionDiscard.TakeAll()...)
	pile.Shuffle(g.rng)
	g.state.InfectionDeck.PlaceOnTop(pile...)
	g.logf("Intensify: shuffled %d infection cards onto the top of the deck.", pile.Len())
	g.publish(rules.Event{Type: rules.EventIntensify, Player: -1, Amount: pile.Len()})
}

// infectInitial seeds the board at setup.
func (g *Game) infectInitial() {
	g.logf("=== Initial infections ===")
	for _, n := range initialInfections {
		c, ok := g.drawInfection()
		if !ok {
			break
		}
		color := g.homeColor(c.City)
		g.logf("Setup infect: %s (+%d %s)", c.City, n, color)
		g.placeCubes(c.City, color, n, cascade{})
		if g.state.Ended {
			return
		}
	}
	g.logf("==========================")
}
