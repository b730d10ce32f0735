package game

import (
	"github.com/hotzone/hotzone-server-go/internal/game/cards"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// crisisHandlers maps every crisis to its resolver.
var crisisHandlers = map[cards.Crisis]func(*Game){
	cards.LogisticsFailure:   (*Game).logisticsFailure,
	cards.PlanesGrounded:     (*Game).planesGrounded,
	cards.LimitedOptions:     (*Game).limitedOptions,
	cards.HotSpot:            (*Game).hotSpot,
	cards.Contamination:      (*Game).contamination,
	cards.UnacceptableLosses: (*Game).unacceptableLosses,
}

// ResolveCrisis applies a crisis card's effect.
func (g *Game) ResolveCrisis(c cards.Crisis) {
	if g.state.Ended {
		return
	}
	handler, ok := crisisHandlers[c]
	if !ok {
		g.refuse("unknown crisis %q", c)
		return
	}
	g.logf("CRISIS: %s", c)
	g.logger.Info("crisis",
		zap.String("game_id", g.state.GameID),
		zap.Stringer("crisis", c),
		zap.String("kind", string(c.Kind())),
	)
	g.publish(rules.Event{Type: rules.EventCrisis, Player: -1, Data: c.String()})
	handler(g)
}

// clearOngoing ends the crisis currently in play, if any.
func (g *Game) clearOngoing() {
	prev := g.state.CrisisInPlay
	if prev == cards.CrisisNone {
		return
	}
	g.state.CrisisInPlay = cards.CrisisNone
	g.logf("Crisis ends: %s", prev)
	g.publish(rules.Event{Type: rules.EventCrisisEnded, Player: -1, Data: prev.String()})
}

func (g *Game) logisticsFailure() {
	g.state.DoubleInfect = true
	g.logf("Logistics Failure: infection step will happen twice at end of this turn.")
}

func (g *Game) planesGrounded() {
	g.clearOngoing()
	g.state.CrisisInPlay = cards.PlanesGrounded
	g.logf("Planes Grounded (ongoing): flights disabled until next Crisis.")
}

func (g *Game) limitedOptions() {
	g.clearOngoing()
	g.state.CrisisInPlay = cards.LimitedOptions
	g.logf("Limited Options (ongoing): hand limit becomes %d until next Crisis.", LimitedHandLimit)
	for i := range g.state.Players {
		g.enforceHandLimit(i, "Limited Options")
	}
}

func (g *Game) hotSpot() {
	c, ok := g.drawInfectionBottom(true)
	if !ok {
		return
	}
	color := g.homeColor(c.City)
	g.logf("Hot Spot: %s (place 3 %s)", c.City, color)
	g.placeCubes(c.City, color, 3, cascade{})
}

func (g *Game) contamination() {
	city := g.current().Location
	color := g.homeColor(city)
	g.logf("Contamination: infect all neighbors of %s (%s).", city, color)
	for _, nb := range g.graph.Neighbors(city) {
		g.placeCubes(nb, color, 1, cascade{})
		if g.state.Ended {
			return
		}
	}
}

func (g *Game) unacceptableLosses() {
	c, ok := g.drawInfectionBottom(false)
	if !ok {
		return
	}
	color := g.homeColor(c.City)
	g.logf("Unacceptable Losses: remove 3 %s cubes from %s (or supply) from the game.", color, c.City)
	g.destroyCubes(c.City, color, 3)
}
