package game

import (
	"github.com/hotzone/hotzone-server-go/internal/game/cards"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// CardsPerTurn is the number of player cards drawn at the end of each turn.
const CardsPerTurn = 2

// EndActions closes the action phase and runs the rest of the turn: draw two
// player cards, infect at the current rate, then hand over to the next
// player. A fatal condition on the way leaves the game over.
func (g *Game) EndActions() {
	if !g.live() {
		return
	}
	s := g.state

	g.setPhase(rules.PhaseDraw)
	g.drawPlayerCards(CardsPerTurn)
	if s.Ended {
		return
	}

	g.setPhase(rules.PhaseInfect)
	rate := rules.InfectionRate(s.InfectionRateIdx)
	if s.OneQuietNight {
		g.logf("One Quiet Night: skipping infection step this turn.")
		s.OneQuietNight = false
	} else {
		g.InfectStep(rate)
	}
	if s.Ended {
		return
	}
	if s.DoubleInfect {
		g.logf("Logistics Failure: resolving infection step a second time.")
		g.InfectStep(rate)
		s.DoubleInfect = false
		if s.Ended {
			return
		}
	}

	prev := s.CurrentPlayerIndex()
	s.Turn++
	next := g.current()
	s.ActionsLeft = next.Role.BaseActions()
	g.publish(rules.Event{Type: rules.EventTurnEnded, Player: prev, Amount: s.Turn})
	g.watchers.ResetWatchersByScope(rules.WatcherScopeTurn)
	g.setPhase(rules.PhaseActions)
	g.logf("Turn passes to %s.", next.Name)
	g.logger.Debug("turn advanced",
		zap.String("game_id", s.GameID),
		zap.Int("turn", s.Turn),
		zap.String("player", next.Name),
	)
}

// drawPlayerCards draws n cards for the current player. Epidemics and crises
// resolve immediately and go to the discard; other cards join the hand.
func (g *Game) drawPlayerCards(n int) {
	s := g.state
	idx := s.CurrentPlayerIndex()
	p := g.current()
	for i := 0; i < n && !s.Ended; i++ {
		c, ok := s.PlayerDeck.DrawTop()
		if !ok {
			g.endGame("Tried to draw from Player deck but it was empty (time ran out).", false)
			return
		}
		g.publish(rules.Event{Type: rules.EventPlayerCardDrawn, Player: idx, Data: c.Describe()})

		switch c.Kind {
		case cards.KindEpidemic:
			s.PlayerDiscard.Push(c)
			g.Epidemic()
		case cards.KindCrisis:
			s.PlayerDiscard.Push(c)
			g.ResolveCrisis(c.Crisis)
		case cards.KindEvent:
			p.Hand = append(p.Hand, c)
			g.logf("Drew Event: %s", c.Event)
			g.enforceHandLimit(idx, "Hand limit exceeded")
		case cards.KindCity:
			p.Hand = append(p.Hand, c)
			g.logf("Drew City: %s (%s)", c.City, c.Color)
			g.enforceHandLimit(idx, "Hand limit exceeded")
		default:
			g.logger.Warn("unexpected card in player deck",
				zap.String("game_id", s.GameID),
				zap.String("kind", string(c.Kind)),
			)
		}
	}
}
