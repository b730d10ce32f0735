package game

import (
	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
)

// movePawn relocates a player and runs the Medic passive for them.
func (g *Game) movePawn(idx int, to board.City) {
	p := &g.state.Players[idx]
	from := p.Location
	p.Location = to
	g.publish(rules.Event{
		Type:   rules.EventPawnMoved,
		City:   string(to),
		Player: idx,
		Data:   string(from),
	})
	g.medicPassive(idx)
}

// medicPassive clears every cured color from a Medic's city for free.
func (g *Game) medicPassive(idx int) {
	p := &g.state.Players[idx]
	if p.Role != rules.RoleMedic {
		return
	}
	for _, color := range board.Colors {
		if !g.state.Cures[color] {
			continue
		}
		if n := g.returnCubes(p.Location, color, g.state.Cities[p.Location].Get(color)); n > 0 {
			g.logf("Medic passive: removed %d %s cubes in %s (cured disease).", n, color, p.Location)
		}
	}
}

// MedicCleanup lets a Medic current player clear cured colors from their
// city. It costs no action.
func (g *Game) MedicCleanup() {
	if !g.live() {
		return
	}
	if g.current().Role != rules.RoleMedic {
		g.refuse("Only Medic can do free cured cleanup.")
		return
	}
	g.medicPassive(g.state.CurrentPlayerIndex())
}

// EnforceHandLimit discards from the end of a player's hand until it fits
// the current limit.
func (g *Game) EnforceHandLimit(player int) {
	if _, ok := g.player(player); !ok {
		g.refuse("invalid player %d for hand limit", player)
		return
	}
	g.enforceHandLimit(player, "Hand limit exceeded")
}

func (g *Game) enforceHandLimit(idx int, cause string) {
	p := &g.state.Players[idx]
	limit := g.HandLimit()
	for len(p.Hand) > limit {
		c := p.removeCard(len(p.Hand) - 1)
		g.state.PlayerDiscard.Push(c)
		g.logf("%s: auto-discarded %s from %s.", cause, c.Describe(), p.Name)
		g.publish(rules.Event{Type: rules.EventCardDiscarded, Player: idx, Data: c.Describe()})
	}
}

// dispatcher returns the current player if they are a Dispatcher, plus the
// target pawn.
func (g *Game) dispatcher(target int) (*Player, bool) {
	if !g.live() {
		return nil, false
	}
	if g.current().Role != rules.RoleDispatcher {
		g.refuse("Only Dispatcher can Dispatch.")
		return nil, false
	}
	p, ok := g.player(target)
	if !ok {
		g.refuse("Invalid target pawn.")
		return nil, false
	}
	return p, true
}

// DispatchToPawn moves any pawn to a city that holds another pawn. The action
// comes out of the Dispatcher's allowance.
func (g *Game) DispatchToPawn(target int, city string) {
	p, ok := g.dispatcher(target)
	if !ok {
		return
	}
	dest := board.City(city)
	occupied := false
	for i, other := range g.state.Players {
		if i != target && other.Location == dest {
			occupied = true
			break
		}
	}
	if !occupied {
		g.refuse("Destination must be a city with a pawn.")
		return
	}
	if !g.spendAction() {
		return
	}
	g.logf("Dispatcher moved %s to %s (to a pawn city).", p.Name, dest)
	g.movePawn(target, dest)
}

// DispatchConnected moves any pawn to a city adjacent to that pawn's own
// city. The action comes out of the Dispatcher's allowance.
func (g *Game) DispatchConnected(target int, city string) {
	p, ok := g.dispatcher(target)
	if !ok {
		return
	}
	dest := board.City(city)
	if !g.graph.Adjacent(p.Location, dest) {
		g.refuse("%s is not connected to %s (Dispatcher uses target pawn's city).", dest, p.Location)
		return
	}
	if !g.spendAction() {
		return
	}
	g.logf("Dispatcher moved %s to %s (connected move).", p.Name, dest)
	g.movePawn(target, dest)
}
