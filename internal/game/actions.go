package game

import (
	"strings"

	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"github.com/hotzone/hotzone-server-go/internal/game/cards"
	"github.com/hotzone/hotzone-server-go/internal/game/cubes"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// inActions refuses the call unless the game is live and in the action phase.
func (g *Game) inActions() bool {
	if !g.live() {
		return false
	}
	if g.state.Phase != rules.PhaseActions {
		g.refuse("You can only act during the Actions phase (now %s).", g.state.Phase)
		return false
	}
	return true
}

// Drive moves the current player to an adjacent city.
func (g *Game) Drive(city string) {
	if !g.inActions() {
		return
	}
	g.drive(board.City(city))
}

func (g *Game) drive(to board.City) bool {
	p := g.current()
	if !g.graph.Adjacent(p.Location, to) {
		g.refuse("Not connected: %s -> %s", p.Location, to)
		return false
	}
	if !g.spendAction() {
		return false
	}
	g.logf("%s drove to %s.", p.Name, to)
	g.movePawn(g.state.CurrentPlayerIndex(), to)
	return true
}

// AutoDrive walks the current player along the shortest path to city, one
// action per edge, until they arrive or run out of actions.
func (g *Game) AutoDrive(city string) {
	if !g.inActions() {
		return
	}
	p := g.current()
	to := board.City(city)
	path, ok := g.graph.ShortestPath(p.Location, to)
	if !ok {
		g.refuse("No path found from %s to %s.", p.Location, to)
		return
	}
	if len(path) == 1 {
		g.logf("Already in %s.", to)
		return
	}

	steps := path[1:]
	for i, step := range steps {
		if g.state.ActionsLeft <= 0 {
			g.logf("Ran out of actions. Stopped in %s. Remaining path: %s", p.Location, joinPath(steps[i:]))
			return
		}
		if !g.drive(step) || g.state.Ended {
			return
		}
	}
	g.logf("Auto-moved: %s", joinPath(path))
}

func joinPath(path []board.City) string {
	names := make([]string, len(path))
	for i, c := range path {
		names[i] = string(c)
	}
	return strings.Join(names, " → ")
}

func (g *Game) flightsAllowed() bool {
	if g.FlightsGrounded() {
		g.refuse("Planes Grounded: flights disabled.")
		return false
	}
	return true
}

// DirectFlight discards the destination's city card to fly there.
func (g *Game) DirectFlight(city string) {
	if !g.inActions() || !g.flightsAllowed() {
		return
	}
	to := board.City(city)
	p := g.current()
	idx := p.findCity(to)
	if idx < 0 {
		g.refuse("Need the %s card for Direct Flight.", to)
		return
	}
	if !g.spendAction() {
		return
	}
	g.discardFromHand(g.state.CurrentPlayerIndex(), idx)
	g.logf("%s Direct Flight to %s.", p.Name, to)
	g.movePawn(g.state.CurrentPlayerIndex(), to)
}

// CharterFlight discards the card of the current city to fly anywhere.
func (g *Game) CharterFlight(city string) {
	if !g.inActions() || !g.flightsAllowed() {
		return
	}
	to := board.City(city)
	if !g.graph.Has(to) {
		g.refuse("Unknown city: %s", city)
		return
	}
	p := g.current()
	idx := p.findCity(p.Location)
	if idx < 0 {
		g.refuse("Need the %s card for Charter Flight.", p.Location)
		return
	}
	if !g.spendAction() {
		return
	}
	g.discardFromHand(g.state.CurrentPlayerIndex(), idx)
	g.logf("%s Charter Flight to %s.", p.Name, to)
	g.movePawn(g.state.CurrentPlayerIndex(), to)
}

// Treat removes cubes of one color from the current player's city. An empty
// color picks the city's home color if present, else the most common color.
// A Medic, or any player treating a cured color, removes every cube of it.
func (g *Game) Treat(color string) {
	if !g.inActions() {
		return
	}
	p := g.current()
	city := p.Location
	set := g.state.Cities[city]
	if set.Total() == 0 {
		g.refuse("No cubes in %s to treat.", city)
		return
	}

	col := board.Color(color)
	if color == "" {
		col = pickTreatColor(set, g.homeColor(city))
	}
	if !col.Valid() {
		g.refuse("Invalid treat color: %s", color)
		return
	}
	if set.Get(col) <= 0 {
		g.refuse("No %s cubes in %s to treat.", col, city)
		return
	}
	if !g.spendAction() {
		return
	}

	medic := p.Role == rules.RoleMedic
	cured := g.state.Cures[col]
	n := 1
	if medic || cured {
		n = set.Get(col)
	}
	removed := g.returnCubes(city, col, n)

	switch {
	case medic:
		g.logf("Medic treated %s: removed ALL %d %s cubes.", city, removed, col)
	case cured:
		g.logf("Treated cured %s in %s: removed ALL %d cubes.", col, city, removed)
	default:
		g.logf("Treated %s: removed 1 %s cube.", city, col)
	}
}

func pickTreatColor(set cubes.Set, home board.Color) board.Color {
	if set.Get(home) > 0 {
		return home
	}
	best, _ := set.Most()
	return best
}

// ShareKnowledge passes a city card between two players standing in the
// current player's city. A non-Researcher giver must give the card of that
// city; a Researcher may give any city card.
func (g *Game) ShareKnowledge(from, to int, city string) {
	if !g.inActions() {
		return
	}
	cur := g.state.CurrentPlayerIndex()
	here := g.current().Location
	giver, ok1 := g.player(from)
	taker, ok2 := g.player(to)
	if !ok1 || !ok2 || from == to {
		g.refuse("Invalid player ids for Share Knowledge.")
		return
	}
	if from != cur && to != cur {
		g.refuse("The current player must give or receive when sharing knowledge.")
		return
	}
	if giver.Location != here || taker.Location != here {
		g.refuse("Both players must be in %s to Share Knowledge.", here)
		return
	}

	cardCity := board.City(city)
	if giver.Role != rules.RoleResearcher && cardCity != here {
		g.refuse("Non-Researcher shares must use the city card matching the city: %s.", here)
		return
	}
	idx := giver.findCity(cardCity)
	if idx < 0 {
		g.refuse("%s doesn't have the %s card.", giver.Name, cardCity)
		return
	}
	if !g.spendAction() {
		return
	}

	c := giver.removeCard(idx)
	taker.Hand = append(taker.Hand, c)
	g.logf("Share Knowledge: %s gave %s to %s.", giver.Name, c.Describe(), taker.Name)
	g.publish(rules.Event{Type: rules.EventCardGiven, City: string(cardCity), Player: to, Data: giver.Name})
	g.enforceHandLimit(to, "Hand limit exceeded")
}

// DiscoverCure spends four city cards of one uncured color at the hub to
// cure that color. The four earliest matching cards in hand are used.
func (g *Game) DiscoverCure() {
	if !g.inActions() {
		return
	}
	p := g.current()
	if p.Location != board.Hub {
		g.refuse("Must be in %s to Discover a Cure.", board.Hub)
		return
	}

	byColor := make(map[board.Color][]int, len(board.Colors))
	for i, c := range p.Hand {
		if c.Kind == cards.KindCity {
			byColor[c.Color] = append(byColor[c.Color], i)
		}
	}
	var color board.Color
	for _, c := range board.Colors {
		if !g.state.Cures[c] && len(byColor[c]) >= 4 {
			color = c
			break
		}
	}
	if color == "" {
		g.refuse("Need 4 City cards of an uncured color.")
		return
	}
	if !g.spendAction() {
		return
	}

	idxs := byColor[color][:4]
	for i := len(idxs) - 1; i >= 0; i-- {
		g.discardFromHand(g.state.CurrentPlayerIndex(), idxs[i])
	}
	g.state.Cures[color] = true
	g.logf("CURE DISCOVERED: %s", strings.ToUpper(string(color)))
	g.logger.Info("cure discovered",
		zap.String("game_id", g.state.GameID),
		zap.String("color", string(color)),
		zap.Int("cured", g.state.CuredCount()),
	)
	g.publish(rules.Event{Type: rules.EventCureFound, Color: string(color), Player: g.state.CurrentPlayerIndex()})
	g.medicPassive(g.state.CurrentPlayerIndex())
	g.checkWin()
}

// Discard moves a card from any player's hand to the player discard. It
// costs no action.
func (g *Game) Discard(player, cardIndex int) {
	if !g.live() {
		return
	}
	p, ok := g.player(player)
	if !ok {
		g.refuse("Invalid player for discard.")
		return
	}
	if cardIndex < 0 || cardIndex >= len(p.Hand) {
		g.refuse("Invalid card index for discard.")
		return
	}
	c := g.discardFromHand(player, cardIndex)
	g.logf("%s discarded %s.", p.Name, c.Describe())
}

func (g *Game) discardFromHand(player, idx int) cards.Card {
	c := g.state.Players[player].removeCard(idx)
	g.state.PlayerDiscard.Push(c)
	g.publish(rules.Event{Type: rules.EventCardDiscarded, Player: player, Data: c.Describe()})
	return c
}
