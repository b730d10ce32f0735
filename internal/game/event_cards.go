package game

import (
	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"github.com/hotzone/hotzone-server-go/internal/game/cards"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
)

// CubePick names one cube on the board for Remote Treatment.
type CubePick struct {
	City  string `json:"city"`
	Color string `json:"color"`
}

// EventArgs carries the choices an event card needs. Fields an event does
// not use are ignored.
type EventArgs struct {
	// Pawn is the player index Airlift moves.
	Pawn int `json:"pawn"`
	// City is the Airlift destination.
	City string `json:"city"`
	// Picks are the cubes Remote Treatment returns, one or two of them.
	Picks []CubePick `json:"picks"`
}

// MaxRemotePicks is the number of cubes Remote Treatment may return.
const MaxRemotePicks = 2

type eventHandler struct {
	validate func(*Game, EventArgs) bool
	apply    func(*Game, EventArgs)
}

var eventHandlers = map[cards.Event]eventHandler{
	cards.BorrowedTime:    {apply: (*Game).borrowedTime},
	cards.OneQuietNight:   {apply: (*Game).oneQuietNight},
	cards.Airlift:         {validate: (*Game).validAirlift, apply: (*Game).airlift},
	cards.RemoteTreatment: {validate: (*Game).validRemoteTreatment, apply: (*Game).remoteTreatment},
}

// PlayEvent plays an event card from the current player's hand. The card is
// checked and its arguments validated before it is discarded. Playing an
// event costs no action.
func (g *Game) PlayEvent(name string, args EventArgs) {
	if !g.live() {
		return
	}
	e, err := cards.ParseEvent(name)
	if err != nil {
		g.refuse("Unknown event: %s", name)
		return
	}
	h := eventHandlers[e]

	cur := g.state.CurrentPlayerIndex()
	idx := g.current().findEvent(e)
	if idx < 0 {
		g.refuse("You don't have %s in hand.", e)
		return
	}
	if h.validate != nil && !h.validate(g, args) {
		return
	}
	g.discardFromHand(cur, idx)
	g.publish(rules.Event{Type: rules.EventEventPlayed, Player: cur, Data: e.String()})
	h.apply(g, args)
}

func (g *Game) borrowedTime(EventArgs) {
	g.state.ActionsLeft += 2
	g.logf("Event: Borrowed Time (+2 actions this turn).")
}

func (g *Game) oneQuietNight(EventArgs) {
	g.state.OneQuietNight = true
	g.logf("Event: One Quiet Night (skip infection step this turn).")
}

func (g *Game) validAirlift(args EventArgs) bool {
	if _, ok := g.player(args.Pawn); !ok {
		g.refuse("Invalid pawn.")
		return false
	}
	if !g.graph.Has(board.City(args.City)) {
		g.refuse("Airlift needs a destination city, got %q.", args.City)
		return false
	}
	return true
}

func (g *Game) airlift(args EventArgs) {
	to := board.City(args.City)
	g.logf("Event: Airlift moved %s to %s.", g.state.Players[args.Pawn].Name, to)
	g.movePawn(args.Pawn, to)
}

func (g *Game) validRemoteTreatment(args EventArgs) bool {
	if n := len(args.Picks); n < 1 || n > MaxRemotePicks {
		g.refuse("Remote Treatment needs 1 or %d cube picks, got %d.", MaxRemotePicks, n)
		return false
	}
	return true
}

func (g *Game) remoteTreatment(args EventArgs) {
	removed := 0
	for _, pick := range args.Picks {
		city, color := board.City(pick.City), board.Color(pick.Color)
		if !g.graph.Has(city) || !color.Valid() {
			g.logf("Remote Treatment: skipped invalid pick %s/%s.", pick.City, pick.Color)
			continue
		}
		if g.returnCubes(city, color, 1) == 0 {
			g.logf("Remote Treatment: no %s cube in %s.", color, city)
			continue
		}
		removed++
		g.logf("Event: Remote Treatment removed 1 %s cube from %s.", color, city)
	}
	g.logf("Remote Treatment: removed %d/%d cubes.", removed, len(args.Picks))
}
