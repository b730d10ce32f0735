package game

import (
	"strings"
	"testing"

	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"github.com/hotzone/hotzone-server-go/internal/game/cards"
	"github.com/hotzone/hotzone-server-go/internal/game/cubes"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// lineSink keeps every line the engine records.
type lineSink struct {
	lines []string
}

func (s *lineSink) Record(line string) {
	s.lines = append(s.lines, line)
}

func (s *lineSink) contains(substr string) bool {
	for _, l := range s.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func (s *lineSink) refusals() int {
	n := 0
	for _, l := range s.lines {
		if strings.HasPrefix(l, "Refused: ") {
			n++
		}
	}
	return n
}

// newTestGame creates a seeded coop2 game with the given roles.
func newTestGame(t *testing.T, roles ...rules.Role) (*Game, *lineSink) {
	t.Helper()
	sink := &lineSink{}
	g, err := New(Setup{
		Mode:       ModeCoop2,
		Difficulty: DifficultyStandard,
		Roles:      roles,
		Names:      []string{"Ana", "Ben"},
	}, Options{
		Rand:   SeededRand(7),
		Sink:   sink,
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return g, sink
}

// clearBoard empties every city and the infection piles and refills the
// supply, leaving a quiet board to build scenarios on.
func clearBoard(g *Game) {
	s := g.state
	for city := range s.Cities {
		s.Cities[city] = cubes.New()
	}
	s.Supply = cubes.Full(cubes.SupplyPerColor)
	s.RemovedFromGame = cubes.New()
	s.Outbreaks = 0
	s.InfectionDeck = cards.Deck{}
	s.InfectionDiscard = cards.Deck{}
}

// setCubes puts n cubes on a city and takes them from the supply.
func setCubes(g *Game, city board.City, color board.Color, n int) {
	have := g.state.Cities[city].Get(color)
	g.state.Cities[city][color] = n
	g.state.Supply.Adjust(color, have-n)
}

func setHand(g *Game, player int, hand ...cards.Card) {
	g.state.Players[player].Hand = append([]cards.Card{}, hand...)
}

func infectionDeck(cities ...board.City) cards.Deck {
	d := make(cards.Deck, len(cities))
	for i, c := range cities {
		d[i] = cards.Infection(c)
	}
	return d
}

func blueCard(city board.City) cards.Card {
	return cards.City(city, board.Blue)
}

// countEvents subscribes to the game and counts events of one type.
func countEvents(g *Game, et rules.EventType) *int {
	n := new(int)
	g.Subscribe(func(e rules.Event) {
		if e.Type == et {
			*n++
		}
	})
	return n
}

// requireConserved checks supply + board + removed == 16 for every color.
func requireConserved(t *testing.T, g *Game) {
	t.Helper()
	for _, c := range board.Colors {
		total := g.state.Supply.Get(c) + g.state.BoardCubes(c) + g.state.RemovedFromGame.Get(c)
		require.Equal(t, cubes.SupplyPerColor, total, "cubes of %s not conserved", c)
	}
}

// requireBounded checks every city holds 0..3 cubes of each color.
func requireBounded(t *testing.T, g *Game) {
	t.Helper()
	for city, set := range g.state.Cities {
		for _, c := range board.Colors {
			n := set.Get(c)
			require.True(t, n >= 0 && n <= cubes.MaxPerCity, "%s has %d %s cubes", city, n, c)
		}
	}
}
