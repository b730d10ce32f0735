package game

import (
	"testing"

	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"github.com/hotzone/hotzone-server-go/internal/game/cards"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialInfections(t *testing.T) {
	g, sink := newTestGame(t)
	s := g.state

	assert.Equal(t, 6, s.InfectionDiscard.Len())
	assert.Equal(t, 24-6, s.InfectionDeck.Len())
	assert.Equal(t, 0, s.Outbreaks)

	// Discard order matches draw order: 3, 3, 2, 2, 1, 1.
	for i, want := range initialInfections {
		city := s.InfectionDiscard[i].City
		color, _ := g.graph.HomeColor(city)
		assert.Equal(t, want, s.Cities[city].Get(color), "setup infection %d in %s", i, city)
	}
	total := 0
	for _, c := range board.Colors {
		total += s.BoardCubes(c)
	}
	assert.Equal(t, 12, total)
	assert.True(t, sink.contains("=== Initial infections ==="))
	requireConserved(t, g)
}

func TestInfectStepPlacesHomeColor(t *testing.T) {
	g, sink := newTestGame(t)
	clearBoard(g)
	g.state.InfectionDeck = infectionDeck("Boston", "Miami", "Denver")

	g.InfectStep(2)

	assert.Equal(t, 1, g.state.Cities["Denver"].Get(board.Red))
	assert.Equal(t, 1, g.state.Cities["Miami"].Get(board.Yellow))
	assert.Equal(t, 0, g.state.Cities["Boston"].Get(board.Blue))
	assert.Equal(t, 1, g.state.InfectionDeck.Len())
	assert.Equal(t, infectionDeck("Denver", "Miami"), g.state.InfectionDiscard)
	assert.True(t, sink.contains("Infect: Denver (+1 red)"))
}

func TestInfectStepCascadesAreIndependent(t *testing.T) {
	g, _ := newTestGame(t)
	clearBoard(g)
	setCubes(g, "Denver", board.Red, 3)
	g.state.InfectionDeck = infectionDeck("Denver", "Denver")

	g.InfectStep(2)

	assert.Equal(t, 2, g.state.Outbreaks, "each draw is its own cascade")
	assert.Equal(t, 2, g.state.Cities["Seattle"].Get(board.Red))
	requireConserved(t, g)
}

func TestInfectStepEmptyPilesIsNoop(t *testing.T) {
	g, _ := newTestGame(t)
	clearBoard(g)
	before := g.State()

	g.InfectStep(4)

	assert.False(t, g.Ended())
	assert.Equal(t, before, g.State())
}

func TestInfectStepReshufflesDiscard(t *testing.T) {
	g, sink := newTestGame(t)
	clearBoard(g)
	g.state.InfectionDiscard = infectionDeck("Boston")
	reshuffled := countEvents(g, rules.EventInfectionReshuffle)

	g.InfectStep(1)

	assert.Equal(t, 1, g.state.Cities["Boston"].Get(board.Blue))
	assert.Equal(t, 0, g.state.InfectionDeck.Len())
	assert.Equal(t, infectionDeck("Boston"), g.state.InfectionDiscard)
	assert.Equal(t, 1, *reshuffled)
	assert.True(t, sink.contains("reshuffling discard"))
}

func TestEpidemicOnCleanCity(t *testing.T) {
	g, _ := newTestGame(t)
	clearBoard(g)
	g.state.InfectionDeck = infectionDeck("Miami", "Boston", "Denver")
	g.state.InfectionDiscard = infectionDeck("Chicago")
	outbreaks := countEvents(g, rules.EventOutbreak)

	g.Epidemic()

	assert.Equal(t, 1, g.state.InfectionRateIdx)
	assert.Equal(t, 3, g.state.Cities["Miami"].Get(board.Yellow))
	assert.Equal(t, 0, *outbreaks)
	assert.Equal(t, 0, g.state.InfectionDiscard.Len())

	// Intensify: the discard, including Miami, now sits on top of the deck.
	require.Equal(t, 4, g.state.InfectionDeck.Len())
	assert.Equal(t, infectionDeck("Boston", "Denver"), g.state.InfectionDeck[:2])
	assert.ElementsMatch(t, infectionDeck("Chicago", "Miami"), g.state.InfectionDeck.Peek(2))
	requireConserved(t, g)
}

func TestEpidemicOnInfectedCityOutbreaksOnce(t *testing.T) {
	for _, start := range []int{1, 2, 3} {
		g, _ := newTestGame(t)
		clearBoard(g)
		setCubes(g, "Miami", board.Yellow, start)
		g.state.InfectionDeck = infectionDeck("Miami", "Boston")
		outbreaks := countEvents(g, rules.EventOutbreak)

		g.Epidemic()

		assert.Equal(t, 1, *outbreaks, "starting from %d cubes", start)
		assert.Equal(t, 3, g.state.Cities["Miami"].Get(board.Yellow))
		for _, nb := range g.graph.Neighbors("Miami") {
			assert.Equal(t, 1, g.state.Cities[nb].Get(board.Yellow), "neighbor %s", nb)
		}
		requireConserved(t, g)
	}
}

func TestEpidemicRateSaturates(t *testing.T) {
	g, _ := newTestGame(t)
	clearBoard(g)
	g.state.InfectionRateIdx = len(rules.InfectionRateTrack) - 1
	g.state.InfectionDeck = infectionDeck("Boston")

	g.Epidemic()

	assert.Equal(t, len(rules.InfectionRateTrack)-1, g.state.InfectionRateIdx)
	assert.Equal(t, 4, rules.InfectionRate(g.state.InfectionRateIdx))
}

func TestEpidemicWithNoInfectionCards(t *testing.T) {
	g, _ := newTestGame(t)
	clearBoard(g)

	g.Epidemic()

	assert.Equal(t, 1, g.state.InfectionRateIdx)
	assert.False(t, g.Ended())
	assert.Equal(t, cards.Deck{}, g.state.InfectionDeck)
}
