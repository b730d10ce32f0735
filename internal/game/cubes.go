package game

import (
	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"github.com/hotzone/hotzone-server-go/internal/game/cubes"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// outbreakKey identifies one disease in one city.
type outbreakKey struct {
	city  board.City
	color board.Color
}

// cascade is the dedupe scope of one triggering event. Each (city, color)
// outbreaks at most once per cascade.
type cascade map[outbreakKey]bool

// PlaceCubes adds count cubes of color to city as a single cascade.
// A cube that would be the fourth of its color causes an outbreak instead.
func (g *Game) PlaceCubes(city board.City, color board.Color, count int) {
	if g.state.Ended {
		return
	}
	if !g.graph.Has(city) || !color.Valid() {
		g.refuse("cannot place %s cubes in %q", color, city)
		return
	}
	g.placeCubes(city, color, count, cascade{})
}

func (g *Game) placeCubes(city board.City, color board.Color, count int, seen cascade) {
	for i := 0; i < count && !g.state.Ended; i++ {
		g.spread([]board.City{city}, color, seen)
	}
}

// spread works through a stack of pending single-cube placements. An
// outbreak pushes the city's neighbors so the first authored neighbor is
// handled first, matching a depth-first recursive walk.
func (g *Game) spread(stack []board.City, color board.Color, seen cascade) {
	for len(stack) > 0 && !g.state.Ended {
		city := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		set := g.state.Cities[city]
		if set.Get(color) >= cubes.MaxPerCity {
			if g.outbreak(city, color, seen) {
				stack = pushNeighbors(stack, g.graph.Neighbors(city))
			}
			continue
		}

		g.adjustSupply(color, -1)
		set.Add(color, 1)
		if set.Get(color) > cubes.MaxPerCity {
			set[color] = cubes.MaxPerCity
		}
		g.publish(rules.NewCityEvent(rules.EventCubePlaced, string(city), string(color), set.Get(color)))
	}
}

func pushNeighbors(stack, neighbors []board.City) []board.City {
	for i := len(neighbors) - 1; i >= 0; i-- {
		stack = append(stack, neighbors[i])
	}
	return stack
}

// outbreak advances the outbreak marker for (city, color) unless it already
// broke out in this cascade. It reports whether the spread to neighbors
// should go ahead.
func (g *Game) outbreak(city board.City, color board.Color, seen cascade) bool {
	key := outbreakKey{city: city, color: color}
	if seen[key] {
		return false
	}
	seen[key] = true

	g.state.Outbreaks++
	g.logf("OUTBREAK in %s (%s). Outbreaks: %d/%d", city, color, g.state.Outbreaks, MaxOutbreaks)
	g.logger.Info("outbreak",
		zap.String("game_id", g.state.GameID),
		zap.String("city", string(city)),
		zap.String("color", string(color)),
		zap.Int("outbreaks", g.state.Outbreaks),
	)
	g.publish(rules.NewCityEvent(rules.EventOutbreak, string(city), string(color), g.state.Outbreaks))

	if g.state.Outbreaks >= MaxOutbreaks {
		g.endGame("Outbreak marker reached the last space (3).", false)
		return false
	}
	return true
}

// forceOutbreak starts a fresh cascade with an outbreak in city.
func (g *Game) forceOutbreak(city board.City, color board.Color) {
	seen := cascade{}
	if g.outbreak(city, color, seen) {
		g.spread(pushNeighbors(nil, g.graph.Neighbors(city)), color, seen)
	}
}

// adjustSupply moves cubes between the supply and the board. Taking a cube
// that is not there ends the game.
func (g *Game) adjustSupply(color board.Color, delta int) {
	left := g.state.Supply.Adjust(color, delta)
	if left < 0 {
		g.publish(rules.NewCityEvent(rules.EventSupplyExhausted, "", string(color), left))
		g.endGame("No "+string(color)+" cubes left in supply (needed to place one).", false)
	}
}

// returnCubes takes up to n cubes of color off city and puts them back in
// the supply. It returns how many were removed.
func (g *Game) returnCubes(city board.City, color board.Color, n int) int {
	removed := g.state.Cities[city].Remove(color, n)
	if removed > 0 {
		g.adjustSupply(color, removed)
		g.publish(rules.NewCityEvent(rules.EventCubesRemoved, string(city), string(color), removed))
	}
	return removed
}

// destroyCubes removes n cubes of color from the game: from city while it has
// any, then straight from the supply, which may exhaust it.
func (g *Game) destroyCubes(city board.City, color board.Color, n int) {
	for i := 0; i < n; i++ {
		if g.state.Cities[city].Remove(color, 1) == 0 {
			g.adjustSupply(color, -1)
		}
		g.state.RemovedFromGame.Add(color, 1)
		g.publish(rules.NewCityEvent(rules.EventCubesDestroyed, string(city), string(color), 1))
		if g.state.Ended {
			return
		}
	}
}
