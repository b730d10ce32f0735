package board

import (
	"errors"
	"fmt"
)

// Color identifies one of the three diseases.
type Color string

const (
	Blue   Color = "blue"
	Red    Color = "red"
	Yellow Color = "yellow"
)

// Colors lists every disease color in enumeration order.
// Tie-breaks across the engine follow this order.
var Colors = []Color{Blue, Red, Yellow}

// Valid reports whether c is one of the known colors.
func (c Color) Valid() bool {
	switch c {
	case Blue, Red, Yellow:
		return true
	default:
		return false
	}
}

func (c Color) String() string {
	return string(c)
}

// ParseColor converts a color name to a Color.
func ParseColor(name string) (Color, error) {
	c := Color(name)
	if !c.Valid() {
		return "", fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

// City is a city name as printed on the board.
type City string

// Hub is the city every pawn starts in and the only place cures can be discovered.
const Hub City = "Atlanta"

// CityDef describes a single authored city.
type CityDef struct {
	Name      City
	Color     Color
	Neighbors []City
}

var (
	// ErrAsymmetricEdge is returned when an edge is listed from only one endpoint.
	ErrAsymmetricEdge = errors.New("adjacency is not symmetric")
	// ErrDisconnected is returned when some city cannot be reached from the first one.
	ErrDisconnected = errors.New("city graph is not connected")
)

// Graph is the static board: cities, home colors and adjacency.
// It is never mutated after NewGraph returns.
type Graph struct {
	order []City
	color map[City]Color
	adj   map[City][]City
}

// NewGraph builds and validates a graph from authored city definitions.
func NewGraph(defs []CityDef) (*Graph, error) {
	g := &Graph{
		order: make([]City, 0, len(defs)),
		color: make(map[City]Color, len(defs)),
		adj:   make(map[City][]City, len(defs)),
	}

	for _, def := range defs {
		if _, dup := g.color[def.Name]; dup {
			return nil, fmt.Errorf("duplicate city %q", def.Name)
		}
		if !def.Color.Valid() {
			return nil, fmt.Errorf("city %q: invalid color %q", def.Name, def.Color)
		}
		g.order = append(g.order, def.Name)
		g.color[def.Name] = def.Color
		g.adj[def.Name] = append([]City(nil), def.Neighbors...)
	}

	for _, city := range g.order {
		for _, nb := range g.adj[city] {
			if _, ok := g.color[nb]; !ok {
				return nil, fmt.Errorf("city %q: unknown neighbor %q", city, nb)
			}
			if !g.Adjacent(nb, city) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrAsymmetricEdge, city, nb)
			}
		}
	}

	if len(g.order) > 0 {
		seen := g.reachable(g.order[0])
		if len(seen) != len(g.order) {
			return nil, fmt.Errorf("%w: %d of %d cities reachable from %s",
				ErrDisconnected, len(seen), len(g.order), g.order[0])
		}
	}

	return g, nil
}

// Cities returns every city in authored order.
func (g *Graph) Cities() []City {
	return append([]City(nil), g.order...)
}

// Len returns the number of cities on the board.
func (g *Graph) Len() int {
	return len(g.order)
}

// Has reports whether the city exists on the board.
func (g *Graph) Has(city City) bool {
	_, ok := g.color[city]
	return ok
}

// HomeColor returns the color printed on the city.
func (g *Graph) HomeColor(city City) (Color, bool) {
	c, ok := g.color[city]
	return c, ok
}

// Neighbors returns the cities connected to city in authored order.
func (g *Graph) Neighbors(city City) []City {
	return append([]City(nil), g.adj[city]...)
}

// Adjacent reports whether b is directly connected to a.
func (g *Graph) Adjacent(a, b City) bool {
	for _, nb := range g.adj[a] {
		if nb == b {
			return true
		}
	}
	return false
}

func (g *Graph) reachable(start City) map[City]bool {
	seen := map[City]bool{start: true}
	queue := []City{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.adj[cur] {
			if !seen[nb] {
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return seen
}
