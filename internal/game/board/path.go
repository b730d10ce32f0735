package board

// ShortestPath runs a breadth-first search from one city to another.
// The returned path includes both endpoints. Equal-length paths are resolved
// by authored neighbor order, so the result is deterministic.
func (g *Graph) ShortestPath(from, to City) ([]City, bool) {
	if !g.Has(from) || !g.Has(to) {
		return nil, false
	}
	if from == to {
		return []City{from}, true
	}

	prev := make(map[City]City, len(g.order))
	seen := map[City]bool{from: true}
	queue := []City{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range g.adj[cur] {
			if seen[nb] {
				continue
			}
			seen[nb] = true
			prev[nb] = cur
			if nb == to {
				return unwind(prev, from, to), true
			}
			queue = append(queue, nb)
		}
	}
	return nil, false
}

func unwind(prev map[City]City, from, to City) []City {
	path := []City{to}
	for cur := to; cur != from; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
