package scene

import (
	"fmt"
	"sort"

	"github.com/dshills/svgraph/pkg/graph"
)

// findOrder topologically sorts nodes by their "below" relations
// restricted to the node set itself (cross-level constraints are a
// known limitation, per spec.md §4.6 step 2). Ties are broken by
// ascending node ID so the order is deterministic for a given graph.
// Grounded on original_source/svgrammar/render.py's find_order, with
// networkx's topological_sort replaced by an explicit Kahn's algorithm.
func findOrder(g *graph.Graph, nodes []string) ([]string, error) {
	set := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		set[n] = true
	}

	indegree := make(map[string]int, len(nodes))
	successors := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		indegree[n] = 0
	}
	for _, n := range nodes {
		for _, e := range g.OutEdges(n) {
			if e.Tag == nil || *e.Tag != graph.TagBelow {
				continue
			}
			if !set[e.To] {
				continue
			}
			successors[n] = append(successors[n], e.To)
			indegree[e.To]++
		}
	}

	var ready []string
	for _, n := range nodes {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)

		next := append([]string{}, successors[n]...)
		sort.Strings(next)
		for _, s := range next {
			indegree[s]--
			if indegree[s] == 0 {
				ready = insertSorted(ready, s)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, fmt.Errorf("%w: cycle in 'below' ordering among %v", graph.ErrMalformedGraph, nodes)
	}
	return order, nil
}

func insertSorted(xs []string, v string) []string {
	i := sort.SearchStrings(xs, v)
	xs = append(xs, "")
	copy(xs[i+1:], xs[i:])
	xs[i] = v
	return xs
}
