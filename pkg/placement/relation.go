package placement

import "github.com/dshills/svgraph/pkg/graph"

// Relation is one placement constraint between two movable/fixed
// elements: e1 is related to e2 per Kind (e.g. "e1 is adjacent-left of
// e2"). e1 is always treated as movable, e2 as fixed relative to it,
// mirroring placement.py's Solver.add_edge convention.
type Relation struct {
	E1   string
	Kind string
	E2   string
}

// RelationsFromEdges scans a node's out-edges for placement-relation
// tags (graph.IsPlacementRelation) and returns one Relation per match,
// in edge insertion order (matters for reproducibility: annealing's
// random draws are seeded, but relation iteration order affects which
// float-summation rounding occurs first).
func RelationsFromEdges(g *graph.Graph, nodeIDs []string) []Relation {
	var rels []Relation
	for _, id := range nodeIDs {
		for _, e := range g.OutEdges(id) {
			if e.Tag == nil || !graph.IsPlacementRelation(*e.Tag) {
				continue
			}
			rels = append(rels, Relation{E1: e.From, Kind: *e.Tag, E2: e.To})
		}
	}
	return rels
}
