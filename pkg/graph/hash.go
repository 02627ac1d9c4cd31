package graph

import (
	"crypto/sha256"
	"fmt"
	"sort"
)

// Hash returns a SHA-256 digest over a canonical encoding of the
// graph's structure (seed, every node's id/tag, every edge's
// from/to/tag), sorted by ID so the digest is independent of map
// iteration order. The placement seed is not derived from it: the
// scene assembler seeds its solvers from render.Config.Seed.
func (g *Graph) Hash() []byte {
	h := sha256.New()
	fmt.Fprintf(h, "seed:%d\n", g.Seed)

	nodeIDs := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)
	for _, id := range nodeIDs {
		n := g.Nodes[id]
		fmt.Fprintf(h, "node:%s:%s\n", id, n.TagOrEmpty())
	}

	edgeIDs := make([]string, 0, len(g.Edges))
	for id := range g.Edges {
		edgeIDs = append(edgeIDs, id)
	}
	sort.Strings(edgeIDs)
	for _, id := range edgeIDs {
		e := g.Edges[id]
		fmt.Fprintf(h, "edge:%s:%s:%s:%s\n", id, e.From, e.To, e.TagOrEmpty())
	}

	return h.Sum(nil)
}
