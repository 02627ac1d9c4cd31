package loader

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dshills/svgraph/pkg/graph"
)

// ListHeadsKey is the Graph.Metadata key LoadGraph stores the
// fixture's declared list-head attribute names under (e.g. "d_list"),
// so callers can wire them straight into render.Config.ListAttributes
// without re-parsing the fixture.
const ListHeadsKey = "listHeads"

// LoadGraph reads, parses and structurally validates the YAML graph
// document at path.
func LoadGraph(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	return LoadGraphFromBytes(data)
}

// LoadGraphFromBytes parses and structurally validates a YAML graph
// document from memory. Grounded on pkg/dungeon/config.go's
// unmarshal-then-validate LoadConfig/LoadConfigFromBytes pairing.
func LoadGraphFromBytes(data []byte) (*graph.Graph, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing graph YAML: %w", err)
	}

	g := graph.NewGraph(doc.Seed)

	nodeIDs := make([]string, 0, len(doc.Nodes))
	for id := range doc.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)
	for _, id := range nodeIDs {
		n := doc.Nodes[id]
		node := &graph.Node{ID: id}
		if n.Tag != "" {
			tag := n.Tag
			node.Tag = &tag
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("adding node %q: %w", id, err)
		}
	}

	for i, e := range doc.Edges {
		edge := &graph.Edge{ID: fmt.Sprintf("e%d", i), From: e.From, To: e.To}
		if e.Tag != "" {
			tag := e.Tag
			edge.Tag = &tag
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, fmt.Errorf("adding edge %d (%s -> %s): %w", i, e.From, e.To, err)
		}
	}

	if err := validateStructure(g); err != nil {
		return nil, err
	}

	if len(doc.ListHeads) > 0 {
		g.Metadata[ListHeadsKey] = doc.ListHeads
	}

	return g, nil
}

// validateStructure checks the invariants spec.md §3 requires beyond
// what AddNode/AddEdge already enforce per-edge: every "!"-tagged node
// has exactly one untagged child, and the untagged-inclusion subgraph
// is acyclic.
func validateStructure(g *graph.Graph) error {
	for id, n := range g.Nodes {
		if n.Tag == nil || *n.Tag != "!" {
			continue
		}
		if len(g.UntaggedChildren(id)) != 1 {
			return fmt.Errorf("%w: %q is tagged \"!\" but has %d untagged children, want exactly 1",
				graph.ErrMalformedGraph, id, len(g.UntaggedChildren(id)))
		}
	}

	for id := range g.Nodes {
		if cycle := g.InclusionCycle(id); cycle != nil {
			return fmt.Errorf("%w: inclusion cycle %v", graph.ErrMalformedGraph, cycle)
		}
	}
	return nil
}
