package graph

import "fmt"

// Graph is the complete attributed directed multigraph described in the
// data model: nodes keyed by opaque IDs, each carrying an optional tag
// and a memoised value; edges directed parent -> child, each optionally
// labelled with a tag.
type Graph struct {
	Nodes map[string]*Node
	Edges map[string]*Edge

	// outEdges indexes a node's outgoing edges in insertion order. This
	// is the graph's only derived index; everything else is recomputed
	// on demand by the traversal helpers below.
	outEdges map[string][]*Edge

	Seed     uint64
	Metadata map[string]interface{}
}

// NewGraph creates a new empty graph with the given seed.
func NewGraph(seed uint64) *Graph {
	return &Graph{
		Nodes:    make(map[string]*Node),
		Edges:    make(map[string]*Edge),
		outEdges: make(map[string][]*Edge),
		Seed:     seed,
		Metadata: make(map[string]interface{}),
	}
}

// AddNode adds a node to the graph after validation.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return fmt.Errorf("cannot add nil node")
	}
	if err := n.Validate(); err != nil {
		return fmt.Errorf("node validation failed: %w", err)
	}
	if _, exists := g.Nodes[n.ID]; exists {
		return fmt.Errorf("node with ID %s already exists", n.ID)
	}

	g.Nodes[n.ID] = n
	if g.outEdges[n.ID] == nil {
		g.outEdges[n.ID] = []*Edge{}
	}
	return nil
}

// AddEdge adds an edge to the graph after validation. It enforces the
// invariant that within a single parent, attribute tags are unique: two
// outgoing edges from the same parent must not share a non-null tag.
func (g *Graph) AddEdge(e *Edge) error {
	if e == nil {
		return fmt.Errorf("cannot add nil edge")
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("edge validation failed: %w", err)
	}
	if _, exists := g.Nodes[e.From]; !exists {
		return fmt.Errorf("edge %s: From node %s does not exist", e.ID, e.From)
	}
	if _, exists := g.Nodes[e.To]; !exists {
		return fmt.Errorf("edge %s: To node %s does not exist", e.ID, e.To)
	}
	if _, exists := g.Edges[e.ID]; exists {
		return fmt.Errorf("edge with ID %s already exists", e.ID)
	}

	if e.Tag != nil {
		for _, sibling := range g.outEdges[e.From] {
			if sibling.Tag != nil && *sibling.Tag == *e.Tag {
				return fmt.Errorf("%w: node %s already has an outgoing edge tagged %q",
					ErrDuplicateAttribute, e.From, *e.Tag)
			}
		}
	}

	g.Edges[e.ID] = e
	g.outEdges[e.From] = append(g.outEdges[e.From], e)
	return nil
}

// OutEdges returns all outgoing edges from node id, in insertion order
// (the "normal mode" successor enumeration of §4.3).
func (g *Graph) OutEdges(id string) []*Edge {
	return g.outEdges[id]
}

// UntaggedChildren returns the untagged (inclusion) outgoing edges of
// node id, in insertion order.
func (g *Graph) UntaggedChildren(id string) []*Edge {
	var out []*Edge
	for _, e := range g.outEdges[id] {
		if e.Tag == nil {
			out = append(out, e)
		}
	}
	return out
}

// TaggedChildren returns the tagged (attribute) outgoing edges of node
// id whose tag is not a reserved structural/placement tag, in
// insertion order.
func (g *Graph) TaggedChildren(id string) []*Edge {
	var out []*Edge
	for _, e := range g.outEdges[id] {
		if e.Tag != nil && *e.Tag != TagNext && !IsPlacementRelation(*e.Tag) && *e.Tag != TagBelow {
			out = append(out, e)
		}
	}
	return out
}

// EdgeByTag returns the single outgoing edge from id tagged with tag,
// or nil if none exists. Callers may assume at most one match, since
// AddEdge forbids duplicate tags per parent.
func (g *Graph) EdgeByTag(id, tag string) *Edge {
	for _, e := range g.outEdges[id] {
		if e.Tag != nil && *e.Tag == tag {
			return e
		}
	}
	return nil
}

// RemoveNode removes a node and all its outgoing/incoming edges from
// the graph.
func (g *Graph) RemoveNode(id string) error {
	if _, exists := g.Nodes[id]; !exists {
		return fmt.Errorf("node %s does not exist", id)
	}

	var toRemove []string
	for edgeID, e := range g.Edges {
		if e.From == id || e.To == id {
			toRemove = append(toRemove, edgeID)
		}
	}
	for _, edgeID := range toRemove {
		e := g.Edges[edgeID]
		delete(g.Edges, edgeID)
		g.removeFromOutEdges(e.From, edgeID)
	}

	delete(g.Nodes, id)
	delete(g.outEdges, id)
	return nil
}

func (g *Graph) removeFromOutEdges(from, edgeID string) {
	out, exists := g.outEdges[from]
	if !exists {
		return
	}
	filtered := out[:0]
	for _, e := range out {
		if e.ID != edgeID {
			filtered = append(filtered, e)
		}
	}
	g.outEdges[from] = filtered
}

// GetReachable returns the set of node IDs reachable from "from" by
// following only untagged (inclusion) edges. Used by the scene
// assembler (C6) to test group ancestry and by cycle detection.
func (g *Graph) GetReachable(from string) map[string]bool {
	reachable := make(map[string]bool)
	if _, exists := g.Nodes[from]; !exists {
		return reachable
	}

	queue := []string{from}
	reachable[from] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range g.outEdges[current] {
			if e.Tag != nil {
				continue
			}
			if !reachable[e.To] {
				reachable[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
	return reachable
}

// InclusionCycle returns a cycle in the untagged-edge (inclusion)
// subgraph reachable from "from", or nil if none exists. Used to detect
// MalformedGraph group cycles per §3's acyclicity invariant.
func (g *Graph) InclusionCycle(from string) []string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var dfs func(id string) []string
	dfs = func(id string) []string {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, e := range g.outEdges[id] {
			if e.Tag != nil {
				continue
			}
			if onStack[e.To] {
				// Reconstruct the cycle starting at e.To.
				start := 0
				for i, n := range path {
					if n == e.To {
						start = i
						break
					}
				}
				cycle := append([]string{}, path[start:]...)
				return append(cycle, e.To)
			}
			if !visited[e.To] {
				if cycle := dfs(e.To); cycle != nil {
					return cycle
				}
			}
		}

		onStack[id] = false
		path = path[:len(path)-1]
		return nil
	}

	return dfs(from)
}
