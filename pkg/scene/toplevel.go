package scene

import "github.com/dshills/svgraph/pkg/graph"

// TagSVG names the graph's document-root node, if present.
const TagSVG = "svg"

// svgElements are the drawable (or group) tags top-level/child-set
// discovery recognises, mirroring render.py's svgElements list.
var svgElements = map[string]bool{
	"g": true, "svg": true, "rect": true, "circle": true, "path": true,
}

// TopLevelElements finds the svg-root node (if any) and the set of
// top-level drawable elements, ordered by z (§4.6 step 1-2): elements
// not reachable via untagged edges from any group-tagged ancestor; the
// svg node's direct untagged children are always top-level.
//
// Grounded on original_source/svgrammar/render.py's top_level_elements
// and has_group_parent, with the reverse-ancestor DFS replaced by a
// single forward pass marking every node reachable from each group
// node (graph.Graph.GetReachable), since "n has a group ancestor" and
// "n is reachable from some group" are equivalent for acyclic
// inclusion (spec.md §3's acyclicity invariant).
func TopLevelElements(g *graph.Graph) (svgNode string, ordered []string, err error) {
	groupDescendants := make(map[string]bool)
	for id, n := range g.Nodes {
		if n.Tag != nil && *n.Tag == "g" {
			reach := g.GetReachable(id)
			for d := range reach {
				if d != id {
					groupDescendants[d] = true
				}
			}
		}
	}

	topLevel := make(map[string]bool)

	for id, n := range g.Nodes {
		if n.Tag == nil || *n.Tag != TagSVG {
			continue
		}
		svgNode = id
		for _, e := range g.OutEdges(id) {
			if e.Tag == nil {
				topLevel[e.To] = true
			}
		}
	}

	for id, n := range g.Nodes {
		if n.Tag == nil || !svgElements[*n.Tag] || *n.Tag == TagSVG {
			continue
		}
		if topLevel[id] {
			continue
		}
		if groupDescendants[id] {
			continue
		}
		topLevel[id] = true
	}

	nodes := make([]string, 0, len(topLevel))
	for id := range topLevel {
		nodes = append(nodes, id)
	}
	ordered, err = findOrder(g, nodes)
	return svgNode, ordered, err
}
