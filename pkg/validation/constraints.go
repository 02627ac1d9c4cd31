package validation

import (
	"fmt"

	"github.com/dshills/svgraph/pkg/geometry"
	"github.com/dshills/svgraph/pkg/graph"
	"github.com/dshills/svgraph/pkg/scene"
)

// ConstraintResult is the post-render structural check's result shape,
// ported from the teacher's dungeon.ConstraintResult: Satisfied is a
// hard pass/fail, Score is informational (1.0 when satisfied, 0.0
// otherwise — these checks are all hard constraints, none soft), and
// Details explains a failure.
type ConstraintResult struct {
	Constraint string
	Satisfied  bool
	Score      float64
	Details    string
}

func result(name string, satisfied bool, details string) ConstraintResult {
	score := 0.0
	if satisfied {
		score = 1.0
	}
	return ConstraintResult{Constraint: name, Satisfied: satisfied, Score: score, Details: details}
}

// CheckBoundingBoxMonotonicity verifies every group's box contains each
// of its children's boxes, the invariant C6's assembleGroup is supposed
// to maintain by unioning children in.
func CheckBoundingBoxMonotonicity(root *scene.Node) ConstraintResult {
	var violations []string
	var walk func(n *scene.Node)
	walk = func(n *scene.Node) {
		if n.Elem != nil && n.Elem.Tag == "g" {
			for _, c := range n.Children {
				if c.Elem == nil {
					continue
				}
				if !contains(n.Elem.Box, c.Elem.Box) {
					violations = append(violations, fmt.Sprintf("group %s does not contain child %s", n.Elem.NodeID, c.Elem.NodeID))
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	if len(violations) == 0 {
		return result("BoundingBoxMonotonicity", true, "every group box contains all of its children's boxes")
	}
	return result("BoundingBoxMonotonicity", false, fmt.Sprintf("%d violation(s): %v", len(violations), violations))
}

func contains(outer, inner geometry.BoundingBox) bool {
	ox1, oy1, ox2, oy2, ok := outer.Resolved()
	if !ok {
		return false
	}
	ix1, iy1, ix2, iy2, ok := inner.Resolved()
	if !ok {
		return true
	}
	return ox1 <= ix1 && oy1 <= iy1 && ox2 >= ix2 && oy2 >= iy2
}

// CheckDisjointNonOverlap verifies every graph edge tagged
// graph.TagDisjoint ends up with zero-overlap boxes after placement —
// the solver's penalty function only nudges toward this, it does not
// guarantee it, so this check confirms the outcome rather than trusting
// the optimizer blindly.
func CheckDisjointNonOverlap(g *graph.Graph, root *scene.Node) ConstraintResult {
	boxes := make(map[string]geometry.BoundingBox)
	var collect func(n *scene.Node)
	collect = func(n *scene.Node) {
		if n.Elem != nil {
			boxes[n.Elem.NodeID] = geometry.ApplyTransform(n.Elem.Box, n.Elem.Attributes["transform"], nil)
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(root)

	var violations []string
	for _, n := range g.Nodes {
		for _, e := range g.OutEdges(n.ID) {
			if e.Tag == nil || *e.Tag != graph.TagDisjoint {
				continue
			}
			a, aok := boxes[e.From]
			b, bok := boxes[e.To]
			if !aok || !bok {
				continue
			}
			if overlaps(a, b) {
				violations = append(violations, fmt.Sprintf("%s and %s overlap", e.From, e.To))
			}
		}
	}

	if len(violations) == 0 {
		return result("DisjointNonOverlap", true, "no disjoint-tagged element pair overlaps")
	}
	return result("DisjointNonOverlap", false, fmt.Sprintf("%d violation(s): %v", len(violations), violations))
}

func overlaps(a, b geometry.BoundingBox) bool {
	ax1, ay1, ax2, ay2, aok := a.Resolved()
	bx1, by1, bx2, by2, bok := b.Resolved()
	if !aok || !bok {
		return false
	}
	return ax1 < bx2 && bx1 < ax2 && ay1 < by2 && by1 < ay2
}

// CheckViewBoxContainment verifies every top-level element's box falls
// within the canvas viewBox, catching placement offsets or unbounded
// geometry that would render clipped or off-canvas.
func CheckViewBoxContainment(root *scene.Node, x1, y1, x2, y2 float64) ConstraintResult {
	viewBox := geometry.BoundingBox{X1: &x1, Y1: &y1, X2: &x2, Y2: &y2}

	var violations []string
	for _, n := range root.Children {
		if n.Elem == nil {
			continue
		}
		if !contains(viewBox, geometry.ApplyTransform(n.Elem.Box, n.Elem.Attributes["transform"], nil)) {
			violations = append(violations, n.Elem.NodeID)
		}
	}

	if len(violations) == 0 {
		return result("ViewBoxContainment", true, "every top-level element is within the canvas viewBox")
	}
	return result("ViewBoxContainment", false, fmt.Sprintf("outside viewBox: %v", violations))
}

// RunAll runs every post-render structural check and returns their
// results in a fixed order.
func RunAll(g *graph.Graph, root *scene.Node, canvasX1, canvasY1, canvasX2, canvasY2 float64) []ConstraintResult {
	return []ConstraintResult{
		CheckBoundingBoxMonotonicity(root),
		CheckDisjointNonOverlap(g, root),
		CheckViewBoxContainment(root, canvasX1, canvasY1, canvasX2, canvasY2),
	}
}
