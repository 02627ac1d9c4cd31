// Package scene implements the scene assembler (C6): it finds
// top-level elements, z-orders each sibling set by "below" edges,
// recursively materialises groups, runs the placement solver (C5)
// over each sibling set's placement relations, and applies the
// resulting offsets — producing a nested Node tree ready for the SVG
// emitter (C8).
package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/svgraph/pkg/evaluator"
	"github.com/dshills/svgraph/pkg/geometry"
	"github.com/dshills/svgraph/pkg/graph"
	"github.com/dshills/svgraph/pkg/materialize"
	"github.com/dshills/svgraph/pkg/placement"
	"github.com/dshills/svgraph/pkg/render"
	"github.com/dshills/svgraph/pkg/rng"
	"github.com/dshills/svgraph/pkg/validation"
)

// Assembler builds a scene tree from an attributed graph, grounded on
// original_source/svgrammar/render.py's render_to_drawing/
// create_group/graph_to_svg recursion.
type Assembler struct {
	g          *graph.Graph
	mat        *materialize.Materializer
	cfg        *render.Config
	logger     render.Logger
	configHash []byte
}

// New builds an Assembler. A nil logger falls back to render.Discard.
func New(g *graph.Graph, cfg *render.Config, logger render.Logger) *Assembler {
	if logger == nil {
		logger = render.Discard
	}
	eval := evaluator.New(g)
	mat := materialize.New(g, eval, validation.NewValidator(), cfg, logger)
	return &Assembler{g: g, mat: mat, cfg: cfg, logger: logger, configHash: cfg.Hash()}
}

// Assemble builds the full scene tree: a synthetic root Node (the
// document container) whose Children are the top-level elements in
// z-order.
func (a *Assembler) Assemble() (*Node, error) {
	_, topLevel, err := TopLevelElements(a.g)
	if err != nil {
		return nil, err
	}
	children, err := a.assembleSiblings(topLevel, nil, "placement:root")
	if err != nil {
		return nil, err
	}
	return &Node{Children: children}, nil
}

// assembleSiblings materialises every node in elems (recursing into
// groups first), then solves and applies placement among them as a
// single sibling set, per spec.md §4.6 steps 3-6. parents guards
// against circular group inclusion; scope names this sibling set's
// placement solver for deterministic seed derivation.
func (a *Assembler) assembleSiblings(elems []string, parents []string, scope string) ([]*Node, error) {
	for _, e := range elems {
		for _, p := range parents {
			if e == p {
				return nil, fmt.Errorf("%w: circular group inclusion at node %q", graph.ErrMalformedGraph, e)
			}
		}
	}

	nodes := make([]*Node, len(elems))
	byID := make(map[string]*Node, len(elems))
	for i, e := range elems {
		node, err := a.materializeOne(e, parents)
		if err != nil {
			return nil, err
		}
		nodes[i] = node
		byID[e] = node
	}

	rels := a.collectRelations(elems)
	if len(rels) > 0 {
		unoffset := make(map[string]geometry.BoundingBox, len(byID))
		for id, n := range byID {
			unoffset[id] = n.Elem.Box
		}
		boxLookup := func(id string) geometry.BoundingBox { return unoffset[id] }

		r := rng.NewRNG(a.cfg.Seed, scope, a.configHash)
		solver := placement.NewSolver(rels, boxLookup, a.cfg.Solver, r)
		offsets := solver.Solve(0)

		for id, off := range offsets {
			n, ok := byID[id]
			if !ok {
				continue
			}
			dx, dy := roundTranslation(off.DX), roundTranslation(off.DY)
			translateElement(n.Elem, dx, dy)
		}
	}

	return nodes, nil
}

func (a *Assembler) materializeOne(id string, parents []string) (*Node, error) {
	node, ok := a.g.Nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: node %q does not exist", graph.ErrMalformedGraph, id)
	}
	if node.Tag != nil && *node.Tag == "g" {
		return a.assembleGroup(id, parents)
	}

	elem, err := a.mat.Materialize(id)
	if err != nil {
		return nil, err
	}
	return &Node{Elem: elem}, nil
}

// assembleGroup recurses into a group's untagged children before
// solving placement among the group itself's siblings (the parent
// call handles that): the group's own box is the union of its
// children's final boxes, grown after their own placement offsets are
// applied.
func (a *Assembler) assembleGroup(id string, parents []string) (*Node, error) {
	elem, err := a.mat.Materialize(id)
	if err != nil {
		return nil, err
	}

	var childIDs []string
	for _, e := range a.g.OutEdges(id) {
		if e.Tag == nil {
			childIDs = append(childIDs, e.To)
		}
	}

	ordered, err := findOrder(a.g, childIDs)
	if err != nil {
		return nil, err
	}

	children, err := a.assembleSiblings(ordered, append(parents, id), "placement:"+id)
	if err != nil {
		return nil, err
	}

	for _, c := range children {
		if c.Elem != nil {
			elem.Box = elem.Box.Union(c.Elem.Box)
		}
	}

	return &Node{Elem: elem, Children: children}, nil
}

// collectRelations gathers placement-relation edges whose endpoints
// are both in elems, logging and dropping cross-group ones, per
// spec.md §4.6 step 4 / render.py's cross-group WARNING print. The
// scan itself is placement.RelationsFromEdges; this layers the
// cross-group filter on top since a sibling set only ever solves
// placement among its own members.
func (a *Assembler) collectRelations(elems []string) []placement.Relation {
	inSet := make(map[string]bool, len(elems))
	for _, e := range elems {
		inSet[e] = true
	}

	all := placement.RelationsFromEdges(a.g, elems)
	rels := make([]placement.Relation, 0, len(all))
	for _, rel := range all {
		if !inSet[rel.E2] {
			a.logger.Warnf("scene: ignoring cross-group placement %s -> %s", rel.E1, rel.E2)
			continue
		}
		rels = append(rels, rel)
	}
	return rels
}

func roundTranslation(v float64) float64 {
	const scale = 1e6
	return math.Round(v*scale) / scale
}

// translateElement records a placement offset as an outermost
// translate(dx,dy) on the element's rendered transform attribute,
// composed in front of any transform already present (applied after
// it, in SVG's right-to-left transform-list application order) —
// mirroring how original_source/svgrammar/render.py's Element.translate
// delegates to svgwrite's Element.translate(), which prepends a
// translate to the element's existing transform list rather than
// rewriting its raw coordinates or path data. This is the offset's
// only channel into the rendered document: elem.Box is left as the
// materialiser built it, so rect/circle's raw coordinates and path's
// "d" stay untouched and every tag (including "g", which has no raw
// coordinates at all) picks up the same translate(...) attribute at
// SVG-emission time (pkg/svgexport).
func translateElement(elem *materialize.Element, dx, dy float64) {
	if elem.Attributes == nil {
		elem.Attributes = make(map[string]string, 1)
	}
	t := fmt.Sprintf("translate(%s,%s)", trimFloat(dx), trimFloat(dy))
	if existing, ok := elem.Attributes["transform"]; ok && existing != "" {
		elem.Attributes["transform"] = t + " " + existing
	} else {
		elem.Attributes["transform"] = t
	}
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.6f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
