// Package materialize implements the element materialiser (C4): for
// each drawable graph node, consumes its geometric attributes,
// strips invalid ones through the attribute validator, applies any
// transform to the resulting bounding box, and produces a rendered
// Element record.
package materialize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/svgraph/pkg/evaluator"
	"github.com/dshills/svgraph/pkg/geometry"
	"github.com/dshills/svgraph/pkg/graph"
	"github.com/dshills/svgraph/pkg/render"
	"github.com/dshills/svgraph/pkg/validation"
)

// drawableTags are the element tags the materialiser knows how to
// build geometry for (§4.4's table). "g" is handled specially: it
// accumulates its children's boxes rather than building its own.
var drawableTags = map[string]bool{
	"rect": true, "circle": true, "path": true, "g": true,
}

// IsDrawable reports whether tag names one of the materialiser's
// known element kinds.
func IsDrawable(tag string) bool {
	return drawableTags[tag]
}

// Materializer builds Element records for drawable nodes of a single
// graph, evaluating attributes via the supplied Evaluator.
type Materializer struct {
	g         *graph.Graph
	eval      *evaluator.Evaluator
	validator validation.Validator
	cfg       *render.Config
	logger    render.Logger
}

// New builds a Materializer. A nil logger falls back to render.Discard.
func New(g *graph.Graph, eval *evaluator.Evaluator, validator validation.Validator, cfg *render.Config, logger render.Logger) *Materializer {
	if logger == nil {
		logger = render.Discard
	}
	return &Materializer{g: g, eval: eval, validator: validator, cfg: cfg, logger: logger}
}

// Materialize builds the Element record for nodeID. For "g" nodes the
// returned box is an empty Group box: callers (the scene assembler,
// C6) are responsible for unioning in each child's box as the group is
// composed, then re-applying the group's own transform attribute.
func (m *Materializer) Materialize(nodeID string) (*Element, error) {
	node, ok := m.g.Nodes[nodeID]
	if !ok {
		return nil, fmt.Errorf("%w: node %q does not exist", graph.ErrMalformedGraph, nodeID)
	}
	if node.Tag == nil {
		return nil, fmt.Errorf("%w: drawable node %q has no tag", graph.ErrMalformedGraph, nodeID)
	}
	tag := *node.Tag
	if !IsDrawable(tag) {
		return nil, fmt.Errorf("%w: node %q has unknown drawable tag %q", graph.ErrMalformedGraph, nodeID, tag)
	}

	listAttrs := make(map[string]bool, len(m.cfg.ListAttributes))
	for _, a := range m.cfg.ListAttributes {
		listAttrs[a] = true
	}

	attrs, err := m.eval.ExtractAttributes(nodeID, listAttrs)
	if err != nil {
		return nil, err
	}

	box, pathD, err := m.buildGeometry(tag, attrs)
	if err != nil {
		return nil, err
	}

	if transform, ok := attrs.Scalars["transform"]; ok {
		box = geometry.ApplyTransform(box, transform, m.logger)
		delete(attrs.Scalars, "transform")
	}

	filtered := m.filterAttributes(tag, nodeID, attrs.Scalars)
	if tag == "path" {
		filtered["d"] = pathD
	}

	return &Element{NodeID: nodeID, Tag: tag, Attributes: filtered, Box: box}, nil
}

// buildGeometry constructs the per-tag bounding box. For "path" it
// also returns the resolved path-data string (d_list wins over d), so
// callers can set it as the element's literal "d" attribute.
func (m *Materializer) buildGeometry(tag string, attrs *evaluator.Attributes) (geometry.BoundingBox, string, error) {
	switch tag {
	case "rect":
		x := floatOr(attrs.Scalars, "x", 0)
		y := floatOr(attrs.Scalars, "y", 0)
		w := floatOr(attrs.Scalars, "width", 0)
		h := floatOr(attrs.Scalars, "height", 0)
		return geometry.Rectangle(x, y, w, h), "", nil
	case "circle":
		cx := floatOr(attrs.Scalars, "cx", 0)
		cy := floatOr(attrs.Scalars, "cy", 0)
		r := floatOr(attrs.Scalars, "r", 0)
		return geometry.Circle(cx, cy, r), "", nil
	case "path":
		d := pathData(attrs)
		box, err := geometry.PathBoundingBox(d)
		if errors.Is(err, geometry.ErrTruncatedPath) {
			m.logger.Warnf("materialize: truncated path data %q: %v", d, err)
			return geometry.NewGroup(), d, nil
		}
		return box, d, err
	case "g":
		return geometry.NewGroup(), "", nil
	default:
		return geometry.BoundingBox{}, "", fmt.Errorf("%w: unknown drawable tag %q", graph.ErrMalformedGraph, tag)
	}
}

// pathData resolves a path element's "d" per §4.4: d_list (if
// present) wins over a scalar d, joined with single spaces since each
// list element is itself a snippet of path-data text.
func pathData(attrs *evaluator.Attributes) string {
	if list, ok := attrs.Lists["d_list"]; ok {
		return strings.Join(list, " ")
	}
	return attrs.Scalars["d"]
}

func floatOr(scalars map[string]string, key string, fallback float64) float64 {
	v, ok := scalars[key]
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// filterAttributes keeps only attributes the validator accepts for
// elem, logging a WarnAndContinue for every strip not covered by the
// config's expected-invalid allow-list.
func (m *Materializer) filterAttributes(elem, nodeID string, scalars map[string]string) map[string]string {
	out := make(map[string]string, len(scalars))
	for attr, val := range scalars {
		if m.validator.IsValid(elem, attr, val) {
			out[attr] = val
			continue
		}
		if !m.cfg.IsAllowedInvalid(attr) {
			m.logger.Warnf("materialize: stripped invalid attribute %s=%q on %s element %s", attr, val, elem, nodeID)
		}
	}
	return out
}
