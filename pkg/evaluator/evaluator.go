// Package evaluator implements the attribute evaluator (C3): a
// memoising, cycle-detecting evaluator over the attributed graph's
// fixed, closed operator set.
package evaluator

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dshills/svgraph/pkg/graph"
)

// dispatchFunc evaluates an operator-tagged node n, given the ancestry
// chain (visited) of operator nodes currently being evaluated.
type dispatchFunc func(n string, visited []string) (string, error)

// Evaluator evaluates nodes of a single graph, memoising results onto
// each operator node's Value field as it goes.
type Evaluator struct {
	g         *graph.Graph
	operators map[string]dispatchFunc
}

// New builds an Evaluator over g. The returned Evaluator mutates g's
// nodes (memoised Value fields) as NodeValue is called.
func New(g *graph.Graph) *Evaluator {
	e := &Evaluator{g: g}
	e.operators = map[string]dispatchFunc{
		"!":      e.bangValue,
		"+":      e.plusValue,
		"##":     e.concatValue,
		"rgb":    e.rgbValue,
		"translate": e.translateOrScaleValue,
		"scale":     e.translateOrScaleValue,
		"skewX":  e.angleValue,
		"skewY":  e.angleValue,
		"rotate": e.angleValue,
	}
	return e
}

// NodeValue evaluates node n given the ancestry chain of operator
// nodes currently being evaluated (visited). An untagged node
// evaluates to the empty string; a cached node returns its memoised
// value; an operator-tagged node dispatches and caches; any other tag
// is a literal returned verbatim.
func (e *Evaluator) NodeValue(n string, visited []string) (string, error) {
	for _, v := range visited {
		if v == n {
			return "", fmt.Errorf("%w: at node %q", graph.ErrCircularEvaluation, n)
		}
	}

	node, ok := e.g.Nodes[n]
	if !ok {
		return "", fmt.Errorf("%w: node %q does not exist", graph.ErrMalformedGraph, n)
	}
	if node.Tag == nil {
		return "", nil
	}
	if node.Value != nil {
		return *node.Value, nil
	}

	tag := *node.Tag
	dispatch, isOperator := e.operators[tag]
	if !isOperator {
		return tag, nil
	}

	nested := append(append([]string{}, visited...), n)
	val, err := dispatch(n, nested)
	if err != nil {
		return "", err
	}
	node.Value = &val
	return val, nil
}

// bangValue implements "!": pass through its single untagged child.
func (e *Evaluator) bangValue(n string, visited []string) (string, error) {
	children := e.g.UntaggedChildren(n)
	if len(children) != 1 {
		return "", fmt.Errorf("%w: '!' node %q has %d untagged children, want exactly 1",
			graph.ErrMalformedGraph, n, len(children))
	}
	return e.NodeValue(children[0].To, visited)
}

// plusValue implements "+": sum untagged children as floats, treating
// unparseable operands as zero, formatted the way Python's
// str(float(total)) would.
func (e *Evaluator) plusValue(n string, visited []string) (string, error) {
	total := 0.0
	for _, c := range e.g.UntaggedChildren(n) {
		v, err := e.NodeValue(c.To, visited)
		if err != nil {
			return "", err
		}
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			continue
		}
		total += f
	}
	return formatFloat(total), nil
}

// concatValue implements "##": evaluate tagged children and join their
// values with a single space, in ascending tag order.
func (e *Evaluator) concatValue(n string, visited []string) (string, error) {
	children := e.g.TaggedChildren(n)
	sort.Slice(children, func(i, j int) bool { return *children[i].Tag < *children[j].Tag })

	parts := make([]string, len(children))
	for i, c := range children {
		v, err := e.NodeValue(c.To, visited)
		if err != nil {
			return "", err
		}
		parts[i] = v
	}
	return joinSpace(parts), nil
}

// rgbValue implements "rgb": tagged children r, g, b (missing = 0),
// integer-coerced (parse failure = 0), clamped to [0,255].
func (e *Evaluator) rgbValue(n string, visited []string) (string, error) {
	d := e.taggedDict(n)
	r, err := e.intOrZero(d, "r", visited)
	if err != nil {
		return "", err
	}
	g, err := e.intOrZero(d, "g", visited)
	if err != nil {
		return "", err
	}
	b, err := e.intOrZero(d, "b", visited)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", clampByte(r), clampByte(g), clampByte(b)), nil
}

// translateOrScaleValue implements "translate" and "scale": tagged
// children x, y (missing = 0), float-coerced, formatted "tag(x,y)".
func (e *Evaluator) translateOrScaleValue(n string, visited []string) (string, error) {
	tag := *e.g.Nodes[n].Tag
	d := e.taggedDict(n)
	x, err := e.floatOrZero(d, "x", visited)
	if err != nil {
		return "", err
	}
	y, err := e.floatOrZero(d, "y", visited)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s,%s)", tag, formatFloat(x), formatFloat(y)), nil
}

// angleValue implements "skewX", "skewY", "rotate": uses tagged child
// "d" if present, else the first tagged child in deterministic
// (insertion) order, else 0.
func (e *Evaluator) angleValue(n string, visited []string) (string, error) {
	tag := *e.g.Nodes[n].Tag
	children := e.g.TaggedChildren(n)
	d := e.taggedDict(n)

	var val float64
	var err error
	switch {
	case d["d"] != nil:
		val, err = e.floatOrZero(d, "d", visited)
	case len(children) > 0:
		val, err = e.floatOrZero(d, *children[0].Tag, visited)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", tag, formatFloat(val)), nil
}

// taggedDict maps a node's tagged-child tags to their edges.
func (e *Evaluator) taggedDict(n string) map[string]*graph.Edge {
	out := make(map[string]*graph.Edge)
	for _, c := range e.g.TaggedChildren(n) {
		out[*c.Tag] = c
	}
	return out
}

// floatOrZero evaluates d[key]'s child and parses it as a float;
// missing key or parse failure yields 0. Evaluation errors (circular,
// malformed) still propagate.
func (e *Evaluator) floatOrZero(d map[string]*graph.Edge, key string, visited []string) (float64, error) {
	edge, ok := d[key]
	if !ok {
		return 0, nil
	}
	v, err := e.NodeValue(edge.To, visited)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(v, 64)
	if perr != nil {
		return 0, nil
	}
	return f, nil
}

// intOrZero evaluates d[key]'s child and parses it as an integer;
// missing key or parse failure yields 0.
func (e *Evaluator) intOrZero(d map[string]*graph.Edge, key string, visited []string) (int, error) {
	edge, ok := d[key]
	if !ok {
		return 0, nil
	}
	v, err := e.NodeValue(edge.To, visited)
	if err != nil {
		return 0, err
	}
	iv, perr := strconv.Atoi(v)
	if perr != nil {
		return 0, nil
	}
	return iv, nil
}

func joinSpace(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}
