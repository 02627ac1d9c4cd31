package evaluator

import "github.com/dshills/svgraph/pkg/graph"

// Attributes is the result of extracting an element node's outgoing
// tagged edges: scalar attribute values, plus any attributes the
// caller declared as list heads.
type Attributes struct {
	Scalars map[string]string
	Lists   map[string][]string
}

// ExtractAttributes produces the {tag -> value} mapping over n's
// outgoing tagged edges. Tags present in listAttrs are evaluated as
// list heads: the pointed-to node is evaluated, then "next"-tagged
// edges are followed transitively, producing an ordered sequence
// instead of a single scalar.
func (e *Evaluator) ExtractAttributes(n string, listAttrs map[string]bool) (*Attributes, error) {
	attrs := &Attributes{
		Scalars: make(map[string]string),
		Lists:   make(map[string][]string),
	}

	for _, edge := range e.g.TaggedChildren(n) {
		tag := *edge.Tag
		if listAttrs[tag] {
			vals, err := e.ListValue(edge.To, []string{n})
			if err != nil {
				return nil, err
			}
			attrs.Lists[tag] = vals
			continue
		}
		v, err := e.NodeValue(edge.To, []string{n})
		if err != nil {
			return nil, err
		}
		attrs.Scalars[tag] = v
	}

	return attrs, nil
}

// ListValue evaluates n, then follows n's "next"-tagged outgoing edges
// transitively, evaluating each reached node in turn. During list
// evaluation "next" edges are the list spine, not operand edges: they
// are never visited by an operator's own UntaggedChildren/
// TaggedChildren enumeration (see graph.Graph.TaggedChildren).
func (e *Evaluator) ListValue(n string, visited []string) ([]string, error) {
	v, err := e.NodeValue(n, visited)
	if err != nil {
		return nil, err
	}

	result := []string{v}
	nested := append(append([]string{}, visited...), n)
	for _, next := range e.listSuccessors(n) {
		rest, err := e.ListValue(next.To, nested)
		if err != nil {
			return nil, err
		}
		result = append(result, rest...)
	}
	return result, nil
}

// listSuccessors returns n's outgoing edges tagged "next", in
// insertion order.
func (e *Evaluator) listSuccessors(n string) []*graph.Edge {
	var out []*graph.Edge
	for _, edge := range e.g.OutEdges(n) {
		if edge.Tag != nil && *edge.Tag == graph.TagNext {
			out = append(out, edge)
		}
	}
	return out
}
