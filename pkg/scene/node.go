package scene

import "github.com/dshills/svgraph/pkg/materialize"

// Node is one assembled scene-tree entry: a materialised element plus,
// for "g"-tagged nodes, its children in final z-order. Leaf elements
// (rect/circle/path) have no children.
type Node struct {
	Elem     *materialize.Element
	Children []*Node
}
