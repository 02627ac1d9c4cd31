package materialize

import "github.com/dshills/svgraph/pkg/geometry"

// Element is the rendered-element record C4 produces for one drawable
// graph node: its tag, its validator-surviving attribute dictionary,
// and its bounding box (post-transform).
type Element struct {
	NodeID     string
	Tag        string
	Attributes map[string]string
	Box        geometry.BoundingBox
}
