package materialize

import (
	"errors"
	"testing"

	"github.com/dshills/svgraph/pkg/evaluator"
	"github.com/dshills/svgraph/pkg/graph"
	"github.com/dshills/svgraph/pkg/render"
	"github.com/dshills/svgraph/pkg/validation"
)

func tp(s string) *string { return &s }

func mustAddNode(t *testing.T, g *graph.Graph, n *graph.Node) {
	t.Helper()
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
}

func mustAddEdge(t *testing.T, g *graph.Graph, e *graph.Edge) {
	t.Helper()
	if err := g.AddEdge(e); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
}

func literal(t *testing.T, g *graph.Graph, id, text string) {
	t.Helper()
	mustAddNode(t, g, &graph.Node{ID: id, Tag: tp(text)})
}

func newMaterializer(g *graph.Graph) *Materializer {
	cfg := render.DefaultConfig()
	cfg.ListAttributes = []string{"d_list"}
	return New(g, evaluator.New(g), validation.NewValidator(), cfg, render.Discard)
}

func TestMaterialize_Rectangle(t *testing.T) {
	g := graph.NewGraph(1)
	mustAddNode(t, g, &graph.Node{ID: "r", Tag: tp("rect")})
	literal(t, g, "xv", "10")
	literal(t, g, "yv", "20")
	literal(t, g, "wv", "30")
	literal(t, g, "hv", "40")
	mustAddEdge(t, g, &graph.Edge{ID: "e1", From: "r", To: "xv", Tag: tp("x")})
	mustAddEdge(t, g, &graph.Edge{ID: "e2", From: "r", To: "yv", Tag: tp("y")})
	mustAddEdge(t, g, &graph.Edge{ID: "e3", From: "r", To: "wv", Tag: tp("width")})
	mustAddEdge(t, g, &graph.Edge{ID: "e4", From: "r", To: "hv", Tag: tp("height")})

	m := newMaterializer(g)
	elem, err := m.Materialize("r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x1, y1, x2, y2, ok := elem.Box.Resolved()
	if !ok || x1 != 10 || y1 != 20 || x2 != 40 || y2 != 60 {
		t.Errorf("box = (%v,%v,%v,%v) ok=%v, want (10,20,40,60)", x1, y1, x2, y2, ok)
	}
	if elem.Attributes["width"] != "30" {
		t.Errorf("attributes[width] = %q, want %q", elem.Attributes["width"], "30")
	}
}

func TestMaterialize_RectangleDefaultsMissingToZero(t *testing.T) {
	g := graph.NewGraph(1)
	mustAddNode(t, g, &graph.Node{ID: "r", Tag: tp("rect")})

	m := newMaterializer(g)
	elem, err := m.Materialize("r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x1, y1, x2, y2, ok := elem.Box.Resolved()
	if !ok || x1 != 0 || y1 != 0 || x2 != 0 || y2 != 0 {
		t.Errorf("box = (%v,%v,%v,%v) ok=%v, want all-zero", x1, y1, x2, y2, ok)
	}
}

func TestMaterialize_Circle(t *testing.T) {
	g := graph.NewGraph(1)
	mustAddNode(t, g, &graph.Node{ID: "c", Tag: tp("circle")})
	literal(t, g, "rv", "5")
	mustAddEdge(t, g, &graph.Edge{ID: "e1", From: "c", To: "rv", Tag: tp("r")})

	m := newMaterializer(g)
	elem, err := m.Materialize("c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x1, y1, x2, y2, _ := elem.Box.Resolved()
	if x1 != -5 || y1 != -5 || x2 != 5 || y2 != 5 {
		t.Errorf("box = (%v,%v,%v,%v), want (-5,-5,5,5)", x1, y1, x2, y2)
	}
}

func TestMaterialize_PathFromScalarD(t *testing.T) {
	g := graph.NewGraph(1)
	mustAddNode(t, g, &graph.Node{ID: "p", Tag: tp("path")})
	literal(t, g, "dv", "M 10 10 L 20 5 L 15 30 Z")
	mustAddEdge(t, g, &graph.Edge{ID: "e1", From: "p", To: "dv", Tag: tp("d")})

	m := newMaterializer(g)
	elem, err := m.Materialize("p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x1, y1, x2, y2, _ := elem.Box.Resolved()
	if x1 != 10 || y1 != 5 || x2 != 20 || y2 != 30 {
		t.Errorf("box = (%v,%v,%v,%v), want (10,5,20,30)", x1, y1, x2, y2)
	}
	if elem.Attributes["d"] != "M 10 10 L 20 5 L 15 30 Z" {
		t.Errorf("attributes[d] = %q", elem.Attributes["d"])
	}
}

func TestMaterialize_PathDListWinsOverScalarD(t *testing.T) {
	g := graph.NewGraph(1)
	mustAddNode(t, g, &graph.Node{ID: "p", Tag: tp("path")})
	literal(t, g, "dv", "M 0 0")
	literal(t, g, "l1", "M 1 1")
	literal(t, g, "l2", "L 2 2")
	mustAddEdge(t, g, &graph.Edge{ID: "e1", From: "p", To: "dv", Tag: tp("d")})
	mustAddEdge(t, g, &graph.Edge{ID: "e2", From: "p", To: "l1", Tag: tp("d_list")})
	mustAddEdge(t, g, &graph.Edge{ID: "e3", From: "l1", To: "l2", Tag: tp("next")})

	m := newMaterializer(g)
	elem, err := m.Materialize("p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elem.Attributes["d"] != "M 1 1 L 2 2" {
		t.Errorf("attributes[d] = %q, want %q", elem.Attributes["d"], "M 1 1 L 2 2")
	}
}

func TestMaterialize_Group(t *testing.T) {
	g := graph.NewGraph(1)
	mustAddNode(t, g, &graph.Node{ID: "grp", Tag: tp("g")})

	m := newMaterializer(g)
	elem, err := m.Materialize("grp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !elem.Box.IsEmpty() {
		t.Errorf("fresh group materialisation should yield an empty box")
	}
}

func TestMaterialize_TransformAppliedToBox(t *testing.T) {
	g := graph.NewGraph(1)
	mustAddNode(t, g, &graph.Node{ID: "r", Tag: tp("rect")})
	literal(t, g, "wv", "10")
	literal(t, g, "hv", "10")
	literal(t, g, "tv", "translate(5, 5)")
	mustAddEdge(t, g, &graph.Edge{ID: "e1", From: "r", To: "wv", Tag: tp("width")})
	mustAddEdge(t, g, &graph.Edge{ID: "e2", From: "r", To: "hv", Tag: tp("height")})
	mustAddEdge(t, g, &graph.Edge{ID: "e3", From: "r", To: "tv", Tag: tp("transform")})

	m := newMaterializer(g)
	elem, err := m.Materialize("r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x1, y1, x2, y2, _ := elem.Box.Resolved()
	if x1 != 5 || y1 != 5 || x2 != 15 || y2 != 15 {
		t.Errorf("box = (%v,%v,%v,%v), want (5,5,15,15)", x1, y1, x2, y2)
	}
	if _, ok := elem.Attributes["transform"]; ok {
		t.Errorf("transform attribute should be consumed into the box, not survive to the rendered attributes: %q", elem.Attributes["transform"])
	}
}

func TestMaterialize_StripsInvalidAttributeHonoringAllowList(t *testing.T) {
	g := graph.NewGraph(1)
	mustAddNode(t, g, &graph.Node{ID: "r", Tag: tp("rect")})
	literal(t, g, "bogus", "nope")
	mustAddEdge(t, g, &graph.Edge{ID: "e1", From: "r", To: "bogus", Tag: tp("data-experimental")})

	cfg := render.DefaultConfig()
	logger := &recordingLogger{}
	m := New(g, evaluator.New(g), validation.NewValidator(), cfg, logger)
	elem, err := m.Materialize("r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := elem.Attributes["data-experimental"]; present {
		t.Errorf("invalid attribute should have been stripped")
	}
	if len(logger.warnings) != 1 {
		t.Fatalf("expected one warning, got %d: %v", len(logger.warnings), logger.warnings)
	}

	// Now allow it: no warning should be logged.
	cfg2 := render.DefaultConfig()
	cfg2.AllowedInvalid = []string{"data-experimental"}
	logger2 := &recordingLogger{}
	m2 := New(g, evaluator.New(g), validation.NewValidator(), cfg2, logger2)
	_, err = m2.Materialize("r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logger2.warnings) != 0 {
		t.Errorf("allowed-invalid attribute should not log a warning, got %v", logger2.warnings)
	}
}

func TestMaterialize_UnknownTagIsMalformedGraph(t *testing.T) {
	g := graph.NewGraph(1)
	mustAddNode(t, g, &graph.Node{ID: "n", Tag: tp("ellipse")})

	m := newMaterializer(g)
	_, err := m.Materialize("n")
	if !errors.Is(err, graph.ErrMalformedGraph) {
		t.Errorf("got %v, want ErrMalformedGraph", err)
	}
}

type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, format)
}
