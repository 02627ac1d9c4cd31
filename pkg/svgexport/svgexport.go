// Package svgexport implements the SVG emitter (C8): it walks the
// scene tree the assembler (C6) produces and writes a well-formed SVG
// document via github.com/ajstarks/svgo, reusing the teacher's
// pkg/export/svg.go conventions (Start/End bracketing, a joined
// CSS-style string per shape call, SaveSVGToFile's 0644 file write)
// retargeted from dungeon visualisation to the generic
// rect/circle/path/group calls the renderer's scene tree produces.
// A placement transform rides as a separate literal XML attribute
// (see shapeArgs) rather than through the CSS-style string, since it
// must survive on path/g elements where no attribute feeds geometry.
package svgexport

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/svgraph/pkg/render"
	"github.com/dshills/svgraph/pkg/scene"
)

// Write renders the scene tree to w as a complete SVG document, sized
// and viewBox'd per cfg.Canvas.
func Write(root *scene.Node, cfg *render.Config, w *bytes.Buffer) error {
	if root == nil {
		return fmt.Errorf("svgexport: nil scene root")
	}
	canvas := svg.New(w)

	widthAttr := fmt.Sprintf("%gin", cfg.Canvas.PhysicalWidthIn)
	heightAttr := fmt.Sprintf("%gin", cfg.Canvas.PhysicalHeightIn)
	viewBox := fmt.Sprintf("viewBox=%q", fmt.Sprintf("%g %g %g %g",
		cfg.Canvas.DefaultX, cfg.Canvas.DefaultY, cfg.Canvas.DefaultWidth, cfg.Canvas.DefaultHeight))
	canvas.Start(
		int(cfg.Canvas.DefaultWidth), int(cfg.Canvas.DefaultHeight),
		fmt.Sprintf(`width=%q`, widthAttr), fmt.Sprintf(`height=%q`, heightAttr), viewBox,
	)

	for _, child := range root.Children {
		writeNode(canvas, child)
	}

	canvas.End()
	return nil
}

// SaveToFile renders the scene tree and writes it to path with 0644
// permissions, per the teacher's SaveSVGToFile convention.
func SaveToFile(root *scene.Node, cfg *render.Config, path string) error {
	buf := new(bytes.Buffer)
	if err := Write(root, cfg, buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func writeNode(canvas *svg.SVG, n *scene.Node) {
	if n.Elem == nil {
		return
	}
	args := shapeArgs(n.Elem.Attributes)

	switch n.Elem.Tag {
	case "rect":
		x, y, w, h := rectDims(n)
		canvas.Rect(x, y, w, h, args...)
	case "circle":
		cx, cy, r := circleDims(n)
		canvas.Circle(cx, cy, r, args...)
	case "path":
		canvas.Path(n.Elem.Attributes["d"], args...)
	case "g":
		canvas.Group(args...)
		for _, child := range n.Children {
			writeNode(canvas, child)
		}
		canvas.Gend()
	}
}

// shapeArgs builds the variadic argument list svgo's shape calls take:
// a placement transform (if present) passed as a literal name="value"
// XML attribute, which svgo's endstyle recognises by its "=" and
// writes out raw instead of folding into the style="..." declaration,
// followed by the joined CSS-style string for everything else. A
// "transform" CSS property on a non-zero translate() is invalid
// without length units, so it must travel as a real XML attribute,
// never through styleString.
func shapeArgs(attrs map[string]string) []string {
	args := make([]string, 0, 2)
	if t, ok := attrs["transform"]; ok && t != "" {
		args = append(args, fmt.Sprintf("transform=%q", t))
	}
	if style := styleString(attrs); style != "" {
		args = append(args, style)
	}
	return args
}

func rectDims(n *scene.Node) (x, y, w, h int) {
	x1, y1, x2, y2, ok := n.Elem.Box.Resolved()
	if !ok {
		return 0, 0, 0, 0
	}
	return int(x1), int(y1), int(x2 - x1), int(y2 - y1)
}

func circleDims(n *scene.Node) (cx, cy, r int) {
	x1, y1, x2, y2, ok := n.Elem.Box.Resolved()
	if !ok {
		return 0, 0, 0
	}
	return int((x1 + x2) / 2), int((y1 + y2) / 2), int((x2 - x1) / 2)
}

// styleString flattens an element's surviving attribute dictionary
// into one CSS-declaration-like string, the convention
// pkg/export/svg.go itself uses for every shape call. Keys affecting
// geometry (already consumed into the shape call's coordinates) are
// excluded, along with "transform": shapeArgs carries it separately
// as a raw XML attribute instead.
func styleString(attrs map[string]string) string {
	skip := map[string]bool{
		"x": true, "y": true, "width": true, "height": true,
		"cx": true, "cy": true, "r": true, "d": true,
		"transform": true,
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if !skip[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%s", k, attrs[k]))
	}
	return strings.Join(parts, ";")
}
