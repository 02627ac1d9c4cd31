package geometry

import (
	"strconv"
	"strings"

	"github.com/dshills/svgraph/pkg/render"
)

// recognizedPrimitives are the transform-function names the grammar
// accepts. translate/scale are applied to the bounding box; skewX,
// skewY, and rotate parse but are never applied (spec: the bounding
// box only tracks axis-aligned translation and scale).
var appliedPrimitives = map[string]bool{
	"translate": true,
	"scale":     true,
}

var recognizedPrimitives = map[string]bool{
	"translate": true,
	"scale":     true,
	"skewX":     true,
	"skewY":     true,
	"rotate":    true,
}

type transformPrimitive struct {
	name string
	args []float64
}

// parseTransforms splits a transform-list string ("translate(1, 2)
// scale(3 4)") into its individual primitives, in written order. A
// primitive that is malformed, has an unrecognized name, or has
// non-numeric arguments is dropped with a warning rather than aborting
// the whole list. Argument counts are not checked here.
func parseTransforms(s string, logger render.Logger) []transformPrimitive {
	var out []transformPrimitive

	for _, raw := range splitPrimitives(s) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		open := strings.IndexByte(raw, '(')
		if open < 0 || !strings.HasSuffix(raw, ")") {
			logger.Warnf("geometry: unparseable transform primitive %q, skipping", raw)
			continue
		}
		name := strings.TrimSpace(raw[:open])
		if !recognizedPrimitives[name] {
			logger.Warnf("geometry: unknown transform function %q, skipping", name)
			continue
		}
		argStr := raw[open+1 : len(raw)-1]
		args, err := parseArgs(argStr)
		if err != nil {
			logger.Warnf("geometry: unparseable arguments for %q: %v, skipping", name, err)
			continue
		}
		out = append(out, transformPrimitive{name: name, args: args})
	}

	return out
}

// splitPrimitives breaks a transform-list string into one substring
// per "name(...)" primitive, tolerating whitespace between them. Any
// non-blank trailing text that does not close a primitive is returned
// as a final substring so that parseTransforms reports it.
func splitPrimitives(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				out = append(out, s[start:i+1])
				start = i + 1
			}
		}
	}
	if strings.TrimSpace(s[start:]) != "" {
		out = append(out, s[start:])
	}
	return out
}

func parseArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	args := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// ApplyTransform applies the transform-list string transform to box,
// primitive-by-primitive in reverse written order (matching SVG's
// transform composition: the rightmost primitive applies first).
// Unparseable or unrecognized primitives are dropped with a
// render.Logger warning rather than aborting the whole transform; a
// nil logger falls back to render.Discard.
func ApplyTransform(box BoundingBox, transform string, logger render.Logger) BoundingBox {
	if logger == nil {
		logger = render.Discard
	}
	if strings.TrimSpace(transform) == "" {
		return box
	}

	primitives := parseTransforms(transform, logger)
	out := box
	for i := len(primitives) - 1; i >= 0; i-- {
		p := primitives[i]
		if !appliedPrimitives[p.name] {
			continue
		}
		switch p.name {
		case "translate":
			dx, dy := translateArgs(p.args)
			out = out.Translate(dx, dy)
		case "scale":
			sx, sy := scaleArgs(p.args)
			out = out.Scale(sx, sy)
		}
	}
	return out
}

// translateArgs applies SVG's one-argument shorthand: translate(tx)
// means translate(tx, 0).
func translateArgs(args []float64) (dx, dy float64) {
	if len(args) == 0 {
		return 0, 0
	}
	if len(args) == 1 {
		return args[0], 0
	}
	return args[0], args[1]
}

// scaleArgs applies SVG's one-argument shorthand: scale(s) means
// scale(s, s).
func scaleArgs(args []float64) (sx, sy float64) {
	if len(args) == 0 {
		return 1, 1
	}
	if len(args) == 1 {
		return args[0], args[0]
	}
	return args[0], args[1]
}
