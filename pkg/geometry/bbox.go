// Package geometry implements the bounding-box algebra (C1) and the
// vector path-data simulator (C2): rectangle/circle/group/path
// constructors, box union, translation, and affine-transform-string
// application to a box's corners.
package geometry

import "math"

// BoundingBox is a quadruple (x1, y1, x2, y2) with x1<=x2, y1<=y2, or
// any of the four coordinates unset (nil), meaning "empty" on that
// axis. A freshly constructed Group box has all four unset and grows
// monotonically as children are unioned in.
type BoundingBox struct {
	X1, Y1, X2, Y2 *float64
}

func f(v float64) *float64 { return &v }

// Rectangle builds the box (x, y, x+w, y+h).
func Rectangle(x, y, w, h float64) BoundingBox {
	return BoundingBox{X1: f(x), Y1: f(y), X2: f(x + w), Y2: f(y + h)}
}

// Circle builds the box (cx-r, cy-r, cx+r, cy+r).
func Circle(cx, cy, r float64) BoundingBox {
	return BoundingBox{X1: f(cx - r), Y1: f(cy - r), X2: f(cx + r), Y2: f(cy + r)}
}

// NewGroup builds an all-unset box that grows monotonically via Union.
func NewGroup() BoundingBox {
	return BoundingBox{}
}

// IsEmpty reports whether every coordinate is unset.
func (b BoundingBox) IsEmpty() bool {
	return b.X1 == nil && b.Y1 == nil && b.X2 == nil && b.Y2 == nil
}

// Resolved returns the box's four coordinates as concrete float64s and
// true, or false if any coordinate is unset. The placement solver and
// the SVG emitter both require a fully resolved box.
func (b BoundingBox) Resolved() (x1, y1, x2, y2 float64, ok bool) {
	if b.X1 == nil || b.Y1 == nil || b.X2 == nil || b.Y2 == nil {
		return 0, 0, 0, 0, false
	}
	return *b.X1, *b.Y1, *b.X2, *b.Y2, true
}

func noneMin(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return f(math.Min(*a, *b))
	}
}

func noneMax(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return f(math.Max(*a, *b))
	}
}

// Union expands this box by pointwise min on the lower corner and max
// on the upper corner, treating unset coordinates as absent: an unset
// coordinate on either side is replaced by the other's value.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		X1: noneMin(b.X1, other.X1),
		Y1: noneMin(b.Y1, other.Y1),
		X2: noneMax(b.X2, other.X2),
		Y2: noneMax(b.Y2, other.Y2),
	}
}

// Translate adds dx to x1/x2 and dy to y1/y2. Unset coordinates stay
// unset.
func (b BoundingBox) Translate(dx, dy float64) BoundingBox {
	out := b
	if b.X1 != nil {
		out.X1 = f(*b.X1 + dx)
	}
	if b.X2 != nil {
		out.X2 = f(*b.X2 + dx)
	}
	if b.Y1 != nil {
		out.Y1 = f(*b.Y1 + dy)
	}
	if b.Y2 != nil {
		out.Y2 = f(*b.Y2 + dy)
	}
	return out
}

// Scale multiplies both corners by (sx, sy) around the origin. If a
// negative factor flips x1>x2 or y1>y2, the corners are swapped so the
// invariant x1<=x2, y1<=y2 is restored. Per spec: a negative scale
// flips only the bounding box, never the underlying element geometry.
func (b BoundingBox) Scale(sx, sy float64) BoundingBox {
	out := b
	if b.X1 != nil && b.X2 != nil {
		nx1, nx2 := *b.X1*sx, *b.X2*sx
		if nx1 > nx2 {
			nx1, nx2 = nx2, nx1
		}
		out.X1, out.X2 = f(nx1), f(nx2)
	}
	if b.Y1 != nil && b.Y2 != nil {
		ny1, ny2 := *b.Y1*sy, *b.Y2*sy
		if ny1 > ny2 {
			ny1, ny2 = ny2, ny1
		}
		out.Y1, out.Y2 = f(ny1), f(ny2)
	}
	return out
}
