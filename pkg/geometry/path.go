package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors raised by the path simulator.
var (
	// ErrUnknownPathCommand is fatal for the affected path.
	ErrUnknownPathCommand = errors.New("unknown path command")

	// ErrTruncatedPath is raised when a command is followed by fewer
	// operands than it requires.
	ErrTruncatedPath = errors.New("truncated path data")
)

// Point is a single (x, y) pen position visited while walking a path.
type Point struct {
	X, Y float64
}

// tokenStream walks whitespace-separated path-data tokens. Commas and
// implicit-repeat operands are not handled: every operand must be its
// own whitespace-separated token, and every command occurrence consumes
// exactly its fixed arity before the next command letter is expected.
type tokenStream struct {
	tokens []string
	pos    int
}

func (s *tokenStream) next() (string, bool) {
	if s.pos >= len(s.tokens) {
		return "", false
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true
}

func (s *tokenStream) takeNums(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		tok, ok := s.next()
		if !ok {
			return nil, fmt.Errorf("%w: expected %d operand(s), got %d", ErrTruncatedPath, n, i)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: operand %q is not numeric: %v", ErrTruncatedPath, tok, err)
		}
		out[i] = v
	}
	return out, nil
}

// SimulatePath walks a path-data string and returns the ordered
// sequence of (x, y) points visited by the pen. Bézier and arc control
// handles are consumed (so the token stream stays in sync) but only
// their endpoints are yielded: their extrema are deliberately not
// tracked.
func SimulatePath(d string) ([]Point, error) {
	s := &tokenStream{tokens: strings.Fields(d)}

	var curX, curY float64
	var subStartX, subStartY float64
	var points []Point

	for {
		cmd, ok := s.next()
		if !ok {
			break
		}
		if len(cmd) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPathCommand, cmd)
		}

		switch cmd {
		case "M":
			n, err := s.takeNums(2)
			if err != nil {
				return nil, err
			}
			curX, curY = n[0], n[1]
			subStartX, subStartY = curX, curY
			points = append(points, Point{curX, curY})
		case "m":
			n, err := s.takeNums(2)
			if err != nil {
				return nil, err
			}
			curX, curY = curX+n[0], curY+n[1]
			subStartX, subStartY = curX, curY
			points = append(points, Point{curX, curY})
		case "L":
			n, err := s.takeNums(2)
			if err != nil {
				return nil, err
			}
			curX, curY = n[0], n[1]
			points = append(points, Point{curX, curY})
		case "l":
			n, err := s.takeNums(2)
			if err != nil {
				return nil, err
			}
			curX, curY = curX+n[0], curY+n[1]
			points = append(points, Point{curX, curY})
		case "H":
			n, err := s.takeNums(1)
			if err != nil {
				return nil, err
			}
			curX = n[0]
			points = append(points, Point{curX, curY})
		case "h":
			n, err := s.takeNums(1)
			if err != nil {
				return nil, err
			}
			curX += n[0]
			points = append(points, Point{curX, curY})
		case "V":
			n, err := s.takeNums(1)
			if err != nil {
				return nil, err
			}
			curY = n[0]
			points = append(points, Point{curX, curY})
		case "v":
			n, err := s.takeNums(1)
			if err != nil {
				return nil, err
			}
			curY += n[0]
			points = append(points, Point{curX, curY})
		case "Z", "z":
			curX, curY = subStartX, subStartY
			points = append(points, Point{curX, curY})
		case "C":
			n, err := s.takeNums(6)
			if err != nil {
				return nil, err
			}
			curX, curY = n[4], n[5]
			points = append(points, Point{curX, curY})
		case "c":
			n, err := s.takeNums(6)
			if err != nil {
				return nil, err
			}
			curX, curY = curX+n[4], curY+n[5]
			points = append(points, Point{curX, curY})
		case "Q":
			n, err := s.takeNums(4)
			if err != nil {
				return nil, err
			}
			curX, curY = n[2], n[3]
			points = append(points, Point{curX, curY})
		case "q":
			n, err := s.takeNums(4)
			if err != nil {
				return nil, err
			}
			curX, curY = curX+n[2], curY+n[3]
			points = append(points, Point{curX, curY})
		case "A":
			n, err := s.takeNums(7)
			if err != nil {
				return nil, err
			}
			curX, curY = n[5], n[6]
			points = append(points, Point{curX, curY})
		case "a":
			n, err := s.takeNums(7)
			if err != nil {
				return nil, err
			}
			curX, curY = curX+n[5], curY+n[6]
			points = append(points, Point{curX, curY})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownPathCommand, cmd)
		}
	}

	return points, nil
}

// PathBoundingBox walks d and returns the min/max bounding box of every
// visited point. An empty path yields an empty (all-unset) box.
func PathBoundingBox(d string) (BoundingBox, error) {
	points, err := SimulatePath(d)
	if err != nil {
		return BoundingBox{}, err
	}

	box := NewGroup()
	for _, p := range points {
		box = box.Union(BoundingBox{X1: f(p.X), Y1: f(p.Y), X2: f(p.X), Y2: f(p.Y)})
	}
	return box, nil
}
