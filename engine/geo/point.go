// Package geo provides the integer grid arithmetic shared by the map,
// the visibility engine, the pathfinder and the level generator.
package geo

import "fmt"

// Pt is a convenience constructor for Point.
func Pt(x, y int) Point { return Point{x, y} }

// Point is a cell coordinate or a displacement between cells.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Zero is the origin, the zero value of Point. It is a real coordinate;
// absence is never encoded as Zero.
var Zero = Point{}

// IsZero reports whether both components are zero. Only meaningful for
// displacements: a zero shift means "no direction".
func (pt Point) IsZero() bool {
	return pt.X == 0 && pt.Y == 0
}

// Add adds another point's values to a copy of this point, returning the copy.
func (pt Point) Add(other Point) Point {
	pt.X += other.X
	pt.Y += other.Y
	return pt
}

// Sub subtracts another point's values from a copy of this point, returning
// the copy.
func (pt Point) Sub(other Point) Point {
	pt.X -= other.X
	pt.Y -= other.Y
	return pt
}

// Div divides a copy of this point's values by a constant, returning the copy.
func (pt Point) Div(n int) Point {
	pt.X /= n
	pt.Y /= n
	return pt
}

// Mul multiplies a copy of this point's values by a constant, returning the
// copy.
func (pt Point) Mul(n int) Point {
	pt.X *= n
	pt.Y *= n
	return pt
}

// Abs returns a copy of this point with its values non-negative.
func (pt Point) Abs() Point {
	if pt.X < 0 {
		pt.X = -pt.X
	}
	if pt.Y < 0 {
		pt.Y = -pt.Y
	}
	return pt
}

// Sign returns a copy of this point reduced to the values -1, 0, or 1
// depending on the sign of the original values.
func (pt Point) Sign() Point {
	pt.X = sign(pt.X)
	pt.Y = sign(pt.Y)
	return pt
}

// SumSQ returns the sum-of-squared components.
func (pt Point) SumSQ() int {
	return pt.X*pt.X + pt.Y*pt.Y
}

// Adjacent reports whether other is one of the eight cells around pt.
// A point is not adjacent to itself.
func (pt Point) Adjacent(other Point) bool {
	d := other.Sub(pt).Abs()
	return d.X <= 1 && d.Y <= 1 && !d.IsZero()
}

func (pt Point) String() string {
	return fmt.Sprintf("(%d, %d)", pt.X, pt.Y)
}

// Neighbours lists the eight unit shifts in the fixed order used by every
// search in the engine: x from -1 to 1, then y from -1 to 1, skipping the
// zero shift. Reproducible paths depend on this order.
var Neighbours = func() []Point {
	shifts := make([]Point, 0, 8)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			if x == 0 && y == 0 {
				continue
			}
			shifts = append(shifts, Point{x, y})
		}
	}
	return shifts
}()

func sign(i int) int {
	if i < 0 {
		return -1
	}
	if i > 0 {
		return 1
	}
	return 0
}
