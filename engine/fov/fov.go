// Package fov computes what a viewer can see from a cell.
//
// Sight is a disc of integer Euclidean radius. Every cell of the disc is
// tested with a traced line from the viewer; the cell is visible when every
// cell on the line before it, viewer included, lets light through.
package fov

import (
	"math"

	"github.com/nathoo/temple/engine/geo"
)

// Scene is the part of a level the visibility engine needs.
type Scene interface {
	Valid(p geo.Point) bool
	Transparent(p geo.Point) bool
}

// Field is the result of one visibility computation.
type Field struct {
	origin geo.Point
	sight  int
	side   int
	cells  []bool
}

// Compute returns the cells visible from origin within sight. An origin off
// the scene sees nothing; a negative sight is treated as zero.
func Compute(scene Scene, origin geo.Point, sight int) *Field {
	if sight < 0 {
		sight = 0
	}
	side := 2*sight + 1
	f := &Field{
		origin: origin,
		sight:  sight,
		side:   side,
		cells:  make([]bool, side*side),
	}
	if !scene.Valid(origin) {
		return f
	}
	for dy := -sight; dy <= sight; dy++ {
		for dx := -sight; dx <= sight; dx++ {
			p := origin.Add(geo.Pt(dx, dy))
			if !scene.Valid(p) {
				continue
			}
			if distance(dx, dy) > sight {
				continue
			}
			if LineOfSight(scene, origin, p) {
				f.cells[(dy+sight)*side+dx+sight] = true
			}
		}
	}
	return f
}

// Visible reports whether p was found visible.
func (f *Field) Visible(p geo.Point) bool {
	d := p.Sub(f.origin)
	if d.X < -f.sight || d.X > f.sight || d.Y < -f.sight || d.Y > f.sight {
		return false
	}
	return f.cells[(d.Y+f.sight)*f.side+d.X+f.sight]
}

// Points lists visible cells in scan order, top row first.
func (f *Field) Points() []geo.Point {
	var pts []geo.Point
	for i, ok := range f.cells {
		if !ok {
			continue
		}
		pts = append(pts, f.origin.Add(geo.Pt(i%f.side-f.sight, i/f.side-f.sight)))
	}
	return pts
}

// LineOfSight traces a line from one cell to another, stepping along the
// longer axis and moving on the shorter one whenever the accumulated error
// passes one half. It reports whether every traced cell before the target is
// transparent. The target itself is never tested.
func LineOfSight(scene Scene, from, to geo.Point) bool {
	dx := to.X - from.X
	dy := to.Y - from.Y
	ix, iy := step(dx), step(dy)
	adx, ady := abs(dx), abs(dy)

	if adx > ady {
		delta := float64(ady) / float64(adx)
		acc := 0.0
		y := from.Y
		for x := from.X; x != to.X; x += ix {
			if !scene.Transparent(geo.Pt(x, y)) {
				return false
			}
			acc += delta
			if acc > 0.5 {
				y += iy
				acc -= 1.0
			}
		}
		return true
	}

	if ady == 0 {
		return true
	}
	delta := float64(adx) / float64(ady)
	acc := 0.0
	x := from.X
	for y := from.Y; y != to.Y; y += iy {
		if !scene.Transparent(geo.Pt(x, y)) {
			return false
		}
		acc += delta
		if acc > 0.5 {
			x += ix
			acc -= 1.0
		}
	}
	return true
}

func distance(dx, dy int) int {
	return int(math.Sqrt(float64(dx*dx + dy*dy)))
}

func step(d int) int {
	if d > 0 {
		return 1
	}
	return -1
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
