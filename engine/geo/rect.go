package geo

// Rc is a convenience constructor for Rect.
func Rc(x1, y1, x2, y2 int) Rect {
	return Rect{Point{x1, y1}, Point{x2, y2}}
}

// Rect is an inclusive rectangle of cells: both corners belong to it.
// Rooms and corridors are Rects.
type Rect struct {
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

// Width returns the distance between the left and right edges. An
// inclusive rect spans Width()+1 columns.
func (r Rect) Width() int { return r.BottomRight.X - r.TopLeft.X }

// Height returns the distance between the top and bottom edges.
func (r Rect) Height() int { return r.BottomRight.Y - r.TopLeft.Y }

// Area is Width*Height, the number of rejection-sampling attempts the
// generator allows for a room.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Center returns the middle cell, rounded towards the top-left corner.
func (r Rect) Center() Point {
	return r.TopLeft.Add(r.BottomRight.Sub(r.TopLeft).Div(2))
}

// Contains returns true if a given point is inside the rect, edges included.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.TopLeft.X && pt.X <= r.BottomRight.X &&
		pt.Y >= r.TopLeft.Y && pt.Y <= r.BottomRight.Y
}

// Add returns a copy of the rect with the given point added to the corners.
func (r Rect) Add(pt Point) Rect {
	r.TopLeft = r.TopLeft.Add(pt)
	r.BottomRight = r.BottomRight.Add(pt)
	return r
}
