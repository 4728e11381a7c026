package gen

import (
	"log"

	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

// Layouts are the room orders a level may use. Layout a moves grid room i
// (row-major) to position a[i]; in every layout consecutive positions hold
// rooms that touch on the 3x3 grid.
var Layouts = [32][9]int{
	{8, 1, 2, 7, 0, 3, 6, 5, 4},
	{6, 7, 8, 5, 0, 1, 4, 3, 2},
	{4, 5, 6, 3, 0, 7, 2, 1, 8},
	{2, 3, 4, 1, 0, 5, 8, 7, 6},
	{2, 1, 8, 3, 0, 7, 4, 5, 6},
	{8, 7, 6, 1, 0, 5, 2, 3, 4},
	{6, 5, 4, 7, 0, 3, 8, 1, 2},
	{4, 3, 2, 5, 0, 1, 6, 7, 8},
	{0, 1, 2, 5, 4, 3, 6, 7, 8},
	{0, 1, 2, 7, 6, 3, 8, 5, 4},
	{0, 1, 2, 7, 8, 3, 6, 5, 4},
	{0, 5, 6, 1, 4, 7, 2, 3, 8},
	{0, 7, 8, 1, 6, 5, 2, 3, 4},
	{0, 7, 6, 1, 8, 5, 2, 3, 4},
	{6, 7, 8, 5, 4, 3, 0, 1, 2},
	{8, 5, 4, 7, 6, 3, 0, 1, 2},
	{6, 5, 4, 7, 8, 3, 0, 1, 2},
	{2, 3, 8, 1, 4, 7, 0, 5, 6},
	{2, 3, 4, 1, 6, 5, 0, 7, 8},
	{2, 3, 4, 1, 8, 5, 0, 7, 6},
	{2, 1, 0, 3, 4, 5, 8, 7, 6},
	{2, 1, 0, 3, 6, 7, 4, 5, 8},
	{2, 1, 0, 3, 8, 7, 4, 5, 6},
	{6, 5, 0, 7, 4, 1, 8, 3, 2},
	{8, 7, 0, 5, 6, 1, 4, 3, 2},
	{6, 7, 0, 5, 8, 1, 4, 3, 2},
	{8, 7, 6, 3, 4, 5, 2, 1, 0},
	{4, 5, 8, 3, 6, 7, 2, 1, 0},
	{4, 5, 6, 3, 8, 7, 2, 1, 0},
	{8, 3, 2, 7, 4, 1, 6, 5, 0},
	{4, 3, 2, 5, 6, 1, 8, 7, 0},
	{4, 3, 2, 5, 8, 1, 6, 7, 0},
}

// GridRooms splits a width x height map into a 3x3 grid and returns one
// room per grid cell, row-major. Each room is inset by a random margin of
// at most a quarter of its grid cell, so rooms never touch and rooms next
// to each other always overlap across the gap between them.
func GridRooms(width, height int, rnd Rand) []geo.Rect {
	cw, ch := width/3, height/3
	rooms := make([]geo.Rect, 0, 9)
	for gy := 0; gy < 3; gy++ {
		for gx := 0; gx < 3; gx++ {
			x0, y0 := gx*cw, gy*ch
			rooms = append(rooms, geo.Rc(
				x0+1+intn(rnd, cw/4),
				y0+1+intn(rnd, ch/4),
				x0+cw-2-intn(rnd, cw/4),
				y0+ch-2-intn(rnd, ch/4),
			))
		}
	}
	return rooms
}

// ShuffleRooms reorders nine grid rooms with a uniformly chosen layout.
func ShuffleRooms(rooms []geo.Rect, rnd Rand) []geo.Rect {
	layout := Layouts[rnd.Intn(len(Layouts))]
	shuffled := make([]geo.Rect, len(rooms))
	for i, r := range rooms {
		shuffled[layout[i]] = r
	}
	return shuffled
}

// FillRoom sets every cell of the inclusive rectangle room to cellType.
func FillRoom(m *world.Map, room geo.Rect, cellType int) {
	m.Fill(room, cellType)
}

// ConnectRooms carves a straight corridor of cellType between two rooms
// that are separated along one axis and overlap along the other. The
// corridor runs along a random line inside the overlap. It returns the
// corridor's end cells, the one next to a first.
func ConnectRooms(m *world.Map, a, b geo.Rect, cellType int, rnd Rand) (geo.Point, geo.Point) {
	switch {
	case a.BottomRight.X < b.TopLeft.X:
		y := through(a.TopLeft.Y, a.BottomRight.Y, b.TopLeft.Y, b.BottomRight.Y, rnd)
		for x := a.BottomRight.X + 1; x < b.TopLeft.X; x++ {
			m.SetCellType(geo.Pt(x, y), cellType)
		}
		return geo.Pt(a.BottomRight.X+1, y), geo.Pt(b.TopLeft.X-1, y)
	case b.BottomRight.X < a.TopLeft.X:
		y := through(a.TopLeft.Y, a.BottomRight.Y, b.TopLeft.Y, b.BottomRight.Y, rnd)
		for x := b.BottomRight.X + 1; x < a.TopLeft.X; x++ {
			m.SetCellType(geo.Pt(x, y), cellType)
		}
		return geo.Pt(a.TopLeft.X-1, y), geo.Pt(b.BottomRight.X+1, y)
	case a.BottomRight.Y < b.TopLeft.Y:
		x := through(a.TopLeft.X, a.BottomRight.X, b.TopLeft.X, b.BottomRight.X, rnd)
		for y := a.BottomRight.Y + 1; y < b.TopLeft.Y; y++ {
			m.SetCellType(geo.Pt(x, y), cellType)
		}
		return geo.Pt(x, a.BottomRight.Y+1), geo.Pt(x, b.TopLeft.Y-1)
	default:
		x := through(a.TopLeft.X, a.BottomRight.X, b.TopLeft.X, b.BottomRight.X, rnd)
		for y := b.BottomRight.Y + 1; y < a.TopLeft.Y; y++ {
			m.SetCellType(geo.Pt(x, y), cellType)
		}
		return geo.Pt(x, a.TopLeft.Y-1), geo.Pt(x, b.BottomRight.Y+1)
	}
}

// through picks a coordinate in the overlap of [a1,a2] and [b1,b2], never
// the far edge of the overlap unless the overlap is a single line.
func through(a1, a2, b1, b2 int, rnd Rand) int {
	start := max(a1, b1)
	stop := min(a2, b2)
	return start + intn(rnd, stop-start)
}

// RandomPos picks a random passable cell of room, trying as many times as
// the room has area. It falls back to the room's top-left corner.
func RandomPos(level *world.Level, room geo.Rect, rnd Rand) geo.Point {
	w, h := room.Width(), room.Height()
	if w <= 0 || h <= 0 {
		return room.TopLeft
	}
	for counter := w * h; counter > 0; counter-- {
		p := geo.Pt(room.TopLeft.X+rnd.Intn(w), room.TopLeft.Y+rnd.Intn(h))
		if level.Passable(p) {
			return p
		}
	}
	return room.TopLeft
}

// PopPlayerFront moves the first player-faction monster to index 0.
func PopPlayerFront(monsters []*world.Monster) {
	for i, m := range monsters {
		if m.Faction == types.FactionPlayer {
			monsters[0], monsters[i] = monsters[i], monsters[0]
			log.Printf("Player found.")
			return
		}
	}
	log.Printf("Player not found.")
}

func intn(rnd Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rnd.Intn(n)
}
