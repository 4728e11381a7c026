// Package world holds the dungeon model: the cell map, the entities that
// live on it, and the Level that ties them together.
package world

import (
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/types"
)

// CellType is the immutable description of a kind of terrain.
type CellType struct {
	Name        string       `json:"name"`
	Sprite      types.Sprite `json:"sprite"`
	Passable    bool         `json:"passable"`
	Transparent bool         `json:"transparent"`
}

// CellProps is the runtime state of a single cell.
type CellProps struct {
	Visible    bool         `json:"visible"`
	SeenSprite types.Sprite `json:"seen_sprite"`
}

// Map is a width x height grid. Each cell refers to an entry of Types and
// carries its own CellProps.
type Map struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Types  []CellType  `json:"types"`
	Cells  []int       `json:"cells"`
	Props  []CellProps `json:"props"`
}

// NewMap creates a map filled with fill. Dimensions below 1 are raised to 1.
func NewMap(width, height int, fill CellType) *Map {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Map{
		Width:  width,
		Height: height,
		Types:  []CellType{fill},
		Cells:  make([]int, width*height),
		Props:  make([]CellProps, width*height),
	}
}

// Valid reports whether p lies inside the map.
func (m *Map) Valid(p geo.Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// Bounds returns the inclusive rectangle covering the whole map.
func (m *Map) Bounds() geo.Rect {
	return geo.Rc(0, 0, m.Width-1, m.Height-1)
}

func (m *Map) index(p geo.Point) int {
	return p.Y*m.Width + p.X
}

// Cell returns the type of the cell at p. Cells off the map are the zero
// CellType: impassable, opaque and nameless.
func (m *Map) Cell(p geo.Point) CellType {
	if !m.Valid(p) {
		return CellType{}
	}
	idx := m.Cells[m.index(p)]
	if idx < 0 || idx >= len(m.Types) {
		return CellType{}
	}
	return m.Types[idx]
}

// TypeIndex returns the type table index of the cell at p, or -1 off the map.
func (m *Map) TypeIndex(p geo.Point) int {
	if !m.Valid(p) {
		return -1
	}
	return m.Cells[m.index(p)]
}

// AddCellType registers ct in the type table and returns its index. An
// identical type already in the table is reused.
func (m *Map) AddCellType(ct CellType) int {
	for i, t := range m.Types {
		if t == ct {
			return i
		}
	}
	m.Types = append(m.Types, ct)
	return len(m.Types) - 1
}

// SetCellType points the cell at p to the type table entry idx. It is a
// no-op off the map or for an unknown index.
func (m *Map) SetCellType(p geo.Point, idx int) {
	if !m.Valid(p) || idx < 0 || idx >= len(m.Types) {
		return
	}
	m.Cells[m.index(p)] = idx
}

// Fill sets every cell of the inclusive rectangle r to type idx. Parts of r
// off the map are ignored.
func (m *Map) Fill(r geo.Rect, idx int) {
	for x := r.TopLeft.X; x <= r.BottomRight.X; x++ {
		for y := r.TopLeft.Y; y <= r.BottomRight.Y; y++ {
			m.SetCellType(geo.Pt(x, y), idx)
		}
	}
}

// CellProps returns the runtime properties of the cell at p, or nil off the
// map.
func (m *Map) CellProps(p geo.Point) *CellProps {
	if !m.Valid(p) {
		return nil
	}
	return &m.Props[m.index(p)]
}

// ResetVisibility clears the Visible flag of every cell.
func (m *Map) ResetVisibility() {
	for i := range m.Props {
		m.Props[i].Visible = false
	}
}
