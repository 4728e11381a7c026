package world

import (
	"github.com/nathoo/temple/engine/fov"
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/path"
	"github.com/nathoo/temple/types"
)

// Level is one depth of the dungeon: a map and everything on it.
// Entities refer to each other only by position or inventory slot.
type Level struct {
	Map        *Map        `json:"map"`
	Monsters   []*Monster  `json:"monsters"`
	Items      []Item      `json:"items"`
	Doors      []Door      `json:"doors"`
	Containers []Container `json:"containers"`
	Fountains  []Fountain  `json:"fountains"`
	Stairs     []Stairs    `json:"stairs"`
	Traps      []Trap      `json:"traps"`
}

// NewLevel returns an empty level over m.
func NewLevel(m *Map) *Level {
	return &Level{Map: m}
}

// Valid reports whether p lies on the map.
func (l *Level) Valid(p geo.Point) bool {
	return l.Map.Valid(p)
}

// Player returns the first monster of the player faction, or nil.
func (l *Level) Player() *Monster {
	for _, m := range l.Monsters {
		if m.Faction == types.FactionPlayer {
			return m
		}
	}
	return nil
}

// MonsterAt returns the monster standing at p, or nil. A monster killed
// this turn still occupies its cell until EraseDeadMonsters runs.
func (l *Level) MonsterAt(p geo.Point) *Monster {
	for _, m := range l.Monsters {
		if m.Pos == p {
			return m
		}
	}
	return nil
}

// ItemAt returns the index in Items of the first item lying at p.
func (l *Level) ItemAt(p geo.Point) (int, bool) {
	for i := range l.Items {
		if l.Items[i].Pos == p {
			return i, true
		}
	}
	return 0, false
}

// TakeItem removes Items[i] from the floor.
func (l *Level) TakeItem(i int) Item {
	it := l.Items[i]
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	return it
}

// DropItem places it on the floor at p.
func (l *Level) DropItem(it Item, p geo.Point) {
	it.Pos = p
	l.Items = append(l.Items, it)
}

// DoorAt returns the door at p, or nil.
func (l *Level) DoorAt(p geo.Point) *Door {
	for i := range l.Doors {
		if l.Doors[i].Pos == p {
			return &l.Doors[i]
		}
	}
	return nil
}

// ContainerAt returns the container at p, or nil.
func (l *Level) ContainerAt(p geo.Point) *Container {
	for i := range l.Containers {
		if l.Containers[i].Pos == p {
			return &l.Containers[i]
		}
	}
	return nil
}

// FountainAt returns the fountain at p, or nil.
func (l *Level) FountainAt(p geo.Point) *Fountain {
	for i := range l.Fountains {
		if l.Fountains[i].Pos == p {
			return &l.Fountains[i]
		}
	}
	return nil
}

// StairsAt returns the stairs at p, or nil.
func (l *Level) StairsAt(p geo.Point) *Stairs {
	for i := range l.Stairs {
		if l.Stairs[i].Pos == p {
			return &l.Stairs[i]
		}
	}
	return nil
}

// TrapAt returns the trap at p, or nil.
func (l *Level) TrapAt(p geo.Point) *Trap {
	for i := range l.Traps {
		if l.Traps[i].Pos == p {
			return &l.Traps[i]
		}
	}
	return nil
}

// Passable reports whether a monster could step onto p right now. Walls,
// closed doors, containers, fountains and monsters all block.
func (l *Level) Passable(p geo.Point) bool {
	if !l.Map.Cell(p).Passable {
		return false
	}
	if d := l.DoorAt(p); d != nil && !d.Passable() {
		return false
	}
	if l.ContainerAt(p) != nil || l.FountainAt(p) != nil {
		return false
	}
	return l.MonsterAt(p) == nil
}

// Transparent reports whether light passes through p. Only the terrain and
// closed doors matter.
func (l *Level) Transparent(p geo.Point) bool {
	if d := l.DoorAt(p); d != nil && !d.Transparent() {
		return false
	}
	return l.Map.Cell(p).Transparent
}

// SpriteAt returns the topmost sprite at p: a living monster, then items,
// containers, fountains, stairs, doors, traps and finally the terrain.
func (l *Level) SpriteAt(p geo.Point) types.Sprite {
	if m := l.MonsterAt(p); m != nil && m.Alive() {
		return m.Sprite
	}
	if i, ok := l.ItemAt(p); ok {
		return l.Items[i].Sprite
	}
	if c := l.ContainerAt(p); c != nil {
		return c.Sprite
	}
	if f := l.FountainAt(p); f != nil {
		return f.Sprite
	}
	if s := l.StairsAt(p); s != nil {
		return s.Sprite
	}
	if d := l.DoorAt(p); d != nil {
		return d.Sprite()
	}
	if t := l.TrapAt(p); t != nil {
		return t.Sprite
	}
	return l.Map.Cell(p).Sprite
}

// NameAt returns the name of whatever SpriteAt shows at p.
func (l *Level) NameAt(p geo.Point) string {
	if m := l.MonsterAt(p); m != nil && m.Alive() {
		return m.Name
	}
	if i, ok := l.ItemAt(p); ok {
		return l.Items[i].Name
	}
	if c := l.ContainerAt(p); c != nil {
		return c.Name
	}
	if f := l.FountainAt(p); f != nil {
		return f.Name
	}
	if s := l.StairsAt(p); s != nil {
		return s.Name
	}
	if d := l.DoorAt(p); d != nil {
		return d.Name
	}
	if t := l.TrapAt(p); t != nil {
		return t.Name
	}
	return l.Map.Cell(p).Name
}

// InvalidateFOV recomputes the Visible flag of every cell from viewer's
// position. For the player faction every visible cell also remembers its
// current sprite.
func (l *Level) InvalidateFOV(viewer *Monster) {
	l.Map.ResetVisibility()
	field := fov.Compute(l, viewer.Pos, viewer.Sight)
	for _, p := range field.Points() {
		props := l.Map.CellProps(p)
		props.Visible = true
		if viewer.Faction == types.FactionPlayer {
			props.SeenSprite = l.SpriteAt(p)
		}
	}
}

// CanSee reports whether viewer has a line of sight to p within its sight
// radius. The map is not touched.
func (l *Level) CanSee(viewer *Monster, p geo.Point) bool {
	return fov.Compute(l, viewer.Pos, viewer.Sight).Visible(p)
}

// FindPath returns the moves that walk from origin to target under the
// current passability rules.
func (l *Level) FindPath(origin, target geo.Point) []types.Command {
	steps := path.Find(origin, target, l.Passable)
	if len(steps) == 0 {
		return nil
	}
	cmds := make([]types.Command, len(steps))
	for i, s := range steps {
		cmds[i] = types.Command{Verb: types.VerbMove, Dir: s}
	}
	return cmds
}

// EraseDeadMonsters drops every dead monster, keeping the others in order.
func (l *Level) EraseDeadMonsters() {
	alive := l.Monsters[:0]
	for _, m := range l.Monsters {
		if m.Alive() {
			alive = append(alive, m)
		}
	}
	for i := len(alive); i < len(l.Monsters); i++ {
		l.Monsters[i] = nil
	}
	l.Monsters = alive
}

// Rand is the randomness the level needs for placement.
type Rand interface {
	Intn(n int) int
}

// Occupied reports whether anything other than terrain sits at p.
func (l *Level) Occupied(p geo.Point) bool {
	if _, ok := l.ItemAt(p); ok {
		return true
	}
	return l.MonsterAt(p) != nil || l.DoorAt(p) != nil || l.ContainerAt(p) != nil ||
		l.FountainAt(p) != nil || l.StairsAt(p) != nil || l.TrapAt(p) != nil
}

// RandomFreeCell picks a passable, unoccupied cell inside r. It gives up
// after r.Area() attempts.
func (l *Level) RandomFreeCell(r geo.Rect, rnd Rand) (geo.Point, bool) {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return geo.Point{}, false
	}
	for n := r.Area(); n > 0; n-- {
		p := geo.Pt(r.TopLeft.X+rnd.Intn(w), r.TopLeft.Y+rnd.Intn(h))
		if l.Passable(p) && !l.Occupied(p) {
			return p, true
		}
	}
	return geo.Point{}, false
}
