// Package gen builds dungeon levels: nine rooms on a 3x3 grid, shuffled by
// one of the fixed layouts, chained with straight corridors and populated
// from the content registry.
package gen

import (
	"log"

	"github.com/nathoo/temple/engine/content"
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/world"
)

// Rand is the randomness generation draws from. The engine's RNG
// satisfies it.
type Rand interface {
	Intn(n int) int
	WeightedSelect(weights []int) int
}

// Generator builds levels from a content registry.
type Generator struct {
	reg *content.Registry
}

// New returns a generator for reg.
func New(reg *content.Registry) *Generator {
	return &Generator{reg: reg}
}

// Deepest returns the index of the last level.
func (g *Generator) Deepest() int {
	return g.reg.Dungeon.Depth - 1
}

// Generate builds level index. The player stands on the up stairs of the
// first room.
func (g *Generator) Generate(index int, rnd Rand) *world.Level {
	log.Printf("Generating level %d...", index)
	d := g.reg.Dungeon

	wall, _ := g.reg.Cell(d.Wall)
	floorType, _ := g.reg.Cell(d.Floor)
	corridorType, ok := g.reg.Cell(d.Corridor)
	if !ok {
		corridorType = floorType
	}

	m := world.NewMap(d.Width, d.Height, wall)
	floor := m.AddCellType(floorType)
	corridor := m.AddCellType(corridorType)
	level := world.NewLevel(m)

	rooms := ShuffleRooms(GridRooms(m.Width, m.Height, rnd), rnd)
	for _, room := range rooms {
		FillRoom(m, room, floor)
	}
	var ends [][2]geo.Point
	for i := 0; i+1 < len(rooms); i++ {
		a, b := ConnectRooms(m, rooms[i], rooms[i+1], corridor, rnd)
		ends = append(ends, [2]geo.Point{a, b})
	}

	p := &populator{reg: g.reg, level: level, rooms: rooms, rnd: rnd, index: index, deepest: index >= g.Deepest()}
	p.stairs()
	p.player()
	p.doors(ends)
	p.fixtures()
	p.monsters()
	p.items()
	p.quest()

	PopPlayerFront(level.Monsters)
	log.Printf("Done.")
	return level
}

type populator struct {
	reg     *content.Registry
	level   *world.Level
	rooms   []geo.Rect
	rnd     Rand
	index   int
	deepest bool
	start   geo.Point
}

func (p *populator) free(room geo.Rect) (geo.Point, bool) {
	return p.level.RandomFreeCell(room, p.rnd)
}

// inner picks one of the rooms between the first and the last.
func (p *populator) inner() geo.Rect {
	return p.rooms[1+p.rnd.Intn(len(p.rooms)-2)]
}

func (p *populator) stairs() {
	d := p.reg.Dungeon
	up, _ := p.reg.Object(d.StairsUp)
	p.start = RandomPos(p.level, p.rooms[0], p.rnd)
	p.level.Stairs = append(p.level.Stairs, world.Stairs{
		Pos:           p.start,
		Sprite:        up.Sprite,
		Name:          up.Name,
		GoesUp:        true,
		UpDestination: p.index - 1,
	})
	if p.deepest {
		return
	}
	down, _ := p.reg.Object(d.StairsDown)
	last := p.rooms[len(p.rooms)-1]
	pos, ok := p.free(last)
	if !ok {
		pos = RandomPos(p.level, last, p.rnd)
	}
	p.level.Stairs = append(p.level.Stairs, world.Stairs{
		Pos:             pos,
		Sprite:          down.Sprite,
		Name:            down.Name,
		GoesDown:        true,
		DownDestination: p.index + 1,
	})
}

func (p *populator) player() {
	m, ok := p.reg.NewMonster(p.reg.Dungeon.Player)
	if !ok {
		return
	}
	m.Pos = p.start
	p.level.Monsters = append(p.level.Monsters, m)
}

// doors puts a closed door at the far end of every other corridor. On the
// deepest level the corridor into the last room always gets one, locked by
// chance, with its key dropped in an earlier room.
func (p *populator) doors(ends [][2]geo.Point) {
	d := p.reg.Dungeon
	tmpl, ok := p.reg.Object(d.Door)
	if !ok {
		return
	}
	for i, end := range ends {
		last := i == len(ends)-1
		if !(last && p.deepest) && p.rnd.Intn(2) != 0 {
			continue
		}
		door := world.Door{
			Pos:          end[1],
			Name:         tmpl.Name,
			OpenedSprite: tmpl.OpenedSprite,
			ClosedSprite: tmpl.ClosedSprite,
		}
		if last && p.deepest && p.rnd.Intn(100) < d.LockedDoors {
			if key, ok := p.reg.NewItem(d.Key); ok {
				door.Locked = true
				door.LockType = i + 1
				key.KeyType = door.LockType
				if pos, ok := p.free(p.rooms[p.rnd.Intn(i+1)]); ok {
					p.level.DropItem(key, pos)
				} else {
					door.Locked = false
				}
			}
		}
		p.level.Doors = append(p.level.Doors, door)
	}
}

func (p *populator) fixtures() {
	d := p.reg.Dungeon
	if tmpl, ok := p.reg.Object(d.Fountain); ok {
		if pos, ok := p.free(p.inner()); ok {
			p.level.Fountains = append(p.level.Fountains, world.Fountain{Pos: pos, Sprite: tmpl.Sprite, Name: tmpl.Name})
		}
	}
	if tmpl, ok := p.reg.Object(d.Container); ok {
		if pos, ok := p.free(p.inner()); ok {
			c := world.Container{Pos: pos, Sprite: tmpl.Sprite, Name: tmpl.Name}
			for _, id := range tmpl.Loot {
				if it, ok := p.reg.NewItem(id); ok {
					c.Items = append(c.Items, it)
				}
			}
			p.level.Containers = append(p.level.Containers, c)
		}
	}
	if tmpl, ok := p.reg.Object(d.Trap); ok {
		for i := 0; i < d.Traps; i++ {
			pos, ok := p.free(p.inner())
			if !ok {
				continue
			}
			trap := world.Trap{Pos: pos, Sprite: tmpl.Sprite, Name: tmpl.Name}
			if bolt, ok := p.reg.NewItem(tmpl.Bolt); ok {
				trap.Bolt = &bolt
			}
			p.level.Traps = append(p.level.Traps, trap)
		}
	}
}

// rolls expands the spawn entries of kind for this depth into picks.
func (p *populator) rolls(kind content.SpawnKind) []content.Spawn {
	spawns := p.reg.SpawnsFor(kind, p.index)
	if len(spawns) == 0 {
		return nil
	}
	weights := make([]int, len(spawns))
	total := 0
	for i, s := range spawns {
		weights[i] = max(s.Weight, 1)
		total += s.Count
	}
	picks := make([]content.Spawn, 0, total)
	for i := 0; i < total; i++ {
		picks = append(picks, spawns[p.rnd.WeightedSelect(weights)])
	}
	return picks
}

func (p *populator) monsters() {
	for _, s := range p.rolls(content.SpawnMonster) {
		m, ok := p.reg.NewMonster(s.ID)
		if !ok {
			continue
		}
		pos, ok := p.free(p.rooms[1+p.rnd.Intn(len(p.rooms)-1)])
		if !ok {
			continue
		}
		m.Pos = pos
		if s.AI != "" {
			m.AI = s.AI
		}
		p.level.Monsters = append(p.level.Monsters, m)
	}
}

func (p *populator) items() {
	for _, s := range p.rolls(content.SpawnItem) {
		it, ok := p.reg.NewItem(s.ID)
		if !ok {
			continue
		}
		if pos, ok := p.free(p.rooms[p.rnd.Intn(len(p.rooms))]); ok {
			p.level.DropItem(it, pos)
		}
	}
}

func (p *populator) quest() {
	if !p.deepest {
		return
	}
	it, ok := p.reg.NewItem(p.reg.Dungeon.Quest)
	if !ok {
		return
	}
	last := p.rooms[len(p.rooms)-1]
	pos, ok := p.free(last)
	if !ok {
		pos = RandomPos(p.level, last, p.rnd)
	}
	it.Quest = true
	p.level.DropItem(it, pos)
}
