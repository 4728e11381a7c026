// Package content holds the immutable templates a dungeon is built from.
// A Registry is produced once by the loader and shared read-only by the
// generator and the engine.
package content

import (
	"sort"

	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

// ObjectKind says which entity an Object template builds.
type ObjectKind string

const (
	KindDoor      ObjectKind = "door"
	KindContainer ObjectKind = "container"
	KindFountain  ObjectKind = "fountain"
	KindStairs    ObjectKind = "stairs"
	KindTrap      ObjectKind = "trap"
)

// Object is the template of a static dungeon fixture.
type Object struct {
	ID           string
	Kind         ObjectKind
	Name         string
	Sprite       types.Sprite
	OpenedSprite types.Sprite // doors only
	ClosedSprite types.Sprite // doors only
	Loot         []string     // item IDs, containers only
	Bolt         string       // item ID, traps only
}

// Dungeon holds the global generation parameters.
type Dungeon struct {
	Title  string
	Width  int
	Height int
	Depth  int // number of levels; the quest item lies on level Depth-1

	Floor    string // cell IDs
	Wall     string
	Corridor string

	Player     string // monster ID
	Quest      string // item ID
	Key        string // item ID, gets a KeyType per locked door
	Door       string // object IDs
	Container  string
	Fountain   string
	Trap       string
	StairsUp   string
	StairsDown string

	LockedDoors int // percent chance for a door to be locked
	Traps       int // traps per level
}

// SpawnKind says what a Spawn places.
type SpawnKind string

const (
	SpawnMonster SpawnKind = "monster"
	SpawnItem    SpawnKind = "item"
)

// Spawn is a weighted entry of a level's population table.
type Spawn struct {
	Kind     SpawnKind
	ID       string
	MinDepth int
	MaxDepth int // inclusive; negative means no limit
	Weight   int
	Count    int // how many rolls this entry contributes to per level
	AI       string
}

// Registry is the full set of content definitions.
type Registry struct {
	Cells    map[string]world.CellType
	Items    map[string]world.Item
	Monsters map[string]world.Monster
	Objects  map[string]Object
	Dungeon  Dungeon
	Spawns   []Spawn
}

// NewRegistry returns an empty registry with all maps allocated.
func NewRegistry() *Registry {
	return &Registry{
		Cells:    map[string]world.CellType{},
		Items:    map[string]world.Item{},
		Monsters: map[string]world.Monster{},
		Objects:  map[string]Object{},
	}
}

// Cell returns the cell template id.
func (r *Registry) Cell(id string) (world.CellType, bool) {
	c, ok := r.Cells[id]
	return c, ok
}

// NewItem returns a fresh copy of item template id.
func (r *Registry) NewItem(id string) (world.Item, bool) {
	it, ok := r.Items[id]
	return it, ok
}

// NewMonster returns a fresh monster built from template id. Its inventory
// is a deep copy of the template's.
func (r *Registry) NewMonster(id string) (*world.Monster, bool) {
	tmpl, ok := r.Monsters[id]
	if !ok {
		return nil, false
	}
	m := tmpl
	m.Inventory = world.NewInventory()
	for slot, it := range tmpl.Inventory.Slots {
		if it != nil {
			m.Inventory.Set(slot, *it)
		}
	}
	m.Inventory.Wielded = tmpl.Inventory.Wielded
	m.Inventory.Worn = tmpl.Inventory.Worn
	m.Plan = nil
	return &m, true
}

// Object returns the object template id.
func (r *Registry) Object(id string) (Object, bool) {
	o, ok := r.Objects[id]
	return o, ok
}

// SpawnsFor returns the spawn entries of kind allowed at depth, in
// declaration order.
func (r *Registry) SpawnsFor(kind SpawnKind, depth int) []Spawn {
	var out []Spawn
	for _, s := range r.Spawns {
		if s.Kind != kind || depth < s.MinDepth {
			continue
		}
		if s.MaxDepth >= 0 && depth > s.MaxDepth {
			continue
		}
		out = append(out, s)
	}
	return out
}

var spriteNames = map[string]types.Sprite{
	"empty":          types.SpriteEmpty,
	"floor":          types.SpriteFloor,
	"wall":           types.SpriteWall,
	"torch":          types.SpriteTorch,
	"goo":            types.SpriteGoo,
	"explosive":      types.SpriteExplosive,
	"money":          types.SpriteMoney,
	"scorpion_tail":  types.SpriteScorpionTail,
	"spear":          types.SpriteSpear,
	"jacket":         types.SpriteJacket,
	"antidote":       types.SpriteAntidote,
	"apple":          types.SpriteApple,
	"player":         types.SpritePlayer,
	"ant":            types.SpriteAnt,
	"scorpion":       types.SpriteScorpion,
	"door_opened":    types.SpriteDoorOpened,
	"door_closed":    types.SpriteDoorClosed,
	"pot":            types.SpritePot,
	"well":           types.SpriteWell,
	"gate":           types.SpriteGate,
	"stairs_up":      types.SpriteStairsUp,
	"stairs_down":    types.SpriteStairsDown,
	"trap":           types.SpriteTrap,
	"sharpened_pole": types.SpriteSharpenedPole,
	"key":            types.SpriteKey,
	"flask":          types.SpriteFlask,
}

// SpriteByName resolves a sprite name used in content scripts.
func SpriteByName(name string) (types.Sprite, bool) {
	s, ok := spriteNames[name]
	return s, ok
}

// SpriteNames lists every known sprite name, sorted.
func SpriteNames() []string {
	names := make([]string, 0, len(spriteNames))
	for n := range spriteNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var glyphs = [types.SpriteCount]rune{
	types.SpriteEmpty:         ' ',
	types.SpriteFloor:         '.',
	types.SpriteWall:          '#',
	types.SpriteTorch:         '&',
	types.SpriteGoo:           '~',
	types.SpriteExplosive:     '*',
	types.SpriteMoney:         '$',
	types.SpriteScorpionTail:  '!',
	types.SpriteSpear:         '(',
	types.SpriteJacket:        '[',
	types.SpriteAntidote:      '%',
	types.SpriteApple:         '%',
	types.SpritePlayer:        '@',
	types.SpriteAnt:           'A',
	types.SpriteScorpion:      'S',
	types.SpriteDoorOpened:    '-',
	types.SpriteDoorClosed:    '+',
	types.SpritePot:           'V',
	types.SpriteWell:          '{',
	types.SpriteGate:          '<',
	types.SpriteStairsUp:      '<',
	types.SpriteStairsDown:    '>',
	types.SpriteTrap:          '^',
	types.SpriteSharpenedPole: '(',
	types.SpriteKey:           '-',
	types.SpriteFlask:         '!',
}

// Glyph is the terminal character of a sprite. Unknown sprites show as '?'.
func Glyph(s types.Sprite) rune {
	if s < 0 || s >= types.SpriteCount {
		return '?'
	}
	return glyphs[s]
}
