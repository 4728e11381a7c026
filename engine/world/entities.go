package world

import (
	"log"

	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/types"
)

// Item is anything that can lie on the floor or sit in an inventory.
type Item struct {
	ID       string       `json:"id"`
	Pos      geo.Point    `json:"pos"`
	Sprite   types.Sprite `json:"sprite"`
	Name     string       `json:"name"`
	Damage   int          `json:"damage,omitempty"`
	Wearable bool         `json:"wearable,omitempty"`
	Defence  int          `json:"defence,omitempty"`
	Edible   bool         `json:"edible,omitempty"`
	Antidote int          `json:"antidote,omitempty"`
	Healing  int          `json:"healing,omitempty"`
	Quest    bool         `json:"quest,omitempty"`
	KeyType  int          `json:"key_type,omitempty"` // 0 for items that are not keys
}

// Monster is any creature, the player included.
type Monster struct {
	ID          string          `json:"id"`
	Pos         geo.Point       `json:"pos"`
	Sprite      types.Sprite    `json:"sprite"`
	Name        string          `json:"name"`
	Faction     types.Faction   `json:"faction"`
	AI          string          `json:"ai"`
	HP          int             `json:"hp"`
	MaxHP       int             `json:"max_hp"`
	Sight       int             `json:"sight"`
	HitStrength int             `json:"hit_strength"`
	Poisonous   bool            `json:"poisonous,omitempty"`
	Poisoning   int             `json:"poisoning,omitempty"`
	Godmode     bool            `json:"godmode,omitempty"`
	Inventory   Inventory       `json:"inventory"`
	Plan        []types.Command `json:"plan,omitempty"`
}

// NewMonster returns a monster with one hit point and an empty inventory.
func NewMonster(name string) *Monster {
	return &Monster{
		Name:      name,
		HP:        1,
		MaxHP:     1,
		Inventory: NewInventory(),
	}
}

// Alive reports whether the monster still has hit points.
func (m *Monster) Alive() bool {
	return m.HP > 0
}

// Damage is the wielded item's damage, or the bare hit strength.
func (m *Monster) Damage() int {
	if it := m.WieldedItem(); it != nil {
		return it.Damage
	}
	return m.HitStrength
}

// WieldedItem returns the wielded item, or nil. A wielded index that points
// at an empty or out-of-range slot is reset to Nothing.
func (m *Monster) WieldedItem() *Item {
	slot := m.Inventory.Wielded
	if slot == Nothing {
		return nil
	}
	if slot < 0 || slot >= SlotCount {
		log.Printf("%s was wielding incorrect slot %d", m.Name, slot)
		m.Inventory.Wielded = Nothing
		return nil
	}
	it := m.Inventory.Slots[slot]
	if it == nil {
		log.Printf("%s was wielding empty slot %d", m.Name, slot)
		m.Inventory.Wielded = Nothing
	}
	return it
}

// WornItem returns the worn item, or nil. It repairs a dangling index the
// same way WieldedItem does.
func (m *Monster) WornItem() *Item {
	slot := m.Inventory.Worn
	if slot == Nothing {
		return nil
	}
	if slot < 0 || slot >= SlotCount {
		log.Printf("%s was wearing incorrect slot %d", m.Name, slot)
		m.Inventory.Worn = Nothing
		return nil
	}
	it := m.Inventory.Slots[slot]
	if it == nil {
		log.Printf("%s was wearing empty slot %d", m.Name, slot)
		m.Inventory.Worn = Nothing
	}
	return it
}

// Door is passable and transparent only while opened.
type Door struct {
	Pos          geo.Point    `json:"pos"`
	Name         string       `json:"name"`
	Opened       bool         `json:"opened"`
	Locked       bool         `json:"locked,omitempty"`
	LockType     int          `json:"lock_type,omitempty"`
	OpenedSprite types.Sprite `json:"opened_sprite"`
	ClosedSprite types.Sprite `json:"closed_sprite"`
}

// Sprite returns the sprite for the door's current state.
func (d *Door) Sprite() types.Sprite {
	if d.Opened {
		return d.OpenedSprite
	}
	return d.ClosedSprite
}

func (d *Door) Passable() bool    { return d.Opened }
func (d *Door) Transparent() bool { return d.Opened }

// Container holds items until opened. It always blocks movement.
type Container struct {
	Pos    geo.Point    `json:"pos"`
	Sprite types.Sprite `json:"sprite"`
	Name   string       `json:"name"`
	Items  []Item       `json:"items,omitempty"`
}

// Fountain can be drunk from indefinitely. It always blocks movement.
type Fountain struct {
	Pos    geo.Point    `json:"pos"`
	Sprite types.Sprite `json:"sprite"`
	Name   string       `json:"name"`
}

// Stairs lead to other depths. A negative destination is the way out of
// the dungeon.
type Stairs struct {
	Pos             geo.Point    `json:"pos"`
	Sprite          types.Sprite `json:"sprite"`
	Name            string       `json:"name"`
	GoesUp          bool         `json:"goes_up,omitempty"`
	UpDestination   int          `json:"up_destination,omitempty"`
	GoesDown        bool         `json:"goes_down,omitempty"`
	DownDestination int          `json:"down_destination,omitempty"`
}

// ExitUp reports whether going up from here leaves the dungeon.
func (s *Stairs) ExitUp() bool { return s.GoesUp && s.UpDestination < 0 }

// ExitDown reports whether going down from here leaves the dungeon.
func (s *Stairs) ExitDown() bool { return s.GoesDown && s.DownDestination < 0 }

// Trap fires its bolt at the first monster to step on it.
type Trap struct {
	Pos       geo.Point    `json:"pos"`
	Sprite    types.Sprite `json:"sprite"`
	Name      string       `json:"name"`
	Bolt      *Item        `json:"bolt,omitempty"`
	Triggered bool         `json:"triggered,omitempty"`
}
