// Package loader loads Lua dungeon content into Go structs at startup.
// The Lua VM is discarded after loading, so no Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/temple/engine/content"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or the default if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// getStrings returns the string elements of an array field.
func getStrings(tbl *lua.LTable, key string) []string {
	arr, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	for i := 1; i <= arr.MaxN(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// getSprite resolves a sprite name field. A missing field is SpriteEmpty.
func getSprite(tbl *lua.LTable, key string) (types.Sprite, error) {
	name := getString(tbl, key)
	if name == "" {
		return types.SpriteEmpty, nil
	}
	s, ok := content.SpriteByName(name)
	if !ok {
		return 0, fmt.Errorf("unknown sprite %q", name)
	}
	return s, nil
}

// nameOr returns the table's name field, falling back to id.
func nameOr(tbl *lua.LTable, id string) string {
	if n := getString(tbl, "name"); n != "" {
		return n
	}
	return id
}

var factions = map[string]types.Faction{
	"player":  types.FactionPlayer,
	"neutral": types.FactionNeutral,
	"hostile": types.FactionHostile,
}

var objectKinds = map[content.ObjectKind]bool{
	content.KindDoor:      true,
	content.KindContainer: true,
	content.KindFountain:  true,
	content.KindStairs:    true,
	content.KindTrap:      true,
}

// compile converts all collected Lua data into a Registry. Items compile
// before monsters so starting inventories can be resolved.
func compile(coll *collector) (*content.Registry, error) {
	reg := content.NewRegistry()

	if coll.dungeon == nil {
		return nil, fmt.Errorf("no Dungeon{} definition found")
	}
	reg.Dungeon = compileDungeon(coll.dungeon)

	for _, raw := range coll.cells {
		cell, err := compileCell(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling cell %s: %w", raw.id, err)
		}
		if err := unique(reg.Cells, raw.id, "cell"); err != nil {
			return nil, err
		}
		reg.Cells[raw.id] = cell
	}

	for _, raw := range coll.items {
		item, err := compileItem(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling item %s: %w", raw.id, err)
		}
		if err := unique(reg.Items, raw.id, "item"); err != nil {
			return nil, err
		}
		reg.Items[raw.id] = item
	}

	for _, raw := range coll.monsters {
		m, err := compileMonster(raw, reg.Items)
		if err != nil {
			return nil, fmt.Errorf("compiling monster %s: %w", raw.id, err)
		}
		if err := unique(reg.Monsters, raw.id, "monster"); err != nil {
			return nil, err
		}
		reg.Monsters[raw.id] = m
	}

	for _, raw := range coll.objects {
		obj, err := compileObject(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling object %s: %w", raw.id, err)
		}
		if err := unique(reg.Objects, raw.id, "object"); err != nil {
			return nil, err
		}
		reg.Objects[raw.id] = obj
	}

	for i, tbl := range coll.spawns {
		s, err := compileSpawn(tbl)
		if err != nil {
			return nil, fmt.Errorf("compiling spawn %d: %w", i+1, err)
		}
		reg.Spawns = append(reg.Spawns, s)
	}

	return reg, nil
}

func unique[T any](defs map[string]T, id, kind string) error {
	if _, ok := defs[id]; ok {
		return fmt.Errorf("duplicate %s ID %q", kind, id)
	}
	return nil
}

func compileDungeon(tbl *lua.LTable) content.Dungeon {
	return content.Dungeon{
		Title:       getString(tbl, "title"),
		Width:       getInt(tbl, "width", 60),
		Height:      getInt(tbl, "height", 24),
		Depth:       getInt(tbl, "depth", 1),
		Floor:       getString(tbl, "floor"),
		Wall:        getString(tbl, "wall"),
		Corridor:    getString(tbl, "corridor"),
		Player:      getString(tbl, "player"),
		Quest:       getString(tbl, "quest"),
		Key:         getString(tbl, "key"),
		Door:        getString(tbl, "door"),
		Container:   getString(tbl, "container"),
		Fountain:    getString(tbl, "fountain"),
		Trap:        getString(tbl, "trap"),
		StairsUp:    getString(tbl, "stairs_up"),
		StairsDown:  getString(tbl, "stairs_down"),
		LockedDoors: getInt(tbl, "locked_doors", 0),
		Traps:       getInt(tbl, "traps", 0),
	}
}

func compileCell(raw rawDef) (world.CellType, error) {
	sprite, err := getSprite(raw.table, "sprite")
	if err != nil {
		return world.CellType{}, err
	}
	return world.CellType{
		Name:        nameOr(raw.table, raw.id),
		Sprite:      sprite,
		Passable:    getBool(raw.table, "passable", false),
		Transparent: getBool(raw.table, "transparent", false),
	}, nil
}

func compileItem(raw rawDef) (world.Item, error) {
	sprite, err := getSprite(raw.table, "sprite")
	if err != nil {
		return world.Item{}, err
	}
	return world.Item{
		ID:       raw.id,
		Sprite:   sprite,
		Name:     nameOr(raw.table, raw.id),
		Damage:   getInt(raw.table, "damage", 0),
		Wearable: getBool(raw.table, "wearable", false),
		Defence:  getInt(raw.table, "defence", 0),
		Edible:   getBool(raw.table, "edible", false),
		Antidote: getInt(raw.table, "antidote", 0),
		Healing:  getInt(raw.table, "healing", 0),
		Quest:    getBool(raw.table, "quest", false),
	}, nil
}

func compileMonster(raw rawDef, items map[string]world.Item) (world.Monster, error) {
	tbl := raw.table
	sprite, err := getSprite(tbl, "sprite")
	if err != nil {
		return world.Monster{}, err
	}
	faction := types.FactionHostile
	if f := getString(tbl, "faction"); f != "" {
		var ok bool
		if faction, ok = factions[f]; !ok {
			return world.Monster{}, fmt.Errorf("unknown faction %q", f)
		}
	}

	m := world.NewMonster(nameOr(tbl, raw.id))
	m.ID = raw.id
	m.Sprite = sprite
	m.Faction = faction
	m.AI = getString(tbl, "ai")
	m.HP = getInt(tbl, "hp", 1)
	m.MaxHP = getInt(tbl, "max_hp", m.HP)
	m.Sight = getInt(tbl, "sight", 0)
	m.HitStrength = getInt(tbl, "hit", 0)
	m.Poisonous = getBool(tbl, "poisonous", false)
	m.Godmode = getBool(tbl, "godmode", false)

	for _, id := range getStrings(tbl, "inventory") {
		it, ok := items[id]
		if !ok {
			return world.Monster{}, fmt.Errorf("inventory item %q is not defined", id)
		}
		if m.Inventory.Insert(it) == world.Nothing {
			return world.Monster{}, fmt.Errorf("inventory holds more than %d items", world.SlotCount)
		}
	}
	if id := getString(tbl, "wield"); id != "" {
		slot := findSlot(&m.Inventory, id)
		if slot == world.Nothing {
			return world.Monster{}, fmt.Errorf("wielded item %q is not in the inventory", id)
		}
		m.Inventory.Wield(slot)
	}
	if id := getString(tbl, "wear"); id != "" {
		slot := findSlot(&m.Inventory, id)
		if slot == world.Nothing || !m.Inventory.Get(slot).Wearable {
			return world.Monster{}, fmt.Errorf("worn item %q is not a wearable inventory item", id)
		}
		m.Inventory.Wear(slot)
	}
	return *m, nil
}

func findSlot(inv *world.Inventory, id string) int {
	for i := 0; i < world.SlotCount; i++ {
		if it := inv.Get(i); it != nil && it.ID == id {
			return i
		}
	}
	return world.Nothing
}

func compileObject(raw rawDef) (content.Object, error) {
	tbl := raw.table
	kind := content.ObjectKind(getString(tbl, "kind"))
	if !objectKinds[kind] {
		return content.Object{}, fmt.Errorf("unknown object kind %q", kind)
	}
	obj := content.Object{
		ID:   raw.id,
		Kind: kind,
		Name: nameOr(tbl, raw.id),
		Loot: getStrings(tbl, "loot"),
		Bolt: getString(tbl, "bolt"),
	}
	var err error
	if obj.Sprite, err = getSprite(tbl, "sprite"); err != nil {
		return content.Object{}, err
	}
	if obj.OpenedSprite, err = getSprite(tbl, "opened_sprite"); err != nil {
		return content.Object{}, err
	}
	if obj.ClosedSprite, err = getSprite(tbl, "closed_sprite"); err != nil {
		return content.Object{}, err
	}
	return obj, nil
}

func compileSpawn(tbl *lua.LTable) (content.Spawn, error) {
	s := content.Spawn{
		MinDepth: getInt(tbl, "min_depth", 0),
		MaxDepth: getInt(tbl, "max_depth", -1),
		Weight:   getInt(tbl, "weight", 1),
		Count:    getInt(tbl, "count", 1),
		AI:       getString(tbl, "ai"),
	}
	monster, item := getString(tbl, "monster"), getString(tbl, "item")
	switch {
	case monster != "" && item != "":
		return content.Spawn{}, fmt.Errorf("spawn names both monster %q and item %q", monster, item)
	case monster != "":
		s.Kind, s.ID = content.SpawnMonster, monster
	case item != "":
		s.Kind, s.ID = content.SpawnItem, item
	default:
		return content.Spawn{}, fmt.Errorf("spawn needs a monster or an item")
	}
	return s, nil
}

// sortedLuaFiles returns files with dungeon.lua first, rest alphabetical.
func sortedLuaFiles(files []string) []string {
	var dungeonFile string
	var others []string
	for _, f := range files {
		if f == "dungeon.lua" {
			dungeonFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if dungeonFile != "" {
		return append([]string{dungeonFile}, others...)
	}
	return others
}
