package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/temple/engine/ai"
	"github.com/nathoo/temple/engine/content"
	"github.com/nathoo/temple/types"
)

// MinMapSize is the smallest width and height that fits nine rooms.
const MinMapSize = 12

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled registry for referential integrity.
func validate(reg *content.Registry) error {
	ve := &ValidationError{}
	d := reg.Dungeon
	controllers := ai.Default()

	if d.Title == "" {
		ve.errorf("Dungeon.title is required")
	}
	if d.Width < MinMapSize || d.Height < MinMapSize {
		ve.errorf("Dungeon map %dx%d is smaller than %dx%d", d.Width, d.Height, MinMapSize, MinMapSize)
	}
	if d.Depth < 1 {
		ve.errorf("Dungeon.depth must be at least 1, got %d", d.Depth)
	}
	if d.LockedDoors < 0 || d.LockedDoors > 100 {
		ve.errorf("Dungeon.locked_doors must be a percentage, got %d", d.LockedDoors)
	}

	// Required references.
	requireCell(reg, ve, "floor", d.Floor)
	requireCell(reg, ve, "wall", d.Wall)
	if d.Corridor != "" {
		requireCell(reg, ve, "corridor", d.Corridor)
	}
	if d.Player == "" {
		ve.errorf("Dungeon.player is required")
	} else if m, ok := reg.Monsters[d.Player]; !ok {
		ve.errorf("Dungeon.player %q is not a defined monster", d.Player)
	} else if m.Faction != types.FactionPlayer {
		ve.errorf("Dungeon.player %q must have faction \"player\"", d.Player)
	}
	if d.Quest == "" {
		ve.errorf("Dungeon.quest is required")
	} else if _, ok := reg.Items[d.Quest]; !ok {
		ve.errorf("Dungeon.quest %q is not a defined item", d.Quest)
	}
	if d.Key != "" {
		if _, ok := reg.Items[d.Key]; !ok {
			ve.errorf("Dungeon.key %q is not a defined item", d.Key)
		}
	} else if d.LockedDoors > 0 {
		ve.errorf("Dungeon.locked_doors needs Dungeon.key")
	}
	requireObject(reg, ve, "stairs_up", d.StairsUp, content.KindStairs, true)
	requireObject(reg, ve, "stairs_down", d.StairsDown, content.KindStairs, d.Depth > 1)
	requireObject(reg, ve, "door", d.Door, content.KindDoor, false)
	requireObject(reg, ve, "container", d.Container, content.KindContainer, false)
	requireObject(reg, ve, "fountain", d.Fountain, content.KindFountain, false)
	requireObject(reg, ve, "trap", d.Trap, content.KindTrap, d.Traps > 0)

	// Objects.
	for _, id := range sortedKeys(reg.Objects) {
		obj := reg.Objects[id]
		for _, loot := range obj.Loot {
			if _, ok := reg.Items[loot]; !ok {
				ve.errorf("object %q loot %q is not a defined item", id, loot)
			}
		}
		if obj.Bolt != "" {
			if _, ok := reg.Items[obj.Bolt]; !ok {
				ve.errorf("object %q bolt %q is not a defined item", id, obj.Bolt)
			}
		}
		if obj.Kind == content.KindTrap && obj.Bolt == "" {
			ve.warnf("trap %q has no bolt", id)
		}
	}

	// Monsters.
	for _, id := range sortedKeys(reg.Monsters) {
		m := reg.Monsters[id]
		if m.HP < 1 || m.MaxHP < m.HP {
			ve.errorf("monster %q has hp %d of %d", id, m.HP, m.MaxHP)
		}
		if m.AI != "" {
			if _, ok := controllers[m.AI]; !ok {
				ve.errorf("monster %q uses unknown ai %q", id, m.AI)
			}
		} else if m.Faction != types.FactionPlayer {
			ve.warnf("monster %q has no ai and will never act", id)
		}
	}

	// Spawns.
	for i, s := range reg.Spawns {
		switch s.Kind {
		case content.SpawnMonster:
			if _, ok := reg.Monsters[s.ID]; !ok {
				ve.errorf("spawn %d: monster %q is not defined", i+1, s.ID)
			}
		case content.SpawnItem:
			if _, ok := reg.Items[s.ID]; !ok {
				ve.errorf("spawn %d: item %q is not defined", i+1, s.ID)
			}
		}
		if s.AI != "" {
			if _, ok := controllers[s.AI]; !ok {
				ve.errorf("spawn %d: unknown ai %q", i+1, s.AI)
			}
		}
		if s.Weight < 1 || s.Count < 0 {
			ve.errorf("spawn %d: weight %d and count %d must be positive", i+1, s.Weight, s.Count)
		}
		if s.MaxDepth >= 0 && s.MaxDepth < s.MinDepth {
			ve.errorf("spawn %d: max_depth %d is below min_depth %d", i+1, s.MaxDepth, s.MinDepth)
		}
	}

	// Warnings: items that nothing places.
	used := usedItems(reg)
	for _, id := range sortedKeys(reg.Items) {
		if !used[id] {
			ve.warnf("item %q is never placed", id)
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func requireCell(reg *content.Registry, ve *ValidationError, field, id string) {
	if id == "" {
		ve.errorf("Dungeon.%s is required", field)
		return
	}
	if _, ok := reg.Cells[id]; !ok {
		ve.errorf("Dungeon.%s %q is not a defined cell", field, id)
	}
}

// requireObject checks that id names an object of kind. An empty id is
// only an error when required.
func requireObject(reg *content.Registry, ve *ValidationError, field, id string, kind content.ObjectKind, required bool) {
	if id == "" {
		if required {
			ve.errorf("Dungeon.%s is required", field)
		}
		return
	}
	obj, ok := reg.Objects[id]
	if !ok {
		ve.errorf("Dungeon.%s %q is not a defined object", field, id)
		return
	}
	if obj.Kind != kind {
		ve.errorf("Dungeon.%s %q is a %s, not a %s", field, id, obj.Kind, kind)
	}
}

func usedItems(reg *content.Registry) map[string]bool {
	used := map[string]bool{reg.Dungeon.Quest: true, reg.Dungeon.Key: true}
	for _, obj := range reg.Objects {
		for _, id := range obj.Loot {
			used[id] = true
		}
		used[obj.Bolt] = true
	}
	for _, m := range reg.Monsters {
		for _, it := range m.Inventory.Items() {
			used[it.ID] = true
		}
	}
	for _, s := range reg.Spawns {
		if s.Kind == content.SpawnItem {
			used[s.ID] = true
		}
	}
	return used
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
