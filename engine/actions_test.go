package engine

import (
	"reflect"
	"testing"

	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

var (
	floorCell = world.CellType{Name: "floor", Sprite: types.SpriteFloor, Passable: true, Transparent: true}
	wallCell  = world.CellType{Name: "wall", Sprite: types.SpriteWall}
)

var (
	north = geo.Pt(0, -1)
	south = geo.Pt(0, 1)
	east  = geo.Pt(1, 0)
)

// testGame builds a game over rows of '#' and '.' with a player called
// Dummy standing at (1,1).
func testGame(rows ...string) (*Game, *world.Monster) {
	m := world.NewMap(len(rows[0]), len(rows), floorCell)
	w := m.AddCellType(wallCell)
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				m.SetCellType(geo.Pt(x, y), w)
			}
		}
	}
	level := world.NewLevel(m)
	dummy := world.NewMonster("Dummy")
	dummy.Faction = types.FactionPlayer
	dummy.Sprite = types.SpritePlayer
	dummy.Pos = geo.Pt(1, 1)
	dummy.HP, dummy.MaxHP = 10, 10
	dummy.HitStrength = 1
	dummy.Sight = 5
	level.Monsters = append(level.Monsters, dummy)
	return NewGame(level, NewRNG(1)), dummy
}

func addStub(g *Game, p geo.Point) *world.Monster {
	stub := world.NewMonster("stub")
	stub.Pos = p
	stub.Sprite = types.SpriteAnt
	stub.Faction = types.FactionHostile
	stub.HP, stub.MaxHP = 100, 100
	g.Level.Monsters = append(g.Level.Monsters, stub)
	return stub
}

func spear() world.Item {
	return world.Item{Name: "spear", Sprite: types.SpriteSpear, Damage: 3}
}

func armor() world.Item {
	return world.Item{Name: "armor", Sprite: types.SpriteJacket, Wearable: true, Defence: 1}
}

func checkMessages(t *testing.T, g *Game, want ...string) {
	t.Helper()
	if len(want) == 0 {
		want = nil
	}
	got := g.Messages
	if len(got) == 0 {
		got = nil
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("messages:\n got %q\nwant %q", got, want)
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		cmd  types.Command
		want Action
	}{
		{types.Command{}, Wait{}},
		{types.Command{Verb: types.VerbMove, Dir: geo.Pt(0, -5)}, Move{Dir: north}},
		{types.Command{Verb: types.VerbSmartMove, Dir: east}, SmartMove{Dir: east}},
		{types.Command{Verb: types.VerbOpen, Dir: north}, Open{Dir: north}},
		{types.Command{Verb: types.VerbClose, Dir: north}, Close{Dir: north}},
		{types.Command{Verb: types.VerbSwing, Dir: north}, Swing{Dir: north}},
		{types.Command{Verb: types.VerbFire, Dir: north}, Fire{Dir: north}},
		{types.Command{Verb: types.VerbDrink, Dir: north}, Drink{Dir: north}},
		{types.Command{Verb: types.VerbGrab}, Grab{}},
		{types.Command{Verb: types.VerbDrop, Slot: 2}, Drop{Slot: 2}},
		{types.Command{Verb: types.VerbWield, Slot: 3}, Wield{Slot: 3}},
		{types.Command{Verb: types.VerbUnwield}, Unwield{}},
		{types.Command{Verb: types.VerbWear, Slot: 4}, Wear{Slot: 4}},
		{types.Command{Verb: types.VerbTakeOff}, TakeOff{}},
		{types.Command{Verb: types.VerbEat, Slot: 5}, Eat{Slot: 5}},
		{types.Command{Verb: types.VerbGoUp}, GoUp{}},
		{types.Command{Verb: types.VerbGoDown}, GoDown{}},
		{types.Command{Verb: "dance"}, Wait{}},
	}
	for _, tt := range tests {
		if got := ActionFor(tt.cmd); got != tt.want {
			t.Errorf("ActionFor(%+v) = %#v, want %#v", tt.cmd, got, tt.want)
		}
	}
}

func TestMoveIntoWall(t *testing.T) {
	g, dummy := testGame(
		"###",
		"#..",
		"#..",
	)
	g.Execute(dummy, types.Command{Verb: types.VerbMove, Dir: north})

	if dummy.Pos != geo.Pt(1, 1) {
		t.Errorf("actor moved to %v", dummy.Pos)
	}
	checkMessages(t, g, "Dummy bump into the wall.")
}

func TestMoveBlocked(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game)
		want  string
	}{
		{"closed door", func(g *Game) {
			g.Level.Doors = append(g.Level.Doors, world.Door{Pos: geo.Pt(1, 0), Name: "door"})
		}, "Door is closed."},
		{"monster", func(g *Game) { addStub(g, geo.Pt(1, 0)) }, "Dummy bump into stub."},
		{"container", func(g *Game) {
			g.Level.Containers = append(g.Level.Containers, world.Container{Pos: geo.Pt(1, 0), Name: "pot"})
		}, "Dummy bump into pot."},
		{"fountain", func(g *Game) {
			g.Level.Fountains = append(g.Level.Fountains, world.Fountain{Pos: geo.Pt(1, 0), Name: "well"})
		}, "Dummy bump into well."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, dummy := testGame("...", "...", "...")
			tt.setup(g)
			g.Execute(dummy, types.Command{Verb: types.VerbMove, Dir: north})
			if dummy.Pos != geo.Pt(1, 1) {
				t.Errorf("actor moved to %v", dummy.Pos)
			}
			checkMessages(t, g, tt.want)
		})
	}
}

func TestMoveThroughOpenDoor(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	g.Level.Doors = append(g.Level.Doors, world.Door{Pos: geo.Pt(1, 0), Name: "door", Opened: true})
	g.Execute(dummy, types.Command{Verb: types.VerbMove, Dir: north})
	if dummy.Pos != geo.Pt(1, 0) {
		t.Errorf("actor at %v, want (1,0)", dummy.Pos)
	}
	checkMessages(t, g)
}

func TestMoveOntoTrap(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	bolt := world.Item{Name: "sharpened pole", Damage: 2}
	g.Level.Traps = append(g.Level.Traps, world.Trap{Pos: geo.Pt(2, 1), Name: "trap", Bolt: &bolt})

	g.Execute(dummy, types.Command{Verb: types.VerbMove, Dir: east})
	checkMessages(t, g, "Dummy trigger the trap.", "Dummy is hit by bolt.")
	if dummy.HP != 8 {
		t.Errorf("hp = %d, want 8", dummy.HP)
	}
	if i, ok := g.Level.ItemAt(geo.Pt(2, 1)); !ok || g.Level.Items[i].Name != "sharpened pole" {
		t.Error("bolt should lie on the trap")
	}

	g.Messages = nil
	g.Execute(dummy, types.Command{Verb: types.VerbMove, Dir: geo.Pt(-1, 0)})
	g.Execute(dummy, types.Command{Verb: types.VerbMove, Dir: east})
	checkMessages(t, g, "Trap is already triggered.")
	if dummy.HP != 8 {
		t.Errorf("hp = %d after second step, want 8", dummy.HP)
	}
}

func lockedDoorGame() (*Game, *world.Monster) {
	g, dummy := testGame("...", "...", "...")
	g.Level.Doors = append(g.Level.Doors, world.Door{Pos: geo.Pt(1, 0), Name: "door", Locked: true, LockType: 1})
	return g, dummy
}

func TestOpenLockedDoorWithKey(t *testing.T) {
	g, dummy := lockedDoorGame()
	dummy.Inventory.Insert(world.Item{Name: "key", KeyType: 1})

	g.Execute(dummy, types.Command{Verb: types.VerbOpen, Dir: north})

	checkMessages(t, g, "Dummy unlocked the door.", "Dummy opened the door.")
	door := g.Level.DoorAt(geo.Pt(1, 0))
	if door.Locked || !door.Opened {
		t.Errorf("door locked=%v opened=%v", door.Locked, door.Opened)
	}
}

func TestOpenLockedDoorWithoutKey(t *testing.T) {
	g, dummy := lockedDoorGame()
	dummy.Inventory.Insert(world.Item{Name: "key", KeyType: 2})

	g.Execute(dummy, types.Command{Verb: types.VerbOpen, Dir: north})

	checkMessages(t, g, "Door is locked.")
	door := g.Level.DoorAt(geo.Pt(1, 0))
	if !door.Locked || door.Opened {
		t.Errorf("door locked=%v opened=%v", door.Locked, door.Opened)
	}
}

func TestOpenDoorTwice(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	g.Level.Doors = append(g.Level.Doors, world.Door{Pos: geo.Pt(1, 0), Name: "door"})
	g.Execute(dummy, types.Command{Verb: types.VerbOpen, Dir: north})
	g.Execute(dummy, types.Command{Verb: types.VerbOpen, Dir: north})
	checkMessages(t, g, "Dummy opened the door.", "Door is already opened.")
}

func TestOpenContainer(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	g.Level.Containers = append(g.Level.Containers, world.Container{
		Pos:   geo.Pt(1, 0),
		Name:  "pot",
		Items: []world.Item{{Name: "money"}, {Name: "apple"}},
	})

	g.Execute(dummy, types.Command{Verb: types.VerbOpen, Dir: north})
	checkMessages(t, g, "Dummy took up a money from pot.")

	i, ok := g.Level.ItemAt(dummy.Pos)
	if !ok || g.Level.Items[i].Name != "money" {
		t.Fatal("money should drop at the actor's cell")
	}
	if n := len(g.Level.ContainerAt(geo.Pt(1, 0)).Items); n != 1 {
		t.Errorf("container holds %d items, want 1", n)
	}

	g.Messages = nil
	g.Execute(dummy, types.Command{Verb: types.VerbOpen, Dir: north})
	g.Execute(dummy, types.Command{Verb: types.VerbOpen, Dir: north})
	checkMessages(t, g, "Dummy took up a apple from pot.", "Pot is empty.")
}

func TestOpenNothing(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game)
		want  string
	}{
		{"empty", func(*Game) {}, "There is nothing to open there."},
		{"fountain", func(g *Game) {
			g.Level.Fountains = append(g.Level.Fountains, world.Fountain{Pos: geo.Pt(1, 0), Name: "well"})
		}, "Well cannot be opened."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, dummy := testGame("...", "...", "...")
			tt.setup(g)
			g.Execute(dummy, types.Command{Verb: types.VerbOpen, Dir: north})
			checkMessages(t, g, tt.want)
		})
	}
}

func TestClose(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	g.Level.Doors = append(g.Level.Doors, world.Door{Pos: geo.Pt(1, 0), Name: "door", Opened: true})

	g.Execute(dummy, types.Command{Verb: types.VerbClose, Dir: north})
	g.Execute(dummy, types.Command{Verb: types.VerbClose, Dir: north})
	g.Execute(dummy, types.Command{Verb: types.VerbClose, Dir: south})

	checkMessages(t, g,
		"Dummy closed the door.",
		"Door is already closed.",
		"There is nothing to close there.",
	)
	if g.Level.DoorAt(geo.Pt(1, 0)).Opened {
		t.Error("door should be closed")
	}
}

func TestSwing(t *testing.T) {
	t.Run("monster", func(t *testing.T) {
		g, dummy := testGame("...", "...", "...")
		dummy.HitStrength = 2
		stub := addStub(g, geo.Pt(1, 0))
		g.Execute(dummy, types.Command{Verb: types.VerbSwing, Dir: north})
		checkMessages(t, g, "Dummy hit stub for 2 hp.")
		if stub.HP != 98 {
			t.Errorf("stub hp = %d, want 98", stub.HP)
		}
	})
	t.Run("wielded weapon", func(t *testing.T) {
		g, dummy := testGame("...", "...", "...")
		dummy.Inventory.Wield(dummy.Inventory.Insert(spear()))
		addStub(g, geo.Pt(1, 0))
		g.Execute(dummy, types.Command{Verb: types.VerbSwing, Dir: north})
		checkMessages(t, g, "Dummy hit stub for 3 hp.")
	})
	t.Run("door", func(t *testing.T) {
		g, dummy := testGame("...", "...", "...")
		g.Level.Doors = append(g.Level.Doors, world.Door{Pos: geo.Pt(1, 0), Name: "door"})
		g.Execute(dummy, types.Command{Verb: types.VerbSwing, Dir: north})
		checkMessages(t, g, "Dummy swing at door.", "Dummy opened the door.")
	})
	t.Run("nothing", func(t *testing.T) {
		g, dummy := testGame("...", "...", "...")
		g.Execute(dummy, types.Command{Verb: types.VerbSwing, Dir: north})
		checkMessages(t, g, "Dummy swing at nothing.")
	})
	t.Run("terrain", func(t *testing.T) {
		g, dummy := testGame("###", "#..", "#..")
		g.Execute(dummy, types.Command{Verb: types.VerbSwing, Dir: north})
		checkMessages(t, g, "Dummy hit wall.")
	})
}

func TestHitOffMapNamesWall(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	dummy.Pos = geo.Pt(0, 1)
	g.Execute(dummy, types.Command{Verb: types.VerbSwing, Dir: geo.Pt(-1, 0)})

	dummy.Pos = geo.Pt(1, 0)
	dummy.Inventory.Wield(dummy.Inventory.Insert(spear()))
	g.Execute(dummy, types.Command{Verb: types.VerbFire, Dir: north})

	checkMessages(t, g,
		"Dummy hit wall.",
		"Dummy throw spear.",
		"Spear hit wall.",
	)
	if _, ok := g.Level.ItemAt(geo.Pt(1, 0)); !ok {
		t.Error("spear should drop at the map edge")
	}
}

func TestZeroDirectionDoesNothing(t *testing.T) {
	verbs := []types.Verb{
		types.VerbMove, types.VerbSmartMove, types.VerbOpen, types.VerbClose,
		types.VerbSwing, types.VerbFire, types.VerbDrink,
	}
	for _, verb := range verbs {
		g, dummy := testGame("...", "...", "...")
		dummy.Inventory.Wield(dummy.Inventory.Insert(spear()))
		g.Execute(dummy, types.Command{Verb: verb})

		checkMessages(t, g)
		if dummy.Pos != geo.Pt(1, 1) || dummy.HP != 10 {
			t.Errorf("verb %v: pos=%v hp=%d", verb, dummy.Pos, dummy.HP)
		}
		if dummy.WieldedItem() == nil {
			t.Errorf("verb %v: spear should stay wielded", verb)
		}
	}
}

func TestSwingKillsButKeepsCorpseUntilTurnEnds(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	stub := addStub(g, geo.Pt(1, 0))
	stub.HP = 1
	stub.Inventory.Insert(world.Item{Name: "money"})

	g.Execute(dummy, types.Command{Verb: types.VerbSwing, Dir: north})
	checkMessages(t, g, "Dummy hit stub for 1 hp.", "Stub died.")
	if g.Level.MonsterAt(geo.Pt(1, 0)) != stub {
		t.Error("dead monster should stay until cleanup")
	}
	if _, ok := g.Level.ItemAt(geo.Pt(1, 0)); !ok {
		t.Error("dead monster should drop its items")
	}
}

func TestFireSpearAtMonster(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	slot := dummy.Inventory.Insert(spear())
	dummy.Inventory.Wield(slot)
	stub := addStub(g, geo.Pt(1, 0))

	g.Execute(dummy, types.Command{Verb: types.VerbFire, Dir: north})

	checkMessages(t, g, "Dummy throw spear.", "Spear hits stub.", "Dummy hit stub for 3 hp.")
	if i, ok := g.Level.ItemAt(geo.Pt(1, 0)); !ok || g.Level.Items[i].Name != "spear" {
		t.Error("spear should lie at (1,0)")
	}
	if dummy.Inventory.Wielded != world.Nothing {
		t.Errorf("wielded = %d, want Nothing", dummy.Inventory.Wielded)
	}
	if dummy.Inventory.Get(slot) != nil {
		t.Error("spear should be gone from the inventory")
	}
	if stub.HP != 97 {
		t.Errorf("stub hp = %d, want 97", stub.HP)
	}
}

func TestFireStops(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game)
		want  []string
		check func(t *testing.T, g *Game)
	}{
		{
			name:  "wall",
			setup: func(*Game) {},
			want:  []string{"Dummy throw spear.", "Spear hit wall."},
			check: func(t *testing.T, g *Game) {
				if _, ok := g.Level.ItemAt(geo.Pt(4, 1)); !ok {
					t.Error("spear should drop before the wall")
				}
			},
		},
		{
			name: "closed door",
			setup: func(g *Game) {
				g.Level.Doors = append(g.Level.Doors, world.Door{Pos: geo.Pt(3, 1), Name: "door"})
			},
			want: []string{"Dummy throw spear.", "Spear hit door."},
			check: func(t *testing.T, g *Game) {
				if _, ok := g.Level.ItemAt(geo.Pt(2, 1)); !ok {
					t.Error("spear should drop before the door")
				}
			},
		},
		{
			name: "container",
			setup: func(g *Game) {
				g.Level.Containers = append(g.Level.Containers, world.Container{Pos: geo.Pt(3, 1), Name: "pot"})
			},
			want: []string{"Dummy throw spear.", "Spear falls into pot."},
			check: func(t *testing.T, g *Game) {
				if n := len(g.Level.ContainerAt(geo.Pt(3, 1)).Items); n != 1 {
					t.Errorf("pot holds %d items, want 1", n)
				}
			},
		},
		{
			name: "fountain",
			setup: func(g *Game) {
				g.Level.Fountains = append(g.Level.Fountains, world.Fountain{Pos: geo.Pt(3, 1), Name: "well"})
			},
			want: []string{"Dummy throw spear.", "Spear falls into well. Forever lost."},
			check: func(t *testing.T, g *Game) {
				if len(g.Level.Items) != 0 {
					t.Error("spear should be lost")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, dummy := testGame(
				"######",
				"#....#",
				"######",
			)
			dummy.Inventory.Wield(dummy.Inventory.Insert(spear()))
			tt.setup(g)
			g.Execute(dummy, types.Command{Verb: types.VerbFire, Dir: east})
			checkMessages(t, g, tt.want...)
			tt.check(t, g)
		})
	}
}

func TestFireNothing(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	g.Execute(dummy, types.Command{Verb: types.VerbFire, Dir: north})
	g.Execute(dummy, types.Command{Verb: types.VerbFire})
	checkMessages(t, g, "Dummy have nothing to throw.")
}

func TestDrink(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	addStub(g, geo.Pt(0, 1))
	g.Level.Containers = append(g.Level.Containers, world.Container{Pos: geo.Pt(1, 0), Name: "pot"})
	g.Level.Fountains = append(g.Level.Fountains, world.Fountain{Pos: geo.Pt(2, 1), Name: "well"})
	dummy.HP = 9

	g.Execute(dummy, types.Command{Verb: types.VerbDrink, Dir: geo.Pt(-1, 0)})
	g.Execute(dummy, types.Command{Verb: types.VerbDrink, Dir: north})
	g.Execute(dummy, types.Command{Verb: types.VerbDrink, Dir: east})
	g.Execute(dummy, types.Command{Verb: types.VerbDrink, Dir: east})
	g.Execute(dummy, types.Command{Verb: types.VerbDrink, Dir: south})

	checkMessages(t, g,
		"It is stub. Dummy is not a vampire to drink that.",
		"Unfortunately, pot is totally empty.",
		"Dummy drink from well. It helps a bit.",
		"Dummy drink from well.",
		"There is nothing to drink.",
	)
	if dummy.HP != 10 {
		t.Errorf("hp = %d, want 10", dummy.HP)
	}
}

func TestGrab(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	g.Execute(dummy, types.Command{Verb: types.VerbGrab})

	g.Level.DropItem(world.Item{Name: "apple"}, dummy.Pos)
	g.Level.DropItem(world.Item{Name: "Yendor", Quest: true}, dummy.Pos)
	g.Execute(dummy, types.Command{Verb: types.VerbGrab})
	g.Execute(dummy, types.Command{Verb: types.VerbGrab})

	checkMessages(t, g,
		"Nothing here to pick up.",
		"Dummy picked up apple from the floor.",
		"Dummy picked up Yendor from the floor.",
		"Now bring it back to the surface!",
	)
	if dummy.Inventory.Len() != 2 || len(g.Level.Items) != 0 {
		t.Errorf("inventory %d, floor %d", dummy.Inventory.Len(), len(g.Level.Items))
	}
}

func TestGrabFullInventory(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	for i := 0; i < world.SlotCount; i++ {
		dummy.Inventory.Insert(world.Item{Name: "rock"})
	}
	g.Level.DropItem(world.Item{Name: "apple"}, dummy.Pos)

	g.Execute(dummy, types.Command{Verb: types.VerbGrab})

	checkMessages(t, g, "Dummy carry too much items.")
	if len(g.Level.Items) != 1 {
		t.Error("apple should stay on the floor")
	}
}

func TestDrop(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	g.Execute(dummy, types.Command{Verb: types.VerbDrop})

	slot := dummy.Inventory.Insert(spear())
	dummy.Inventory.Wield(slot)
	g.Execute(dummy, types.Command{Verb: types.VerbDrop, Slot: 7})
	g.Execute(dummy, types.Command{Verb: types.VerbDrop, Slot: slot})

	checkMessages(t, g,
		"Dummy have nothing to drop.",
		"No such object.",
		"Dummy unwields spear.",
		"Dummy dropped spear on the floor.",
	)
	if dummy.Inventory.Wielded != world.Nothing {
		t.Error("dropped item should be unwielded")
	}
	if _, ok := g.Level.ItemAt(dummy.Pos); !ok {
		t.Error("spear should lie under the actor")
	}
}

func TestDropWornItem(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	slot := dummy.Inventory.Insert(armor())
	dummy.Inventory.Wield(slot)
	dummy.Inventory.Wear(slot)

	g.Execute(dummy, types.Command{Verb: types.VerbDrop, Slot: slot})

	checkMessages(t, g,
		"Dummy unwields armor.",
		"Dummy takes off armor.",
		"Dummy dropped armor on the floor.",
	)
}

func TestWield(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	a := dummy.Inventory.Insert(spear())
	b := dummy.Inventory.Insert(armor())
	dummy.Inventory.Wear(b)

	g.Execute(dummy, types.Command{Verb: types.VerbWield, Slot: 9})
	g.Execute(dummy, types.Command{Verb: types.VerbWield, Slot: a})
	g.Execute(dummy, types.Command{Verb: types.VerbWield, Slot: b})

	checkMessages(t, g,
		"No such object.",
		"Dummy wields spear.",
		"Dummy unwields spear.",
		"Dummy takes off armor.",
		"Dummy wields armor.",
	)
	if dummy.Inventory.Wielded != b || dummy.Inventory.Worn != world.Nothing {
		t.Errorf("wielded=%d worn=%d", dummy.Inventory.Wielded, dummy.Inventory.Worn)
	}
}

func TestUnwieldAndTakeOff(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	g.Execute(dummy, types.Command{Verb: types.VerbUnwield})
	g.Execute(dummy, types.Command{Verb: types.VerbTakeOff})

	dummy.Inventory.Wield(dummy.Inventory.Insert(spear()))
	dummy.Inventory.Wear(dummy.Inventory.Insert(armor()))
	g.Execute(dummy, types.Command{Verb: types.VerbUnwield})
	g.Execute(dummy, types.Command{Verb: types.VerbTakeOff})

	checkMessages(t, g,
		"Dummy is wielding nothing.",
		"Dummy is wearing nothing.",
		"Dummy unwields spear.",
		"Dummy takes off armor.",
	)
}

func TestWearSwapsOrder(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	old := dummy.Inventory.Insert(world.Item{Name: "robe", Wearable: true})
	next := dummy.Inventory.Insert(armor())
	dummy.Inventory.Wear(old)
	dummy.Inventory.Wield(next)

	g.Execute(dummy, types.Command{Verb: types.VerbWear, Slot: next})

	checkMessages(t, g,
		"Dummy takes off robe.",
		"Dummy unwields armor.",
		"Dummy wear armor.",
	)
	if dummy.Inventory.Worn != next || dummy.Inventory.Wielded != world.Nothing {
		t.Errorf("worn=%d wielded=%d", dummy.Inventory.Worn, dummy.Inventory.Wielded)
	}
}

func TestWearRefusals(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	slot := dummy.Inventory.Insert(spear())
	g.Execute(dummy, types.Command{Verb: types.VerbWear, Slot: 20})
	g.Execute(dummy, types.Command{Verb: types.VerbWear, Slot: slot})
	checkMessages(t, g, "No such object.", "Spear cannot be worn.")
}

func TestEat(t *testing.T) {
	tests := []struct {
		name       string
		item       world.Item
		hp         int
		poisoning  int
		want       []string
		wantHP     int
		wantPoison int
	}{
		{"plain", world.Item{Name: "apple", Edible: true}, 5, 0,
			[]string{"Dummy eats apple."}, 5, 0},
		{"heals some", world.Item{Name: "medkit", Edible: true, Healing: 2}, 5, 0,
			[]string{"Dummy eats medkit.", "Medkit heals Dummy."}, 7, 0},
		{"heals to cap", world.Item{Name: "megasphere", Edible: true, Healing: 8}, 5, 0,
			[]string{"Dummy eats megasphere.", "Megasphere heals Dummy completely."}, 10, 0},
		{"healing no effect", world.Item{Name: "medkit", Edible: true, Healing: 2}, 10, 0,
			[]string{"Dummy eats medkit.", "Medkit has no effect."}, 10, 0},
		{"antidote cures", world.Item{Name: "antidote", Edible: true, Antidote: 5}, 10, 5,
			[]string{"Dummy eats antidote.", "Antidote cures poisoning."}, 10, 0},
		{"antidote partial", world.Item{Name: "antidote", Edible: true, Antidote: 5}, 10, 10,
			[]string{"Dummy eats antidote.", "Antidote cures poisoning a little."}, 10, 5},
		{"antidote no effect", world.Item{Name: "antidote", Edible: true, Antidote: 2}, 10, 0,
			[]string{"Dummy eats antidote.", "Antidote has no effect."}, 10, 0},
		{"heals and cures", world.Item{Name: "herb", Edible: true, Healing: 2, Antidote: 5}, 5, 5,
			[]string{"Dummy eats herb.", "Herb heals Dummy.", "Herb cures poisoning."}, 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, dummy := testGame("...", "...", "...")
			dummy.HP = tt.hp
			dummy.Poisoning = tt.poisoning
			slot := dummy.Inventory.Insert(tt.item)

			g.Execute(dummy, types.Command{Verb: types.VerbEat, Slot: slot})

			checkMessages(t, g, tt.want...)
			if dummy.HP != tt.wantHP || dummy.Poisoning != tt.wantPoison {
				t.Errorf("hp=%d poisoning=%d, want %d/%d", dummy.HP, dummy.Poisoning, tt.wantHP, tt.wantPoison)
			}
			if !dummy.Inventory.Empty() {
				t.Error("eaten item should be consumed")
			}
		})
	}
}

func TestEatRefusalsAndUnequip(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	s := dummy.Inventory.Insert(spear())
	a := dummy.Inventory.Insert(world.Item{Name: "apple", Edible: true, Wearable: true})
	dummy.Inventory.Wear(a)
	dummy.Inventory.Wield(a)

	g.Execute(dummy, types.Command{Verb: types.VerbEat, Slot: 15})
	g.Execute(dummy, types.Command{Verb: types.VerbEat, Slot: s})
	g.Execute(dummy, types.Command{Verb: types.VerbEat, Slot: a})

	checkMessages(t, g,
		"No such object.",
		"Spear isn't edible.",
		"Dummy takes off apple.",
		"Dummy unwields apple.",
		"Dummy eats apple.",
	)
	if dummy.Inventory.Worn != world.Nothing || dummy.Inventory.Wielded != world.Nothing {
		t.Error("eaten item should be unequipped")
	}
}

func stairsGame(s world.Stairs) (*Game, *world.Monster) {
	g, dummy := testGame("...", "...", "...")
	s.Pos = dummy.Pos
	s.Name = "stairs"
	g.Level.Stairs = append(g.Level.Stairs, s)
	return g, dummy
}

func TestGoUpWithoutQuest(t *testing.T) {
	g, dummy := stairsGame(world.Stairs{GoesUp: true, UpDestination: -1})
	g.Execute(dummy, types.Command{Verb: types.VerbGoUp})
	g.Execute(dummy, types.Command{Verb: types.VerbGoDown})
	checkMessages(t, g,
		"Dummy must complete mission in order to go back to the surface.",
		"Dummy cannot go down from here.",
	)
	if g.Status != types.StatusPlaying {
		t.Errorf("status = %v, want playing", g.Status)
	}
}

func TestGoUpWithQuestCompletes(t *testing.T) {
	g, dummy := stairsGame(world.Stairs{GoesUp: true, UpDestination: -1})
	dummy.Inventory.Insert(world.Item{Name: "Yendor", Quest: true})

	g.Execute(dummy, types.Command{Verb: types.VerbGoUp})

	checkMessages(t, g, "Dummy have brought Yendor to the surface. Yay! Game is finished.")
	if g.Status != types.StatusCompleted {
		t.Errorf("status = %v, want completed", g.Status)
	}
}

func TestGoNowhere(t *testing.T) {
	g, dummy := testGame("...", "...", "...")
	g.Execute(dummy, types.Command{Verb: types.VerbGoUp})
	checkMessages(t, g, "Dummy cannot go up from here.")
}

func TestSmartMove(t *testing.T) {
	t.Run("swings at monster", func(t *testing.T) {
		g, dummy := testGame("...", "...", "...")
		addStub(g, geo.Pt(1, 0))
		g.Execute(dummy, types.Command{Verb: types.VerbSmartMove, Dir: north})
		checkMessages(t, g, "Dummy hit stub for 1 hp.")
	})
	t.Run("opens door and plans the step", func(t *testing.T) {
		g, dummy := testGame("...", "...", "...")
		g.Level.Doors = append(g.Level.Doors, world.Door{Pos: geo.Pt(1, 0), Name: "door"})
		g.Execute(dummy, types.Command{Verb: types.VerbSmartMove, Dir: north})
		checkMessages(t, g, "Dummy opened the door.")
		want := []types.Command{{Verb: types.VerbMove, Dir: north}}
		if !reflect.DeepEqual(dummy.Plan, want) {
			t.Errorf("plan = %v, want %v", dummy.Plan, want)
		}
	})
	t.Run("locked door plans nothing", func(t *testing.T) {
		g, dummy := lockedDoorGame()
		g.Execute(dummy, types.Command{Verb: types.VerbSmartMove, Dir: north})
		checkMessages(t, g, "Door is locked.")
		if len(dummy.Plan) != 0 {
			t.Errorf("plan = %v, want empty", dummy.Plan)
		}
	})
	t.Run("drinks from fountain", func(t *testing.T) {
		g, dummy := testGame("...", "...", "...")
		g.Level.Fountains = append(g.Level.Fountains, world.Fountain{Pos: geo.Pt(1, 0), Name: "well"})
		g.Execute(dummy, types.Command{Verb: types.VerbSmartMove, Dir: north})
		checkMessages(t, g, "Dummy drink from well.")
	})
	t.Run("moves", func(t *testing.T) {
		g, dummy := testGame("...", "...", "...")
		g.Execute(dummy, types.Command{Verb: types.VerbSmartMove, Dir: north})
		if dummy.Pos != geo.Pt(1, 0) {
			t.Errorf("actor at %v", dummy.Pos)
		}
	})
}
