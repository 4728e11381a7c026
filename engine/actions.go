package engine

import (
	"github.com/nathoo/temple/engine/events"
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

// FountainHealing is the hit points one drink restores.
const FountainHealing = 1

// Action is a resolved command. Commit applies it for actor. Failures are
// reported through the message log and never abort the turn.
type Action interface {
	Commit(actor *world.Monster, g *Game)
}

// ActionFor builds the action for cmd. Unknown verbs wait.
func ActionFor(cmd types.Command) Action {
	dir := cmd.Dir.Sign()
	switch cmd.Verb {
	case types.VerbMove:
		return Move{Dir: dir}
	case types.VerbSmartMove:
		return SmartMove{Dir: dir}
	case types.VerbOpen:
		return Open{Dir: dir}
	case types.VerbClose:
		return Close{Dir: dir}
	case types.VerbSwing:
		return Swing{Dir: dir}
	case types.VerbFire:
		return Fire{Dir: dir}
	case types.VerbDrink:
		return Drink{Dir: dir}
	case types.VerbGrab:
		return Grab{}
	case types.VerbDrop:
		return Drop{Slot: cmd.Slot}
	case types.VerbWield:
		return Wield{Slot: cmd.Slot}
	case types.VerbUnwield:
		return Unwield{}
	case types.VerbWear:
		return Wear{Slot: cmd.Slot}
	case types.VerbTakeOff:
		return TakeOff{}
	case types.VerbEat:
		return Eat{Slot: cmd.Slot}
	case types.VerbGoUp:
		return GoUp{}
	case types.VerbGoDown:
		return GoDown{}
	default:
		return Wait{}
	}
}

// Wait does nothing.
type Wait struct{}

func (Wait) Commit(*world.Monster, *Game) {}

// Move steps one cell.
type Move struct{ Dir geo.Point }

func (a Move) Commit(actor *world.Monster, g *Game) {
	if a.Dir.IsZero() {
		return
	}
	level := g.Level
	to := actor.Pos.Add(a.Dir)
	if cell := level.Map.Cell(to); !cell.Passable {
		g.Message("%s bump into the %s.", actor.Name, cellName(cell))
		return
	}
	if door := level.DoorAt(to); door != nil && !door.Opened {
		g.Message("%s is closed.", doorName(door))
		return
	}
	if m := level.MonsterAt(to); m != nil {
		g.Message("%s bump into %s.", actor.Name, m.Name)
		return
	}
	if c := level.ContainerAt(to); c != nil {
		g.Message("%s bump into %s.", actor.Name, c.Name)
		return
	}
	if f := level.FountainAt(to); f != nil {
		g.Message("%s bump into %s.", actor.Name, f.Name)
		return
	}
	actor.Pos = to
	if trap := level.TrapAt(to); trap != nil {
		g.springTrap(actor, trap)
	}
}

func (g *Game) springTrap(actor *world.Monster, trap *world.Trap) {
	if trap.Triggered {
		g.Message("%s is already triggered.", trap.Name)
		return
	}
	trap.Triggered = true
	g.Message("%s trigger the %s.", actor.Name, trap.Name)
	g.emit(events.TrapTriggered, map[string]any{"name": actor.Name})
	if trap.Bolt == nil {
		return
	}
	bolt := *trap.Bolt
	trap.Bolt = nil
	g.Level.DropItem(bolt, actor.Pos)
	g.Message("%s is hit by bolt.", actor.Name)
	g.Hurt(actor, bolt.Damage)
}

// SmartMove acts on whatever is in the way: swings at monsters, opens
// doors and containers, drinks from fountains, and otherwise moves.
type SmartMove struct{ Dir geo.Point }

func (a SmartMove) Commit(actor *world.Monster, g *Game) {
	if a.Dir.IsZero() {
		return
	}
	level := g.Level
	to := actor.Pos.Add(a.Dir)
	if m := level.MonsterAt(to); m != nil && m.Alive() {
		Swing(a).Commit(actor, g)
		return
	}
	if door := level.DoorAt(to); door != nil && !door.Opened {
		Open(a).Commit(actor, g)
		if door.Opened {
			actor.Plan = append([]types.Command{{Verb: types.VerbMove, Dir: a.Dir}}, actor.Plan...)
		}
		return
	}
	if level.ContainerAt(to) != nil {
		Open(a).Commit(actor, g)
		return
	}
	if level.FountainAt(to) != nil {
		Drink(a).Commit(actor, g)
		return
	}
	Move(a).Commit(actor, g)
}

// Open opens a door, or takes one item out of a container onto the
// actor's own cell.
type Open struct{ Dir geo.Point }

func (a Open) Commit(actor *world.Monster, g *Game) {
	if a.Dir.IsZero() {
		return
	}
	level := g.Level
	at := actor.Pos.Add(a.Dir)
	if door := level.DoorAt(at); door != nil {
		if door.Opened {
			g.Message("%s is already opened.", doorName(door))
			return
		}
		if door.Locked {
			if !actor.Inventory.HasKey(door.LockType) {
				g.Message("%s is locked.", doorName(door))
				return
			}
			door.Locked = false
			g.Message("%s unlocked the %s.", actor.Name, doorName(door))
			g.emit(events.DoorUnlocked, map[string]any{"name": actor.Name})
		}
		door.Opened = true
		g.Message("%s opened the %s.", actor.Name, doorName(door))
		return
	}
	if c := level.ContainerAt(at); c != nil {
		if len(c.Items) == 0 {
			g.Message("%s is empty.", c.Name)
			return
		}
		it := c.Items[0]
		c.Items = c.Items[1:]
		level.DropItem(it, actor.Pos)
		g.Message("%s took up a %s from %s.", actor.Name, it.Name, c.Name)
		return
	}
	if f := level.FountainAt(at); f != nil {
		g.Message("%s cannot be opened.", f.Name)
		return
	}
	g.Message("There is nothing to open there.")
}

// Close closes an open door.
type Close struct{ Dir geo.Point }

func (a Close) Commit(actor *world.Monster, g *Game) {
	if a.Dir.IsZero() {
		return
	}
	door := g.Level.DoorAt(actor.Pos.Add(a.Dir))
	if door == nil {
		g.Message("There is nothing to close there.")
		return
	}
	if !door.Opened {
		g.Message("%s is already closed.", doorName(door))
		return
	}
	door.Opened = false
	g.Message("%s closed the %s.", actor.Name, doorName(door))
}

// Swing attacks the adjacent cell.
type Swing struct{ Dir geo.Point }

func (a Swing) Commit(actor *world.Monster, g *Game) {
	if a.Dir.IsZero() {
		return
	}
	level := g.Level
	at := actor.Pos.Add(a.Dir)
	if m := level.MonsterAt(at); m != nil {
		g.Hit(actor, m, actor.Damage())
		return
	}
	if door := level.DoorAt(at); door != nil && !door.Opened {
		g.Message("%s swing at %s.", actor.Name, doorName(door))
		Open(a).Commit(actor, g)
		return
	}
	if cell := level.Map.Cell(at); !cell.Passable {
		g.Message("%s hit %s.", actor.Name, cellName(cell))
		return
	}
	g.Message("%s swing at nothing.", actor.Name)
}

// Fire throws the wielded item in a direction until it hits something.
type Fire struct{ Dir geo.Point }

func (a Fire) Commit(actor *world.Monster, g *Game) {
	if a.Dir.IsZero() {
		return
	}
	if actor.WieldedItem() == nil {
		g.Message("%s have nothing to throw.", actor.Name)
		return
	}
	it, _ := actor.Inventory.Take(actor.Inventory.Wielded)
	g.Message("%s throw %s.", actor.Name, it.Name)

	level := g.Level
	pos := actor.Pos
	for {
		next := pos.Add(a.Dir)
		if door := level.DoorAt(next); door != nil && !door.Opened {
			g.Message("%s hit %s.", it.Name, doorName(door))
			level.DropItem(it, pos)
			return
		}
		if cell := level.Map.Cell(next); !cell.Passable || !cell.Transparent {
			g.Message("%s hit %s.", it.Name, cellName(cell))
			level.DropItem(it, pos)
			return
		}
		if c := level.ContainerAt(next); c != nil {
			c.Items = append(c.Items, it)
			g.Message("%s falls into %s.", it.Name, c.Name)
			return
		}
		if f := level.FountainAt(next); f != nil {
			g.Message("%s falls into %s. Forever lost.", it.Name, f.Name)
			return
		}
		if m := level.MonsterAt(next); m != nil {
			g.Message("%s hits %s.", it.Name, m.Name)
			level.DropItem(it, next)
			g.Hit(actor, m, it.Damage)
			return
		}
		pos = next
	}
}

// Drink drinks from an adjacent fountain.
type Drink struct{ Dir geo.Point }

func (a Drink) Commit(actor *world.Monster, g *Game) {
	if a.Dir.IsZero() {
		return
	}
	level := g.Level
	at := actor.Pos.Add(a.Dir)
	if m := level.MonsterAt(at); m != nil {
		g.Message("It is %s. %s is not a vampire to drink that.", m.Name, actor.Name)
		return
	}
	if c := level.ContainerAt(at); c != nil {
		g.Message("Unfortunately, %s is totally empty.", c.Name)
		return
	}
	if f := level.FountainAt(at); f != nil {
		if actor.HP < actor.MaxHP {
			actor.HP = min(actor.HP+FountainHealing, actor.MaxHP)
			g.Message("%s drink from %s. It helps a bit.", actor.Name, f.Name)
			return
		}
		g.Message("%s drink from %s.", actor.Name, f.Name)
		return
	}
	g.Message("There is nothing to drink.")
}

// Grab picks up the first item lying under the actor.
type Grab struct{}

func (Grab) Commit(actor *world.Monster, g *Game) {
	level := g.Level
	i, ok := level.ItemAt(actor.Pos)
	if !ok {
		g.Message("Nothing here to pick up.")
		return
	}
	if actor.Inventory.Len() >= world.SlotCount {
		g.Message("%s carry too much items.", actor.Name)
		return
	}
	it := level.TakeItem(i)
	actor.Inventory.Insert(it)
	g.Message("%s picked up %s from the floor.", actor.Name, it.Name)
	g.emit(events.ItemPicked, map[string]any{"name": actor.Name, "item": it.Name})
	if it.Quest {
		g.Message("Now bring it back to the surface!")
	}
}

// Drop puts an inventory item on the floor.
type Drop struct{ Slot int }

func (a Drop) Commit(actor *world.Monster, g *Game) {
	inv := &actor.Inventory
	if inv.Empty() {
		g.Message("%s have nothing to drop.", actor.Name)
		return
	}
	it := inv.Get(a.Slot)
	if it == nil {
		g.Message("No such object.")
		return
	}
	if inv.Wielded == a.Slot {
		g.Message("%s unwields %s.", actor.Name, it.Name)
	}
	if inv.Worn == a.Slot {
		g.Message("%s takes off %s.", actor.Name, it.Name)
	}
	dropped, _ := inv.Take(a.Slot)
	g.Level.DropItem(dropped, actor.Pos)
	g.Message("%s dropped %s on the floor.", actor.Name, dropped.Name)
}

// Wield takes an inventory item in hand, putting away what was there.
type Wield struct{ Slot int }

func (a Wield) Commit(actor *world.Monster, g *Game) {
	inv := &actor.Inventory
	it := inv.Get(a.Slot)
	if it == nil {
		g.Message("No such object.")
		return
	}
	if old := actor.WieldedItem(); old != nil {
		g.Message("%s unwields %s.", actor.Name, old.Name)
		inv.Unwield()
	}
	if inv.Worn == a.Slot {
		g.Message("%s takes off %s.", actor.Name, it.Name)
		inv.TakeOff()
	}
	inv.Wield(a.Slot)
	g.Message("%s wields %s.", actor.Name, it.Name)
}

// Unwield empties the actor's hands.
type Unwield struct{}

func (Unwield) Commit(actor *world.Monster, g *Game) {
	it := actor.WieldedItem()
	if it == nil {
		g.Message("%s is wielding nothing.", actor.Name)
		return
	}
	g.Message("%s unwields %s.", actor.Name, it.Name)
	actor.Inventory.Unwield()
}

// Wear puts on a wearable inventory item, taking off what was worn.
type Wear struct{ Slot int }

func (a Wear) Commit(actor *world.Monster, g *Game) {
	inv := &actor.Inventory
	it := inv.Get(a.Slot)
	if it == nil {
		g.Message("No such object.")
		return
	}
	if !it.Wearable {
		g.Message("%s cannot be worn.", it.Name)
		return
	}
	if old := actor.WornItem(); old != nil {
		g.Message("%s takes off %s.", actor.Name, old.Name)
		inv.TakeOff()
	}
	if inv.Wielded == a.Slot {
		g.Message("%s unwields %s.", actor.Name, it.Name)
		inv.Unwield()
	}
	inv.Wear(a.Slot)
	g.Message("%s wear %s.", actor.Name, it.Name)
}

// TakeOff removes the worn item.
type TakeOff struct{}

func (TakeOff) Commit(actor *world.Monster, g *Game) {
	it := actor.WornItem()
	if it == nil {
		g.Message("%s is wearing nothing.", actor.Name)
		return
	}
	g.Message("%s takes off %s.", actor.Name, it.Name)
	actor.Inventory.TakeOff()
}

// Eat consumes an edible inventory item and applies its effect.
type Eat struct{ Slot int }

func (a Eat) Commit(actor *world.Monster, g *Game) {
	inv := &actor.Inventory
	it := inv.Get(a.Slot)
	if it == nil {
		g.Message("No such object.")
		return
	}
	if !it.Edible {
		g.Message("%s isn't edible.", it.Name)
		return
	}
	if inv.Worn == a.Slot {
		g.Message("%s takes off %s.", actor.Name, it.Name)
	}
	if inv.Wielded == a.Slot {
		g.Message("%s unwields %s.", actor.Name, it.Name)
	}
	food, _ := inv.Take(a.Slot)
	g.Message("%s eats %s.", actor.Name, food.Name)

	if food.Healing > 0 {
		before := actor.HP
		actor.HP = min(actor.HP+food.Healing, actor.MaxHP)
		switch {
		case actor.HP <= before:
			g.Message("%s has no effect.", food.Name)
		case actor.HP == actor.MaxHP:
			g.Message("%s heals %s completely.", food.Name, actor.Name)
		default:
			g.Message("%s heals %s.", food.Name, actor.Name)
		}
	}
	if food.Antidote > 0 {
		switch {
		case actor.Poisoning == 0:
			g.Message("%s has no effect.", food.Name)
		case actor.Poisoning <= food.Antidote:
			actor.Poisoning = 0
			g.Message("%s cures poisoning.", food.Name)
		default:
			actor.Poisoning -= food.Antidote
			g.Message("%s cures poisoning a little.", food.Name)
		}
	}
}

// GoUp climbs the stairs under the actor.
type GoUp struct{}

func (GoUp) Commit(actor *world.Monster, g *Game) {
	s := g.Level.StairsAt(actor.Pos)
	if s == nil || !s.GoesUp {
		g.Message("%s cannot go up from here.", actor.Name)
		return
	}
	g.takeStairs(actor, s.UpDestination, "up")
}

// GoDown descends the stairs under the actor.
type GoDown struct{}

func (GoDown) Commit(actor *world.Monster, g *Game) {
	s := g.Level.StairsAt(actor.Pos)
	if s == nil || !s.GoesDown {
		g.Message("%s cannot go down from here.", actor.Name)
		return
	}
	g.takeStairs(actor, s.DownDestination, "down")
}

// takeStairs leaves the dungeon on a negative destination, otherwise moves
// the player to a newly generated level. Other monsters stay put.
func (g *Game) takeStairs(actor *world.Monster, dest int, way string) {
	if actor.Faction != types.FactionPlayer {
		return
	}
	if dest < 0 {
		quest := questItem(actor)
		if quest == nil {
			g.Message("%s must complete mission in order to go back to the surface.", actor.Name)
			return
		}
		g.Message("%s have brought %s to the surface. Yay! Game is finished.", actor.Name, quest.Name)
		g.Status = types.StatusCompleted
		g.emit(events.GameCompleted, map[string]any{"turns": g.Turns})
		return
	}
	g.Message("%s goes %s.", actor.Name, way)
	if g.Gen == nil {
		return
	}
	g.changeLevel(actor, dest)
}

func questItem(m *world.Monster) *world.Item {
	for _, it := range m.Inventory.Slots {
		if it != nil && it.Quest {
			return it
		}
	}
	return nil
}

// cellName names a blocking cell. Cells off the map have no name.
func cellName(c world.CellType) string {
	if c.Name == "" {
		return "wall"
	}
	return c.Name
}

func doorName(d *world.Door) string {
	if d.Name == "" {
		return "door"
	}
	return d.Name
}
