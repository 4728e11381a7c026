package engine

import (
	"github.com/nathoo/temple/engine/events"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

// PoisonDuration is how many turns a poisonous hit keeps hurting.
const PoisonDuration = 5

// Hit resolves a blow of the given damage from attacker to victim. Worn
// armour absorbs its defence; the message reports what got through.
func (g *Game) Hit(attacker, victim *world.Monster, damage int) {
	received := damage
	if armour := victim.WornItem(); armour != nil {
		received -= armour.Defence
	}
	if received < 0 {
		received = 0
	}
	g.Message("%s hit %s for %d hp.", attacker.Name, victim.Name, received)
	if attacker.Poisonous && received > 0 && victim.Alive() {
		victim.Poisoning = max(victim.Poisoning, PoisonDuration)
		g.Message("%s is poisoned.", victim.Name)
	}
	g.Hurt(victim, received)
}

// Hurt takes amount hit points from victim. A monster brought to zero drops
// everything it carries where it stands; it stays on the level until the
// end of the turn.
func (g *Game) Hurt(victim *world.Monster, amount int) {
	if amount <= 0 || victim.Godmode || !victim.Alive() {
		return
	}
	victim.HP -= amount
	if victim.Alive() {
		return
	}
	g.die(victim)
}

func (g *Game) die(victim *world.Monster) {
	for {
		it, ok := victim.Inventory.TakeFirst()
		if !ok {
			break
		}
		g.Level.DropItem(it, victim.Pos)
	}
	victim.Poisoning = 0
	victim.Plan = nil
	g.Message("%s died.", victim.Name)
	if victim.Faction == types.FactionPlayer {
		g.Status = types.StatusPlayerDied
		g.emit(events.PlayerDied, map[string]any{"name": victim.Name})
		return
	}
	g.emit(events.MonsterDied, map[string]any{"name": victim.Name, "id": victim.ID})
}
