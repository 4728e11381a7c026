// Package ai holds the monster controllers. Each controller looks at the
// monster and the game and returns the command for this turn; none of them
// mutate state.
package ai

import (
	"github.com/nathoo/temple/engine"
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/path"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

// Controller ids understood by Default.
const (
	Still          = "still"
	Wander         = "wander"
	CalmAndStill   = "calm_and_still"
	AngryAndStill  = "angry_and_still"
	AngryAndWander = "angry_and_wander"
	Fighter        = "fighter"
)

// Default returns the built-in controllers keyed by id.
func Default() engine.Controllers {
	return engine.Controllers{
		Still:          still,
		Wander:         wander,
		CalmAndStill:   calmAndStill,
		AngryAndStill:  angryAndStill,
		AngryAndWander: angryAndWander,
		Fighter:        fighter,
	}
}

var wait = types.Command{Verb: types.VerbWait}

func still(*world.Monster, *engine.Game) types.Command {
	return wait
}

// wander steps in a random direction, or waits if that cell is taken.
func wander(m *world.Monster, g *engine.Game) types.Command {
	shift := geo.Neighbours[g.RNG.Intn(len(geo.Neighbours))]
	if !g.Level.Passable(m.Pos.Add(shift)) {
		return wait
	}
	return types.Command{Verb: types.VerbMove, Dir: shift}
}

// calmAndStill leaves the player alone until it gets hurt.
func calmAndStill(m *world.Monster, g *engine.Game) types.Command {
	if m.HP < m.MaxHP {
		return angryAndStill(m, g)
	}
	return wait
}

// angryAndStill attacks a player standing next to it.
func angryAndStill(m *world.Monster, g *engine.Game) types.Command {
	if cmd, ok := strike(m, g); ok {
		return cmd
	}
	return wait
}

// angryAndWander hunts a visible player and wanders otherwise.
func angryAndWander(m *world.Monster, g *engine.Game) types.Command {
	if cmd, ok := hunt(m, g); ok {
		return cmd
	}
	return wander(m, g)
}

// fighter hunts a visible player and holds position otherwise.
func fighter(m *world.Monster, g *engine.Game) types.Command {
	if cmd, ok := hunt(m, g); ok {
		return cmd
	}
	return wait
}

func target(m *world.Monster, g *engine.Game) *world.Monster {
	p := g.Player()
	if p == nil || p == m || !p.Alive() {
		return nil
	}
	return p
}

func strike(m *world.Monster, g *engine.Game) (types.Command, bool) {
	p := target(m, g)
	if p == nil || !m.Pos.Adjacent(p.Pos) {
		return types.Command{}, false
	}
	return types.Command{Verb: types.VerbSwing, Dir: p.Pos.Sub(m.Pos)}, true
}

// hunt swings at an adjacent player, or takes the first step of the
// shortest walk towards a player in sight.
func hunt(m *world.Monster, g *engine.Game) (types.Command, bool) {
	if cmd, ok := strike(m, g); ok {
		return cmd, true
	}
	p := target(m, g)
	if p == nil || !g.Level.CanSee(m, p.Pos) {
		return types.Command{}, false
	}
	steps := path.Find(m.Pos, p.Pos, func(c geo.Point) bool {
		return c == p.Pos || g.Level.Passable(c)
	})
	if len(steps) == 0 {
		return types.Command{}, false
	}
	return types.Command{Verb: types.VerbMove, Dir: steps[0]}, true
}
