// Package engine runs a game session: the turn loop, the commands monsters
// issue, and the rules that resolve them against the current level.
package engine

import (
	"fmt"
	"log"
	"unicode"
	"unicode/utf8"

	"github.com/nathoo/temple/engine/events"
	"github.com/nathoo/temple/engine/gen"
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

// LevelGenerator builds the level for a dungeon depth.
type LevelGenerator interface {
	Generate(index int, rnd gen.Rand) *world.Level
}

// Controller decides what a non-player monster does this turn. It must
// return promptly; the zero Command waits.
type Controller func(m *world.Monster, g *Game) types.Command

// Controllers maps AI ids to controllers.
type Controllers map[string]Controller

// Game is one play session. It exclusively owns the current level.
type Game struct {
	Level       *world.Level
	Turns       int
	Messages    []string
	Status      types.Status
	Depth       int
	RNG         *RNG
	Gen         LevelGenerator
	Controllers Controllers
	Bus         *events.Bus

	pending      []types.Event
	levelChanged bool
}

// New starts a session on depth 0.
func New(lg LevelGenerator, rng *RNG, controllers Controllers) *Game {
	g := NewGame(lg.Generate(0, rng), rng)
	g.Gen = lg
	g.Controllers = controllers
	return g
}

// NewGame wraps an existing level. Used by save loading and tests.
func NewGame(level *world.Level, rng *RNG) *Game {
	if rng == nil {
		rng = NewRNG(0)
	}
	g := &Game{
		Level: level,
		RNG:   rng,
		Bus:   &events.Bus{},
	}
	g.refreshFOV()
	return g
}

// Player returns the player monster of the current level, or nil.
func (g *Game) Player() *world.Monster {
	return g.Level.Player()
}

// Done reports whether the session no longer accepts turns.
func (g *Game) Done() bool {
	return g.Status != types.StatusPlaying
}

// Message formats a line, capitalises its first letter and appends it to
// the log.
func (g *Game) Message(format string, args ...any) {
	text := capitalize(fmt.Sprintf(format, args...))
	log.Printf("message: %s", text)
	g.Messages = append(g.Messages, text)
}

// MessagesSince returns messages logged after mark and the new mark.
func (g *Game) MessagesSince(mark int) ([]string, int) {
	if mark < 0 || mark > len(g.Messages) {
		mark = len(g.Messages)
	}
	return g.Messages[mark:], len(g.Messages)
}

func (g *Game) emit(eventType string, data map[string]any) {
	g.pending = append(g.pending, types.Event{Type: eventType, Data: data})
}

// Turn runs one full round: every living monster acts once, in order. The
// player faction acts on input unless it has a plan queued. Dead monsters
// are removed after everyone has acted. Returns the events of the round.
func (g *Game) Turn(input types.Command) []types.Event {
	if g.Done() {
		return nil
	}
	g.levelChanged = false
	level := g.Level
	monsters := append([]*world.Monster(nil), level.Monsters...)

	for _, m := range monsters {
		if !m.Alive() {
			continue
		}
		if m.Poisoning > 0 {
			m.Poisoning--
			g.Hurt(m, 1)
			if g.Done() {
				break
			}
			if !m.Alive() {
				continue
			}
		}
		g.Execute(m, g.commandFor(m, input))
		g.refreshFOV()
		if g.levelChanged || g.Done() {
			break
		}
	}

	if !g.levelChanged {
		level.EraseDeadMonsters()
	}
	g.Turns++

	evts := g.pending
	g.pending = nil
	g.Bus.Dispatch(evts)
	return evts
}

func (g *Game) commandFor(m *world.Monster, input types.Command) types.Command {
	if m.Faction == types.FactionPlayer {
		if len(m.Plan) > 0 {
			cmd := m.Plan[0]
			m.Plan = m.Plan[1:]
			if len(m.Plan) == 0 {
				m.Plan = nil
			}
			return cmd
		}
		return input
	}
	ctrl, ok := g.Controllers[m.AI]
	if !ok {
		log.Printf("No controller found for AI %q", m.AI)
		return types.Command{Verb: types.VerbWait}
	}
	return ctrl(m, g)
}

// Execute resolves one command for actor immediately.
func (g *Game) Execute(actor *world.Monster, cmd types.Command) {
	ActionFor(cmd).Commit(actor, g)
}

func (g *Game) refreshFOV() {
	if p := g.Level.Player(); p != nil {
		g.Level.InvalidateFOV(p)
	}
}

// changeLevel replaces the level with a freshly generated one for depth
// dest and puts player on the stairs leading back to the current depth.
func (g *Game) changeLevel(player *world.Monster, dest int) {
	from := g.Depth
	level := g.Gen.Generate(dest, g.RNG)

	arrive := geo.Point{}
	found := false
	for _, s := range level.Stairs {
		if (s.GoesUp && s.UpDestination == from) || (s.GoesDown && s.DownDestination == from) {
			arrive, found = s.Pos, true
			break
		}
	}

	player.Plan = nil
	replaced := false
	for i, m := range level.Monsters {
		if m.Faction == types.FactionPlayer {
			if !found {
				arrive = m.Pos
			}
			level.Monsters[i] = player
			replaced = true
			break
		}
	}
	if !replaced {
		level.Monsters = append([]*world.Monster{player}, level.Monsters...)
	}
	player.Pos = arrive

	g.Level = level
	g.Depth = dest
	g.levelChanged = true
	g.refreshFOV()
	g.emit(events.LevelChanged, map[string]any{"from": from, "to": dest})
}

// Travel queues a walk for the player to target. It reports false when no
// path exists.
func (g *Game) Travel(target geo.Point) bool {
	p := g.Player()
	if p == nil {
		return false
	}
	p.Plan = g.Level.FindPath(p.Pos, target)
	return len(p.Plan) > 0
}

// Planning reports whether the player has queued commands left.
func (g *Game) Planning() bool {
	p := g.Player()
	return p != nil && len(p.Plan) > 0
}

// ClearPlan drops the player's queued commands.
func (g *Game) ClearPlan() {
	if p := g.Player(); p != nil {
		p.Plan = nil
	}
}

// Suspend stops the session so it can be saved and resumed later.
func (g *Game) Suspend() {
	if !g.Done() {
		g.Status = types.StatusSuspended
	}
}

// Suicide ends the session with the player dead.
func (g *Game) Suicide() {
	if g.Done() {
		return
	}
	if p := g.Player(); p != nil {
		p.HP = 0
	}
	g.Message("You committed suicide.")
	g.Status = types.StatusPlayerDied
	g.emit(events.PlayerDied, map[string]any{"cause": "suicide"})
}

// Describe tells the player what is at p.
func (g *Game) Describe(p geo.Point) string {
	props := g.Level.Map.CellProps(p)
	switch {
	case props == nil:
		return "You cannot see there."
	case props.Visible:
		return fmt.Sprintf("You see %s.", g.Level.NameAt(p))
	case props.SeenSprite != types.SpriteEmpty:
		if props.SeenSprite == g.Level.SpriteAt(p) {
			return fmt.Sprintf("You recall %s.", g.Level.NameAt(p))
		}
		return fmt.Sprintf("You recall %s.", g.Level.Map.Cell(p).Name)
	default:
		return "You cannot see there."
	}
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
