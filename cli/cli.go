// Package cli provides plain line-mode I/O and meta-command dispatch for
// the Temple engine. It serves scripts, pipes and dumb terminals.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/temple/engine"
	"github.com/nathoo/temple/engine/content"
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/parser"
	"github.com/nathoo/temple/engine/save"
	"github.com/nathoo/temple/types"
)

// CLI handles line-mode interaction with the player.
type CLI struct {
	Game        *engine.Game
	Gen         engine.LevelGenerator
	Controllers engine.Controllers
	Store       save.Store // nil disables /save and /load
	SaveName    string
	In          io.Reader
	Out         io.Writer
	Trace       bool
	EchoInput   bool // echo each input line after the prompt (for script playback)
	ShowMap     bool // redraw the map after every turn
	lastCmd     string
	mark        int
}

// New creates a CLI wired to the given game.
func New(g *engine.Game, store save.Store, saveName string) *CLI {
	return &CLI{
		Game:        g,
		Gen:         g.Gen,
		Controllers: g.Controllers,
		Store:       store,
		SaveName:    saveName,
		In:          os.Stdin,
		Out:         os.Stdout,
	}
}

// Run shows the map, then loops: prompt, input, dispatch, output. It
// returns when input ends, the game is over or the player suspends.
func (c *CLI) Run() {
	c.printMessages()
	c.printMap()

	scanner := bufio.NewScanner(c.In)
	for !c.Game.Done() {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		// "again" repeats the last game command.
		if strings.EqualFold(input, "again") {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		cmd, err := parser.Parse(input)
		if err != nil {
			c.printSystem(capitalize(err.Error()) + ".")
			continue
		}
		c.play(cmd)
	}
	c.printEnd()
}

// play runs one turn for cmd, then lets any queued plan run out.
func (c *CLI) play(cmd types.Command) {
	evts := c.Game.Turn(cmd)
	for c.Game.Planning() && !c.Game.Done() {
		evts = append(evts, c.Game.Turn(types.Command{Verb: types.VerbWait})...)
	}
	c.printMessages()
	if c.Trace {
		c.printTrace(evts)
	}
	if c.ShowMap {
		c.printMap()
	}
}

// handleMeta dispatches meta-commands. Returns true if the loop should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	switch cmd {
	case "/quit", "/exit":
		c.Game.Suspend()
		c.printSystem("Game suspended.")
		return true

	case "/suicide":
		c.Game.Suicide()
		c.printMessages()
		c.printEnd()
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/map":
		c.printMap()

	case "/inventory", "/i":
		c.cmdInventory()

	case "/look":
		if p, ok := c.point(args); ok {
			c.printLine(c.Game.Describe(p))
		}

	case "/travel":
		if p, ok := c.point(args); ok {
			if !c.Game.Travel(p) {
				c.printSystem("No way there.")
				return false
			}
			c.play(types.Command{Verb: types.VerbWait})
		}

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// point parses "x y" map coordinates.
func (c *CLI) point(args []string) (geo.Point, bool) {
	if len(args) != 2 {
		c.printSystem("Expected map coordinates: x y.")
		return geo.Point{}, false
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		c.printSystem("Expected map coordinates: x y.")
		return geo.Point{}, false
	}
	return geo.Pt(x, y), true
}

func (c *CLI) cmdSave(name string) {
	if c.Store == nil {
		c.printSystem("Saving is not available.")
		return
	}
	if name == "" {
		name = c.SaveName
	}

	data, err := save.Save(c.Game)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := c.Store.Save(name, data); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if c.Store == nil {
		c.printSystem("Loading is not available.")
		return
	}
	if name == "" {
		name = c.SaveName
	}

	data, err := c.Store.Load(name)
	if errors.Is(err, save.ErrNotFound) {
		c.printSystem(fmt.Sprintf("No save named %s.", name))
		return
	}
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	g, err := save.Load(data, c.Gen, c.Controllers)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	c.Game = g
	_, c.mark = g.MessagesSince(0)
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, g.Turns))
	c.printMap()
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]     Save game",
		"  /load [name]     Load game",
		"  /quit            Suspend and exit",
		"  /suicide         End the game",
		"  /map             Draw the map",
		"  /inventory (/i)  List carried items",
		"  /look x y        Describe a map cell",
		"  /travel x y      Walk to a map cell",
		"  /state           Debug: dump current state",
		"  /trace           Toggle event trace output",
		"  /help            Show this help",
		"",
		"Game commands:",
		"  n/s/e/w/ne/nw/se/sw    Step, attack, open or drink that way",
		"  move|open|close|swing|fire|drink <dir>",
		"  grab                   Pick up what lies here",
		"  drop|wield|wear|eat <letter>",
		"  unwield, take off",
		"  up (<), down (>)       Take the stairs",
		"  wait (z)               Let time pass",
		"  again                  Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	snap := c.Game.Snapshot()
	p := snap.Player
	c.printSystem(fmt.Sprintf("Turn: %d", snap.Turns))
	c.printSystem(fmt.Sprintf("Level: %d", snap.Depth))
	c.printSystem(fmt.Sprintf("Position: %d,%d", p.Pos.X, p.Pos.Y))
	c.printSystem(fmt.Sprintf("HP: %d/%d", p.HP, p.MaxHP))
	if p.Poisoning > 0 {
		c.printSystem(fmt.Sprintf("Poisoning: %d", p.Poisoning))
	}
	c.printSystem(fmt.Sprintf("Monsters: %d", len(c.Game.Level.Monsters)))
	c.printSystem(fmt.Sprintf("RNG: seed %d, position %d", c.Game.RNG.Seed(), c.Game.RNG.Position()))
}

func (c *CLI) cmdInventory() {
	snap := c.Game.Snapshot()
	if len(snap.Inventory) == 0 {
		c.printLine("You carry nothing.")
		return
	}
	for _, line := range InventoryLines(snap.Inventory) {
		c.printLine(line)
	}
}

// InventoryLines formats occupied slots as "a - spear (wielded)".
func InventoryLines(slots []types.SlotView) []string {
	lines := make([]string, 0, len(slots))
	for _, s := range slots {
		text := fmt.Sprintf("%s - %s", parser.SlotLetter(s.Slot), s.Name)
		if s.Wielded {
			text += " (wielded)"
		}
		if s.Worn {
			text += " (worn)"
		}
		lines = append(lines, text)
	}
	return lines
}

// RenderMap draws a snapshot as text rows. Visible cells show what is
// there now; remembered cells show what was last seen.
func RenderMap(snap types.Snapshot) []string {
	rows := make([]string, snap.Height)
	var b strings.Builder
	for y := 0; y < snap.Height; y++ {
		b.Reset()
		for x := 0; x < snap.Width; x++ {
			cell := snap.Cells[y*snap.Width+x]
			switch {
			case cell.Visible:
				b.WriteRune(content.Glyph(cell.Live))
			default:
				b.WriteRune(content.Glyph(cell.Seen))
			}
		}
		rows[y] = strings.TrimRight(b.String(), " ")
	}
	return rows
}

// StatusLines is the stat block shown beside the map.
func StatusLines(snap types.Snapshot) []string {
	p := snap.Player
	orNone := func(s string) string {
		if s == "" {
			return "none"
		}
		return s
	}
	lines := []string{
		fmt.Sprintf("Level: %d", snap.Depth),
		fmt.Sprintf("Turns: %d", snap.Turns),
		fmt.Sprintf("HP   : %d/%d", p.HP, p.MaxHP),
		fmt.Sprintf("Items: %d", p.Items),
		fmt.Sprintf("Wield: %s", orNone(p.Wielded)),
		fmt.Sprintf("Wear : %s", orNone(p.Worn)),
		fmt.Sprintf("Dmg  : %d", p.Damage),
	}
	if p.Poisoning > 0 || p.Godmode {
		lines = append(lines, "")
	}
	if p.Poisoning > 0 {
		lines = append(lines, "Poisoned")
	}
	if p.Godmode {
		lines = append(lines, "!GODMODE!")
	}
	return lines
}

// EndLine describes how a finished game ended.
func EndLine(status types.Status) string {
	switch status {
	case types.StatusCompleted:
		return "You have completed the quest."
	case types.StatusPlayerDied:
		return "You are dead."
	case types.StatusSuspended:
		return "Game suspended."
	default:
		return ""
	}
}

func (c *CLI) printMessages() {
	var msgs []string
	msgs, c.mark = c.Game.MessagesSince(c.mark)
	for _, msg := range msgs {
		c.printLine(msg)
	}
}

func (c *CLI) printMap() {
	snap := c.Game.Snapshot()
	rows := RenderMap(snap)
	stats := StatusLines(snap)
	for i, row := range rows {
		if i < len(stats) {
			row = fmt.Sprintf("%-*s  %s", snap.Width, row, stats[i])
		}
		c.printLine(row)
	}
}

func (c *CLI) printEnd() {
	if line := EndLine(c.Game.Status); line != "" && c.Game.Status != types.StatusSuspended {
		c.printSystem(line)
	}
}

func (c *CLI) printTrace(evts []types.Event) {
	if len(evts) == 0 {
		return
	}
	c.printSystem(fmt.Sprintf("[trace] Events: %d", len(evts)))
	for _, e := range evts {
		c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
