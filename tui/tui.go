package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/temple/engine"
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/parser"
	"github.com/nathoo/temple/engine/save"
	"github.com/nathoo/temple/types"
)

// Options configures a TUI session.
type Options struct {
	Store     save.Store // nil disables :/save and :/load
	SaveName  string
	PlanDelay time.Duration // pause between the steps of a travel plan
}

type mode int

const (
	modePlay mode = iota
	modeDirection
	modeSlot
	modeTarget
	modeInventory
	modeCommand
	modeOver
)

// minMessageLines is the smallest message log shown under the map.
const minMessageLines = 3

// planTickMsg advances the player's travel plan by one step.
type planTickMsg struct{}

// Model is the Bubble Tea model for the game TUI.
type Model struct {
	game     *engine.Game
	opts     Options
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	input    textinput.Model
	history  *History

	mode         mode
	pending      types.Verb // verb waiting for a direction or slot
	prompt       string
	target       geo.Point
	notification string

	lines    []string
	mark     int
	width    int
	height   int
	quitting bool
}

// New creates a model for g.
func New(g *engine.Game, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = styleInputPrompt.Render(": ")
	ti.CharLimit = 256

	vp := viewport.New(80, minMessageLines)
	vp.KeyMap = viewportKeyMap()

	m := Model{
		game:     g,
		opts:     opts,
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewport: vp,
		input:    ti,
		history:  NewHistory(100),
	}
	m.drainMessages()
	return m
}

// Run starts the TUI and blocks until the player quits or the game ends.
// It returns the game being played at exit, which differs from g after
// a load.
func Run(g *engine.Game, opts Options) (*engine.Game, error) {
	p := tea.NewProgram(New(g, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return g, err
	}
	if m, ok := final.(Model); ok {
		return m.game, nil
	}
	return g, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.game.Planning() {
		return m.tick()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = m.messageLines()
		m.refreshViewport()
		return m, nil

	case planTickMsg:
		if m.mode != modePlay || !m.game.Planning() || m.game.Done() {
			return m, nil
		}
		return m.act(types.Command{Verb: types.VerbWait})

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.game.Suspend()
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeOver:
			m.quitting = true
			return m, tea.Quit
		case modeInventory:
			m.mode = modePlay
			return m, nil
		case modeDirection:
			return m.updateDirection(msg)
		case modeSlot:
			return m.updateSlot(msg)
		case modeTarget:
			return m.updateTarget(msg)
		case modeCommand:
			return m.updateCommand(msg)
		default:
			return m.updatePlay(msg)
		}
	}
	return m, nil
}

func (m Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key interrupts a running travel plan.
	if m.game.Planning() {
		m.game.ClearPlan()
		return m, nil
	}
	m.notification = ""

	if dir, ok := m.keys.direction(msg); ok {
		return m.act(types.Command{Verb: types.VerbSmartMove, Dir: dir})
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Wait):
		return m.act(types.Command{Verb: types.VerbWait})
	case key.Matches(msg, k.Grab):
		return m.act(types.Command{Verb: types.VerbGrab})
	case key.Matches(msg, k.Unwield):
		return m.act(types.Command{Verb: types.VerbUnwield})
	case key.Matches(msg, k.TakeOff):
		return m.act(types.Command{Verb: types.VerbTakeOff})
	case key.Matches(msg, k.StairsUp):
		return m.act(types.Command{Verb: types.VerbGoUp})
	case key.Matches(msg, k.StairsDown):
		return m.act(types.Command{Verb: types.VerbGoDown})

	case key.Matches(msg, k.Wield):
		m.askSlot(types.VerbWield, "Wield what?")
	case key.Matches(msg, k.Wear):
		m.askSlot(types.VerbWear, "Wear what?")
	case key.Matches(msg, k.Eat):
		m.askSlot(types.VerbEat, "Eat what?")
	case key.Matches(msg, k.Drop):
		m.askSlot(types.VerbDrop, "Drop what?")

	case key.Matches(msg, k.Drink):
		m.askDirection(types.VerbDrink, "Drink from which direction?")
	case key.Matches(msg, k.Fire):
		m.askDirection(types.VerbFire, "Fire in which direction?")
	case key.Matches(msg, k.Swing):
		m.askDirection(types.VerbSwing, "Swing in which direction?")
	case key.Matches(msg, k.Open):
		m.askDirection(types.VerbOpen, "Open in which direction?")
	case key.Matches(msg, k.Close):
		m.askDirection(types.VerbClose, "Close in which direction?")

	case key.Matches(msg, k.Target):
		m.mode = modeTarget
		m.target = m.game.Player().Pos
		m.notification = m.game.Describe(m.target)
	case key.Matches(msg, k.Inventory):
		m.mode = modeInventory
	case key.Matches(msg, k.Command):
		m.mode = modeCommand
		m.input.Reset()
		return m, m.input.Focus()
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.messageLines()
	case key.Matches(msg, k.ScrollUp, k.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, k.Suspend):
		m.game.Suspend()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Suicide):
		m.game.Suicide()
		return m.afterTurn()

	default:
		m.notification = fmt.Sprintf("Unknown control '%s'", msg.String())
	}
	return m, nil
}

func (m *Model) askSlot(verb types.Verb, prompt string) {
	m.mode = modeSlot
	m.pending = verb
	m.prompt = prompt
	m.notification = prompt
}

func (m *Model) askDirection(verb types.Verb, prompt string) {
	m.mode = modeDirection
	m.pending = verb
	m.prompt = prompt
	m.notification = prompt
}

func (m *Model) cancel() {
	m.mode = modePlay
	m.pending = ""
	m.prompt = ""
	m.notification = ""
}

func (m Model) updateDirection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.cancel()
		return m, nil
	}
	dir, ok := m.keys.direction(msg)
	if !ok {
		m.notification = m.prompt + " [hjklyubn]"
		return m, nil
	}
	verb := m.pending
	m.cancel()
	return m.act(types.Command{Verb: verb, Dir: dir})
}

func (m Model) updateSlot(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.cancel()
		return m, nil
	}
	slot, ok := parser.Slot(msg.String())
	if !ok {
		m.notification = m.prompt + " [a-z]"
		return m, nil
	}
	verb := m.pending
	m.cancel()
	return m.act(types.Command{Verb: verb, Slot: slot})
}

func (m Model) updateTarget(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.cancel()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.cancel()
		if !m.game.Travel(m.target) {
			m.notification = "No way there."
			return m, nil
		}
		return m, m.tick()
	}
	if dir, ok := m.keys.direction(msg); ok {
		if next := m.target.Add(dir); m.game.Level.Map.Valid(next) {
			m.target = next
		}
		m.notification = m.game.Describe(m.target)
	}
	return m, nil
}

func (m Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.cancel()
		return m, nil

	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.input.Blur()
		m.mode = modePlay
		if line == "" {
			return m, nil
		}
		m.history.Push(line)
		return m.runLine(line)

	case tea.KeyUp:
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if next, ok := m.history.Next(); ok {
			m.input.SetValue(next)
		} else {
			m.input.Reset()
		}
		m.input.CursorEnd()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runLine executes a typed command line: a meta-command or a game
// command in the line-mode grammar.
func (m Model) runLine(line string) (tea.Model, tea.Cmd) {
	if strings.HasPrefix(line, "/") {
		fields := strings.Fields(line)
		var arg string
		if len(fields) > 1 {
			arg = fields[1]
		}
		switch fields[0] {
		case "/save":
			m.appendSystem(m.cmdSave(arg))
		case "/load":
			m.appendSystem(m.cmdLoad(arg))
		case "/quit", "/exit":
			m.game.Suspend()
			m.quitting = true
			return m, tea.Quit
		default:
			m.appendSystem(fmt.Sprintf("Unknown command: %s.", fields[0]))
		}
		return m, nil
	}

	cmd, err := parser.Parse(line)
	if err != nil {
		m.appendSystem(capitalize(err.Error()) + ".")
		return m, nil
	}
	return m.act(cmd)
}

func (m *Model) cmdSave(name string) string {
	if m.opts.Store == nil {
		return "Saving is not available."
	}
	if name == "" {
		name = m.opts.SaveName
	}
	data, err := save.Save(m.game)
	if err != nil {
		return fmt.Sprintf("Save failed: %v", err)
	}
	if err := m.opts.Store.Save(name, data); err != nil {
		return fmt.Sprintf("Save failed: %v", err)
	}
	return fmt.Sprintf("Game saved to %s.", name)
}

func (m *Model) cmdLoad(name string) string {
	if m.opts.Store == nil {
		return "Loading is not available."
	}
	if name == "" {
		name = m.opts.SaveName
	}
	data, err := m.opts.Store.Load(name)
	if errors.Is(err, save.ErrNotFound) {
		return fmt.Sprintf("No save named %s.", name)
	}
	if err != nil {
		return fmt.Sprintf("Load failed: %v", err)
	}
	g, err := save.Load(data, m.game.Gen, m.game.Controllers)
	if err != nil {
		return fmt.Sprintf("Load failed: %v", err)
	}
	m.game = g
	_, m.mark = g.MessagesSince(0)
	return fmt.Sprintf("Game loaded from %s (turn %d).", name, g.Turns)
}

// act runs one turn for cmd.
func (m Model) act(cmd types.Command) (tea.Model, tea.Cmd) {
	m.game.Turn(cmd)
	return m.afterTurn()
}

func (m Model) afterTurn() (tea.Model, tea.Cmd) {
	m.drainMessages()
	if m.game.Done() {
		m.mode = modeOver
		m.notification = endLine(m.game.Status) + " Press any key."
		return m, nil
	}
	if m.game.Planning() {
		return m, m.tick()
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.PlanDelay, func(time.Time) tea.Msg {
		return planTickMsg{}
	})
}

// drainMessages moves new game messages into the log.
func (m *Model) drainMessages() {
	var msgs []string
	msgs, m.mark = m.game.MessagesSince(m.mark)
	if len(msgs) == 0 {
		return
	}
	m.lines = append(m.lines, msgs...)
	m.refreshViewport()
}

func (m *Model) appendSystem(text string) {
	m.lines = append(m.lines, "["+text+"]")
	m.refreshViewport()
}

// refreshViewport re-renders the message log and scrolls to the bottom.
func (m *Model) refreshViewport() {
	width := m.viewport.Width
	styled := make([]string, 0, len(m.lines))
	for _, line := range m.lines {
		kind := classifyLine(line)
		for _, wrapped := range strings.Split(wordWrap(line, width), "\n") {
			styled = append(styled, renderLineKind(wrapped, kind))
		}
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// messageLines is the message log height left under the map.
func (m Model) messageLines() int {
	used := m.game.Level.Map.Height + 2 // notification and help lines
	if m.help.ShowAll {
		used += len(m.keys.FullHelp()[0]) - 1
	}
	if n := m.height - used; n > minMessageLines {
		return n
	}
	return minMessageLines
}

// View implements tea.Model: notification line, map and sidebar, message
// log, then help or the command line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.game.Snapshot()

	var body string
	switch m.mode {
	case modeInventory:
		body = renderInventory("Inventory (any key to close)", snap.Inventory)
	case modeSlot:
		body = renderInventory(m.prompt, snap.Inventory)
	default:
		var cursor *geo.Point
		if m.mode == modeTarget {
			cursor = &m.target
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, renderMap(snap, cursor), renderSidebar(snap))
	}

	bottom := m.help.View(m.keys)
	if m.mode == modeCommand {
		bottom = m.input.View()
	}

	return styleNotification.Render(m.notification) + "\n" +
		body + "\n" +
		m.viewport.View() + "\n" +
		bottom
}

// endLine describes how a finished game ended.
func endLine(status types.Status) string {
	switch status {
	case types.StatusCompleted:
		return "You have completed the quest."
	case types.StatusPlayerDied:
		return "You are dead."
	default:
		return "Game suspended."
	}
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
