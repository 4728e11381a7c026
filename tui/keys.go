package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nathoo/temple/engine/geo"
)

// keyMap holds the single-key roguelike controls.
type keyMap struct {
	Left, Down, Up, Right                key.Binding
	UpLeft, UpRight, DownLeft, DownRight key.Binding

	Wait, Grab            key.Binding
	Wield, Unwield        key.Binding
	Wear, TakeOff         key.Binding
	Eat, Drop             key.Binding
	Drink, Fire, Swing    key.Binding
	Open, Close           key.Binding
	StairsUp, StairsDown  key.Binding
	Target, Inventory     key.Binding
	Command, Help, Cancel key.Binding
	Confirm               key.Binding
	Suspend, Suicide      key.Binding
	ScrollUp, ScrollDown  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "west")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "south")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "north")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "east")),
		UpLeft:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "northwest")),
		UpRight:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "northeast")),
		DownLeft:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "southwest")),
		DownRight: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "southeast")),

		Wait:       key.NewBinding(key.WithKeys("."), key.WithHelp(".", "wait")),
		Grab:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab")),
		Wield:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wield")),
		Unwield:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "unwield")),
		Wear:       key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "wear")),
		TakeOff:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "take off")),
		Eat:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "eat")),
		Drop:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drop")),
		Drink:      key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "drink")),
		Fire:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fire")),
		Swing:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swing")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Close:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close")),
		StairsUp:   key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "up")),
		StairsDown: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "down")),
		Target:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "target")),
		Inventory:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inventory")),
		Command:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Confirm:    key.NewBinding(key.WithKeys("enter", "x", "."), key.WithHelp("enter", "go")),
		Suspend:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "suspend")),
		Suicide:    key.NewBinding(key.WithKeys("Q"), key.WithHelp("Q", "suicide")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "older messages")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "newer messages")),
	}
}

// direction maps a movement key to a unit vector.
func (k keyMap) direction(msg tea.KeyMsg) (geo.Point, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return geo.Pt(-1, 0), true
	case key.Matches(msg, k.Down):
		return geo.Pt(0, 1), true
	case key.Matches(msg, k.Up):
		return geo.Pt(0, -1), true
	case key.Matches(msg, k.Right):
		return geo.Pt(1, 0), true
	case key.Matches(msg, k.UpLeft):
		return geo.Pt(-1, -1), true
	case key.Matches(msg, k.UpRight):
		return geo.Pt(1, -1), true
	case key.Matches(msg, k.DownLeft):
		return geo.Pt(-1, 1), true
	case key.Matches(msg, k.DownRight):
		return geo.Pt(1, 1), true
	}
	return geo.Point{}, false
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Target, k.Inventory, k.Command, k.Help, k.Suspend}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Down, k.Up, k.Right, k.UpLeft, k.UpRight, k.DownLeft, k.DownRight},
		{k.Wait, k.Grab, k.Drop, k.Eat, k.StairsUp, k.StairsDown},
		{k.Wield, k.Unwield, k.Wear, k.TakeOff, k.Drink},
		{k.Fire, k.Swing, k.Open, k.Close, k.Target},
		{k.Inventory, k.Command, k.ScrollUp, k.ScrollDown, k.Suspend, k.Suicide},
	}
}

// viewportKeyMap leaves only paging keys on the message log. The
// arrow keys move the player.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
