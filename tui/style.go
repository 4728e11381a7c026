package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/temple/types"
)

// Styles used throughout the TUI.
var (
	styleSidebar = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("252"))

	styleAlert = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleNotification = lipgloss.NewStyle().
				Foreground(lipgloss.Color("228"))

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleMessage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleGood = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleFog = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	styleCursor = lipgloss.NewStyle().
			Reverse(true).
			Blink(true)
)

var (
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	blue   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	purple = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// spriteStyles colours live sprites. Remembered cells use styleFog.
var spriteStyles = [types.SpriteCount]lipgloss.Style{
	types.SpriteEmpty:         lipgloss.NewStyle(),
	types.SpriteFloor:         yellow,
	types.SpriteWall:          yellow,
	types.SpriteTorch:         red.Bold(true),
	types.SpriteGoo:           green.Bold(true),
	types.SpriteExplosive:     white.Bold(true),
	types.SpriteMoney:         yellow,
	types.SpriteScorpionTail:  red,
	types.SpriteSpear:         blue.Bold(true),
	types.SpriteJacket:        blue.Bold(true),
	types.SpriteAntidote:      purple,
	types.SpriteApple:         green,
	types.SpritePlayer:        white.Bold(true),
	types.SpriteAnt:           yellow.Bold(true),
	types.SpriteScorpion:      red.Bold(true),
	types.SpriteDoorOpened:    white.Bold(true),
	types.SpriteDoorClosed:    white.Bold(true),
	types.SpritePot:           yellow,
	types.SpriteWell:          yellow.Bold(true),
	types.SpriteGate:          white.Bold(true),
	types.SpriteStairsUp:      white.Bold(true),
	types.SpriteStairsDown:    white.Bold(true),
	types.SpriteTrap:          yellow,
	types.SpriteSharpenedPole: yellow.Bold(true),
	types.SpriteKey:           yellow.Bold(true),
	types.SpriteFlask:         purple.Bold(true),
}

func spriteStyle(s types.Sprite) lipgloss.Style {
	if s < 0 || s >= types.SpriteCount {
		return styleMessage
	}
	return spriteStyles[s]
}

// lineKind identifies the type of a message line for styling.
type lineKind int

const (
	kindMessage lineKind = iota
	kindDanger
	kindGood
	kindSystem
)

// classifyLine determines what kind of message line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.Contains(line, " hit"),
		strings.Contains(line, " dies"),
		strings.Contains(line, "poison"),
		strings.Contains(line, "trigger"),
		strings.Contains(line, "suicide"):
		if strings.Contains(line, "cures") {
			return kindGood
		}
		return kindDanger
	case strings.Contains(line, "picked up"),
		strings.Contains(line, "heals"),
		strings.Contains(line, "Yay!"),
		strings.Contains(line, "bring it back"):
		return kindGood
	default:
		return kindMessage
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindDanger:
		return styleDanger.Render(line)
	case kindGood:
		return styleGood.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	default:
		return styleMessage.Render(line)
	}
}
