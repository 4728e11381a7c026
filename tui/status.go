package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/temple/engine/content"
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/parser"
	"github.com/nathoo/temple/types"
)

// inventoryColumn is how many slots are listed before wrapping to a
// second column.
const inventoryColumn = 13

// renderMap draws the snapshot with sprite colours. Remembered cells are
// drawn dim. When cursor is set, the cell under it is highlighted.
func renderMap(snap types.Snapshot, cursor *geo.Point) string {
	var b strings.Builder
	for y := 0; y < snap.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < snap.Width; x++ {
			cell := snap.Cells[y*snap.Width+x]
			var glyph string
			var style lipgloss.Style
			switch {
			case cell.Visible:
				glyph = string(content.Glyph(cell.Live))
				style = spriteStyle(cell.Live)
			default:
				glyph = string(content.Glyph(cell.Seen))
				style = styleFog
			}
			if cursor != nil && *cursor == geo.Pt(x, y) {
				style = styleCursor
			}
			b.WriteString(style.Render(glyph))
		}
	}
	return b.String()
}

// sidebarLines is the stat block shown to the right of the map.
func sidebarLines(snap types.Snapshot) []string {
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
		lines = append(lines, styleAlert.Render("Poisoned"))
	}
	if p.Godmode {
		lines = append(lines, styleAlert.Render("!GODMODE!"))
	}
	return lines
}

func renderSidebar(snap types.Snapshot) string {
	return styleSidebar.Render(strings.Join(sidebarLines(snap), "\n"))
}

// inventoryEntry formats one slot as "a - spear (wielded)".
func inventoryEntry(s types.SlotView) string {
	text := fmt.Sprintf("%s - %s", parser.SlotLetter(s.Slot), s.Name)
	if s.Wielded {
		text += " (wielded)"
	}
	if s.Worn {
		text += " (worn)"
	}
	return text
}

// renderInventory lists carried items in up to two columns, the second
// starting after inventoryColumn entries.
func renderInventory(title string, slots []types.SlotView) string {
	if len(slots) == 0 {
		return title + "\n\nYou carry nothing."
	}
	var left, right []string
	for i, s := range slots {
		entry := spriteStyle(s.Sprite).Render(inventoryEntry(s))
		if i < inventoryColumn {
			left = append(left, entry)
		} else {
			right = append(right, entry)
		}
	}
	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(left, "\n"),
		lipgloss.NewStyle().PaddingLeft(4).Render(strings.Join(right, "\n")),
	)
	return title + "\n\n" + cols
}
