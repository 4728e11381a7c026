package engine

import (
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/types"
)

// Snapshot copies out what a front end may render. The live sprite is only
// filled for cells the player currently sees.
func (g *Game) Snapshot() types.Snapshot {
	level := g.Level
	m := level.Map
	snap := types.Snapshot{
		Width:  m.Width,
		Height: m.Height,
		Cells:  make([]types.CellView, 0, m.Width*m.Height),
		Turns:  g.Turns,
		Depth:  g.Depth,
		Status: g.Status,
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := geo.Pt(x, y)
			props := m.CellProps(p)
			view := types.CellView{Visible: props.Visible, Seen: props.SeenSprite}
			if props.Visible {
				view.Live = level.SpriteAt(p)
			}
			snap.Cells = append(snap.Cells, view)
		}
	}

	p := g.Player()
	if p == nil {
		return snap
	}
	snap.Player = types.PlayerView{
		Name:      p.Name,
		Pos:       p.Pos,
		HP:        p.HP,
		MaxHP:     p.MaxHP,
		Items:     p.Inventory.Len(),
		Damage:    p.Damage(),
		Poisoning: p.Poisoning,
		Godmode:   p.Godmode,
	}
	if it := p.WieldedItem(); it != nil {
		snap.Player.Wielded = it.Name
	}
	if it := p.WornItem(); it != nil {
		snap.Player.Worn = it.Name
	}
	for slot, it := range p.Inventory.Slots {
		if it == nil {
			continue
		}
		snap.Inventory = append(snap.Inventory, types.SlotView{
			Slot:    slot,
			Name:    it.Name,
			Sprite:  it.Sprite,
			Wielded: p.Inventory.Wielded == slot,
			Worn:    p.Inventory.Worn == slot,
		})
	}
	return snap
}
