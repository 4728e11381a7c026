package content

import (
	"testing"

	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

func TestNewMonsterCopiesInventory(t *testing.T) {
	r := NewRegistry()
	tmpl := world.NewMonster("scorpion")
	tmpl.Inventory.Insert(world.Item{Name: "scorpion tail"})
	r.Monsters["scorpion"] = *tmpl

	a, ok := r.NewMonster("scorpion")
	if !ok {
		t.Fatal("expected scorpion template")
	}
	b, _ := r.NewMonster("scorpion")
	a.Inventory.Get(0).Name = "changed"
	a.HP = 0

	if b.Inventory.Get(0).Name != "scorpion tail" {
		t.Error("monsters share inventory items")
	}
	kept := r.Monsters["scorpion"]
	if kept.Inventory.Get(0).Name != "scorpion tail" {
		t.Error("template inventory was modified")
	}
	if b.HP != 1 {
		t.Errorf("b.HP = %d, want 1", b.HP)
	}
	if _, ok := r.NewMonster("dragon"); ok {
		t.Error("unknown template should not be found")
	}
}

func TestSpawnsFor(t *testing.T) {
	r := NewRegistry()
	r.Spawns = []Spawn{
		{Kind: SpawnMonster, ID: "ant", MinDepth: 0, MaxDepth: -1, Weight: 3},
		{Kind: SpawnMonster, ID: "scorpion", MinDepth: 1, MaxDepth: 2, Weight: 1},
		{Kind: SpawnItem, ID: "apple", MinDepth: 0, MaxDepth: -1, Weight: 1},
	}

	tests := []struct {
		kind  SpawnKind
		depth int
		want  []string
	}{
		{SpawnMonster, 0, []string{"ant"}},
		{SpawnMonster, 1, []string{"ant", "scorpion"}},
		{SpawnMonster, 3, []string{"ant"}},
		{SpawnItem, 5, []string{"apple"}},
	}
	for _, tt := range tests {
		got := r.SpawnsFor(tt.kind, tt.depth)
		if len(got) != len(tt.want) {
			t.Errorf("SpawnsFor(%s, %d) = %v, want %v", tt.kind, tt.depth, got, tt.want)
			continue
		}
		for i := range got {
			if got[i].ID != tt.want[i] {
				t.Errorf("SpawnsFor(%s, %d)[%d] = %s, want %s", tt.kind, tt.depth, i, got[i].ID, tt.want[i])
			}
		}
	}
}

func TestSpriteByName(t *testing.T) {
	if s, ok := SpriteByName("door_closed"); !ok || s != types.SpriteDoorClosed {
		t.Errorf("SpriteByName(door_closed) = %v, %v", s, ok)
	}
	if _, ok := SpriteByName("unicorn"); ok {
		t.Error("unknown sprite should not resolve")
	}
	if n := len(SpriteNames()); n != int(types.SpriteCount) {
		t.Errorf("len(SpriteNames()) = %d, want %d", n, types.SpriteCount)
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		sprite types.Sprite
		want   rune
	}{
		{types.SpriteEmpty, ' '},
		{types.SpritePlayer, '@'},
		{types.SpriteDoorClosed, '+'},
		{types.SpriteStairsDown, '>'},
		{types.SpriteCount, '?'},
		{-1, '?'},
	}
	for _, tt := range tests {
		if got := Glyph(tt.sprite); got != tt.want {
			t.Errorf("Glyph(%d) = %q, want %q", tt.sprite, got, tt.want)
		}
	}
	for s := types.SpriteFloor; s < types.SpriteCount; s++ {
		if Glyph(s) == 0 {
			t.Errorf("sprite %d has no glyph", s)
		}
	}
}
