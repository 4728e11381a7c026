package save

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/nathoo/temple/engine"
	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

// testGame builds a small level holding one of every entity kind and
// plays a couple of commands on it.
func testGame() *engine.Game {
	m := world.NewMap(8, 5, world.CellType{Name: "floor", Sprite: types.SpriteFloor, Passable: true, Transparent: true})
	wall := m.AddCellType(world.CellType{Name: "wall", Sprite: types.SpriteWall})
	m.Fill(geo.Rc(0, 4, 7, 4), wall)
	level := world.NewLevel(m)

	player := world.NewMonster("you")
	player.Faction = types.FactionPlayer
	player.Sprite = types.SpritePlayer
	player.Pos = geo.Pt(1, 1)
	player.HP, player.MaxHP = 20, 20
	player.Sight = 10
	player.Poisoning = 2
	player.Inventory.Wield(player.Inventory.Insert(world.Item{ID: "spear", Name: "spear", Sprite: types.SpriteSpear, Damage: 3}))
	player.Inventory.Wear(player.Inventory.Insert(world.Item{ID: "jacket", Name: "jacket", Wearable: true, Defence: 1}))
	player.Plan = []types.Command{{Verb: types.VerbMove, Dir: geo.Pt(1, 0)}}

	ant := world.NewMonster("ant")
	ant.Faction = types.FactionHostile
	ant.AI = "still"
	ant.Sprite = types.SpriteAnt
	ant.Pos = geo.Pt(5, 2)
	ant.HP, ant.MaxHP = 3, 3

	bolt := world.Item{Name: "sharpened pole", Damage: 2}
	level.Monsters = []*world.Monster{player, ant}
	level.Items = []world.Item{{Name: "apple", Pos: geo.Pt(2, 2), Edible: true, Healing: 2}}
	level.Doors = []world.Door{{Pos: geo.Pt(6, 1), Name: "door", Locked: true, LockType: 1, OpenedSprite: types.SpriteDoorOpened, ClosedSprite: types.SpriteDoorClosed}}
	level.Containers = []world.Container{{Pos: geo.Pt(3, 3), Name: "pot", Items: []world.Item{{Name: "money"}}}}
	level.Fountains = []world.Fountain{{Pos: geo.Pt(4, 3), Name: "well"}}
	level.Stairs = []world.Stairs{{Pos: geo.Pt(0, 0), Name: "stairs", GoesUp: true, UpDestination: -1}}
	level.Traps = []world.Trap{{Pos: geo.Pt(7, 3), Name: "trap", Bolt: &bolt}}

	g := engine.NewGame(level, engine.NewRNG(42))
	g.RNG.Intn(10)
	g.Depth = 1
	g.Turn(types.Command{})
	g.Turn(types.Command{Verb: types.VerbSwing, Dir: geo.Pt(0, -1)})
	return g
}

func TestRoundTrip(t *testing.T) {
	g := testGame()

	data, err := Save(g)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	g2, err := Load(data, nil, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(g.Level, g2.Level) {
		t.Error("level differs after round trip")
	}
	if g2.Turns != g.Turns || g2.Depth != g.Depth || g2.Status != g.Status {
		t.Errorf("turns/depth/status = %d/%d/%v, want %d/%d/%v",
			g2.Turns, g2.Depth, g2.Status, g.Turns, g.Depth, g.Status)
	}
	if !reflect.DeepEqual(g.Messages, g2.Messages) {
		t.Errorf("messages = %q, want %q", g2.Messages, g.Messages)
	}
	if g2.RNG.Seed() != 42 || g2.RNG.Position() != g.RNG.Position() {
		t.Errorf("rng at %d/%d, want 42/%d", g2.RNG.Seed(), g2.RNG.Position(), g.RNG.Position())
	}
	if g2.RNG.Intn(1000) != g.RNG.Intn(1000) {
		t.Error("restored rng should continue the same sequence")
	}

	p := g2.Player()
	if p == nil || p.Inventory.Wielded != 0 || p.Inventory.Worn != 1 || p.Poisoning != 0 {
		t.Errorf("player = %+v", p)
	}
}

func TestWriteRead(t *testing.T) {
	g := testGame()
	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	g2, err := Read(&buf, nil, engine.Controllers{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if g2.Turns != 2 || g2.Controllers == nil {
		t.Errorf("turns=%d controllers=%v", g2.Turns, g2.Controllers)
	}
}

func TestLoadResumesSuspended(t *testing.T) {
	g := testGame()
	g.Suspend()
	data, _ := Save(g)

	g2, err := Load(data, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g2.Status != types.StatusPlaying {
		t.Errorf("status = %v, want playing", g2.Status)
	}
}

func TestVersionErrors(t *testing.T) {
	tests := []struct {
		name  string
		major int
		minor int
		want  string
	}{
		{"older major", 1, 0, "Savefile has major version 1, which is incompatible with current program savefile major version 2."},
		{"newer minor", MajorVersion, MinorVersion + 2, "Savefile has minor version 3, which is incompatible with current program savefile minor version 1."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := Save(testGame())
			data = bytes.Replace(data, []byte(`"major": 2`), []byte(`"major": `+strconv.Itoa(tt.major)), 1)
			data = bytes.Replace(data, []byte(`"minor": 1`), []byte(`"minor": `+strconv.Itoa(tt.minor)), 1)

			_, err := Load(data, nil, nil)
			var verr *VersionError
			if !errors.As(err, &verr) {
				t.Fatalf("expected VersionError, got %v", err)
			}
			if err.Error() != tt.want {
				t.Errorf("got %q\nwant %q", err.Error(), tt.want)
			}
		})
	}
}

func TestOlderMinorLoads(t *testing.T) {
	data, _ := Save(testGame())
	data = bytes.Replace(data, []byte(`"minor": 1`), []byte(`"minor": 0`), 1)
	if _, err := Load(data, nil, nil); err != nil {
		t.Errorf("older minor version should load: %v", err)
	}
}

func TestLoadRejectsBrokenFiles(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not json", "{", "decoding savefile"},
		{"no level", `{"major": 2, "minor": 1}`, "no level"},
		{"short map", `{"major": 2, "minor": 1, "level": {"map": {"width": 3, "height": 3, "cells": [0]}}}`, "3x3 with 1 cells"},
	}
	for _, tt := range tests {
		_, err := Load([]byte(tt.data), nil, nil)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}
}

func TestFileStore(t *testing.T) {
	fs := NewFileStore(t.TempDir() + "/saves")

	if _, err := fs.Load("you"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := fs.Save("you", []byte("data")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := fs.Load("you")
	if err != nil || string(data) != "data" {
		t.Fatalf("Load = %q, %v", data, err)
	}
	if err := fs.Delete("you"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := fs.Delete("you"); err != nil {
		t.Errorf("deleting a missing save should succeed: %v", err)
	}
	if _, err := fs.Load("you"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestOpenSelectsStore(t *testing.T) {
	s, err := Open("", "", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("got %T, want *FileStore", s)
	}
	if _, err := Open("postgres", "", ""); err == nil {
		t.Error("postgres without a URL should fail")
	}
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEMPLE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEMPLE_TEST_DATABASE_URL not set")
	}
	ps, err := NewPostgresStore(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer ps.Close()

	data, _ := Save(testGame())
	if err := ps.Save("test", data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := ps.Load("test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := Load(got, nil, nil); err != nil {
		t.Errorf("stored save does not load: %v", err)
	}
	if err := ps.Delete("test"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := ps.Load("test"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
