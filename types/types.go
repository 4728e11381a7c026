// Package types defines the shared data structures for the Temple engine.
// This package contains only type definitions and constants, no logic.
package types

import "github.com/nathoo/temple/engine/geo"

// Sprite identifies how a cell or entity looks. The zero value means
// "never seen" in fog-of-war memory.
type Sprite int

const (
	SpriteEmpty Sprite = iota
	SpriteFloor
	SpriteWall
	SpriteTorch
	SpriteGoo
	SpriteExplosive
	SpriteMoney
	SpriteScorpionTail
	SpriteSpear
	SpriteJacket
	SpriteAntidote
	SpriteApple
	SpritePlayer
	SpriteAnt
	SpriteScorpion
	SpriteDoorOpened
	SpriteDoorClosed
	SpritePot
	SpriteWell
	SpriteGate
	SpriteStairsUp
	SpriteStairsDown
	SpriteTrap
	SpriteSharpenedPole
	SpriteKey
	SpriteFlask
	SpriteCount
)

// Faction is the coarse allegiance of a monster. Only the player faction
// updates fog-of-war memory.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionNeutral
	FactionHostile
)

// Status is the session state of a game.
type Status int

const (
	StatusPlaying Status = iota
	StatusSuspended
	StatusCompleted
	StatusPlayerDied
)

// Verb names a command kind.
type Verb string

const (
	VerbWait      Verb = "wait"
	VerbMove      Verb = "move"
	VerbSmartMove Verb = "smart_move"
	VerbOpen      Verb = "open"
	VerbClose     Verb = "close"
	VerbSwing     Verb = "swing"
	VerbFire      Verb = "fire"
	VerbDrink     Verb = "drink"
	VerbGrab      Verb = "grab"
	VerbDrop      Verb = "drop"
	VerbWield     Verb = "wield"
	VerbUnwield   Verb = "unwield"
	VerbWear      Verb = "wear"
	VerbTakeOff   Verb = "take_off"
	VerbEat       Verb = "eat"
	VerbGoUp      Verb = "go_up"
	VerbGoDown    Verb = "go_down"
)

// Command is one actor's intent for one turn. Dir is used by directional
// verbs, Slot by inventory verbs. The zero Command waits.
type Command struct {
	Verb Verb      `json:"verb"`
	Dir  geo.Point `json:"dir,omitempty"`
	Slot int       `json:"slot,omitempty"`
}

// Event is emitted by the engine when something noteworthy happens.
type Event struct {
	Type string
	Data map[string]any
}

// CellView is what the presentation layer may know about one cell.
// Live is only meaningful when Visible is set.
type CellView struct {
	Visible bool
	Seen    Sprite
	Live    Sprite
}

// SlotView describes one occupied inventory slot.
type SlotView struct {
	Slot    int
	Name    string
	Sprite  Sprite
	Wielded bool
	Worn    bool
}

// PlayerView holds the player stats shown in the sidebar.
type PlayerView struct {
	Name      string
	Pos       geo.Point
	HP        int
	MaxHP     int
	Items     int
	Wielded   string // empty when nothing is wielded
	Worn      string // empty when nothing is worn
	Damage    int
	Poisoning int
	Godmode   bool
}

// Snapshot is a read-only copy of everything a front end may render.
type Snapshot struct {
	Width     int
	Height    int
	Cells     []CellView // row-major, len = Width*Height
	Player    PlayerView
	Inventory []SlotView
	Turns     int
	Depth     int
	Status    Status
}
