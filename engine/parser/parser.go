// Package parser converts typed command lines into Commands.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/temple/engine/geo"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("empty command")

var directionExpansions = map[string]string{
	"n":  "north",
	"s":  "south",
	"e":  "east",
	"w":  "west",
	"ne": "northeast",
	"nw": "northwest",
	"se": "southeast",
	"sw": "southwest",
}

var directions = map[string]geo.Point{
	"north":     {X: 0, Y: -1},
	"south":     {X: 0, Y: 1},
	"east":      {X: 1, Y: 0},
	"west":      {X: -1, Y: 0},
	"northeast": {X: 1, Y: -1},
	"northwest": {X: -1, Y: -1},
	"southeast": {X: 1, Y: 1},
	"southwest": {X: -1, Y: 1},
}

var verbAliases = map[string]types.Verb{
	// Movement
	"move": types.VerbMove,
	"walk": types.VerbMove,
	"step": types.VerbMove,
	"go":   types.VerbSmartMove,
	"bump": types.VerbSmartMove,

	// Doors and containers
	"open":   types.VerbOpen,
	"close":  types.VerbClose,
	"shut":   types.VerbClose,
	"unlock": types.VerbOpen,

	// Combat
	"swing":  types.VerbSwing,
	"hit":    types.VerbSwing,
	"attack": types.VerbSwing,
	"strike": types.VerbSwing,
	"fire":   types.VerbFire,
	"throw":  types.VerbFire,
	"toss":   types.VerbFire,
	"hurl":   types.VerbFire,

	// Fountains
	"drink": types.VerbDrink,
	"quaff": types.VerbDrink,
	"sip":   types.VerbDrink,

	// Inventory
	"grab":    types.VerbGrab,
	"get":     types.VerbGrab,
	"take":    types.VerbGrab,
	"g":       types.VerbGrab,
	"drop":    types.VerbDrop,
	"d":       types.VerbDrop,
	"discard": types.VerbDrop,
	"wield":   types.VerbWield,
	"wi":      types.VerbWield,
	"unwield": types.VerbUnwield,
	"wear":    types.VerbWear,
	"don":     types.VerbWear,
	"remove":  types.VerbTakeOff,
	"eat":     types.VerbEat,
	"e":       types.VerbEat,
	"consume": types.VerbEat,

	// Stairs
	"up":      types.VerbGoUp,
	"<":       types.VerbGoUp,
	"ascend":  types.VerbGoUp,
	"down":    types.VerbGoDown,
	">":       types.VerbGoDown,
	"descend": types.VerbGoDown,

	// Miscellaneous
	"wait": types.VerbWait,
	"z":    types.VerbWait,
	".":    types.VerbWait,
	"rest": types.VerbWait,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true, "to": true, "at": true, "slot": true,
}

// Parse converts a raw command line into a Command. A bare direction
// bump-moves that way.
func Parse(input string) (types.Command, error) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return types.Command{}, ErrEmpty
	}

	if len(words) == 1 {
		if dir, ok := Direction(words[0]); ok {
			return types.Command{Verb: types.VerbSmartMove, Dir: dir}, nil
		}
	}

	words = expandMultiWordVerbs(words)

	verb, ok := verbAliases[words[0]]
	if !ok {
		verb = types.Verb(words[0])
		if !known(verb) {
			return types.Command{}, fmt.Errorf("unknown command %q", words[0])
		}
	}
	rest := stripArticles(words[1:])
	cmd := types.Command{Verb: verb}

	switch verb {
	case types.VerbMove, types.VerbSmartMove, types.VerbOpen, types.VerbClose,
		types.VerbSwing, types.VerbFire, types.VerbDrink:
		if len(rest) == 0 {
			return types.Command{}, fmt.Errorf("%s needs a direction", verb)
		}
		dir, ok := Direction(rest[0])
		if !ok {
			return types.Command{}, fmt.Errorf("%q is not a direction", rest[0])
		}
		cmd.Dir = dir
	case types.VerbDrop, types.VerbWield, types.VerbWear, types.VerbEat:
		if len(rest) == 0 {
			return types.Command{}, fmt.Errorf("%s needs an inventory letter", verb)
		}
		slot, ok := Slot(rest[0])
		if !ok {
			return types.Command{}, fmt.Errorf("%q is not an inventory letter", rest[0])
		}
		cmd.Slot = slot
	}
	return cmd, nil
}

// Direction maps a direction word or abbreviation to a unit vector.
func Direction(word string) (geo.Point, bool) {
	if full, ok := directionExpansions[word]; ok {
		word = full
	}
	dir, ok := directions[word]
	return dir, ok
}

// Slot maps an inventory letter a-z to its slot index.
func Slot(word string) (int, bool) {
	if len(word) != 1 {
		return world.Nothing, false
	}
	c := word[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c >= 'a'+world.SlotCount {
		return world.Nothing, false
	}
	return int(c - 'a'), true
}

// SlotLetter is the inverse of Slot.
func SlotLetter(slot int) string {
	if slot < 0 || slot >= world.SlotCount {
		return "?"
	}
	return string(rune('a' + slot))
}

func known(v types.Verb) bool {
	for _, alias := range verbAliases {
		if alias == v {
			return true
		}
	}
	return v == types.VerbTakeOff
}

// expandMultiWordVerbs handles "pick up", "take off", "go up" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "pick":
		if words[1] == "up" {
			return append([]string{"grab"}, words[2:]...)
		}
	case "take":
		if words[1] == "off" {
			return append([]string{string(types.VerbTakeOff)}, words[2:]...)
		}
	case "put":
		if words[1] == "on" {
			return append([]string{"wear"}, words[2:]...)
		}
		if words[1] == "down" {
			return append([]string{"drop"}, words[2:]...)
		}
	case "go", "climb":
		if words[1] == "up" || words[1] == "down" {
			return words[1:]
		}
	}

	return words
}

// stripArticles drops filler words. The last word is always kept since
// "a" is also an inventory letter.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for i, w := range words {
		if !articles[w] || i == len(words)-1 {
			result = append(result, w)
		}
	}
	return result
}
