// Package save implements JSON serialization and deserialization of a game
// session, plus the stores that keep save files between runs.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nathoo/temple/engine"
	"github.com/nathoo/temple/engine/world"
	"github.com/nathoo/temple/types"
)

// Savefile version written by this program. A file is readable when its
// major version matches and its minor version is not newer.
const (
	MajorVersion = 2
	MinorVersion = 1
)

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Major       int          `json:"major"`
	Minor       int          `json:"minor"`
	Depth       int          `json:"depth"`
	Turns       int          `json:"turns"`
	Status      types.Status `json:"status"`
	Messages    []string     `json:"messages"`
	RNGSeed     int64        `json:"rng_seed"`
	RNGPosition int64        `json:"rng_position"`
	Level       *world.Level `json:"level"`
}

// VersionError reports a savefile written by an incompatible program.
type VersionError struct {
	Part string // "major" or "minor"
	File int
	Want int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("Savefile has %s version %d, which is incompatible with current program savefile %s version %d.",
		e.Part, e.File, e.Part, e.Want)
}

// Save serializes the game to JSON bytes.
func Save(g *engine.Game) ([]byte, error) {
	data := SaveData{
		Major:       MajorVersion,
		Minor:       MinorVersion,
		Depth:       g.Depth,
		Turns:       g.Turns,
		Status:      g.Status,
		Messages:    g.Messages,
		RNGSeed:     g.RNG.Seed(),
		RNGPosition: g.RNG.Position(),
		Level:       g.Level,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Decode parses and checks save bytes without building a game.
func Decode(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("decoding savefile: %w", err)
	}
	if sd.Major != MajorVersion {
		return nil, &VersionError{Part: "major", File: sd.Major, Want: MajorVersion}
	}
	if sd.Minor > MinorVersion {
		return nil, &VersionError{Part: "minor", File: sd.Minor, Want: MinorVersion}
	}
	if err := check(sd.Level); err != nil {
		return nil, err
	}
	// Ensure slices are never nil after load.
	if sd.Messages == nil {
		sd.Messages = []string{}
	}
	return &sd, nil
}

func check(l *world.Level) error {
	if l == nil || l.Map == nil {
		return errors.New("savefile has no level")
	}
	m := l.Map
	if m.Width < 1 || m.Height < 1 || len(m.Cells) != m.Width*m.Height {
		return fmt.Errorf("savefile map is %dx%d with %d cells", m.Width, m.Height, len(m.Cells))
	}
	if len(m.Props) != len(m.Cells) {
		m.Props = make([]world.CellProps, len(m.Cells))
	}
	for i, mon := range l.Monsters {
		if mon == nil {
			return fmt.Errorf("savefile monster %d is empty", i)
		}
	}
	return nil
}

// Load rebuilds a game from save bytes. lg regenerates levels on stairs
// and controllers drive the monsters. A suspended game resumes playing.
func Load(data []byte, lg engine.LevelGenerator, controllers engine.Controllers) (*engine.Game, error) {
	sd, err := Decode(data)
	if err != nil {
		return nil, err
	}
	g := engine.NewGame(sd.Level, engine.RestoreRNG(sd.RNGSeed, sd.RNGPosition))
	g.Gen = lg
	g.Controllers = controllers
	g.Depth = sd.Depth
	g.Turns = sd.Turns
	g.Messages = sd.Messages
	g.Status = sd.Status
	if g.Status == types.StatusSuspended {
		g.Status = types.StatusPlaying
	}
	return g, nil
}

// Write saves g to w.
func Write(w io.Writer, g *engine.Game) error {
	data, err := Save(g)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read loads a game from r.
func Read(r io.Reader, lg engine.LevelGenerator, controllers engine.Controllers) (*engine.Game, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading savefile: %w", err)
	}
	return Load(data, lg, controllers)
}
