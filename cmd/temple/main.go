// Temple is a turn-based dungeon crawl: fetch Yendor from the deepest
// level of the temple and carry it back to the surface.
// Usage: temple [--version] [--plain] [--script <file>] [--trace] [--debug]
//
//	[--config <file>] [--content <dir>] [--seed <n>]
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nathoo/temple/cli"
	"github.com/nathoo/temple/config"
	"github.com/nathoo/temple/data"
	"github.com/nathoo/temple/engine"
	"github.com/nathoo/temple/engine/ai"
	"github.com/nathoo/temple/engine/content"
	"github.com/nathoo/temple/engine/gen"
	"github.com/nathoo/temple/engine/save"
	"github.com/nathoo/temple/loader"
	"github.com/nathoo/temple/tui"
	"github.com/nathoo/temple/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: temple [--version] [--plain] [--script <file>] [--trace] [--debug] [--config <file>] [--content <dir>] [--seed <n>]"

type options struct {
	plain      bool
	trace      bool
	debug      bool
	scriptFile string
	configFile string
	contentDir string
	seed       string
}

func main() {
	var opts options

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("temple %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			opts.plain = true
		case "--trace":
			opts.trace = true
		case "--debug":
			opts.debug = true
		case "--script", "--config", "--content", "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			flag := args[i]
			i++
			switch flag {
			case "--script":
				opts.scriptFile = args[i]
			case "--config":
				opts.configFile = args[i]
			case "--content":
				opts.contentDir = args[i]
			case "--seed":
				opts.seed = args[i]
			}
		default:
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(1)
		}
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	if opts.contentDir != "" {
		cfg.Content = opts.contentDir
	}
	if opts.seed != "" {
		if cfg.Seed, err = strconv.ParseInt(opts.seed, 10, 64); err != nil {
			return fmt.Errorf("--seed: %w", err)
		}
	}
	if opts.debug {
		cfg.Log.Debug = true
	}
	if opts.plain {
		cfg.UI.Plain = true
	}

	closeLog, err := setupLog(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	reg, err := loadContent(cfg.Content)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	lg := gen.New(reg)
	controllers := ai.Default()

	// Script mode: fresh game, no saves, forced plain with echoed commands.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()

		g := engine.New(lg, engine.NewRNG(seedOf(cfg)), controllers)
		fmt.Printf("%s\n\n", reg.Dungeon.Title)
		c := cli.New(g, nil, cfg.Save.Name)
		c.In = f
		c.EchoInput = true
		c.Trace = opts.trace
		c.Run()
		return nil
	}

	store, err := save.Open(cfg.Save.DBType, cfg.Save.DatabaseURL, cfg.Save.Dir)
	if err != nil {
		return fmt.Errorf("opening save store: %w", err)
	}
	defer store.Close()

	g, err := resume(store, cfg.Save.Name, lg, controllers)
	if err != nil {
		return err
	}
	if g == nil {
		g = engine.New(lg, engine.NewRNG(seedOf(cfg)), controllers)
		log.Printf("New game, seed %d", g.RNG.Seed())
	}
	g.Bus.Subscribe("", func(e types.Event) {
		log.Printf("event: %s %v", e.Type, e.Data)
	})

	// Use plain CLI if requested or stdout is not a terminal.
	if cfg.UI.Plain || !isTerminal() {
		fmt.Printf("%s\n\n", reg.Dungeon.Title)
		c := cli.New(g, store, cfg.Save.Name)
		c.Trace = opts.trace
		c.ShowMap = true
		c.Run()
		g = c.Game
	} else {
		g, err = tui.Run(g, tui.Options{
			Store:     store,
			SaveName:  cfg.Save.Name,
			PlanDelay: time.Duration(cfg.UI.PlanDelay) * time.Millisecond,
		})
		if err != nil {
			return err
		}
		if line := cli.EndLine(g.Status); line != "" {
			fmt.Println(line)
		}
	}

	// Input ran out mid-game: keep it for next time.
	if g.Status == types.StatusPlaying {
		g.Suspend()
	}
	if g.Status != types.StatusSuspended {
		return nil
	}
	raw, err := save.Save(g)
	if err != nil {
		return fmt.Errorf("saving game: %w", err)
	}
	if err := store.Save(cfg.Save.Name, raw); err != nil {
		return fmt.Errorf("saving game: %w", err)
	}
	log.Printf("Suspended game saved as %q at turn %d", cfg.Save.Name, g.Turns)
	return nil
}

// resume loads the suspended game under name and removes it from the
// store, so a game cannot be replayed from the same save. It returns nil
// when there is nothing to resume.
func resume(store save.Store, name string, lg engine.LevelGenerator, controllers engine.Controllers) (*engine.Game, error) {
	raw, err := store.Load(name)
	if errors.Is(err, save.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading save %s: %w", name, err)
	}
	g, err := save.Load(raw, lg, controllers)
	if err != nil {
		return nil, fmt.Errorf("loading save %s: %w", name, err)
	}
	if err := store.Delete(name); err != nil {
		return nil, fmt.Errorf("removing save %s: %w", name, err)
	}
	log.Printf("Resumed %q at turn %d", name, g.Turns)
	return g, nil
}

func loadContent(dir string) (*content.Registry, error) {
	if dir == "" {
		return data.Default()
	}
	return loader.Load(dir)
}

func seedOf(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

// setupLog sends the engine's debug log to the configured file, or
// nowhere when debugging is off.
func setupLog(cfg config.LogConfig) (func(), error) {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { f.Close() }, nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
