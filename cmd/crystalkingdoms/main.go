// Crystal Kingdoms is a turn-based text adventure of quests and combat.
// Usage: crystalkingdoms [--version] [--plain] [--seed <n>] [--script <file>] [--trace] [--content <dir>]
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/crystalkingdoms/cli"
	"github.com/nathoo/crystalkingdoms/config"
	"github.com/nathoo/crystalkingdoms/content"
	"github.com/nathoo/crystalkingdoms/engine"
	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/loader"
	"github.com/nathoo/crystalkingdoms/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: crystalkingdoms [--version] [--plain] [--seed <n>] [--script <file>] [--trace] [--content <dir>]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}

	plain := cfg.Plain
	trace := false
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("crystalkingdoms %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			scriptFile = flagValue(args, &i)
		case "--content":
			cfg.ContentDir = flagValue(args, &i)
		case "--seed":
			seed, err := strconv.ParseInt(flagValue(args, &i), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			cfg.Seed = seed
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q\n%s\n", args[i], usage)
			os.Exit(1)
		}
	}

	cat, err := loadCatalog(cfg.ContentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	if cfg.Seed == 0 {
		if cfg.Seed, err = engine.NewSeed(); err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding: %v\n", err)
			os.Exit(1)
		}
	}
	eng := engine.New(cat, engine.NewRNG(cfg.Seed))

	useTUI := scriptFile == "" && !plain && isTerminal()
	closeLog, err := setupLogging(eng, cfg.LogFile, trace, useTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := play(eng, scriptFile, trace, useTUI, cfg.History); err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(eng *engine.Engine, scriptFile string, trace, useTUI bool, history int) error {
	if useTUI {
		return tui.Run(eng, history)
	}

	c := cli.New(eng)
	c.Trace = trace

	// Script mode: read commands from a file and echo them.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c.In = f
		c.EchoInput = true
	}
	return c.Run()
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		return loader.LoadFS(content.Default())
	}
	return loader.Load(dir)
}

// setupLogging routes engine logs. The TUI owns the terminal, so its logs go
// to a file; the plain CLI logs to stderr with --trace.
func setupLogging(eng *engine.Engine, logFile string, trace, useTUI bool) (func(), error) {
	noop := func() {}
	switch {
	case useTUI && logFile != "":
		f, err := tea.LogToFile(logFile, "crystalkingdoms")
		if err != nil {
			return noop, err
		}
		eng.SetLogger(log.Default())
		return func() { f.Close() }, nil
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return noop, err
		}
		eng.SetLogger(log.New(f, "crystalkingdoms ", log.LstdFlags))
		return func() { f.Close() }, nil
	case trace && !useTUI:
		eng.SetLogger(log.New(os.Stderr, "crystalkingdoms ", log.LstdFlags))
	default:
		eng.SetLogger(log.New(io.Discard, "", 0))
	}
	return noop, nil
}

func flagValue(args []string, i *int) string {
	if *i+1 >= len(args) {
		fmt.Fprintf(os.Stderr, "%s requires a value\n%s\n", args[*i], usage)
		os.Exit(1)
	}
	*i++
	return args[*i]
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
