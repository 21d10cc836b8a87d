package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/crystalkingdoms/content"
	"github.com/nathoo/crystalkingdoms/engine"
	"github.com/nathoo/crystalkingdoms/engine/quest"
	"github.com/nathoo/crystalkingdoms/loader"
)

// newTestCLI plays the default world with a fixed seed. Every script starts
// by creating Aria the warrior.
func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	cat, err := loader.LoadFS(content.Default())
	if err != nil {
		t.Fatalf("loading default content: %v", err)
	}
	eng := engine.New(cat, engine.NewRNG(42))
	var out bytes.Buffer
	c := New(eng)
	c.In = strings.NewReader("Aria\nwarrior\n" + input)
	c.Out = &out
	return c, &out
}

func run(t *testing.T, c *CLI) {
	t.Helper()
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestCLI_IntroAndCreation(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	run(t, c)

	output := out.String()
	for _, want := range []string{
		"The Crystal Kingdoms v1.0.0",
		"In a realm where three kingdoms",
		"Enter your character's name:",
		"1. Warrior (Health 100, Strength 8, Agility 5, Magic 2)",
		"Welcome, Aria the Warrior!",
		"Location: Crystal Cave",
		"Health: 100/100",
		"Inventory: Health Potion",
		"1. Explore",
		"6. Quit game",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestCLI_TalkAndAccept(t *testing.T) {
	c, out := newTestCLI(t, "talk\n1\ny\n/quit\n")
	run(t, c)

	output := out.String()
	for _, want := range []string{
		"1. Wise Crystalreach Sage",
		"You approach Wise Crystalreach Sage.",
		"Would you like to accept this quest? (y/n)",
		"Quest accepted: Cleanse the Corrupted Crystals",
		"=== Active Quests ===",
		"  - Crystal Guardian: 0/2",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := c.Engine.Player.ActiveQuests; len(got) != 1 {
		t.Errorf("active quests = %v", got)
	}
}

func TestCLI_Travel(t *testing.T) {
	c, out := newTestCLI(t, "m\n2\ntravel\n2\n/quit\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "Traveled to Haunted Forest") {
		t.Error("expected travel message")
	}
	if !strings.Contains(output, "You're already here!") {
		t.Error("expected already-here notice")
	}
	if c.Engine.Player.Location != "haunted_forest" {
		t.Errorf("location = %s", c.Engine.Player.Location)
	}
}

func TestCLI_InvalidChoice(t *testing.T) {
	c, out := newTestCLI(t, "42\n/quit\n")
	run(t, c)

	if !strings.Contains(out.String(), "Invalid choice. Please try again.") {
		t.Error("expected invalid choice message")
	}
}

func TestCLI_QuitEndsSession(t *testing.T) {
	c, out := newTestCLI(t, "quit\ny\nexplore\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "Are you sure you want to quit? (y/n)") {
		t.Error("expected quit confirmation")
	}
	if !strings.Contains(output, "Thanks for playing The Crystal Kingdoms!") {
		t.Error("expected farewell")
	}
	if strings.Contains(output, "find nothing of interest") || strings.Contains(output, "You encounter") {
		t.Error("input after quit was played")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	run(t, c)

	output := out.String()
	for _, want := range []string{"/quit", "/state", "/trace", "attack (a)"} {
		if !strings.Contains(output, want) {
			t.Errorf("help missing %q", want)
		}
	}
	if strings.Contains(output, "/save") {
		t.Error("help should not offer saving")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	run(t, c)

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nrest\n/trace\n/quit\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace] Events:") {
		t.Error("expected trace lines after a step")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	run(t, c)

	output := out.String()
	for _, want := range []string{"Seed: 42", "Location: crystal_cave", "Aria the warrior: health 100/100"} {
		if !strings.Contains(output, want) {
			t.Errorf("state missing %q", want)
		}
	}
}

func TestCLI_LookCommand(t *testing.T) {
	c, out := newTestCLI(t, "/look\n/quit\n")
	run(t, c)

	if !strings.Contains(out.String(), "A luminous cave filled with glowing crystals.") {
		t.Error("expected location description")
	}
}

func TestCLI_EmptyInputAndComments(t *testing.T) {
	c, out := newTestCLI(t, "\n# a comment\n\n/quit\n")
	run(t, c)

	if strings.Contains(out.String(), "Invalid choice") {
		t.Error("blank lines and comments should be skipped")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "travel\n0\nagain\n0\n/quit\n")
	run(t, c)

	// The class answer, "travel" and "0" are the last commands in turn;
	// "again" repeats "0", which is invalid at the menu.
	if !strings.Contains(out.String(), "Invalid choice. Please try again.") {
		t.Error("expected the repeated command to be played")
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	cat, err := loader.LoadFS(content.Default())
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	c := New(engine.New(cat, engine.NewRNG(1)))
	c.In = strings.NewReader("again\n/quit\n")
	c.Out = &out
	run(t, c)

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "rest\n")
	c.EchoInput = true
	run(t, c)

	if !strings.Contains(out.String(), "> rest\n") {
		t.Error("expected echoed input after the prompt")
	}
}

func TestCLI_InvariantStopsRun(t *testing.T) {
	const cleanse = "Cleanse the Corrupted Crystals"
	c, _ := newTestCLI(t, "")
	for _, in := range []string{"Aria", "warrior"} {
		if _, err := c.Engine.Step(in); err != nil {
			t.Fatal(err)
		}
	}
	p := c.Engine.Player
	p.ActiveQuests = []string{cleanse}
	p.QuestProgress[cleanse] = 2
	p.Inventory = append(p.Inventory, "crystal_shard")
	for _, in := range []string{"talk", "1"} {
		if _, err := c.Engine.Step(in); err != nil {
			t.Fatal(err)
		}
	}
	// The shard vanishes before the turn-in is confirmed.
	p.Inventory = nil
	c.In = strings.NewReader("y\n")

	err := c.Run()
	var ie *quest.InvariantError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want invariant error", err)
	}
}
