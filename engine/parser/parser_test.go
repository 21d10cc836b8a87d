package parser

import (
	"errors"
	"testing"

	"github.com/nathoo/crystalkingdoms/types"
)

var combatPrompt = types.Prompt{
	Kind: "combat",
	Options: []types.Option{
		{Key: "attack", Label: "Attack"},
		{Key: "defend", Label: "Defend"},
		{Key: "use", Label: "Use Item"},
		{Key: "flee", Label: "Flee"},
	},
}

var inventoryPrompt = types.Prompt{
	Kind:        "item",
	AllowCancel: true,
	Options: []types.Option{
		{Key: "health_potion", Label: "Health Potion"},
		{Key: "crystal_shard", Label: "Crystal Shard"},
		{Key: "health_potion", Label: "Health Potion"},
	},
}

func TestParse_Choice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		p     types.Prompt
		want  Answer
	}{
		{"number", "1", combatPrompt, Answer{Index: 0, Key: "attack"}},
		{"number padded", "  4 ", combatPrompt, Answer{Index: 3, Key: "flee"}},
		{"key", "defend", combatPrompt, Answer{Index: 1, Key: "defend"}},
		{"key uppercase", "DEFEND", combatPrompt, Answer{Index: 1, Key: "defend"}},
		{"label", "use item", combatPrompt, Answer{Index: 2, Key: "use"}},
		{"a → attack", "a", combatPrompt, Answer{Index: 0, Key: "attack"}},
		{"run → flee", "run", combatPrompt, Answer{Index: 3, Key: "flee"}},
		{"prefix", "fle", combatPrompt, Answer{Index: 3, Key: "flee"}},
		{"duplicate labels pick first", "health", inventoryPrompt, Answer{Index: 0, Key: "health_potion"}},
		{"second slot by number", "3", inventoryPrompt, Answer{Index: 2, Key: "health_potion"}},
		{"cancel zero", "0", inventoryPrompt, Answer{Index: -1, Cancel: true}},
		{"cancel word", "back", inventoryPrompt, Answer{Index: -1, Cancel: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, tt.p)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_InvalidChoice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		p     types.Prompt
	}{
		{"empty", "", combatPrompt},
		{"zero without cancel", "0", combatPrompt},
		{"out of range", "5", combatPrompt},
		{"negative", "-1", combatPrompt},
		{"garbage", "dance", combatPrompt},
		{"alias not offered", "t", combatPrompt},
		{"out of range with cancel", "4", inventoryPrompt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, tt.p)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("Parse(%q) err = %v, want ErrInvalidSelection", tt.input, err)
			}
		})
	}
}

func TestParse_AmbiguousPrefix(t *testing.T) {
	p := types.Prompt{Options: []types.Option{
		{Key: "crystal_cave", Label: "Crystal Cave"},
		{Key: "crystal_shard", Label: "Crystal Shard"},
	}}
	if _, err := Parse("crystal", p); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("ambiguous prefix err = %v", err)
	}
	got, err := Parse("crystal s", p)
	if err != nil || got.Key != "crystal_shard" {
		t.Errorf("Parse(crystal s) = %+v, %v", got, err)
	}
}

func TestParse_YesNo(t *testing.T) {
	p := types.Prompt{YesNo: true}
	for _, in := range []string{"y", "Y", "yes", " YES "} {
		got, err := Parse(in, p)
		if err != nil || !got.Yes {
			t.Errorf("Parse(%q) = %+v, %v; want yes", in, got, err)
		}
	}
	for _, in := range []string{"n", "No"} {
		got, err := Parse(in, p)
		if err != nil || got.Yes {
			t.Errorf("Parse(%q) = %+v, %v; want no", in, got, err)
		}
	}
	for _, in := range []string{"", "maybe", "1"} {
		if _, err := Parse(in, p); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidSelection", in, err)
		}
	}
}

func TestParse_FreeText(t *testing.T) {
	p := types.Prompt{FreeText: true}
	got, err := Parse("  Aria Stormborn ", p)
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "Aria Stormborn" {
		t.Errorf("Text = %q", got.Text)
	}
	if _, err := Parse("   ", p); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("blank name err = %v", err)
	}
}
