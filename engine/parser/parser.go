// Package parser converts raw player input into an answer for the pending
// prompt. Intentionally dumb: no NLP, just numbers, keys and aliases.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/crystalkingdoms/types"
)

// ErrInvalidSelection is returned for input that does not answer the prompt.
// Callers re-issue the prompt.
var ErrInvalidSelection = errors.New("invalid selection")

// Answer is a parsed reply to a prompt.
type Answer struct {
	Index  int    // 0-based option index; -1 when not a menu answer
	Key    string // option key
	Yes    bool   // yes/no prompts
	Text   string // free-text prompts
	Cancel bool
}

// verbAliases map shorthand to option keys. An alias only applies when the
// prompt actually offers that key.
var verbAliases = map[string]string{
	// Main menu
	"x":      "explore",
	"e":      "explore",
	"search": "explore",
	"look":   "explore",
	"u":      "use",
	"item":   "use",
	"items":  "use",
	"i":      "use",
	"inv":    "use",
	"m":      "travel",
	"go":     "travel",
	"move":   "travel",
	"walk":   "travel",
	"r":      "rest",
	"sleep":  "rest",
	"camp":   "rest",
	"t":      "talk",
	"speak":  "talk",
	"chat":   "talk",
	"ask":    "talk",
	"q":      "quit",
	"exit":   "quit",
	"b":      "boss",
	"fight":  "boss",

	// Combat
	"a":      "attack",
	"hit":    "attack",
	"strike": "attack",
	"d":      "defend",
	"block":  "defend",
	"guard":  "defend",
	"f":      "flee",
	"run":    "flee",
	"escape": "flee",
}

var cancelWords = map[string]bool{
	"0": true, "c": true, "cancel": true, "back": true,
}

var yesWords = map[string]bool{"y": true, "yes": true}
var noWords = map[string]bool{"n": true, "no": true}

// Parse interprets input against the prompt.
func Parse(input string, p types.Prompt) (Answer, error) {
	input = strings.TrimSpace(input)

	switch {
	case p.FreeText:
		if input == "" {
			return Answer{}, fmt.Errorf("%w: a name is required", ErrInvalidSelection)
		}
		return Answer{Index: -1, Text: input}, nil
	case p.YesNo:
		return parseYesNo(input)
	default:
		return parseChoice(input, p)
	}
}

func parseYesNo(input string) (Answer, error) {
	word := strings.ToLower(input)
	switch {
	case yesWords[word]:
		return Answer{Index: -1, Yes: true}, nil
	case noWords[word]:
		return Answer{Index: -1}, nil
	}
	return Answer{}, fmt.Errorf("%w: answer y or n", ErrInvalidSelection)
}

func parseChoice(input string, p types.Prompt) (Answer, error) {
	word := strings.ToLower(input)
	if word == "" {
		return Answer{}, fmt.Errorf("%w: choose an option", ErrInvalidSelection)
	}

	if p.AllowCancel && cancelWords[word] {
		return Answer{Index: -1, Cancel: true}, nil
	}

	// Menu number, 1-based.
	if n, err := strconv.Atoi(word); err == nil {
		if n < 1 || n > len(p.Options) {
			return Answer{}, fmt.Errorf("%w: choose 1-%d", ErrInvalidSelection, len(p.Options))
		}
		return answerAt(p, n-1), nil
	}

	// Exact key or label.
	for i, opt := range p.Options {
		if strings.EqualFold(opt.Key, word) || strings.EqualFold(opt.Label, word) {
			return answerAt(p, i), nil
		}
	}

	if key, ok := verbAliases[word]; ok {
		for i, opt := range p.Options {
			if opt.Key == key {
				return answerAt(p, i), nil
			}
		}
	}

	// Unique label prefix, e.g. "health" for "Health Potion".
	match := -1
	for i, opt := range p.Options {
		if strings.HasPrefix(strings.ToLower(opt.Label), word) {
			if match >= 0 && p.Options[match].Key != opt.Key {
				return Answer{}, fmt.Errorf("%w: %q is ambiguous", ErrInvalidSelection, input)
			}
			if match < 0 {
				match = i
			}
		}
	}
	if match >= 0 {
		return answerAt(p, match), nil
	}

	return Answer{}, fmt.Errorf("%w: %q", ErrInvalidSelection, input)
}

func answerAt(p types.Prompt, i int) Answer {
	return Answer{Index: i, Key: p.Options[i].Key}
}
