// Package parser converts command strings into Command structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/eradicate/types"
)

var verbAliases = map[string]string{
	// Protect a human
	"p":      "protect",
	"guard":  "protect",
	"save":   "protect",
	"shield": "protect",
	"cover":  "protect",

	// Clear a breeding ground
	"c":     "clear",
	"empty": "clear",
	"dump":  "clear",
	"drain": "clear",
	"tip":   "clear",

	// Toggle either kind
	"t":      "toggle",
	"select": "toggle",
	"pick":   "toggle",

	// Confirm the round
	"done":    "confirm",
	"end":     "confirm",
	"go":      "confirm",
	"ok":      "confirm",
	"next":    "confirm",
	"finish":  "confirm",
	"resolve": "confirm",

	// Status
	"s":     "status",
	"look":  "status",
	"l":     "status",
	"board": "status",

	"h": "help",
	"?": "help",
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into a Command.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)
	if len(words) == 0 {
		return types.Command{}
	}

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	return types.Command{
		Verb:   words[0],
		Object: strings.Join(stripFillers(words[1:]), " "),
	}
}

// expandMultiWordVerbs handles "end round", "clear out", "look at" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "end", "finish":
		if words[1] == "round" || words[1] == "turn" {
			return append([]string{"confirm"}, words[2:]...)
		}
	case "clear", "empty", "dump":
		if words[1] == "out" {
			return append([]string{"clear"}, words[2:]...)
		}
	case "look":
		if words[1] == "at" || words[1] == "around" {
			return append([]string{"status"}, words[2:]...)
		}
	case "watch", "guard":
		if words[1] == "over" {
			return append([]string{"protect"}, words[2:]...)
		}
	}

	return words
}

// stripFillers removes articles ("the", "a", "an") from the word list.
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	return result
}
