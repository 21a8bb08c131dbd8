// Package parser converts command strings into Command structs.
// Intentionally dumb: two words at most, synonym lookup, no NLP.
package parser

import (
	"strings"

	"github.com/davekch/textgame/engine/vocab"
	"github.com/davekch/textgame/types"
)

var directions = func() map[string]bool {
	m := make(map[string]bool, len(types.Directions))
	for _, d := range types.Directions {
		m[d] = true
	}
	return m
}()

// Parser resolves raw input against a vocabulary dictionary.
type Parser struct {
	dict *vocab.Dictionary
}

// New creates a parser using the given dictionary.
func New(dict *vocab.Dictionary) *Parser {
	return &Parser{dict: dict}
}

// Understand tokenizes raw input and resolves it into a Command.
// On failure it returns ok=false and the outcome to report: NotUnderstood
// for empty input or unknown words, TooManyArguments for more than two.
func (p *Parser) Understand(input string) (types.Command, types.Outcome, bool) {
	words := strings.Fields(input)

	switch {
	case len(words) == 0:
		return types.Command{}, types.Outcome{Code: types.NotUnderstood}, false
	case len(words) > 2:
		return types.Command{}, types.Outcome{Code: types.TooManyArguments}, false
	}

	verb, ok := p.dict.LookupVerb(words[0])
	if !ok {
		return types.Command{}, types.Outcome{Code: types.NotUnderstood}, false
	}

	var noun string
	if len(words) == 2 {
		noun, ok = p.dict.LookupNoun(words[1])
		if !ok {
			return types.Command{}, types.Outcome{Code: types.NotUnderstood}, false
		}
	}

	// Bare directions are shortcuts for "go <direction>". A direction is
	// never a verb in its own right, so a trailing noun makes no sense.
	if directions[verb] {
		if noun != "" {
			return types.Command{}, types.Outcome{Code: types.NotUnderstood}, false
		}
		return types.Command{Verb: "go", Noun: verb}, types.Outcome{}, true
	}

	return types.Command{Verb: verb, Noun: noun}, types.Outcome{}, true
}

// ParseYesNo interprets input as the answer to a yes/no question.
func (p *Parser) ParseYesNo(input string) types.YesNoAnswer {
	word := strings.TrimSpace(input)
	noun, ok := p.dict.LookupNoun(word)
	if !ok {
		return types.AnswerInvalid
	}
	switch noun {
	case "yes":
		return types.AnswerYes
	case "no":
		return types.AnswerNo
	}
	return types.AnswerInvalid
}
