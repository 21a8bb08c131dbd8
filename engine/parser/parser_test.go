package parser

import (
	"testing"

	"github.com/davekch/textgame/engine/vocab"
	"github.com/davekch/textgame/types"
)

func testParser() *Parser {
	dict := vocab.Default()
	dict.AddNoun("lamp")
	dict.AddNoun("rusty_key", "key")
	return New(dict)
}

func TestUnderstand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.Command
		failure types.Code
		ok      bool
	}{
		// Empty / whitespace
		{
			name:    "empty string",
			input:   "",
			failure: types.NotUnderstood,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			failure: types.NotUnderstood,
		},

		// Single verbs
		{
			name:  "look",
			input: "look",
			want:  types.Command{Verb: "look"},
			ok:    true,
		},
		{
			name:  "l → look",
			input: "l",
			want:  types.Command{Verb: "look"},
			ok:    true,
		},
		{
			name:  "i → inventory",
			input: "i",
			want:  types.Command{Verb: "inventory"},
			ok:    true,
		},

		// Direction shortcuts
		{
			name:  "n → go north",
			input: "n",
			want:  types.Command{Verb: "go", Noun: "north"},
			ok:    true,
		},
		{
			name:  "north → go north",
			input: "north",
			want:  types.Command{Verb: "go", Noun: "north"},
			ok:    true,
		},
		{
			name:  "d → go down",
			input: "d",
			want:  types.Command{Verb: "go", Noun: "down"},
			ok:    true,
		},

		// Explicit go and synonyms
		{
			name:  "go north",
			input: "go north",
			want:  types.Command{Verb: "go", Noun: "north"},
			ok:    true,
		},
		{
			name:  "walk west → go west",
			input: "walk west",
			want:  types.Command{Verb: "go", Noun: "west"},
			ok:    true,
		},
		{
			name:  "go back",
			input: "go back",
			want:  types.Command{Verb: "go", Noun: "back"},
			ok:    true,
		},

		// Verb + noun
		{
			name:  "take lamp",
			input: "take lamp",
			want:  types.Command{Verb: "take", Noun: "lamp"},
			ok:    true,
		},
		{
			name:  "get key → take rusty_key",
			input: "get key",
			want:  types.Command{Verb: "take", Noun: "rusty_key"},
			ok:    true,
		},
		{
			name:  "take everything → take all",
			input: "take everything",
			want:  types.Command{Verb: "take", Noun: "all"},
			ok:    true,
		},
		{
			name:  "kill lamp → attack lamp",
			input: "kill lamp",
			want:  types.Command{Verb: "attack", Noun: "lamp"},
			ok:    true,
		},
		{
			name:  "open west",
			input: "open west",
			want:  types.Command{Verb: "open", Noun: "west"},
			ok:    true,
		},

		// Case insensitivity
		{
			name:  "TAKE LAMP",
			input: "TAKE LAMP",
			want:  types.Command{Verb: "take", Noun: "lamp"},
			ok:    true,
		},

		// Failures
		{
			name:    "unknown verb",
			input:   "dance",
			failure: types.NotUnderstood,
		},
		{
			name:    "direction with a noun",
			input:   "north east",
			failure: types.NotUnderstood,
		},
		{
			name:    "direction shortcut with a noun",
			input:   "n n",
			failure: types.NotUnderstood,
		},
		{
			name:    "unknown noun",
			input:   "take sword",
			failure: types.NotUnderstood,
		},
		{
			name:    "three words",
			input:   "take the lamp",
			failure: types.TooManyArguments,
		},
	}

	p := testParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, failure, ok := p.Understand(tt.input)
			if ok != tt.ok {
				t.Fatalf("Understand(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				if failure.Code != tt.failure {
					t.Errorf("Understand(%q) failure = %q, want %q", tt.input, failure.Code, tt.failure)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Understand(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  types.YesNoAnswer
	}{
		{input: "yes", want: types.AnswerYes},
		{input: "y", want: types.AnswerYes},
		{input: "YES", want: types.AnswerYes},
		{input: "no", want: types.AnswerNo},
		{input: " no ", want: types.AnswerNo},
		{input: "maybe", want: types.AnswerInvalid},
		{input: "", want: types.AnswerInvalid},
		{input: "north", want: types.AnswerInvalid},
	}

	p := testParser()
	for _, tt := range tests {
		if got := p.ParseYesNo(tt.input); got != tt.want {
			t.Errorf("ParseYesNo(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
