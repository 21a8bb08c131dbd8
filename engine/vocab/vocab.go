// Package vocab resolves raw input tokens to canonical verbs and nouns.
// Resolution is case-insensitive, synonym-aware and exact — no fuzzy
// matching.
package vocab

import "strings"

// Dictionary maps raw tokens to canonical verb and noun identifiers.
// Canonical words map to themselves.
type Dictionary struct {
	verbs map[string]string
	nouns map[string]string
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		verbs: map[string]string{},
		nouns: map[string]string{},
	}
}

// Default returns a dictionary populated with the default vocabulary.
func Default() *Dictionary {
	d := NewDictionary()

	d.AddVerb("go", "enter", "walk")
	d.AddVerb("take", "grab", "get")
	d.AddVerb("drop", "discard")
	d.AddVerb("attack", "fight", "kill", "hit")
	d.AddVerb("listen", "hear")
	d.AddVerb("look", "l")
	d.AddVerb("open")
	d.AddVerb("close", "lock")
	d.AddVerb("inventory", "i", "inv")
	d.AddVerb("hint")
	d.AddVerb("score")

	// Directions double as verbs ("north") and as nouns of "go".
	d.AddVerb("north", "n")
	d.AddVerb("east", "e")
	d.AddVerb("south", "s")
	d.AddVerb("west", "w")
	d.AddVerb("up", "u")
	d.AddVerb("down", "d")

	d.AddNoun("north", "n")
	d.AddNoun("east", "e")
	d.AddNoun("south", "s")
	d.AddNoun("west", "w")
	d.AddNoun("up", "u")
	d.AddNoun("down", "d")
	d.AddNoun("yes", "y")
	d.AddNoun("no")
	d.AddNoun("all", "everything")
	d.AddNoun("back")

	return d
}

// AddVerb registers a canonical verb and its synonyms.
func (d *Dictionary) AddVerb(canonical string, synonyms ...string) {
	d.verbs[normalize(canonical)] = canonical
	for _, s := range synonyms {
		d.verbs[normalize(s)] = canonical
	}
}

// AddNoun registers a canonical noun and its synonyms.
func (d *Dictionary) AddNoun(canonical string, synonyms ...string) {
	d.nouns[normalize(canonical)] = canonical
	for _, s := range synonyms {
		d.nouns[normalize(s)] = canonical
	}
}

// LookupVerb resolves a raw token to its canonical verb.
func (d *Dictionary) LookupVerb(token string) (string, bool) {
	v, ok := d.verbs[normalize(token)]
	return v, ok
}

// LookupNoun resolves a raw token to its canonical noun.
func (d *Dictionary) LookupNoun(token string) (string, bool) {
	n, ok := d.nouns[normalize(token)]
	return n, ok
}

func normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
