// Package engine wires vocabulary, parser, player and world into a
// turn-based session: one Submit processes exactly one command to
// completion (parse → dispatch → mutate → world update) before the next.
package engine

import (
	"fmt"
	"strings"

	"github.com/davekch/textgame/engine/parser"
	"github.com/davekch/textgame/engine/player"
	"github.com/davekch/textgame/engine/vocab"
	"github.com/davekch/textgame/engine/world"
	"github.com/davekch/textgame/types"
)

// Handler is a player action bound to a canonical verb. The noun is the
// resolved canonical noun ("" if none was given). A non-nil Question
// suspends normal dispatch until answered.
type Handler func(noun string) (types.Result, *player.Question)

// Engine holds the world, the player and the verb dispatch table.
type Engine struct {
	Defs   *types.Defs
	World  *world.World
	Player *player.Player
	Dict   *vocab.Dictionary

	parser   *parser.Parser
	handlers map[string]Handler
	timeless map[string]bool
	question *player.Question
	over     bool
}

// New builds a session from definitions. The restrictions map registers
// game-specific room restrictions by name; it may be nil.
func New(defs *types.Defs, seed int64, restrictions map[string]world.Restriction) (*Engine, error) {
	w, err := world.New(defs, seed, restrictions)
	if err != nil {
		return nil, err
	}
	p := player.New(w, defs.Game.Start)

	dict := vocab.Default()
	registerNouns(dict, defs)

	e := &Engine{
		Defs:     defs,
		World:    w,
		Player:   p,
		Dict:     dict,
		parser:   parser.New(dict),
		handlers: map[string]Handler{},
		timeless: map[string]bool{"score": true, "inventory": true, "hint": true, "listen": true},
	}
	if err := e.registerDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

// registerNouns adds every movable's identifier (and single-word name
// synonym) to the dictionary so the parser can resolve them.
func registerNouns(dict *vocab.Dictionary, defs *types.Defs) {
	addItem := func(id, name string) {
		dict.AddNoun(id)
		if name != "" && name != id && !strings.Contains(name, " ") {
			dict.AddNoun(id, name)
		}
	}
	for id, def := range defs.Items {
		addItem(id, def.Name)
	}
	for id, def := range defs.Weapons {
		addItem(id, def.Name)
	}
	for id, def := range defs.Monsters {
		// Monsters are addressed (and their corpses taken) by name.
		if !strings.Contains(def.Name, " ") {
			dict.AddNoun(def.Name)
		}
		if id != def.Name && !strings.Contains(id, " ") {
			dict.AddNoun(def.Name, id)
		}
	}
}

// registerDefaults binds the default verb set to the player's actions.
func (e *Engine) registerDefaults() error {
	p := e.Player
	plain := func(fn func(string) types.Result) Handler {
		return func(noun string) (types.Result, *player.Question) {
			return fn(noun), nil
		}
	}
	nounless := func(fn func() types.Result) Handler {
		return func(string) (types.Result, *player.Question) {
			return fn(), nil
		}
	}

	bindings := map[string]Handler{
		"go":        plain(p.Go),
		"take":      plain(p.Take),
		"drop":      plain(p.Drop),
		"attack":    plain(p.Attack),
		"open":      plain(p.Open),
		"close":     plain(p.Close),
		"look":      nounless(p.Look),
		"listen":    nounless(p.Listen),
		"inventory": nounless(p.Inventory),
		"score":     nounless(p.ShowScore),
		"hint": func(string) (types.Result, *player.Question) {
			return p.AskHint()
		},
	}
	for verb, h := range bindings {
		if err := e.Register(verb, h); err != nil {
			return err
		}
	}
	return nil
}

// Register binds a handler to a canonical verb. Binding an empty verb, a
// nil handler or a verb twice is a programming defect and fails here, at
// registration time.
func (e *Engine) Register(verb string, h Handler) error {
	if verb == "" {
		return fmt.Errorf("cannot register handler for empty verb")
	}
	if h == nil {
		return fmt.Errorf("nil handler for verb %q", verb)
	}
	if _, dup := e.handlers[verb]; dup {
		return fmt.Errorf("verb %q registered twice", verb)
	}
	e.handlers[verb] = h
	return nil
}

// SetTimeless marks a verb as not consuming a turn.
func (e *Engine) SetTimeless(verb string, timeless bool) {
	e.timeless[verb] = timeless
}

// Submit processes one raw command line and returns the outcomes of the
// turn. A non-nil error is an internal-consistency defect (never an
// expected game condition) and must stop the session distinctly from a
// narrative message.
func (e *Engine) Submit(raw string) (types.Result, error) {
	// A dead player short-circuits everything but the game-over signal.
	if e.over || !e.Player.Alive() {
		e.over = true
		return result(types.Outcome{Code: types.GameOver}), nil
	}

	if e.question != nil {
		return e.answerQuestion(raw)
	}

	cmd, failure, ok := e.parser.Understand(raw)
	if !ok {
		return result(failure), nil
	}

	h, exists := e.handlers[cmd.Verb]
	if !exists {
		// The vocabulary resolved a verb nothing is bound to: a setup
		// defect, not a player mistake.
		return types.Result{}, fmt.Errorf("no handler registered for verb %q", cmd.Verb)
	}

	res, q := h(cmd.Noun)
	if err := checkResult(cmd.Verb, res); err != nil {
		return types.Result{}, err
	}

	if q != nil {
		// Questions suspend dispatch and consume no turn.
		e.question = q
		res.Outcomes = append(res.Outcomes, q.Prompt)
		return res, nil
	}

	if !e.timeless[cmd.Verb] {
		res.Outcomes = append(res.Outcomes, e.World.Update(e.Player)...)
	}
	return e.finish(res), nil
}

// answerQuestion feeds input to the pending yes/no question. Any answer
// path — yes, no, or dying in a continuation — restores normal dispatch.
func (e *Engine) answerQuestion(raw string) (types.Result, error) {
	switch e.parser.ParseYesNo(raw) {
	case types.AnswerYes:
		q := e.question
		e.question = nil
		res := q.Yes()
		if err := checkResult("yes", res); err != nil {
			return types.Result{}, err
		}
		return e.finish(res), nil
	case types.AnswerNo:
		q := e.question
		e.question = nil
		res := q.No()
		if err := checkResult("no", res); err != nil {
			return types.Result{}, err
		}
		return e.finish(res), nil
	default:
		return result(types.Outcome{Code: types.YesNoPlease}), nil
	}
}

// finish closes a turn: if the player died, the session is over.
func (e *Engine) finish(res types.Result) types.Result {
	if !e.Player.Alive() {
		e.over = true
		res.Outcomes = append(res.Outcomes, types.Outcome{Code: types.GameOver})
	}
	return res
}

// IsOver reports whether the session has reached a terminal state.
func (e *Engine) IsOver() bool {
	return e.over || !e.Player.Alive()
}

// ResetSession clears the terminal state and any pending question so a
// restored session can continue (used by save restore, which may load an
// alive save onto a finished or suspended session).
func (e *Engine) ResetSession() {
	e.over = false
	e.question = nil
}

// Pending reports whether a yes/no question awaits an answer.
func (e *Engine) Pending() bool {
	return e.question != nil
}

func result(outcomes ...types.Outcome) types.Result {
	return types.Result{Outcomes: outcomes}
}
