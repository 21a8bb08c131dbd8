// Package messages maps outcome codes to narrative text. The engine core
// never contains prose; front ends render results through a Table, which
// can be swapped or partially overridden (see yaml.go).
package messages

import (
	"fmt"
	"strings"

	"github.com/davekch/textgame/types"
)

// Table is a mapping from outcome code to a text template. Templates use
// fmt verbs; all outcome arguments are strings.
type Table struct {
	templates map[types.Code]string
}

// Default returns the standard English message table.
func Default() *Table {
	return &Table{templates: map[types.Code]string{
		types.DeathByCowardice: "Coward! Running away from a fight is generally not a good idea. Your back doesn't defend itself.",
		types.FailCantGo:       "You can't go in this direction.",
		types.FailDoorLocked:   "The door is locked.",
		types.FailNoDoor:       "There is no door in this direction.",
		types.FailNoMemory:     "I can't remember where you came from.",
		types.FailNoWayBack:    "There is no direct way to go back.",
		types.FailNotDirection: "That's not a direction.",
		types.FailTrapped:      "You're trapped! You can't leave this room for now.",
		types.FailWhere:        "Tell me where to go!",

		types.OwnAlready:    "You already have it!",
		types.WhichItem:     "Please specify an item you want to %s.",
		types.SuccTake:      "You carry now a %s.",
		types.SuccDrop:      "Dropped.",
		types.FailTake:      "You can't take that.",
		types.FailDrop:      "You don't have one.",
		types.NoSuchItem:    "I see no %s here.",
		types.NoInventory:   "You don't have anything with you.",
		types.FailOpenDir:   "I can only %[1]s doors if you tell me the direction. Eg. '%[1]s west'.",
		types.FailNoKey:     "You have no keys!",
		types.FailOpen:      "None of your keys fit.",
		types.AlreadyOpen:   "The door is already open.",
		types.AlreadyClosed: "The door is already closed.",
		types.NowOpen:       "You take the key and %s the door.",

		types.DarkLong:     "It's pitch dark here. You can't see anything. Anytime soon, you'll probably get attacked by some night creature.",
		types.DarkShort:    "I can't see anything!",
		types.NoSound:      "It's all quiet.",
		types.NothingThere: "There's nothing here.",

		types.FightWhat:     "Attack what?",
		types.FightAttack:   "You attack the beast.",
		types.FightLast:     "For dear life you start one last attack against the fiend.",
		types.FightDeath:    "Your enemy has gone fully berserk. Badly injured and somewhat aghast of your own inferiority in this fight, you crawl backwards, a last hopeless attempt in saving your life. Goodbye, blue sky.",
		types.FightSurvived: "The %s has survived your attack and is very angry at you!",
		types.FightIgnored:  "Ignoring such a dangerous beast is a really bad idea.",
		types.FightReminder: "You must defend yourself! A %s is a serious threat to your life.",
		types.FightWon:      "You killed the %s.",
		types.FightLost:     "You should consider working on your fighting technique. Your amateurish attempts didn't stop the %s from killing you.",
		types.DarkDeath:     "A %s certainly has better night vision than you do. At least this was a fast and painless death for you.",
		types.AlreadyDead:   "The %s is already dead!",
		types.AlreadyGone:   "The %s is already gone.",
		types.NoSuchMonster: "There is no %s to attack.",

		types.NotUnderstood:    "I don't understand that.",
		types.TooManyArguments: "Please restrict your command to two words.",
		types.Nothing:          "Nothing happens.",
		types.ScoreInfo:        "Your score is %s.",
		types.HintWarning:      "I have a hint for you, but it will cost you %s points. Do you want to hear it?",
		types.NoHint:           "I don't have any special hints for you.",
		types.YesNoPlease:      "Please answer yes or no.",
		types.OK:               "Ok.",
		types.Sunset:           "The sun has set. Night comes in.",
		types.Sunrise:          "The sun is rising! A new day begins.",
		types.GameOver:         "The game is over.",
	}}
}

// Set overrides the template for a single code.
func (t *Table) Set(code types.Code, template string) {
	t.templates[code] = template
}

// Render produces the narrative line for one outcome. Unknown codes
// render as their raw identifier so defects are visible, not silent.
func (t *Table) Render(o types.Outcome) string {
	switch o.Code {
	case types.ScriptedText:
		if len(o.Args) == 0 {
			return ""
		}
		return o.Args[0]
	case types.InventoryList:
		return "You are now carrying:\n A " + strings.Join(o.Args, "\n A ")
	}
	template, ok := t.templates[o.Code]
	if !ok {
		return string(o.Code)
	}
	if len(o.Args) == 0 {
		return template
	}
	args := make([]any, len(o.Args))
	for i, a := range o.Args {
		args[i] = a
	}
	return fmt.Sprintf(template, args...)
}

// RenderResult produces one narrative line per outcome.
func (t *Table) RenderResult(res types.Result) []string {
	lines := make([]string, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		if line := t.Render(o); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
