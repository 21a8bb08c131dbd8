package engine

import (
	"fmt"

	"github.com/davekch/textgame/types"
)

// knownCodes is the closed set of outcome codes an action may produce.
var knownCodes = map[types.Code]bool{
	types.DeathByCowardice: true,
	types.FailCantGo:       true,
	types.FailDoorLocked:   true,
	types.FailNoDoor:       true,
	types.FailNoMemory:     true,
	types.FailNoWayBack:    true,
	types.FailNotDirection: true,
	types.FailTrapped:      true,
	types.FailWhere:        true,

	types.OwnAlready:    true,
	types.WhichItem:     true,
	types.SuccTake:      true,
	types.SuccDrop:      true,
	types.FailTake:      true,
	types.FailDrop:      true,
	types.NoSuchItem:    true,
	types.NoInventory:   true,
	types.InventoryList: true,
	types.FailOpenDir:   true,
	types.FailNoKey:     true,
	types.FailOpen:      true,
	types.AlreadyOpen:   true,
	types.AlreadyClosed: true,
	types.NowOpen:       true,

	types.DarkLong:     true,
	types.DarkShort:    true,
	types.NoSound:      true,
	types.NothingThere: true,

	types.FightWhat:     true,
	types.FightAttack:   true,
	types.FightLast:     true,
	types.FightDeath:    true,
	types.FightSurvived: true,
	types.FightIgnored:  true,
	types.FightReminder: true,
	types.FightWon:      true,
	types.FightLost:     true,
	types.DarkDeath:     true,
	types.AlreadyDead:   true,
	types.AlreadyGone:   true,
	types.NoSuchMonster: true,

	types.NotUnderstood:    true,
	types.TooManyArguments: true,
	types.Nothing:          true,
	types.ScoreInfo:        true,
	types.HintWarning:      true,
	types.NoHint:           true,
	types.YesNoPlease:      true,
	types.OK:               true,
	types.Sunset:           true,
	types.Sunrise:          true,
	types.GameOver:         true,

	types.ScriptedText: true,
}

// checkResult verifies that a dispatched action produced only recognized
// outcome codes. A violation is a programming defect, not a player-facing
// error.
func checkResult(verb string, res types.Result) error {
	for _, o := range res.Outcomes {
		if !knownCodes[o.Code] {
			return fmt.Errorf("action %q produced unrecognized outcome code %q", verb, o.Code)
		}
		if o.Code == types.ScriptedText && len(o.Args) == 0 {
			return fmt.Errorf("action %q produced scripted outcome without text", verb)
		}
	}
	return nil
}
