// Package types defines the shared data structures for the textgame engine.
// This package contains only type definitions and constants — no logic.
package types

// Command is the parsed representation of a player command.
type Command struct {
	Verb string
	Noun string // optional
}

// Code identifies a narrative event produced by an action or by the world
// update. The engine only ever selects codes; prose lives in an external
// message table (see package messages).
type Code string

// Movement outcomes.
const (
	DeathByCowardice Code = "moving.death_by_cowardice"
	FailCantGo       Code = "moving.fail_cant_go"
	FailDoorLocked   Code = "moving.fail_door_locked"
	FailNoDoor       Code = "moving.fail_no_door"
	FailNoMemory     Code = "moving.fail_no_memory"
	FailNoWayBack    Code = "moving.fail_no_way_back"
	FailNotDirection Code = "moving.fail_not_direction"
	FailTrapped      Code = "moving.fail_trapped"
	FailWhere        Code = "moving.fail_where"
)

// Action outcomes.
const (
	OwnAlready    Code = "action.own_already"
	WhichItem     Code = "action.which_item" // arg: verb
	SuccTake      Code = "action.succ_take"  // arg: item name
	SuccDrop      Code = "action.succ_drop"
	FailTake      Code = "action.fail_take"
	FailDrop      Code = "action.fail_drop"
	NoSuchItem    Code = "action.no_such_item" // arg: noun
	NoInventory   Code = "action.no_inventory"
	InventoryList Code = "action.inventory"     // args: item names
	FailOpenDir   Code = "action.fail_open_dir" // arg: open|close
	FailNoKey     Code = "action.fail_no_key"
	FailOpen      Code = "action.fail_open"
	AlreadyOpen   Code = "action.already_open"
	AlreadyClosed Code = "action.already_closed"
	NowOpen       Code = "action.now_open" // arg: open|close
)

// Descriptive outcomes.
const (
	DarkLong     Code = "descriptions.dark_long"
	DarkShort    Code = "descriptions.dark_short"
	NoSound      Code = "descriptions.no_sound"
	NothingThere Code = "descriptions.nothing_there"
)

// Combat outcomes.
const (
	FightWhat     Code = "fighting.what"
	FightAttack   Code = "fighting.attack"
	FightLast     Code = "fighting.last_attack"
	FightDeath    Code = "fighting.death"
	FightSurvived Code = "fighting.survived_attack" // arg: monster name
	FightIgnored  Code = "fighting.ignore"
	FightReminder Code = "fighting.defend_reminder" // arg: monster name
	FightWon      Code = "fighting.success"         // arg: monster name
	FightLost     Code = "fighting.loser"           // arg: monster name
	DarkDeath     Code = "fighting.dark_death"      // arg: monster name
	AlreadyDead   Code = "fighting.already_dead"    // arg: monster name
	AlreadyGone   Code = "fighting.already_gone"    // arg: monster name
	NoSuchMonster Code = "fighting.no_monster"      // arg: noun
)

// Informational outcomes.
const (
	NotUnderstood    Code = "info.not_understood"
	TooManyArguments Code = "info.too_many_arguments"
	Nothing          Code = "info.nothing"
	ScoreInfo        Code = "info.score"        // arg: score
	HintWarning      Code = "info.hint_warning" // arg: cost
	NoHint           Code = "info.no_hint"
	YesNoPlease      Code = "info.yes_no"
	OK               Code = "info.ok"
	Sunset           Code = "info.sunset"
	Sunrise          Code = "info.sunrise"
	GameOver         Code = "info.game_over"
)

// ScriptedText carries prose that comes from the world definition rather
// than the message table: room descriptions, sounds, hints, travel
// descriptions, monster ignore text, restriction messages. Its single
// argument is the definition text itself.
const ScriptedText Code = "scripted"

// Outcome pairs a code with its formatting arguments.
type Outcome struct {
	Code Code
	Args []string
}

// Result is the ordered sequence of outcomes produced by one turn.
type Result struct {
	Outcomes []Outcome
}

// YesNoAnswer is the parsed answer to a yes/no question.
type YesNoAnswer int

const (
	AnswerInvalid YesNoAnswer = iota
	AnswerYes
	AnswerNo
)

// Directions enumerates the legal movement directions in order.
var Directions = []string{"north", "east", "south", "west", "up", "down"}

// Daytime gates for monster spawning.
const (
	SpawnsAlways  = "always"
	SpawnsAtDay   = "day"
	SpawnsAtNight = "night"
)

// LockDef describes the locked state of a door.
type LockDef struct {
	Closed bool
	Key    int // items with a matching Key open/close this door
}

// RoomDef is the static definition of a room.
type RoomDef struct {
	ID               string
	Description      string
	ShortDescription string
	Value            int // score for first visit
	Sound            string
	Hint             string
	HintValue        int
	RequiresLight    bool              // dark unless a light source is present
	Doors            map[string]string // direction → room ID
	HiddenDoors      map[string]string // revealed by a trigger, unusable before
	Locked           map[string]LockDef
	DirDescriptions  map[string]string // direction → travel prose
	Errors           map[string]string // direction → custom no-exit prose
	Restriction      string            // name in the restriction registry
	RestrictionText  string            // prose for the restriction outcome
}

// ItemDef is the static definition of a takable (or fixed) item.
type ItemDef struct {
	ID           string
	Name         string
	Description  string
	Takable      bool
	Value        int
	Key          int // non-zero: opens doors locked with the same code
	InitLocation string
}

// WeaponDef is an item that lowers a monster's effective strength.
type WeaponDef struct {
	ItemDef
	Strength float64 // in [0,1]
}

// MonsterDef is the static template for a monster.
type MonsterDef struct {
	ID              string
	Name            string
	Description     string
	DeadDescription string
	IgnoreText      string   // shown when a placed monster ignores attacks
	Strength        float64  // in [0,1]; how hard it is to kill
	SpawnProb       float64  // in [0,1]
	SpawnsIn        []string // room-ID fragments the template may spawn in
	SpawnsAt        string   // "always", "day" or "night"
	InitLocation    string
	Harmless        bool
	SingleEncounter bool
}

// GameDef holds game metadata and engine tunables.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting room ID
	Intro   string

	// Tunables with documented defaults (see engine/world).
	PlayerStrength       int      // starting combat strength; 0 → default
	Nighttime            int      // turns per half day; 0 → default
	FightHistoryBonus    float64  // per-exchange strength reduction; 0 → default
	FightLastChanceBonus float64  // final-exchange strength reduction; 0 → default
	LightSources         []string // item IDs that light rooms up; nil → default
}

// Defs holds the immutable world definition consumed by the engine.
type Defs struct {
	Game     GameDef
	Rooms    map[string]RoomDef
	Items    map[string]ItemDef
	Weapons  map[string]WeaponDef
	Monsters map[string]MonsterDef
}
