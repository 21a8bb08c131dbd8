// Package player implements the player-action state machine. Every action
// validates its preconditions against the current room and world, mutates
// state, and returns an ordered sequence of outcome codes — never prose
// and never an error for expected game conditions.
package player

import (
	"sort"
	"strconv"
	"strings"

	"github.com/davekch/textgame/engine/world"
	"github.com/davekch/textgame/types"
)

// Question suspends normal verb dispatch until the player answers yes or
// no. Yes and No are continuations; either path restores normal dispatch.
type Question struct {
	Prompt types.Outcome
	Yes    func() types.Result
	No     func() types.Result
}

// Player holds the player's mutable state: location, inventory, one step
// of move history, combat status and score. It is the only entity mutated
// directly by user commands.
type Player struct {
	world *world.World

	roomID    string
	oldRoomID string
	inventory map[string]bool

	alive    bool
	fighting bool
	trapped  bool

	strength  int
	score     int
	hintsUsed int
}

// New creates a player in the given starting room.
func New(w *world.World, startRoomID string) *Player {
	return &Player{
		world:     w,
		roomID:    startRoomID,
		inventory: map[string]bool{},
		alive:     true,
		strength:  w.PlayerStrength(),
	}
}

// RoomID returns the ID of the room the player is in.
func (p *Player) RoomID() string { return p.roomID }

// SetRoomID moves the player without running any entry checks.
func (p *Player) SetRoomID(roomID string) { p.roomID = roomID }

// OldRoomID returns the previous room, "" before the first move.
func (p *Player) OldRoomID() string { return p.oldRoomID }

// SetOldRoomID overrides the move history (used by save restore).
func (p *Player) SetOldRoomID(roomID string) { p.oldRoomID = roomID }

// Forget clears the move history.
func (p *Player) Forget() { p.oldRoomID = p.roomID }

// Alive reports whether the player lives.
func (p *Player) Alive() bool { return p.alive }

// SetAlive sets the player's alive status.
func (p *Player) SetAlive(alive bool) { p.alive = alive }

// Fighting reports whether the player is engaged in a fight.
func (p *Player) Fighting() bool { return p.fighting }

// SetFighting sets the fight status.
func (p *Player) SetFighting(fighting bool) { p.fighting = fighting }

// Trapped reports whether the player may leave the current room.
func (p *Player) Trapped() bool { return p.trapped }

// SetTrapped sets the trapped status.
func (p *Player) SetTrapped(trapped bool) { p.trapped = trapped }

// Strength returns the player's combat strength.
func (p *Player) Strength() int { return p.strength }

// Score returns the current score.
func (p *Player) Score() int { return p.score }

// SetScore overrides the score (used by save restore).
func (p *Player) SetScore(score int) { p.score = score }

// HintsUsed returns how many hints the player has paid for.
func (p *Player) HintsUsed() int { return p.hintsUsed }

// SetHintsUsed overrides the hint counter (used by save restore).
func (p *Player) SetHintsUsed(n int) { p.hintsUsed = n }

// Carries reports whether the item is in the inventory.
func (p *Player) Carries(itemID string) bool { return p.inventory[itemID] }

// AddToInventory puts an item into the inventory. It reports false if the
// item is already owned — inventory entries are unique.
func (p *Player) AddToInventory(itemID string) bool {
	if p.inventory[itemID] {
		return false
	}
	p.inventory[itemID] = true
	return true
}

// ClearInventory empties the inventory (used by save restore).
func (p *Player) ClearInventory() { p.inventory = map[string]bool{} }

// RemoveFromInventory takes an item out of the inventory.
func (p *Player) RemoveFromInventory(itemID string) bool {
	if !p.inventory[itemID] {
		return false
	}
	delete(p.inventory, itemID)
	return true
}

// InventoryIDs returns the carried item IDs, sorted.
func (p *Player) InventoryIDs() []string {
	ids := make([]string, 0, len(p.inventory))
	for id := range p.inventory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasLight reports whether the player carries a light source.
func (p *Player) HasLight() bool {
	for id := range p.inventory {
		if p.world.IsLightSource(id) {
			return true
		}
	}
	return false
}

func (p *Player) room() *world.Room {
	return p.world.Room(p.roomID)
}

var isDirection = func() map[string]bool {
	m := map[string]bool{}
	for _, d := range types.Directions {
		m[d] = true
	}
	return m
}()

// Go moves the player in the given direction. Moving while fighting is
// lethal; a locked door requires no action here (opening is a separate
// verb). On success the previous room is remembered for GoBack, monsters
// may spawn at the destination, and the destination's restriction runs —
// a vetoing restriction bounces the player back.
func (p *Player) Go(direction string) types.Result {
	if direction == "back" {
		return p.GoBack()
	}
	if direction == "" {
		return result(types.Outcome{Code: types.FailWhere})
	}
	if !isDirection[direction] {
		return result(types.Outcome{Code: types.FailNotDirection})
	}
	if p.trapped {
		return result(types.Outcome{Code: types.FailTrapped})
	}
	if p.fighting {
		// Running away from a fight kills the player.
		p.alive = false
		return result(types.Outcome{Code: types.DeathByCowardice})
	}

	room := p.room()
	destID := room.Connection(direction)
	if destID == "" {
		return result(room.ErrorFor(direction))
	}
	if room.IsLocked(direction) {
		return result(types.Outcome{Code: types.FailDoorLocked})
	}

	wayDescription := room.DescribeWayTo(direction)
	previousOld := p.oldRoomID
	p.oldRoomID = p.roomID
	p.roomID = destID
	dest := p.world.Room(destID)

	// Spawn monsters before describing the room.
	p.world.SpawnMonster(dest)

	entry, vetoed := p.world.EnterRoom(p, dest)
	if vetoed {
		p.roomID = p.oldRoomID
		p.oldRoomID = previousOld
		return types.Result{Outcomes: entry}
	}

	var out []types.Outcome
	if !dest.Dark() && wayDescription != "" {
		out = append(out, scripted(wayDescription))
	}
	out = append(out, entry...)
	out = append(out, p.world.DescribeRoom(dest, false)...)
	p.score += dest.Visit()
	return types.Result{Outcomes: out}
}

// GoBack re-enters the previous room if the current room connects to it.
func (p *Player) GoBack() types.Result {
	if p.oldRoomID == "" || p.oldRoomID == p.roomID {
		return result(types.Outcome{Code: types.FailNoMemory})
	}
	direction, ok := p.room().ConnectsTo(p.oldRoomID)
	if !ok {
		return result(types.Outcome{Code: types.FailNoWayBack})
	}
	return p.Go(direction)
}

// Take moves an item from the room into the inventory. "all" takes
// everything eligible.
func (p *Player) Take(noun string) types.Result {
	if noun == "" {
		return result(types.Outcome{Code: types.WhichItem, Args: []string{"take"}})
	}
	if noun == "all" {
		return p.TakeAll()
	}

	room := p.room()
	if room.Dark() {
		return result(types.Outcome{Code: types.DarkShort})
	}
	if p.inventory[noun] {
		return result(types.Outcome{Code: types.OwnAlready})
	}

	if room.HasItem(noun) {
		item := p.world.Item(noun)
		if item != nil && item.Takable {
			room.RemoveItem(noun)
			p.inventory[noun] = true
			return result(types.Outcome{Code: types.SuccTake, Args: []string{item.Name}})
		}
		return result(types.Outcome{Code: types.FailTake})
	}
	// Scenery: the noun appears in the room description but is no item.
	if strings.Contains(strings.ToLower(room.Description), noun) {
		return result(types.Outcome{Code: types.FailTake})
	}
	return result(types.Outcome{Code: types.NoSuchItem, Args: []string{noun}})
}

// TakeAll takes every item in the room. It never hard-fails: an empty
// room yields NothingThere, ineligible items their individual codes.
func (p *Player) TakeAll() types.Result {
	room := p.room()
	ids := room.ItemIDs()
	if len(ids) == 0 {
		return result(types.Outcome{Code: types.NothingThere})
	}
	if room.Dark() {
		return result(types.Outcome{Code: types.DarkShort})
	}
	var out []types.Outcome
	for _, id := range ids {
		out = append(out, p.Take(id).Outcomes...)
	}
	return types.Result{Outcomes: out}
}

// Drop moves an item from the inventory into the room. "all" drops
// everything.
func (p *Player) Drop(noun string) types.Result {
	if noun == "" {
		return result(types.Outcome{Code: types.WhichItem, Args: []string{"drop"}})
	}
	if noun == "all" {
		return p.DropAll()
	}
	if !p.inventory[noun] {
		return result(types.Outcome{Code: types.FailDrop})
	}
	delete(p.inventory, noun)
	p.room().AddItem(noun)
	return result(types.Outcome{Code: types.SuccDrop})
}

// DropAll drops the whole inventory; an empty inventory yields
// NoInventory rather than per-item failures.
func (p *Player) DropAll() types.Result {
	ids := p.InventoryIDs()
	if len(ids) == 0 {
		return result(types.Outcome{Code: types.NoInventory})
	}
	for _, id := range ids {
		delete(p.inventory, id)
		p.room().AddItem(id)
	}
	return result(types.Outcome{Code: types.SuccDrop})
}

// Inventory lists the carried items.
func (p *Player) Inventory() types.Result {
	ids := p.InventoryIDs()
	if len(ids) == 0 {
		return result(types.Outcome{Code: types.NoInventory})
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if item := p.world.Item(id); item != nil {
			names = append(names, item.Name)
		}
	}
	return result(types.Outcome{Code: types.InventoryList, Args: names})
}

// Attack resolves one exchange of a fight against the named monster.
func (p *Player) Attack(noun string) types.Result {
	if noun == "" {
		return result(types.Outcome{Code: types.FightWhat})
	}
	room := p.room()

	var monster *world.Monster
	for _, id := range room.MonsterIDs() {
		m := p.world.Monsters[id]
		if m != nil && (m.Name == noun || m.ID == noun) {
			monster = m
			break
		}
	}
	if monster == nil {
		// Maybe there is a dead one lying around.
		for _, id := range room.ItemIDs() {
			if item := p.world.Item(id); item != nil && item.Name == noun {
				return result(types.Outcome{Code: types.AlreadyDead, Args: []string{noun}})
			}
		}
		return result(types.Outcome{Code: types.NoSuchMonster, Args: []string{noun}})
	}
	if !monster.Alive {
		return result(types.Outcome{Code: types.AlreadyDead, Args: []string{monster.Name}})
	}
	if monster.SingleEncounter {
		return result(types.Outcome{Code: types.AlreadyGone, Args: []string{monster.Name}})
	}

	monster.Fighting = true
	switch p.world.ResolveExchange(monster, p.strength, p.bestWeapon()) {
	case world.ExchangeIgnored:
		if monster.IgnoreText != "" {
			return result(scripted(monster.IgnoreText))
		}
		return result(types.Outcome{Code: types.Nothing})
	case world.ExchangeFinalHit:
		return result(types.Outcome{Code: types.FightLast})
	case world.ExchangePlayerDied:
		p.alive = false
		return result(types.Outcome{Code: types.FightDeath})
	default:
		return result(types.Outcome{Code: types.FightAttack})
	}
}

// bestWeapon returns the strongest carried weapon bonus.
func (p *Player) bestWeapon() float64 {
	best := 0.0
	for id := range p.inventory {
		if item := p.world.Item(id); item != nil && item.WeaponStrength > best {
			best = item.WeaponStrength
		}
	}
	return best
}

// Open unlocks the door in the given direction with a fitting carried key.
func (p *Player) Open(direction string) types.Result {
	return p.openOrClose("open", direction)
}

// Close locks the door in the given direction with a fitting carried key.
func (p *Player) Close(direction string) types.Result {
	return p.openOrClose("close", direction)
}

func (p *Player) openOrClose(action, direction string) types.Result {
	if !isDirection[direction] {
		return result(types.Outcome{Code: types.FailOpenDir, Args: []string{action}})
	}
	room := p.room()
	if !room.HasConnection(direction) {
		return result(types.Outcome{Code: types.FailNoDoor})
	}
	if action == "open" && !room.IsLocked(direction) {
		return result(types.Outcome{Code: types.AlreadyOpen})
	}
	if action == "close" && room.IsLocked(direction) {
		return result(types.Outcome{Code: types.AlreadyClosed})
	}

	keys := p.carriedKeys()
	if len(keys) == 0 {
		return result(types.Outcome{Code: types.FailNoKey})
	}
	for _, key := range keys {
		if key == room.DoorCode(direction) {
			room.SetLocked(direction, action == "close")
			return result(types.Outcome{Code: types.NowOpen, Args: []string{action}})
		}
	}
	return result(types.Outcome{Code: types.FailOpen})
}

func (p *Player) carriedKeys() []int {
	var keys []int
	for _, id := range p.InventoryIDs() {
		if item := p.world.Item(id); item != nil && item.Key != 0 {
			keys = append(keys, item.Key)
		}
	}
	return keys
}

// Look describes the current room at length. Monsters may spawn and the
// room's restriction runs again, like on entry.
func (p *Player) Look() types.Result {
	room := p.room()
	p.world.SpawnMonster(room)
	entry, _ := p.world.EnterRoom(p, room)
	out := append(entry, p.world.DescribeRoom(room, true)...)
	p.score += room.Visit()
	return types.Result{Outcomes: out}
}

// Listen reports the current room's sound.
func (p *Player) Listen() types.Result {
	if sound := p.room().Sound; sound != "" {
		return result(scripted(sound))
	}
	return result(types.Outcome{Code: types.NoSound})
}

// ShowScore reports the current score.
func (p *Player) ShowScore() types.Result {
	return result(types.Outcome{Code: types.ScoreInfo, Args: []string{strconv.Itoa(p.score)}})
}

// AskHint consults the current room's hint. A hint costs score, so the
// player is asked for confirmation first; the returned Question carries
// both continuations.
func (p *Player) AskHint() (types.Result, *Question) {
	room := p.room()
	if room.Hint == "" {
		return result(types.Outcome{Code: types.NoHint}), nil
	}
	cost := room.HintValue
	q := &Question{
		Prompt: types.Outcome{Code: types.HintWarning, Args: []string{strconv.Itoa(cost)}},
		Yes: func() types.Result {
			p.score -= cost
			p.hintsUsed++
			return result(scripted(room.Hint))
		},
		No: func() types.Result {
			return result(types.Outcome{Code: types.OK})
		},
	}
	return types.Result{}, q
}

func result(outcomes ...types.Outcome) types.Result {
	return types.Result{Outcomes: outcomes}
}

func scripted(text string) types.Outcome {
	return types.Outcome{Code: types.ScriptedText, Args: []string{text}}
}
