package world

import (
	"sort"

	"github.com/davekch/textgame/types"
)

// Room holds a room's static description, its directional connections and
// the identifiers of the movables currently inside it. Connections are
// directional and need not be symmetric. All cross-references are room and
// movable IDs resolved through the owning World.
type Room struct {
	ID               string
	Description      string
	ShortDescription string
	Value            int
	Sound            string
	Hint             string
	HintValue        int
	RequiresLight    bool
	Restriction      string
	RestrictionText  string

	Visited  bool
	Revealed bool // hidden doors merged into doors

	doors           map[string]string
	hiddenDoors     map[string]string
	locked          map[string]types.LockDef
	dirDescriptions map[string]string
	errors          map[string]string

	items    map[string]bool
	monsters map[string]bool

	dark bool // recomputed on every visit
}

func newRoom(def types.RoomDef) *Room {
	r := &Room{
		ID:               def.ID,
		Description:      def.Description,
		ShortDescription: def.ShortDescription,
		Value:            def.Value,
		Sound:            def.Sound,
		Hint:             def.Hint,
		HintValue:        def.HintValue,
		RequiresLight:    def.RequiresLight,
		Restriction:      def.Restriction,
		doors:            map[string]string{},
		hiddenDoors:      map[string]string{},
		locked:           map[string]types.LockDef{},
		dirDescriptions:  map[string]string{},
		errors:           map[string]string{},
		items:            map[string]bool{},
		monsters:         map[string]bool{},
	}
	for dir, target := range def.Doors {
		r.doors[dir] = target
	}
	for dir, target := range def.HiddenDoors {
		r.hiddenDoors[dir] = target
	}
	for dir, lock := range def.Locked {
		r.locked[dir] = lock
	}
	for dir, text := range def.DirDescriptions {
		r.dirDescriptions[dir] = text
	}
	for dir, text := range def.Errors {
		r.errors[dir] = text
	}
	return r
}

// Connection returns the room ID the given direction leads to, or "" if
// there is no (visible) door.
func (r *Room) Connection(direction string) string {
	return r.doors[direction]
}

// HasConnection reports whether a visible door exists in the direction.
func (r *Room) HasConnection(direction string) bool {
	return r.doors[direction] != ""
}

// ConnectsTo returns the direction of a door leading to the given room.
func (r *Room) ConnectsTo(roomID string) (string, bool) {
	// Deterministic order in case several doors lead to the same room.
	for _, dir := range types.Directions {
		if r.doors[dir] == roomID {
			return dir, true
		}
	}
	return "", false
}

// IsLocked reports whether the door in the direction is locked.
func (r *Room) IsLocked(direction string) bool {
	return r.locked[direction].Closed
}

// SetLocked locks or unlocks the door in the direction.
func (r *Room) SetLocked(direction string, closed bool) {
	lock := r.locked[direction]
	lock.Closed = closed
	r.locked[direction] = lock
}

// DoorCode returns the key code of the door in the direction (0 if none).
func (r *Room) DoorCode(direction string) int {
	return r.locked[direction].Key
}

// DescribeWayTo returns the travel prose for leaving in the direction.
func (r *Room) DescribeWayTo(direction string) string {
	return r.dirDescriptions[direction]
}

// ErrorFor returns the outcome for a failed move in the direction:
// the room's custom no-exit prose if configured, FailCantGo otherwise.
func (r *Room) ErrorFor(direction string) types.Outcome {
	if text, ok := r.errors[direction]; ok && text != "" {
		return types.Outcome{Code: types.ScriptedText, Args: []string{text}}
	}
	return types.Outcome{Code: types.FailCantGo}
}

// RevealHiddenDoors merges all hidden connections into the visible ones.
func (r *Room) RevealHiddenDoors() {
	for dir, target := range r.hiddenDoors {
		r.doors[dir] = target
	}
	r.Revealed = true
}

// AddItem puts a movable's ID into the room.
func (r *Room) AddItem(itemID string) {
	r.items[itemID] = true
}

// RemoveItem takes a movable's ID out of the room. It reports whether the
// item was present.
func (r *Room) RemoveItem(itemID string) bool {
	if !r.items[itemID] {
		return false
	}
	delete(r.items, itemID)
	return true
}

// HasItem reports whether the item is in the room.
func (r *Room) HasItem(itemID string) bool {
	return r.items[itemID]
}

// ItemIDs returns the IDs of the items in the room, sorted.
func (r *Room) ItemIDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddMonster puts a monster's ID into the room.
func (r *Room) AddMonster(monsterID string) {
	r.monsters[monsterID] = true
}

// RemoveMonster takes a monster's ID out of the room.
func (r *Room) RemoveMonster(monsterID string) bool {
	if !r.monsters[monsterID] {
		return false
	}
	delete(r.monsters, monsterID)
	return true
}

// HasMonster reports whether the monster is in the room.
func (r *Room) HasMonster(monsterID string) bool {
	return r.monsters[monsterID]
}

// MonsterIDs returns the IDs of the monsters in the room, sorted.
func (r *Room) MonsterIDs() []string {
	ids := make([]string, 0, len(r.monsters))
	for id := range r.monsters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NoMonsters reports whether no monsters are in the room.
func (r *Room) NoMonsters() bool {
	return len(r.monsters) == 0
}

// Locks returns a copy of the per-direction lock states.
func (r *Room) Locks() map[string]types.LockDef {
	locks := make(map[string]types.LockDef, len(r.locked))
	for dir, lock := range r.locked {
		locks[dir] = lock
	}
	return locks
}

// RestoreLocks replaces the per-direction lock states (save restore).
func (r *Room) RestoreLocks(locks map[string]types.LockDef) {
	r.locked = map[string]types.LockDef{}
	for dir, lock := range locks {
		r.locked[dir] = lock
	}
}

// ResetItems replaces the room's item set (save restore).
func (r *Room) ResetItems(ids []string) {
	r.items = map[string]bool{}
	for _, id := range ids {
		r.items[id] = true
	}
}

// ResetMonsters replaces the room's monster set (save restore).
func (r *Room) ResetMonsters(ids []string) {
	r.monsters = map[string]bool{}
	for _, id := range ids {
		r.monsters[id] = true
	}
}

// Dark reports the room's current darkness, as computed on last visit.
func (r *Room) Dark() bool {
	return r.dark
}

// Visit marks the room visited unless it is dark and returns the score
// value of a first visit (0 on repeat visits).
func (r *Room) Visit() int {
	if r.dark || r.Visited {
		return 0
	}
	r.Visited = true
	return r.Value
}
