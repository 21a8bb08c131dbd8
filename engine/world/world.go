// Package world owns the room graph, the movable catalog and the
// simulation clock. It drives the per-turn update: daylight cycling,
// unsolicited monster strikes and monster spawning. All mutation outside
// player commands happens here.
package world

import (
	"fmt"
	"sort"
	"strings"

	"github.com/davekch/textgame/types"
)

// Tunable defaults, overridable through the Game definition.
const (
	DefaultNighttime            = 200
	DefaultPlayerStrength       = 1
	DefaultFightHistoryBonus    = 0.1
	DefaultFightLastChanceBonus = 0.2
)

// DefaultLightSources are the item IDs that light up dark rooms unless
// the game definition names its own set.
var DefaultLightSources = []string{"lamp", "torch", "candles"}

// Adventurer is the world's view of the player: what per-turn updates and
// room restrictions may read and mutate.
type Adventurer interface {
	RoomID() string
	SetRoomID(roomID string)
	Alive() bool
	SetAlive(alive bool)
	SetFighting(fighting bool)
	SetTrapped(trapped bool)
	HasLight() bool
	Carries(itemID string) bool
	RemoveFromInventory(itemID string) bool
}

// Restriction is a room-specific rule evaluated when the player enters
// the room. Check returns the outcome to report and whether the player
// passes. A failing check of a Veto restriction reverts the move.
type Restriction struct {
	Veto  bool
	Check func(a Adventurer, r *Room, w *World) (types.Outcome, bool)
}

// World holds the room graph, the movable catalog and the clock. Rooms,
// items and monsters are owned by the world and referenced by ID
// everywhere else.
type World struct {
	Rooms    map[string]*Room
	Items    map[string]*Item
	Monsters map[string]*Monster

	// Storage keeps movables out of play without destroying them.
	Storage *Room

	Time  int
	Night bool

	playerStrength  int
	nighttime       int
	historyBonus    float64
	lastChanceBonus float64
	lightSources    map[string]bool

	rng          *RNG
	restrictions map[string]Restriction
}

// New builds a world from definitions, validates all cross-references and
// places the initial movables. The restrictions map may be nil; the
// builtin restrictions are always available.
func New(defs *types.Defs, seed int64, restrictions map[string]Restriction) (*World, error) {
	w := &World{
		Rooms:           map[string]*Room{},
		Items:           map[string]*Item{},
		Monsters:        map[string]*Monster{},
		Storage:         newRoom(types.RoomDef{ID: "storage"}),
		playerStrength:  defs.Game.PlayerStrength,
		nighttime:       defs.Game.Nighttime,
		historyBonus:    defs.Game.FightHistoryBonus,
		lastChanceBonus: defs.Game.FightLastChanceBonus,
		lightSources:    map[string]bool{},
		rng:             NewRNG(seed),
		restrictions:    builtinRestrictions(),
	}
	if w.playerStrength == 0 {
		w.playerStrength = DefaultPlayerStrength
	}
	if w.nighttime == 0 {
		w.nighttime = DefaultNighttime
	}
	if w.historyBonus == 0 {
		w.historyBonus = DefaultFightHistoryBonus
	}
	if w.lastChanceBonus == 0 {
		w.lastChanceBonus = DefaultFightLastChanceBonus
	}
	lights := defs.Game.LightSources
	if lights == nil {
		lights = DefaultLightSources
	}
	for _, id := range lights {
		w.lightSources[id] = true
	}
	for name, r := range restrictions {
		w.restrictions[name] = r
	}

	for id, def := range defs.Rooms {
		def.ID = id
		w.Rooms[id] = newRoom(def)
	}
	for id, def := range defs.Items {
		def.ID = id
		w.Items[id] = newItem(def)
	}
	for id, def := range defs.Weapons {
		if _, dup := w.Items[id]; dup {
			return nil, fmt.Errorf("duplicate movable ID %q", id)
		}
		def.ID = id
		w.Items[id] = newWeapon(def)
	}
	for id, def := range defs.Monsters {
		if _, dup := w.Items[id]; dup {
			return nil, fmt.Errorf("duplicate movable ID %q", id)
		}
		def.ID = id
		w.Monsters[id] = newMonster(def)
	}

	if err := w.validate(defs); err != nil {
		return nil, err
	}
	w.placeMovables(defs)
	return w, nil
}

// validate checks every cross-reference in the definitions. A dangling
// reference is an internal-consistency failure, not a game condition.
func (w *World) validate(defs *types.Defs) error {
	if _, ok := w.Rooms[defs.Game.Start]; !ok {
		return fmt.Errorf("start room %q does not exist", defs.Game.Start)
	}
	validDir := map[string]bool{}
	for _, d := range types.Directions {
		validDir[d] = true
	}
	for id, room := range w.Rooms {
		for dir, target := range room.doors {
			if !validDir[dir] {
				return fmt.Errorf("room %q: %q is not a direction", id, dir)
			}
			if _, ok := w.Rooms[target]; !ok {
				return fmt.Errorf("room %q: door %s leads to unknown room %q", id, dir, target)
			}
		}
		for dir, target := range room.hiddenDoors {
			if !validDir[dir] {
				return fmt.Errorf("room %q: %q is not a direction", id, dir)
			}
			if _, ok := w.Rooms[target]; !ok {
				return fmt.Errorf("room %q: hidden door %s leads to unknown room %q", id, dir, target)
			}
		}
		for dir := range room.locked {
			if !validDir[dir] {
				return fmt.Errorf("room %q: locked %q is not a direction", id, dir)
			}
		}
		if room.Restriction != "" {
			if _, ok := w.restrictions[room.Restriction]; !ok {
				return fmt.Errorf("room %q: unknown restriction %q", id, room.Restriction)
			}
		}
	}
	for id, def := range defs.Items {
		if def.InitLocation != "" {
			if _, ok := w.Rooms[def.InitLocation]; !ok {
				return fmt.Errorf("item %q: unknown init location %q", id, def.InitLocation)
			}
		}
	}
	for id, def := range defs.Weapons {
		if def.InitLocation != "" {
			if _, ok := w.Rooms[def.InitLocation]; !ok {
				return fmt.Errorf("weapon %q: unknown init location %q", id, def.InitLocation)
			}
		}
	}
	for id, def := range defs.Monsters {
		if def.InitLocation != "" {
			if _, ok := w.Rooms[def.InitLocation]; !ok {
				return fmt.Errorf("monster %q: unknown init location %q", id, def.InitLocation)
			}
		}
		switch def.SpawnsAt {
		case "", types.SpawnsAlways, types.SpawnsAtDay, types.SpawnsAtNight:
		default:
			return fmt.Errorf("monster %q: invalid spawns_at %q", id, def.SpawnsAt)
		}
		if def.SpawnProb < 0 || def.SpawnProb > 1 {
			return fmt.Errorf("monster %q: spawn probability %v outside [0,1]", id, def.SpawnProb)
		}
		if def.Strength < 0 || def.Strength > 1 {
			return fmt.Errorf("monster %q: strength %v outside [0,1]", id, def.Strength)
		}
	}
	return nil
}

// placeMovables puts items and monsters into their initial rooms.
func (w *World) placeMovables(defs *types.Defs) {
	place := func(id, loc string) {
		if loc != "" {
			w.Rooms[loc].AddItem(id)
		}
	}
	for id, def := range defs.Items {
		place(id, def.InitLocation)
	}
	for id, def := range defs.Weapons {
		place(id, def.InitLocation)
	}
	for id, def := range defs.Monsters {
		if def.InitLocation == "" {
			continue
		}
		w.Rooms[def.InitLocation].AddMonster(id)
		w.Monsters[id].Active = true
	}
}

// Room returns a room by ID, nil if unknown.
func (w *World) Room(id string) *Room {
	return w.Rooms[id]
}

// Item returns a movable by ID, nil if unknown.
func (w *World) Item(id string) *Item {
	return w.Items[id]
}

// IsLightSource reports whether the item lights rooms up.
func (w *World) IsLightSource(itemID string) bool {
	return w.lightSources[itemID]
}

// PlayerStrength returns the configured starting combat strength.
func (w *World) PlayerStrength() int {
	return w.playerStrength
}

// RNG exposes the world's random source for save/restore.
func (w *World) RNG() *RNG {
	return w.rng
}

// RestoreRNG replaces the random source with one replayed to a position.
func (w *World) RestoreRNG(seed, position int64) {
	w.rng = RestoreRNG(seed, position)
}

// roomHasLight reports whether any item inside the room is a light source.
func (w *World) roomHasLight(r *Room) bool {
	for id := range r.items {
		if w.lightSources[id] {
			return true
		}
	}
	return false
}

// EnterRoom recomputes the room's darkness and evaluates its restriction.
// It returns the outcomes to report and whether the move was vetoed.
func (w *World) EnterRoom(a Adventurer, r *Room) ([]types.Outcome, bool) {
	r.dark = (r.RequiresLight || w.Night) && !(w.roomHasLight(r) || a.HasLight())

	if r.Restriction == "" {
		return nil, false
	}
	res, ok := w.restrictions[r.Restriction]
	if !ok {
		// Validated at build time; an unknown name here is a defect and
		// must not be disguised as narrative.
		return nil, false
	}
	outcome, pass := res.Check(a, r, w)
	if !pass && res.Veto {
		return []types.Outcome{outcome}, true
	}
	if outcome.Code != "" {
		return []types.Outcome{outcome}, false
	}
	return nil, false
}

// DescribeRoom produces the room's descriptive outcomes: the dark
// description when the room is dark, otherwise the (long or short) room
// description followed by one outcome per contained item and monster.
func (w *World) DescribeRoom(r *Room, long bool) []types.Outcome {
	if r.dark {
		return []types.Outcome{{Code: types.DarkLong}}
	}
	long = long || !r.Visited
	text := r.Description
	if !long && r.ShortDescription != "" {
		text = r.ShortDescription
	}
	out := []types.Outcome{scripted(text)}
	for _, id := range r.ItemIDs() {
		if item := w.Items[id]; item != nil && item.Description != "" {
			out = append(out, scripted(item.Description))
		}
	}
	for _, id := range r.MonsterIDs() {
		if m := w.Monsters[id]; m != nil && m.Description != "" {
			out = append(out, scripted(m.Description))
		}
	}
	return out
}

// Update advances the clock by one turn and runs the per-turn managers.
// It is called once after every player action that consumes a turn.
func (w *World) Update(a Adventurer) []types.Outcome {
	w.Time++
	out := w.ManageFight(a)
	out = append(out, w.ManageDaylight()...)
	return out
}

// ManageDaylight flips day and night every nighttime turns and announces
// the transition. Darkness of individual rooms is recomputed on the next
// room visit.
func (w *World) ManageDaylight() []types.Outcome {
	night := (w.Time/w.nighttime)%2 == 1
	if night == w.Night {
		return nil
	}
	w.Night = night
	if night {
		return []types.Outcome{{Code: types.Sunset}}
	}
	return []types.Outcome{{Code: types.Sunrise}}
}

// ManageFight resolves the world's side of a fight with the first active,
// harmful monster in the player's room: unsolicited strikes, stalemate
// reports, death by ignoring, dark death and kill confirmation.
func (w *World) ManageFight(a Adventurer) []types.Outcome {
	room := w.Rooms[a.RoomID()]
	if room == nil {
		return nil
	}
	for _, id := range room.MonsterIDs() {
		m := w.Monsters[id]
		if m == nil || !m.Active || m.Harmless {
			continue
		}
		a.SetFighting(true)

		// Fighting in the dark is lethal.
		if room.Dark() {
			a.SetAlive(false)
			return []types.Outcome{{Code: types.DarkDeath, Args: []string{m.Name}}}
		}

		var out []types.Outcome
		switch {
		case m.Alive && a.Alive():
			if m.Fighting {
				out = append(out, types.Outcome{Code: types.FightSurvived, Args: []string{m.Name}})
			} else if m.History > 1 {
				a.SetAlive(false)
				out = append(out, types.Outcome{Code: types.FightIgnored})
			} else if m.History >= 0 {
				out = append(out, types.Outcome{Code: types.FightReminder, Args: []string{m.Name}})
			}
		case !m.Alive:
			m.Active = false
			a.SetFighting(false)
			a.SetTrapped(false)
			room.RemoveMonster(id)
			w.addCorpse(m, room)
			out = append(out, types.Outcome{Code: types.FightWon, Args: []string{m.Name}})
		}

		if !a.Alive() {
			out = append(out, types.Outcome{Code: types.FightLost, Args: []string{m.Name}})
		}

		m.History++
		m.Fighting = false
		return out
	}
	return nil
}

// addCorpse turns a dead monster into a takable item in the room, so it
// can still be looked at and carried around.
func (w *World) addCorpse(m *Monster, room *Room) {
	id := m.Name
	if _, taken := w.Items[id]; taken {
		id = m.ID + "-corpse"
	}
	w.Items[id] = &Item{
		ID:          id,
		Name:        m.Name,
		Description: m.Description,
		Takable:     true,
	}
	room.AddItem(id)
}

// SpawnMonster randomly spawns a monster in the given room. A monster
// spawns only if the room holds no other monster, the template's draw
// succeeds, one of its room fragments matches the room ID, its daytime
// gate matches and no live instance of the template is active. At most
// one monster spawns per call.
func (w *World) SpawnMonster(room *Room) {
	// Single-encounter monsters vanish once the player leaves. A template
	// removed here sits this check out, or it would reappear immediately.
	removed := map[string]bool{}
	for _, id := range room.MonsterIDs() {
		m := w.Monsters[id]
		if m != nil && m.Active && m.SingleEncounter {
			room.RemoveMonster(id)
			m.Active = false
			removed[id] = true
		}
	}
	if !room.NoMonsters() {
		return
	}

	ids := make([]string, 0, len(w.Monsters))
	for id := range w.Monsters {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		m := w.Monsters[id]
		// One draw per template per check, whether or not the gates pass.
		draw := w.rng.Float()
		if draw < m.SpawnProb && m.spawnsIn(room.ID) && w.daytimeMatches(m.SpawnsAt) && !m.Active && !removed[id] {
			room.AddMonster(id)
			m.Active = true
			m.History = 0
			return
		}
	}
}

func (m *Monster) spawnsIn(roomID string) bool {
	for _, fragment := range m.SpawnsIn {
		if strings.Contains(roomID, fragment) {
			return true
		}
	}
	return false
}

func (w *World) daytimeMatches(spawnsAt string) bool {
	switch spawnsAt {
	case types.SpawnsAlways, "":
		return true
	case types.SpawnsAtNight:
		return w.Night
	case types.SpawnsAtDay:
		return !w.Night
	}
	return false
}

func scripted(text string) types.Outcome {
	return types.Outcome{Code: types.ScriptedText, Args: []string{text}}
}

// builtinRestrictions are always registered. "trap" keeps the player from
// leaving the room until something else frees them; "reveal" merges the
// room's hidden doors into the visible ones on first entry.
func builtinRestrictions() map[string]Restriction {
	return map[string]Restriction{
		"trap": {
			Check: func(a Adventurer, r *Room, w *World) (types.Outcome, bool) {
				a.SetTrapped(true)
				if r.RestrictionText != "" {
					return scripted(r.RestrictionText), true
				}
				return types.Outcome{}, true
			},
		},
		"reveal": {
			Check: func(a Adventurer, r *Room, w *World) (types.Outcome, bool) {
				if r.Revealed {
					return types.Outcome{}, true
				}
				r.RevealHiddenDoors()
				if r.RestrictionText != "" {
					return scripted(r.RestrictionText), true
				}
				return types.Outcome{}, true
			},
		},
	}
}
