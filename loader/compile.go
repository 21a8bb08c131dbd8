// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/davekch/textgame/types"
)

// rawDef holds a definition table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// tableToStringSlice converts a Lua array to a []string.
func tableToStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// tableToLockMap converts a Lua table of direction → Locked{} tables.
func tableToLockMap(tbl *lua.LTable) map[string]types.LockDef {
	if tbl == nil {
		return nil
	}
	m := map[string]types.LockDef{}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		lockTbl, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		m[string(ks)] = types.LockDef{
			Closed: getBool(lockTbl, "closed", true),
			Key:    getInt(lockTbl, "key"),
		}
	})
	return m
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*types.Defs, error) {
	defs := &types.Defs{
		Rooms:    map[string]types.RoomDef{},
		Items:    map[string]types.ItemDef{},
		Weapons:  map[string]types.WeaponDef{},
		Monsters: map[string]types.MonsterDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.rooms {
		if _, ok := defs.Rooms[raw.id]; ok {
			return nil, fmt.Errorf("duplicate room %q", raw.id)
		}
		defs.Rooms[raw.id] = compileRoom(raw)
	}
	for _, raw := range coll.items {
		if _, ok := defs.Items[raw.id]; ok {
			return nil, fmt.Errorf("duplicate item %q", raw.id)
		}
		defs.Items[raw.id] = compileItem(raw)
	}
	for _, raw := range coll.weapons {
		if _, ok := defs.Weapons[raw.id]; ok {
			return nil, fmt.Errorf("duplicate weapon %q", raw.id)
		}
		defs.Weapons[raw.id] = types.WeaponDef{
			ItemDef:  compileItem(raw),
			Strength: getNumber(raw.table, "strength"),
		}
	}
	for _, raw := range coll.monsters {
		if _, ok := defs.Monsters[raw.id]; ok {
			return nil, fmt.Errorf("duplicate monster %q", raw.id)
		}
		defs.Monsters[raw.id] = compileMonster(raw)
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		Intro:   getString(tbl, "intro"),

		PlayerStrength:       getInt(tbl, "player_strength"),
		Nighttime:            getInt(tbl, "nighttime"),
		FightHistoryBonus:    getNumber(tbl, "fight_history_bonus"),
		FightLastChanceBonus: getNumber(tbl, "fight_last_chance_bonus"),
		LightSources:         tableToStringSlice(getTable(tbl, "light_sources")),
	}
}

func compileRoom(raw rawDef) types.RoomDef {
	tbl := raw.table
	return types.RoomDef{
		ID:               raw.id,
		Description:      getString(tbl, "description"),
		ShortDescription: getString(tbl, "short_description"),
		Value:            getInt(tbl, "value"),
		Sound:            getString(tbl, "sound"),
		Hint:             getString(tbl, "hint"),
		HintValue:        getInt(tbl, "hint_value"),
		RequiresLight:    getBool(tbl, "requires_light", false),
		Doors:            tableToStringMap(getTable(tbl, "doors")),
		HiddenDoors:      tableToStringMap(getTable(tbl, "hidden_doors")),
		Locked:           tableToLockMap(getTable(tbl, "locked")),
		DirDescriptions:  tableToStringMap(getTable(tbl, "dir_descriptions")),
		Errors:           tableToStringMap(getTable(tbl, "errors")),
		Restriction:      getString(tbl, "restriction"),
		RestrictionText:  getString(tbl, "restriction_text"),
	}
}

func compileItem(raw rawDef) types.ItemDef {
	tbl := raw.table
	name := getString(tbl, "name")
	if name == "" {
		name = raw.id
	}
	return types.ItemDef{
		ID:          raw.id,
		Name:        name,
		Description: getString(tbl, "description"),
		// Items are takable unless explicitly fixed.
		Takable:      getBool(tbl, "takable", true),
		Value:        getInt(tbl, "value"),
		Key:          getInt(tbl, "key"),
		InitLocation: getString(tbl, "location"),
	}
}

func compileMonster(raw rawDef) types.MonsterDef {
	tbl := raw.table
	spawnsAt := getString(tbl, "spawns_at")
	if spawnsAt == "" {
		spawnsAt = types.SpawnsAlways
	}
	name := getString(tbl, "name")
	if name == "" {
		name = raw.id
	}
	return types.MonsterDef{
		ID:              raw.id,
		Name:            name,
		Description:     getString(tbl, "description"),
		DeadDescription: getString(tbl, "dead_description"),
		IgnoreText:      getString(tbl, "ignore_text"),
		Strength:        getNumber(tbl, "strength"),
		SpawnProb:       getNumber(tbl, "spawn_prob"),
		SpawnsIn:        tableToStringSlice(getTable(tbl, "spawns_in")),
		SpawnsAt:        spawnsAt,
		InitLocation:    getString(tbl, "location"),
		Harmless:        getBool(tbl, "harmless", false),
		SingleEncounter: getBool(tbl, "single_encounter", false),
	}
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
