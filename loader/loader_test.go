package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeGame lays out a game directory from filename → Lua source.
func writeGame(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const gameLua = `
Game{
    title = "Test Island",
    author = "nobody",
    version = "0.1.0",
    start = "field",
    intro = "You wake up.",
    nighttime = 100,
}
`

func TestLoad(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"game.lua": gameLua,
		"rooms.lua": `
Room "field" {
    description = "A wide field.",
    short_description = "The field.",
    value = 2,
    sound = "Wind.",
    doors = {east = "hut"},
    dir_descriptions = {east = "You wade through high grass."},
    errors = {north = "A hedge blocks the way."},
}

Room "hut" {
    description = "A small hut.",
    doors = {west = "field", east = "storeroom"},
    locked = {east = Locked{closed = true, key = 7}},
    hint = "The key fits.",
    hint_value = 2,
}

Room "storeroom" {
    description = "A cramped storeroom.",
    requires_light = true,
    doors = {west = "hut"},
}
`,
		"items.lua": `
Item "lamp" {
    location = "field",
}

Item "brass_key" {
    name = "key",
    key = 7,
    location = "field",
}

Item "anvil" {
    description = "A heavy anvil.",
    takable = false,
    location = "hut",
}

Weapon "machete" {
    strength = 0.5,
    location = "hut",
}
`,
		"monsters.lua": `
Monster "troll" {
    description = "A troll blocks the path.",
    strength = 0.4,
    location = "hut",
}

Monster "bat" {
    spawn_prob = 0.3,
    spawns_in = {"store"},
    spawns_at = "night",
    strength = 0.1,
    single_encounter = true,
}
`,
	})

	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if defs.Game.Title != "Test Island" || defs.Game.Start != "field" {
		t.Errorf("game metadata wrong: %+v", defs.Game)
	}
	if defs.Game.Nighttime != 100 {
		t.Errorf("nighttime %d, want 100", defs.Game.Nighttime)
	}

	field, ok := defs.Rooms["field"]
	if !ok {
		t.Fatal("field room missing")
	}
	if field.Doors["east"] != "hut" {
		t.Errorf("doors %v", field.Doors)
	}
	if field.DirDescriptions["east"] != "You wade through high grass." {
		t.Errorf("dir descriptions %v", field.DirDescriptions)
	}
	if field.Errors["north"] != "A hedge blocks the way." {
		t.Errorf("errors %v", field.Errors)
	}
	if field.Value != 2 || field.Sound != "Wind." || field.ShortDescription != "The field." {
		t.Errorf("field fields wrong: %+v", field)
	}

	hut := defs.Rooms["hut"]
	lock, ok := hut.Locked["east"]
	if !ok || !lock.Closed || lock.Key != 7 {
		t.Errorf("lock %+v, want closed with key 7", lock)
	}
	if hut.Hint != "The key fits." || hut.HintValue != 2 {
		t.Errorf("hint fields wrong: %+v", hut)
	}
	if !defs.Rooms["storeroom"].RequiresLight {
		t.Error("requires_light lost")
	}

	// Defaults: name falls back to the ID, items are takable.
	lamp := defs.Items["lamp"]
	if lamp.Name != "lamp" || !lamp.Takable {
		t.Errorf("lamp defaults wrong: %+v", lamp)
	}
	if defs.Items["brass_key"].Name != "key" || defs.Items["brass_key"].Key != 7 {
		t.Errorf("brass_key wrong: %+v", defs.Items["brass_key"])
	}
	if defs.Items["anvil"].Takable {
		t.Error("anvil takable despite takable = false")
	}
	if defs.Weapons["machete"].Strength != 0.5 {
		t.Errorf("machete strength %v", defs.Weapons["machete"].Strength)
	}

	troll := defs.Monsters["troll"]
	if troll.Name != "troll" || troll.SpawnsAt != "always" {
		t.Errorf("troll defaults wrong: %+v", troll)
	}
	bat := defs.Monsters["bat"]
	if bat.SpawnsAt != "night" || !bat.SingleEncounter || len(bat.SpawnsIn) != 1 || bat.SpawnsIn[0] != "store" {
		t.Errorf("bat wrong: %+v", bat)
	}
}

func TestLoadFileOrder(t *testing.T) {
	// The Game{} table may be referenced by later files; game.lua always
	// runs first regardless of its position in the directory listing.
	dir := writeGame(t, map[string]string{
		"aaa.lua": `
Room "field" {
    description = TITLE .. " field",
}
`,
		"game.lua": `
TITLE = "Test"
Game{title = "Test", start = "field"}
`,
	})
	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if defs.Rooms["field"].Description != "Test field" {
		t.Errorf("description %q, want the global set by game.lua", defs.Rooms["field"].Description)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name:  "empty directory",
			files: map[string]string{"readme.txt": "not lua"},
			want:  "no .lua files",
		},
		{
			name: "missing game definition",
			files: map[string]string{
				"rooms.lua": `Room "field" {description = "A field."}`,
			},
			want: "no Game{} definition",
		},
		{
			name: "lua syntax error",
			files: map[string]string{
				"game.lua": `Game{title = `,
			},
			want: "executing game.lua",
		},
		{
			name: "duplicate room",
			files: map[string]string{
				"game.lua": `Game{title = "T", start = "field"}`,
				"rooms.lua": `
Room "field" {description = "A field."}
Room "field" {description = "Another field."}
`,
			},
			want: `duplicate room "field"`,
		},
		{
			name: "door to unknown room",
			files: map[string]string{
				"game.lua":  `Game{title = "T", start = "field"}`,
				"rooms.lua": `Room "field" {description = "A field.", doors = {east = "atlantis"}}`,
			},
			want: "atlantis",
		},
		{
			name: "missing start room",
			files: map[string]string{
				"game.lua":  `Game{title = "T", start = "atlantis"}`,
				"rooms.lua": `Room "field" {description = "A field."}`,
			},
			want: "atlantis",
		},
		{
			name: "spawn probability out of range",
			files: map[string]string{
				"game.lua":     `Game{title = "T", start = "field"}`,
				"rooms.lua":    `Room "field" {description = "A field."}`,
				"monsters.lua": `Monster "troll" {spawn_prob = 1.5, spawns_in = {"field"}}`,
			},
			want: "spawn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeGame(t, tt.files))
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestSandbox(t *testing.T) {
	// Scripts have no file or OS access inside the VM.
	for _, snippet := range []string{
		`dofile("other.lua")`,
		`loadstring("return 1")`,
		`os.exit(1)`,
		`io.open("x")`,
	} {
		dir := writeGame(t, map[string]string{
			"game.lua":  `Game{title = "T", start = "field"}` + "\n" + snippet,
			"rooms.lua": `Room "field" {description = "A field."}`,
		})
		if _, err := Load(dir); err == nil {
			t.Errorf("script %q ran in the sandbox", snippet)
		}
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"rooms.lua", "game.lua", "items.lua", "monsters.lua"})
	want := []string{"game.lua", "items.lua", "monsters.lua", "rooms.lua"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
