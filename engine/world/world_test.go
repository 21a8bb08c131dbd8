package world

import (
	"testing"

	"github.com/davekch/textgame/types"
)

// fakeAdventurer implements Adventurer for world-side tests.
type fakeAdventurer struct {
	roomID    string
	alive     bool
	fighting  bool
	trapped   bool
	inventory map[string]bool
	world     *World
}

func newFakeAdventurer(w *World, roomID string) *fakeAdventurer {
	return &fakeAdventurer{roomID: roomID, alive: true, inventory: map[string]bool{}, world: w}
}

func (a *fakeAdventurer) RoomID() string             { return a.roomID }
func (a *fakeAdventurer) SetRoomID(id string)        { a.roomID = id }
func (a *fakeAdventurer) Alive() bool                { return a.alive }
func (a *fakeAdventurer) SetAlive(alive bool)        { a.alive = alive }
func (a *fakeAdventurer) SetFighting(fighting bool)  { a.fighting = fighting }
func (a *fakeAdventurer) SetTrapped(trapped bool)    { a.trapped = trapped }
func (a *fakeAdventurer) Carries(itemID string) bool { return a.inventory[itemID] }
func (a *fakeAdventurer) RemoveFromInventory(itemID string) bool {
	if !a.inventory[itemID] {
		return false
	}
	delete(a.inventory, itemID)
	return true
}

func (a *fakeAdventurer) HasLight() bool {
	for id := range a.inventory {
		if a.world.IsLightSource(id) {
			return true
		}
	}
	return false
}

func testDefs() *types.Defs {
	return &types.Defs{
		Game: types.GameDef{
			Title:     "Test Island",
			Start:     "field",
			Nighttime: 10,
		},
		Rooms: map[string]types.RoomDef{
			"field": {
				Description:      "A wide field.",
				ShortDescription: "The field.",
				Doors:            map[string]string{"east": "woods"},
			},
			"woods": {
				Description: "Dark woods.",
				Doors:       map[string]string{"west": "field", "down": "cave"},
			},
			"cave": {
				Description:   "A cold cave.",
				RequiresLight: true,
				Doors:         map[string]string{"up": "woods"},
			},
		},
		Items: map[string]types.ItemDef{
			"lamp": {Name: "lamp", Takable: true, InitLocation: "field"},
		},
		Monsters: map[string]types.MonsterDef{},
	}
}

func mustWorld(t *testing.T, defs *types.Defs, seed int64) *World {
	t.Helper()
	w, err := New(defs, seed, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(defs *types.Defs)
	}{
		{
			name:   "unknown start room",
			mutate: func(d *types.Defs) { d.Game.Start = "nowhere" },
		},
		{
			name: "door to unknown room",
			mutate: func(d *types.Defs) {
				r := d.Rooms["field"]
				r.Doors = map[string]string{"east": "void"}
				d.Rooms["field"] = r
			},
		},
		{
			name: "invalid direction",
			mutate: func(d *types.Defs) {
				r := d.Rooms["field"]
				r.Doors = map[string]string{"sideways": "woods"}
				d.Rooms["field"] = r
			},
		},
		{
			name: "unknown restriction",
			mutate: func(d *types.Defs) {
				r := d.Rooms["field"]
				r.Restriction = "quicksand"
				d.Rooms["field"] = r
			},
		},
		{
			name: "item in unknown room",
			mutate: func(d *types.Defs) {
				d.Items["rock"] = types.ItemDef{Name: "rock", InitLocation: "void"}
			},
		},
		{
			name: "monster spawn probability out of range",
			mutate: func(d *types.Defs) {
				d.Monsters["imp"] = types.MonsterDef{Name: "imp", SpawnProb: 1.5}
			},
		},
		{
			name: "monster invalid spawns_at",
			mutate: func(d *types.Defs) {
				d.Monsters["imp"] = types.MonsterDef{Name: "imp", SpawnsAt: "noon"}
			},
		},
		{
			name: "item and monster share an ID",
			mutate: func(d *types.Defs) {
				d.Monsters["lamp"] = types.MonsterDef{Name: "lamp"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := testDefs()
			tt.mutate(defs)
			if _, err := New(defs, 1, nil); err == nil {
				t.Error("New accepted invalid definitions")
			}
		})
	}
}

func TestManageDaylight(t *testing.T) {
	w := mustWorld(t, testDefs(), 1)

	if w.Night {
		t.Fatal("world starts at night")
	}

	// Nothing happens before the threshold.
	w.Time = 9
	if out := w.ManageDaylight(); len(out) != 0 {
		t.Errorf("turn 9: unexpected outcomes %v", out)
	}

	w.Time = 10
	out := w.ManageDaylight()
	if len(out) != 1 || out[0].Code != types.Sunset {
		t.Errorf("turn 10: got %v, want sunset", out)
	}
	if !w.Night {
		t.Error("turn 10: not night after sunset")
	}

	// Stays night for the next interval.
	w.Time = 15
	if out := w.ManageDaylight(); len(out) != 0 {
		t.Errorf("turn 15: unexpected outcomes %v", out)
	}

	w.Time = 20
	out = w.ManageDaylight()
	if len(out) != 1 || out[0].Code != types.Sunrise {
		t.Errorf("turn 20: got %v, want sunrise", out)
	}
	if w.Night {
		t.Error("turn 20: still night after sunrise")
	}
}

func TestEnterRoomDarkness(t *testing.T) {
	w := mustWorld(t, testDefs(), 1)
	a := newFakeAdventurer(w, "cave")
	cave := w.Room("cave")

	w.EnterRoom(a, cave)
	if !cave.Dark() {
		t.Error("cave with no light is not dark")
	}

	a.inventory["lamp"] = true
	w.EnterRoom(a, cave)
	if cave.Dark() {
		t.Error("cave is dark although the player carries a lamp")
	}

	// A light source lying in the room also works.
	delete(a.inventory, "lamp")
	cave.AddItem("lamp")
	w.EnterRoom(a, cave)
	if cave.Dark() {
		t.Error("cave is dark although a lamp lies in it")
	}
	cave.RemoveItem("lamp")

	// Ordinary rooms go dark at night.
	field := w.Room("field")
	field.RemoveItem("lamp")
	w.Night = true
	w.EnterRoom(a, field)
	if !field.Dark() {
		t.Error("field is lit at night without a lamp")
	}
	w.Night = false
	w.EnterRoom(a, field)
	if field.Dark() {
		t.Error("field is dark at day")
	}
}

func TestDescribeRoom(t *testing.T) {
	w := mustWorld(t, testDefs(), 1)
	field := w.Room("field")
	field.RemoveItem("lamp")

	// First visit forces the long description even when short is asked for.
	out := w.DescribeRoom(field, false)
	if len(out) != 1 || out[0].Code != types.ScriptedText || out[0].Args[0] != "A wide field." {
		t.Errorf("unvisited room: got %v", out)
	}

	field.Visit()
	out = w.DescribeRoom(field, false)
	if len(out) != 1 || out[0].Args[0] != "The field." {
		t.Errorf("visited room short: got %v", out)
	}

	out = w.DescribeRoom(field, true)
	if len(out) != 1 || out[0].Args[0] != "A wide field." {
		t.Errorf("visited room long: got %v", out)
	}

	// Dark rooms reveal nothing.
	cave := w.Room("cave")
	a := newFakeAdventurer(w, "cave")
	w.EnterRoom(a, cave)
	out = w.DescribeRoom(cave, true)
	if len(out) != 1 || out[0].Code != types.DarkLong {
		t.Errorf("dark room: got %v", out)
	}
}

func TestSpawnMonster(t *testing.T) {
	defs := testDefs()
	defs.Monsters["wolf"] = types.MonsterDef{
		Name:      "wolf",
		Strength:  0.3,
		SpawnProb: 1.0,
		SpawnsIn:  []string{"woods"},
		SpawnsAt:  types.SpawnsAlways,
	}
	w := mustWorld(t, defs, 1)

	woods := w.Room("woods")
	w.SpawnMonster(woods)
	if !woods.HasMonster("wolf") {
		t.Fatal("wolf did not spawn in the woods with probability 1")
	}
	wolf := w.Monsters["wolf"]
	if !wolf.Active || wolf.History != 0 {
		t.Errorf("spawned wolf: Active=%v History=%d, want true/0", wolf.Active, wolf.History)
	}

	// The template has a live instance; it must not spawn again elsewhere.
	field := w.Room("field")
	field.RemoveItem("lamp")
	w.SpawnMonster(field)
	if len(field.MonsterIDs()) != 0 {
		t.Error("second wolf spawned while the first is active")
	}

	// No spawn into an occupied room.
	woods.RemoveMonster("wolf")
	wolf.Active = false
	woods.AddMonster("wolf")
	wolf.Active = true
	w.SpawnMonster(woods)
	if got := len(woods.MonsterIDs()); got != 1 {
		t.Errorf("occupied room holds %d monsters after spawn, want 1", got)
	}
}

func TestSpawnMonsterRoomFragment(t *testing.T) {
	defs := testDefs()
	defs.Monsters["wolf"] = types.MonsterDef{
		Name:      "wolf",
		SpawnProb: 1.0,
		SpawnsIn:  []string{"woods"},
		SpawnsAt:  types.SpawnsAlways,
	}
	w := mustWorld(t, defs, 1)

	field := w.Room("field")
	field.RemoveItem("lamp")
	w.SpawnMonster(field)
	if len(field.MonsterIDs()) != 0 {
		t.Error("wolf spawned in a room that matches no fragment")
	}
}

func TestSpawnMonsterDaytimeGate(t *testing.T) {
	defs := testDefs()
	defs.Monsters["ghost"] = types.MonsterDef{
		Name:      "ghost",
		SpawnProb: 1.0,
		SpawnsIn:  []string{"woods"},
		SpawnsAt:  types.SpawnsAtNight,
	}
	w := mustWorld(t, defs, 1)
	woods := w.Room("woods")

	w.SpawnMonster(woods)
	if len(woods.MonsterIDs()) != 0 {
		t.Error("night monster spawned at day")
	}

	w.Night = true
	w.SpawnMonster(woods)
	if !woods.HasMonster("ghost") {
		t.Error("night monster did not spawn at night")
	}
}

func TestSpawnMonsterRemovesSingleEncounters(t *testing.T) {
	defs := testDefs()
	defs.Monsters["bird"] = types.MonsterDef{
		Name:            "bird",
		SpawnProb:       1.0,
		SpawnsIn:        []string{"woods"},
		SpawnsAt:        types.SpawnsAlways,
		SingleEncounter: true,
		Harmless:        true,
	}
	w := mustWorld(t, defs, 1)
	woods := w.Room("woods")

	w.SpawnMonster(woods)
	if !woods.HasMonster("bird") {
		t.Fatal("bird did not spawn")
	}

	w.SpawnMonster(woods)
	if woods.HasMonster("bird") {
		t.Error("single-encounter bird still present on the next check")
	}
	if w.Monsters["bird"].Active {
		t.Error("single-encounter bird still active after vanishing")
	}
}

func TestManageFight(t *testing.T) {
	newWorldWithWolf := func(t *testing.T) (*World, *Monster, *fakeAdventurer) {
		defs := testDefs()
		defs.Monsters["wolf"] = types.MonsterDef{
			Name:         "wolf",
			Strength:     0.5,
			InitLocation: "woods",
		}
		w := mustWorld(t, defs, 1)
		a := newFakeAdventurer(w, "woods")
		w.EnterRoom(a, w.Room("woods"))
		return w, w.Monsters["wolf"], a
	}

	t.Run("placed monster engages silently first", func(t *testing.T) {
		w, wolf, a := newWorldWithWolf(t)
		out := w.ManageFight(a)
		if len(out) != 0 {
			t.Errorf("first contact produced %v", out)
		}
		if !a.fighting {
			t.Error("player not fighting after first contact")
		}
		if wolf.History != 0 {
			t.Errorf("History = %d, want 0", wolf.History)
		}
	})

	t.Run("defend reminder", func(t *testing.T) {
		w, wolf, a := newWorldWithWolf(t)
		wolf.History = 0
		out := w.ManageFight(a)
		if len(out) != 1 || out[0].Code != types.FightReminder {
			t.Errorf("got %v, want defend reminder", out)
		}
		if wolf.History != 1 {
			t.Errorf("History = %d, want 1", wolf.History)
		}
	})

	t.Run("survived attack", func(t *testing.T) {
		w, wolf, a := newWorldWithWolf(t)
		wolf.History = 0
		wolf.Fighting = true
		out := w.ManageFight(a)
		if len(out) != 1 || out[0].Code != types.FightSurvived {
			t.Errorf("got %v, want survived attack", out)
		}
		if wolf.Fighting {
			t.Error("Fighting flag not cleared")
		}
	})

	t.Run("ignoring the fight is lethal", func(t *testing.T) {
		w, wolf, a := newWorldWithWolf(t)
		wolf.History = 2
		out := w.ManageFight(a)
		if a.alive {
			t.Error("player survived ignoring the monster")
		}
		if len(out) != 2 || out[0].Code != types.FightIgnored || out[1].Code != types.FightLost {
			t.Errorf("got %v, want ignore death and fight lost", out)
		}
	})

	t.Run("dark fight is instant death", func(t *testing.T) {
		w, _, a := newWorldWithWolf(t)
		w.Night = true
		w.EnterRoom(a, w.Room("woods"))
		out := w.ManageFight(a)
		if a.alive {
			t.Error("player survived a fight in the dark")
		}
		if len(out) != 1 || out[0].Code != types.DarkDeath {
			t.Errorf("got %v, want dark death", out)
		}
	})

	t.Run("kill confirmation leaves a corpse", func(t *testing.T) {
		w, wolf, a := newWorldWithWolf(t)
		wolf.History = 1
		wolf.Kill()
		out := w.ManageFight(a)
		if len(out) != 1 || out[0].Code != types.FightWon {
			t.Fatalf("got %v, want fight won", out)
		}
		if a.fighting {
			t.Error("player still fighting after the kill")
		}
		woods := w.Room("woods")
		if len(woods.MonsterIDs()) != 0 {
			t.Error("dead wolf still in the room")
		}
		if !woods.HasItem("wolf") {
			t.Error("no corpse item in the room")
		}
		corpse := w.Item("wolf")
		if corpse == nil || !corpse.Takable {
			t.Error("corpse is not a takable item")
		}
	})

	t.Run("harmless monsters never engage", func(t *testing.T) {
		defs := testDefs()
		defs.Monsters["sheep"] = types.MonsterDef{
			Name:         "sheep",
			Harmless:     true,
			InitLocation: "woods",
		}
		w := mustWorld(t, defs, 1)
		a := newFakeAdventurer(w, "woods")
		w.EnterRoom(a, w.Room("woods"))
		if out := w.ManageFight(a); len(out) != 0 {
			t.Errorf("harmless monster produced %v", out)
		}
		if a.fighting {
			t.Error("player fighting a harmless monster")
		}
	})
}

func TestUpdateAdvancesClock(t *testing.T) {
	w := mustWorld(t, testDefs(), 1)
	a := newFakeAdventurer(w, "field")

	for i := 1; i <= 3; i++ {
		w.Update(a)
		if w.Time != i {
			t.Fatalf("after %d updates Time = %d", i, w.Time)
		}
	}
}
