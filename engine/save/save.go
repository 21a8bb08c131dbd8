// Package save implements JSON serialization and deserialization of a
// running session, including the random source's replay position.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/davekch/textgame/engine"
	"github.com/davekch/textgame/engine/world"
	"github.com/davekch/textgame/types"
)

// PlayerState is the serialized player.
type PlayerState struct {
	Room      string   `json:"room"`
	OldRoom   string   `json:"old_room"`
	Inventory []string `json:"inventory"`
	Alive     bool     `json:"alive"`
	Fighting  bool     `json:"fighting"`
	Trapped   bool     `json:"trapped"`
	Score     int      `json:"score"`
	HintsUsed int      `json:"hints_used"`
}

// RoomState is the serialized mutable part of a room.
type RoomState struct {
	Visited  bool                     `json:"visited"`
	Revealed bool                     `json:"revealed"`
	Items    []string                 `json:"items"`
	Monsters []string                 `json:"monsters"`
	Locked   map[string]types.LockDef `json:"locked,omitempty"`
}

// MonsterState is the serialized mutable part of a monster.
type MonsterState struct {
	Alive     bool    `json:"alive"`
	Active    bool    `json:"active"`
	Fighting  bool    `json:"fighting"`
	History   int     `json:"history"`
	SpawnProb float64 `json:"spawn_prob"`
}

// ItemState serializes items created at runtime (monster corpses).
type ItemState struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Takable     bool   `json:"takable"`
}

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version     string                  `json:"version"`
	Game        string                  `json:"game"`
	Turn        int                     `json:"turn"`
	Night       bool                    `json:"night"`
	RNGSeed     int64                   `json:"rng_seed"`
	RNGPosition int64                   `json:"rng_position"`
	Player      PlayerState             `json:"player"`
	Rooms       map[string]RoomState    `json:"rooms"`
	Monsters    map[string]MonsterState `json:"monsters"`
	ExtraItems  []ItemState             `json:"extra_items,omitempty"`
}

// Snapshot serializes the session to JSON bytes.
func Snapshot(e *engine.Engine) ([]byte, error) {
	w, p := e.World, e.Player

	data := SaveData{
		Version:     e.Defs.Game.Version,
		Game:        e.Defs.Game.Title,
		Turn:        w.Time,
		Night:       w.Night,
		RNGSeed:     w.RNG().Seed(),
		RNGPosition: w.RNG().Position(),
		Player: PlayerState{
			Room:      p.RoomID(),
			OldRoom:   p.OldRoomID(),
			Inventory: p.InventoryIDs(),
			Alive:     p.Alive(),
			Fighting:  p.Fighting(),
			Trapped:   p.Trapped(),
			Score:     p.Score(),
			HintsUsed: p.HintsUsed(),
		},
		Rooms:    map[string]RoomState{},
		Monsters: map[string]MonsterState{},
	}

	for id, room := range w.Rooms {
		data.Rooms[id] = RoomState{
			Visited:  room.Visited,
			Revealed: room.Revealed,
			Items:    room.ItemIDs(),
			Monsters: room.MonsterIDs(),
			Locked:   room.Locks(),
		}
	}
	for id, m := range w.Monsters {
		data.Monsters[id] = MonsterState{
			Alive:     m.Alive,
			Active:    m.Active,
			Fighting:  m.Fighting,
			History:   m.History,
			SpawnProb: m.SpawnProb,
		}
	}
	// Items not present in the definitions were created at runtime.
	for id, item := range w.Items {
		if _, ok := e.Defs.Items[id]; ok {
			continue
		}
		if _, ok := e.Defs.Weapons[id]; ok {
			continue
		}
		data.ExtraItems = append(data.ExtraItems, ItemState{
			ID:          id,
			Name:        item.Name,
			Description: item.Description,
			Takable:     item.Takable,
		})
	}

	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("decoding save: %w", err)
	}
	if sd.Rooms == nil {
		sd.Rooms = map[string]RoomState{}
	}
	if sd.Monsters == nil {
		sd.Monsters = map[string]MonsterState{}
	}
	return &sd, nil
}

// Apply restores save data onto a session built from the same
// definitions the save was taken from. The session may be live: any
// terminal or suspended state is cleared, so loading an alive save after
// dying resumes play.
func Apply(e *engine.Engine, sd *SaveData) error {
	w, p := e.World, e.Player

	e.ResetSession()
	w.Time = sd.Turn
	w.Night = sd.Night
	w.RestoreRNG(sd.RNGSeed, sd.RNGPosition)

	for _, it := range sd.ExtraItems {
		w.Items[it.ID] = &world.Item{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Takable:     it.Takable,
		}
	}

	for id, rs := range sd.Rooms {
		room := w.Room(id)
		if room == nil {
			return fmt.Errorf("save references unknown room %q", id)
		}
		for _, itemID := range rs.Items {
			if w.Item(itemID) == nil {
				return fmt.Errorf("save references unknown item %q", itemID)
			}
		}
		for _, monsterID := range rs.Monsters {
			if w.Monsters[monsterID] == nil {
				return fmt.Errorf("save references unknown monster %q", monsterID)
			}
		}
		room.Visited = rs.Visited
		if rs.Revealed {
			room.RevealHiddenDoors()
		}
		if rs.Locked != nil {
			room.RestoreLocks(rs.Locked)
		}
		room.ResetItems(rs.Items)
		room.ResetMonsters(rs.Monsters)
	}

	for id, ms := range sd.Monsters {
		m := w.Monsters[id]
		if m == nil {
			return fmt.Errorf("save references unknown monster %q", id)
		}
		m.Active = ms.Active
		m.Fighting = ms.Fighting
		m.History = ms.History
		if m.Alive && !ms.Alive {
			m.Kill()
		}
		m.SpawnProb = ms.SpawnProb
	}

	p.SetRoomID(sd.Player.Room)
	p.SetOldRoomID(sd.Player.OldRoom)
	p.ClearInventory()
	for _, id := range sd.Player.Inventory {
		if w.Item(id) == nil {
			return fmt.Errorf("save references unknown item %q", id)
		}
		p.AddToInventory(id)
	}
	p.SetAlive(sd.Player.Alive)
	p.SetFighting(sd.Player.Fighting)
	p.SetTrapped(sd.Player.Trapped)
	p.SetScore(sd.Player.Score)
	p.SetHintsUsed(sd.Player.HintsUsed)

	return nil
}
