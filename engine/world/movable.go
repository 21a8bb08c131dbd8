package world

import "github.com/davekch/textgame/types"

// Item is a runtime instance of an item or weapon. Weapons carry a
// non-zero WeaponStrength.
type Item struct {
	ID             string
	Name           string
	Description    string
	Takable        bool
	Value          int
	Key            int
	WeaponStrength float64
}

func newItem(def types.ItemDef) *Item {
	return &Item{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Takable:     def.Takable,
		Value:       def.Value,
		Key:         def.Key,
	}
}

func newWeapon(def types.WeaponDef) *Item {
	it := newItem(def.ItemDef)
	it.WeaponStrength = def.Strength
	return it
}

// Monster is a runtime instance of a monster template. At most one live
// instance per template exists at a time; the instance persists after
// death so its corpse can still be described.
type Monster struct {
	ID              string
	Name            string
	Description     string
	DeadDescription string
	IgnoreText      string
	Strength        float64
	SpawnProb       float64
	SpawnsIn        []string
	SpawnsAt        string
	Harmless        bool
	SingleEncounter bool

	Alive    bool
	Active   bool // currently placed in some room
	Fighting bool // attacked by the player this turn
	// History counts fight exchanges. -1 means the monster was placed at
	// world build time and ignores attacks until the world engages it.
	History int
}

func newMonster(def types.MonsterDef) *Monster {
	return &Monster{
		ID:              def.ID,
		Name:            def.Name,
		Description:     def.Description,
		DeadDescription: def.DeadDescription,
		IgnoreText:      def.IgnoreText,
		Strength:        def.Strength,
		SpawnProb:       def.SpawnProb,
		SpawnsIn:        def.SpawnsIn,
		SpawnsAt:        def.SpawnsAt,
		Harmless:        def.Harmless,
		SingleEncounter: def.SingleEncounter,
		Alive:           true,
		History:         -1,
	}
}

// Kill marks the monster dead. A dead monster never spawns again and
// describes as its dead description.
func (m *Monster) Kill() {
	m.Alive = false
	m.SpawnProb = 0
	if m.DeadDescription != "" {
		m.Description = m.DeadDescription
	}
}
