package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/davekch/textgame/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validDirections = func() map[string]bool {
	m := map[string]bool{}
	for _, d := range types.Directions {
		m[d] = true
	}
	return m
}()

var validSpawnTimes = map[string]bool{
	types.SpawnsAlways:  true,
	types.SpawnsAtDay:   true,
	types.SpawnsAtNight: true,
}

// validate checks the compiled defs for referential integrity and
// consistency. The world constructor re-checks the structural invariants;
// validating here lets content errors surface with loader context before
// anything is built.
func validate(defs *types.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}
	if defs.Game.Start == "" {
		ve.Errors = append(ve.Errors, "Game.start is required")
	} else if _, ok := defs.Rooms[defs.Game.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %q not found in defined rooms", defs.Game.Start))
	}

	for roomID, room := range defs.Rooms {
		validateDoors(roomID, "doors", room.Doors, defs, ve)
		validateDoors(roomID, "hidden_doors", room.HiddenDoors, defs, ve)
		for dir := range room.Locked {
			if !validDirections[dir] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q locks unknown direction %q", roomID, dir))
				continue
			}
			_, open := room.Doors[dir]
			_, hidden := room.HiddenDoors[dir]
			if !open && !hidden {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q locks direction %q which has no door", roomID, dir))
			}
		}
	}

	// Movable IDs must be unique across items, weapons and monsters.
	seen := map[string]string{}
	for id := range defs.Items {
		seen[id] = "item"
	}
	for id := range defs.Weapons {
		if kind, ok := seen[id]; ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"weapon %q clashes with %s of the same ID", id, kind))
		}
		seen[id] = "weapon"
	}
	for id := range defs.Monsters {
		if kind, ok := seen[id]; ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"monster %q clashes with %s of the same ID", id, kind))
		}
	}

	for id, item := range defs.Items {
		validateLocation(id, "item", item.InitLocation, defs, ve)
	}
	for id, weapon := range defs.Weapons {
		validateLocation(id, "weapon", weapon.InitLocation, defs, ve)
		if weapon.Strength < 0 || weapon.Strength > 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"weapon %q strength %v outside [0,1]", id, weapon.Strength))
		}
	}
	for id, monster := range defs.Monsters {
		validateLocation(id, "monster", monster.InitLocation, defs, ve)
		if monster.Strength < 0 || monster.Strength > 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"monster %q strength %v outside [0,1]", id, monster.Strength))
		}
		if monster.SpawnProb < 0 || monster.SpawnProb > 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"monster %q spawn_prob %v outside [0,1]", id, monster.SpawnProb))
		}
		if !validSpawnTimes[monster.SpawnsAt] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"monster %q spawns_at %q is not one of always, day, night", id, monster.SpawnsAt))
		}
	}

	// Warnings: keys with no matching lock and locks with no matching key.
	lockCodes := map[int]bool{}
	for _, room := range defs.Rooms {
		for _, lock := range room.Locked {
			lockCodes[lock.Key] = true
		}
	}
	keyCodes := map[int]bool{}
	for id, item := range defs.Items {
		if item.Key != 0 {
			keyCodes[item.Key] = true
			if !lockCodes[item.Key] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"item %q carries key %d which opens no door", id, item.Key))
			}
		}
	}
	for roomID, room := range defs.Rooms {
		for dir, lock := range room.Locked {
			if !keyCodes[lock.Key] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"room %q door %q locked with code %d which no item opens", roomID, dir, lock.Key))
			}
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateDoors(roomID, field string, doors map[string]string, defs *types.Defs, ve *ValidationError) {
	for dir, target := range doors {
		if !validDirections[dir] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q %s uses unknown direction %q", roomID, field, dir))
		}
		if _, ok := defs.Rooms[target]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q %s %q points to undefined room %q", roomID, field, dir, target))
		}
	}
}

func validateLocation(id, kind, location string, defs *types.Defs, ve *ValidationError) {
	if location == "" {
		return
	}
	if _, ok := defs.Rooms[location]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"%s %q location %q does not match any defined room", kind, id, location))
	}
}
