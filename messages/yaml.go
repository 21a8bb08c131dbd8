package messages

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davekch/textgame/types"
)

// Merge applies a YAML message pack on top of the table. The pack is a
// flat mapping from outcome code to template, e.g.
//
//	fighting.dark_death: "The %s got you."
//
// Codes not present in the pack keep their current templates. A key that
// names no known code is an error; this catches typos in packs early.
func (t *Table) Merge(data []byte) error {
	var pack map[string]string
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return fmt.Errorf("parsing message pack: %w", err)
	}
	for key, template := range pack {
		code := types.Code(key)
		if _, ok := t.templates[code]; !ok {
			return fmt.Errorf("message pack: unknown code %q", key)
		}
		t.templates[code] = template
	}
	return nil
}

// MergeFile loads and applies a YAML message pack from disk.
func (t *Table) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading message pack: %w", err)
	}
	return t.Merge(data)
}
