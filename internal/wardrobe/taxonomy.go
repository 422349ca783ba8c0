package wardrobe

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Taxonomy maps each slot to its keyword set and carries the fallback
// priority order used when no keyword matches.
type Taxonomy struct {
	Keywords map[SlotID][]string
	Fallback []SlotID
}

type taxonomyFile struct {
	Slots    map[string][]string `yaml:"slots"`
	Fallback []string            `yaml:"fallback"`
}

// LoadTaxonomy parses the embedded keyword tables. It rejects tables that
// reference unknown slots or leave the fallback list empty, so a bad edit
// fails at startup rather than misclassifying silently.
func LoadTaxonomy() (*Taxonomy, error) {
	return parseTaxonomy(taxonomyYAML)
}

func parseTaxonomy(data []byte) (*Taxonomy, error) {
	var f taxonomyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse taxonomy yaml: %w", err)
	}

	t := &Taxonomy{Keywords: make(map[SlotID][]string, len(f.Slots))}
	for raw, kws := range f.Slots {
		slot, ok := ParseSlot(raw)
		if !ok {
			return nil, fmt.Errorf("taxonomy references unknown slot %q", raw)
		}
		if len(kws) == 0 {
			return nil, fmt.Errorf("taxonomy slot %q has no keywords", raw)
		}
		t.Keywords[slot] = kws
	}
	if len(f.Fallback) == 0 {
		return nil, fmt.Errorf("taxonomy fallback list is empty")
	}
	for _, raw := range f.Fallback {
		slot, ok := ParseSlot(raw)
		if !ok {
			return nil, fmt.Errorf("taxonomy fallback references unknown slot %q", raw)
		}
		t.Fallback = append(t.Fallback, slot)
	}
	return t, nil
}

// Slots returns the slots present in the taxonomy in canonical declaration
// order, so callers iterating the taxonomy see a stable sequence.
func (t *Taxonomy) Slots() []SlotID {
	out := make([]SlotID, 0, len(t.Keywords))
	for _, s := range AllSlots {
		if _, ok := t.Keywords[s]; ok {
			out = append(out, s)
		}
	}
	return out
}
