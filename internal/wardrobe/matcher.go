package wardrobe

import (
	"strings"

	"outfit-agent-demo/internal/dto"
)

// Classify returns the slots a product belongs to. The haystack is the
// lowercased name plus description; a slot matches when any of its keywords
// is a literal substring. No tokenization or stemming keeps the test cheap
// and explainable. A product may match zero, one or many slots; on zero
// matches the first fallback slot present in the taxonomy is assigned, so
// every saved product stays reachable from some slot's option list.
//
// The result is in canonical slot order and independent of map iteration
// order. Pure function; call it again whenever the saved set changes.
func Classify(p dto.ProductSummary, t *Taxonomy) []SlotID {
	haystack := strings.ToLower(p.Name + " " + p.Description)

	var matched []SlotID
	for _, slot := range t.Slots() {
		for _, kw := range t.Keywords[slot] {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				matched = append(matched, slot)
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	for _, slot := range t.Fallback {
		if _, ok := t.Keywords[slot]; ok {
			return []SlotID{slot}
		}
	}
	return nil
}

// BuildIndex classifies every product and groups them by slot, preserving
// the input order within each slot. Used to populate assignment menus.
func BuildIndex(products []dto.ProductSummary, t *Taxonomy) map[SlotID][]dto.ProductSummary {
	index := make(map[SlotID][]dto.ProductSummary)
	for _, p := range products {
		for _, slot := range Classify(p, t) {
			index[slot] = append(index[slot], p)
		}
	}
	return index
}
