package wardrobe

import (
	"math"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/dto"
)

// EquippedState maps slots to the single product occupying each. It is
// owned by its caller, which is the sole mutator and is responsible for
// serializing its own mutations; the pure components only ever read a
// snapshot of it.
type EquippedState struct {
	slots map[SlotID]dto.ProductSummary
}

func NewEquippedState() *EquippedState {
	return &EquippedState{slots: make(map[SlotID]dto.ProductSummary)}
}

// Equip assigns a product to a slot, replacing any previous occupant. A
// product without a positive finite price never enters the state, so later
// order building starts from valid inputs.
func (s *EquippedState) Equip(slot SlotID, p dto.ProductSummary) error {
	if _, ok := ParseSlot(string(slot)); !ok {
		return apperr.Validationf("unknown slot %q", slot)
	}
	if p.ID == "" {
		return apperr.Validationf("product id is required")
	}
	if !(p.Price > 0) || math.IsInf(p.Price, 0) {
		return apperr.Validationf("product %s has invalid price", p.ID)
	}
	s.slots[slot] = p
	return nil
}

// Remove clears a slot. Removing an empty slot is a no-op.
func (s *EquippedState) Remove(slot SlotID) {
	delete(s.slots, slot)
}

// Get returns the product equipped in a slot, if any.
func (s *EquippedState) Get(slot SlotID) (dto.ProductSummary, bool) {
	p, ok := s.slots[slot]
	return p, ok
}

// Items returns (slot, product) pairs in canonical slot order.
func (s *EquippedState) Items() []EquippedItem {
	var out []EquippedItem
	for _, slot := range AllSlots {
		if p, ok := s.slots[slot]; ok {
			out = append(out, EquippedItem{Slot: slot, Product: p})
		}
	}
	return out
}

// Len reports how many slots are occupied.
func (s *EquippedState) Len() int { return len(s.slots) }

// Reset destroys the session's selections.
func (s *EquippedState) Reset() {
	s.slots = make(map[SlotID]dto.ProductSummary)
}

// EquippedItem is one occupied slot.
type EquippedItem struct {
	Slot    SlotID
	Product dto.ProductSummary
}
