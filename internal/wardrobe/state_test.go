package wardrobe

import (
	"errors"
	"math"
	"testing"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/dto"
)

func TestEquippedState(t *testing.T) {
	s := NewEquippedState()

	if err := s.Equip(SlotChest, dto.ProductSummary{ID: "a", Price: 10}); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if err := s.Equip(SlotLegs, dto.ProductSummary{ID: "b", Price: 20}); err != nil {
		t.Fatalf("equip: %v", err)
	}

	// A slot holds at most one product.
	if err := s.Equip(SlotChest, dto.ProductSummary{ID: "c", Price: 30}); err != nil {
		t.Fatalf("re-equip: %v", err)
	}
	if p, _ := s.Get(SlotChest); p.ID != "c" {
		t.Fatalf("chest = %s, want c", p.ID)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}

	// Items come back in canonical slot order, not insertion order.
	items := s.Items()
	if items[0].Slot != SlotChest || items[1].Slot != SlotLegs {
		t.Fatalf("items order = %v", items)
	}

	s.Remove(SlotLegs)
	if _, ok := s.Get(SlotLegs); ok {
		t.Fatal("legs still equipped after remove")
	}

	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("len after reset = %d", s.Len())
	}
}

func TestEquipRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		slot SlotID
		p    dto.ProductSummary
	}{
		{"unknown slot", SlotID("tail"), dto.ProductSummary{ID: "a", Price: 1}},
		{"missing id", SlotChest, dto.ProductSummary{Price: 1}},
		{"zero price", SlotChest, dto.ProductSummary{ID: "a", Price: 0}},
		{"negative price", SlotChest, dto.ProductSummary{ID: "a", Price: -5}},
		{"nan price", SlotChest, dto.ProductSummary{ID: "a", Price: math.NaN()}},
		{"inf price", SlotChest, dto.ProductSummary{ID: "a", Price: math.Inf(1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewEquippedState()
			err := s.Equip(tc.slot, tc.p)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("err = %v, want validation failure", err)
			}
			if s.Len() != 0 {
				t.Fatal("invalid product entered the state")
			}
		})
	}
}
