package wardrobe

import "testing"

func TestLoadTaxonomy(t *testing.T) {
	tax, err := LoadTaxonomy()
	if err != nil {
		t.Fatalf("LoadTaxonomy: %v", err)
	}

	// every slot in the closed set carries keywords
	if got := len(tax.Keywords); got != len(AllSlots) {
		t.Fatalf("keyword tables = %d, want %d", got, len(AllSlots))
	}
	for _, slot := range AllSlots {
		if len(tax.Keywords[slot]) == 0 {
			t.Errorf("slot %s has no keywords", slot)
		}
	}

	want := []SlotID{SlotChest, SlotLegs, SlotHand, SlotBag}
	if len(tax.Fallback) != len(want) {
		t.Fatalf("fallback = %v", tax.Fallback)
	}
	for i, slot := range want {
		if tax.Fallback[i] != slot {
			t.Fatalf("fallback[%d] = %s, want %s", i, tax.Fallback[i], slot)
		}
	}
}

func TestParseTaxonomyRejectsBadTables(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unknown slot", "slots:\n  tail: [fluffy]\nfallback: [chest]"},
		{"empty keywords", "slots:\n  head: []\nfallback: [chest]"},
		{"missing fallback", "slots:\n  head: [hat]"},
		{"unknown fallback slot", "slots:\n  head: [hat]\nfallback: [tail]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseTaxonomy([]byte(tc.yaml)); err == nil {
				t.Fatal("bad taxonomy accepted")
			}
		})
	}
}
