package wardrobe

import (
	"reflect"
	"testing"

	"outfit-agent-demo/internal/dto"
)

func mustTaxonomy(t *testing.T) *Taxonomy {
	t.Helper()
	tax, err := LoadTaxonomy()
	if err != nil {
		t.Fatalf("LoadTaxonomy: %v", err)
	}
	return tax
}

func TestClassify(t *testing.T) {
	tax := mustTaxonomy(t)

	cases := []struct {
		name    string
		product dto.ProductSummary
		want    []SlotID
	}{
		{
			name:    "single match on name",
			product: dto.ProductSummary{ID: "p1", Name: "Leather Boots"},
			want:    []SlotID{SlotFeet},
		},
		{
			name:    "match is case-insensitive",
			product: dto.ProductSummary{ID: "p2", Name: "DENIM JACKET"},
			want:    []SlotID{SlotChest},
		},
		{
			name:    "description contributes to the haystack",
			product: dto.ProductSummary{ID: "p3", Name: "Summer Set", Description: "lightweight linen shorts"},
			want:    []SlotID{SlotLegs},
		},
		{
			name:    "multiple slots at once",
			product: dto.ProductSummary{ID: "p4", Name: "Jacket and jean combo"},
			want:    []SlotID{SlotChest, SlotLegs},
		},
		{
			name:    "substring covers plurals",
			product: dto.ProductSummary{ID: "p5", Name: "Slim jeans"},
			want:    []SlotID{SlotLegs},
		},
		{
			name:    "no keyword falls back to chest",
			product: dto.ProductSummary{ID: "p6", Name: "Mystery item"},
			want:    []SlotID{SlotChest},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.product, tax)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Classify(%q) = %v, want %v", tc.product.Name, got, tc.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	tax := mustTaxonomy(t)
	p := dto.ProductSummary{ID: "p1", Name: "hooded jacket with matching skirt and a silver ring"}

	first := Classify(p, tax)
	for i := 0; i < 50; i++ {
		if got := Classify(p, tax); !reflect.DeepEqual(got, first) {
			t.Fatalf("iteration %d: Classify returned %v, previously %v", i, got, first)
		}
	}
}

func TestClassifyFallbackOrder(t *testing.T) {
	// With chest removed from the slot set, the fallback moves to the next
	// slot in the priority list.
	tax := mustTaxonomy(t)
	delete(tax.Keywords, SlotChest)

	got := Classify(dto.ProductSummary{ID: "p1", Name: "mystery item"}, tax)
	want := []SlotID{SlotLegs}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fallback = %v, want %v", got, want)
	}
}

func TestBuildIndex(t *testing.T) {
	tax := mustTaxonomy(t)
	products := []dto.ProductSummary{
		{ID: "a", Name: "wool beanie"},
		{ID: "b", Name: "jacket and jean combo"},
		{ID: "c", Name: "mystery item"},
	}

	index := BuildIndex(products, tax)

	if got := ids(index[SlotHead]); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("head = %v", got)
	}
	// b matches chest directly, c lands there by fallback.
	if got := ids(index[SlotChest]); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("chest = %v", got)
	}
	if got := ids(index[SlotLegs]); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("legs = %v", got)
	}
}

func ids(products []dto.ProductSummary) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
