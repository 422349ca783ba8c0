// Package wardrobe holds the slot taxonomy, the product-to-slot matcher and
// the caller-owned equipped state. Everything here is pure: no I/O, no
// retained state between calls.
package wardrobe

// SlotID is one of the 10 fixed wardrobe body-region categories. The set is
// closed; it is not extensible at runtime.
type SlotID string

const (
	SlotHead  SlotID = "head"
	SlotChest SlotID = "chest"
	SlotWaist SlotID = "waist"
	SlotLegs  SlotID = "legs"
	SlotFeet  SlotID = "feet"
	SlotEars  SlotID = "ears"
	SlotNeck  SlotID = "neck"
	SlotBag   SlotID = "bag"
	SlotHand  SlotID = "hand"
	SlotRing  SlotID = "ring"
)

// AllSlots lists every slot in declaration order.
var AllSlots = []SlotID{
	SlotHead, SlotChest, SlotWaist, SlotLegs, SlotFeet,
	SlotEars, SlotNeck, SlotBag, SlotHand, SlotRing,
}

// LayerOrder is the canonical garment application order for rendering:
// bottom-wear and footwear first, outerwear and headwear next, accessories
// last. Rendering follows this order regardless of the order the user
// equipped things in, so a given outfit always composites the same way.
var LayerOrder = []SlotID{
	SlotLegs, SlotFeet, SlotWaist, SlotChest, SlotHead,
	SlotEars, SlotNeck, SlotBag, SlotHand, SlotRing,
}

var displayLabels = map[SlotID]string{
	SlotHead:  "headwear",
	SlotChest: "top / outerwear",
	SlotWaist: "waist accessory",
	SlotLegs:  "bottoms",
	SlotFeet:  "footwear",
	SlotEars:  "earrings",
	SlotNeck:  "neckwear",
	SlotBag:   "bag",
	SlotHand:  "hand accessory",
	SlotRing:  "ring",
}

// DisplayLabel returns the human-readable garment label used in rendering
// and settlement instructions.
func (s SlotID) DisplayLabel() string {
	if l, ok := displayLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseSlot validates a slot identifier coming in over the wire.
func ParseSlot(raw string) (SlotID, bool) {
	s := SlotID(raw)
	_, ok := displayLabels[s]
	return s, ok
}

// LayerRank returns the slot's position in LayerOrder. Unknown slots sort
// last.
func LayerRank(s SlotID) int {
	for i, v := range LayerOrder {
		if v == s {
			return i
		}
	}
	return len(LayerOrder)
}
