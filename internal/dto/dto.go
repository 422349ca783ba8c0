package dto

// ProductSummary is a catalog search result. Immutable once fetched;
// uniquely identified by ID.
type ProductSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Source      string  `json:"source"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// SlotImage references image bytes for an equipped slot: either inline
// bytes with a mime type, or a remote URL. Exactly one must resolve to
// usable bytes before compositing; otherwise the slot is skipped.
type SlotImage struct {
	Bytes []byte
	Mime  string
	URL   string
}

// PurchaseOrderItem is one line of the settlement plan derived from the
// equipped slots. Read-only once built.
type PurchaseOrderItem struct {
	ID               string  `json:"id"`
	SlotID           string  `json:"slot_id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	Source           string  `json:"source"`
	RecipientAddress string  `json:"recipient_address"`
	SendAmount       string  `json:"send_amount"`
}

type SearchResponse struct {
	Products []ProductSummary `json:"products"`
}

type SaveProductRequest struct {
	Product ProductSummary `json:"product"`
}

type SaveProductResponse struct {
	// Slots the product was classified into.
	Slots []string `json:"slots"`
}

type EquipRequest struct {
	Slot      string `json:"slot"`
	ProductID string `json:"product_id"`
}

type WardrobeStateResponse struct {
	// Equipped maps slot id to the product currently occupying it.
	Equipped map[string]ProductSummary `json:"equipped"`
	// Options maps slot id to the saved products assignable to it.
	Options map[string][]ProductSummary `json:"options"`
}

type RenderResponse struct {
	// Portrait is the final composited image as a data URL.
	Portrait string `json:"portrait"`
	Passes   int    `json:"passes"`
}

type PurchaseResponse struct {
	RunID  string              `json:"run_id"`
	Status string              `json:"status"`
	Items  []PurchaseOrderItem `json:"items"`
	Result string              `json:"result,omitempty"`
}
