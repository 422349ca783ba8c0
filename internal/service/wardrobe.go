package service

import (
	"context"
	"sync"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/dto"
	"outfit-agent-demo/internal/model"
	"outfit-agent-demo/internal/repository"
	"outfit-agent-demo/internal/wardrobe"
)

// WardrobeService owns the demo session's wardrobe: the saved product
// collection (persisted), the slot index derived from it, and the equipped
// state. It is the sole owner and mutator of the equipped state and
// serializes its own mutations; the pure matcher and builder only ever see
// snapshots.
type WardrobeService interface {
	SaveProduct(ctx context.Context, p dto.ProductSummary) ([]wardrobe.SlotID, error)
	Equip(ctx context.Context, slot wardrobe.SlotID, productID string) error
	Unequip(slot wardrobe.SlotID)
	Reset()
	State(ctx context.Context) (*dto.WardrobeStateResponse, error)
	// EquippedItems snapshots the occupied slots in canonical order.
	EquippedItems() []wardrobe.EquippedItem
}

type wardrobeServiceImpl struct {
	taxonomy    *wardrobe.Taxonomy
	productRepo repository.ProductRepository

	mu       sync.Mutex
	equipped *wardrobe.EquippedState
}

func NewWardrobeService(taxonomy *wardrobe.Taxonomy, productRepo repository.ProductRepository) WardrobeService {
	return &wardrobeServiceImpl{
		taxonomy:    taxonomy,
		productRepo: productRepo,
		equipped:    wardrobe.NewEquippedState(),
	}
}

func (s *wardrobeServiceImpl) SaveProduct(ctx context.Context, p dto.ProductSummary) ([]wardrobe.SlotID, error) {
	if p.ID == "" || p.Name == "" {
		return nil, apperr.Validationf("product id and name are required")
	}

	err := s.productRepo.Save(ctx, &model.SavedProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Source:      p.Source,
		ImageURL:    p.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	return wardrobe.Classify(p, s.taxonomy), nil
}

func (s *wardrobeServiceImpl) Equip(ctx context.Context, slot wardrobe.SlotID, productID string) error {
	saved, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return apperr.Validationf("product %s is not in the wardrobe", productID)
	}

	p := summaryFromModel(saved)

	// The product must actually be assignable to the requested slot.
	assignable := false
	for _, candidate := range wardrobe.Classify(p, s.taxonomy) {
		if candidate == slot {
			assignable = true
			break
		}
	}
	if !assignable {
		return apperr.Validationf("product %s does not fit slot %s", productID, slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.equipped.Equip(slot, p)
}

func (s *wardrobeServiceImpl) Unequip(slot wardrobe.SlotID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipped.Remove(slot)
}

func (s *wardrobeServiceImpl) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipped.Reset()
}

func (s *wardrobeServiceImpl) State(ctx context.Context) (*dto.WardrobeStateResponse, error) {
	saved, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]dto.ProductSummary, len(saved))
	for i, m := range saved {
		products[i] = summaryFromModel(m)
	}
	index := wardrobe.BuildIndex(products, s.taxonomy)

	resp := &dto.WardrobeStateResponse{
		Equipped: make(map[string]dto.ProductSummary),
		Options:  make(map[string][]dto.ProductSummary),
	}
	for slot, list := range index {
		resp.Options[string(slot)] = list
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.equipped.Items() {
		resp.Equipped[string(item.Slot)] = item.Product
	}
	return resp, nil
}

func (s *wardrobeServiceImpl) EquippedItems() []wardrobe.EquippedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.equipped.Items()
}

func summaryFromModel(m *model.SavedProduct) dto.ProductSummary {
	return dto.ProductSummary{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Currency:    m.Currency,
		Source:      m.Source,
		ImageURL:    m.ImageURL,
	}
}
