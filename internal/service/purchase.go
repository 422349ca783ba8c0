package service

import (
	"context"
	"math"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/dto"
	"outfit-agent-demo/internal/model"
	"outfit-agent-demo/internal/obs"
	"outfit-agent-demo/internal/repository"
	"outfit-agent-demo/internal/wardrobe"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// priceDivisor converts a listed catalog price into the demo settlement
// amount: sendAmount = round(price / 1000, 2).
var priceDivisor = decimal.NewFromInt(1000)

const solanaPublicKeyLength = 32

type PurchaseService interface {
	// Build derives the settlement plan from the equipped items. Pure; it
	// validates every price before any network or agent activity.
	Build(items []wardrobe.EquippedItem) ([]dto.PurchaseOrderItem, error)
	// Purchase builds the plan from the current wardrobe, records it, runs
	// the payment agent and records the outcome.
	Purchase(ctx context.Context) (*dto.PurchaseResponse, error)
}

type purchaseServiceImpl struct {
	db           *gorm.DB
	wardrobeSvc  WardrobeService
	agentSvc     AgentService
	purchaseRepo repository.PurchaseRepository
	// recipients is the fixed, ordered merchant address list. Items are
	// assigned addresses round-robin by position in the order, not by
	// merchant identity.
	recipients []common.PublicKey
}

func NewPurchaseService(
	db *gorm.DB,
	wardrobeSvc WardrobeService,
	agentSvc AgentService,
	purchaseRepo repository.PurchaseRepository,
	merchantAddresses []string,
) (PurchaseService, error) {
	if len(merchantAddresses) == 0 {
		return nil, apperr.Configurationf("merchant address list is empty")
	}
	recipients := make([]common.PublicKey, len(merchantAddresses))
	for i, addr := range merchantAddresses {
		raw, err := base58.Decode(addr)
		if err != nil || len(raw) != solanaPublicKeyLength {
			return nil, apperr.Configurationf("merchant address %q is not a valid solana public key", addr)
		}
		recipients[i] = common.PublicKeyFromBytes(raw)
	}
	return &purchaseServiceImpl{
		db:           db,
		wardrobeSvc:  wardrobeSvc,
		agentSvc:     agentSvc,
		purchaseRepo: purchaseRepo,
		recipients:   recipients,
	}, nil
}

func (s *purchaseServiceImpl) Build(items []wardrobe.EquippedItem) ([]dto.PurchaseOrderItem, error) {
	order := make([]dto.PurchaseOrderItem, 0, len(items))
	for i, item := range items {
		p := item.Product
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
			return nil, apperr.Validationf("invalid price for item %s", p.ID)
		}
		amount := decimal.NewFromFloat(p.Price).Div(priceDivisor).Round(2)
		if !amount.IsPositive() {
			return nil, apperr.Validationf("invalid price for item %s: send amount rounds to zero", p.ID)
		}

		order = append(order, dto.PurchaseOrderItem{
			ID:               p.ID,
			SlotID:           string(item.Slot),
			Name:             p.Name,
			Price:            p.Price,
			Currency:         p.Currency,
			Source:           p.Source,
			RecipientAddress: s.recipients[i%len(s.recipients)].ToBase58(),
			SendAmount:       amount.StringFixed(2),
		})
	}
	return order, nil
}

func (s *purchaseServiceImpl) Purchase(ctx context.Context) (*dto.PurchaseResponse, error) {
	items := s.wardrobeSvc.EquippedItems()
	if len(items) == 0 {
		return nil, apperr.Validationf("no items equipped")
	}

	order, err := s.Build(items)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	runItems := make([]*model.PurchaseRunItem, len(order))
	for i, it := range order {
		runItems[i] = &model.PurchaseRunItem{
			RunID:            runID,
			ProductID:        it.ID,
			SlotID:           it.SlotID,
			Name:             it.Name,
			Price:            it.Price,
			Currency:         it.Currency,
			Source:           it.Source,
			RecipientAddress: it.RecipientAddress,
			SendAmount:       it.SendAmount,
		}
	}

	// The plan is durable before the agent sees it, so every run is
	// auditable even when the stream dies mid-way.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.purchaseRepo.CreateRun(ctx, tx, &model.PurchaseRun{
			RunID:  runID,
			Status: "STARTED",
		}); err != nil {
			return err
		}
		return s.purchaseRepo.CreateRunItems(ctx, tx, runItems)
	})
	if err != nil {
		return nil, err
	}

	result, err := s.agentSvc.Execute(ctx, order)
	if err != nil {
		status := "FAILED"
		if apperr.KindOf(err) == apperr.KindAgentIncomplete {
			status = "INCOMPLETE"
		}
		if markErr := s.purchaseRepo.MarkStatus(ctx, runID, status, ""); markErr != nil {
			obs.Logger.Error("mark purchase run status", "run_id", runID, "error", markErr)
		}
		return nil, err
	}

	if err := s.purchaseRepo.MarkStatus(ctx, runID, "COMPLETED", result); err != nil {
		obs.Logger.Error("mark purchase run status", "run_id", runID, "error", err)
	}

	return &dto.PurchaseResponse{
		RunID:  runID,
		Status: "COMPLETED",
		Items:  order,
		Result: result,
	}, nil
}
