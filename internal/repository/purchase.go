package repository

import (
	"context"
	"time"

	"outfit-agent-demo/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	CreateRun(ctx context.Context, tx *gorm.DB, run *model.PurchaseRun) error
	CreateRunItems(ctx context.Context, tx *gorm.DB, items []*model.PurchaseRunItem) error
	MarkStatus(ctx context.Context, runID, status, result string) error
	FindByRunID(ctx context.Context, runID string) (*model.PurchaseRun, error)
	GetRunItems(ctx context.Context, runID string) ([]*model.PurchaseRunItem, error)
}

type purchaseRepoImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepoImpl{
		db: db,
	}
}

func (r *purchaseRepoImpl) CreateRun(ctx context.Context, tx *gorm.DB, run *model.PurchaseRun) error {
	return tx.WithContext(ctx).Create(run).Error
}

func (r *purchaseRepoImpl) CreateRunItems(ctx context.Context, tx *gorm.DB, items []*model.PurchaseRunItem) error {
	return tx.WithContext(ctx).Create(items).Error
}

func (r *purchaseRepoImpl) MarkStatus(ctx context.Context, runID, status, result string) error {
	return r.db.WithContext(ctx).Model(&model.PurchaseRun{}).
		Where("run_id = ?", runID).
		Updates(map[string]interface{}{
			"status":     status,
			"result":     result,
			"updated_at": time.Now(),
		}).Error
}

func (r *purchaseRepoImpl) FindByRunID(ctx context.Context, runID string) (*model.PurchaseRun, error) {
	var run model.PurchaseRun
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		First(&run).Error

	if err != nil {
		return nil, err
	}

	return &run, nil
}

func (r *purchaseRepoImpl) GetRunItems(ctx context.Context, runID string) ([]*model.PurchaseRunItem, error) {
	var items []*model.PurchaseRunItem
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("id ASC").
		Find(&items).
		Error

	if err != nil {
		return nil, err
	}

	return items, nil
}
