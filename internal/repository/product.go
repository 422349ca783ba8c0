package repository

import (
	"context"

	"outfit-agent-demo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Save(ctx context.Context, product *model.SavedProduct) error
	FindByID(ctx context.Context, productID string) (*model.SavedProduct, error)
	FindAll(ctx context.Context) ([]*model.SavedProduct, error)
	Delete(ctx context.Context, productID string) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Save(ctx context.Context, product *model.SavedProduct) error {
	// Saving the same catalog product twice keeps the newest copy.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.SavedProduct, error) {
	var product model.SavedProduct
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindAll(ctx context.Context) ([]*model.SavedProduct, error) {
	var products []*model.SavedProduct
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.SavedProduct{}).Error
}
