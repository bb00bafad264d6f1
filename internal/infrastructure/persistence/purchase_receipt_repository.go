package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/domain/trade"
	"github.com/surgishop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseReceiptRepository stores purchase receipts with their lines
type GormPurchaseReceiptRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReceiptRepository creates a new GormPurchaseReceiptRepository
func NewGormPurchaseReceiptRepository(db *gorm.DB) *GormPurchaseReceiptRepository {
	return &GormPurchaseReceiptRepository{db: db}
}

// FindByID loads a receipt and its lines in line order
func (r *GormPurchaseReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseReceipt, error) {
	var model models.PurchaseReceiptModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("idx ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts the header and rewrites the lines in one transaction
func (r *GormPurchaseReceiptRepository) Save(ctx context.Context, receipt *trade.PurchaseReceipt) error {
	model := models.PurchaseReceiptModelFromDomain(receipt)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("receipt_id = ?", model.ID).Delete(&models.PurchaseReceiptItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	if err != nil {
		return fmt.Errorf("save purchase receipt %s: %w", receipt.Number, err)
	}
	receipt.MarkPersisted()
	return nil
}

// Ensure GormPurchaseReceiptRepository implements PurchaseReceiptRepository
var _ trade.PurchaseReceiptRepository = (*GormPurchaseReceiptRepository)(nil)
