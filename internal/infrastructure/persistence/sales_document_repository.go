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
)

// GormSalesDocumentRepository stores quotations and sales orders
type GormSalesDocumentRepository struct {
	db *gorm.DB
}

// NewGormSalesDocumentRepository creates a new GormSalesDocumentRepository
func NewGormSalesDocumentRepository(db *gorm.DB) *GormSalesDocumentRepository {
	return &GormSalesDocumentRepository{db: db}
}

// FindByID finds a document of the given type. A document stored under
// another type is reported as not found.
func (r *GormSalesDocumentRepository) FindByID(ctx context.Context, docType trade.DocumentType, id uuid.UUID) (*trade.SalesDocument, error) {
	var model models.SalesDocumentModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND document_type = ?", id, string(docType)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a document
func (r *GormSalesDocumentRepository) Save(ctx context.Context, doc *trade.SalesDocument) error {
	model := models.SalesDocumentModelFromDomain(doc)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("save %s %s: %w", doc.DocumentType, doc.Number, err)
	}
	doc.MarkPersisted()
	return nil
}

// Ensure GormSalesDocumentRepository implements SalesDocumentRepository
var _ trade.SalesDocumentRepository = (*GormSalesDocumentRepository)(nil)
