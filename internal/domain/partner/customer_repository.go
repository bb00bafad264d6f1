package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/shared"
)

// CustomerRepository defines the persistence contract for customers
type CustomerRepository interface {
	// FindByID returns shared.ErrNotFound when the customer does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, code string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, int64, error)
	// Save inserts or updates the customer together with its limit rows
	Save(ctx context.Context, customer *Customer) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
