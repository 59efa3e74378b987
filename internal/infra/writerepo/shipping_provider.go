package writerepo

import (
	"context"

	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type shippingProviderRepository struct {
	db db.DBTX
}

func NewShippingProviderRepository(dbtx db.DBTX) shared.ShippingProviderRepository {
	return &shippingProviderRepository{db: dbtx}
}

func (r *shippingProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.ShippingProviderSnapshot, error) {
	const query = `SELECT id, name FROM shipping_providers WHERE id = $1`

	var s shared.ShippingProviderSnapshot
	if err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name); err != nil {
		return nil, infra.WrapRepoErr("failed to find shipping provider", err)
	}
	return &s, nil
}
