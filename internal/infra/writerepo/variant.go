package writerepo

import (
	"context"

	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type variantRepository struct {
	db db.DBTX
}

func NewVariantRepository(dbtx db.DBTX) shared.VariantRepository {
	return &variantRepository{db: dbtx}
}

// LockForUpdate orders the lock acquisition by id so concurrent multi-variant
// placements never deadlock against each other.
func (r *variantRepository) LockForUpdate(ctx context.Context, ids []uuid.UUID) ([]shared.VariantSnapshot, error) {
	const query = `
		SELECT id, sku, price_cents, stock_quantity
		FROM variants
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock variants", err)
	}
	defer rows.Close()

	snapshots := make([]shared.VariantSnapshot, 0, len(ids))
	for rows.Next() {
		var s shared.VariantSnapshot
		if err := rows.Scan(&s.ID, &s.SKU, &s.PriceCents, &s.StockQuantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan variant row", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read variant rows", err)
	}
	return snapshots, nil
}

func (r *variantRepository) DecrementStock(ctx context.Context, variantID uuid.UUID, quantity int32) error {
	const query = `
		UPDATE variants
		SET stock_quantity = stock_quantity - $2
		WHERE id = $1 AND stock_quantity >= $2`

	tag, err := r.db.Exec(ctx, query, variantID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement variant stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("variant missing or stock below requested quantity", nil, infra.KindNotFound)
	}
	return nil
}
