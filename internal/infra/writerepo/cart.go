package writerepo

import (
	"context"

	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/pkg/errs"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type cartRepository struct {
	db db.DBTX
}

func NewCartRepository(dbtx db.DBTX) shared.CartRepository {
	return &cartRepository{db: dbtx}
}

// RemoveLines deletes the purchased variants from the owner's cart. A cart
// that never held some of them is not an error; the order already exists.
func (r *cartRepository) RemoveLines(ctx context.Context, owner shared.CartOwner, variantIDs []uuid.UUID) error {
	var (
		query string
		key   any
	)
	switch {
	case owner.UserID != nil:
		query = `
			DELETE FROM cart_lines cl
			USING carts c
			WHERE cl.cart_id = c.id AND c.user_id = $1 AND cl.variant_id = ANY($2)`
		key = *owner.UserID
	case owner.SessionID != nil:
		query = `
			DELETE FROM cart_lines cl
			USING carts c
			WHERE cl.cart_id = c.id AND c.session_id = $1 AND cl.variant_id = ANY($2)`
		key = *owner.SessionID
	default:
		return infra.WrapRepoErr("cart owner has no identity", errs.New("empty cart owner"), infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, key, variantIDs); err != nil {
		return infra.WrapRepoErr("failed to remove cart lines", err)
	}
	return nil
}
