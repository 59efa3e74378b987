package writerepo

import (
	"context"

	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type couponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) shared.CouponRepository {
	return &couponRepository{db: dbtx}
}

// IncrementUsedCount assumes the caller already holds the coupon row lock, so
// the increment can never race past the global cap.
func (r *couponRepository) IncrementUsedCount(ctx context.Context, couponID uuid.UUID) error {
	const query = `UPDATE coupons SET used_count = used_count + 1 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, couponID)
	if err != nil {
		return infra.WrapRepoErr("failed to increment coupon used count", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found for used count increment", nil, infra.KindNotFound)
	}
	return nil
}
