package writerepo

import (
	"context"

	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type voucherRepository struct {
	db db.DBTX
}

func NewVoucherRepository(dbtx db.DBTX) shared.VoucherRepository {
	return &voucherRepository{db: dbtx}
}

// MarkUsed flips the assignment exactly once. The is_used guard in the WHERE
// clause keeps a voucher single-use even if two transactions raced past the
// eligibility check.
func (r *voucherRepository) MarkUsed(ctx context.Context, userID, couponID uuid.UUID) error {
	const query = `
		UPDATE user_vouchers
		SET is_used = TRUE
		WHERE user_id = $1 AND coupon_id = $2 AND is_used = FALSE`

	tag, err := r.db.Exec(ctx, query, userID, couponID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark voucher used", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher missing or already used", nil, infra.KindNotFound)
	}
	return nil
}
