package writerepo

import (
	"context"

	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type lockingCouponAccess struct {
	db db.DBTX
}

// NewLockingCouponAccess reads the coupon row under FOR UPDATE. Every
// eligibility check and the later used_count increment then happen under one
// held lock, which is what makes the global cap race-free.
func NewLockingCouponAccess(dbtx db.DBTX) shared.CouponAccess {
	return &lockingCouponAccess{db: dbtx}
}

func (a *lockingCouponAccess) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	const query = `
		SELECT id, code, discount_type, discount_value, min_purchase_cents,
		       expires_at, max_uses, used_count, is_public, uses_per_user, created_at
		FROM coupons
		WHERE code = $1
		FOR UPDATE`

	return scanCouponSnapshot(a.db.QueryRow(ctx, query, code))
}

func (a *lockingCouponAccess) VoucherFor(ctx context.Context, userID, couponID uuid.UUID) (*shared.VoucherSnapshot, error) {
	return findVoucher(ctx, a.db, userID, couponID)
}

func (a *lockingCouponAccess) CountUsageByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error) {
	return countUsageByUser(ctx, a.db, couponID, userID)
}

// scanCouponSnapshot is shared with the pool-backed read store; only the
// locking clause differs between the two coupon lookups.
func scanCouponSnapshot(row interface{ Scan(dest ...any) error }) (*shared.CouponSnapshot, error) {
	var s shared.CouponSnapshot
	err := row.Scan(
		&s.ID, &s.Code, &s.DiscountType, &s.DiscountValue, &s.MinPurchaseCents,
		&s.ExpiresAt, &s.MaxUses, &s.UsedCount, &s.IsPublic, &s.UsesPerUser, &s.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return &s, nil
}

func findVoucher(ctx context.Context, dbtx db.DBTX, userID, couponID uuid.UUID) (*shared.VoucherSnapshot, error) {
	const query = `
		SELECT user_id, coupon_id, is_used
		FROM user_vouchers
		WHERE user_id = $1 AND coupon_id = $2`

	var s shared.VoucherSnapshot
	err := dbtx.QueryRow(ctx, query, userID, couponID).Scan(&s.UserID, &s.CouponID, &s.IsUsed)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user voucher", err)
	}
	return &s, nil
}

func countUsageByUser(ctx context.Context, dbtx db.DBTX, couponID, userID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM usage_logs WHERE coupon_id = $1 AND user_id = $2`

	var count int64
	if err := dbtx.QueryRow(ctx, query, couponID, userID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count coupon usage", err)
	}
	return count, nil
}
