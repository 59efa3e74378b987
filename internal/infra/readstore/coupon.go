package readstore

import (
	"context"
	"time"

	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/usecase/queries"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

// CouponReadStore serves both the advisory evaluation path (shared.CouponAccess
// without locks, reading latest committed state) and the catalog queries.
type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

var (
	_ shared.CouponAccess     = (*CouponReadStore)(nil)
	_ queries.CouponReadStore = (*CouponReadStore)(nil)
)

const couponColumns = `id, code, discount_type, discount_value, min_purchase_cents,
		       expires_at, max_uses, used_count, is_public, uses_per_user, created_at`

func (s *CouponReadStore) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	const query = `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE code = $1`

	var snap shared.CouponSnapshot
	err := s.db.QueryRow(ctx, query, code).Scan(
		&snap.ID, &snap.Code, &snap.DiscountType, &snap.DiscountValue, &snap.MinPurchaseCents,
		&snap.ExpiresAt, &snap.MaxUses, &snap.UsedCount, &snap.IsPublic, &snap.UsesPerUser, &snap.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return &snap, nil
}

func (s *CouponReadStore) VoucherFor(ctx context.Context, userID, couponID uuid.UUID) (*shared.VoucherSnapshot, error) {
	const query = `
		SELECT user_id, coupon_id, is_used
		FROM user_vouchers
		WHERE user_id = $1 AND coupon_id = $2`

	var snap shared.VoucherSnapshot
	err := s.db.QueryRow(ctx, query, userID, couponID).Scan(&snap.UserID, &snap.CouponID, &snap.IsUsed)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user voucher", err)
	}
	return &snap, nil
}

func (s *CouponReadStore) CountUsageByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM usage_logs WHERE coupon_id = $1 AND user_id = $2`

	var count int64
	if err := s.db.QueryRow(ctx, query, couponID, userID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count coupon usage", err)
	}
	return count, nil
}

func (s *CouponReadStore) ListAvailable(ctx context.Context, now time.Time) ([]*queries.CouponView, error) {
	const query = `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE is_public = TRUE
		  AND expires_at > $1
		  AND (max_uses = 0 OR used_count < max_uses)
		ORDER BY expires_at ASC`

	rows, err := s.db.Query(ctx, query, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available coupons", err)
	}
	defer rows.Close()

	views := make([]*queries.CouponView, 0)
	for rows.Next() {
		view, err := scanCouponView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read coupon rows", err)
	}
	return views, nil
}

func (s *CouponReadStore) WalletByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]*queries.VoucherView, error) {
	const query = `
		SELECT c.id, c.code, c.discount_type, c.discount_value, c.min_purchase_cents,
		       c.expires_at, c.max_uses, c.used_count, c.is_public, c.uses_per_user, c.created_at,
		       v.is_used
		FROM user_vouchers v
		JOIN coupons c ON c.id = v.coupon_id
		WHERE v.user_id = $1 AND c.expires_at > $2
		ORDER BY c.expires_at ASC`

	rows, err := s.db.Query(ctx, query, userID, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load voucher wallet", err)
	}
	defer rows.Close()

	views := make([]*queries.VoucherView, 0)
	for rows.Next() {
		var view queries.VoucherView
		var isPublic bool
		err := rows.Scan(
			&view.Coupon.ID, &view.Coupon.Code, &view.Coupon.DiscountType, &view.Coupon.DiscountValue,
			&view.Coupon.MinPurchaseCents, &view.Coupon.ExpiresAt, &view.Coupon.MaxUses,
			&view.Coupon.UsedCount, &isPublic, &view.Coupon.UsesPerUser, &view.Coupon.CreatedAt,
			&view.IsUsed,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read voucher rows", err)
	}
	return views, nil
}

func scanCouponView(row interface{ Scan(dest ...any) error }) (*queries.CouponView, error) {
	var view queries.CouponView
	var isPublic bool
	err := row.Scan(
		&view.ID, &view.Code, &view.DiscountType, &view.DiscountValue, &view.MinPurchaseCents,
		&view.ExpiresAt, &view.MaxUses, &view.UsedCount, &isPublic, &view.UsesPerUser, &view.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan coupon row", err)
	}
	return &view, nil
}
