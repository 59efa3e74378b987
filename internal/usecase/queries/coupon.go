package queries

import (
	"context"
	"time"

	"shop-orders/internal/pkg/clock"

	"github.com/google/uuid"
)

type CouponReadStore interface {
	ListAvailable(ctx context.Context, now time.Time) ([]*CouponView, error)
	WalletByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]*VoucherView, error)
}

type CouponQueries interface {
	// ListAvailable returns public coupons that are neither expired nor
	// globally exhausted.
	ListAvailable(ctx context.Context) ([]*CouponView, error)
	// Wallet returns the member's private voucher assignments for unexpired
	// coupons, including already-used ones.
	Wallet(ctx context.Context, userID uuid.UUID) ([]*VoucherView, error)
}

type couponQueriesImpl struct {
	store CouponReadStore
	clock clock.Clock
}

func NewCouponQueries(store CouponReadStore, clock clock.Clock) CouponQueries {
	return &couponQueriesImpl{
		store: store,
		clock: clock,
	}
}

func (q *couponQueriesImpl) ListAvailable(ctx context.Context) ([]*CouponView, error) {
	return q.store.ListAvailable(ctx, q.clock.Now())
}

func (q *couponQueriesImpl) Wallet(ctx context.Context, userID uuid.UUID) ([]*VoucherView, error) {
	return q.store.WalletByUser(ctx, userID, q.clock.Now())
}
