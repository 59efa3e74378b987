package shared

import (
	"context"
	"time"

	"shop-orders/internal/domain/order"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-write transaction with retry on serialization conflicts
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CouponReads: non-transactional coupon access for the advisory pre-check
	CouponReads() CouponAccess
}

// Tx bundles the repositories bound to one open transaction.
type Tx interface {
	Variants() VariantRepository
	Orders() OrderRepository
	Coupons() CouponRepository
	Vouchers() VoucherRepository
	UsageLogs() UsageLogRepository
	Carts() CartRepository
	// CouponAccess reads coupons under FOR UPDATE so eligibility checks and
	// the later used_count increment happen under one held lock.
	CouponAccess() CouponAccess
}

// CouponAccess is the evaluator's view of persistence. The transactional
// implementation locks the coupon row; the pool-backed one reads latest
// committed data for the advisory check.
type CouponAccess interface {
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	VoucherFor(ctx context.Context, userID, couponID uuid.UUID) (*VoucherSnapshot, error)
	CountUsageByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error)
}

type VariantRepository interface {
	// LockForUpdate acquires exclusive row locks in ascending id order and
	// returns the locked stock snapshots.
	LockForUpdate(ctx context.Context, ids []uuid.UUID) ([]VariantSnapshot, error)
	DecrementStock(ctx context.Context, variantID uuid.UUID, quantity int32) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	FindHeadForUpdate(ctx context.Context, ref OrderRef) (*OrderHeadSnapshot, error)
	UpdateStatus(ctx context.Context, ref OrderRef, status order.Status) error
	// FindPaymentForUpdate looks the id up in member orders first, then guest
	// orders, matching how gateway callbacks reference either table.
	FindPaymentForUpdate(ctx context.Context, id uuid.UUID) (*PaymentSnapshot, error)
	ResolvePayment(ctx context.Context, ref OrderRef, status order.PaymentStatus, txnRef string, paidAt time.Time) error
}

type CouponRepository interface {
	IncrementUsedCount(ctx context.Context, couponID uuid.UUID) error
}

type VoucherRepository interface {
	MarkUsed(ctx context.Context, userID, couponID uuid.UUID) error
}

// UsageLogRepository appends to the redemption history; per-user counting for
// eligibility goes through CouponAccess so it shares the coupon lock.
type UsageLogRepository interface {
	Record(ctx context.Context, couponID uuid.UUID, userID *uuid.UUID, ref OrderRef) error
}

type CartRepository interface {
	RemoveLines(ctx context.Context, owner CartOwner, variantIDs []uuid.UUID) error
}

type ShippingProviderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingProviderSnapshot, error)
}
