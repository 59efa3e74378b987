package shared

import (
	"time"

	"shop-orders/internal/domain/coupon"
	"shop-orders/internal/domain/order"

	"github.com/google/uuid"
)

// Write-side snapshots keep the command layer off the read-model types.

type VariantSnapshot struct {
	ID            uuid.UUID
	SKU           string
	PriceCents    int64
	StockQuantity int32
}

type CouponSnapshot struct {
	ID               uuid.UUID
	Code             string
	DiscountType     coupon.DiscountType
	DiscountValue    int64
	MinPurchaseCents int64
	ExpiresAt        time.Time
	MaxUses          int32
	UsedCount        int32
	IsPublic         bool
	UsesPerUser      int32
	CreatedAt        time.Time
}

func (s *CouponSnapshot) ToDomain() (*coupon.Coupon, error) {
	return coupon.Reconstruct(
		s.ID,
		s.Code,
		s.DiscountType,
		s.DiscountValue,
		s.MinPurchaseCents,
		s.ExpiresAt,
		s.MaxUses,
		s.UsedCount,
		s.IsPublic,
		s.UsesPerUser,
		s.CreatedAt,
	)
}

type VoucherSnapshot struct {
	UserID   uuid.UUID
	CouponID uuid.UUID
	IsUsed   bool
}

// OrderRef identifies an order across the member and guest tables.
type OrderRef struct {
	ID    uuid.UUID
	Guest bool
}

type OrderHeadSnapshot struct {
	Ref       OrderRef
	Status    order.Status
	UserID    *uuid.UUID
	SessionID *string
}

type PaymentSnapshot struct {
	Ref           OrderRef
	PaymentStatus order.PaymentStatus
}

type ShippingProviderSnapshot struct {
	ID   uuid.UUID
	Name string
}

type CartOwner struct {
	UserID    *uuid.UUID
	SessionID *string
}
