package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type OrderLineView struct {
	VariantID      uuid.UUID `json:"variant_id"`
	SKU            string    `json:"sku"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

type OrderView struct {
	ID                 uuid.UUID       `json:"id"`
	IsGuest            bool            `json:"is_guest"`
	UserID             *uuid.UUID      `json:"user_id,omitempty"`
	GuestEmail         *string         `json:"guest_email,omitempty"`
	GuestFullName      *string         `json:"guest_full_name,omitempty"`
	GuestSessionID     *string         `json:"-"`
	SubtotalCents      int64           `json:"subtotal_cents"`
	ShippingFeeCents   int64           `json:"shipping_fee_cents"`
	DiscountCents      int64           `json:"discount_cents"`
	TotalCents         int64           `json:"total_cents"`
	CouponCode         *string         `json:"coupon_code,omitempty"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentStatus      string          `json:"payment_status"`
	PaymentTxnRef      *string         `json:"payment_txn_ref,omitempty"`
	PaidAt             *time.Time      `json:"paid_at,omitempty"`
	Status             string          `json:"status"`
	ShippingProviderID *uuid.UUID      `json:"shipping_provider_id,omitempty"`
	Lines              []OrderLineView `json:"lines"`
	CreatedAt          time.Time       `json:"created_at"`
}

type OrderListItem struct {
	ID            uuid.UUID `json:"id"`
	TotalCents    int64     `json:"total_cents"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	LineCount     int32     `json:"line_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type CouponView struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	DiscountType     string    `json:"discount_type"`
	DiscountValue    int64     `json:"discount_value"`
	MinPurchaseCents int64     `json:"min_purchase_cents"`
	ExpiresAt        time.Time `json:"expires_at"`
	MaxUses          int32     `json:"max_uses"`
	UsedCount        int32     `json:"used_count"`
	UsesPerUser      int32     `json:"uses_per_user"`
	CreatedAt        time.Time `json:"created_at"`
}

// VoucherView is a private coupon as seen from a member's wallet.
type VoucherView struct {
	Coupon CouponView `json:"coupon"`
	IsUsed bool       `json:"is_used"`
}
