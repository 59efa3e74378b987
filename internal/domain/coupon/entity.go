package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrExpired              = errors.New("coupon has expired")
	ErrGloballyExhausted    = errors.New("coupon has no remaining uses")
	ErrBelowMinimumPurchase = errors.New("order subtotal is below the coupon minimum purchase amount")
)

// Coupon holds the global redemption rules for a code. Audience checks that
// need voucher or usage-log lookups live in the usecase evaluator; everything
// decidable from the row itself is here.
type Coupon struct {
	id               uuid.UUID
	code             Code
	discount         Discount
	minPurchaseCents int64
	expiresAt        time.Time
	maxUses          int32
	usedCount        int32
	isPublic         bool
	usesPerUser      int32
	createdAt        time.Time
}

func Reconstruct(
	id uuid.UUID,
	code string,
	discountType DiscountType,
	discountValue int64,
	minPurchaseCents int64,
	expiresAt time.Time,
	maxUses, usedCount int32,
	isPublic bool,
	usesPerUser int32,
	createdAt time.Time,
) (*Coupon, error) {
	discount, err := NewDiscount(discountType, discountValue)
	if err != nil {
		return nil, err
	}

	return &Coupon{
		id:               id,
		code:             Code(code),
		discount:         discount,
		minPurchaseCents: minPurchaseCents,
		expiresAt:        expiresAt,
		maxUses:          maxUses,
		usedCount:        usedCount,
		isPublic:         isPublic,
		usesPerUser:      usesPerUser,
		createdAt:        createdAt,
	}, nil
}

// ValidateRedeemable runs the row-local checks in their required order:
// expiry, global cap, minimum purchase. The first failure wins.
func (c *Coupon) ValidateRedeemable(now time.Time, subtotalCents int64) error {
	if now.After(c.expiresAt) {
		return ErrExpired
	}
	if c.maxUses > 0 && c.usedCount >= c.maxUses {
		return ErrGloballyExhausted
	}
	if subtotalCents < c.minPurchaseCents {
		return ErrBelowMinimumPurchase
	}
	return nil
}

func (c *Coupon) DiscountCents(subtotalCents int64) (int64, error) {
	return c.discount.AmountCents(subtotalCents)
}

func (c *Coupon) ID() uuid.UUID           { return c.id }
func (c *Coupon) Code() Code              { return c.code }
func (c *Coupon) Discount() Discount      { return c.discount }
func (c *Coupon) MinPurchaseCents() int64 { return c.minPurchaseCents }
func (c *Coupon) ExpiresAt() time.Time    { return c.expiresAt }
func (c *Coupon) MaxUses() int32          { return c.maxUses }
func (c *Coupon) UsedCount() int32        { return c.usedCount }
func (c *Coupon) IsPublic() bool          { return c.isPublic }
func (c *Coupon) UsesPerUser() int32      { return c.usesPerUser }
func (c *Coupon) CreatedAt() time.Time    { return c.createdAt }
