package coupon

import (
	"errors"
	"math"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode     = errors.New("invalid coupon code format")
	ErrInvalidDiscountValue  = errors.New("discount value cannot be negative")
	ErrInvalidPercentValue   = errors.New("percentage discount must be between 0 and 100")
	ErrUnknownDiscountType   = errors.New("unknown discount type")
	ErrNegativeSubtotal      = errors.New("subtotal cannot be negative")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercent     DiscountType = "percent"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountPercent, DiscountFixedAmount:
		return true
	default:
		return false
	}
}

type Discount struct {
	kind  DiscountType
	value int64
}

func NewDiscount(kind DiscountType, value int64) (Discount, error) {
	if !kind.IsValid() {
		return Discount{}, ErrUnknownDiscountType
	}
	if value < 0 {
		return Discount{}, ErrInvalidDiscountValue
	}
	if kind == DiscountPercent && value > 100 {
		return Discount{}, ErrInvalidPercentValue
	}
	return Discount{kind: kind, value: value}, nil
}

func (d Discount) Type() DiscountType { return d.kind }
func (d Discount) Value() int64       { return d.value }

// AmountCents computes the discount for a goods subtotal. A fixed discount
// never exceeds the subtotal; a percent discount is rounded half away from
// zero.
func (d Discount) AmountCents(subtotalCents int64) (int64, error) {
	if subtotalCents < 0 {
		return 0, ErrNegativeSubtotal
	}
	switch d.kind {
	case DiscountPercent:
		return int64(math.Round(float64(subtotalCents) * float64(d.value) / 100.0)), nil
	case DiscountFixedAmount:
		if d.value > subtotalCents {
			return subtotalCents, nil
		}
		return d.value, nil
	default:
		return 0, ErrUnknownDiscountType
	}
}
