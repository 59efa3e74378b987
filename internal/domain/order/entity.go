package order

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoLines              = errors.New("order must contain at least one line")
	ErrInvalidQuantity      = errors.New("line quantity must be at least 1")
	ErrNegativeUnitPrice    = errors.New("line unit price cannot be negative")
	ErrNegativeShippingFee  = errors.New("shipping fee cannot be negative")
	ErrDiscountExceedsGoods = errors.New("discount cannot exceed the goods subtotal")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingGuestContact  = errors.New("guest contact is incomplete")
	ErrNotCancellable       = errors.New("only a pending order can be cancelled")
)

// Line is an immutable snapshot of a variant at purchase time. The unit price
// is the one the caller priced the cart with; it is never re-read later.
type Line struct {
	variantID      uuid.UUID
	quantity       int32
	unitPriceCents int64
}

func NewLine(variantID uuid.UUID, quantity int32, unitPriceCents int64) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}
	if unitPriceCents < 0 {
		return Line{}, ErrNegativeUnitPrice
	}
	return Line{
		variantID:      variantID,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
	}, nil
}

func (l Line) VariantID() uuid.UUID  { return l.variantID }
func (l Line) Quantity() int32       { return l.quantity }
func (l Line) UnitPriceCents() int64 { return l.unitPriceCents }

type Lines []Line

func NewLines(lines []Line) (Lines, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	return Lines(lines), nil
}

func (ls Lines) SubtotalCents() int64 {
	var total int64
	for _, l := range ls {
		total += int64(l.quantity) * l.unitPriceCents
	}
	return total
}

func (ls Lines) VariantIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(ls))
	for i, l := range ls {
		ids[i] = l.variantID
	}
	return ids
}

type GuestContact struct {
	Email     string
	FullName  string
	Phone     string
	Address   string
	SessionID string
}

func (g GuestContact) validate() error {
	if strings.TrimSpace(g.Email) == "" ||
		strings.TrimSpace(g.FullName) == "" ||
		strings.TrimSpace(g.Address) == "" ||
		strings.TrimSpace(g.SessionID) == "" {
		return ErrMissingGuestContact
	}
	return nil
}

// Order is the persisted aggregate for both member and guest orders; the two
// differ only in owner identity (userID XOR guest contact).
type Order struct {
	id                 uuid.UUID
	userID             *uuid.UUID
	guest              *GuestContact
	lines              Lines
	subtotalCents      int64
	shippingFeeCents   int64
	discountCents      int64
	totalCents         int64
	couponCode         *string
	paymentMethod      PaymentMethod
	paymentStatus      PaymentStatus
	status             Status
	shippingProviderID *uuid.UUID
	createdAt          time.Time
}

func NewMemberOrder(
	userID uuid.UUID,
	lines Lines,
	shippingFeeCents int64,
	discountCents int64,
	couponCode *string,
	method PaymentMethod,
	shippingProviderID *uuid.UUID,
	createdAt time.Time,
) (*Order, error) {
	o, err := newOrder(lines, shippingFeeCents, discountCents, couponCode, method, shippingProviderID, createdAt)
	if err != nil {
		return nil, err
	}
	o.userID = &userID
	return o, nil
}

func NewGuestOrder(
	contact GuestContact,
	lines Lines,
	shippingFeeCents int64,
	discountCents int64,
	couponCode *string,
	method PaymentMethod,
	shippingProviderID *uuid.UUID,
	createdAt time.Time,
) (*Order, error) {
	if err := contact.validate(); err != nil {
		return nil, err
	}
	o, err := newOrder(lines, shippingFeeCents, discountCents, couponCode, method, shippingProviderID, createdAt)
	if err != nil {
		return nil, err
	}
	o.guest = &contact
	return o, nil
}

func newOrder(
	lines Lines,
	shippingFeeCents int64,
	discountCents int64,
	couponCode *string,
	method PaymentMethod,
	shippingProviderID *uuid.UUID,
	createdAt time.Time,
) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	if shippingFeeCents < 0 {
		return nil, ErrNegativeShippingFee
	}
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	subtotal := lines.SubtotalCents()
	if discountCents < 0 || discountCents > subtotal {
		// The evaluator clamps fixed discounts to the subtotal, so the total
		// can never go negative here.
		return nil, ErrDiscountExceedsGoods
	}

	return &Order{
		id:                 uuid.New(),
		lines:              lines,
		subtotalCents:      subtotal,
		shippingFeeCents:   shippingFeeCents,
		discountCents:      discountCents,
		totalCents:         subtotal + shippingFeeCents - discountCents,
		couponCode:         couponCode,
		paymentMethod:      method,
		paymentStatus:      PaymentPending,
		status:             StatusPending,
		shippingProviderID: shippingProviderID,
		createdAt:          createdAt,
	}, nil
}

func (o *Order) IsGuest() bool {
	return o.guest != nil
}

func (o *Order) ID() uuid.UUID                  { return o.id }
func (o *Order) UserID() *uuid.UUID             { return o.userID }
func (o *Order) Guest() *GuestContact           { return o.guest }
func (o *Order) Lines() Lines                   { return o.lines }
func (o *Order) SubtotalCents() int64           { return o.subtotalCents }
func (o *Order) ShippingFeeCents() int64        { return o.shippingFeeCents }
func (o *Order) DiscountCents() int64           { return o.discountCents }
func (o *Order) TotalCents() int64              { return o.totalCents }
func (o *Order) CouponCode() *string            { return o.couponCode }
func (o *Order) PaymentMethod() PaymentMethod   { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus   { return o.paymentStatus }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) ShippingProviderID() *uuid.UUID { return o.shippingProviderID }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
