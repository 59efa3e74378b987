package order

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the order lifecycle: Pending → Confirmed|Cancelled,
// Confirmed → Shipped → Delivered. Delivered and Cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusDelivered
	default:
		return false
	}
}

func (s Status) IsCancellable() bool {
	return s == StatusPending
}

// PaymentStatus is an independent axis from Status: resolved exactly once by
// the payment collaborator, and only while still pending.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsResolved() bool {
	return p == PaymentPaid || p == PaymentFailed
}

type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "cod"
	PaymentMethodGateway PaymentMethod = "gateway"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodGateway:
		return true
	default:
		return false
	}
}

// Source distinguishes a checkout from the persistent cart, whose lines must
// be removed after placement, from an ephemeral buy-now flow.
type Source string

const (
	SourceCart   Source = "cart"
	SourceBuyNow Source = "buy_now"
)

func (s Source) IsValid() bool {
	return s == SourceCart || s == SourceBuyNow
}
