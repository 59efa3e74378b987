package response

import (
	"time"

	"shop-orders/internal/domain/order"
	"shop-orders/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderLineResponse struct {
	VariantID      uuid.UUID `json:"variantId"`
	SKU            string    `json:"sku,omitempty"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
}

type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	IsGuest            bool                `json:"isGuest"`
	UserID             *uuid.UUID          `json:"userId,omitempty"`
	GuestEmail         *string             `json:"guestEmail,omitempty"`
	GuestFullName      *string             `json:"guestFullName,omitempty"`
	SubtotalCents      int64               `json:"subtotalCents"`
	ShippingFeeCents   int64               `json:"shippingFeeCents"`
	DiscountCents      int64               `json:"discountCents"`
	TotalCents         int64               `json:"totalCents"`
	CouponCode         *string             `json:"couponCode,omitempty"`
	PaymentMethod      string              `json:"paymentMethod"`
	PaymentStatus      string              `json:"paymentStatus"`
	PaymentTxnRef      *string             `json:"paymentTxnRef,omitempty"`
	PaidAt             *time.Time          `json:"paidAt,omitempty"`
	Status             string              `json:"status"`
	ShippingProviderID *uuid.UUID          `json:"shippingProviderId,omitempty"`
	Lines              []OrderLineResponse `json:"lines"`
	CreatedAt          time.Time           `json:"createdAt"`
}

type OrderListResponse struct {
	ID            uuid.UUID `json:"id"`
	TotalCents    int64     `json:"totalCents"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	LineCount     int32     `json:"lineCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromOrderView(view *queries.OrderView) *OrderResponse {
	var resp OrderResponse
	// Field names line up between the read model and the response shape.
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromOrderListItem(item *queries.OrderListItem) *OrderListResponse {
	var resp OrderListResponse
	_ = copier.Copy(&resp, item)
	return &resp
}

func FromOrderList(items []*queries.OrderListItem) []*OrderListResponse {
	resp := make([]*OrderListResponse, len(items))
	for i, item := range items {
		resp[i] = FromOrderListItem(item)
	}
	return resp
}

// FromPlacedOrder builds the creation response straight from the aggregate;
// the read model may lag a follow-up query, the aggregate never does.
func FromPlacedOrder(o *order.Order) *OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines()))
	for i, line := range o.Lines() {
		lines[i] = OrderLineResponse{
			VariantID:      line.VariantID(),
			Quantity:       line.Quantity(),
			UnitPriceCents: line.UnitPriceCents(),
		}
	}

	resp := &OrderResponse{
		ID:                 o.ID(),
		IsGuest:            o.IsGuest(),
		UserID:             o.UserID(),
		SubtotalCents:      o.SubtotalCents(),
		ShippingFeeCents:   o.ShippingFeeCents(),
		DiscountCents:      o.DiscountCents(),
		TotalCents:         o.TotalCents(),
		CouponCode:         o.CouponCode(),
		PaymentMethod:      string(o.PaymentMethod()),
		PaymentStatus:      o.PaymentStatus().String(),
		Status:             o.Status().String(),
		ShippingProviderID: o.ShippingProviderID(),
		Lines:              lines,
		CreatedAt:          o.CreatedAt(),
	}
	if g := o.Guest(); g != nil {
		email, name := g.Email, g.FullName
		resp.GuestEmail = &email
		resp.GuestFullName = &name
	}
	return resp
}
