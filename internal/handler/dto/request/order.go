package request

import (
	"strings"

	"shop-orders/internal/domain/order"
	"shop-orders/internal/usecase/commands"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	VariantID      uuid.UUID `json:"variant_id" binding:"required"`
	Quantity       int32     `json:"quantity" binding:"required,min=1"`
	UnitPriceCents int64     `json:"unit_price_cents" binding:"min=0"`
}

type PlaceOrderRequest struct {
	Items              []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode         *string            `json:"coupon_code,omitempty"`
	ShippingProviderID *uuid.UUID         `json:"shipping_provider_id,omitempty"`
	ShippingFeeCents   int64              `json:"shipping_fee_cents" binding:"min=0"`
	PaymentMethod      string             `json:"payment_method" binding:"required,oneof=cod gateway"`
	Source             string             `json:"source" binding:"required,oneof=cart buy_now"`
}

// GetCouponCode treats a blank code as no coupon; normalization of the code
// itself happens in the coupon evaluator.
func (r PlaceOrderRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r PlaceOrderRequest) ToCommand(userID uuid.UUID) commands.PlaceOrderInput {
	in := r.baseCommand()
	in.UserID = &userID
	return in
}

func (r PlaceOrderRequest) baseCommand() commands.PlaceOrderInput {
	items := make([]commands.LineInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = commands.LineInput{
			VariantID:      item.VariantID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}
	return commands.PlaceOrderInput{
		Items:              items,
		CouponCode:         r.GetCouponCode(),
		ShippingProviderID: r.ShippingProviderID,
		ShippingFeeCents:   r.ShippingFeeCents,
		PaymentMethod:      order.PaymentMethod(r.PaymentMethod),
		Source:             order.Source(r.Source),
	}
}

type GuestContactRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address" binding:"required"`
}

type PlaceGuestOrderRequest struct {
	PlaceOrderRequest
	Contact GuestContactRequest `json:"contact" binding:"required"`
}

func (r PlaceGuestOrderRequest) ToCommand(sessionID string) commands.PlaceOrderInput {
	in := r.baseCommand()
	in.Guest = &order.GuestContact{
		Email:     r.Contact.Email,
		FullName:  r.Contact.FullName,
		Phone:     r.Contact.Phone,
		Address:   r.Contact.Address,
		SessionID: sessionID,
	}
	return in
}
