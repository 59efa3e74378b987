package response

import (
	"shop-orders/internal/usecase/commands"

	"github.com/google/uuid"
)

type PaymentCallbackResponse struct {
	OrderID          uuid.UUID `json:"orderId"`
	IsGuest          bool      `json:"isGuest"`
	Applied          bool      `json:"applied"`
	AlreadyConfirmed bool      `json:"alreadyConfirmed"`
}

func FromConfirmPaymentResult(result *commands.ConfirmPaymentResult) *PaymentCallbackResponse {
	return &PaymentCallbackResponse{
		OrderID:          result.Ref.ID,
		IsGuest:          result.Ref.Guest,
		Applied:          result.Applied,
		AlreadyConfirmed: result.AlreadyConfirmed,
	}
}
