package request

import (
	"github.com/google/uuid"
)

// PaymentCallbackRequest is the outcome report from the payment collaborator.
// The signature has already been verified upstream.
type PaymentCallbackRequest struct {
	OrderID        uuid.UUID `json:"order_id" binding:"required"`
	Outcome        string    `json:"outcome" binding:"required,oneof=paid failed"`
	ExternalTxnRef string    `json:"external_txn_ref" binding:"required"`
}
