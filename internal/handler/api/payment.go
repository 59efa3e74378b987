package api

import (
	"net/http"

	"shop-orders/internal/domain/order"
	reqdto "shop-orders/internal/handler/dto/request"
	resdto "shop-orders/internal/handler/dto/response"
	"shop-orders/internal/handler/middleware"
	"shop-orders/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
	}
}

// Callback applies a verified payment outcome. Replays of the same callback
// return 200 with alreadyConfirmed set, so the gateway can retry safely.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req reqdto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.paymentCommands.Confirm(
		c.Request.Context(),
		req.OrderID,
		order.PaymentStatus(req.Outcome),
		req.ExternalTxnRef,
	)
	middleware.RecordOrderOperation("confirm_payment", err == nil)
	if err != nil {
		writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromConfirmPaymentResult(result))
}
