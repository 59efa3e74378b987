package api

import (
	"errors"
	"net/http"

	"shop-orders/internal/usecase/commands"
	"shop-orders/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// writeCommandError maps usecase sentinels onto the HTTP surface: missing
// things are 404, contended business rules are 409, rejected inputs are 422,
// everything else is a 500 with no internals leaked. Business failures carry
// the check's message verbatim.
func writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, queries.ErrOrderNotFound),
		errors.Is(err, commands.ErrVariantNotFound),
		errors.Is(err, commands.ErrCouponNotFound),
		errors.Is(err, commands.ErrShippingProviderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, commands.ErrInsufficientStock),
		errors.Is(err, commands.ErrOrderNotCancellable),
		errors.Is(err, commands.ErrCouponExhausted),
		errors.Is(err, commands.ErrCouponPerUserLimit),
		errors.Is(err, commands.ErrVoucherAlreadyUsed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, commands.ErrCouponExpired),
		errors.Is(err, commands.ErrBelowMinimumPurchase),
		errors.Is(err, commands.ErrCouponMembersOnly),
		errors.Is(err, commands.ErrVoucherNotAssigned),
		errors.Is(err, commands.ErrCouponMisconfigured),
		errors.Is(err, commands.ErrInvalidOrderInput),
		errors.Is(err, commands.ErrInvalidPaymentOutcome):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
