//go:build unit

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-orders/internal/pkg/errs"
	"shop-orders/internal/usecase/commands"
	"shop-orders/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteCommandError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "order not found", err: commands.ErrOrderNotFound, wantStatus: http.StatusNotFound},
		{name: "query order not found", err: queries.ErrOrderNotFound, wantStatus: http.StatusNotFound},
		{name: "variant not found", err: commands.ErrVariantNotFound, wantStatus: http.StatusNotFound},
		{name: "coupon not found", err: commands.ErrCouponNotFound, wantStatus: http.StatusNotFound},
		{name: "shipping provider not found", err: commands.ErrShippingProviderNotFound, wantStatus: http.StatusNotFound},
		{name: "insufficient stock", err: commands.ErrInsufficientStock, wantStatus: http.StatusConflict},
		{name: "not cancellable", err: commands.ErrOrderNotCancellable, wantStatus: http.StatusConflict},
		{name: "coupon exhausted", err: commands.ErrCouponExhausted, wantStatus: http.StatusConflict},
		{name: "per-user limit", err: commands.ErrCouponPerUserLimit, wantStatus: http.StatusConflict},
		{name: "voucher already used", err: commands.ErrVoucherAlreadyUsed, wantStatus: http.StatusConflict},
		{name: "coupon expired", err: commands.ErrCouponExpired, wantStatus: http.StatusUnprocessableEntity},
		{name: "below minimum purchase", err: commands.ErrBelowMinimumPurchase, wantStatus: http.StatusUnprocessableEntity},
		{name: "members only", err: commands.ErrCouponMembersOnly, wantStatus: http.StatusUnprocessableEntity},
		{name: "voucher not assigned", err: commands.ErrVoucherNotAssigned, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid order input", err: commands.ErrInvalidOrderInput, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid payment outcome", err: commands.ErrInvalidPaymentOutcome, wantStatus: http.StatusUnprocessableEntity},
		{name: "unclassified error", err: errs.New("pool exhausted"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			writeCommandError(c, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus != http.StatusInternalServerError {
				assert.Contains(t, rec.Body.String(), tc.err.Error())
			} else {
				// Internals never leak to the client.
				assert.NotContains(t, rec.Body.String(), "pool exhausted")
			}
		})
	}

	t.Run("marked business error keeps its specific message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		err := errs.Mark(errs.Newf("variant %s has insufficient stock", "SKU-9"), commands.ErrInsufficientStock)
		writeCommandError(c, err)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "SKU-9")
	})
}
