package api

import (
	"net/http"

	reqdto "shop-orders/internal/handler/dto/request"
	resdto "shop-orders/internal/handler/dto/response"
	"shop-orders/internal/handler/middleware"
	"shop-orders/internal/usecase/commands"
	"shop-orders/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CouponHandler struct {
	couponCommands commands.CouponCommands
	couponQueries  queries.CouponQueries
}

func NewCouponHandler(couponCommands commands.CouponCommands, couponQueries queries.CouponQueries) *CouponHandler {
	return &CouponHandler{
		couponCommands: couponCommands,
		couponQueries:  couponQueries,
	}
}

func (h *CouponHandler) GetCoupons(c *gin.Context) {
	views, err := h.couponQueries.ListAvailable(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCouponList(views))
}

func (h *CouponHandler) GetVouchers(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.couponQueries.Wallet(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromVoucherList(views))
}

// ValidateCoupon is the advisory pre-check for checkout UX. A green answer
// here is not a reservation; placement re-evaluates under lock.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	ev, err := h.couponCommands.Validate(c.Request.Context(), req.Code, req.SubtotalCents, userID)
	if err != nil {
		writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromEvaluation(ev))
}
