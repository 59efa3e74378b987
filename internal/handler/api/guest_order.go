package api

import (
	"net/http"

	reqdto "shop-orders/internal/handler/dto/request"
	resdto "shop-orders/internal/handler/dto/response"
	"shop-orders/internal/handler/middleware"
	"shop-orders/internal/usecase/commands"
	"shop-orders/internal/usecase/queries"
	"shop-orders/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GuestOrderHandler serves checkout without an account. All operations are
// scoped to the caller-generated session id carried in X-Session-ID.
type GuestOrderHandler struct {
	orderCommands commands.OrderCommands
	orderQueries  queries.OrderQueries
}

func NewGuestOrderHandler(orderCommands commands.OrderCommands, orderQueries queries.OrderQueries) *GuestOrderHandler {
	return &GuestOrderHandler{
		orderCommands: orderCommands,
		orderQueries:  orderQueries,
	}
}

func (h *GuestOrderHandler) PlaceOrder(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.PlaceGuestOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	placed, err := h.orderCommands.PlaceOrder(c.Request.Context(), req.ToCommand(sessionID))
	middleware.RecordOrderOperation("place_guest", err == nil)
	if err != nil {
		writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPlacedOrder(placed))
}

func (h *GuestOrderHandler) GetOrders(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.orderQueries.ListGuestOrders(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderList(items))
}

func (h *GuestOrderHandler) GetOrder(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	view, err := h.orderQueries.GetGuestOrder(c.Request.Context(), sessionID, id)
	if err != nil {
		writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

func (h *GuestOrderHandler) CancelOrder(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	actor := commands.Actor{SessionID: &sessionID}

	err = h.orderCommands.CancelOrder(c.Request.Context(), shared.OrderRef{ID: id, Guest: true}, actor)
	middleware.RecordOrderOperation("cancel_guest", err == nil)
	if err != nil {
		writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
