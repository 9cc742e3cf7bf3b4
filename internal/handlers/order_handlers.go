package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/vegshop-golang/internal/models"
	"github.com/01moynul/vegshop-golang/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//
// --- Order Handlers ---
//

// OrderItemInput is one line of a new order.
type OrderItemInput struct {
	ID       string           `json:"id" binding:"required"`
	Name     string           `json:"name" binding:"required"`
	Quantity int              `json:"quantity" binding:"required,gt=0,lte=10000"`
	Weight   *models.Weight   `json:"weight" binding:"required"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

// PlaceOrderInput defines the JSON input for POST /api/orders.
type PlaceOrderInput struct {
	CustomerName    string               `json:"customer_name" binding:"required"`
	CustomerMobile  string               `json:"customer_mobile" binding:"required"`
	CustomerAddress string               `json:"customer_address" binding:"required"`
	Items           []OrderItemInput     `json:"items" binding:"required,min=1,dive"`
	TotalAmount     *decimal.Decimal     `json:"total_amount" binding:"required"`
	Status          models.OrderStatus   `json:"status" binding:"omitempty,order_status"`
	PaymentStatus   models.PaymentStatus `json:"payment_status" binding:"omitempty,payment_status"`
}

// UpdateOrderInput is a partial update; absent fields are left alone.
type UpdateOrderInput struct {
	Status        *models.OrderStatus   `json:"status" binding:"omitnil,order_status"`
	PaymentStatus *models.PaymentStatus `json:"payment_status" binding:"omitnil,payment_status"`
}

func (in PlaceOrderInput) toOrder() *models.Order {
	items := make(models.OrderItems, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, models.OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Weight:   *it.Weight,
			Price:    it.Price,
		})
	}

	order := &models.Order{
		CustomerName:    in.CustomerName,
		CustomerMobile:  in.CustomerMobile,
		CustomerAddress: in.CustomerAddress,
		Items:           items,
		TotalAmount:     *in.TotalAmount,
		Status:          in.Status,
		PaymentStatus:   in.PaymentStatus,
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentUnpaid
	}
	return order
}

// parseOrderID reads the :id path parameter, answering 400 itself when it
// is not a positive integer.
func parseOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}
	return id, true
}

// PlaceOrder is the handler for POST /api/orders
func (h *Handlers) PlaceOrder(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if input.TotalAmount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "total_amount must not be negative"})
		return
	}

	// 2. --- Create Order & Deduct Stock (one transaction) ---
	order := input.toOrder()
	order.Timestamp = h.now()
	if _, err := models.PlanDeductions(order.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, err := h.Orders.Place(c.Request.Context(), order)
	if err != nil {
		var stockErr *repository.InsufficientStockError
		if errors.As(err, &stockErr) {
			h.Log.Warn().Str("vegetable_id", stockErr.VegetableID).Stringer("requested", stockErr.Requested).Msg("order rejected: insufficient stock")
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock for " + stockErr.VegetableID})
			return
		}
		h.Log.Error().Err(err).Msg("place order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	h.Log.Info().
		Int64("order_id", orderID).
		Str("customer_name", order.CustomerName).
		Int("items", len(order.Items)).
		Str("total_amount", order.TotalAmount.String()).
		Msg("new order received")

	// 3. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order placed successfully",
		"order_id": orderID,
	})
}

// ListOrders is the handler for GET /api/orders
func (h *Handlers) ListOrders(c *gin.Context) {
	orders, err := h.Orders.List(c.Request.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder is the handler for GET /api/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.Orders.Get(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		h.Log.Error().Err(err).Int64("order_id", orderID).Msg("get order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder is the handler for PUT /api/orders/:id
// It changes status and/or payment_status. An unknown id, or a body with
// neither field, is still reported as success.
func (h *Handlers) UpdateOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	update := models.StatusUpdate{Status: input.Status, PaymentStatus: input.PaymentStatus}
	if err := h.Orders.UpdateStatus(c.Request.Context(), orderID, update); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			h.Log.Warn().Err(err).Int64("order_id", orderID).Msg("order update rejected")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error().Err(err).Int64("order_id", orderID).Msg("update order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully"})
}
