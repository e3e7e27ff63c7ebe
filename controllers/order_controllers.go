package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/services"
	"github.com/yeremiapane/pos-engine/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GetAllOrders -> list orders with items, newest first
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Orders.List(c.Query("status"), c.Query("type"), 100)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	order, err := oc.Orders.Get(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> open a new order (status='open'), occupying the table for
// dine-in
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ReqBody struct {
		Type            string `json:"type" binding:"required"`
		TableID         *uint  `json:"table_id"`
		GuestCount      int    `json:"guest_count"`
		Notes           string `json:"notes"`
		DeliveryAddress string `json:"delivery_address"`
		DeliveryContact string `json:"delivery_contact"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	serverID, _ := actor(c)
	order, err := oc.Orders.CreateOrder(services.CreateOrderInput{
		Type:            models.OrderType(body.Type),
		TableID:         body.TableID,
		ServerID:        serverID,
		GuestCount:      body.GuestCount,
		Notes:           body.Notes,
		DeliveryAddress: body.DeliveryAddress,
		DeliveryContact: body.DeliveryContact,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrder -> edit order-level fields (discount, notes, guest count)
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	type ReqBody struct {
		Discount   *float64 `json:"discount"`
		Notes      *string  `json:"notes"`
		GuestCount *int     `json:"guest_count"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	order, err := oc.Orders.UpdateOrder(orderID, services.UpdateOrderInput{
		Discount:   body.Discount,
		Notes:      body.Notes,
		GuestCount: body.GuestCount,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

func (oc *OrderController) AddItem(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	type ReqBody struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required"`
		Notes      string `json:"notes"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	item, order, err := oc.Orders.AddItem(orderID, body.MenuItemID, body.Quantity, body.Notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added", gin.H{
		"item":     item,
		"subtotal": order.Subtotal,
		"tax":      order.Tax,
		"total":    order.Total,
	})
}

func (oc *OrderController) UpdateItem(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	itemID, err := paramUint(c, "item_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	type ReqBody struct {
		Quantity *int    `json:"quantity"`
		Notes    *string `json:"notes"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	item, order, err := oc.Orders.UpdateItem(orderID, itemID, body.Quantity, body.Notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item updated", gin.H{
		"item":     item,
		"subtotal": order.Subtotal,
		"tax":      order.Tax,
		"total":    order.Total,
	})
}

func (oc *OrderController) RemoveItem(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	itemID, err := paramUint(c, "item_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	order, err := oc.Orders.RemoveItem(orderID, itemID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", gin.H{
		"subtotal": order.Subtotal,
		"tax":      order.Tax,
		"total":    order.Total,
	})
}

// SendToKitchen -> flush pending items; repeat calls are harmless
func (oc *OrderController) SendToKitchen(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	count, err := oc.Orders.SendToKitchen(orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sent to kitchen", gin.H{"count_sent": count})
}

func (oc *OrderController) VoidOrder(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	type ReqBody struct {
		Reason string `json:"reason" binding:"required"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperr.Validationf("a void reason is required"))
		return
	}

	order, err := oc.Orders.VoidOrder(orderID, body.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order voided", order)
}

// UpdateStatus -> kitchen progress (preparing/ready/served)
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	type ReqBody struct {
		Status string `json:"status" binding:"required"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	order, err := oc.Orders.Progress(orderID, models.OrderStatus(body.Status))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
