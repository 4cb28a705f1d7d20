package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/middlewares"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

type createOrderRequest struct {
	CustomerName string `json:"customer_name"`
	TableNumber  string `json:"table_number"`
	Items        []struct {
		MenuItemID uint `json:"menu_item_id"`
		Quantity   int  `json:"quantity"`
	} `json:"items"`
	Notes *string `json:"notes"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.Orders.GetOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := idParam(c, "order_id")
	if !ok {
		return
	}
	order, err := oc.Orders.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> POST /orders. A "total" in the body is ignored.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	in := services.CreateOrderInput{
		CustomerName: req.CustomerName,
		TableNumber:  req.TableNumber,
		Notes:        req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, services.OrderItemInput{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}

	order, err := oc.Orders.CreateOrder(c.Request.Context(), middlewares.GetCaller(c), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "order_id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateOrderStatus(c.Request.Context(), middlewares.GetCaller(c), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (oc *OrderController) UpdatePaymentStatus(c *gin.Context) {
	id, ok := idParam(c, "order_id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdatePaymentStatus(c.Request.Context(), middlewares.GetCaller(c), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status updated", order)
}

func (oc *OrderController) ClearCompletedOrders(c *gin.Context) {
	removed, err := oc.Orders.ClearCompletedOrders(c.Request.Context(), middlewares.GetCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Completed orders cleared", gin.H{"removed": removed})
}

// KitchenQueue -> GET /kitchen/orders
func (oc *OrderController) KitchenQueue(c *gin.Context) {
	orders, err := oc.Orders.KitchenQueue(c.Request.Context(), middlewares.GetCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen queue", orders)
}

// WaiterBoard -> GET /waiter/orders
func (oc *OrderController) WaiterBoard(c *gin.Context) {
	board, err := oc.Orders.WaiterBoard(c.Request.Context(), middlewares.GetCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter board", board)
}
