package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
)

func GetOrders(c *gin.Context) {
	orders, err := api.ListOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func GetOrder(c *gin.Context) {
	order, err := api.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err, "Failed to load order")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// CancelOrder cancels a PENDING order. Later statuses are rejected locally
// before the backend is asked.
func CancelOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	ctx := c.Request.Context()

	var req models.CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
				{Field: "body", Message: err.Error(), Code: "json_parse_error"},
			}))
			return
		}
	}

	order, err := api.GetOrder(ctx, orderID)
	if err != nil {
		respondError(c, err, "Failed to load order")
		return
	}
	if !order.CanCancel() {
		c.JSON(http.StatusConflict, global.ErrorResponse("This order can no longer be canceled", nil))
		return
	}

	canceled, err := api.CancelOrder(ctx, orderID, &req)
	if err != nil {
		respondError(c, err, "Failed to cancel order")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(canceled))
}

func ConfirmOrderReceived(c *gin.Context) {
	order, err := api.ConfirmOrderReceived(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err, "Failed to confirm delivery")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}
