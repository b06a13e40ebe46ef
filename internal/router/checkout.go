package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
)

// PlaceOrder runs one checkout attempt. The response always carries a
// navigation directive: order confirmation, gateway redirect, or the order
// detail view when the payment leg failed after the order was created.
func PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid checkout request", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	result, err := orchestrator.PlaceOrder(c.Request.Context(), sessionID(c), &req)
	if err != nil {
		respondError(c, err, "We couldn't place your order. Please try again.")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

// GetCheckoutStatus reports whether an attempt is currently running for this
// session. The storefront polls this to keep the cart-empty watcher quiet
// while a payment is in flight.
func GetCheckoutStatus(c *gin.Context) {
	inFlight, err := sessions.CheckoutInFlight(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Failed to read checkout status")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]bool{"in_flight": inFlight}))
}

type retryPaymentRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
}

// RetryPayment re-runs the payment leg for a PENDING order, optionally with
// a different payment method. The order itself is never recreated.
func RetryPayment(c *gin.Context) {
	orderID := c.Param("orderId")

	var req retryPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
				{Field: "body", Message: err.Error(), Code: "json_parse_error"},
			}))
			return
		}
	}

	result, err := orchestrator.RetryPayment(c.Request.Context(), sessionID(c), orderID, req.PaymentMethodID)
	if err != nil {
		respondError(c, err, "Failed to retry payment")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

// GetCheckoutAttempts lists the session's journaled attempts, newest first.
func GetCheckoutAttempts(c *gin.Context) {
	attempts, err := journal.ListBySession(c.Request.Context(), sessionID(c), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load checkout attempts", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(attempts))
}

// paymentResultView combines the authoritative order with the journaled
// attempt that produced it.
type paymentResultView struct {
	Order      *models.Order `json:"order"`
	State      string        `json:"state,omitempty"`
	NavigateTo string        `json:"navigate_to,omitempty"`
	Message    string        `json:"message,omitempty"`
}

// GetPaymentResult serves the landing view after a gateway return. The order
// is re-fetched so the displayed status is the backend's, not a stale guess,
// and any leftover checkout flag from the redirect is released.
func GetPaymentResult(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("order_id query parameter required", []global.ValidationError{
			{Field: "order_id", Message: "order_id query parameter is required", Code: "required"},
		}))
		return
	}

	ctx := c.Request.Context()
	sid := sessionID(c)

	order, err := api.GetOrder(ctx, orderID)
	if err != nil {
		respondError(c, err, "Failed to load order")
		return
	}

	view := paymentResultView{Order: order}
	if attempt, err := journal.FindByOrderID(ctx, orderID); err == nil && attempt != nil {
		view.State = attempt.State
		view.NavigateTo = attempt.NavigateTo
		view.Message = attempt.FailureMessage
	}

	// The shopper came back from the gateway; whatever attempt flag is still
	// set belongs to a journey that has ended, and the cached cart predates
	// the payment.
	if err := sessions.EndCheckout(ctx, sid); err != nil {
		log.Printf("Warning: failed to release checkout flag for session %s: %v", sid, err)
	}
	if err := sessions.InvalidateCart(ctx, sid); err != nil {
		log.Printf("Warning: failed to invalidate cart cache for session %s: %v", sid, err)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(view))
}
