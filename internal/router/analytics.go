package router

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vovantri123/glamora-store-api/pkg/global"
)

// GetCheckoutFunnel aggregates journaled attempts into a per-day funnel:
// started, finalized, gateway redirects and failures.
func GetCheckoutFunnel(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 90 {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("days must be between 1 and 90", []global.ValidationError{
				{Field: "days", Message: "days must be an integer between 1 and 90", Code: "invalid_range"},
			}))
			return
		}
		days = parsed
	}

	funnel, err := journal.GetCheckoutFunnel(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to compute checkout funnel", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(funnel))
}
