package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
)

// ApplyVoucher validates the code against the selected subtotal and stores
// the server-derived discount. A rejected code leaves any previously applied
// voucher exactly as it was.
func ApplyVoucher(c *gin.Context) {
	var req models.ApplyVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Voucher code is required", []global.ValidationError{
			{Field: "code", Message: "code is required", Code: "required"},
		}))
		return
	}

	applied, err := orchestrator.ApplyVoucher(c.Request.Context(), sessionID(c), req.Code)
	if err != nil {
		respondError(c, err, "Failed to apply voucher")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(applied))
}

func RemoveVoucher(c *gin.Context) {
	if err := orchestrator.RemoveVoucher(c.Request.Context(), sessionID(c)); err != nil {
		respondError(c, err, "Failed to remove voucher")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "removed"}))
}
