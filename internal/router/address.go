package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovantri123/glamora-store-api/pkg/geo"
	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
)

func GetAddresses(c *gin.Context) {
	addresses, err := api.ListAddresses(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load addresses")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(addresses))
}

func GetDefaultAddress(c *gin.Context) {
	address, err := api.GetDefaultAddress(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load default address")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(address))
}

// GetShippingPreview estimates the shipping fee for an address from its
// distance to the store. This is a display-only estimate; the fee the order
// actually carries is confirmed by the backend at order creation.
func GetShippingPreview(c *gin.Context) {
	address, err := api.GetAddress(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load address")
		return
	}

	preview := models.ShippingPreview{AddressID: address.ID}
	if address.HasCoordinates() {
		preview.DistanceKm = geo.Distance(geo.StoreLocation(), geo.Point{
			Latitude:  *address.Latitude,
			Longitude: *address.Longitude,
		})
	}
	preview.EstimatedShippingFee = geo.EstimateShippingFee(preview.DistanceKm)

	c.JSON(http.StatusOK, global.SuccessResponse(preview))
}

func GetPaymentMethods(c *gin.Context) {
	methods, err := api.ListPaymentMethods(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load payment methods")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(methods))
}
