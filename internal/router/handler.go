package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
)

func HealthCheck(c *gin.Context) {
	if err := database.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

// GetSessionState returns the hydrated session in one round trip: selection,
// voucher and cached cart. The storefront calls this on page load.
func GetSessionState(c *gin.Context) {
	state, err := sessions.Hydrate(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Failed to load session state")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(state))
}

// TeardownSession drops every Redis key owned by the session. Called on
// logout so no selection, voucher or cached cart outlives the shopper.
func TeardownSession(c *gin.Context) {
	sid := sessionID(c)
	if err := sessions.Teardown(c.Request.Context(), sid); err != nil {
		log.Printf("Error tearing down session %s: %v", sid, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to clear session", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "cleared"}))
}

// respondError maps a classified error to a status code and surfaces the
// backend's message verbatim when one was carried over.
func respondError(c *gin.Context, err error, fallback string) {
	c.JSON(global.HTTPStatus(err), global.ErrorResponse(global.UserMessage(err, fallback), nil))
}

// loadCart serves the cached snapshot when present, otherwise fetches from
// the commerce backend and refreshes the cache.
func loadCart(c *gin.Context) (*models.Cart, error) {
	ctx := c.Request.Context()
	sid := sessionID(c)

	if cached, err := sessions.GetCachedCart(ctx, sid); err == nil && cached != nil {
		c.Header("X-Cache", "HIT")
		return cached, nil
	}

	cart, err := api.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if cacheErr := sessions.SaveCachedCart(ctx, sid, cart); cacheErr != nil {
		log.Printf("Warning: Failed to cache cart in Redis: %v", cacheErr)
	}
	c.Header("X-Cache", "MISS")
	return cart, nil
}
