package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
	"github.com/vovantri123/glamora-store-api/pkg/optimistic"
)

// cartPatches tracks in-flight optimistic edits to cached cart snapshots so
// a failed backend write reverts only its own patch.
var cartPatches = optimistic.NewTracker[models.Cart]()

// CartView is the hydrated cart page state: the snapshot, the selection with
// its subtotal, the applied voucher and the checkout flag. RedirectHome is
// the cart-empty hint; it stays false while a checkout attempt is running so
// a mid-payment shopper is never bounced off the page.
type CartView struct {
	Cart             *models.Cart                `json:"cart"`
	SelectedItemIDs  []string                    `json:"selected_item_ids"`
	SelectedSubtotal float64                     `json:"selected_subtotal"`
	Voucher          *models.VoucherApplication  `json:"voucher,omitempty"`
	EstimatedTotal   float64                     `json:"estimated_total"`
	CheckoutInFlight bool                        `json:"checkout_in_flight"`
	RedirectHome     bool                        `json:"redirect_home"`
}

func buildCartView(c *gin.Context, cart *models.Cart) (*CartView, error) {
	ctx := c.Request.Context()
	sid := sessionID(c)

	selection, err := sessions.GetSelection(ctx, sid)
	if err != nil {
		return nil, err
	}
	selection.Prune(cart.ItemIDs())

	voucher, err := sessions.GetVoucher(ctx, sid)
	if err != nil {
		return nil, err
	}

	inFlight, err := sessions.CheckoutInFlight(ctx, sid)
	if err != nil {
		return nil, err
	}

	subtotal := cart.SubtotalOf(selection.IDs())
	total := subtotal
	if voucher.IsApplied() {
		total -= voucher.DiscountAmount
		if total < 0 {
			total = 0
		}
	}

	return &CartView{
		Cart:             cart,
		SelectedItemIDs:  selection.IDs(),
		SelectedSubtotal: subtotal,
		Voucher:          voucher,
		EstimatedTotal:   total,
		CheckoutInFlight: inFlight,
		RedirectHome:     len(cart.Items) == 0 && !inFlight,
	}, nil
}

func GetCartView(c *gin.Context) {
	cart, err := loadCart(c)
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}

	view, err := buildCartView(c, cart)
	if err != nil {
		log.Printf("Error building cart view: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

func AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	ctx := c.Request.Context()
	cart, err := api.AddCartItem(ctx, &req)
	if err != nil {
		respondError(c, err, "Failed to add item to cart")
		return
	}
	if cacheErr := sessions.SaveCachedCart(ctx, sessionID(c), cart); cacheErr != nil {
		log.Printf("Warning: Failed to refresh cart cache: %v", cacheErr)
	}

	view, err := buildCartView(c, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

// UpdateCartItem changes a line's quantity. The cached snapshot is patched
// optimistically before the backend write; a rejected write reverts the
// patch and restores the snapshot the shopper was looking at.
func UpdateCartItem(c *gin.Context) {
	itemID := c.Param("itemId")

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
			{Field: "quantity", Message: err.Error(), Code: "invalid_quantity"},
		}))
		return
	}

	ctx := c.Request.Context()
	sid := sessionID(c)

	cart, err := loadCart(c)
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}
	if cart.FindItem(itemID) == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Cart item not found", nil))
		return
	}

	prevItem := *cart.FindItem(itemID)
	opID := cartPatches.Stage(cart,
		func(cart *models.Cart) { setQuantity(cart, itemID, req.Quantity) },
		func(cart *models.Cart) { restoreItem(cart, prevItem) },
	)
	if cacheErr := sessions.SaveCachedCart(ctx, sid, cart); cacheErr != nil {
		log.Printf("Warning: Failed to write optimistic snapshot: %v", cacheErr)
	}

	updated, err := api.UpdateCartItem(ctx, itemID, &req)
	if err != nil {
		cartPatches.Revert(opID, cart)
		if cacheErr := sessions.SaveCachedCart(ctx, sid, cart); cacheErr != nil {
			log.Printf("Warning: Failed to restore snapshot after revert: %v", cacheErr)
		}
		respondError(c, err, "Failed to update cart item")
		return
	}
	cartPatches.Commit(opID)

	if cacheErr := sessions.SaveCachedCart(ctx, sid, updated); cacheErr != nil {
		log.Printf("Warning: Failed to refresh cart cache: %v", cacheErr)
	}

	view, err := buildCartView(c, updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

func RemoveCartItem(c *gin.Context) {
	itemID := c.Param("itemId")
	ctx := c.Request.Context()
	sid := sessionID(c)

	cart, err := api.RemoveCartItem(ctx, itemID)
	if err != nil {
		respondError(c, err, "Failed to remove cart item")
		return
	}
	if cacheErr := sessions.SaveCachedCart(ctx, sid, cart); cacheErr != nil {
		log.Printf("Warning: Failed to refresh cart cache: %v", cacheErr)
	}

	// Drop the removed line from the selection so the checkout subtotal
	// reflects the cart immediately.
	selection, err := sessions.GetSelection(ctx, sid)
	if err == nil && selection.Contains(itemID) {
		selection.Prune(cart.ItemIDs())
		if saveErr := sessions.SaveSelection(ctx, sid, selection); saveErr != nil {
			log.Printf("Warning: Failed to prune selection: %v", saveErr)
		}
	}

	view, err := buildCartView(c, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

// setQuantity adjusts one line and recomputes the aggregates from scratch.
// Quantity zero drops the line.
func setQuantity(cart *models.Cart, itemID string, quantity int) {
	if quantity == 0 {
		cart.RemoveItems([]string{itemID})
		return
	}
	if item := cart.FindItem(itemID); item != nil {
		item.Quantity = quantity
		item.Subtotal = item.UnitPrice * float64(quantity)
	}
	cart.RecalculateTotals()
}

// restoreItem is the inverse of setQuantity: it puts the captured line back,
// re-adding it if the patch had dropped it entirely.
func restoreItem(cart *models.Cart, prev models.CartItem) {
	if item := cart.FindItem(prev.ID); item != nil {
		*item = prev
	} else {
		cart.Items = append(cart.Items, prev)
	}
	cart.RecalculateTotals()
}
