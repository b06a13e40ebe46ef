package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
)

type toggleSelectionRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// selectionView is what every selection mutation returns: the resulting set
// and the subtotal recomputed exactly from the selected lines.
type selectionView struct {
	SelectedItemIDs  []string `json:"selected_item_ids"`
	SelectedSubtotal float64  `json:"selected_subtotal"`
}

func selectionResponse(cart *models.Cart, sel models.Selection) selectionView {
	return selectionView{
		SelectedItemIDs:  sel.IDs(),
		SelectedSubtotal: cart.SubtotalOf(sel.IDs()),
	}
}

func GetSelection(c *gin.Context) {
	cart, err := loadCart(c)
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}

	sel, err := sessions.GetSelection(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Failed to load selection")
		return
	}
	sel.Prune(cart.ItemIDs())

	c.JSON(http.StatusOK, global.SuccessResponse(selectionResponse(cart, sel)))
}

// ToggleSelection flips one item's membership: selected items are dropped,
// unselected ones are added. Toggling twice restores the original set.
func ToggleSelection(c *gin.Context) {
	var req toggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("item_id is required", []global.ValidationError{
			{Field: "item_id", Message: "item_id is required", Code: "required"},
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
	if cart.FindItem(req.ItemID) == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Cart item not found", nil))
		return
	}

	sel, err := sessions.GetSelection(ctx, sid)
	if err != nil {
		respondError(c, err, "Failed to load selection")
		return
	}
	sel.Prune(cart.ItemIDs())
	sel.Toggle(req.ItemID)

	if err := sessions.SaveSelection(ctx, sid, sel); err != nil {
		respondError(c, err, "Failed to save selection")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(selectionResponse(cart, sel)))
}

// SelectAllItems replaces the selection with every item currently in the
// cart.
func SelectAllItems(c *gin.Context) {
	ctx := c.Request.Context()
	sid := sessionID(c)

	cart, err := loadCart(c)
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}

	sel := models.NewSelection()
	sel.SelectAll(cart.ItemIDs())

	if err := sessions.SaveSelection(ctx, sid, sel); err != nil {
		respondError(c, err, "Failed to save selection")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(selectionResponse(cart, sel)))
}

func DeselectAllItems(c *gin.Context) {
	if err := sessions.ClearSelection(c.Request.Context(), sessionID(c)); err != nil {
		respondError(c, err, "Failed to clear selection")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(selectionView{SelectedItemIDs: []string{}}))
}
