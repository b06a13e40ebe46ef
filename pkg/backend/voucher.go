package backend

import (
	"context"
	"net/http"

	"github.com/vovantri123/glamora-store-api/pkg/models"
)

// ValidateVoucher asks the backend to validate a code against the subtotal
// of the selected items. The discount in the response is authoritative; it
// is never recomputed on this side.
func (c *Client) ValidateVoucher(ctx context.Context, req *models.ValidateVoucherRequest) (*models.VoucherApplication, error) {
	var applied models.VoucherApplication
	if err := c.do(ctx, http.MethodPost, "/api/vouchers/validate", req, &applied); err != nil {
		return nil, err
	}
	applied.Code = req.Code
	return &applied, nil
}
