package checkout

import (
	"context"
	"strings"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
)

// ApplyVoucher validates a code against the subtotal of the currently
// selected items and stores the application in the session. On backend
// rejection the previously applied voucher is left exactly as it was.
// Applying a new code replaces the old application wholesale; discounts
// never stack.
func (s *Service) ApplyVoucher(ctx context.Context, sessionID, code string) (*models.VoucherApplication, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, global.ValidationErrorf("Voucher code is required")
	}

	selection, err := s.session.GetSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	selection.Prune(cart.ItemIDs())

	orderAmount := cart.SubtotalOf(selection.IDs())
	if orderAmount <= 0 {
		return nil, global.ValidationErrorf("Select at least one item before applying a voucher")
	}

	applied, err := s.api.ValidateVoucher(ctx, &models.ValidateVoucherRequest{
		Code:        code,
		OrderAmount: orderAmount,
	})
	if err != nil {
		// No partial application: the session keeps whatever was applied
		// before, and the displayed totals don't move.
		return nil, err
	}

	if err := s.session.SaveVoucher(ctx, sessionID, applied); err != nil {
		return nil, err
	}
	return applied, nil
}

// RemoveVoucher clears code, voucher id and discount together.
func (s *Service) RemoveVoucher(ctx context.Context, sessionID string) error {
	return s.session.ClearVoucher(ctx, sessionID)
}
