package models

// VoucherApplication is the result of validating a voucher code against the
// subtotal of the currently selected items. The discount amount is derived
// server-side and attached to the order request verbatim; this service only
// displays it. At most one application exists per session, and the three
// fields always change together.
type VoucherApplication struct {
	Code           string  `json:"code" redis:"code"`
	VoucherID      string  `json:"voucher_id" redis:"voucher_id"`
	DiscountAmount float64 `json:"discount_amount" redis:"discount_amount"`
}

func (v *VoucherApplication) IsApplied() bool {
	return v != nil && v.VoucherID != ""
}

type ApplyVoucherRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateVoucherRequest is the payload sent to the backend validation
// endpoint.
type ValidateVoucherRequest struct {
	Code        string  `json:"code"`
	OrderAmount float64 `json:"order_amount"`
}
