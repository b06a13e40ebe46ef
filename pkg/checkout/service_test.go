package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
)

const sid = "sess-1"

func fixtureCart() *models.Cart {
	return &models.Cart{
		SessionID: sid,
		Items: []models.CartItem{
			{ID: "A", VariantID: "v-a", UnitPrice: 120000, Quantity: 1, Subtotal: 120000},
			{ID: "B", VariantID: "v-b", UnitPrice: 80000, Quantity: 2, Subtotal: 160000},
			{ID: "C", VariantID: "v-c", UnitPrice: 50000, Quantity: 3, Subtotal: 150000},
		},
		TotalItems:  6,
		TotalAmount: 430000,
	}
}

func codMethod() *models.PaymentMethod {
	return &models.PaymentMethod{ID: "pm-cod", Code: "cod", Name: "Cash on delivery", Kind: models.PaymentKindCOD}
}

func gatewayMethod() *models.PaymentMethod {
	return &models.PaymentMethod{ID: "pm-vnp", Code: "vnpay", Name: "VNPay", Kind: models.PaymentKindGateway}
}

func newFixture(api *MockAPI) (*Service, *MockSession, *MockJournal) {
	sess := NewMockSession()
	sess.Carts[sid] = fixtureCart()
	sess.Selections[sid] = models.NewSelection("A", "B")
	journal := &MockJournal{}
	return NewService(api, sess, journal), sess, journal
}

func TestPlaceOrder_NoAddressMakesNoBackendCall(t *testing.T) {
	api := &MockAPI{}
	svc, sess, _ := newFixture(api)

	result, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		PaymentMethodID: "pm-cod",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, global.KindValidation, global.KindOf(err))
	assert.Zero(t, api.CreateOrderCalls)
	assert.Zero(t, api.CreatePaymentCalls)

	// Local state is untouched and the in-flight flag is released.
	assert.ElementsMatch(t, []string{"A", "B"}, sess.Selections[sid].IDs())
	assert.False(t, sess.InFlight[sid])
}

func TestPlaceOrder_EmptySelectionMakesNoBackendCall(t *testing.T) {
	api := &MockAPI{}
	svc, sess, _ := newFixture(api)
	sess.Selections[sid] = models.NewSelection()

	_, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-cod",
	})

	require.Error(t, err)
	assert.Equal(t, global.KindValidation, global.KindOf(err))
	assert.Zero(t, api.CreateOrderCalls)
}

func TestPlaceOrder_SecondConcurrentAttemptIsRejected(t *testing.T) {
	api := &MockAPI{}
	svc, sess, _ := newFixture(api)
	sess.InFlight[sid] = true

	_, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-cod",
	})

	require.Error(t, err)
	assert.Equal(t, global.KindConflict, global.KindOf(err))
	assert.Zero(t, api.CreateOrderCalls)
	// The running attempt's flag is not stolen.
	assert.True(t, sess.InFlight[sid])
}

func TestPlaceOrder_OrderCreationFailureKeepsStateIntact(t *testing.T) {
	api := &MockAPI{
		Method:   codMethod(),
		OrderErr: global.NewError(global.KindValidation, "Variant v-b is out of stock"),
	}
	svc, sess, journal := newFixture(api)
	sess.Vouchers[sid] = &models.VoucherApplication{Code: "SALE10", VoucherID: "vch-1", DiscountAmount: 10000}

	result, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-cod",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	// Backend message surfaced verbatim.
	assert.Equal(t, "Variant v-b is out of stock", global.UserMessage(err, "generic"))
	assert.Equal(t, 1, api.CreateOrderCalls)
	assert.Zero(t, api.CreatePaymentCalls)

	// Selection, voucher and cart snapshot survive for the in-place retry.
	assert.ElementsMatch(t, []string{"A", "B"}, sess.Selections[sid].IDs())
	assert.Equal(t, "vch-1", sess.Vouchers[sid].VoucherID)
	assert.Len(t, sess.Carts[sid].Items, 3)
	assert.Equal(t, models.CheckoutStateFailed, journal.FinalState)
}

func TestPlaceOrder_PayloadContainsOnlySelectedItemsAndVerbatimVoucher(t *testing.T) {
	api := &MockAPI{
		Method:  codMethod(),
		Order:   &models.Order{ID: "o-1", Code: "GLM-0001", Status: models.OrderStatusPending},
		Payment: &models.Payment{ID: "p-1", OrderID: "o-1"},
	}
	svc, sess, _ := newFixture(api)
	sess.Vouchers[sid] = &models.VoucherApplication{Code: "SALE10", VoucherID: "vch-1", DiscountAmount: 10000}

	_, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-cod",
		Note:            "leave at door",
	})
	require.NoError(t, err)

	req := api.LastOrderReq
	require.NotNil(t, req)
	assert.Equal(t, "addr-1", req.AddressID)
	assert.Equal(t, "leave at door", req.Note)
	assert.ElementsMatch(t, []models.OrderLine{
		{VariantID: "v-a", Quantity: 1},
		{VariantID: "v-b", Quantity: 2},
	}, req.Items)
	assert.Equal(t, "vch-1", req.VoucherID)
	assert.InDelta(t, 10000, req.DiscountAmount, 1e-9)
}

func TestPlaceOrder_CODSuccessSettlesSessionAndNavigatesToConfirmation(t *testing.T) {
	api := &MockAPI{
		Method:  codMethod(),
		Order:   &models.Order{ID: "o-1", Code: "GLM-0001", Status: models.OrderStatusPending},
		Payment: &models.Payment{ID: "p-1", OrderID: "o-1", Status: "PAID"},
	}
	svc, sess, journal := newFixture(api)

	result, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-cod",
	})

	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStateFinalized, result.State)
	assert.Equal(t, models.NavigateOrderConfirmation, result.NavigateTo)
	assert.Equal(t, "GLM-0001", result.OrderCode)
	assert.Empty(t, result.RedirectURL)

	// Selection cleared; purchased lines filtered out of the snapshot with
	// aggregates recomputed from the survivor.
	assert.Empty(t, sess.Selections[sid])
	snapshot := sess.Carts[sid]
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "C", snapshot.Items[0].ID)
	assert.Equal(t, 3, snapshot.TotalItems)
	assert.InDelta(t, 150000, snapshot.TotalAmount, 1e-9)
	assert.False(t, sess.InFlight[sid])
	assert.Equal(t, models.CheckoutStateFinalized, journal.FinalState)
}

func TestPlaceOrder_CODPaymentFailureDefersWithoutRollback(t *testing.T) {
	api := &MockAPI{
		Method:     codMethod(),
		Order:      &models.Order{ID: "o-1", Code: "GLM-0001", Status: models.OrderStatusPending},
		PaymentErr: global.NewError(global.KindUnavailable, ""),
	}
	svc, sess, journal := newFixture(api)

	result, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-cod",
	})

	// Not an error: the order exists and must not look rolled back.
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStateFailed, result.State)
	assert.Equal(t, models.NavigateOrderDetail, result.NavigateTo)
	assert.Equal(t, "o-1", result.OrderID)
	assert.NotEmpty(t, result.Message)

	// Selection is NOT cleared and the cart snapshot is untouched.
	assert.ElementsMatch(t, []string{"A", "B"}, sess.Selections[sid].IDs())
	assert.Len(t, sess.Carts[sid].Items, 3)
	assert.Equal(t, models.NavigateOrderDetail, journal.NavigateTo)
}

func TestPlaceOrder_GatewaySuccessReturnsExactRedirectURL(t *testing.T) {
	const gatewayURL = "https://pay.vnpay.vn/session/abc123?token=xyz"
	api := &MockAPI{
		Method:  gatewayMethod(),
		Order:   &models.Order{ID: "o-2", Code: "GLM-0002", Status: models.OrderStatusPending},
		Payment: &models.Payment{ID: "p-2", OrderID: "o-2", RedirectURL: gatewayURL},
	}
	svc, sess, journal := newFixture(api)

	result, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-vnp",
	})

	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStateRedirectingToGateway, result.State)
	assert.Equal(t, models.NavigateGateway, result.NavigateTo)
	assert.Equal(t, gatewayURL, result.RedirectURL)

	assert.Empty(t, sess.Selections[sid])
	assert.Len(t, sess.Carts[sid].Items, 1)
	assert.Equal(t, models.CheckoutStateRedirectingToGateway, journal.FinalState)
}

func TestPlaceOrder_GatewayMissingURLIsTreatedAsPaymentFailure(t *testing.T) {
	api := &MockAPI{
		Method:  gatewayMethod(),
		Order:   &models.Order{ID: "o-2", Code: "GLM-0002", Status: models.OrderStatusPending},
		Payment: &models.Payment{ID: "p-2", OrderID: "o-2"}, // no redirect URL
	}
	svc, sess, _ := newFixture(api)

	result, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-vnp",
	})

	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStateFailed, result.State)
	assert.Equal(t, models.NavigateOrderDetail, result.NavigateTo)
	assert.Equal(t, "o-2", result.OrderID)
	assert.Empty(t, result.RedirectURL)

	assert.ElementsMatch(t, []string{"A", "B"}, sess.Selections[sid].IDs())
}

func TestPlaceOrder_VanishedSelectionIsPrunedBeforeSubmission(t *testing.T) {
	api := &MockAPI{
		Method:  codMethod(),
		Order:   &models.Order{ID: "o-3", Code: "GLM-0003", Status: models.OrderStatusPending},
		Payment: &models.Payment{ID: "p-3", OrderID: "o-3"},
	}
	svc, sess, _ := newFixture(api)
	sess.Selections[sid] = models.NewSelection("A", "gone")

	_, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-cod",
	})
	require.NoError(t, err)

	assert.Equal(t, []models.OrderLine{{VariantID: "v-a", Quantity: 1}}, api.LastOrderReq.Items)
}

func TestPlaceOrder_FullyVanishedSelectionAborts(t *testing.T) {
	api := &MockAPI{Method: codMethod()}
	svc, sess, _ := newFixture(api)
	sess.Selections[sid] = models.NewSelection("gone-1", "gone-2")

	_, err := svc.PlaceOrder(context.Background(), sid, &models.PlaceOrderRequest{
		AddressID:       "addr-1",
		PaymentMethodID: "pm-cod",
	})

	require.Error(t, err)
	assert.Equal(t, global.KindValidation, global.KindOf(err))
	assert.Zero(t, api.CreateOrderCalls)
}

func TestRetryPayment_PendingOrderGatewaySuccess(t *testing.T) {
	const gatewayURL = "https://pay.vnpay.vn/session/retry-1"
	api := &MockAPI{
		FetchOrder: &models.Order{ID: "o-4", Code: "GLM-0004", Status: models.OrderStatusPending, PaymentMethodID: "pm-vnp"},
		Method:     gatewayMethod(),
		Payment:    &models.Payment{ID: "p-4", OrderID: "o-4", RedirectURL: gatewayURL},
	}
	svc, _, _ := newFixture(api)

	result, err := svc.RetryPayment(context.Background(), sid, "o-4", "")

	require.NoError(t, err)
	assert.Equal(t, gatewayURL, result.RedirectURL)
	assert.Equal(t, 1, api.CreatePaymentCalls)
	assert.Equal(t, "o-4", api.LastPaymentReq.OrderID)
}

func TestRetryPayment_TerminalOrderIsRejected(t *testing.T) {
	api := &MockAPI{
		FetchOrder: &models.Order{ID: "o-5", Code: "GLM-0005", Status: models.OrderStatusCanceled},
	}
	svc, _, _ := newFixture(api)

	_, err := svc.RetryPayment(context.Background(), sid, "o-5", "")

	require.Error(t, err)
	assert.Equal(t, global.KindConflict, global.KindOf(err))
	assert.Zero(t, api.CreatePaymentCalls)
}
