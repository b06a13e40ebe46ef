package checkout

import (
	"context"

	"github.com/vovantri123/glamora-store-api/pkg/models"
	storemongo "github.com/vovantri123/glamora-store-api/pkg/mongo"
)

// MockAPI implements CommerceAPI for testing, counting calls and capturing
// the last request of each kind.
type MockAPI struct {
	Cart       *models.Cart
	CartErr    error
	Voucher    *models.VoucherApplication
	VoucherErr error
	Method     *models.PaymentMethod
	MethodErr  error
	Order      *models.Order
	OrderErr   error
	Payment    *models.Payment
	PaymentErr error
	FetchOrder *models.Order
	FetchErr   error

	GetCartCalls       int
	ValidateCalls      int
	CreateOrderCalls   int
	CreatePaymentCalls int

	LastOrderReq   *models.CreateOrderRequest
	LastPaymentReq *models.CreatePaymentRequest
	LastVoucherReq *models.ValidateVoucherRequest
}

func (m *MockAPI) GetCart(_ context.Context) (*models.Cart, error) {
	m.GetCartCalls++
	return m.Cart, m.CartErr
}

func (m *MockAPI) ValidateVoucher(_ context.Context, req *models.ValidateVoucherRequest) (*models.VoucherApplication, error) {
	m.ValidateCalls++
	m.LastVoucherReq = req
	return m.Voucher, m.VoucherErr
}

func (m *MockAPI) GetPaymentMethod(_ context.Context, _ string) (*models.PaymentMethod, error) {
	return m.Method, m.MethodErr
}

func (m *MockAPI) CreateOrder(_ context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	m.CreateOrderCalls++
	m.LastOrderReq = req
	return m.Order, m.OrderErr
}

func (m *MockAPI) CreatePayment(_ context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	m.CreatePaymentCalls++
	m.LastPaymentReq = req
	return m.Payment, m.PaymentErr
}

func (m *MockAPI) GetOrder(_ context.Context, _ string) (*models.Order, error) {
	return m.FetchOrder, m.FetchErr
}

// MockSession is an in-memory SessionState.
type MockSession struct {
	Selections map[string]models.Selection
	Vouchers   map[string]*models.VoucherApplication
	Carts      map[string]*models.Cart
	InFlight   map[string]bool
}

func NewMockSession() *MockSession {
	return &MockSession{
		Selections: make(map[string]models.Selection),
		Vouchers:   make(map[string]*models.VoucherApplication),
		Carts:      make(map[string]*models.Cart),
		InFlight:   make(map[string]bool),
	}
}

func (m *MockSession) GetSelection(_ context.Context, sessionID string) (models.Selection, error) {
	sel, ok := m.Selections[sessionID]
	if !ok {
		return models.NewSelection(), nil
	}
	// Copy so pruning inside the service doesn't mutate stored state.
	return models.NewSelection(sel.IDs()...), nil
}

func (m *MockSession) SaveSelection(_ context.Context, sessionID string, sel models.Selection) error {
	m.Selections[sessionID] = sel
	return nil
}

func (m *MockSession) ClearSelection(_ context.Context, sessionID string) error {
	delete(m.Selections, sessionID)
	return nil
}

func (m *MockSession) GetVoucher(_ context.Context, sessionID string) (*models.VoucherApplication, error) {
	return m.Vouchers[sessionID], nil
}

func (m *MockSession) SaveVoucher(_ context.Context, sessionID string, v *models.VoucherApplication) error {
	m.Vouchers[sessionID] = v
	return nil
}

func (m *MockSession) ClearVoucher(_ context.Context, sessionID string) error {
	delete(m.Vouchers, sessionID)
	return nil
}

func (m *MockSession) GetCachedCart(_ context.Context, sessionID string) (*models.Cart, error) {
	return m.Carts[sessionID], nil
}

func (m *MockSession) SaveCachedCart(_ context.Context, sessionID string, cart *models.Cart) error {
	m.Carts[sessionID] = cart
	return nil
}

func (m *MockSession) TryBeginCheckout(_ context.Context, sessionID string) (bool, error) {
	if m.InFlight[sessionID] {
		return false, nil
	}
	m.InFlight[sessionID] = true
	return true, nil
}

func (m *MockSession) EndCheckout(_ context.Context, sessionID string) error {
	delete(m.InFlight, sessionID)
	return nil
}

// MockJournal records journal calls.
type MockJournal struct {
	BeginErr error

	Begun       []*models.PlaceOrderRequest
	Transitions []models.CheckoutState
	Attached    []*models.Order
	FinalState  models.CheckoutState
	NavigateTo  string
	Message     string
	Finished    bool
}

func (m *MockJournal) Begin(_ context.Context, sessionID string, req *models.PlaceOrderRequest) (*storemongo.CheckoutAttempt, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	m.Begun = append(m.Begun, req)
	return &storemongo.CheckoutAttempt{ID: "att-1", SessionID: sessionID}, nil
}

func (m *MockJournal) Transition(_ context.Context, _ string, state models.CheckoutState) error {
	m.Transitions = append(m.Transitions, state)
	return nil
}

func (m *MockJournal) AttachOrder(_ context.Context, _ string, order *models.Order) error {
	m.Attached = append(m.Attached, order)
	return nil
}

func (m *MockJournal) Finish(_ context.Context, _ string, state models.CheckoutState, navigateTo, message string) error {
	m.FinalState = state
	m.NavigateTo = navigateTo
	m.Message = message
	m.Finished = true
	return nil
}
