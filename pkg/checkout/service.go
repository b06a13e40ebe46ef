// Package checkout sequences a checkout attempt against the commerce
// backend: validate locally, create the order, create the payment, then hand
// the storefront a navigation directive. Order creation and payment are
// deliberately decoupled: a payment failure after a created order is never
// rolled back, the shopper is pointed at the order to settle it later.
package checkout

import (
	"context"
	"log"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
	storemongo "github.com/vovantri123/glamora-store-api/pkg/mongo"
)

const (
	genericOrderFailure   = "We couldn't place your order. Please try again."
	genericPaymentFailure = "Your order was placed but the payment couldn't be started. You can retry from the order page."
)

// CommerceAPI is the slice of the backend client the orchestrator needs.
type CommerceAPI interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	ValidateVoucher(ctx context.Context, req *models.ValidateVoucherRequest) (*models.VoucherApplication, error)
	GetPaymentMethod(ctx context.Context, methodID string) (*models.PaymentMethod, error)
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// SessionState is the per-shopper state the orchestrator reads and settles.
type SessionState interface {
	GetSelection(ctx context.Context, sessionID string) (models.Selection, error)
	SaveSelection(ctx context.Context, sessionID string, sel models.Selection) error
	ClearSelection(ctx context.Context, sessionID string) error
	GetVoucher(ctx context.Context, sessionID string) (*models.VoucherApplication, error)
	SaveVoucher(ctx context.Context, sessionID string, v *models.VoucherApplication) error
	ClearVoucher(ctx context.Context, sessionID string) error
	GetCachedCart(ctx context.Context, sessionID string) (*models.Cart, error)
	SaveCachedCart(ctx context.Context, sessionID string, cart *models.Cart) error
	TryBeginCheckout(ctx context.Context, sessionID string) (bool, error)
	EndCheckout(ctx context.Context, sessionID string) error
}

// AttemptJournal records attempts for the payment-result view and the
// funnel. Journaling is best-effort: a journal outage must never block a
// purchase.
type AttemptJournal interface {
	Begin(ctx context.Context, sessionID string, req *models.PlaceOrderRequest) (*storemongo.CheckoutAttempt, error)
	Transition(ctx context.Context, attemptID string, state models.CheckoutState) error
	AttachOrder(ctx context.Context, attemptID string, order *models.Order) error
	Finish(ctx context.Context, attemptID string, state models.CheckoutState, navigateTo, message string) error
}

type Service struct {
	api     CommerceAPI
	session SessionState
	journal AttemptJournal
}

func NewService(api CommerceAPI, session SessionState, journal AttemptJournal) *Service {
	return &Service{api: api, session: session, journal: journal}
}

// PlaceOrder runs one checkout attempt end to end. Validation failures abort
// before any backend call; an order-creation failure is returned as an error
// with the shopper's state intact so the page can retry in place; a
// payment-leg failure is returned as a successful result pointing at the
// order detail view.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, req *models.PlaceOrderRequest) (*models.CheckoutResult, error) {
	ok, err := s.session.TryBeginCheckout(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, global.NewError(global.KindConflict, "A checkout is already in progress for this session")
	}
	defer func() {
		if err := s.session.EndCheckout(ctx, sessionID); err != nil {
			log.Printf("Warning: failed to release checkout flag for session %s: %v", sessionID, err)
		}
	}()

	attemptID := s.beginJournal(ctx, sessionID, req)
	state := models.CheckoutStateValidating

	// Preconditions: an address and a non-empty selection, checked before
	// any network call.
	if req.AddressID == "" {
		s.finishJournal(ctx, attemptID, models.CheckoutStateFailed, "", "no delivery address selected")
		return nil, global.ValidationErrorf("Please select a delivery address")
	}

	selection, err := s.session.GetSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if selection.IsEmpty() {
		s.finishJournal(ctx, attemptID, models.CheckoutStateFailed, "", "no items selected")
		return nil, global.ValidationErrorf("Please select at least one item to check out")
	}

	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		s.finishJournal(ctx, attemptID, models.CheckoutStateFailed, "", global.UserMessage(err, genericOrderFailure))
		return nil, err
	}
	selection.Prune(cart.ItemIDs())
	if selection.IsEmpty() {
		s.finishJournal(ctx, attemptID, models.CheckoutStateFailed, "", "selected items no longer in cart")
		return nil, global.ValidationErrorf("The selected items are no longer in your cart")
	}

	method, err := s.api.GetPaymentMethod(ctx, req.PaymentMethodID)
	if err != nil {
		s.finishJournal(ctx, attemptID, models.CheckoutStateFailed, "", global.UserMessage(err, genericOrderFailure))
		return nil, err
	}

	state = s.advance(ctx, attemptID, state, models.CheckoutStateCreatingOrder)

	orderReq := &models.CreateOrderRequest{
		AddressID:       req.AddressID,
		PaymentMethodID: req.PaymentMethodID,
		Note:            req.Note,
		Items:           linesFromSelection(cart, selection),
	}
	if voucher, err := s.session.GetVoucher(ctx, sessionID); err == nil && voucher.IsApplied() {
		orderReq.VoucherID = voucher.VoucherID
		orderReq.DiscountAmount = voucher.DiscountAmount
	}

	order, err := s.api.CreateOrder(ctx, orderReq)
	if err != nil {
		// Fully recoverable: nothing was mutated, the shopper stays on the
		// checkout page with selection, voucher and address intact.
		s.finishJournal(ctx, attemptID, models.CheckoutStateFailed, "", global.UserMessage(err, genericOrderFailure))
		return nil, err
	}
	s.attachOrder(ctx, attemptID, order)

	state = s.advance(ctx, attemptID, state, models.CheckoutStateCreatingPayment)

	return s.paymentLeg(ctx, sessionID, attemptID, state, order, method, selection)
}

// paymentLeg creates the payment for an existing order and settles session
// state according to the outcome. Shared between the initial attempt and
// payment retries.
func (s *Service) paymentLeg(
	ctx context.Context,
	sessionID, attemptID string,
	state models.CheckoutState,
	order *models.Order,
	method *models.PaymentMethod,
	selection models.Selection,
) (*models.CheckoutResult, error) {

	payment, payErr := s.api.CreatePayment(ctx, &models.CreatePaymentRequest{
		OrderID:         order.ID,
		PaymentMethodID: method.ID,
	})

	if method.IsRedirect() {
		if payErr == nil && payment.RedirectURL != "" {
			// The order snapshot owns the items now; clean up before the
			// shopper leaves for the gateway.
			s.settlePurchasedItems(ctx, sessionID, selection)
			s.finishJournal(ctx, attemptID, models.CheckoutStateRedirectingToGateway, models.NavigateGateway, "")
			return &models.CheckoutResult{
				State:       models.CheckoutStateRedirectingToGateway,
				NavigateTo:  models.NavigateGateway,
				RedirectURL: payment.RedirectURL,
				OrderID:     order.ID,
				OrderCode:   order.Code,
			}, nil
		}
		// Missing URL counts as a failed payment leg: the order stays
		// PENDING and the shopper resumes from its detail view.
		return s.deferPayment(ctx, sessionID, attemptID, order, payErr), nil
	}

	// Cash on delivery: creating the payment record settles it.
	if payErr != nil {
		return s.deferPayment(ctx, sessionID, attemptID, order, payErr), nil
	}

	s.settlePurchasedItems(ctx, sessionID, selection)
	s.finishJournal(ctx, attemptID, models.CheckoutStateFinalized, models.NavigateOrderConfirmation, "")
	return &models.CheckoutResult{
		State:      models.CheckoutStateFinalized,
		NavigateTo: models.NavigateOrderConfirmation,
		OrderID:    order.ID,
		OrderCode:  order.Code,
	}, nil
}

// deferPayment is the no-rollback path: the order exists and stays PENDING,
// the selection is left untouched, and the shopper is pointed at the order
// to retry payment later.
func (s *Service) deferPayment(ctx context.Context, sessionID, attemptID string, order *models.Order, payErr error) *models.CheckoutResult {
	message := global.UserMessage(payErr, genericPaymentFailure)
	if payErr == nil {
		message = genericPaymentFailure
	}
	s.finishJournal(ctx, attemptID, models.CheckoutStateFailed, models.NavigateOrderDetail, message)
	return &models.CheckoutResult{
		State:      models.CheckoutStateFailed,
		NavigateTo: models.NavigateOrderDetail,
		OrderID:    order.ID,
		OrderCode:  order.Code,
		Message:    message,
	}
}

// settlePurchasedItems clears the selection and voucher and filters the
// purchased lines out of the cached snapshot, recomputing the aggregates
// from the surviving items. The next full fetch resynchronizes with the
// backend's copy.
func (s *Service) settlePurchasedItems(ctx context.Context, sessionID string, selection models.Selection) {
	if err := s.session.ClearSelection(ctx, sessionID); err != nil {
		log.Printf("Warning: failed to clear selection for session %s: %v", sessionID, err)
	}
	if err := s.session.ClearVoucher(ctx, sessionID); err != nil {
		log.Printf("Warning: failed to clear voucher for session %s: %v", sessionID, err)
	}

	cached, err := s.session.GetCachedCart(ctx, sessionID)
	if err != nil || cached == nil {
		return
	}
	cached.RemoveItems(selection.IDs())
	if err := s.session.SaveCachedCart(ctx, sessionID, cached); err != nil {
		log.Printf("Warning: failed to update cart snapshot for session %s: %v", sessionID, err)
	}
}

// loadCart serves the cached snapshot when present, otherwise fetches from
// the backend and refreshes the cache.
func (s *Service) loadCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	if cached, err := s.session.GetCachedCart(ctx, sessionID); err == nil && cached != nil {
		return cached, nil
	}

	cart, err := s.api.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.session.SaveCachedCart(ctx, sessionID, cart); err != nil {
		log.Printf("Warning: failed to cache cart for session %s: %v", sessionID, err)
	}
	return cart, nil
}

func linesFromSelection(cart *models.Cart, selection models.Selection) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(selection))
	for _, item := range cart.Items {
		if selection.Contains(item.ID) {
			lines = append(lines, models.OrderLine{
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			})
		}
	}
	return lines
}

// Journal helpers: best-effort, warnings only.

func (s *Service) beginJournal(ctx context.Context, sessionID string, req *models.PlaceOrderRequest) string {
	attempt, err := s.journal.Begin(ctx, sessionID, req)
	if err != nil {
		log.Printf("Warning: failed to journal checkout attempt: %v", err)
		return ""
	}
	return attempt.ID
}

func (s *Service) advance(ctx context.Context, attemptID string, from, to models.CheckoutState) models.CheckoutState {
	if !from.CanTransitionTo(to) {
		log.Printf("Warning: illegal checkout transition %s -> %s", from, to)
		return from
	}
	if attemptID != "" {
		if err := s.journal.Transition(ctx, attemptID, to); err != nil {
			log.Printf("Warning: failed to journal transition to %s: %v", to, err)
		}
	}
	return to
}

func (s *Service) attachOrder(ctx context.Context, attemptID string, order *models.Order) {
	if attemptID == "" {
		return
	}
	if err := s.journal.AttachOrder(ctx, attemptID, order); err != nil {
		log.Printf("Warning: failed to journal order attachment: %v", err)
	}
}

func (s *Service) finishJournal(ctx context.Context, attemptID string, state models.CheckoutState, navigateTo, message string) {
	if attemptID == "" {
		return
	}
	if err := s.journal.Finish(ctx, attemptID, state, navigateTo, message); err != nil {
		log.Printf("Warning: failed to journal attempt finish: %v", err)
	}
}
