package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutState_Transitions(t *testing.T) {
	assert.True(t, CheckoutStateIdle.CanTransitionTo(CheckoutStateValidating))
	assert.True(t, CheckoutStateValidating.CanTransitionTo(CheckoutStateCreatingOrder))
	assert.True(t, CheckoutStateCreatingOrder.CanTransitionTo(CheckoutStateCreatingPayment))
	assert.True(t, CheckoutStateCreatingPayment.CanTransitionTo(CheckoutStateFinalized))
	assert.True(t, CheckoutStateCreatingPayment.CanTransitionTo(CheckoutStateRedirectingToGateway))

	// No skipping ahead.
	assert.False(t, CheckoutStateIdle.CanTransitionTo(CheckoutStateCreatingOrder))
	assert.False(t, CheckoutStateValidating.CanTransitionTo(CheckoutStateFinalized))
}

func TestCheckoutState_TerminalStatesHaveNoExit(t *testing.T) {
	terminals := []CheckoutState{
		CheckoutStateRedirectingToGateway,
		CheckoutStateFinalized,
		CheckoutStateFailed,
	}
	all := []CheckoutState{
		CheckoutStateIdle, CheckoutStateValidating, CheckoutStateCreatingOrder,
		CheckoutStateCreatingPayment, CheckoutStateRedirectingToGateway,
		CheckoutStateFinalized, CheckoutStateFailed,
	}
	for _, terminal := range terminals {
		assert.True(t, terminal.IsTerminal())
		for _, next := range all {
			assert.False(t, terminal.CanTransitionTo(next),
				"terminal state %s must not transition to %s", terminal, next)
		}
	}
}

func TestOrder_LifecycleHelpers(t *testing.T) {
	pending := &Order{Status: OrderStatusPending}
	assert.True(t, pending.CanCancel())
	assert.True(t, pending.CanRetryPayment())
	assert.False(t, pending.IsTerminal())

	done := &Order{Status: OrderStatusCompleted}
	canceled := &Order{Status: OrderStatusCanceled}
	assert.True(t, done.IsTerminal())
	assert.True(t, canceled.IsTerminal())
	assert.False(t, done.CanCancel())
	assert.False(t, canceled.CanRetryPayment())
}
