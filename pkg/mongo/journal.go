package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vovantri123/glamora-store-api/pkg/models"
)

// CheckoutAttempt is the journaled record of one orchestrator run. The
// payment-result view matches gateway callbacks to these records, and the
// funnel aggregation reads them for the back office.
type CheckoutAttempt struct {
	ID              string    `bson:"_id" json:"id"`
	SessionID       string    `bson:"session_id" json:"session_id"`
	State           string    `bson:"state" json:"state"`
	StatesTraversed []string  `bson:"states_traversed" json:"states_traversed"`
	PaymentMethodID string    `bson:"payment_method_id" json:"payment_method_id"`
	AddressID       string    `bson:"address_id" json:"address_id"`
	OrderID         string    `bson:"order_id,omitempty" json:"order_id,omitempty"`
	OrderCode       string    `bson:"order_code,omitempty" json:"order_code,omitempty"`
	NavigateTo      string    `bson:"navigate_to,omitempty" json:"navigate_to,omitempty"`
	FailureMessage  string    `bson:"failure_message,omitempty" json:"failure_message,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// Journal persists checkout attempts.
type Journal struct {
	collection *mongo.Collection
}

func NewJournal(db *mongo.Database) *Journal {
	return &Journal{collection: db.Collection("checkout_attempts")}
}

// Begin records a fresh attempt in the Validating state and returns it.
func (j *Journal) Begin(ctx context.Context, sessionID string, req *models.PlaceOrderRequest) (*CheckoutAttempt, error) {
	now := time.Now().UTC()
	attempt := &CheckoutAttempt{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		State:           models.CheckoutStateValidating.String(),
		StatesTraversed: []string{models.CheckoutStateValidating.String()},
		PaymentMethodID: req.PaymentMethodID,
		AddressID:       req.AddressID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := j.collection.InsertOne(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to journal checkout attempt: %w", err)
	}
	return attempt, nil
}

// Transition appends the new state to the attempt's trail.
func (j *Journal) Transition(ctx context.Context, attemptID string, state models.CheckoutState) error {
	update := bson.M{
		"$set":  bson.M{"state": state.String(), "updated_at": time.Now().UTC()},
		"$push": bson.M{"states_traversed": state.String()},
	}
	if _, err := j.collection.UpdateByID(ctx, attemptID, update); err != nil {
		return fmt.Errorf("failed to journal transition to %s: %w", state, err)
	}
	return nil
}

// AttachOrder records the created order once the backend returns it.
func (j *Journal) AttachOrder(ctx context.Context, attemptID string, order *models.Order) error {
	update := bson.M{"$set": bson.M{
		"order_id":   order.ID,
		"order_code": order.Code,
		"updated_at": time.Now().UTC(),
	}}
	if _, err := j.collection.UpdateByID(ctx, attemptID, update); err != nil {
		return fmt.Errorf("failed to attach order to attempt: %w", err)
	}
	return nil
}

// Finish stamps the terminal state plus the navigation directive; message is
// only set for failures.
func (j *Journal) Finish(ctx context.Context, attemptID string, state models.CheckoutState, navigateTo, message string) error {
	update := bson.M{
		"$set": bson.M{
			"state":           state.String(),
			"navigate_to":     navigateTo,
			"failure_message": message,
			"updated_at":      time.Now().UTC(),
		},
		"$push": bson.M{"states_traversed": state.String()},
	}
	if _, err := j.collection.UpdateByID(ctx, attemptID, update); err != nil {
		return fmt.Errorf("failed to finish attempt journal: %w", err)
	}
	return nil
}

// FindByOrderID returns the most recent attempt for an order, used by the
// payment-result view to reconnect a gateway callback to its checkout.
func (j *Journal) FindByOrderID(ctx context.Context, orderID string) (*CheckoutAttempt, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var attempt CheckoutAttempt
	err := j.collection.FindOne(ctx, bson.M{"order_id": orderID}, opts).Decode(&attempt)
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ListBySession returns a session's attempts, newest first.
func (j *Journal) ListBySession(ctx context.Context, sessionID string, limit int64) ([]CheckoutAttempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := j.collection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []CheckoutAttempt
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
