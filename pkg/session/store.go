// Package session holds the per-shopper ephemeral state the storefront owns:
// the checkout selection set, the applied voucher, the cached cart snapshot
// and the checkout-in-flight flag. Everything lives in Redis under the
// session id with a rolling TTL; the commerce backend remains the source of
// truth for the cart itself.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovantri123/glamora-store-api/pkg/models"
)

const (
	stateTTL = 24 * time.Hour

	// checkoutTTL bounds how long a crashed attempt can keep a session
	// locked out of checkout.
	checkoutTTL = 2 * time.Minute
)

// Store is the explicit application-state container. It is constructed once
// at startup and injected; nothing in the service reaches for an ambient
// global.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func selectionKey(sessionID string) string { return fmt.Sprintf("session:%s:selection", sessionID) }
func voucherKey(sessionID string) string   { return fmt.Sprintf("session:%s:voucher", sessionID) }
func cartKey(sessionID string) string      { return fmt.Sprintf("session:%s:cart", sessionID) }
func checkoutKey(sessionID string) string  { return fmt.Sprintf("session:%s:checkout", sessionID) }

// State is the hydrated view of a session.
type State struct {
	Selection models.Selection           `json:"selection"`
	Voucher   *models.VoucherApplication `json:"voucher,omitempty"`
	Cart      *models.Cart               `json:"cart,omitempty"`
}

// Hydrate loads the full session state in one round trip.
func (s *Store) Hydrate(ctx context.Context, sessionID string) (*State, error) {
	pipe := s.client.Pipeline()
	selCmd := pipe.SMembers(ctx, selectionKey(sessionID))
	vchCmd := pipe.HGetAll(ctx, voucherKey(sessionID))
	cartCmd := pipe.Get(ctx, cartKey(sessionID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to hydrate session %s: %w", sessionID, err)
	}

	state := &State{Selection: models.NewSelection(selCmd.Val()...)}
	state.Voucher = voucherFromHash(vchCmd.Val())

	if raw, err := cartCmd.Result(); err == nil {
		var cart models.Cart
		if err := json.Unmarshal([]byte(raw), &cart); err == nil {
			state.Cart = &cart
		}
	}
	return state, nil
}

// Teardown removes every key owned by the session. Called on logout so no
// derived cache outlives the shopper.
func (s *Store) Teardown(ctx context.Context, sessionID string) error {
	keys := []string{
		selectionKey(sessionID),
		voucherKey(sessionID),
		cartKey(sessionID),
		checkoutKey(sessionID),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to tear down session %s: %w", sessionID, err)
	}
	return nil
}

// Selection

func (s *Store) GetSelection(ctx context.Context, sessionID string) (models.Selection, error) {
	ids, err := s.client.SMembers(ctx, selectionKey(sessionID)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	return models.NewSelection(ids...), nil
}

// SaveSelection replaces the stored set wholesale; membership deltas are
// computed by the caller on the hydrated Selection.
func (s *Store) SaveSelection(ctx context.Context, sessionID string, sel models.Selection) error {
	key := selectionKey(sessionID)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if !sel.IsEmpty() {
		members := make([]interface{}, 0, len(sel))
		for _, id := range sel.IDs() {
			members = append(members, id)
		}
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, stateTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) ClearSelection(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, selectionKey(sessionID)).Err()
}

// Voucher

func (s *Store) GetVoucher(ctx context.Context, sessionID string) (*models.VoucherApplication, error) {
	fields, err := s.client.HGetAll(ctx, voucherKey(sessionID)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	return voucherFromHash(fields), nil
}

// SaveVoucher writes code, voucher id and discount in one hash write so the
// three fields can never be observed partially applied.
func (s *Store) SaveVoucher(ctx context.Context, sessionID string, v *models.VoucherApplication) error {
	key := voucherKey(sessionID)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]interface{}{
		"code":            v.Code,
		"voucher_id":      v.VoucherID,
		"discount_amount": strconv.FormatFloat(v.DiscountAmount, 'f', -1, 64),
	})
	pipe.Expire(ctx, key, stateTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) ClearVoucher(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, voucherKey(sessionID)).Err()
}

// Cart snapshot cache

func (s *Store) GetCachedCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached cart: %w", err)
	}
	return &cart, nil
}

func (s *Store) SaveCachedCart(ctx context.Context, sessionID string, cart *models.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}
	return s.client.Set(ctx, cartKey(sessionID), raw, stateTTL).Err()
}

// InvalidateCart drops the cached snapshot so the next read goes to the
// backend.
func (s *Store) InvalidateCart(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}

// Checkout in-flight flag

// TryBeginCheckout atomically claims the session's checkout slot. A second
// concurrent attempt gets false and must not issue any backend call.
func (s *Store) TryBeginCheckout(ctx context.Context, sessionID string) (bool, error) {
	return s.client.SetNX(ctx, checkoutKey(sessionID), time.Now().UTC().Format(time.RFC3339), checkoutTTL).Result()
}

func (s *Store) EndCheckout(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, checkoutKey(sessionID)).Err()
}

// CheckoutInFlight reports whether an attempt is running. The cart-empty
// redirect hint is suppressed while this is true, so a mid-payment shopper
// is never bounced off the page by the emptiness watcher.
func (s *Store) CheckoutInFlight(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, checkoutKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func voucherFromHash(fields map[string]string) *models.VoucherApplication {
	if len(fields) == 0 {
		return nil
	}
	discount, _ := strconv.ParseFloat(fields["discount_amount"], 64)
	return &models.VoucherApplication{
		Code:           fields["code"],
		VoucherID:      fields["voucher_id"],
		DiscountAmount: discount,
	}
}
