// Package backend is the typed client for the core commerce API. All
// business logic (pricing, inventory, vouchers, payment orchestration) lives
// behind these endpoints; this package only shapes requests and decodes
// responses, classifying failures once so the rest of the service never
// inspects raw bodies.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/vovantri123/glamora-store-api/pkg/global"
)

type contextKey string

const authTokenKey contextKey = "backend-auth-token"

// WithAuthToken returns a context carrying the shopper's bearer token, which
// the client forwards on every request.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

func authTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(authTokenKey).(string)
	return token
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string) *Client {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "commerce-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Shopper-caused rejections (bad voucher, out of stock) are healthy
		// backend responses and must not open the circuit.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			kind := global.KindOf(err)
			return kind != global.KindUnavailable && kind != global.KindUnknown
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker:    breaker,
	}
}

func NewClientFromEnv() *Client {
	return NewClient(global.GetBackendBaseURL())
}

// do performs one backend call through the circuit breaker, decoding the
// response into out when out is non-nil. Backend rejections come back as
// *global.Error with the backend's message kept verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := authTokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	raw, err := c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, global.NewError(global.KindUnavailable, "")
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, global.NewError(global.KindUnavailable, "")
		}

		if resp.StatusCode >= 400 {
			return nil, decodeError(resp.StatusCode, data)
		}
		return data, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return global.NewError(global.KindUnavailable, "")
		}
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// errorBody covers the loose shapes the backend uses for rejections:
// {"message": "..."} and {"data": {"message": "..."}}.
type errorBody struct {
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

func decodeError(status int, raw []byte) *global.Error {
	var body errorBody
	// A non-JSON body just means no message to surface.
	_ = json.Unmarshal(raw, &body)

	message := body.Message
	if message == "" {
		message = body.Data.Message
	}

	kind := global.KindUnknown
	switch {
	case status == http.StatusNotFound:
		kind = global.KindNotFound
	case status == http.StatusConflict:
		kind = global.KindConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = global.KindValidation
	case status >= 500:
		kind = global.KindUnavailable
	}

	return global.NewError(kind, message)
}
