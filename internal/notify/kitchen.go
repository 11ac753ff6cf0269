// Package notify delivers order events to an external kitchen system.
package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tableside/tableside/internal/model"
)

// Delivery headers.
const (
	HeaderSignature  = "X-Tableside-Signature"
	HeaderTimestamp  = "X-Tableside-Timestamp"
	HeaderDeliveryID = "X-Tableside-Delivery-Id"
)

const (
	clientTimeout         = 30 * time.Second
	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 15 * time.Second

	// deliveryTimeout bounds one full delivery cycle including retries.
	deliveryTimeout = 2 * time.Minute
)

// orderEvent is the payload POSTed to the kitchen endpoint.
type orderEvent struct {
	Event string             `json:"event"`
	Order *orderEventPayload `json:"order"`
}

type orderEventPayload struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Lines     []orderEventLine `json:"lines"`
	Total     model.Cents      `json:"total"`
	CreatedAt time.Time        `json:"created_at"`
}

type orderEventLine struct {
	MenuItemID int64       `json:"menu_item_id"`
	Name       string      `json:"name"`
	Quantity   int         `json:"quantity"`
	LineTotal  model.Cents `json:"line_total"`
}

// KitchenNotifier POSTs signed order events to a kitchen webhook endpoint.
// Delivery is asynchronous and best effort; a failed delivery never fails
// the order.
type KitchenNotifier struct {
	url    string
	secret string
	client *http.Client
	logger *slog.Logger
}

// NewKitchenNotifier creates a KitchenNotifier for the given endpoint.
func NewKitchenNotifier(url, secret string, logger *slog.Logger) *KitchenNotifier {
	return &KitchenNotifier{
		url:    url,
		secret: secret,
		client: newHTTPClient(),
		logger: logger,
	}
}

// OrderCreated delivers the order event in the background.
// The request context is not reused because delivery outlives the request.
func (n *KitchenNotifier) OrderCreated(ctx context.Context, order *model.Order) {
	go func() {
		deliveryCtx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		if err := n.deliver(deliveryCtx, order); err != nil {
			n.logger.Error("kitchen_delivery_failed",
				"order_id", order.ID,
				"error", err,
			)
		}
	}()
}

// deliver attempts delivery with bounded retries.
func (n *KitchenNotifier) deliver(ctx context.Context, order *model.Order) error {
	payload, err := json.Marshal(buildEvent(order))
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	deliveryID := uuid.NewString()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(nextRetryDelay(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if lastErr = n.post(ctx, payload, deliveryID); lastErr == nil {
			if attempt > 0 {
				n.logger.Info("kitchen_delivery_recovered",
					"order_id", order.ID,
					"attempt", attempt+1,
				)
			}
			return nil
		}

		n.logger.Warn("kitchen_delivery_attempt_failed",
			"order_id", order.ID,
			"attempt", attempt+1,
			"error", lastErr,
		)
	}

	return lastErr
}

// post performs one signed delivery attempt.
func (n *KitchenNotifier) post(ctx context.Context, payload []byte, deliveryID string) error {
	timestamp := time.Now().Unix()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderSignature, GenerateSignature(n.secret, timestamp, payload))
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(timestamp, 10))
	req.Header.Set(HeaderDeliveryID, deliveryID)
	req.Header.Set("User-Agent", "Tableside-Kitchen/1.0")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned %d", resp.StatusCode)
	}

	return nil
}

func buildEvent(order *model.Order) orderEvent {
	lines := make([]orderEventLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, orderEventLine{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			Quantity:   l.Quantity,
			LineTotal:  l.LineTotal,
		})
	}
	return orderEvent{
		Event: "order.created",
		Order: &orderEventPayload{
			ID:        order.ID,
			UserID:    order.UserID,
			Lines:     lines,
			Total:     order.Total,
			CreatedAt: order.CreatedAt,
		},
	}
}

// GenerateSignature creates an HMAC-SHA256 signature over the payload.
// The canonical string format is "{timestamp}.{payloadJSON}".
func GenerateSignature(secret string, timestamp int64, payloadJSON []byte) string {
	canonical := fmt.Sprintf("%d.%s", timestamp, string(payloadJSON))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// newHTTPClient creates an HTTP client configured for event delivery.
// It has conservative timeouts and does not follow redirects.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: clientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
