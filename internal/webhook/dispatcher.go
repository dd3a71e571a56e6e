package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/metrics"
	"github.com/crosswatch-systems/crosswatch/pkg/logging"
)

// Dispatcher fans an event out to every matching subscriber as a signed
// HTTP POST.
type Dispatcher struct {
	registry *Registry
	client   *http.Client
	logger   *logging.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, timeout time.Duration, logger *logging.Logger) *Dispatcher {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		registry: registry,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// payload is the wire shape of a webhook delivery.
type payload struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// Dispatch delivers the event to every subscriber registered for it.
// Failures are isolated per subscriber: they are logged and counted but do
// not retry and do not stop remaining deliveries.
func (d *Dispatcher) Dispatch(ctx context.Context, event string, data interface{}) {
	subscribers := d.registry.Matching(event)
	if len(subscribers) == 0 {
		return
	}

	body, err := json.Marshal(payload{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to marshal webhook payload", "event", event, "error", err)
		return
	}

	for _, sub := range subscribers {
		if err := d.deliver(ctx, sub, body); err != nil {
			metrics.WebhookDeliveries.WithLabelValues("error").Inc()
			d.logger.WarnContext(ctx, "webhook delivery failed",
				"subscriber", sub.ID, "event", event, "error", err)
			continue
		}
		metrics.WebhookDeliveries.WithLabelValues("ok").Inc()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, sub Subscriber, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Crosswatch/1.0")
	req.Header.Set(SignatureHeader, NewSigner(sub.Secret).Sign(body))

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
