// Package nats publishes analysis lifecycle messages to a NATS broker.
// Publishing is optional; when no broker is configured the service uses the
// no-op publisher.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects for analysis lifecycle messages.
const (
	SubjectSignalCreated     = "crosswatch.signals.created"
	SubjectAnalysisCompleted = "crosswatch.analysis.completed"
)

// Publisher publishes JSON messages to subjects.
type Publisher interface {
	PublishJSON(ctx context.Context, subject string, data interface{}) error
	Close() error
}

// Config holds NATS connection settings.
type Config struct {
	URL           string
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
	Timeout       time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		Name:          "crosswatch",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		Timeout:       5 * time.Second,
	}
}

type natsPublisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS and returns a publisher over the connection.
func NewPublisher(cfg Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.Timeout),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &natsPublisher{conn: conn}, nil
}

func (p *natsPublisher) PublishJSON(ctx context.Context, subject string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *natsPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// NoOpPublisher discards all messages. Used when NATS is disabled.
type NoOpPublisher struct{}

func (NoOpPublisher) PublishJSON(context.Context, string, interface{}) error { return nil }
func (NoOpPublisher) Close() error                                          { return nil }
