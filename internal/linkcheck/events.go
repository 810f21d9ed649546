package linkcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docpress/internal/config"
)

// BrokenLinkEvent is published for every broken link a check run finds.
type BrokenLinkEvent struct {
	Page       string    `json:"page"`
	URL        string    `json:"url"`
	Reason     string    `json:"reason"`
	DetectedAt time.Time `json:"detected_at"`
}

// Publisher delivers broken link events to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, event BrokenLinkEvent) error
	Close()
}

// NATSPublisher publishes broken link events on a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to the configured NATS server. It is only called
// when linkcheck.nats_url is set.
func NewNATSPublisher(cfg config.LinkCheckConfig) (*NATSPublisher, error) {
	if cfg.NATSURL == "" {
		return nil, fmt.Errorf("linkcheck NATS URL is not configured")
	}

	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Info("NATS publisher initialized for link events",
		"url", cfg.NATSURL,
		"subject", cfg.Subject)

	return &NATSPublisher{conn: conn, subject: cfg.Subject}, nil
}

// Publish sends one event as JSON.
func (p *NATSPublisher) Publish(_ context.Context, event BrokenLinkEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal broken link event: %w", err)
	}
	return p.conn.Publish(p.subject, data)
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}
