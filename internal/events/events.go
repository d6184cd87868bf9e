// Package events publishes booking notifications for downstream consumers
// (push notifications, leaderboards). Publishing is best effort: a commit is
// final whether or not its event goes out.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"slot-ledger/internal/model"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Publisher sends booking events
type Publisher interface {
	PublishBookingCommitted(ctx context.Context, event model.BookingEvent) error
}

// Conn is the subset of *nats.Conn used for publishing
type Conn interface {
	Publish(subject string, data []byte) error
}

type NATSPublisher struct {
	conn   Conn
	prefix string
	logger zerolog.Logger
}

// Connect dials NATS with an optional token and returns the connection.
func Connect(url, token, name string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return conn, nil
}

func NewNATSPublisher(conn Conn, prefix string, logger zerolog.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix, logger: logger}
}

// Subject returns the subject booking-committed events are published on.
func (p *NATSPublisher) Subject() string {
	return p.prefix + ".booking.committed"
}

func (p *NATSPublisher) PublishBookingCommitted(_ context.Context, event model.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(), data); err != nil {
		return fmt.Errorf("publish booking event: %w", err)
	}
	p.logger.Debug().Str("subject", p.Subject()).Str("transaction_id", event.TransactionID).Msg("booking event published")
	return nil
}

// Noop discards events. Used when NATS is not configured.
type Noop struct{}

func (Noop) PublishBookingCommitted(context.Context, model.BookingEvent) error { return nil }
