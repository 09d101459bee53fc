package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/logger"
	"go.uber.org/zap"
)

// Event is the wire envelope for a published domain event.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Publisher emits domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
	Close()
}

// NATSPublisher publishes events to NATS subjects under a common prefix.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	source string
}

// NewNATSPublisher connects to the broker. Reconnects are unbounded so a
// broker restart does not take the service down with it.
func NewNATSPublisher(cfg *config.PubSubConfig, serviceName string) (*NATSPublisher, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(serviceName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}

	return &NATSPublisher{
		conn:   conn,
		prefix: cfg.SubjectPrefix,
		source: serviceName,
	}, nil
}

// Publish sends an event to "<prefix>.<eventType>". Failures are returned to
// the caller; event publication is best effort and callers log rather than
// abort on error.
func (p *NATSPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    p.source,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("unable to marshal event %s: %w", eventType, err)
	}

	subject := fmt.Sprintf("%s.%s", p.prefix, eventType)
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("unable to publish to %s: %w", subject, err)
	}

	return nil
}

// Close drains the connection, letting buffered messages flush first.
func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		logger.Warn("nats drain failed", zap.Error(err))
		p.conn.Close()
	}
}

// NoopPublisher drops all events. Used when pub/sub is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	return nil
}

func (NoopPublisher) Close() {}

// FromConfig returns a NATS publisher when enabled, a noop otherwise.
func FromConfig(cfg *config.PubSubConfig, serviceName string) (Publisher, error) {
	if !cfg.Enabled {
		return NoopPublisher{}, nil
	}
	return NewNATSPublisher(cfg, serviceName)
}
